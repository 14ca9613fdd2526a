package domain

import "time"

// OrderStatus is an open string: admins may set values beyond the
// constants below and no transition graph is enforced.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// Order keeps denormalized snapshots of the customer and product names
// taken at creation time. Later edits to either entity do not change
// historical orders.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey;size:50"`
	CustomerID   string      `json:"customerId" gorm:"size:50;not null;index"`
	CustomerName string      `json:"customerName" gorm:"size:255;not null"`
	ProductID    string      `json:"productId" gorm:"size:50;not null;index"`
	ProductName  string      `json:"productName" gorm:"size:255;not null"`
	OrderDate    time.Time   `json:"orderDate"`
	Quantity     int         `json:"quantity" gorm:"not null"`
	UnitPrice    float64     `json:"unitPrice" gorm:"not null"`
	TotalPrice   float64     `json:"totalPrice" gorm:"not null"`
	Status       OrderStatus `json:"status" gorm:"size:50;default:'Pending'"`
}
