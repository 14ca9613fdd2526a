package domain

import "time"

// CartItem is one pending purchase line. Product name and unit price are
// snapshotted when the line is added; the line is deleted when it converts
// to an order at checkout.
type CartItem struct {
	ID               uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerUsername string    `json:"customerUsername" gorm:"size:100;not null;index"`
	ProductID        string    `json:"productId" gorm:"size:50;not null"`
	ProductName      string    `json:"productName" gorm:"size:255;not null"`
	Quantity         int       `json:"quantity" gorm:"default:1"`
	UnitPrice        float64   `json:"unitPrice" gorm:"not null"`
	AddedAt          time.Time `json:"addedAt" gorm:"autoCreateTime"`
}
