package domain

type Customer struct {
	ID              string `json:"id" gorm:"primaryKey;size:50"`
	Name            string `json:"name" gorm:"size:100;not null"`
	Surname         string `json:"surname" gorm:"size:100;not null"`
	Username        string `json:"username" gorm:"size:100;not null;index"`
	Email           string `json:"email" gorm:"size:255"`
	ShippingAddress string `json:"shippingAddress" gorm:"size:500"`
	IsActive        bool   `json:"isActive" gorm:"default:true"`
}

// FullName is the value snapshotted into orders at creation time.
func (c *Customer) FullName() string {
	return c.Name + " " + c.Surname
}
