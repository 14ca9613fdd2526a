package domain

type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;size:50"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"size:1000"`
	Price       float64 `json:"price" gorm:"not null"`
	Stock       int     `json:"stock" gorm:"default:0"`
}
