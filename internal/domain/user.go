package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:50"`
	Username     string     `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:256;not null"`
	FirstName    string     `json:"firstName" gorm:"size:100"`
	LastName     string     `json:"lastName" gorm:"size:100"`
	Role         Role       `json:"role" gorm:"size:20;default:'Customer'"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	LastLogin    *time.Time `json:"lastLogin"`
}
