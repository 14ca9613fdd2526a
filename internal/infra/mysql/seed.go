package mysql

import (
	"log"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"

	"gorm.io/gorm"
)

// Seed loads the demo accounts, catalog and sample orders into an empty
// database. Each table is only populated when it has no rows yet.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&domain.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		adminHash, err := auth.HashPassword("admin123")
		if err != nil {
			return err
		}
		customerHash, err := auth.HashPassword("password123")
		if err != nil {
			return err
		}
		users := []domain.User{
			{
				ID:           "1",
				Username:     "admin",
				Email:        "admin@abcretail.com",
				PasswordHash: adminHash,
				FirstName:    "System",
				LastName:     "Administrator",
				Role:         domain.RoleAdmin,
				IsActive:     true,
			},
			{
				ID:           "2",
				Username:     "john.doe",
				Email:        "john.doe@example.com",
				PasswordHash: customerHash,
				FirstName:    "John",
				LastName:     "Doe",
				Role:         domain.RoleCustomer,
				IsActive:     true,
			},
		}
		if err := db.Create(&users).Error; err != nil {
			return err
		}
		log.Printf("seeded %d users", len(users))
	}

	var customerCount int64
	if err := db.Model(&domain.Customer{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if customerCount == 0 {
		customers := []domain.Customer{
			{ID: "1", Name: "John", Surname: "Doe", Username: "johndoe", Email: "john@example.com", ShippingAddress: "123 Main St, City, State", IsActive: true},
			{ID: "2", Name: "Jane", Surname: "Smith", Username: "janesmith", Email: "jane@example.com", ShippingAddress: "456 Oak Ave, City, State", IsActive: true},
		}
		if err := db.Create(&customers).Error; err != nil {
			return err
		}
	}

	var productCount int64
	if err := db.Model(&domain.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		products := []domain.Product{
			{ID: "1", Name: "Laptop", Description: "High-performance laptop with 16GB RAM", Price: 999.99, Stock: 10},
			{ID: "2", Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", Price: 29.99, Stock: 25},
			{ID: "3", Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard", Price: 89.99, Stock: 15},
		}
		if err := db.Create(&products).Error; err != nil {
			return err
		}
	}

	var orderCount int64
	if err := db.Model(&domain.Order{}).Count(&orderCount).Error; err != nil {
		return err
	}
	if orderCount == 0 {
		orders := []domain.Order{
			{
				ID: "1", CustomerID: "1", CustomerName: "John Doe",
				ProductID: "1", ProductName: "Laptop",
				OrderDate: time.Now().AddDate(0, 0, -2),
				Quantity:  1, UnitPrice: 999.99, TotalPrice: 999.99,
				Status: domain.StatusCompleted,
			},
			{
				ID: "2", CustomerID: "2", CustomerName: "Jane Smith",
				ProductID: "2", ProductName: "Wireless Mouse",
				OrderDate: time.Now().AddDate(0, 0, -1),
				Quantity:  2, UnitPrice: 29.99, TotalPrice: 59.98,
				Status: domain.StatusPending,
			},
		}
		if err := db.Create(&orders).Error; err != nil {
			return err
		}
	}

	return nil
}
