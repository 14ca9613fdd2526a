package services

import (
	"time"

	"storefront/internal/domain"
)

func CreateMockCustomer(id, name, surname, username string) *domain.Customer {
	return &domain.Customer{
		ID:       id,
		Name:     name,
		Surname:  surname,
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
}

func CreateMockProduct(id, name string, price float64, stock int) *domain.Product {
	return &domain.Product{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

func CreateMockOrder(id string, status domain.OrderStatus, customerName string, totalPrice float64) *domain.Order {
	return &domain.Order{
		ID:           id,
		CustomerID:   "1",
		CustomerName: customerName,
		ProductID:    TestProductID,
		ProductName:  TestProductName,
		OrderDate:    time.Now(),
		Quantity:     1,
		UnitPrice:    totalPrice,
		TotalPrice:   totalPrice,
		Status:       status,
	}
}

func CreateMockCartItem(id uint64, username, productID string, quantity int, unitPrice float64) domain.CartItem {
	return domain.CartItem{
		ID:               id,
		CustomerUsername: username,
		ProductID:        productID,
		ProductName:      TestProductName,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		AddedAt:          time.Now(),
	}
}

const (
	TestCustomerID   = "1"
	TestProductID    = "1"
	TestProductName  = "Laptop"
	TestProductPrice = 999.99
	TestUsername     = "alice"
)
