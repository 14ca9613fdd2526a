package repository

import (
	"storefront/internal/domain"
)

type OrderRepository interface {
	Save(order *domain.Order) error
	// SaveBatch inserts all orders in a single transaction; either every
	// order is persisted or none is.
	SaveBatch(orders []*domain.Order) error
	FindByID(id string) (*domain.Order, error)
	FindAll() ([]domain.Order, error)
	UpdateStatus(id string, status domain.OrderStatus) error
	Delete(id string) error
}
