package repository

import (
	"storefront/internal/domain"
)

type ProductRepository interface {
	Save(product *domain.Product) error
	Update(product *domain.Product) error
	FindByID(id string) (*domain.Product, error)
	FindAll() ([]domain.Product, error)
	Delete(id string) error
}
