package repository

import (
	"storefront/internal/domain"
)

type CustomerRepository interface {
	Save(customer *domain.Customer) error
	Update(customer *domain.Customer) error
	FindByID(id string) (*domain.Customer, error)
	// FindByUsername is a case-insensitive exact match.
	FindByUsername(username string) (*domain.Customer, error)
	FindAllActive() ([]domain.Customer, error)
	Delete(id string) error
}
