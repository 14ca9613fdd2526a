package services

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) List() ([]domain.Customer, error) {
	return s.customers.FindAllActive()
}

func (s *CustomerService) Get(id string) (*domain.Customer, error) {
	c, err := s.customers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

func (s *CustomerService) Create(customer *domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.IsActive = true

	if err := s.customers.Save(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(id string, customer *domain.Customer) (*domain.Customer, error) {
	existing, err := s.customers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCustomerNotFound
	}

	existing.Name = customer.Name
	existing.Surname = customer.Surname
	existing.Username = customer.Username
	existing.Email = customer.Email
	existing.ShippingAddress = customer.ShippingAddress
	existing.IsActive = customer.IsActive

	if err := s.customers.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the customer profile. Existing orders keep their
// snapshotted customer name, so nothing cascades.
func (s *CustomerService) Delete(id string) error {
	existing, err := s.customers.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCustomerNotFound
	}
	return s.customers.Delete(id)
}
