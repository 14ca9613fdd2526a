package services

import (
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrNameRequired    = errors.New("product name is required")
)

type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List() ([]domain.Product, error) {
	return s.products.FindAll()
}

// Search filters the catalog by a case-insensitive substring match over
// the product name and description. A blank query returns the full list.
func (s *ProductService) Search(query string) ([]domain.Product, error) {
	all, err := s.products.FindAll()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *ProductService) Get(id string) (*domain.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) Create(product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		return nil, ErrNameRequired
	}
	if product.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	if err := s.products.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(id string, product *domain.Product) (*domain.Product, error) {
	if product.Price < 0 {
		return nil, ErrInvalidPrice
	}

	existing, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Stock = product.Stock

	if err := s.products.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ProductService) Delete(id string) error {
	existing, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.products.Delete(id)
}
