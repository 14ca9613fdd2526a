package mysql

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Save(customer *domain.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) Update(customer *domain.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) FindByID(id string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindByUsername(username string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.First(&c, "LOWER(username) = LOWER(?)", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindAllActive() ([]domain.Customer, error) {
	var out []domain.Customer
	if err := r.db.Where("is_active = ?", true).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) Delete(id string) error {
	return r.db.Delete(&domain.Customer{}, "id = ?", id).Error
}
