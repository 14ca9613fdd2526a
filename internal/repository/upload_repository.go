package repository

import (
	"storefront/internal/domain"
)

type UploadRepository interface {
	Save(upload *domain.Upload) error
	FindByID(id string) (*domain.Upload, error)
	FindAll() ([]domain.Upload, error)
	Delete(id string) error
}
