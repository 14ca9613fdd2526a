package mysql

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type uploadRepo struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) repository.UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Save(upload *domain.Upload) error {
	return r.db.Create(upload).Error
}

func (r *uploadRepo) FindByID(id string) (*domain.Upload, error) {
	var u domain.Upload
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *uploadRepo) FindAll() ([]domain.Upload, error) {
	var out []domain.Upload
	if err := r.db.Order("uploaded_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *uploadRepo) Delete(id string) error {
	return r.db.Delete(&domain.Upload{}, "id = ?", id).Error
}
