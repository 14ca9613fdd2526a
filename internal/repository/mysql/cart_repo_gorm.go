package mysql

import (
	"errors"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Save(item *domain.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		log.Printf("cart save error: %v", err)
		return err
	}
	return nil
}

func (r *cartRepo) FindByID(id uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindByUsername(username string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	if err := r.db.Where("customer_username = ?", username).Order("added_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimByUsername locks, reads and deletes all lines for the username in a
// single transaction. A line handed to one caller is never handed to
// another, which is what keeps concurrent checkouts from double-ordering.
func (r *cartRepo) ClaimByUsername(username string) ([]domain.CartItem, error) {
	var claimed []domain.CartItem

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_username = ?", username).
			Order("added_at DESC").
			Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}
		ids := make([]uint64, 0, len(claimed))
		for _, item := range claimed {
			ids = append(ids, item.ID)
		}
		return tx.Delete(&domain.CartItem{}, "id IN ?", ids).Error
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *cartRepo) Restore(items []domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			items[i].ID = 0
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *cartRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.CartItem{}, id).Error
}

func (r *cartRepo) Clear(username string) error {
	return r.db.Delete(&domain.CartItem{}, "customer_username = ?", username).Error
}
