package repository

import (
	"storefront/internal/domain"
)

type CartRepository interface {
	Save(item *domain.CartItem) error
	FindByID(id uint64) (*domain.CartItem, error)
	FindByUsername(username string) ([]domain.CartItem, error)
	// ClaimByUsername removes and returns all lines for the username in one
	// transaction. Two concurrent claims on the same cart cannot both
	// receive the same line.
	ClaimByUsername(username string) ([]domain.CartItem, error)
	// Restore puts claimed lines back after a failed checkout.
	Restore(items []domain.CartItem) error
	Delete(id uint64) error
	Clear(username string) error
}
