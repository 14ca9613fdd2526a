package repository

import (
	"storefront/internal/domain"
)

type UserRepository interface {
	Save(user *domain.User) error
	Update(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	// FindByLogin matches either username or email.
	FindByLogin(login string) (*domain.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
}
