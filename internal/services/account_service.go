package services

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown-user and
	// wrong-password so the login form cannot be used to enumerate
	// usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account has been deactivated")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
)

type AccountService struct {
	users     repository.UserRepository
	publisher rabbit.EventPublisher
}

func NewAccountService(users repository.UserRepository, publisher rabbit.EventPublisher) *AccountService {
	return &AccountService{users: users, publisher: publisher}
}

// Register creates a new user. The role is always Customer regardless of
// what the caller asks for; admin accounts are seeded, never registered.
func (s *AccountService) Register(ctx context.Context, username, email, firstName, lastName, password string) (*domain.User, error) {
	taken, err := s.users.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleCustomer,
		IsActive:     true,
		CreatedAt:    now,
		LastLogin:    &now,
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	go s.publishUserRegistered(context.Background(), user)

	return user, nil
}

// Authenticate verifies the credentials for a username or email and
// touches the last-login timestamp on success.
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.users.FindByLogin(login)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		log.Printf("authentication failed for login %q", login)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Printf("login attempt for inactive account %q", user.Username)
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(user); err != nil {
		log.Printf("failed to touch last login for %q: %v", user.Username, err)
	}

	return user, nil
}

func (s *AccountService) GetUserByUsername(username string) (*domain.User, error) {
	return s.users.FindByUsername(username)
}

func (s *AccountService) GetUserByID(id string) (*domain.User, error) {
	return s.users.FindByID(id)
}

func (s *AccountService) publishUserRegistered(ctx context.Context, user *domain.User) {
	evt := domain.UserRegisteredEvent{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "user.registered", evt); err != nil {
		log.Printf("failed to publish user.registered: %v", err)
	}
}
