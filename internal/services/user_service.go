package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/course-api-be/internal/auth"
	"github.com/isdelr/course-api-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, input UserInput) (*models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
}

// UserInput holds the fields of a new account. Password is plaintext.
type UserInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

// UserService provides business logic for user management.
type UserService struct {
	users  models.UserRepository
	hasher auth.Hasher
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(users models.UserRepository, hasher auth.Hasher, events EventServiceProvider) *UserService {
	return &UserService{users: users, hasher: hasher, events: events}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		EmailAddress: input.EmailAddress,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	recordEvent(ctx, s.events, models.EventUserCreate, models.LevelInfo,
		fmt.Sprintf("User %s signed up", user.EmailAddress), &user.ID, nil)
	return user, nil
}

// AuthenticateUser checks a user's credentials and returns the user if valid.
// Failures match models.ErrUnauthorized.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", auth.ErrUserNotFound, email)
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for %s: %w", email, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", auth.ErrPasswordMismatch, email)
	}
	return user, nil
}

var _ auth.Authenticator = (*UserService)(nil)
