package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/course-api-be/internal/models"
)

// UserRepository implements models.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user, assigning a new ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email_address, password_hash)
		 VALUES (?, ?, ?, ?, ?)`,
		id, user.FirstName, user.LastName, user.EmailAddress, user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkID("user", id); err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email_address, password_hash
		 FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email_address, password_hash
		 FROM users WHERE email_address = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	err := scanner.Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

var _ models.UserRepository = (*UserRepository)(nil)
