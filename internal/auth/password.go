package auth

import (
	"errors"

	"github.com/isdelr/course-api-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Hasher turns secrets into storable one-way hashes and checks them later.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) (bool, error)
}

// BcryptHasher implements Hasher with bcrypt. The salt and cost are embedded in
// every hash it produces.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher using the given cost. Zero selects
// bcrypt.DefaultCost; other values are clamped to bcrypt's valid range.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the bcrypt cost used for new hashes.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash creates a bcrypt hash of secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", models.NewValidationError("password", "password must be at most 72 bytes")
		}
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether secret matches hash. The comparison is constant time.
func (h *BcryptHasher) Verify(secret, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ Hasher = (*BcryptHasher)(nil)
