package domain

import (
	"errors"
	"strings"
	"time"
)

// =============================================================================
// Customer Errors
// =============================================================================

var (
	ErrEmptyUsername = errors.New("username must not be empty")
	ErrInvalidEmail  = errors.New("email address is invalid")
)

// =============================================================================
// Customer
// =============================================================================

// Customer is an account that can place orders. PasswordHash holds a bcrypt
// hash and never leaves the store/API boundary.
type Customer struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCustomer creates a customer with an already-hashed password.
func NewCustomer(username, email, passwordHash string) (*Customer, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	return &Customer{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
