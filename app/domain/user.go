package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated principal in the store.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"isAdmin"`
	PasswordHash string     `json:"-"` // Exclude from JSON
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// NewUser creates a new user with validation
func NewUser(username, email, passwordHash string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}

	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now()

	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RecordLogin records the last login time
func (u *User) RecordLogin(loginTime time.Time) {
	u.LastLoginAt = &loginTime
	u.UpdatedAt = time.Now()
}

// Identity is the client-side view of the authenticated principal,
// as returned by GET /auth/me.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}
