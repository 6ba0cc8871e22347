package domain

import (
	"context"
	"time"
)

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials.
type UserRow struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User strips the credential material from the row.
func (r *UserRow) User() User {
	return User{ID: r.ID, Email: r.Email, Name: r.Name}
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"min=2,max=100"`
	Password string `json:"password" validate:"min=8,max=72"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login. The token travels in a
// cookie, never in the JSON body.
type AuthResponse struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
	User      User      `json:"user"`
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only, never on SQL or pgx directly.
type UserRepository interface {
	// GetByEmail returns the user matching the given email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserRow, error)

	// GetByID returns the user with the given id.
	// Returns (nil, nil) when no user is found.
	GetByID(ctx context.Context, id string) (*UserRow, error)

	// Create inserts a new user. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, email, name, passwordHash string) (*UserRow, error)
}
