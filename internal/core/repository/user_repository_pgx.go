package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/duynhne/weather-service/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository using pgx.
type PgxUserRepository struct {
	db DBTX
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db DBTX) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, created_at, updated_at`

// GetByEmail returns the user matching the given email.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRow, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByID(ctx context.Context, id string) (*domain.UserRow, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.UserRow, error) {
	var row domain.UserRow
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.Email, &row.Name, &row.PasswordHash, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Create inserts a new user. The unique index on email turns a concurrent
// duplicate registration into domain.ErrDuplicate.
func (r *PgxUserRepository) Create(ctx context.Context, email, name, passwordHash string) (*domain.UserRow, error) {
	query := `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var row domain.UserRow
	err := r.db.QueryRow(ctx, query, uuid.NewString(), email, name, passwordHash).Scan(
		&row.ID, &row.Email, &row.Name, &row.PasswordHash, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user %q: %w", email, domain.ErrDuplicate)
		}
		return nil, err
	}

	return &row, nil
}
