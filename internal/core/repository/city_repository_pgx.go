package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/duynhne/weather-service/internal/core/domain"
)

// PgxCityRepository implements domain.CityRepository using pgx.
// Every statement filters on user_id.
type PgxCityRepository struct {
	db DBTX
}

// NewCityRepository creates a new PgxCityRepository.
func NewCityRepository(db DBTX) *PgxCityRepository {
	return &PgxCityRepository{db: db}
}

const cityColumns = `id, user_id, name, country, lat, lon, is_favorite, notes, added_at`

func scanCity(row pgx.Row) (*domain.City, error) {
	var c domain.City
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Country, &c.Lat, &c.Lon, &c.IsFavorite, &c.Notes, &c.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns the user's cities, oldest first.
func (r *PgxCityRepository) ListByUser(ctx context.Context, userID string) ([]domain.City, error) {
	query := `SELECT ` + cityColumns + ` FROM cities WHERE user_id = $1 ORDER BY added_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *c)
	}

	return cities, rows.Err()
}

// Create inserts a city for the user.
func (r *PgxCityRepository) Create(ctx context.Context, userID, name, country string, lat, lon *float64) (*domain.City, error) {
	query := `
		INSERT INTO cities (id, user_id, name, country, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + cityColumns

	c, err := scanCity(r.db.QueryRow(ctx, query, uuid.NewString(), userID, name, country, lat, lon))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert city %s/%s: %w", name, country, domain.ErrDuplicate)
		}
		return nil, err
	}

	return c, nil
}

// Delete removes the city only when it belongs to the user.
func (r *PgxCityRepository) Delete(ctx context.Context, userID, cityID string) (bool, error) {
	query := `DELETE FROM cities WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, cityID, userID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// ToggleFavorite flips is_favorite in a single statement so the
// read-modify-write is atomic in Postgres.
// Returns (nil, nil) when no owned city matches.
func (r *PgxCityRepository) ToggleFavorite(ctx context.Context, userID, cityID string) (*domain.City, error) {
	query := `
		UPDATE cities SET is_favorite = NOT is_favorite
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cityColumns

	return r.updateOne(ctx, query, cityID, userID)
}

// UpdateNotes sets the notes; nil clears them.
// Returns (nil, nil) when no owned city matches.
func (r *PgxCityRepository) UpdateNotes(ctx context.Context, userID, cityID string, notes *string) (*domain.City, error) {
	query := `
		UPDATE cities SET notes = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cityColumns

	return r.updateOne(ctx, query, cityID, userID, notes)
}

func (r *PgxCityRepository) updateOne(ctx context.Context, query string, args ...any) (*domain.City, error) {
	c, err := scanCity(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
