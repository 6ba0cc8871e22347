package domain

import (
	"context"
	"time"
)

// City is a location tracked on a user's dashboard.
type City struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Country    string    `json:"country"`
	Lat        *float64  `json:"lat"`
	Lon        *float64  `json:"lon"`
	IsFavorite bool      `json:"isFavorite"`
	Notes      *string   `json:"notes"`
	AddedAt    time.Time `json:"addedAt"`
}

// AddCityRequest is the payload for POST /api/cities.
type AddCityRequest struct {
	Name    string   `json:"name" validate:"min=1,max=100"`
	Country string   `json:"country" validate:"min=2,max=10"`
	Lat     *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon     *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateNotesRequest is the payload for PATCH /api/cities/:id/notes.
// A missing or null notes field clears the notes.
type UpdateNotesRequest struct {
	Notes *string `json:"notes"`
}

// CityRepository defines the data-access contract for city operations.
// Every method is scoped to the owning user: a city owned by someone else
// behaves exactly like a missing one.
type CityRepository interface {
	// ListByUser returns the user's cities ordered by added_at ascending.
	ListByUser(ctx context.Context, userID string) ([]City, error)

	// Create inserts a city. Returns ErrDuplicate when (user, name, country) exists.
	Create(ctx context.Context, userID, name, country string, lat, lon *float64) (*City, error)

	// Delete removes an owned city. Returns false when nothing matched.
	Delete(ctx context.Context, userID, cityID string) (bool, error)

	// ToggleFavorite flips is_favorite in one statement.
	// Returns (nil, nil) when no owned city matches.
	ToggleFavorite(ctx context.Context, userID, cityID string) (*City, error)

	// UpdateNotes sets or clears (nil) the notes.
	// Returns (nil, nil) when no owned city matches.
	UpdateNotes(ctx context.Context, userID, cityID string, notes *string) (*City, error)
}
