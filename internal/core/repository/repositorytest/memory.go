// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duynhne/weather-service/internal/core/domain"
)

// UserRepository is an in-process domain.UserRepository that enforces
// the same email uniqueness as the users table.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.UserRow
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.UserRow)}
}

// GetByEmail returns the user with the given email, or nil when none exists.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			row := *u
			return &row, nil
		}
	}
	return nil, nil
}

// GetByID returns the user with the given id, or nil when none exists.
func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	row := *u
	return &row, nil
}

// Create stores a new user. A taken email yields domain.ErrDuplicate.
func (r *UserRepository) Create(_ context.Context, email, name, passwordHash string) (*domain.UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return nil, fmt.Errorf("insert user %q: %w", email, domain.ErrDuplicate)
		}
	}

	now := time.Now().UTC()
	row := &domain.UserRow{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[row.ID] = row

	out := *row
	return &out, nil
}

// CityRepository is an in-process domain.CityRepository.
// Cities are kept in insertion order, which is added_at order.
type CityRepository struct {
	mu     sync.Mutex
	cities []*domain.City
}

// NewCityRepository creates an empty CityRepository.
func NewCityRepository() *CityRepository {
	return &CityRepository{}
}

// ListByUser returns the user's cities in the order they were added.
func (r *CityRepository) ListByUser(_ context.Context, userID string) ([]domain.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.City, 0)
	for _, c := range r.cities {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Create adds a city for the user. A repeated name and country yields domain.ErrDuplicate.
func (r *CityRepository) Create(_ context.Context, userID, name, country string, lat, lon *float64) (*domain.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.cities {
		if c.UserID == userID && c.Name == name && c.Country == country {
			return nil, fmt.Errorf("insert city %s/%s: %w", name, country, domain.ErrDuplicate)
		}
	}

	c := &domain.City{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    name,
		Country: country,
		Lat:     lat,
		Lon:     lon,
		AddedAt: time.Now().UTC(),
	}
	r.cities = append(r.cities, c)

	out := *c
	return &out, nil
}

// Delete removes the city if the user owns it and reports whether it did.
func (r *CityRepository) Delete(_ context.Context, userID, cityID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, cityID)
	if i < 0 {
		return false, nil
	}
	r.cities = slices.Delete(r.cities, i, i+1)
	return true, nil
}

// ToggleFavorite flips the favorite flag, or returns nil when the user does not own the city.
func (r *CityRepository) ToggleFavorite(_ context.Context, userID, cityID string) (*domain.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, cityID)
	if i < 0 {
		return nil, nil
	}
	r.cities[i].IsFavorite = !r.cities[i].IsFavorite

	out := *r.cities[i]
	return &out, nil
}

// UpdateNotes replaces the notes, or returns nil when the user does not own the city.
func (r *CityRepository) UpdateNotes(_ context.Context, userID, cityID string, notes *string) (*domain.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, cityID)
	if i < 0 {
		return nil, nil
	}
	if notes != nil {
		v := *notes
		notes = &v
	}
	r.cities[i].Notes = notes

	out := *r.cities[i]
	return &out, nil
}

func (r *CityRepository) indexOf(userID, cityID string) int {
	return slices.IndexFunc(r.cities, func(c *domain.City) bool {
		return c.ID == cityID && c.UserID == userID
	})
}
