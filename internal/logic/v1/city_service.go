package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/weather-service/internal/core/domain"
	"github.com/duynhne/weather-service/middleware"
)

// CityService manages a user's tracked cities. Every call is owner-scoped.
type CityService struct {
	cities domain.CityRepository
}

// NewCityService creates a new CityService backed by the given repository.
func NewCityService(cities domain.CityRepository) *CityService {
	return &CityService{cities: cities}
}

func (s *CityService) span(ctx context.Context, name, userID string) (context.Context, trace.Span) {
	return middleware.StartSpan(ctx, name, trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
}

// List returns the user's cities ordered by when they were added.
func (s *CityService) List(ctx context.Context, userID string) ([]domain.City, error) {
	ctx, span := s.span(ctx, "cities.list", userID)
	defer span.End()

	cities, err := s.cities.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list cities: %w", err)
	}
	span.SetAttributes(attribute.Int("cities.count", len(cities)))

	return cities, nil
}

// Add tracks a new city. The country code is stored upper-cased.
func (s *CityService) Add(ctx context.Context, userID string, req domain.AddCityRequest) (*domain.City, error) {
	ctx, span := s.span(ctx, "cities.add", userID)
	defer span.End()

	req.Name = strings.TrimSpace(req.Name)
	req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	if err := validateStruct(req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return nil, err
	}

	city, err := s.cities.Create(ctx, userID, req.Name, req.Country, req.Lat, req.Lon)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("add city %s/%s: %w", req.Name, req.Country, ErrCityExists)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("add city: %w", err)
	}

	span.AddEvent("city.added")
	return city, nil
}

// Remove deletes an owned city.
func (s *CityService) Remove(ctx context.Context, userID, cityID string) error {
	ctx, span := s.span(ctx, "cities.remove", userID)
	defer span.End()

	deleted, err := s.cities.Delete(ctx, userID, cityID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove city %s: %w", cityID, err)
	}
	if !deleted {
		return fmt.Errorf("remove city %s: %w", cityID, ErrCityNotFound)
	}

	return nil
}

// ToggleFavorite flips the favorite flag of an owned city.
// Concurrent toggles are serialized by the store; the last write wins.
func (s *CityService) ToggleFavorite(ctx context.Context, userID, cityID string) (*domain.City, error) {
	ctx, span := s.span(ctx, "cities.toggle_favorite", userID)
	defer span.End()

	city, err := s.cities.ToggleFavorite(ctx, userID, cityID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("toggle favorite %s: %w", cityID, err)
	}
	if city == nil {
		return nil, fmt.Errorf("toggle favorite %s: %w", cityID, ErrCityNotFound)
	}

	span.SetAttributes(attribute.Bool("city.favorite", city.IsFavorite))
	return city, nil
}

// UpdateNotes sets the notes of an owned city; nil clears them.
func (s *CityService) UpdateNotes(ctx context.Context, userID, cityID string, notes *string) (*domain.City, error) {
	ctx, span := s.span(ctx, "cities.update_notes", userID)
	defer span.End()

	city, err := s.cities.UpdateNotes(ctx, userID, cityID, notes)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update notes %s: %w", cityID, err)
	}
	if city == nil {
		return nil, fmt.Errorf("update notes %s: %w", cityID, ErrCityNotFound)
	}

	return city, nil
}
