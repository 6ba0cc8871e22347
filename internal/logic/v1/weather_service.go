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

// WeatherService proxies current-weather lookups to the provider.
type WeatherService struct {
	provider domain.WeatherProvider
}

// NewWeatherService creates a new WeatherService backed by the given provider.
func NewWeatherService(provider domain.WeatherProvider) *WeatherService {
	return &WeatherService{provider: provider}
}

// Current returns live weather for a city name with an optional country code.
func (s *WeatherService) Current(ctx context.Context, cityName, country string) (*domain.WeatherSnapshot, error) {
	ctx, span := middleware.StartSpan(ctx, "weather.current", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("city.name", cityName),
		attribute.String("city.country", country),
	))
	defer span.End()

	// A blank name can never resolve to a location.
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return nil, fmt.Errorf("%w: blank city name", ErrWeatherNotFound)
	}

	snapshot, err := s.provider.FetchByCity(ctx, cityName, strings.TrimSpace(country))
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, domain.ErrLocationNotFound):
			return nil, fmt.Errorf("%w: %w", ErrWeatherNotFound, err)
		case errors.Is(err, domain.ErrProviderAuth):
			return nil, fmt.Errorf("%w: %w", ErrUpstreamAuth, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
	}

	return snapshot, nil
}
