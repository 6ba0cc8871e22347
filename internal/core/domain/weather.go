package domain

import (
	"context"
	"errors"
)

// WeatherSnapshot is current weather normalized from the upstream provider.
type WeatherSnapshot struct {
	CityID      int64   `json:"cityId"`
	CityName    string  `json:"cityName"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// WeatherProvider fetches live weather. Implementations must not cache.
type WeatherProvider interface {
	FetchByCity(ctx context.Context, name, country string) (*WeatherSnapshot, error)
}

var (
	// ErrLocationNotFound is returned when the provider does not know the location.
	ErrLocationNotFound = errors.New("location not found")

	// ErrProviderAuth is returned when the provider rejects our API key.
	ErrProviderAuth = errors.New("weather provider rejected credentials")

	// ErrProviderUnavailable covers every other upstream failure.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)
