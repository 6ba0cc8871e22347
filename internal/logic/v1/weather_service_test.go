package v1

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/weather-service/internal/core/domain"
)

type stubProvider struct {
	snapshot *domain.WeatherSnapshot
	err      error

	gotName, gotCountry string
}

func (p *stubProvider) FetchByCity(_ context.Context, name, country string) (*domain.WeatherSnapshot, error) {
	p.gotName, p.gotCountry = name, country
	return p.snapshot, p.err
}

func TestWeatherService_Current(t *testing.T) {
	p := &stubProvider{snapshot: &domain.WeatherSnapshot{CityName: "London", Temperature: 12}}
	svc := NewWeatherService(p)

	snap, err := svc.Current(context.Background(), "London", " GB ")
	require.NoError(t, err)
	assert.Equal(t, "London", snap.CityName)
	assert.Equal(t, "GB", p.gotCountry)
}

func TestWeatherService_ErrorMapping(t *testing.T) {
	tests := []struct {
		upstream error
		want     error
	}{
		{domain.ErrLocationNotFound, ErrWeatherNotFound},
		{domain.ErrProviderAuth, ErrUpstreamAuth},
		{domain.ErrProviderUnavailable, ErrUpstream},
		{fmt.Errorf("boom"), ErrUpstream},
	}

	for _, tt := range tests {
		svc := NewWeatherService(&stubProvider{err: fmt.Errorf("fetch: %w", tt.upstream)})
		_, err := svc.Current(context.Background(), "Atlantis", "")
		assert.ErrorIs(t, err, tt.want)
	}
}

func TestWeatherService_BlankNameIsNotFound(t *testing.T) {
	p := &stubProvider{}
	_, err := NewWeatherService(p).Current(context.Background(), "  ", "")
	require.ErrorIs(t, err, ErrWeatherNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Empty(t, p.gotName, "provider must not be called")
}
