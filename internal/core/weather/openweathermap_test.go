package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/weather-service/internal/core/domain"
)

const londonBody = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 11.5, "feels_like": 10.49, "humidity": 81},
	"wind": {"speed": 4.63},
	"sys": {"country": "GB"},
	"id": 2643743,
	"name": "London"
}`

func TestFetchByCity_MapsFields(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-1", time.Second)
	snap, err := c.FetchByCity(context.Background(), "London", "GB")
	require.NoError(t, err)

	assert.Equal(t, []string{"London,GB"}, gotQuery["q"])
	assert.Equal(t, []string{"metric"}, gotQuery["units"])
	assert.Equal(t, []string{"key-1"}, gotQuery["appid"])

	assert.Equal(t, &domain.WeatherSnapshot{
		CityID:      2643743,
		CityName:    "London",
		Country:     "GB",
		Temperature: 12,
		FeelsLike:   10,
		Humidity:    81,
		WindSpeed:   4.63,
		Condition:   "Rain",
		Description: "light rain",
		Icon:        "10d",
		Lat:         51.5085,
		Lon:         -0.1257,
	}, snap)
}

func TestFetchByCity_WithoutCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"name":"Paris","main":{"temp":-2.5,"feels_like":-2.51},"weather":[]}`))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL, "k", time.Second).FetchByCity(context.Background(), "Paris", "")
	require.NoError(t, err)
	assert.Equal(t, -2.0, snap.Temperature)
	assert.Equal(t, -3.0, snap.FeelsLike)
	assert.Empty(t, snap.Condition)
}

func TestFetchByCity_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, domain.ErrLocationNotFound},
		{"bad key", http.StatusUnauthorized, domain.ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, domain.ErrProviderUnavailable},
		{"server error", http.StatusBadGateway, domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"cod":"x","message":"secret upstream detail"}`))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "k", time.Second).FetchByCity(context.Background(), "Nowhere", "")
			require.ErrorIs(t, err, tt.want)
			assert.NotContains(t, err.Error(), "secret upstream detail")
		})
	}
}

func TestFetchByCity_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", time.Second).FetchByCity(context.Background(), "London", "")
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestFetchByCity_HonoursCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, "k", 5*time.Second).FetchByCity(ctx, "London", "")
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
}
