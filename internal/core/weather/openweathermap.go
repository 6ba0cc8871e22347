// Package weather is the OpenWeatherMap gateway. Every call is a live round
// trip: no retries, no caching.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/duynhne/weather-service/internal/core/domain"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client implements domain.WeatherProvider against the OpenWeatherMap
// current weather endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client with an OpenTelemetry-instrumented transport.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// owmResponse is the subset of /weather we map.
type owmResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// FetchByCity queries by "name" or "name,country" in metric units.
func (c *Client) FetchByCity(ctx context.Context, name, country string) (*domain.WeatherSnapshot, error) {
	q := name
	if country != "" {
		q = name + "," + country
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues("error").Inc()
		// *url.Error embeds the request URL, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("fetch weather for %q: %w: %v", q, domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		upstreamRequests.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("fetch weather for %q: %w", q, domain.ErrLocationNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		upstreamRequests.WithLabelValues("unauthorized").Inc()
		return nil, fmt.Errorf("fetch weather for %q: %w", q, domain.ErrProviderAuth)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		upstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch weather for %q: status %d: %w", q, resp.StatusCode, domain.ErrProviderUnavailable)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		upstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode weather for %q: %w: %v", q, domain.ErrProviderUnavailable, err)
	}
	upstreamRequests.WithLabelValues("ok").Inc()

	return normalize(&body), nil
}

func normalize(body *owmResponse) *domain.WeatherSnapshot {
	s := &domain.WeatherSnapshot{
		CityID:      body.ID,
		CityName:    body.Name,
		Country:     body.Sys.Country,
		Temperature: roundHalfUp(body.Main.Temp),
		FeelsLike:   roundHalfUp(body.Main.FeelsLike),
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
		Lat:         body.Coord.Lat,
		Lon:         body.Coord.Lon,
	}
	if len(body.Weather) > 0 {
		s.Condition = body.Weather[0].Main
		s.Description = body.Weather[0].Description
		s.Icon = body.Weather[0].Icon
	}
	return s
}

// roundHalfUp rounds .5 toward positive infinity (-2.5 becomes -2).
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
