package v1

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pkgzerolog "github.com/duynhne/pkg/logger/zerolog"
	logicv1 "github.com/duynhne/weather-service/internal/logic/v1"
	"github.com/duynhne/weather-service/middleware"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler groups HTTP handlers for the dashboard API v1.
// Dependencies are injected via the constructor, no global state.
type Handler struct {
	auth    *logicv1.AuthService
	cities  *logicv1.CityService
	weather *logicv1.WeatherService
	cookie  CookieConfig
}

// NewHandler creates a new Handler.
func NewHandler(auth *logicv1.AuthService, cities *logicv1.CityService, weather *logicv1.WeatherService, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &Handler{
		auth:    auth,
		cities:  cities,
		weather: weather,
		cookie:  cookie,
	}
}

// RegisterRoutes registers all API v1 routes on the given router group.
// authGuards run in front of register and login only (rate limiting).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authGuards ...gin.HandlerFunc) {
	guarded := func(final gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(authGuards), final)
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/register", guarded(h.Register)...)
		auth.POST("/login", guarded(h.Login)...)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.RequireSession(), h.GetMe)
	}

	cities := rg.Group("/cities", h.RequireSession())
	{
		cities.GET("", h.ListCities)
		cities.POST("", h.AddCity)
		cities.DELETE("/:id", h.DeleteCity)
		cities.PATCH("/:id/favorite", h.ToggleFavorite)
		cities.PATCH("/:id/notes", h.UpdateNotes)
	}

	rg.GET("/weather/:cityName", h.RequireSession(), h.GetWeather)
}

// RequireSession verifies the session cookie and stores the user id on the context.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookie.Name)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: no token provided"})
			return
		}

		userID, err := h.auth.VerifySession(token)
		if err != nil {
			pkgzerolog.FromContext(c.Request.Context()).Warn().Err(err).Msg("Session rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: invalid or expired token"})
			return
		}

		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func startSpan(c *gin.Context, name string) trace.Span {
	ctx, span := middleware.StartSpan(c.Request.Context(), name, trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("route", c.FullPath()),
	))
	c.Request = c.Request.WithContext(ctx)
	return span
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, h.auth.SessionMaxAge(), "/", "", h.cookie.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}

// fail maps a logic error to its status code and a client-safe body.
func fail(c *gin.Context, span trace.Span, err error) {
	status, body := errorResponse(err)

	log := pkgzerolog.FromContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		span.RecordError(err)
		log.Error().Err(err).Str("route", c.FullPath()).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("route", c.FullPath()).Int("status", status).Msg("Request rejected")
	}

	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, gin.H) {
	var verr *logicv1.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, gin.H{"error": "Invalid input", "details": verr.Fields}
	case errors.Is(err, logicv1.ErrValidation):
		return http.StatusBadRequest, gin.H{"error": "Invalid input"}
	case errors.Is(err, logicv1.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"error": "Invalid email or password"}
	case errors.Is(err, logicv1.ErrUnauthenticated):
		return http.StatusUnauthorized, gin.H{"error": "Unauthorized"}
	case errors.Is(err, logicv1.ErrUserExists):
		return http.StatusConflict, gin.H{"error": "Email already in use"}
	case errors.Is(err, logicv1.ErrUserNotFound):
		return http.StatusNotFound, gin.H{"error": "User not found"}
	case errors.Is(err, logicv1.ErrCityExists):
		return http.StatusConflict, gin.H{"error": "City already on your dashboard"}
	case errors.Is(err, logicv1.ErrCityNotFound):
		return http.StatusNotFound, gin.H{"error": "City not found"}
	case errors.Is(err, logicv1.ErrWeatherNotFound):
		return http.StatusNotFound, gin.H{"error": "City not found"}
	case errors.Is(err, logicv1.ErrUpstreamAuth):
		return http.StatusInternalServerError, gin.H{"error": "Weather provider rejected the API key"}
	case errors.Is(err, logicv1.ErrUpstream):
		return http.StatusInternalServerError, gin.H{"error": "Weather provider unavailable"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "Internal server error"}
	}
}
