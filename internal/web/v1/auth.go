package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgzerolog "github.com/duynhne/pkg/logger/zerolog"
	"github.com/duynhne/weather-service/internal/core/domain"
)

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	span := startSpan(c, "auth.register.http")
	defer span.End()

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	response, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, span, err)
		return
	}

	h.setSessionCookie(c, response.Token)
	pkgzerolog.FromContext(c.Request.Context()).Info().Str("user_id", response.User.ID).Msg("Registration successful")
	c.JSON(http.StatusCreated, gin.H{"user": response.User})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	span := startSpan(c, "auth.login.http")
	defer span.End()

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	response, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, span, err)
		return
	}

	h.setSessionCookie(c, response.Token)
	pkgzerolog.FromContext(c.Request.Context()).Info().Str("user_id", response.User.ID).Msg("Login successful")
	c.JSON(http.StatusOK, gin.H{"user": response.User})
}

// GetMe handles GET /api/auth/me.
func (h *Handler) GetMe(c *gin.Context) {
	span := startSpan(c, "auth.me.http")
	defer span.End()

	user, err := h.auth.GetMe(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout handles POST /api/auth/logout. The token itself stays valid until it
// expires; only the browser copy is dropped.
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
