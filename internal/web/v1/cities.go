package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/weather-service/internal/core/domain"
)

// ListCities handles GET /api/cities.
func (h *Handler) ListCities(c *gin.Context) {
	span := startSpan(c, "cities.list.http")
	defer span.End()

	cities, err := h.cities.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// AddCity handles POST /api/cities.
func (h *Handler) AddCity(c *gin.Context) {
	span := startSpan(c, "cities.add.http")
	defer span.End()

	var req domain.AddCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	city, err := h.cities.Add(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"city": city})
}

// DeleteCity handles DELETE /api/cities/:id.
func (h *Handler) DeleteCity(c *gin.Context) {
	span := startSpan(c, "cities.delete.http")
	defer span.End()

	cityID, ok := cityIDParam(c, span)
	if !ok {
		return
	}

	if err := h.cities.Remove(c.Request.Context(), currentUserID(c), cityID); err != nil {
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City removed"})
}

// ToggleFavorite handles PATCH /api/cities/:id/favorite.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	span := startSpan(c, "cities.favorite.http")
	defer span.End()

	cityID, ok := cityIDParam(c, span)
	if !ok {
		return
	}

	city, err := h.cities.ToggleFavorite(c.Request.Context(), currentUserID(c), cityID)
	if err != nil {
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"city": city})
}

// UpdateNotes handles PATCH /api/cities/:id/notes. An empty body or a null
// notes field clears the notes.
func (h *Handler) UpdateNotes(c *gin.Context) {
	span := startSpan(c, "cities.notes.http")
	defer span.End()

	cityID, ok := cityIDParam(c, span)
	if !ok {
		return
	}

	var req domain.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notes format"})
		return
	}

	city, err := h.cities.UpdateNotes(c.Request.Context(), currentUserID(c), cityID, req.Notes)
	if err != nil {
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"city": city})
}

// cityIDParam rejects ids that are not UUIDs before they reach the store.
func cityIDParam(c *gin.Context, span trace.Span) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city id"})
		return "", false
	}
	return id.String(), true
}
