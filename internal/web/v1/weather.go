package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	logicv1 "github.com/duynhne/weather-service/internal/logic/v1"
)

// GetWeather handles GET /api/weather/:cityName?country=XX.
func (h *Handler) GetWeather(c *gin.Context) {
	span := startSpan(c, "weather.current.http")
	defer span.End()

	cityName := c.Param("cityName")

	snapshot, err := h.weather.Current(c.Request.Context(), cityName, c.Query("country"))
	if err != nil {
		if errors.Is(err, logicv1.ErrWeatherNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("City %q not found", cityName)})
			return
		}
		fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weather": snapshot})
}
