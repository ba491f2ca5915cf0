package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/weather"
)

type WeatherHandler struct {
	client *weather.Client
}

func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// Get serves current weather. Without an upstream key it falls back to
// the fixed placeholder the frontend already understands.
func (h *WeatherHandler) Get(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusOK, weather.Placeholder())
		return
	}

	city := strings.TrimSpace(c.Query("city"))
	lat := strings.TrimSpace(c.Query("lat"))
	lon := strings.TrimSpace(c.Query("lon"))

	if city == "" && (lat == "" || lon == "") {
		httperr.BadRequest(c, "missing_location", "City or lat/lon is required")
		return
	}

	report, err := h.client.Current(c.Request.Context(), city, lat, lon)
	if err != nil {
		httperr.Internal(c, "weather_upstream_failed", "Failed to fetch weather")
		return
	}

	c.JSON(http.StatusOK, report)
}
