package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type locationSearcher interface {
	Search(ctx context.Context, query string) ([]models.Location, error)
}

type LocationsResponse struct {
	Success bool                 `json:"success"`
	Data    []models.Location    `json:"data,omitempty"`
	Error   *models.WeatherError `json:"error,omitempty"`
}

type LocationsHandler struct {
	searcher locationSearcher
	logger   zerolog.Logger
}

func NewLocationsHandler(searcher locationSearcher, logger zerolog.Logger) *LocationsHandler {
	return &LocationsHandler{searcher: searcher, logger: logger}
}

// Search
// @Summary Search locations by name
// @Tags locations
// @Produce json
// @Param q query string true "Place name"
// @Success 200 {object} LocationsResponse
// @Failure 502 {object} LocationsResponse
// @Router /locations [get]
func (h *LocationsHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	locations, err := h.searcher.Search(ctx, c.Query("q"))
	if err != nil {
		h.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("query", c.Query("q")).
			Msg("location search failed")

		werr := models.WeatherError{
			Message: "Failed to search locations",
			Code:    models.CodeProviderError,
		}
		var pErr *models.ProviderError
		if errors.As(err, &pErr) {
			werr = pErr.WeatherError()
		}
		c.Header(headerCacheControl, noStore)
		c.JSON(http.StatusBadGateway, LocationsResponse{Success: false, Error: &werr})
		return
	}

	if locations == nil {
		locations = []models.Location{}
	}
	c.Header(headerCacheControl, cacheablePublic)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": locations})
}
