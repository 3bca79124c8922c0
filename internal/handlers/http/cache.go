package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type cacheClearer interface {
	Clear(ctx context.Context) error
}

type CacheHandler struct {
	cache  cacheClearer
	logger zerolog.Logger
}

func NewCacheHandler(cache cacheClearer, logger zerolog.Logger) *CacheHandler {
	return &CacheHandler{cache: cache, logger: logger}
}

// Clear
// @Summary Drop every cached forecast
// @Tags cache
// @Success 204
// @Failure 500 {object} models.Response
// @Router /cache [delete]
func (h *CacheHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.cache.Clear(ctx); err != nil {
		h.logger.Error().Ctx(ctx).Err(err).Msg("failed to clear cache")
		respondError(c, http.StatusInternalServerError, models.WeatherError{
			Message: "An unexpected error occurred",
			Code:    models.CodeProviderError,
			Details: err.Error(),
		})
		return
	}

	h.logger.Info().Ctx(ctx).Msg("cache cleared")
	c.Status(http.StatusNoContent)
}
