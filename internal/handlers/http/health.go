package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"

	checkPass = "pass"
	checkFail = "fail"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type cacheStatter interface {
	Stats(ctx context.Context) models.CacheStats
}

type limiterStatter interface {
	Stats() models.RateLimitStats
}

type HealthCheck struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMs int64  `json:"durationMs"`
	Message    string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    string                `json:"status"`
	Timestamp string                `json:"timestamp"`
	Version   string                `json:"version"`
	Uptime    int64                 `json:"uptime"`
	Checks    []HealthCheck         `json:"checks"`
	Cache     models.CacheStats     `json:"cache"`
	RateLimit models.RateLimitStats `json:"rateLimit"`
}

type HealthHandler struct {
	upstream pinger
	cache    cacheStatter
	limiter  limiterStatter
	version  string
	started  time.Time
	logger   zerolog.Logger
}

func NewHealthHandler(
	upstream pinger,
	cache cacheStatter,
	limiter limiterStatter,
	version string,
	logger zerolog.Logger,
) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
		cache:    cache,
		limiter:  limiter,
		version:  version,
		started:  time.Now(),
		logger:   logger,
	}
}

// Health
// @Summary Service health
// @Description Reports upstream reachability, cache and rate limiter state
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	checks := []HealthCheck{h.checkUpstream(ctx)}

	status := statusHealthy
	for _, chk := range checks {
		if chk.Status == checkFail {
			status = statusDegraded
		}
	}

	c.Header(headerCacheControl, noStore)
	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    int64(time.Since(h.started).Seconds()),
		Checks:    checks,
		Cache:     h.cache.Stats(ctx),
		RateLimit: h.limiter.Stats(),
	})
}

func (h *HealthHandler) checkUpstream(ctx context.Context) HealthCheck {
	start := time.Now()
	err := h.upstream.Ping(ctx)
	chk := HealthCheck{
		Name:       "weather_api",
		Status:     checkPass,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		h.logger.Warn().
			Ctx(ctx).
			Err(err).
			Msg("weather API health check failed")
		chk.Status = checkFail
		chk.Message = err.Error()
	}
	return chk
}
