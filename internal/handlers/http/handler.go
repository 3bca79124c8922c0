package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/cache"
)

const (
	headerCache     = "X-Cache"
	headerProvider  = "X-Provider"
	headerRemaining = "X-RateLimit-Remaining"
	headerRetry     = "Retry-After"

	cacheHit  = "HIT"
	cacheMiss = "MISS"

	defaultFetchTimeout = 10 * time.Second
)

type rateLimiter interface {
	Check(clientID string) models.RateLimitResult
}

type requestValidator interface {
	ParseRequest(raw models.RawWeatherQuery) (models.WeatherRequest, models.FieldErrors)
	ValidateData(data models.WeatherData) error
}

type weatherCache interface {
	Get(ctx context.Context, key string) (models.WeatherData, error)
	Set(ctx context.Context, key string, value models.WeatherData) error
}

type weatherProvider interface {
	Name() string
	FetchWeather(ctx context.Context, opts models.FetchOptions) (models.WeatherData, error)
}

type outcomeRecorder interface {
	RecordWeather(provider, cacheStatus string)
	RecordWeatherError(code string)
	RecordRateLimited()
}

// Options tunes the weather pipeline.
type Options struct {
	FetchTimeout     time.Duration
	SingleFlight     bool
	ValidateResponse bool
}

type Handler struct {
	limiter   rateLimiter
	validator requestValidator
	cache     weatherCache
	provider  weatherProvider
	recorder  outcomeRecorder
	opts      Options
	logger    zerolog.Logger

	group singleflight.Group
	now   func() time.Time
}

func NewHandler(
	limiter rateLimiter,
	validator requestValidator,
	store weatherCache,
	provider weatherProvider,
	recorder outcomeRecorder,
	opts Options,
	logger zerolog.Logger,
) *Handler {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	return &Handler{
		limiter:   limiter,
		validator: validator,
		cache:     store,
		provider:  provider,
		recorder:  recorder,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// GetWeather
// @Summary Get weather for coordinates
// @Description Returns current conditions, a 24-hour and a 7-day forecast
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude in [-90, 90]"
// @Param lon query number true "Longitude in [-180, 180]"
// @Param unit query string false "Temperature unit" Enums(celsius, fahrenheit) default(celsius)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 429 {object} models.Response
// @Failure 500 {object} models.Response
// @Failure 502 {object} models.Response
// @Failure 504 {object} models.Response
// @Router /weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	ctx := c.Request.Context()
	clientID := ClientID(c.Request)

	rl := h.limiter.Check(clientID)
	c.Header(headerRemaining, strconv.Itoa(rl.Remaining))

	if !rl.Allowed {
		retryAfter := h.retryAfterSeconds(rl.ResetAt)
		h.recorder.RecordRateLimited()
		h.logger.Warn().
			Ctx(ctx).
			Str("client", clientID).
			Int("retry_after_s", retryAfter).
			Msg("rate limit exceeded")

		c.Header(headerRetry, strconv.Itoa(retryAfter))
		h.fail(c, models.WeatherError{
			Message: "Too many requests",
			Code:    models.CodeRateLimited,
			Details: fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter),
		})
		return
	}

	req, fieldErrs := h.validator.ParseRequest(models.RawWeatherQuery{
		Lat:  c.Query("lat"),
		Lon:  c.Query("lon"),
		Unit: c.Query("unit"),
	})
	if len(fieldErrs) > 0 {
		h.logger.Debug().
			Ctx(ctx).
			Str("client", clientID).
			Str("details", fieldErrs.Error()).
			Msg("invalid weather request")

		h.fail(c, models.WeatherError{
			Message: "Invalid request parameters",
			Code:    models.CodeInvalidRequest,
			Details: fieldErrs.Error(),
		})
		return
	}

	key := cache.Key(req.Lat, req.Lon, req.Unit)

	cached, err := h.cache.Get(ctx, key)
	switch {
	case err == nil:
		h.recorder.RecordWeather(h.provider.Name(), cacheHit)
		c.Header(headerCache, cacheHit)
		respondData(c, cached)
		return
	case !errors.Is(err, models.ErrCacheMiss):
		h.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("key", key).
			Msg("cache lookup failed, fetching from provider")
	}

	data, err := h.fetch(ctx, key, req)
	if err != nil {
		h.failFetch(c, err)
		return
	}

	h.recorder.RecordWeather(h.provider.Name(), cacheMiss)
	c.Header(headerCache, cacheMiss)
	c.Header(headerProvider, h.provider.Name())
	respondData(c, data)
}

// fetch runs the provider call detached from the client connection and bounded
// by FetchTimeout. Concurrent misses for one key share a call when SingleFlight is on.
func (h *Handler) fetch(ctx context.Context, key string, req models.WeatherRequest) (models.WeatherData, error) {
	call := func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.opts.FetchTimeout)
		defer cancel()

		data, err := h.provider.FetchWeather(fetchCtx, models.FetchOptions{
			Lat:     req.Lat,
			Lon:     req.Lon,
			Unit:    req.Unit,
			Timeout: h.opts.FetchTimeout,
		})
		if err != nil {
			return models.WeatherData{}, err
		}

		if h.opts.ValidateResponse {
			if vErr := h.validator.ValidateData(data); vErr != nil {
				h.logger.Error().
					Ctx(ctx).
					Err(vErr).
					Str("provider", h.provider.Name()).
					Msg("provider returned data violating the response schema")
				return models.WeatherData{}, models.NewProviderError(
					models.CodeProviderError, "Provider returned malformed data", vErr.Error())
			}
		}

		if sErr := h.cache.Set(fetchCtx, key, data); sErr != nil {
			h.logger.Error().
				Ctx(ctx).
				Err(sErr).
				Str("key", key).
				Msg("failed to store weather data in cache")
		}
		return data, nil
	}

	var (
		v   interface{}
		err error
	)
	if h.opts.SingleFlight {
		v, err, _ = h.group.Do(key, call)
	} else {
		v, err = call()
	}
	if err != nil {
		return models.WeatherData{}, err
	}

	data, ok := v.(models.WeatherData)
	if !ok {
		return models.WeatherData{}, fmt.Errorf("unexpected fetch result %T", v)
	}
	return data, nil
}

func (h *Handler) failFetch(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var pErr *models.ProviderError
	if errors.As(err, &pErr) {
		h.logger.Warn().
			Ctx(ctx).
			Err(err).
			Str("provider", h.provider.Name()).
			Str("code", string(pErr.Code)).
			Msg("provider fetch failed")
		h.fail(c, pErr.WeatherError())
		return
	}

	h.logger.Error().
		Ctx(ctx).
		Err(err).
		Str("provider", h.provider.Name()).
		Msg("unexpected error while fetching weather")

	h.recorder.RecordWeatherError("UNEXPECTED")
	respondError(c, http.StatusInternalServerError, models.WeatherError{
		Message: "An unexpected error occurred",
		Code:    models.CodeProviderError,
		Details: err.Error(),
	})
}

func (h *Handler) fail(c *gin.Context, werr models.WeatherError) {
	h.recorder.RecordWeatherError(string(werr.Code))
	respondError(c, statusFor(werr.Code), werr)
}

func (h *Handler) retryAfterSeconds(resetAt time.Time) int {
	secs := int(math.Ceil(float64(resetAt.Sub(h.now()).Milliseconds()) / 1000))
	return max(secs, 1)
}
