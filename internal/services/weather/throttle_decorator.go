package weather

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

// ThrottledClient caps the outbound request rate to the upstream for the whole process.
type ThrottledClient struct {
	limiter *rate.Limiter
	wrapped Provider
	logger  zerolog.Logger
}

func NewThrottledClient(rps float64, burst int, wrapped Provider, logger zerolog.Logger) *ThrottledClient {
	return &ThrottledClient{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		wrapped: wrapped,
		logger:  logger,
	}
}

func (t *ThrottledClient) Name() string {
	return t.wrapped.Name()
}

func (t *ThrottledClient) FetchWeather(ctx context.Context, opts models.FetchOptions) (models.WeatherData, error) {
	waitCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if err := t.limiter.Wait(waitCtx); err != nil {
		t.logger.Warn().
			Ctx(ctx).
			Err(err).
			Str("provider", t.wrapped.Name()).
			Msg("outbound throttle wait exceeded fetch deadline")
		return models.WeatherData{}, models.NewProviderError(
			models.CodeTimeout,
			"Request timed out",
			fmt.Sprintf("Request exceeded %dms timeout", opts.Timeout.Milliseconds()))
	}

	return t.wrapped.FetchWeather(ctx, opts)
}

func (t *ThrottledClient) Ping(ctx context.Context) error {
	if p, ok := t.wrapped.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
