package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient trips after RepeatNumber consecutive failed fetches and
// rejects calls until TimeTimeOut elapses.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped Provider
}

func NewBreakerClient(cfg BreakerConfig, wrapped Provider) *BreakerClient {
	name := wrapped.Name()
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: func(err error) bool {
			var pErr *models.ProviderError
			// upstream quota errors are not an outage
			if errors.As(err, &pErr) && pErr.Code == models.CodeRateLimited {
				return true
			}
			return err == nil
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Name() string {
	return b.name
}

func (b *BreakerClient) FetchWeather(ctx context.Context, opts models.FetchOptions) (models.WeatherData, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.FetchWeather(ctx, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return models.WeatherData{}, models.NewProviderError(
				models.CodeProviderError,
				"Weather provider unavailable",
				fmt.Sprintf("%s: %s", b.name, err.Error()))
		}
		return models.WeatherData{}, err
	}
	res, ok := result.(models.WeatherData)
	if !ok {
		return models.WeatherData{},
			fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}

// Ping delegates to the wrapped provider without touching breaker state.
func (b *BreakerClient) Ping(ctx context.Context) error {
	if p, ok := b.wrapped.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (b *BreakerClient) State() string {
	return b.cb.State().String()
}
