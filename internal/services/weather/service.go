package weather

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

// Provider fetches weather for coordinates and normalizes it into models.WeatherData.
// Failures are *models.ProviderError.
type Provider interface {
	Name() string
	FetchWeather(ctx context.Context, opts models.FetchOptions) (models.WeatherData, error)
}

// Pinger is implemented by providers that can report upstream reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Select returns the demo provider in demo mode and the live one otherwise.
//
//nolint:ireturn
func Select(demoMode bool, live, demo Provider, logger zerolog.Logger) Provider {
	p := live
	if demoMode {
		p = demo
	}

	logger.Info().
		Bool("demo_mode", demoMode).
		Str("provider", p.Name()).
		Msg("weather provider selected")
	return p
}
