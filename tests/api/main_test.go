//go:build integration

package api

import (
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/app"
	"github.com/Nazarious-ucu/weather-dashboard/internal/config"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/metrics"
)

var (
	demoServerURL string
	liveServerURL string

	demoContainer app.ServiceContainer
)

func TestMain(m *testing.M) {
	log.Println("Starting integration tests for weather dashboard..")

	logsDir, err := os.MkdirTemp("", "weather-dashboard-it")
	if err != nil {
		log.Panicf("failed to create logs dir: %v", err)
	}

	upstream := newTestOpenMeteoServer()

	demoSrv := startApp(func(cfg *config.Config) {
		cfg.Weather.Mode = config.ModeDemo
		cfg.Weather.DemoMinDelay = 0
		cfg.Weather.DemoMaxDelay = 0
		cfg.HTTPLogsPath = filepath.Join(logsDir, "demo-http.log")
	})
	demoServerURL = demoSrv.URL

	liveSrv := startApp(func(cfg *config.Config) {
		cfg.Weather.Mode = "live"
		cfg.Weather.APIURL = upstream.URL + "/v1/forecast"
		cfg.Weather.GeocodingURL = upstream.URL + "/v1/search"
		cfg.Weather.FetchTimeout = 500 * time.Millisecond
		cfg.HTTPLogsPath = filepath.Join(logsDir, "live-http.log")
	})
	liveServerURL = liveSrv.URL

	code := m.Run()

	demoSrv.Close()
	liveSrv.Close()
	upstream.Close()
	_ = os.RemoveAll(logsDir)
	os.Exit(code)
}

func startApp(override func(cfg *config.Config)) *httptest.Server {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}
	override(cfg)

	application := app.New(*cfg, zerolog.Nop(), metrics.NewMetrics("weather_dashboard_it"))
	srvContainer, err := application.Init()
	if err != nil {
		log.Panicf("failed to init application: %v", err)
	}
	if cfg.DemoMode() {
		demoContainer = srvContainer
	}

	return httptest.NewServer(srvContainer.Router)
}

const forecastBody = `{
  "current": {
    "time": "2025-06-01T12:00",
    "temperature_2m": 21.4,
    "weather_code": 1,
    "wind_speed_10m": 9.7,
    "wind_direction_10m": 120,
    "relative_humidity_2m": 55,
    "apparent_temperature": 20.8,
    "precipitation": 0
  },
  "hourly": {
    "time": ["2025-06-01T12:00", "2025-06-01T13:00"],
    "temperature_2m": [21.4, 22.0],
    "weather_code": [1, 1],
    "precipitation": [0, 0],
    "relative_humidity_2m": [55, 53]
  },
  "daily": {
    "time": ["2025-06-01", "2025-06-02"],
    "weather_code": [1, 2],
    "temperature_2m_max": [24.0, 25.1],
    "temperature_2m_min": [14.2, 15.0],
    "precipitation_sum": [0, 0.3],
    "precipitation_probability_max": [5, 20]
  }
}`

// newTestOpenMeteoServer fakes forecast and geocoding endpoints.
// latitude 13 answers 503, latitude 14 answers 429, latitude 15 hangs past the fetch timeout.
func newTestOpenMeteoServer() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("latitude") {
		case "13":
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
			return
		case "14":
			http.Error(w, "quota", http.StatusTooManyRequests)
			return
		case "15":
			<-r.Context().Done()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(forecastBody)); err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("name") != "London" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"name":"London","latitude":51.50853,"longitude":-0.12574,` +
			`"country":"United Kingdom","admin1":"England"}]}`))
	})

	return httptest.NewServer(mux)
}
