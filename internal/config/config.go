package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	ModeDemo = "demo"
)

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	HTTPPort    string `envconfig:"SERVER_HTTP_PORT" default:"8080"`
	GrpcPort    string `envconfig:"SERVER_GRPC_PORT" default:"9090"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

type Weather struct {
	Mode             string        `envconfig:"WEATHER_API_MODE" default:"live"`
	APIURL           string        `envconfig:"WEATHER_API_URL" default:"https://api.open-meteo.com/v1/forecast"`
	GeocodingURL     string        `envconfig:"GEOCODING_API_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	FetchTimeout     time.Duration `envconfig:"WEATHER_FETCH_TIMEOUT" default:"10s"`
	SingleFlight     bool          `envconfig:"WEATHER_SINGLE_FLIGHT" default:"true"`
	UpstreamRPS      float64       `envconfig:"WEATHER_UPSTREAM_RPS" default:"10"`
	UpstreamBurst    int           `envconfig:"WEATHER_UPSTREAM_BURST" default:"20"`
	DemoMinDelay     time.Duration `envconfig:"WEATHER_DEMO_MIN_DELAY" default:"200ms"`
	DemoMaxDelay     time.Duration `envconfig:"WEATHER_DEMO_MAX_DELAY" default:"500ms"`
	ValidateResponse bool          `envconfig:"WEATHER_VALIDATE_RESPONSE" default:"true"`
}

type RateLimit struct {
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"30"`
	SweepSpec   string        `envconfig:"RATE_LIMIT_SWEEP_SPEC" default:"@every 1m"`
}

type Cache struct {
	Backend    string        `envconfig:"CACHE_BACKEND" default:"memory"`
	TTL        time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	MaxSize    int           `envconfig:"CACHE_MAX_SIZE" default:"1000"`
	EvictBatch int           `envconfig:"CACHE_EVICT_BATCH" default:"100"`
}

type Redis struct {
	Host   string `envconfig:"REDIS_HOST" default:"localhost"`
	Port   string `envconfig:"REDIS_PORT" default:"6379"`
	DbType int    `envconfig:"REDIS_DB_TYPE" default:"0"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"15"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Config struct {
	Server    Server
	Weather   Weather
	RateLimit RateLimit
	Cache     Cache
	Redis     Redis
	Breaker   Breaker

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-dashboard.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/weather-dashboard-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.RateLimit.Window <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window))
	}
	if c.RateLimit.MaxRequests <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive, got %d", c.RateLimit.MaxRequests))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL))
	}
	if c.Cache.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_MAX_SIZE must be positive, got %d", c.Cache.MaxSize))
	}
	if c.Cache.EvictBatch <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_EVICT_BATCH must be positive, got %d", c.Cache.EvictBatch))
	}
	if c.Cache.Backend != CacheBackendMemory && c.Cache.Backend != CacheBackendRedis {
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q",
			CacheBackendMemory, CacheBackendRedis, c.Cache.Backend))
	}
	if c.Weather.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("WEATHER_FETCH_TIMEOUT must be positive, got %s", c.Weather.FetchTimeout))
	}
	if c.Weather.UpstreamRPS <= 0 {
		errs = append(errs, fmt.Errorf("WEATHER_UPSTREAM_RPS must be positive, got %g", c.Weather.UpstreamRPS))
	}
	if c.Weather.UpstreamBurst <= 0 {
		errs = append(errs, fmt.Errorf("WEATHER_UPSTREAM_BURST must be positive, got %d", c.Weather.UpstreamBurst))
	}
	if c.Weather.DemoMaxDelay < c.Weather.DemoMinDelay {
		errs = append(errs, errors.New("WEATHER_DEMO_MAX_DELAY must not be less than WEATHER_DEMO_MIN_DELAY"))
	}

	return errors.Join(errs...)
}

// DemoMode reports whether the offline demo provider serves weather requests.
func (c *Config) DemoMode() bool {
	return c.Weather.Mode == ModeDemo
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.HTTPPort
}

func (c *Config) GrpcAddress() string {
	return c.Server.Host + ":" + c.Server.GrpcPort
}

func (r *Redis) Address() string {
	return r.Host + ":" + r.Port
}
