package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	_ "github.com/Nazarious-ucu/weather-dashboard/docs"
	"github.com/Nazarious-ucu/weather-dashboard/internal/config"
	http2 "github.com/Nazarious-ucu/weather-dashboard/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-dashboard/internal/handlers/middleware"
	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/schema"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/cache"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/geocoding"
	loggerT "github.com/Nazarious-ucu/weather-dashboard/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-dashboard/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/ratelimit"
	serviceWeather "github.com/Nazarious-ucu/weather-dashboard/internal/services/weather"
	fLogger "github.com/Nazarious-ucu/weather-dashboard/pkg/logger"
)

const (
	serviceName     = "weather_dashboard"
	shutdownTimeout = 5 * time.Second
)

type weatherCache interface {
	Get(ctx context.Context, key string) (models.WeatherData, error)
	Set(ctx context.Context, key string, value models.WeatherData) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) models.CacheStats
}

// ServiceContainer holds initialized dependencies for servers.
type ServiceContainer struct {
	Limiter  *ratelimit.Limiter
	Sweeper  *ratelimit.Sweeper
	Cache    weatherCache
	Provider serviceWeather.Provider

	GrpcServer *grpc.Server
	Router     *gin.Engine
	Srv        *http.Server

	redisClient *redis.Client
	fileLogger  *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger.Hook(middleware.RequestIDHook()),
		m:   met,
	}
}

// Start initializes services, serves HTTP and gRPC, and waits for ctx to end.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init()
	if err != nil {
		return err
	}

	if err := srvContainer.Sweeper.Start(); err != nil {
		return err
	}

	errCh := make(chan error, 2)

	go func() {
		a.l.Info().Str("address", a.cfg.ServerAddress()).Msg("HTTP server running")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		addrGrpc := a.cfg.GrpcAddress()
		a.l.Info().Str("address", addrGrpc).Msg("gRPC server running")
		l, lErr := net.Listen("tcp", addrGrpc)
		if lErr != nil {
			errCh <- fmt.Errorf("listen on gRPC port: %w", lErr)
			return
		}
		if serveErr := srvContainer.GrpcServer.Serve(l); serveErr != nil {
			errCh <- fmt.Errorf("grpc server: %w", serveErr)
		}
	}()

	a.l.Info().
		Str("http_address", a.cfg.ServerAddress()).
		Str("grpc_address", a.cfg.GrpcAddress()).
		Str("provider", srvContainer.Provider.Name()).
		Msg("weather dashboard started successfully")

	var runErr error
	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather dashboard")
	case runErr = <-errCh:
		a.l.Error().Err(runErr).Msg("server failed, stopping weather dashboard")
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return errors.Join(runErr, err)
	}
	a.l.Info().Msg("application shutdown successfully")
	return runErr
}

// Shutdown stops the servers and the sweeper and syncs loggers.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather dashboard…")

	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		} else {
			a.l.Info().Msg("file logger synced successfully")
		}
	}(srvContainer.fileLogger)

	srvContainer.Sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	a.l.Info().Msg("shutting down gRPC server")
	srvContainer.GrpcServer.GracefulStop()

	if srvContainer.redisClient != nil {
		if err := srvContainer.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	a.l.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

// Init wires every component without starting servers or background jobs.
func (a *App) Init() (ServiceContainer, error) {
	a.l.Info().Msgf("initializing weather dashboard with config: %+v", a.cfg)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, upstream traffic will not be logged")
		fileLogger = zap.NewNop()
	}

	// HTTP client logging
	httpLogClient := &http.Client{Transport: loggerT.NewRoundTripper(fileLogger)}

	provider := a.newProvider(httpLogClient)

	store, redisClient, err := a.newCache()
	if err != nil {
		return ServiceContainer{}, err
	}

	limiter := ratelimit.NewLimiter(a.cfg.RateLimit.Window, a.cfg.RateLimit.MaxRequests, a.l)
	sweeper := ratelimit.NewSweeper(limiter, a.cfg.RateLimit.SweepSpec, a.l)

	weatherHandler := http2.NewHandler(
		limiter,
		schema.New(),
		store,
		provider,
		a.m,
		http2.Options{
			FetchTimeout:     a.cfg.Weather.FetchTimeout,
			SingleFlight:     a.cfg.Weather.SingleFlight,
			ValidateResponse: a.cfg.Weather.ValidateResponse,
		},
		a.l,
	)

	upstream, ok := provider.(serviceWeather.Pinger)
	if !ok {
		return ServiceContainer{}, fmt.Errorf("provider %s cannot be health-checked", provider.Name())
	}
	healthHandler := http2.NewHealthHandler(upstream, store, limiter, a.cfg.Server.Version, a.l)
	locationsHandler := http2.NewLocationsHandler(
		geocoding.NewClient(a.cfg.Weather.GeocodingURL, httpLogClient, a.l),
		a.l,
	)
	cacheHandler := http2.NewCacheHandler(store, a.l)

	// Setup Gin router
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(a.l),
		a.m.HTTPMiddleware(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.m.Registry, promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/weather", weatherHandler.GetWeather)
		api.GET("/locations", locationsHandler.Search)
		api.GET("/health", healthHandler.Health)
		api.DELETE("/cache", cacheHandler.Clear)
	}

	// Setup gRPC server with metrics interceptors
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(a.m.UnaryInterceptor()),
		grpc.StreamInterceptor(a.m.StreamInterceptor()),
	)
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	a.m.InitializeGRPC(grpcServer)

	httpServer := &http.Server{
		Addr:              a.cfg.ServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		ReadTimeout:       time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		Limiter:     limiter,
		Sweeper:     sweeper,
		Cache:       store,
		Provider:    provider,
		GrpcServer:  grpcServer,
		Router:      router,
		Srv:         httpServer,
		redisClient: redisClient,
		fileLogger:  fileLogger,
	}, nil
}

//nolint:ireturn
func (a *App) newProvider(httpClient serviceWeather.HTTPClient) serviceWeather.Provider {
	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}

	live := serviceWeather.NewThrottledClient(
		a.cfg.Weather.UpstreamRPS,
		a.cfg.Weather.UpstreamBurst,
		serviceWeather.NewBreakerClient(breakerCfg,
			serviceWeather.NewClientOpenMeteo(a.cfg.Weather.APIURL, httpClient, a.l),
		),
		a.l,
	)
	demo := serviceWeather.NewDemoProvider(serviceWeather.DemoConfig{
		MinDelay: a.cfg.Weather.DemoMinDelay,
		MaxDelay: a.cfg.Weather.DemoMaxDelay,
	}, a.l)

	return serviceWeather.Select(a.cfg.DemoMode(), live, demo, a.l)
}

//nolint:ireturn
func (a *App) newCache() (weatherCache, *redis.Client, error) {
	collector := metricsSvc.NewPromCollector(a.m.Registry, serviceName)

	switch a.cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisClient := newRedisConnection(a.cfg.Redis.Address(), a.cfg.Redis.DbType)
		return cache.NewMetricsDecorator[models.WeatherData](
			cache.NewRedisClient[models.WeatherData](redisClient, a.l, a.cfg.Cache.TTL, a.cfg.Cache.MaxSize),
			collector,
		), redisClient, nil
	case config.CacheBackendMemory:
		return cache.NewMetricsDecorator[models.WeatherData](
			cache.NewMemoryCache[models.WeatherData](a.cfg.Cache.TTL, a.cfg.Cache.MaxSize, a.cfg.Cache.EvictBatch, a.l),
			collector,
		), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", a.cfg.Cache.Backend)
	}
}

func newRedisConnection(connString string, dbType int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: connString, DB: dbType})
}
