package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "github.com/Nazarious-ucu/weather-dashboard/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/cache"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/ratelimit"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]models.Location, error) {
	args := m.Called(ctx, query)
	locs, _ := args.Get(0).([]models.Location)
	return locs, args.Error(1)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestLocationsHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := &mockSearcher{}
	s.On("Search", mock.Anything, "Lviv").Return([]models.Location{
		{ID: "49.83826,24.02324", Name: "Lviv", Lat: 49.83826, Lon: 24.02324, Country: "Ukraine"},
	}, nil).Once()
	s.On("Search", mock.Anything, "").Return(nil, nil).Once()
	s.On("Search", mock.Anything, "Kyiv").
		Return(nil, models.NewProviderError(models.CodeProviderError, "Failed to search locations", "HTTP 500: Internal Server Error")).
		Once()
	s.On("Search", mock.Anything, "Odesa").Return(nil, errors.New("boom")).Once()

	t.Cleanup(func() {
		s.AssertExpectations(t)
	})

	router := gin.New()
	router.GET("/api/locations", handlers.NewLocationsHandler(s, zerolog.Nop()).Search)

	w := serve(router, http.MethodGet, "/api/locations?q=Lviv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":true,"data":[{"id":"49.83826,24.02324","name":"Lviv","lat":49.83826,"lon":24.02324,"country":"Ukraine"}]}`,
		w.Body.String())

	w = serve(router, http.MethodGet, "/api/locations")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	w = serve(router, http.MethodGet, "/api/locations?q=Kyiv")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t,
		`{"success":false,"error":{"error":"Failed to search locations","code":"PROVIDER_ERROR","details":"HTTP 500: Internal Server Error"}}`,
		w.Body.String())

	w = serve(router, http.MethodGet, "/api/locations?q=Odesa")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"error":"Failed to search locations","code":"PROVIDER_ERROR"}}`,
		w.Body.String())
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := cache.NewMemoryCache[models.WeatherData](5*time.Minute, 1000, 100, zerolog.Nop())
	require.NoError(t, c.Set(context.Background(), "k", validData()))
	l := ratelimit.NewLimiter(time.Minute, 30, zerolog.Nop())
	l.Check("client")

	tests := []struct {
		name    string
		ping    pingFunc
		status  string
		check   string
		message string
	}{
		{
			name:   "healthy",
			ping:   func(context.Context) error { return nil },
			status: "healthy",
			check:  "pass",
		},
		{
			name:    "degraded",
			ping:    func(context.Context) error { return errors.New("HTTP 503") },
			status:  "degraded",
			check:   "fail",
			message: "HTTP 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/api/health", handlers.NewHealthHandler(tt.ping, c, l, "1.2.3", zerolog.Nop()).Health)

			w := serve(router, http.MethodGet, "/api/health")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			var resp handlers.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, "1.2.3", resp.Version)
			require.Len(t, resp.Checks, 1)
			assert.Equal(t, "weather_api", resp.Checks[0].Name)
			assert.Equal(t, tt.check, resp.Checks[0].Status)
			assert.Equal(t, tt.message, resp.Checks[0].Message)
			assert.Equal(t, models.CacheStats{Size: 1, MaxSize: 1000, TTLMs: 300000}, resp.Cache)
			assert.Equal(t, models.RateLimitStats{Entries: 1, MaxRequests: 30, WindowMs: 60000}, resp.RateLimit)

			_, err := time.Parse(time.RFC3339, resp.Timestamp)
			assert.NoError(t, err)
		})
	}
}

type failingClearer struct{}

func (failingClearer) Clear(context.Context) error {
	return errors.New("redis: connection refused")
}

func TestCacheHandler_Clear(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := cache.NewMemoryCache[models.WeatherData](5*time.Minute, 1000, 100, zerolog.Nop())
	require.NoError(t, c.Set(context.Background(), "k", validData()))

	router := gin.New()
	router.DELETE("/api/cache", handlers.NewCacheHandler(c, zerolog.Nop()).Clear)
	router.DELETE("/broken", handlers.NewCacheHandler(failingClearer{}, zerolog.Nop()).Clear)

	w := serve(router, http.MethodDelete, "/api/cache")
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, models.ErrCacheMiss)

	w = serve(router, http.MethodDelete, "/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
