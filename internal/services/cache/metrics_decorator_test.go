package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-dashboard/internal/services/cache"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) ObserveLatency(operation string, d time.Duration) {
	m.Called(operation, d)
}

func (m *mockCollector) IncrementCounter(operation string, result string) {
	m.Called(operation, result)
}

type failingStore struct {
	cache.MemoryCache[string]
}

func (f *failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func TestMetricsDecorator_CountsHitsAndMisses(t *testing.T) {
	ctx := context.Background()
	collector := &mockCollector{}
	collector.On("ObserveLatency", mock.Anything, mock.Anything).Return()
	collector.On("IncrementCounter", "set", "success").Return().Once()
	collector.On("IncrementCounter", "get", "hit").Return().Once()
	collector.On("IncrementCounter", "get", "miss").Return().Once()
	collector.On("IncrementCounter", "clear", "success").Return().Once()

	t.Cleanup(func() {
		collector.AssertExpectations(t)
	})

	inner := cache.NewMemoryCache[string](time.Minute, 10, 1, zerolog.Nop())
	dec := cache.NewMetricsDecorator[string](inner, collector)

	require.NoError(t, dec.Set(ctx, "k", "v"))

	got, err := dec.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = dec.Get(ctx, "absent")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, dec.Clear(ctx))
	assert.Equal(t, 0, dec.Stats(ctx).Size)
}

func TestMetricsDecorator_CountsBackendErrors(t *testing.T) {
	collector := &mockCollector{}
	collector.On("ObserveLatency", "get", mock.Anything).Return().Once()
	collector.On("IncrementCounter", "get", "error").Return().Once()

	t.Cleanup(func() {
		collector.AssertExpectations(t)
	})

	dec := cache.NewMetricsDecorator[string](&failingStore{}, collector)

	_, err := dec.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrCacheMiss)
}
