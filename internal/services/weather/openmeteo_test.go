package weather_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/weather"
)

const testAPIURL = "https://api.open-meteo.com/v1/forecast"

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok {
		return nil, args.Error(1)
	}
	return resp, args.Error(1)
}

const openMeteoBody = `{
  "current": {
    "time": "2025-06-01T12:00",
    "temperature_2m": 15.3,
    "weather_code": 3,
    "wind_speed_10m": 11.2,
    "wind_direction_10m": 250,
    "relative_humidity_2m": 71,
    "apparent_temperature": 13.9,
    "precipitation": 0
  },
  "hourly": {
    "time": ["2025-06-01T12:00", "2025-06-01T13:00"],
    "temperature_2m": [15.3, 15.9],
    "weather_code": [3, 2],
    "precipitation": [0, 0.1],
    "relative_humidity_2m": [71, 69]
  },
  "daily": {
    "time": ["2025-06-01"],
    "weather_code": [3],
    "temperature_2m_max": [18.1],
    "temperature_2m_min": [9.4],
    "precipitation_sum": [0.4],
    "precipitation_probability_max": [35]
  }
}`

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func opts(unit models.Unit) models.FetchOptions {
	return models.FetchOptions{Lat: 51.5074, Lon: -0.1278, Unit: unit, Timeout: time.Second}
}

func requireProviderError(t *testing.T, err error, code models.ErrorCode) *models.ProviderError {
	t.Helper()

	var pErr *models.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, code, pErr.Code)
	return pErr
}

func TestClientOpenMeteo_FetchWeather_Success(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		q := req.URL.Query()
		return req.Header.Get("User-Agent") == "WeatherApp/1.0" &&
			q.Get("latitude") == "51.5074" &&
			q.Get("longitude") == "-0.1278" &&
			q.Get("temperature_unit") == "fahrenheit" &&
			q.Get("wind_speed_unit") == "kmh" &&
			q.Get("precipitation_unit") == "mm" &&
			q.Get("timezone") == "auto" &&
			q.Get("forecast_days") == "7" &&
			strings.Contains(q.Get("current"), "apparent_temperature") &&
			strings.Contains(q.Get("daily"), "precipitation_probability_max")
	})).Return(response(http.StatusOK, openMeteoBody), nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	c := weather.NewClientOpenMeteo(testAPIURL, m, zerolog.Nop())
	assert.Equal(t, "open-meteo", c.Name())

	data, err := c.FetchWeather(context.Background(), opts(models.Fahrenheit))
	require.NoError(t, err)

	assert.InDelta(t, 15.3, data.Current.Temperature, 0.001)
	assert.Equal(t, 3, data.Current.WeatherCode)
	assert.InDelta(t, 250, data.Current.WindDirection, 0.001)
	assert.InDelta(t, 13.9, data.Current.ApparentTemperature, 0.001)
	assert.Equal(t, "2025-06-01T12:00", data.Current.Time)
	assert.Equal(t, []float64{15.3, 15.9}, data.Hourly.Temperature)
	assert.Equal(t, []float64{71, 69}, data.Hourly.Humidity)
	assert.Equal(t, []float64{18.1}, data.Daily.TemperatureMax)
	assert.Equal(t, []float64{35}, data.Daily.PrecipitationProbability)
}

func TestClientOpenMeteo_FetchWeather_Failures(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		err     error
		code    models.ErrorCode
		message string
		details string
	}{
		{
			name:    "upstream rate limit",
			resp:    response(http.StatusTooManyRequests, `{"reason":"quota"}`),
			code:    models.CodeRateLimited,
			message: "Rate limit exceeded",
			details: "Please try again later",
		},
		{
			name:    "upstream 503",
			resp:    response(http.StatusServiceUnavailable, ``),
			code:    models.CodeProviderError,
			message: "Failed to fetch weather data",
			details: "HTTP 503: Service Unavailable",
		},
		{
			name:    "malformed body",
			resp:    response(http.StatusOK, `{"current":`),
			code:    models.CodeProviderError,
			message: "Failed to fetch weather data",
		},
		{
			name:    "transport error",
			err:     errors.New("connection refused"),
			code:    models.CodeProviderError,
			message: "Failed to fetch weather data",
			details: "connection refused",
		},
		{
			name:    "deadline exceeded",
			err:     context.DeadlineExceeded,
			code:    models.CodeTimeout,
			message: "Request timed out",
			details: "Request exceeded 1000ms timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockHTTPClient{}
			m.On("Do", mock.Anything).Return(tt.resp, tt.err).Once()

			c := weather.NewClientOpenMeteo(testAPIURL, m, zerolog.Nop())
			data, err := c.FetchWeather(context.Background(), opts(models.Celsius))

			assert.Empty(t, data)
			pErr := requireProviderError(t, err, tt.code)
			assert.Equal(t, tt.message, pErr.Message)
			if tt.details != "" {
				assert.Equal(t, tt.details, pErr.Details)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestClientOpenMeteo_FetchWeather_Timeout(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Run(func(args mock.Arguments) {
		req, _ := args.Get(0).(*http.Request)
		<-req.Context().Done()
	}).Return(nil, context.DeadlineExceeded).Once()

	c := weather.NewClientOpenMeteo(testAPIURL, m, zerolog.Nop())

	o := opts(models.Celsius)
	o.Timeout = 20 * time.Millisecond

	_, err := c.FetchWeather(context.Background(), o)
	pErr := requireProviderError(t, err, models.CodeTimeout)
	assert.Equal(t, "Request exceeded 20ms timeout", pErr.Details)
}

func TestClientOpenMeteo_Ping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		m := &mockHTTPClient{}
		m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			q := req.URL.Query()
			return q.Get("latitude") == "0" && q.Get("current") == "temperature_2m"
		})).Return(response(http.StatusOK, `{}`), nil).Once()

		c := weather.NewClientOpenMeteo(testAPIURL, m, zerolog.Nop())
		require.NoError(t, c.Ping(context.Background()))
		m.AssertExpectations(t)
	})

	t.Run("non-2xx", func(t *testing.T) {
		m := &mockHTTPClient{}
		m.On("Do", mock.Anything).Return(response(http.StatusBadGateway, ``), nil).Once()

		c := weather.NewClientOpenMeteo(testAPIURL, m, zerolog.Nop())
		assert.EqualError(t, c.Ping(context.Background()), "HTTP 502")
	})
}
