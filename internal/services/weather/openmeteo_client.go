package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

const (
	openMeteoName    = "open-meteo"
	defaultTimeout   = 10 * time.Second
	pingTimeout      = 5 * time.Second
	hourlyPoints     = 24
	dailyPoints      = 7
	userAgent        = "WeatherApp/1.0"
	errBodySnippetSz = 256
)

var (
	currentFields = []string{
		"temperature_2m",
		"weather_code",
		"wind_speed_10m",
		"wind_direction_10m",
		"relative_humidity_2m",
		"apparent_temperature",
		"precipitation",
	}
	hourlyFields = []string{"temperature_2m", "weather_code", "precipitation", "relative_humidity_2m"}
	dailyFields  = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"precipitation_sum",
		"precipitation_probability_max",
	}
)

type openMeteoResponse struct {
	Current struct {
		Time                string  `json:"time"`
		Temperature2m       float64 `json:"temperature_2m"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
		WindDirection10m    float64 `json:"wind_direction_10m"`
		RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
	} `json:"current"`
	Hourly struct {
		Time               []string  `json:"time"`
		Temperature2m      []float64 `json:"temperature_2m"`
		WeatherCode        []int     `json:"weather_code"`
		Precipitation      []float64 `json:"precipitation"`
		RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		Temperature2mMax            []float64 `json:"temperature_2m_max"`
		Temperature2mMin            []float64 `json:"temperature_2m_min"`
		PrecipitationSum            []float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// ClientOpenMeteo fetches forecasts from the Open-Meteo API.
type ClientOpenMeteo struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenMeteo constructs a new Open-Meteo client.
func NewClientOpenMeteo(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientOpenMeteo {
	return &ClientOpenMeteo{apiURL: apiURL, client: httpClient, logger: logger}
}

func (s *ClientOpenMeteo) Name() string {
	return openMeteoName
}

// FetchWeather retrieves current, 24 hourly and 7 daily values in the requested unit.
func (s *ClientOpenMeteo) FetchWeather(ctx context.Context, opts models.FetchOptions) (models.WeatherData, error) {
	start := time.Now()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL := s.forecastURL(opts)

	s.logger.Debug().
		Ctx(ctx).
		Float64("lat", opts.Lat).
		Float64("lon", opts.Lon).
		Str("unit", string(opts.Unit)).
		Str("url", reqURL).
		Msg("starting Open-Meteo request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", reqURL).
			Msg("failed to create HTTP request")
		return models.WeatherData{}, models.NewProviderError(
			models.CodeProviderError, "Failed to fetch weather data", err.Error())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.logger.Warn().
				Ctx(ctx).
				Dur("timeout", timeout).
				Msg("Open-Meteo request timed out")
			return models.WeatherData{}, models.NewProviderError(
				models.CodeTimeout,
				"Request timed out",
				fmt.Sprintf("Request exceeded %dms timeout", timeout.Milliseconds()))
		}
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", reqURL).
			Msg("error sending HTTP request to Open-Meteo")
		return models.WeatherData{}, models.NewProviderError(
			models.CodeProviderError, "Failed to fetch weather data", err.Error())
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Ctx(ctx).
				Err(cerr).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errBodySnippetSz))
		s.logger.Error().
			Ctx(ctx).
			Str("status", resp.Status).
			Bytes("body", snippet).
			Msg("Open-Meteo API returned non-2xx status")

		if resp.StatusCode == http.StatusTooManyRequests {
			return models.WeatherData{}, models.NewProviderError(
				models.CodeRateLimited, "Rate limit exceeded", "Please try again later")
		}
		return models.WeatherData{}, models.NewProviderError(
			models.CodeProviderError,
			"Failed to fetch weather data",
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	var raw openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.WeatherData{}, models.NewProviderError(
				models.CodeTimeout,
				"Request timed out",
				fmt.Sprintf("Request exceeded %dms timeout", timeout.Milliseconds()))
		}
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Msg("failed to decode Open-Meteo response")
		return models.WeatherData{}, models.NewProviderError(
			models.CodeProviderError, "Failed to fetch weather data", err.Error())
	}

	s.logger.Info().
		Ctx(ctx).
		Float64("lat", opts.Lat).
		Float64("lon", opts.Lon).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched weather data")

	return raw.toWeatherData(), nil
}

// Ping issues the smallest possible forecast request.
func (s *ClientOpenMeteo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("latitude", "0")
	q.Set("longitude", "0")
	q.Set("current", "temperature_2m")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func (s *ClientOpenMeteo) forecastURL(opts models.FetchOptions) string {
	unit := models.Celsius
	if opts.Unit == models.Fahrenheit {
		unit = models.Fahrenheit
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(opts.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(opts.Lon, 'f', -1, 64))
	q.Set("current", strings.Join(currentFields, ","))
	q.Set("hourly", strings.Join(hourlyFields, ","))
	q.Set("daily", strings.Join(dailyFields, ","))
	q.Set("temperature_unit", string(unit))
	q.Set("wind_speed_unit", "kmh")
	q.Set("precipitation_unit", "mm")
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(dailyPoints))
	q.Set("forecast_hours", strconv.Itoa(hourlyPoints))

	return s.apiURL + "?" + q.Encode()
}

func (r openMeteoResponse) toWeatherData() models.WeatherData {
	return models.WeatherData{
		Current: models.CurrentWeather{
			Temperature:         r.Current.Temperature2m,
			WeatherCode:         r.Current.WeatherCode,
			WindSpeed:           r.Current.WindSpeed10m,
			WindDirection:       r.Current.WindDirection10m,
			Humidity:            r.Current.RelativeHumidity2m,
			ApparentTemperature: r.Current.ApparentTemperature,
			Precipitation:       r.Current.Precipitation,
			Time:                r.Current.Time,
		},
		Hourly: models.HourlyForecast{
			Time:          r.Hourly.Time,
			Temperature:   r.Hourly.Temperature2m,
			WeatherCode:   r.Hourly.WeatherCode,
			Precipitation: r.Hourly.Precipitation,
			Humidity:      r.Hourly.RelativeHumidity2m,
		},
		Daily: models.DailyForecast{
			Time:                     r.Daily.Time,
			WeatherCode:              r.Daily.WeatherCode,
			TemperatureMax:           r.Daily.Temperature2mMax,
			TemperatureMin:           r.Daily.Temperature2mMin,
			PrecipitationSum:         r.Daily.PrecipitationSum,
			PrecipitationProbability: r.Daily.PrecipitationProbabilityMax,
		},
	}
}
