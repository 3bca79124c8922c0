package models

import "time"

type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// RawWeatherQuery carries the query parameters exactly as the client sent them.
type RawWeatherQuery struct {
	Lat  string
	Lon  string
	Unit string
}

// WeatherRequest is a validated request: coordinates in range and a concrete unit.
type WeatherRequest struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Unit Unit    `json:"unit"`
}

type CurrentWeather struct {
	Temperature         float64 `json:"temperature"`
	WeatherCode         int     `json:"weatherCode" validate:"gte=0,lte=99"`
	WindSpeed           float64 `json:"windSpeed" validate:"gte=0"`
	WindDirection       float64 `json:"windDirection" validate:"gte=0,lte=360"`
	Humidity            float64 `json:"humidity" validate:"gte=0,lte=100"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	Precipitation       float64 `json:"precipitation" validate:"gte=0"`
	Time                string  `json:"time"`
}

// HourlyForecast holds parallel arrays, one entry per hour.
type HourlyForecast struct {
	Time          []string  `json:"time" validate:"required"`
	Temperature   []float64 `json:"temperature" validate:"required"`
	WeatherCode   []int     `json:"weatherCode" validate:"required,dive,gte=0,lte=99"`
	Precipitation []float64 `json:"precipitation" validate:"required,dive,gte=0"`
	Humidity      []float64 `json:"humidity" validate:"required,dive,gte=0,lte=100"`
}

// DailyForecast holds parallel arrays, one entry per day.
type DailyForecast struct {
	Time                     []string  `json:"time" validate:"required"`
	WeatherCode              []int     `json:"weatherCode" validate:"required,dive,gte=0,lte=99"`
	TemperatureMax           []float64 `json:"temperatureMax" validate:"required"`
	TemperatureMin           []float64 `json:"temperatureMin" validate:"required"`
	PrecipitationSum         []float64 `json:"precipitationSum" validate:"required,dive,gte=0"`
	PrecipitationProbability []float64 `json:"precipitationProbability" validate:"required,dive,gte=0,lte=100"`
}

// WeatherData is the vendor-agnostic payload served to clients.
type WeatherData struct {
	Current CurrentWeather `json:"current"`
	Hourly  HourlyForecast `json:"hourly"`
	Daily   DailyForecast  `json:"daily"`
}

// FetchOptions is the input of a provider fetch.
type FetchOptions struct {
	Lat     float64
	Lon     float64
	Unit    Unit
	Timeout time.Duration
}

// Location is a geocoding search result.
type Location struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	Admin1  string  `json:"admin1,omitempty"`
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}
