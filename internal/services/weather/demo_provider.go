package weather

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

const (
	demoName      = "demo"
	demoTimeFmt   = "2006-01-02T15:04"
	demoDateFmt   = "2006-01-02"
	rainCodeStart = 60
)

type demoLocation struct {
	tempC       float64
	tempF       float64
	weatherCode int
	humidity    float64
	windSpeed   float64
}

var (
	demoLocations = map[string]demoLocation{
		"51.51,-0.13":   {tempC: 12, tempF: 54, weatherCode: 3, humidity: 78, windSpeed: 15},  // London
		"40.71,-74.01":  {tempC: 18, tempF: 64, weatherCode: 1, humidity: 62, windSpeed: 12},  // New York
		"35.68,139.65":  {tempC: 22, tempF: 72, weatherCode: 2, humidity: 70, windSpeed: 8},   // Tokyo
		"48.86,2.35":    {tempC: 15, tempF: 59, weatherCode: 61, humidity: 75, windSpeed: 10}, // Paris
		"-33.87,151.21": {tempC: 25, tempF: 77, weatherCode: 0, humidity: 55, windSpeed: 18},  // Sydney
	}
	demoDefault = demoLocation{tempC: 20, tempF: 68, weatherCode: 1, humidity: 65, windSpeed: 10}
)

type DemoConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DemoProvider serves plausible synthetic forecasts without network access.
type DemoProvider struct {
	cfg    DemoConfig
	logger zerolog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewDemoProvider(cfg DemoConfig, logger zerolog.Logger) *DemoProvider {
	return &DemoProvider{
		cfg:    cfg,
		logger: logger,
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), //nolint:gosec
		now:    time.Now,
	}
}

func (d *DemoProvider) Name() string {
	return demoName
}

func (d *DemoProvider) Ping(context.Context) error {
	return nil
}

// FetchWeather sleeps for a random delay within the configured bounds, then
// synthesizes data from the matching reference location, else the default profile.
func (d *DemoProvider) FetchWeather(ctx context.Context, opts models.FetchOptions) (models.WeatherData, error) {
	if delay := d.delay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return models.WeatherData{}, models.NewProviderError(
				models.CodeTimeout,
				"Request timed out",
				fmt.Sprintf("Request exceeded %dms timeout", opts.Timeout.Milliseconds()))
		}
	}

	loc, ok := demoLocations[fmt.Sprintf("%.2f,%.2f", opts.Lat, opts.Lon)]
	if !ok {
		loc = demoDefault
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	data := d.generate(loc, opts.Unit, d.now().UTC())

	d.logger.Debug().
		Ctx(ctx).
		Float64("lat", opts.Lat).
		Float64("lon", opts.Lon).
		Str("unit", string(opts.Unit)).
		Msg("generated demo weather")

	return data, nil
}

func (d *DemoProvider) delay() time.Duration {
	if d.cfg.MaxDelay <= 0 {
		return 0
	}
	spread := d.cfg.MaxDelay - d.cfg.MinDelay
	if spread <= 0 {
		return d.cfg.MinDelay
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.MinDelay + time.Duration(d.rnd.Int64N(int64(spread)))
}

func (d *DemoProvider) generate(loc demoLocation, unit models.Unit, now time.Time) models.WeatherData {
	base, variance := loc.tempC, 3.0
	if unit == models.Fahrenheit {
		base, variance = loc.tempF, 5.0
	}
	rainy := loc.weatherCode >= rainCodeStart

	current := models.CurrentWeather{
		Temperature:         base,
		WeatherCode:         loc.weatherCode,
		WindSpeed:           loc.windSpeed,
		WindDirection:       float64(180 + d.rnd.IntN(90)),
		Humidity:            loc.humidity,
		ApparentTemperature: base - 2,
		Time:                now.Format(demoTimeFmt),
	}
	if rainy {
		current.Precipitation = 0.5
	}

	hourly := models.HourlyForecast{
		Time:          make([]string, 0, hourlyPoints),
		Temperature:   make([]float64, 0, hourlyPoints),
		WeatherCode:   make([]int, 0, hourlyPoints),
		Precipitation: make([]float64, 0, hourlyPoints),
		Humidity:      make([]float64, 0, hourlyPoints),
	}
	for i := range hourlyPoints {
		ts := now.Add(time.Duration(i) * time.Hour)
		swing := math.Sin(float64(ts.Hour()-6) * math.Pi / 12)

		code := loc.weatherCode
		if i%8 == 0 {
			code = (loc.weatherCode + 1) % 4
		}
		precip := 0.0
		if rainy {
			precip = round1(d.rnd.Float64() * 2)
		}

		hourly.Time = append(hourly.Time, ts.Format(demoTimeFmt))
		hourly.Temperature = append(hourly.Temperature, round1(base+4*swing))
		hourly.WeatherCode = append(hourly.WeatherCode, code)
		hourly.Precipitation = append(hourly.Precipitation, precip)
		hourly.Humidity = append(hourly.Humidity, math.Round(65-swing*2))
	}

	daily := models.DailyForecast{
		Time:                     make([]string, 0, dailyPoints),
		WeatherCode:              make([]int, 0, dailyPoints),
		TemperatureMax:           make([]float64, 0, dailyPoints),
		TemperatureMin:           make([]float64, 0, dailyPoints),
		PrecipitationSum:         make([]float64, 0, dailyPoints),
		PrecipitationProbability: make([]float64, 0, dailyPoints),
	}
	for i := range dailyPoints {
		swing := math.Sin(float64(i)*math.Pi/7) * variance

		sum, prob := 0.0, math.Max(0, float64(20-3*i))
		if rainy {
			sum = math.Max(0, math.Round(float64(5-i)*2))
			prob = math.Max(10, float64(70-10*i))
		}

		daily.Time = append(daily.Time, now.AddDate(0, 0, i).Format(demoDateFmt))
		daily.WeatherCode = append(daily.WeatherCode, (loc.weatherCode+i)%4)
		daily.TemperatureMax = append(daily.TemperatureMax, round1(base+5+swing))
		daily.TemperatureMin = append(daily.TemperatureMin, round1(base-5+swing))
		daily.PrecipitationSum = append(daily.PrecipitationSum, sum)
		daily.PrecipitationProbability = append(daily.PrecipitationProbability, prob)
	}

	return models.WeatherData{Current: current, Hourly: hourly, Daily: daily}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
