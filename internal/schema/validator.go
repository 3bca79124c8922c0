package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

const (
	latitudeRange  = "Latitude must be between -90 and 90"
	longitudeRange = "Longitude must be between -180 and 180"

	tagSameLength = "samelen"
)

// Validator parses incoming query parameters and checks outgoing payloads.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(hourlySameLength, models.HourlyForecast{})
	v.RegisterStructValidation(dailySameLength, models.DailyForecast{})

	return &Validator{v: v}
}

// ParseRequest coerces lat/lon to floats, checks their bounds and resolves the unit.
// Every failing field is reported, not only the first one.
func (s *Validator) ParseRequest(raw models.RawWeatherQuery) (models.WeatherRequest, models.FieldErrors) {
	var errs models.FieldErrors

	lat, latErr := s.coordinate(raw.Lat, "Latitude", "gte=-90,lte=90", latitudeRange)
	if latErr != "" {
		errs = append(errs, models.FieldError{Field: "lat", Message: latErr})
	}

	lon, lonErr := s.coordinate(raw.Lon, "Longitude", "gte=-180,lte=180", longitudeRange)
	if lonErr != "" {
		errs = append(errs, models.FieldError{Field: "lon", Message: lonErr})
	}

	unit := strings.TrimSpace(raw.Unit)
	if unit == "" {
		unit = string(models.Celsius)
	}
	if err := s.v.Var(unit, "oneof=celsius fahrenheit"); err != nil {
		errs = append(errs, models.FieldError{
			Field:   "unit",
			Message: fmt.Sprintf("Invalid enum value. Expected 'celsius' | 'fahrenheit', received '%s'", unit),
		})
	}

	if len(errs) > 0 {
		return models.WeatherRequest{}, errs
	}

	return models.WeatherRequest{Lat: lat, Lon: lon, Unit: models.Unit(unit)}, nil
}

func (s *Validator) coordinate(raw, label, rule, rangeMsg string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, label + " is required"
	}

	value, err := strconv.ParseFloat(raw, 64)
	// out-of-range literals parse to ±Inf and fail the bounds check below
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(value) {
		return 0, label + " must be a number"
	}

	if err := s.v.Var(value, rule); err != nil {
		return 0, rangeMsg
	}
	return value, ""
}

// ValidateData checks field ranges and array-length parity of a payload.
// It returns models.FieldErrors on violation.
func (s *Validator) ValidateData(data models.WeatherData) error {
	err := s.v.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate weather data: %w", err)
	}

	out := make(models.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case tagSameLength:
		return "must have the same length as time (" + fe.Param() + ")"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func hourlySameLength(sl validator.StructLevel) {
	h, ok := sl.Current().Interface().(models.HourlyForecast)
	if !ok {
		return
	}
	n := len(h.Time)
	checkLen(sl, n, len(h.Temperature), "temperature", "Temperature")
	checkLen(sl, n, len(h.WeatherCode), "weatherCode", "WeatherCode")
	checkLen(sl, n, len(h.Precipitation), "precipitation", "Precipitation")
	checkLen(sl, n, len(h.Humidity), "humidity", "Humidity")
}

func dailySameLength(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(models.DailyForecast)
	if !ok {
		return
	}
	n := len(d.Time)
	checkLen(sl, n, len(d.WeatherCode), "weatherCode", "WeatherCode")
	checkLen(sl, n, len(d.TemperatureMax), "temperatureMax", "TemperatureMax")
	checkLen(sl, n, len(d.TemperatureMin), "temperatureMin", "TemperatureMin")
	checkLen(sl, n, len(d.PrecipitationSum), "precipitationSum", "PrecipitationSum")
	checkLen(sl, n, len(d.PrecipitationProbability), "precipitationProbability", "PrecipitationProbability")
}

func checkLen(sl validator.StructLevel, want, got int, field, structField string) {
	if want != got {
		sl.ReportError(got, field, structField, tagSameLength, strconv.Itoa(want))
	}
}
