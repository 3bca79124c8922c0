package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCacheMiss = errors.New("cache miss")

type ErrorCode string

const (
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	CodeProviderError  ErrorCode = "PROVIDER_ERROR"
	CodeRateLimited    ErrorCode = "RATE_LIMITED"
	CodeTimeout        ErrorCode = "TIMEOUT"
)

// WeatherError is the error object of every failure response.
type WeatherError struct {
	Message string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Response is the envelope of GET /api/weather.
type Response struct {
	Success bool          `json:"success"`
	Data    *WeatherData  `json:"data,omitempty"`
	Error   *WeatherError `json:"error,omitempty"`
}

// ProviderError is a typed failure raised at the provider boundary.
type ProviderError struct {
	Code    ErrorCode
	Message string
	Details string
}

func NewProviderError(code ErrorCode, message, details string) *ProviderError {
	return &ProviderError{Code: code, Message: message, Details: details}
}

func (e *ProviderError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

func (e *ProviderError) WeatherError() WeatherError {
	return WeatherError{Message: e.Message, Code: e.Code, Details: e.Details}
}

type FieldError struct {
	Field   string
	Message string
}

// FieldErrors renders as "field: message" pairs joined by "; ".
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}
