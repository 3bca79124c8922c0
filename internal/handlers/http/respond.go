package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

const (
	headerCacheControl = "Cache-Control"
	cacheablePublic    = "public, max-age=60"
	noStore            = "no-store"
)

func respondError(c *gin.Context, status int, werr models.WeatherError) {
	c.Header(headerCacheControl, noStore)
	c.JSON(status, models.Response{Success: false, Error: &werr})
}

func respondData(c *gin.Context, data models.WeatherData) {
	c.Header(headerCacheControl, cacheablePublic)
	c.JSON(http.StatusOK, models.Response{Success: true, Data: &data})
}

func statusFor(code models.ErrorCode) int {
	switch code {
	case models.CodeInvalidRequest:
		return http.StatusBadRequest
	case models.CodeRateLimited:
		return http.StatusTooManyRequests
	case models.CodeTimeout:
		return http.StatusGatewayTimeout
	case models.CodeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
