package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

const (
	resultCount    = 5
	requestTimeout = 5 * time.Second
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type searchResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// Client resolves place names through the Open-Meteo geocoding API.
type Client struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClient(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	return &Client{apiURL: apiURL, client: httpClient, logger: logger}
}

// Search returns up to five matches. A blank query yields an empty list without a request.
func (c *Client) Search(ctx context.Context, query string) ([]models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Location{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("name", query)
	q.Set("count", strconv.Itoa(resultCount))
	q.Set("language", "en")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, models.NewProviderError(models.CodeProviderError, "Failed to search locations", err.Error())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("query", query).
			Msg("geocoding request failed")
		return nil, models.NewProviderError(models.CodeProviderError, "Failed to search locations", err.Error())
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().Ctx(ctx).Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Ctx(ctx).
			Int("status", resp.StatusCode).
			Str("query", query).
			Msg("geocoding API returned non-2xx status")
		return nil, models.NewProviderError(
			models.CodeProviderError,
			"Failed to search locations",
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, models.NewProviderError(models.CodeProviderError, "Failed to search locations", err.Error())
	}

	locations := make([]models.Location, 0, len(body.Results))
	for _, r := range body.Results {
		locations = append(locations, models.Location{
			ID:      fmt.Sprintf("%g,%g", r.Latitude, r.Longitude),
			Name:    r.Name,
			Lat:     r.Latitude,
			Lon:     r.Longitude,
			Country: r.Country,
			Admin1:  r.Admin1,
		})
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("query", query).
		Int("results", len(locations)).
		Msg("geocoding search completed")

	return locations, nil
}
