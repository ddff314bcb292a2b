// Package geocode resolves waypoint addresses to coordinates through a
// Nominatim-compatible HTTP API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const requestTimeout = 5 * time.Second

var _ ports.Geocoder = &Client{}

// Client is an HTTP geocoder. Lookups are bounded by a short timeout: origin
// resolution sits on the dispatch path, and a slow upstream must fail the
// request rather than stall it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a geocoder client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "geocoder"),
	}, nil
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to a geographic point. An unreachable or
// failing upstream maps to errs.ErrUpstreamUnavailable; an address the
// upstream does not know maps to errs.ErrObjectNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if address == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	requestURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewUpstreamUnavailableErrorWithCause("geocoder", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, errs.NewUpstreamUnavailableErrorWithCause("geocoder",
			fmt.Errorf("unexpected status %d", response.StatusCode))
	}

	var results []searchResult
	if err := json.NewDecoder(response.Body).Decode(&results); err != nil {
		return kernel.GeoPoint{}, errs.NewUpstreamUnavailableErrorWithCause("geocoder", err)
	}

	if len(results) == 0 {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", address)
	}

	latitude, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}
	longitude, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	c.logger.DebugContext(ctx, "address resolved",
		"address", address,
		"point", point.String())
	return point, nil
}
