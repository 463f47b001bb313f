// Package geocoding implements the trip.Geocoder port against the public
// Nominatim API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/haulplan/internal/adapters/resilience"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/pkg/logger"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "haulplan/1.0"
	defaultTimeout   = 10 * time.Second

	// Nominatim's usage policy allows at most one request per second.
	defaultRateInterval = time.Second

	// Zoom 10 resolves to city level, which is what stop names want.
	reverseZoom = "10"

	breakerMaxFailures = 5
	breakerCooldown    = 30 * time.Second
)

// NominatimClient geocodes against a Nominatim instance. One rate limiter
// and one circuit breaker cover forward and reverse lookups together.
type NominatimClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.CircuitBreaker
	baseURL    string
	userAgent  string
	log        *logger.Logger
}

// NewNominatimClient creates a client against the public Nominatim API.
func NewNominatimClient(log *logger.Logger) *NominatimClient {
	return NewNominatimClientWithConfig(defaultBaseURL, defaultUserAgent, defaultTimeout, defaultRateInterval, log)
}

// NewNominatimClientWithConfig creates a client with custom settings. Tests
// point baseURL at a local server and shrink the rate interval.
func NewNominatimClientWithConfig(baseURL, userAgent string, timeout, rateInterval time.Duration, log *logger.Logger) *NominatimClient {
	return &NominatimClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(rateInterval), 1),
		breaker:    resilience.NewCircuitBreaker(breakerMaxFailures, breakerCooldown, nil),
		baseURL:    baseURL,
		userAgent:  userAgent,
		log:        log,
	}
}

// Forward resolves an address to a named coordinate. An empty result set
// yields GeocodeNotFoundError; transport failures surface as plain errors
// so callers can tell "bad address" from "geocoder down".
func (c *NominatimClient) Forward(ctx context.Context, query string) (shared.NamedLocation, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "us")

	// Nominatim returns lat/lon as JSON strings.
	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return shared.NamedLocation{}, fmt.Errorf("nominatim search: %w", err)
	}

	if len(results) == 0 {
		return shared.NamedLocation{}, shared.NewGeocodeNotFoundError(query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return shared.NamedLocation{}, fmt.Errorf("nominatim search: parsing lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return shared.NamedLocation{}, fmt.Errorf("nominatim search: parsing lon %q: %w", results[0].Lon, err)
	}

	return shared.NamedLocation{
		Coordinate:  shared.Coordinate{Lat: lat, Lng: lng},
		DisplayName: results[0].DisplayName,
	}, nil
}

// Reverse names the place at a coordinate as "City, ST" when the address
// carries a recognizable city and state, falling back to the display name.
// Failures are reported but tolerable; stops degrade to a placeholder name.
func (c *NominatimClient) Reverse(ctx context.Context, coord shared.Coordinate) (string, bool, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("zoom", reverseZoom)

	var result struct {
		DisplayName string `json:"display_name"`
		Address     *struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			County  string `json:"county"`
			State   string `json:"state"`
		} `json:"address"`
	}
	if err := c.get(ctx, "/reverse", params, &result); err != nil {
		c.log.Warnw("reverse geocode failed", "lat", coord.Lat, "lng", coord.Lng, "error", err)
		return "", false, fmt.Errorf("nominatim reverse: %w", err)
	}

	if result.Address != nil {
		city := firstNonEmpty(result.Address.City, result.Address.Town, result.Address.Village, result.Address.County)
		stateAbbr := shared.StateAbbrev(result.Address.State)

		if city != "" && stateAbbr != "" {
			return city + ", " + stateAbbr, true, nil
		}
		if city != "" {
			return city, true, nil
		}
	}

	if result.DisplayName != "" {
		return result.DisplayName, true, nil
	}
	return shared.UnknownLocation, true, nil
}

// get performs one rate-limited GET and decodes the JSON body. The circuit
// breaker wraps only the transport, so waiting on the limiter never counts
// as an upstream failure.
func (c *NominatimClient) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	return c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
