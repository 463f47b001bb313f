// Package routing implements the trip.Router port against an OSRM server.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/haulplan/internal/adapters/resilience"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/internal/domain/trip"
	"github.com/andrescamacho/haulplan/pkg/logger"
)

const (
	defaultBaseURL = "https://router.project-osrm.org"
	defaultTimeout = 30 * time.Second

	metersPerMile  = 1609.34
	secondsPerHour = 3600

	breakerMaxFailures = 5
	breakerCooldown    = 30 * time.Second
)

// OSRMClient routes trips over the OSRM HTTP API.
type OSRMClient struct {
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	baseURL    string
	log        *logger.Logger
}

// NewOSRMClient creates a client against the public OSRM demo server.
func NewOSRMClient(log *logger.Logger) *OSRMClient {
	return NewOSRMClientWithConfig(defaultBaseURL, defaultTimeout, log)
}

// NewOSRMClientWithConfig creates a client with custom settings.
func NewOSRMClientWithConfig(baseURL string, timeout time.Duration, log *logger.Logger) *OSRMClient {
	return &OSRMClient{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    resilience.NewCircuitBreaker(breakerMaxFailures, breakerCooldown, nil),
		baseURL:    baseURL,
		log:        log,
	}
}

// Route fetches the driving route through the waypoints in order. OSRM
// rejections become RouteUnavailableError; transport failures surface as
// plain errors.
func (c *OSRMClient) Route(ctx context.Context, waypoints []shared.Coordinate) (*trip.Route, error) {
	if len(waypoints) < 2 {
		return nil, shared.NewRouteUnavailableError()
	}

	// OSRM wants lng,lat pairs joined with semicolons.
	coords := make([]string, len(waypoints))
	for i, w := range waypoints {
		coords[i] = strconv.FormatFloat(w.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(w.Lat, 'f', -1, 64)
	}
	url := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson", c.baseURL, strings.Join(coords, ";"))

	var response struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Routes  []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Legs []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}

	// The breaker covers the transport only. A well-formed "no route found"
	// answer is a healthy upstream saying no.
	err := c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("osrm route: %w", err)
	}

	if response.Code != "Ok" || len(response.Routes) == 0 {
		c.log.Warnw("osrm returned no route", "code", response.Code, "message", response.Message)
		return nil, shared.NewRouteUnavailableError()
	}

	route := response.Routes[0]

	// geojson pairs are [lng, lat]; the trip carries [lat, lng].
	geometry := make(shared.Polyline, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, shared.Coordinate{Lat: pair[1], Lng: pair[0]})
	}

	legs := make([]trip.RouteLeg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		legs = append(legs, trip.RouteLeg{
			DistanceMiles: leg.Distance / metersPerMile,
			DurationHours: leg.Duration / secondsPerHour,
		})
	}

	return trip.NewRoute(route.Distance/metersPerMile, route.Duration/secondsPerHour, legs, geometry)
}
