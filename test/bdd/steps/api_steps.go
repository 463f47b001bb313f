package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/haulplan/internal/adapters/rest"
	apptrip "github.com/andrescamacho/haulplan/internal/application/trip"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/pkg/logger"
	"github.com/andrescamacho/haulplan/test/helpers"
)

// apiContext drives scenarios through the HTTP surface: a real router and
// handler over an httptest server, with only the upstream ports mocked.
type apiContext struct {
	geocoder *helpers.MockGeocoder
	router   *helpers.MockRouter
	server   *httptest.Server

	status int
	body   []byte
}

func (ac *apiContext) reset() {
	ac.close()
	ac.geocoder = nil
	ac.router = nil
	ac.status = 0
	ac.body = nil
}

func (ac *apiContext) close() {
	if ac.server != nil {
		ac.server.Close()
		ac.server = nil
	}
}

func (ac *apiContext) record(resp *http.Response) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	ac.status = resp.StatusCode
	ac.body = body
	return nil
}

// Given steps

func (ac *apiContext) aRunningPlanningAPI() error {
	ac.geocoder = helpers.NewMockGeocoder()
	ac.router = helpers.NewMockRouter()
	clock := shared.NewMockClock(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	log := logger.NewNop()
	service := apptrip.NewService(ac.geocoder, ac.router, clock, 6, log)
	handler := rest.NewHandler(service, log)
	ac.server = httptest.NewServer(rest.NewRouter(handler, []string{"*"}, log))
	return nil
}

func (ac *apiContext) theAPIKnows(name string, lat, lng float64) error {
	if ac.geocoder == nil {
		return fmt.Errorf("the API is not running")
	}
	ac.geocoder.SetLocation(name, lat, lng, name)
	return nil
}

func (ac *apiContext) theAPICannotRoute() error {
	if ac.router == nil {
		return fmt.Errorf("the API is not running")
	}
	ac.router.SetNoRoute(true)
	return nil
}

// When steps

func (ac *apiContext) iPOSTAPlanRequest(body *godog.DocString) error {
	if ac.server == nil {
		return fmt.Errorf("the API is not running")
	}
	resp, err := http.Post(ac.server.URL+"/plan", "application/json", strings.NewReader(body.Content))
	if err != nil {
		return fmt.Errorf("posting plan request: %w", err)
	}
	return ac.record(resp)
}

func (ac *apiContext) iGETTheHealthEndpoint() error {
	if ac.server == nil {
		return fmt.Errorf("the API is not running")
	}
	resp, err := http.Get(ac.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("getting health: %w", err)
	}
	return ac.record(resp)
}

// Then steps

func (ac *apiContext) theResponseStatusShouldBe(status int) error {
	if ac.status != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", status, ac.status, ac.body)
	}
	return nil
}

func (ac *apiContext) theResponseErrorShouldBe(message string) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(ac.body, &payload); err != nil {
		return fmt.Errorf("decoding error response: %w (body: %s)", err, ac.body)
	}
	if payload.Error != message {
		return fmt.Errorf("expected error %q, got %q", message, payload.Error)
	}
	return nil
}

func (ac *apiContext) theResponseFieldShouldRead(field, message string) error {
	var payload struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(ac.body, &payload); err != nil {
		return fmt.Errorf("decoding error response: %w (body: %s)", err, ac.body)
	}
	got, ok := payload.Fields[field]
	if !ok {
		return fmt.Errorf("no message for field %q in %v", field, payload.Fields)
	}
	if got != message {
		return fmt.Errorf("expected field %q to read %q, got %q", field, message, got)
	}
	return nil
}

func (ac *apiContext) theResponseShouldContainATripWithStops(count int) error {
	var payload struct {
		Stops []json.RawMessage `json:"stops"`
	}
	if err := json.Unmarshal(ac.body, &payload); err != nil {
		return fmt.Errorf("decoding trip response: %w (body: %s)", err, ac.body)
	}
	if len(payload.Stops) != count {
		return fmt.Errorf("expected %d stops, got %d", count, len(payload.Stops))
	}
	return nil
}

func (ac *apiContext) theHealthStatusShouldBe(status string) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(ac.body, &payload); err != nil {
		return fmt.Errorf("decoding health response: %w (body: %s)", err, ac.body)
	}
	if payload.Status != status {
		return fmt.Errorf("expected health status %q, got %q", status, payload.Status)
	}
	return nil
}

// InitializeAPIScenario registers HTTP API steps
func InitializeAPIScenario(ctx *godog.ScenarioContext) {
	ac := &apiContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ac.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		ac.close()
		return ctx, nil
	})

	// Given
	ctx.Step(`^a running planning API$`, ac.aRunningPlanningAPI)
	ctx.Step(`^the API knows "([^"]*)" at (-?\d+\.?\d*), (-?\d+\.?\d*)$`, ac.theAPIKnows)
	ctx.Step(`^the API cannot route between locations$`, ac.theAPICannotRoute)

	// When
	ctx.Step(`^I POST a plan request with body:$`, ac.iPOSTAPlanRequest)
	ctx.Step(`^I GET the health endpoint$`, ac.iGETTheHealthEndpoint)

	// Then
	ctx.Step(`^the response status should be (\d+)$`, ac.theResponseStatusShouldBe)
	ctx.Step(`^the response error should be "([^"]*)"$`, ac.theResponseErrorShouldBe)
	ctx.Step(`^the response field "([^"]*)" should read "([^"]*)"$`, ac.theResponseFieldShouldRead)
	ctx.Step(`^the response should contain a trip with (\d+) stops$`, ac.theResponseShouldContainATripWithStops)
	ctx.Step(`^the health status should be "([^"]*)"$`, ac.theHealthStatusShouldBe)
}
