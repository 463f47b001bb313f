package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planResponseBody = `{
	"route_geometry": [[41.8781, -87.6298], [41.5236, -90.5776]],
	"stops": [
		{
			"id": 1,
			"type": "start",
			"location": "Chicago, IL",
			"coordinates": {"lat": 41.8781, "lng": -87.6298},
			"arrival_time": "2025-06-10T06:00:00",
			"departure_time": "2025-06-10T06:30:00",
			"duration_minutes": 30,
			"cumulative_miles": 0,
			"cumulative_driving_hours": 0,
			"day": 1,
			"duty_status": "on_duty",
			"notes": "Pre-trip inspection"
		}
	],
	"log_sheets": [
		{
			"date": "06/10/2025",
			"day_number": 1,
			"total_miles": 165.0,
			"segments": [
				{"status": "off_duty", "start_hour": 0.0, "end_hour": 24.0, "location": "", "notes": ""}
			],
			"totals": {"off_duty": 24.0, "sleeper": 0.0, "driving": 0.0, "on_duty": 0.0},
			"remarks": []
		}
	],
	"summary": {
		"total_distance_miles": 165.0,
		"total_duration_hours": 3.8,
		"total_days": 1,
		"fuel_stops": 0,
		"rest_breaks": 0,
		"rest_stops": 0,
		"cycle_hours_after": 23.5
	}
}`

func TestAPIClient_PlanTrip(t *testing.T) {
	// Arrange
	var gotPath, gotContentType string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(planResponseBody))
	}))
	defer server.Close()
	client := NewAPIClient(server.URL, 5*time.Second)

	// Act
	result, err := client.PlanTrip(context.Background(), planTripRequest{
		CurrentLocation:   "Chicago, IL",
		PickupLocation:    "Davenport, IA",
		DropoffLocation:   "Des Moines, IA",
		CurrentCycleHours: 20,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/plan", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Chicago, IL", gotBody["current_location"])
	assert.Equal(t, 20.0, gotBody["current_cycle_hours"])

	require.Len(t, result.Stops, 1)
	assert.Equal(t, "Chicago, IL", result.Stops[0].Location)
	assert.Equal(t, "2025-06-10T06:00:00", result.Stops[0].ArrivalTime.String())
	require.Len(t, result.RouteGeometry, 2)
	assert.Equal(t, 41.8781, result.RouteGeometry[0].Lat)
	assert.Equal(t, -87.6298, result.RouteGeometry[0].Lng)
	assert.Equal(t, 165.0, result.Summary.TotalDistanceMiles)
	assert.Equal(t, 23.5, result.Summary.CycleHoursAfter)
}

func TestAPIClient_PlanTrip_FieldErrors(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"error": "Validation failed",
			"fields": {
				"pickup_location": "This field is required",
				"current_cycle_hours": "Must be at most 70"
			}
		}`))
	}))
	defer server.Close()
	client := NewAPIClient(server.URL, 5*time.Second)

	// Act
	_, err := client.PlanTrip(context.Background(), planTripRequest{})

	// Assert
	require.Error(t, err)
	assert.Equal(t,
		"Validation failed (current_cycle_hours: Must be at most 70; pickup_location: This field is required)",
		err.Error())
}

func TestAPIClient_PlanTrip_PlainError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Could not find location: Atlantis"}`))
	}))
	defer server.Close()
	client := NewAPIClient(server.URL, 5*time.Second)

	// Act
	_, err := client.PlanTrip(context.Background(), planTripRequest{})

	// Assert
	require.Error(t, err)
	assert.Equal(t, "Could not find location: Atlantis", err.Error())
}

func TestAPIClient_PlanTrip_NonJSONError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()
	client := NewAPIClient(server.URL, 5*time.Second)

	// Act
	_, err := client.PlanTrip(context.Background(), planTripRequest{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server returned 502")
}

func TestAPIClient_Health(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer server.Close()
	client := NewAPIClient(server.URL, 5*time.Second)

	// Act
	status, err := client.Health(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "healthy", status)
}
