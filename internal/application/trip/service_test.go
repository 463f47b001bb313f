package trip_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptrip "github.com/andrescamacho/haulplan/internal/application/trip"
	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/pkg/logger"
	"github.com/andrescamacho/haulplan/test/helpers"
)

func newService(t *testing.T, geocoder *helpers.MockGeocoder, router *helpers.MockRouter) *apptrip.Service {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2025, time.June, 10, 11, 30, 0, 0, time.UTC))
	return apptrip.NewService(geocoder, router, clock, 6, logger.NewNop())
}

func TestService_PlanTrip(t *testing.T) {
	// Arrange
	geocoder := helpers.NewMockGeocoder()
	geocoder.SetLocation("Chicago, IL", 41.88, -87.63, "Chicago, Cook County, Illinois, United States")
	geocoder.SetLocation("Davenport, IA", 41.52, -90.58, "Davenport, Scott County, Iowa, United States")
	geocoder.SetLocation("Des Moines, IA", 41.59, -93.62, "Des Moines, Polk County, Iowa, United States")

	router := helpers.NewMockRouter()
	router.SetRoute(helpers.FixedRoute(
		shared.Coordinate{Lat: 41.88, Lng: -87.63},
		shared.Coordinate{Lat: 41.52, Lng: -90.58},
		shared.Coordinate{Lat: 41.59, Lng: -93.62},
		110, 110,
	))

	service := newService(t, geocoder, router)

	// Act
	result, err := service.PlanTrip(context.Background(), apptrip.PlanRequest{
		CurrentLocation:   "Chicago, IL",
		PickupLocation:    "Davenport, IA",
		DropoffLocation:   "Des Moines, IA",
		CurrentCycleHours: 20,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Stops, 4)
	assert.Equal(t, planning.StopStart, result.Stops[0].Type)
	assert.Equal(t, planning.StopPickup, result.Stops[1].Type)
	assert.Equal(t, planning.StopDropoff, result.Stops[2].Type)
	assert.Equal(t, planning.StopEnd, result.Stops[3].Type)

	// Trips depart at the configured start hour on the clock's date.
	wantStart := time.Date(2025, time.June, 10, 6, 0, 0, 0, time.UTC)
	assert.True(t, result.Stops[0].ArrivalTime.Equal(wantStart))

	assert.Equal(t, "Chicago, IL", result.Stops[0].Location)
	assert.Equal(t, "Davenport, IA", result.Stops[1].Location)

	assert.Equal(t, 220.0, result.Summary.TotalDistanceMiles)
	assert.Equal(t, 26.8, result.Summary.CycleHoursAfter)
	assert.Equal(t, 1, result.Summary.TotalDays)
	require.Len(t, result.LogSheets, 1)

	assert.Len(t, result.RouteGeometry, 3)

	routed := router.RoutedWaypoints()
	require.Len(t, routed, 1)
	assert.Equal(t, shared.Coordinate{Lat: 41.88, Lng: -87.63}, routed[0][0])
	assert.Equal(t, shared.Coordinate{Lat: 41.52, Lng: -90.58}, routed[0][1])
	assert.Equal(t, shared.Coordinate{Lat: 41.59, Lng: -93.62}, routed[0][2])
}

func TestService_PlanTrip_UnknownLocation(t *testing.T) {
	// Arrange
	geocoder := helpers.NewMockGeocoder()
	geocoder.SetLocation("Chicago, IL", 41.88, -87.63, "Chicago, Illinois")

	service := newService(t, geocoder, helpers.NewMockRouter())

	// Act
	_, err := service.PlanTrip(context.Background(), apptrip.PlanRequest{
		CurrentLocation:   "Chicago, IL",
		PickupLocation:    "Nowheresville, ZZ",
		DropoffLocation:   "Des Moines, IA",
		CurrentCycleHours: 0,
	})

	// Assert
	require.Error(t, err)
	var notFound *shared.GeocodeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Nowheresville, ZZ", notFound.Input)
}

func TestService_PlanTrip_NoRoute(t *testing.T) {
	// Arrange
	geocoder := helpers.NewMockGeocoder()
	geocoder.SetLocation("Chicago, IL", 41.88, -87.63, "Chicago, Illinois")
	geocoder.SetLocation("Honolulu, HI", 21.31, -157.86, "Honolulu, Hawaii")
	geocoder.SetLocation("Des Moines, IA", 41.59, -93.62, "Des Moines, Iowa")

	router := helpers.NewMockRouter()
	router.SetNoRoute(true)

	service := newService(t, geocoder, router)

	// Act
	_, err := service.PlanTrip(context.Background(), apptrip.PlanRequest{
		CurrentLocation:   "Chicago, IL",
		PickupLocation:    "Honolulu, HI",
		DropoffLocation:   "Des Moines, IA",
		CurrentCycleHours: 0,
	})

	// Assert
	require.Error(t, err)
	var unavailable *shared.RouteUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}
