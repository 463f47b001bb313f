package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// MockGeocoder simulates forward and reverse geocoding for testing
type MockGeocoder struct {
	mu sync.RWMutex

	locations   map[string]shared.NamedLocation
	forwardErr  error
	reverseName string
	reverseOK   bool
	reverseErr  error

	forwardCalls []string
	reverseCalls int
}

// NewMockGeocoder creates a mock geocoder with no known locations
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		locations: make(map[string]shared.NamedLocation),
	}
}

// SetLocation registers a forward geocoding result for a query
func (m *MockGeocoder) SetLocation(query string, lat, lng float64, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[query] = shared.NamedLocation{
		Coordinate:  shared.Coordinate{Lat: lat, Lng: lng},
		DisplayName: displayName,
	}
}

// SetForwardError makes every Forward call fail with err
func (m *MockGeocoder) SetForwardError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forwardErr = err
}

// SetReverseName makes every Reverse call resolve to name
func (m *MockGeocoder) SetReverseName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reverseName = name
	m.reverseOK = true
}

// SetReverseError makes every Reverse call fail with err
func (m *MockGeocoder) SetReverseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reverseErr = err
}

// Forward implements trip.Geocoder with mock behavior. Unknown queries
// return GeocodeNotFoundError like the real adapter.
func (m *MockGeocoder) Forward(ctx context.Context, query string) (shared.NamedLocation, error) {
	m.mu.Lock()
	m.forwardCalls = append(m.forwardCalls, query)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.forwardErr != nil {
		return shared.NamedLocation{}, m.forwardErr
	}
	loc, ok := m.locations[query]
	if !ok {
		return shared.NamedLocation{}, shared.NewGeocodeNotFoundError(query)
	}
	return loc, nil
}

// Reverse implements trip.Geocoder and planning.LocationNamer. By default
// nothing resolves, so planned stops fall back to the placeholder name.
func (m *MockGeocoder) Reverse(ctx context.Context, coord shared.Coordinate) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reverseCalls++
	if m.reverseErr != nil {
		return "", false, m.reverseErr
	}
	return m.reverseName, m.reverseOK, nil
}

// ForwardCalls returns the queries Forward received, in order
func (m *MockGeocoder) ForwardCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]string, len(m.forwardCalls))
	copy(calls, m.forwardCalls)
	return calls
}

// ReverseCalls returns how many times Reverse was invoked
func (m *MockGeocoder) ReverseCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reverseCalls
}

// Reset clears all configured state
func (m *MockGeocoder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = make(map[string]shared.NamedLocation)
	m.forwardErr = nil
	m.reverseName = ""
	m.reverseOK = false
	m.reverseErr = nil
	m.forwardCalls = nil
	m.reverseCalls = 0
}
