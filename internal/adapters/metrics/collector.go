// Package metrics exposes Prometheus instrumentation for the planner. All
// recording goes through package-level helpers that no-op when metrics are
// disabled, so callers never need to check.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "haulplan"
	// Subsystem for server metrics
	subsystem = "server"
)

// Plan request outcomes used as the outcome label value.
const (
	OutcomePlanned          = "planned"
	OutcomeValidationFailed = "validation_failed"
	OutcomeGeocodeNotFound  = "geocode_not_found"
	OutcomeRouteUnavailable = "route_unavailable"
	OutcomeInternalError    = "internal_error"
)

var (
	// Registry is the global Prometheus registry for all metrics.
	// Nil until InitRegistry is called.
	Registry *prometheus.Registry

	// globalHTTPCollector records request-level metrics when set
	globalHTTPCollector HTTPRecorder

	// globalPlannerCollector records plan outcome metrics when set
	globalPlannerCollector PlannerRecorder
)

// HTTPRecorder is the interface for recording HTTP request metrics
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, statusCode int, duration float64)
}

// PlannerRecorder is the interface for recording plan outcome metrics
type PlannerRecorder interface {
	RecordPlanRequest(outcome string)
	RecordTripPlanned(distanceMiles float64, days, stops int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalHTTPCollector sets the global HTTP metrics collector
func SetGlobalHTTPCollector(collector HTTPRecorder) {
	globalHTTPCollector = collector
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerRecorder) {
	globalPlannerCollector = collector
}

// RecordHTTPRequest records a served HTTP request globally
func RecordHTTPRequest(method, route string, statusCode int, duration float64) {
	if globalHTTPCollector != nil {
		globalHTTPCollector.RecordHTTPRequest(method, route, statusCode, duration)
	}
}

// RecordPlanRequest records a plan request outcome globally
func RecordPlanRequest(outcome string) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordPlanRequest(outcome)
	}
}

// RecordTripPlanned records the shape of a successfully planned trip globally
func RecordTripPlanned(distanceMiles float64, days, stops int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordTripPlanned(distanceMiles, days, stops)
	}
}
