package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetricsCollector handles trip planning metrics
type PlannerMetricsCollector struct {
	// Plan request outcomes
	planRequestsTotal *prometheus.CounterVec

	// Shape of successfully planned trips
	tripDistanceMiles prometheus.Histogram
	tripDays          prometheus.Histogram
	tripStops         prometheus.Histogram
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		// Plan requests by outcome
		planRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_requests_total",
				Help:      "Total number of plan requests by outcome",
			},
			[]string{"outcome"},
		),

		// Planned trip distance distribution
		tripDistanceMiles: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trip_distance_miles",
				Help:      "Planned trip distance distribution in miles",
				Buckets:   []float64{100, 250, 500, 1000, 1500, 2000, 2500, 3000},
			},
		),

		// Planned trip day-count distribution
		tripDays: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trip_days",
				Help:      "Planned trip duration distribution in calendar days",
				Buckets:   []float64{1, 2, 3, 4, 5, 7, 10},
			},
		),

		// Planned trip stop-count distribution
		tripStops: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trip_stops",
				Help:      "Planned trip stop-count distribution",
				Buckets:   []float64{4, 6, 8, 10, 15, 20, 30},
			},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.planRequestsTotal,
		c.tripDistanceMiles,
		c.tripDays,
		c.tripStops,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlanRequest records a plan request outcome
func (c *PlannerMetricsCollector) RecordPlanRequest(outcome string) {
	c.planRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordTripPlanned records the shape of a successfully planned trip
func (c *PlannerMetricsCollector) RecordTripPlanned(distanceMiles float64, days, stops int) {
	c.tripDistanceMiles.Observe(distanceMiles)
	c.tripDays.Observe(float64(days))
	c.tripStops.Observe(float64(stops))
}
