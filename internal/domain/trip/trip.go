package trip

import (
	"github.com/andrescamacho/haulplan/internal/domain/logbook"
	"github.com/andrescamacho/haulplan/internal/domain/planning"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

// Trip is the full planning result: the routed path, the HOS-compliant stop
// sequence, the daily log sheets and the summary.
type Trip struct {
	RouteGeometry shared.Polyline     `json:"route_geometry"`
	Stops         []*planning.Stop    `json:"stops"`
	LogSheets     []*logbook.LogSheet `json:"log_sheets"`
	Summary       Summary             `json:"summary"`
}

func NewTrip(geometry shared.Polyline, stops []*planning.Stop, sheets []*logbook.LogSheet, summary Summary) *Trip {
	return &Trip{
		RouteGeometry: geometry,
		Stops:         stops,
		LogSheets:     sheets,
		Summary:       summary,
	}
}
