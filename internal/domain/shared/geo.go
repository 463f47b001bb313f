package shared

import (
	"encoding/json"
	"fmt"
	"math"
)

// earthRadiusMiles is the mean Earth radius used for great-circle math.
const earthRadiusMiles = 3959.0

// Coordinate is an immutable WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine returns the great-circle distance between two points in miles.
func Haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lng1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lng2 := b.Lng * math.Pi / 180

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// Polyline is an ordered road geometry. A usable polyline has at least two
// points. It marshals as [[lat, lng], ...] pairs.
type Polyline []Coordinate

// Length returns the haversine-summed length of the polyline in miles.
func (p Polyline) Length() float64 {
	total := 0.0
	for i := 0; i < len(p)-1; i++ {
		total += Haversine(p[i], p[i+1])
	}
	return total
}

// PointAt returns the coordinate at the given mile offset along the polyline.
// It accumulates haversine segment lengths and interpolates linearly within
// the segment containing the offset. Offsets at or below zero return the
// first point; offsets beyond the polyline's length return the last point.
// Router-reported distances usually exceed the polyline's haversine length,
// so callers locating stops by route miles get an approximate position.
func (p Polyline) PointAt(miles float64) Coordinate {
	if len(p) == 0 {
		return Coordinate{}
	}
	if miles <= 0 {
		return p[0]
	}

	cumulative := 0.0
	for i := 0; i < len(p)-1; i++ {
		segment := Haversine(p[i], p[i+1])
		if cumulative+segment >= miles {
			ratio := 0.0
			if segment > 0 {
				ratio = (miles - cumulative) / segment
			}
			return Coordinate{
				Lat: p[i].Lat + ratio*(p[i+1].Lat-p[i].Lat),
				Lng: p[i].Lng + ratio*(p[i+1].Lng-p[i].Lng),
			}
		}
		cumulative += segment
	}

	return p[len(p)-1]
}

// MarshalJSON renders the polyline as an array of [lat, lng] pairs.
func (p Polyline) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(p))
	for i, c := range p {
		pairs[i] = [2]float64{c.Lat, c.Lng}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON parses an array of [lat, lng] pairs.
func (p *Polyline) UnmarshalJSON(data []byte) error {
	var pairs [][]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	coords := make([]Coordinate, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("polyline point %d: expected [lat, lng], got %d values", i, len(pair))
		}
		coords[i] = Coordinate{Lat: pair[0], Lng: pair[1]}
	}
	*p = coords
	return nil
}

// NamedLocation is a geocoded place: a coordinate plus its display string.
type NamedLocation struct {
	Coordinate
	DisplayName string
}
