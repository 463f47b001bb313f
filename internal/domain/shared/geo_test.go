package shared_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

var (
	chicago   = shared.Coordinate{Lat: 41.8781, Lng: -87.6298}
	davenport = shared.Coordinate{Lat: 41.5236, Lng: -90.5776}
)

func TestHaversine_KnownDistance(t *testing.T) {
	// Chicago to Davenport is roughly 154 road-free miles.
	miles := shared.Haversine(chicago, davenport)
	assert.InDelta(t, 154.0, miles, 1.0)
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, shared.Haversine(chicago, chicago))
}

func TestHaversine_Symmetric(t *testing.T) {
	assert.InDelta(t, shared.Haversine(chicago, davenport), shared.Haversine(davenport, chicago), 1e-9)
}

func TestPolyline_Length(t *testing.T) {
	line := shared.Polyline{chicago, davenport}
	assert.InDelta(t, shared.Haversine(chicago, davenport), line.Length(), 1e-9)

	assert.Equal(t, 0.0, shared.Polyline{chicago}.Length())
	assert.Equal(t, 0.0, shared.Polyline{}.Length())
}

func TestPolyline_PointAt(t *testing.T) {
	// One degree of longitude on the equator, about 69 miles.
	line := shared.Polyline{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}
	length := line.Length()

	midpoint := line.PointAt(length / 2)
	assert.InDelta(t, 0.5, midpoint.Lng, 0.001)
	assert.InDelta(t, 0.0, midpoint.Lat, 0.001)

	assert.Equal(t, line[0], line.PointAt(0))
	assert.Equal(t, line[0], line.PointAt(-10))
	assert.Equal(t, line[1], line.PointAt(length+50))
	assert.Equal(t, shared.Coordinate{}, shared.Polyline{}.PointAt(10))
}

func TestPolyline_PointAt_MultiSegment(t *testing.T) {
	line := shared.Polyline{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}
	segment := shared.Haversine(line[0], line[1])

	// Halfway into the second segment.
	point := line.PointAt(segment * 1.5)
	assert.InDelta(t, 1.5, point.Lng, 0.001)
}

func TestPolyline_JSONRoundTrip(t *testing.T) {
	line := shared.Polyline{{Lat: 41.8781, Lng: -87.6298}, {Lat: 41.5236, Lng: -90.5776}}

	data, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `[[41.8781,-87.6298],[41.5236,-90.5776]]`, string(data))

	var decoded shared.Polyline
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, line, decoded)
}

func TestPolyline_UnmarshalRejectsBadPairs(t *testing.T) {
	var line shared.Polyline
	err := json.Unmarshal([]byte(`[[1.0, 2.0, 3.0]]`), &line)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected [lat, lng]")
}
