package shared_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full geocoder display name reduces to city and state",
			input: "Chicago, Cook County, Illinois, United States",
			want:  "Chicago, IL",
		},
		{
			name:  "existing two letter code is kept",
			input: "Davenport, IA",
			want:  "Davenport, IA",
		},
		{
			name:  "city with full state name",
			input: "Springfield, Illinois",
			want:  "Springfield, IL",
		},
		{
			name:  "state buried among parts",
			input: "Paris, Lamar County, Texas, United States",
			want:  "Paris, TX",
		},
		{
			name:  "no recognizable state stays as is",
			input: "Winnipeg, Manitoba",
			want:  "Winnipeg, Manitoba",
		},
		{
			name:  "empty input",
			input: "",
			want:  shared.UnknownLocation,
		},
		{
			name:  "single part without comma",
			input: "Truck Stop",
			want:  "Truck Stop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.FormatLocation(tt.input))
		})
	}
}

func TestFormatLocation_TruncatesUnreducibleNames(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := shared.FormatLocation(long)
	assert.Len(t, got, 50)
	assert.Equal(t, long[:50], got)
}

func TestStateAbbrev(t *testing.T) {
	assert.Equal(t, "IA", shared.StateAbbrev("Iowa"))
	assert.Equal(t, "DC", shared.StateAbbrev("District of Columbia"))
	assert.Equal(t, "", shared.StateAbbrev(""))
	assert.Equal(t, "X", shared.StateAbbrev("x"))

	// Unknown names fall back to their first two letters.
	assert.Equal(t, "ON", shared.StateAbbrev("Ontario"))
}
