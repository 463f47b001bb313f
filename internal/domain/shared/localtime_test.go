package shared_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/haulplan/internal/domain/shared"
)

func TestLocalTime_MarshalsWithoutOffset(t *testing.T) {
	lt := shared.NewLocalTime(time.Date(2025, time.June, 10, 6, 0, 0, 0, time.UTC))

	data, err := json.Marshal(lt)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-10T06:00:00"`, string(data))
}

func TestLocalTime_UnmarshalRoundTrip(t *testing.T) {
	var lt shared.LocalTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-10T14:30:45"`), &lt))

	assert.Equal(t, 2025, lt.Year())
	assert.Equal(t, time.June, lt.Month())
	assert.Equal(t, 10, lt.Day())
	assert.Equal(t, 14, lt.Hour())
	assert.Equal(t, 30, lt.Minute())
	assert.Equal(t, 45, lt.Second())
	assert.Equal(t, "2025-06-10T14:30:45", lt.String())
}

func TestLocalTime_RejectsZoneDesignators(t *testing.T) {
	var lt shared.LocalTime
	err := json.Unmarshal([]byte(`"2025-06-10T06:00:00Z"`), &lt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid local time")
}

func TestLocalTime_InStruct(t *testing.T) {
	type payload struct {
		At shared.LocalTime `json:"at"`
	}

	in := payload{At: shared.NewLocalTime(time.Date(2025, time.March, 14, 23, 59, 59, 0, time.UTC))}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2025-03-14T23:59:59"}`, string(data))

	var out payload
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.At.Equal(in.At.Time))
}
