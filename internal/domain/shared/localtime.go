package shared

import (
	"fmt"
	"strings"
	"time"
)

// localTimeLayout is ISO-8601 without a zone offset.
const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a wall-clock timestamp with no zone attached. Trip timelines
// are naive local times: they are never converted between zones, and day
// boundaries fall at local midnight. It marshals as ISO-8601 without an
// offset, e.g. "2025-03-14T06:00:00".
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps a time.Time as a naive local timestamp.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

// MarshalJSON renders the timestamp in the offset-free ISO-8601 layout.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(localTimeLayout) + `"`), nil
}

// UnmarshalJSON parses the offset-free ISO-8601 layout. Fractional seconds
// and trailing zone designators are rejected.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(localTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid local time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t LocalTime) String() string {
	return t.Format(localTimeLayout)
}
