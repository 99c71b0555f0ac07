package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	timestampLayout     = "2006-01-02T15:04:05.999999999Z07:00"
	zeroTimestamp       = "0001-01-01T00:00:00"
	unzonedTimestampFmt = "2006-01-02T15:04:05"
)

// timestamp is the wire form of entity times. Fractions keep full nanosecond
// precision with trailing zeros trimmed. The zero value is written without a
// zone, matching what existing consumers expect.
type timestamp time.Time

func newTimestamp(t *time.Time) *timestamp {
	if t == nil {
		return nil
	}
	ts := timestamp(*t)
	return &ts
}

func (t *timestamp) time() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}

func (t timestamp) MarshalJSON() ([]byte, error) {
	v := time.Time(t)
	if v.IsZero() {
		return json.Marshal(zeroTimestamp)
	}
	return json.Marshal(v.Format(timestampLayout))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	*t = timestamp(parsed)
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return v, nil
	}
	v, err := time.ParseInLocation(unzonedTimestampFmt, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return v, nil
}
