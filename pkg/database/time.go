package database

import (
	"fmt"
	"time"
)

// TimeLayout is fixed width so stored timestamps sort as text.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in UTC with TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Timestamp scans a TIMESTAMP column whichever way the driver hands it
// over: as time.Time or as text.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts = Timestamp{}
		return nil
	case time.Time:
		*ts = Timestamp{Time: v.UTC(), Valid: true}
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("timestamp: unsupported type %T", src)
	}
}

func (ts *Timestamp) parse(s string) error {
	for _, layout := range []string{TimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = Timestamp{Time: t.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

// Now returns the current time in UTC.
func Now() time.Time { return time.Now().UTC() }
