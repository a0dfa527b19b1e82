package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampScan(t *testing.T) {
	want := time.Date(2025, 3, 4, 5, 6, 7, 8, time.UTC)

	for name, src := range map[string]any{
		"time":   want.In(time.FixedZone("x", 3600)),
		"layout": FormatTime(want),
		"bytes":  []byte(FormatTime(want)),
	} {
		t.Run(name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.Scan(src))
			assert.True(t, ts.Valid)
			assert.True(t, want.Equal(ts.Time))
		})
	}

	var ts Timestamp
	require.NoError(t, ts.Scan(nil))
	assert.False(t, ts.Valid)
	assert.Error(t, ts.Scan(42))
}

func TestFormatTimeSortsAsText(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 5, 100_000_000, time.UTC)
	b := time.Date(2025, 1, 1, 0, 0, 5, 120_000_000, time.UTC)
	assert.Less(t, FormatTime(a), FormatTime(b))
}
