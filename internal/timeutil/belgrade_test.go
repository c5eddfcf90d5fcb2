package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalUsesBelgradeZone(t *testing.T) {
	parsed, err := ParseLocal(DateLayout, "2025-03-07")
	require.NoError(t, err)

	assert.Equal(t, Belgrade, parsed.Location())
	assert.Equal(t, "07.03.2025", parsed.Format(DisplayDateLayout))
}

func TestParseLocalRejectsGarbage(t *testing.T) {
	_, err := ParseLocal(DateLayout, "7. mart 2025.")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	noon := time.Date(2025, 3, 7, 12, 30, 0, 0, Belgrade)
	start := StartOfDay(noon)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, noon.Day(), start.Day())
	assert.Equal(t, Belgrade, start.Location())
}

func TestToLocal(t *testing.T) {
	utc := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, utc.Equal(ToLocal(utc)))
	assert.Equal(t, Belgrade, ToLocal(utc).Location())
}
