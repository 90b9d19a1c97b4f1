package tz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Load(""))
	assert.Equal(t, time.UTC, Load("Not/AZone"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(time.Time{}, time.UTC, time.RFC3339))

	ts := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "14/03/2026 19:30", Format(ts, time.UTC, "02/01/2006 15:04"))

	plus2 := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "21:30", Format(ts, plus2, "15:04"))
}
