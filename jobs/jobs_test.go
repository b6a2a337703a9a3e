package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueWithin(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	inSixHours := now.Add(6 * time.Hour).Format(time.RFC3339)
	assert.True(t, DueWithin(inSixHours, now, window))

	inTwoDays := now.Add(48 * time.Hour).Format(time.RFC3339)
	assert.False(t, DueWithin(inTwoDays, now, window))

	yesterday := now.Add(-24 * time.Hour).Format(time.RFC3339)
	assert.False(t, DueWithin(yesterday, now, window))

	assert.False(t, DueWithin("garbage", now, window))
}
