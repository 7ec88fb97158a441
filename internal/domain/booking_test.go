package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalSlots(t *testing.T) {
	assert.Equal(t, 25, TotalSlots)
	assert.Equal(t, SectionCount*SlotsPerSection, TotalSlots)
}

func TestDayOf(t *testing.T) {
	// 19:00 UTC is already past midnight in IST (UTC+5:30).
	late := time.Date(2026, 8, 24, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), DayOf(late))

	// 18:29 UTC is still the same IST day.
	early := time.Date(2026, 8, 24, 18, 29, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), DayOf(early))

	// Local-zone inputs normalize to the same date.
	ist := time.Date(2026, 8, 25, 23, 59, 0, 0, IST)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), DayOf(ist))
}
