package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	in := time.Date(2024, 3, 15, 23, 59, 59, 0, loc)

	got := StartOfDay(in)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestFixed_SetAndAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	c := NewFixed(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	next := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)
	c.Set(next)
	assert.Equal(t, next, c.Now())
	assert.Equal(t, time.UTC, c.Location())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last)
}
