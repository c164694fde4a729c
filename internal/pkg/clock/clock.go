package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant in the application's location.
// Every "today" computation goes through StartOfDay so check-in, check-out
// and reporting agree on the same calendar day boundary.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock backed by the system time, reported in loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}

// Fixed is a settable Clock for tests and deterministic jobs.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed returns a Fixed clock frozen at now. The clock's location is now's location.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *Fixed) Location() *time.Location {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now.Location()
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns local midnight of the clock's current day.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// MonthRange returns the first and last calendar day of the given month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}
