package validate

import (
	"fmt"
	"time"
)

// Layouts for the canonical date and datetime forms.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// DefaultInstant is the pinned "current instant" used when no other is
// configured. Every housekeeping timestamp and future-date check reads the
// pinned clock, never the host wall clock; tests depend on determinism.
const DefaultInstant = "2025-10-01T12:00:00"

// Clock is the injected time source. The zero value is not usable; construct
// with NewClock or DefaultClock.
type Clock struct {
	instant time.Time
}

// NewClock pins the clock to the given canonical datetime.
func NewClock(instant string) (Clock, error) {
	t, err := time.Parse(DateTimeLayout, instant)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid pinned instant %q: %w", instant, err)
	}
	return Clock{instant: t}, nil
}

// DefaultClock returns the clock pinned to DefaultInstant.
func DefaultClock() Clock {
	c, err := NewClock(DefaultInstant)
	if err != nil {
		panic(err) // DefaultInstant is a well-formed constant
	}
	return c
}

// Now returns the pinned instant as a canonical datetime string.
func (c Clock) Now() string { return c.instant.Format(DateTimeLayout) }

// Today returns the pinned instant's date.
func (c Clock) Today() string { return c.instant.Format(DateLayout) }

// Instant returns the pinned instant.
func (c Clock) Instant() time.Time { return c.instant }

// IsFutureDate reports whether the canonical date lies strictly after the
// pinned instant's date. Malformed dates report false; format checks run
// before range checks.
func (c Clock) IsFutureDate(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.After(c.instant.Truncate(24 * time.Hour))
}
