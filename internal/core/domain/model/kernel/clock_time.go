package kernel

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

const clockTimeLayout = "15:04"

// ClockTime is a zero-padded 24h "HH:MM" wall-clock value. Because both parts are
// zero-padded, lexicographic order equals chronological order within a day.
type ClockTime string

// ParseClockTime validates s as "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != len(clockTimeLayout) {
		return "", errs.NewValueIsInvalidErrorWithCause("clock time", fmt.Errorf("%q is not HH:MM", s))
	}
	if _, err := time.Parse(clockTimeLayout, s); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("clock time", fmt.Errorf("%q is not HH:MM", s))
	}
	return ClockTime(s), nil
}

// MustClockTime is ParseClockTime for static tables; it panics on malformed input.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockTimeOf returns the wall-clock time of t in t's own location.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime(t.Format(clockTimeLayout))
}

// After reports whether c is strictly later than other.
func (c ClockTime) After(other ClockTime) bool {
	return c > other
}

func (c ClockTime) String() string {
	return string(c)
}
