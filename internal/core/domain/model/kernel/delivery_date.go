package kernel

import (
	"time"

	"fulfillment/internal/pkg/errs"
)

// DeliveryDateLayout is the ISO-8601 calendar date layout used on the wire and in storage.
const DeliveryDateLayout = time.DateOnly

// DeliveryDate is a civil calendar date. It carries no time zone: "today" and
// "tomorrow" only become meaningful relative to a Location.
//
// Example:
//
//	date, err := kernel.ParseDeliveryDate("2024-05-14")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(date.Weekday()) // Tuesday
type DeliveryDate struct {
	t time.Time
}

// NewDeliveryDate builds a date from its calendar components. Out-of-range components
// are normalized the way time.Date normalizes them.
func NewDeliveryDate(year int, month time.Month, day int) DeliveryDate {
	return DeliveryDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDeliveryDate parses a "YYYY-MM-DD" string.
func ParseDeliveryDate(s string) (DeliveryDate, error) {
	if s == "" {
		return DeliveryDate{}, errs.NewValueIsRequiredError("delivery date")
	}
	t, err := time.Parse(DeliveryDateLayout, s)
	if err != nil {
		return DeliveryDate{}, errs.NewValueIsInvalidErrorWithCause("delivery date", err)
	}
	return DeliveryDate{t: t}, nil
}

// DeliveryDateOf returns the calendar date of t in t's own location.
func DeliveryDateOf(t time.Time) DeliveryDate {
	y, m, d := t.Date()
	return NewDeliveryDate(y, m, d)
}

// IsZero reports whether the date was never set.
func (d DeliveryDate) IsZero() bool {
	return d.t.IsZero()
}

// Validate returns an error for the zero date.
func (d DeliveryDate) Validate() error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	return nil
}

func (d DeliveryDate) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d DeliveryDate) Month() time.Month {
	return d.t.Month()
}

// AddDays returns the date n calendar days later (or earlier for negative n).
func (d DeliveryDate) AddDays(n int) DeliveryDate {
	return DeliveryDate{t: d.t.AddDate(0, 0, n)}
}

func (d DeliveryDate) Equal(other DeliveryDate) bool {
	return d.t.Equal(other.t)
}

func (d DeliveryDate) Before(other DeliveryDate) bool {
	return d.t.Before(other.t)
}

func (d DeliveryDate) After(other DeliveryDate) bool {
	return d.t.After(other.t)
}

// Time returns midnight UTC of the date, for persistence adapters.
func (d DeliveryDate) Time() time.Time {
	return d.t
}

// String returns the "YYYY-MM-DD" form.
func (d DeliveryDate) String() string {
	return d.t.Format(DeliveryDateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d DeliveryDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DeliveryDate) UnmarshalText(b []byte) error {
	parsed, err := ParseDeliveryDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
