package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// DeliveryType is the delivery lane an order travels in. Same-day and next-day are
// mutually exclusive and are booked with different carriers.
type DeliveryType int

const (
	// UnknownDeliveryType catches uninitialized values.
	UnknownDeliveryType DeliveryType = iota
	SameDay
	NextDay
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		UnknownDeliveryType: "unknown",
		SameDay:             "sameday",
		NextDay:             "nextday",
	}
}

// ParseDeliveryType accepts "sameday" / "same-day" / "same_day" and the next-day equivalents.
func ParseDeliveryType(s string) (DeliveryType, error) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case "sameday":
		return SameDay, nil
	case "nextday":
		return NextDay, nil
	default:
		return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
			"delivery type",
			fmt.Errorf("%q is not a known delivery type", s),
		)
	}
}

// Validate checks that the value is SameDay or NextDay.
func (t DeliveryType) Validate() error {
	if t != SameDay && t != NextDay {
		return errs.NewValueIsInvalidErrorWithCause("delivery type", fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}

// String returns the storage form ("sameday" or "nextday").
func (t DeliveryType) String() string {
	if s, ok := getDeliveryTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t DeliveryType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DeliveryType) UnmarshalText(b []byte) error {
	parsed, err := ParseDeliveryType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
