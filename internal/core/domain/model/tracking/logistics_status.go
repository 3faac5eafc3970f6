package tracking

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// LogisticsStatus is the carrier booking state of one order within a run.
type LogisticsStatus int

const (
	// UnknownLogisticsStatus catches uninitialized values.
	UnknownLogisticsStatus LogisticsStatus = iota

	// New is the state every record is seeded with.
	New

	// Booked means the carrier accepted the pickup.
	Booked

	// BookingFailed means the carrier call was made and rejected or errored.
	BookingFailed

	// Skipped means no carrier call was made: the stage was disabled, no slot was
	// open, or no carrier serves the lane.
	Skipped
)

func getLogisticsStatusStrings() map[LogisticsStatus]string {
	return map[LogisticsStatus]string{
		UnknownLogisticsStatus: "UNKNOWN",
		New:                    "NEW",
		Booked:                 "BOOKED",
		BookingFailed:          "BOOKING_FAILED",
		Skipped:                "SKIPPED",
	}
}

// Validate checks the value is one of the defined statuses.
func (s LogisticsStatus) Validate() error {
	if s < New || s > Skipped {
		return errs.NewValueIsInvalidErrorWithCause("logistics status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s LogisticsStatus) String() string {
	if str, ok := getLogisticsStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler for reports.
func (s LogisticsStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether the booking stage has decided the record.
func (s LogisticsStatus) IsTerminal() bool {
	return s == Booked || s == BookingFailed || s == Skipped
}

// Book transitions New -> Booked.
func (s LogisticsStatus) Book() (LogisticsStatus, error) {
	return s.transition(Booked)
}

// Fail transitions New -> BookingFailed.
func (s LogisticsStatus) Fail() (LogisticsStatus, error) {
	return s.transition(BookingFailed)
}

// Skip transitions New -> Skipped.
func (s LogisticsStatus) Skip() (LogisticsStatus, error) {
	return s.transition(Skipped)
}

func (s LogisticsStatus) transition(to LogisticsStatus) (LogisticsStatus, error) {
	if s != New {
		return UnknownLogisticsStatus, errs.NewValueIsInvalidErrorWithCause(
			"logistics status",
			fmt.Errorf("cannot move from %s to %s", s, to),
		)
	}
	return to, nil
}
