package cutoff

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSlotIsNotConstructed = errs.NewValueIsRequiredError("slot must be created via NewSlot")

// Slot is one same-day pickup window. Cutoff is the last local time an order can be
// booked into it and must be earlier than Pickup.
type Slot struct {
	pickup kernel.ClockTime
	cutoff kernel.ClockTime
	guard  guard.ConstructorGuard
}

// NewSlot parses pickup and cutoff as "HH:MM".
func NewSlot(pickup, cutoff string) (Slot, error) {
	p, pErr := kernel.ParseClockTime(pickup)
	c, cErr := kernel.ParseClockTime(cutoff)
	if err := errors.Join(pErr, cErr); err != nil {
		return Slot{}, err
	}
	if !p.After(c) {
		return Slot{}, errs.NewValueIsInvalidError("slot cutoff must be before pickup")
	}

	return Slot{pickup: p, cutoff: c, guard: guard.NewConstructorGuard()}, nil
}

func MustSlot(pickup, cutoff string) Slot {
	s, err := NewSlot(pickup, cutoff)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Slot) Validate() error {
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

func (s Slot) Pickup() kernel.ClockTime {
	return s.pickup
}

func (s Slot) Cutoff() kernel.ClockTime {
	return s.cutoff
}

// OpenAt reports whether an order placed at local time now still makes this slot.
func (s Slot) OpenAt(now kernel.ClockTime) bool {
	return s.cutoff.After(now)
}

// NextDayRule is the next-day booking rule for one weekday.
type NextDayRule struct {
	Enabled bool
	Cutoff  kernel.ClockTime
}

// DisabledNextDay never accepts bookings.
var DisabledNextDay = NextDayRule{}

func ValidNextDay(cutoff string) NextDayRule {
	return NextDayRule{Enabled: true, Cutoff: kernel.MustClockTime(cutoff)}
}
