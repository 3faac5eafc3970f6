package services

import (
	"time"

	"fulfillment/internal/core/domain/model/cutoff"
	"fulfillment/internal/core/domain/model/kernel"
)

// NoSlotReason explains a PickupDecision that is not bookable.
type NoSlotReason string

const (
	NoSlotNone            NoSlotReason = ""
	NoSlotUnknownLocation NoSlotReason = "unknown-location"
	NoSlotNoRules         NoSlotReason = "no-rules"
	NoSlotPastCutoff      NoSlotReason = "past-cutoff"
	NoSlotNextDayDisabled NoSlotReason = "next-day-disabled"
	NoSlotDatePassed      NoSlotReason = "date-passed"
)

// PickupDecision is the scheduler's answer for one order. A decision that is not
// bookable is a normal outcome: the order is left out of this run.
type PickupDecision struct {
	Bookable bool
	// Pickup is the chosen same-day slot. Empty for next-day decisions.
	Pickup kernel.ClockTime
	// Cutoff is the cutoff the decision was made against.
	Cutoff kernel.ClockTime
	Reason NoSlotReason
}

func noSlot(reason NoSlotReason) PickupDecision {
	return PickupDecision{Reason: reason}
}

// PickupScheduler resolves pickup slots against a cutoff table. "Today" and the current
// wall-clock time are always taken in the order location's civil time.
//
// Same-day, delivery date other than today: the first configured slot is returned
// regardless of the time. Same-day, delivery date today: the first slot whose cutoff
// is strictly after the local HH:MM; none left means no slot.
//
// Next-day: a disabled rule means no slot. A delivery date of local tomorrow is bookable
// only before the rule's cutoff. A later date is always bookable; today or earlier is not.
//
// Example:
//
//	scheduler := services.NewPickupScheduler(cutoff.DefaultTable())
//	decision := scheduler.Resolve("Melbourne", kernel.SameDay, date, time.Now())
//	if !decision.Bookable {
//	    // skip the order for this run
//	}
type PickupScheduler struct {
	table cutoff.Table
}

func NewPickupScheduler(table cutoff.Table) PickupScheduler {
	return PickupScheduler{table: table}
}

// KnowsLocation reports whether the table has rules for the location.
func (s PickupScheduler) KnowsLocation(location string) bool {
	_, ok := s.table.Rules(location)
	return ok
}

// Resolve decides bookability for an order at instant now.
func (s PickupScheduler) Resolve(
	location string,
	deliveryType kernel.DeliveryType,
	deliveryDate kernel.DeliveryDate,
	now time.Time,
) PickupDecision {
	rules, ok := s.table.Rules(location)
	if !ok {
		return noSlot(NoSlotUnknownLocation)
	}

	local := rules.Location.Civil(now)
	today := kernel.DeliveryDateOf(local)
	clock := kernel.ClockTimeOf(local)

	switch deliveryType {
	case kernel.SameDay:
		return resolveSameDay(rules.SameDay[deliveryDate.Weekday()], deliveryDate, today, clock)
	case kernel.NextDay:
		return resolveNextDay(rules.NextDay[deliveryDate.Weekday()], deliveryDate, today, clock)
	default:
		return noSlot(NoSlotNoRules)
	}
}

func resolveSameDay(slots []cutoff.Slot, date, today kernel.DeliveryDate, clock kernel.ClockTime) PickupDecision {
	if len(slots) == 0 {
		return noSlot(NoSlotNoRules)
	}

	if !date.Equal(today) {
		first := slots[0]
		return PickupDecision{Bookable: true, Pickup: first.Pickup(), Cutoff: first.Cutoff()}
	}

	for _, slot := range slots {
		if slot.OpenAt(clock) {
			return PickupDecision{Bookable: true, Pickup: slot.Pickup(), Cutoff: slot.Cutoff()}
		}
	}
	return noSlot(NoSlotPastCutoff)
}

func resolveNextDay(rule cutoff.NextDayRule, date, today kernel.DeliveryDate, clock kernel.ClockTime) PickupDecision {
	if !rule.Enabled {
		return noSlot(NoSlotNextDayDisabled)
	}

	tomorrow := today.AddDays(1)
	switch {
	case !date.After(today):
		return PickupDecision{Cutoff: rule.Cutoff, Reason: NoSlotDatePassed}
	case date.Equal(tomorrow) && !rule.Cutoff.After(clock):
		return PickupDecision{Cutoff: rule.Cutoff, Reason: NoSlotPastCutoff}
	default:
		return PickupDecision{Bookable: true, Cutoff: rule.Cutoff}
	}
}
