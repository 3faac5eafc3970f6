package cutoff

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// DefaultTable returns the operating rules of every known dispatch site.
// Metro sites run a morning and an afternoon courier; Adelaide and Perth run one
// afternoon pickup. No site books same-day on Sunday.
func DefaultTable() Table {
	metro := []Slot{MustSlot("10:00", "09:00"), MustSlot("14:00", "13:00")}
	single := []Slot{MustSlot("13:00", "12:00")}
	saturday := []Slot{MustSlot("11:00", "10:00")}

	var rules []LocationRules
	for _, loc := range kernel.KnownLocations() {
		r := LocationRules{
			Location: loc,
			SameDay:  make(map[time.Weekday][]Slot),
			NextDay:  make(map[time.Weekday]NextDayRule),
		}

		slots := metro
		if loc.Name() == "Adelaide" || loc.Name() == "Perth" {
			slots = single
		}
		for _, d := range weekdays {
			r.SameDay[d] = slots
			r.NextDay[d] = ValidNextDay("15:00")
		}
		r.SameDay[time.Saturday] = saturday
		r.NextDay[time.Saturday] = DisabledNextDay
		// Sunday orders go out with Monday's parcel collection.
		r.NextDay[time.Sunday] = ValidNextDay("18:00")

		rules = append(rules, r)
	}

	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}
