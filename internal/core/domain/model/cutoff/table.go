package cutoff

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LocationRules groups every rule of one dispatch site.
type LocationRules struct {
	Location kernel.Location
	SameDay  map[time.Weekday][]Slot
	NextDay  map[time.Weekday]NextDayRule
}

// Table is the read-only rule set, indexed by location name.
type Table struct {
	rules map[string]LocationRules
}

// NewTable validates every location and slot. Duplicate locations are rejected.
func NewTable(rules ...LocationRules) (Table, error) {
	t := Table{rules: make(map[string]LocationRules, len(rules))}

	var errList []error
	for _, r := range rules {
		if err := r.Location.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}
		key := tableKey(r.Location.Name())
		if _, dup := t.rules[key]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"cutoff table",
				fmt.Errorf("location %s is listed twice", r.Location.Name()),
			))
			continue
		}
		for day, slots := range r.SameDay {
			for i, s := range slots {
				if err := s.Validate(); err != nil {
					errList = append(errList, fmt.Errorf("%s %s slot %d: %w", r.Location.Name(), day, i, err))
				}
			}
		}
		t.rules[key] = r
	}

	if err := errors.Join(errList...); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Rules returns the rules for a location name, ignoring case.
func (t Table) Rules(location string) (LocationRules, bool) {
	r, ok := t.rules[tableKey(location)]
	return r, ok
}

// SameDaySlots returns the ordered slot list for (location, weekday), or nil.
func (t Table) SameDaySlots(location string, day time.Weekday) []Slot {
	r, ok := t.Rules(location)
	if !ok {
		return nil
	}
	return r.SameDay[day]
}

// NextDayRule returns the next-day rule for (location, weekday). Missing entries are disabled.
func (t Table) NextDayRule(location string, day time.Weekday) NextDayRule {
	r, ok := t.Rules(location)
	if !ok {
		return DisabledNextDay
	}
	return r.NextDay[day]
}

func tableKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
