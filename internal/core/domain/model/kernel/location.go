package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	minUTCOffset = -12 * time.Hour
	maxUTCOffset = 14 * time.Hour
	dstShift     = time.Hour
)

// ErrLocationIsNotConstructed is returned when a Location was not created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a dispatch site: the name orders are tagged with, its standard UTC offset
// and whether it observes daylight saving.
//
// The daylight-saving offset is a pure function of (location, date). Locations that
// observe DST are shifted by one hour from October through March inclusive. This is
// an approximation of the southern-hemisphere transition dates (first Sunday of
// October / first Sunday of April) and is kept as such: orders placed in the first
// days of October or April can be evaluated against the wrong offset.
//
// Example:
//
//	melbourne, _ := kernel.NewLocation("Melbourne", 10*time.Hour, true)
//	local := melbourne.Civil(time.Now())
//	today := melbourne.Today(time.Now())
type Location struct { //nolint:recvcheck //using for validation
	name           string
	standardOffset time.Duration
	observesDST    bool
	guard          guard.ConstructorGuard
}

// NewLocation creates a Location. The name is required and the offset must lie
// between UTC-12 and UTC+14.
func NewLocation(name string, standardOffset time.Duration, observesDST bool) (Location, error) {
	loc := Location{
		observesDST: observesDST,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setName(name), loc.setStandardOffset(standardOffset)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports whether the Location was created via NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Name returns the location name used to tag orders and partition batches.
func (l Location) Name() string {
	return l.name
}

// ObservesDST reports whether the location applies the daylight-saving shift.
func (l Location) ObservesDST() bool {
	return l.observesDST
}

// OffsetOn returns the UTC offset in effect at the location on the given date.
func (l Location) OffsetOn(date DeliveryDate) time.Duration {
	if l.observesDST && inDaylightSavingMonths(date.Month()) {
		return l.standardOffset + dstShift
	}
	return l.standardOffset
}

// Zone returns a fixed time zone for the offset in effect on date.
func (l Location) Zone(date DeliveryDate) *time.Location {
	return time.FixedZone(l.name, int(l.OffsetOn(date)/time.Second))
}

// Civil converts an instant into the location's wall-clock time. The calendar date used
// to pick the offset is taken in standard time, so the result is deterministic for any
// instant.
func (l Location) Civil(now time.Time) time.Time {
	standard := now.In(time.FixedZone(l.name, int(l.standardOffset/time.Second)))
	return now.In(l.Zone(DeliveryDateOf(standard)))
}

// Today returns the civil date at the location for the given instant.
func (l Location) Today(now time.Time) DeliveryDate {
	return DeliveryDateOf(l.Civil(now))
}

// IsEqual compares two locations by name, ignoring case.
func (l Location) IsEqual(other Location) bool {
	return strings.EqualFold(l.name, other.name)
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return l.name
}

func (l *Location) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("location name")
	}
	l.name = name
	return nil
}

func (l *Location) setStandardOffset(offset time.Duration) error {
	if offset < minUTCOffset || offset > maxUTCOffset {
		return errs.NewValueIsOutOfRangeError("utc offset", offset, minUTCOffset, maxUTCOffset)
	}
	l.standardOffset = offset
	return nil
}

func inDaylightSavingMonths(m time.Month) bool {
	return m >= time.October || m <= time.March
}

var knownLocations = []Location{
	mustLocation("Sydney", 10*time.Hour, true),
	mustLocation("Melbourne", 10*time.Hour, true),
	mustLocation("Brisbane", 10*time.Hour, false),
	mustLocation("Adelaide", 9*time.Hour+30*time.Minute, true),
	mustLocation("Perth", 8*time.Hour, false),
}

// KnownLocations returns the dispatch sites the business operates from.
func KnownLocations() []Location {
	out := make([]Location, len(knownLocations))
	copy(out, knownLocations)
	return out
}

// LocationByName looks a known location up by name, ignoring case.
func LocationByName(name string) (Location, error) {
	for _, loc := range knownLocations {
		if strings.EqualFold(loc.name, strings.TrimSpace(name)) {
			return loc, nil
		}
	}
	return Location{}, errs.NewObjectNotFoundError("location", name)
}

func mustLocation(name string, offset time.Duration, dst bool) Location {
	loc, err := NewLocation(name, offset, dst)
	if err != nil {
		panic(fmt.Sprintf("kernel: invalid built-in location %q: %v", name, err))
	}
	return loc
}
