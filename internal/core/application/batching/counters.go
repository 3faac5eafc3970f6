package batching

import (
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
)

// Counters maps a location to its batch number for this run, or nil when unknown.
type Counters map[string]*int

// Key builds the document key of a counter.
func Key(location string, date kernel.DeliveryDate, deliveryType kernel.DeliveryType) string {
	return fmt.Sprintf("%s_%s_%s", location, date, deliveryType)
}

// Value returns the counter of location and whether it is known.
func (c Counters) Value(location string) (int, bool) {
	v, ok := c[location]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Locations returns the locations in the map, sorted.
func (c Counters) Locations() []string {
	out := make([]string, 0, len(c))
	for loc := range c {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

func intPtr(v int) *int {
	return &v
}
