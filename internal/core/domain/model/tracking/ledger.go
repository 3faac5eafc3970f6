package tracking

import (
	"slices"
	"sort"
)

// Ledger is the ordered collection of records of one run. It is owned by the run
// and is not safe for concurrent mutation.
type Ledger struct {
	records []*Record
}

func NewLedger(records ...*Record) *Ledger {
	l := &Ledger{records: make([]*Record, 0, len(records))}
	l.records = append(l.records, records...)
	return l
}

// All returns the records in seed order.
func (l *Ledger) All() []*Record {
	return slices.Clone(l.records)
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Filter returns the records matching keep, in seed order.
func (l *Ledger) Filter(keep func(*Record) bool) []*Record {
	out := make([]*Record, 0, len(l.records))
	for _, r := range l.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (l *Ledger) Booked() []*Record {
	return l.Filter((*Record).IsBooked)
}

func (l *Ledger) ForLocation(location string) []*Record {
	return l.Filter(func(r *Record) bool { return r.location == location })
}

// Locations returns the distinct non-empty locations, sorted.
func (l *Ledger) Locations() []string {
	seen := make(map[string]struct{})
	for _, r := range l.records {
		if r.location != "" {
			seen[r.location] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// CountByStatus tallies records per logistics status.
func (l *Ledger) CountByStatus() map[LogisticsStatus]int {
	counts := make(map[LogisticsStatus]int)
	for _, r := range l.records {
		counts[r.logistics]++
	}
	return counts
}

// BookedCountByLocation returns the number of Booked records for every ledger location,
// including zero entries.
func (l *Ledger) BookedCountByLocation() map[string]int {
	counts := make(map[string]int)
	for _, loc := range l.Locations() {
		counts[loc] = 0
	}
	for _, r := range l.records {
		if r.IsBooked() && r.location != "" {
			counts[r.location]++
		}
	}
	return counts
}
