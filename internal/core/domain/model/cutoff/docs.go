// Package cutoff holds the static pickup rules the scheduler decides against.
//
// Same-day rules are an ordered list of pickup slots per (location, weekday). Each slot
// carries the latest local time at which an order can still be booked into it.
// Next-day rules are a single enabled flag plus cutoff per (location, weekday).
//
// A Table is read-only once built with NewTable. DefaultTable returns the rules the
// dispatch sites currently operate with.
package cutoff
