// Package batching reads and advances the persistent batch counters.
//
// A counter exists per (location, delivery date, delivery type) and is stored as a
// document under the key location_YYYY-MM-DD_deliveryType. A run touches a counter
// in two explicit steps: GetCounters before batch assignment, then IncrementCounters
// with the per-location success counts and the prior values returned by the first step.
//
// A nil entry in Counters means "unknown for this run": the read or the write failed.
// Nil entries are never incremented and no record is stamped with them.
//
// Two overlapping runs for the same key can both read N and both write N+1. Counters
// are not locked across runs.
package batching
