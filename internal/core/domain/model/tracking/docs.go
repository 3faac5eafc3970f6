// Package tracking models the per-run order ledger.
//
// A Record is created once per eligible order when a run is seeded and is then mutated
// in place by each stage: booking sets the logistics outcome, batching stamps the batch
// number, content stages set their booleans and reconciliation decides Processed or Hold.
// Records are never persisted by this package; the ledger lives for one run only.
//
// Logistics state machine:
//
//	New ──┬──> Booked
//	      ├──> BookingFailed
//	      └──> Skipped
//
// All three outcomes are terminal. Content stages only ever read Booked records.
package tracking
