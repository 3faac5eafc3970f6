// Package services provides pure domain services for the fulfillment pipeline.
//
// The package includes:
//   - PickupScheduler: decides whether an order can be booked with a carrier right now
//     and which pickup slot it goes into
//   - Partition: splits a ledger into the Processed and Hold reconciliation groups
//
// Services hold no state besides read-only rules and never perform I/O.
package services
