// Package ports defines the contracts between the fulfillment pipeline and its external
// collaborators: the order data source, carriers, the batch counter document store,
// asset storage, content generation, reconciliation, notification and audit sinks.
//
// Every method takes a context. Callers bound each call with its own timeout and treat
// any returned error, including a deadline, as an ordinary adapter failure.
package ports
