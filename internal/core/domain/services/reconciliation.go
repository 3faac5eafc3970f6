package services

import "fulfillment/internal/core/domain/model/tracking"

// ReconciliationPartition is the split of a ledger into orders that proceed to
// production and orders that are held for manual follow-up.
type ReconciliationPartition struct {
	Processed []*tracking.Record
	Hold      []*tracking.Record
}

// Partition sends Booked records to Processed and every other record to Hold.
func Partition(records []*tracking.Record) ReconciliationPartition {
	var p ReconciliationPartition
	for _, r := range records {
		if r.IsBooked() {
			p.Processed = append(p.Processed, r)
		} else {
			p.Hold = append(p.Hold, r)
		}
	}
	return p
}

// OrderIDs returns the source order ids of records, in order.
func OrderIDs(records []*tracking.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.OrderID())
	}
	return ids
}
