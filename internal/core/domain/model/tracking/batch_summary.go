package tracking

import (
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
)

// BatchSummary is one row of the batch-level report.
type BatchSummary struct {
	StoreTag     string
	DeliveryDate kernel.DeliveryDate
	Location     string
	DeliveryType kernel.DeliveryType
	Batch        *int
	Orders       int
	Booked       int
}

type batchKey struct {
	store    string
	date     string
	location string
	dt       kernel.DeliveryType
	batch    int
	hasBatch bool
}

// Summarize groups records by (store, date, location, delivery type, batch). Rows are
// sorted by store, date, location, and then batch with unbatched rows last.
func Summarize(records []*Record) []BatchSummary {
	index := make(map[batchKey]int)
	var rows []BatchSummary

	for _, r := range records {
		k := batchKey{
			store:    r.storeTag,
			date:     r.deliveryDate.String(),
			location: r.location,
			dt:       r.deliveryType,
		}
		if r.batch != nil {
			k.batch, k.hasBatch = *r.batch, true
		}

		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, BatchSummary{
				StoreTag:     r.storeTag,
				DeliveryDate: r.deliveryDate,
				Location:     r.location,
				DeliveryType: r.deliveryType,
				Batch:        r.Batch(),
			})
		}
		rows[i].Orders++
		if r.IsBooked() {
			rows[i].Booked++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.StoreTag != b.StoreTag {
			return a.StoreTag < b.StoreTag
		}
		if !a.DeliveryDate.Equal(b.DeliveryDate) {
			return a.DeliveryDate.Before(b.DeliveryDate)
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		if a.DeliveryType != b.DeliveryType {
			return a.DeliveryType < b.DeliveryType
		}
		switch {
		case a.Batch == nil:
			return false
		case b.Batch == nil:
			return true
		default:
			return *a.Batch < *b.Batch
		}
	})
	return rows
}
