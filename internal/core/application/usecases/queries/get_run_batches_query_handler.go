package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetRunBatchesQueryHandler reads the audit tables directly with SQL.
//
// Example:
//
//	handler := NewGetRunBatchesQueryHandler(db)
//	query, _ := NewGetRunBatchesQuery(runID)
//
//	batches, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, b := range batches {
//	    fmt.Printf("%s batch %v: %d/%d booked\n", b.Location, b.Batch, b.Booked, b.Orders)
//	}
type GetRunBatchesQueryHandler struct {
	db *gorm.DB
}

func NewGetRunBatchesQueryHandler(db *gorm.DB) GetRunBatchesQueryHandler {
	return GetRunBatchesQueryHandler{db: db}
}

// Handle returns the rows of the run sorted the way the report sorts them. An unknown
// run yields an empty slice.
func (h GetRunBatchesQueryHandler) Handle(
	ctx context.Context,
	query GetRunBatchesQuery,
) ([]GetRunBatchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	batches := make([]GetRunBatchesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			store_tag,
			location,
			delivery_date,
			delivery_type,
			batch,
			orders,
			booked
		FROM fulfillment_run_batches
		WHERE run_id = ?
		ORDER BY store_tag, delivery_date, location, delivery_type, batch NULLS LAST
	`, query.RunID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b GetRunBatchesQueryResponse
		var deliveryDate time.Time
		var deliveryType string
		var batch sql.NullInt64

		err = rows.Scan(
			&b.StoreTag,
			&b.Location,
			&deliveryDate,
			&deliveryType,
			&batch,
			&b.Orders,
			&b.Booked,
		)
		if err != nil {
			return nil, err
		}

		b.DeliveryDate = kernel.DeliveryDateOf(deliveryDate)
		if b.DeliveryType, err = kernel.ParseDeliveryType(deliveryType); err != nil {
			return nil, err
		}
		if batch.Valid {
			v := int(batch.Int64)
			b.Batch = &v
		}
		batches = append(batches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
