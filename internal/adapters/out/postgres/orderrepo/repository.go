package orderrepo

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// lineSeparator joins line item titles inside the aggregated column.
const lineSeparator = "\n"

// GormOrderRepository implements EligibleOrderSource and ReconciliationSink using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindEligible returns the orders of one delivery lane that still need fulfillment,
// ordered by location and order number. With a row limit each location contributes at
// most that many orders; held orders are only returned when the filter asks for them.
func (r *GormOrderRepository) FindEligible(
	ctx context.Context,
	filter ports.EligibleOrderFilter,
) ([]ports.EligibleOrder, error) {
	if err := filter.DeliveryDate.Validate(); err != nil {
		return nil, err
	}
	if err := filter.DeliveryType.Validate(); err != nil {
		return nil, err
	}

	where := []string{"o.delivery_date = ?", "o.delivery_type = ?"}
	args := []any{filter.DeliveryDate.Time(), filter.DeliveryType.String()}

	if filter.IncludeHeld {
		where = append(where, "o.fulfillment_status <> ?")
		args = append(args, statusProcessed)
	} else {
		where = append(where, "o.fulfillment_status = ?")
		args = append(args, statusPending)
	}
	if filter.StoreTag != "" {
		where = append(where, "o.store_tag = ?")
		args = append(args, filter.StoreTag)
	}
	if len(filter.OrderIDs) > 0 {
		where = append(where, "o.id = ANY(?)")
		args = append(args, pq.Array(filter.OrderIDs))
	}
	if len(filter.Locations) > 0 {
		where = append(where, "o.location = ANY(?)")
		args = append(args, pq.Array(filter.Locations))
	}
	args = append(args, filter.RowLimitPerLocation, filter.RowLimitPerLocation)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT id, order_number, store_tag, location, delivery_date, line_items
		FROM (
			SELECT
				o.id,
				o.order_number,
				o.store_tag,
				o.location,
				o.delivery_date,
				COALESCE((
					SELECT string_agg(li.title, E'\n' ORDER BY li.position)
					FROM order_line_items li
					WHERE li.order_id = o.id
				), '') AS line_items,
				ROW_NUMBER() OVER (PARTITION BY o.location ORDER BY o.order_number) AS rn
			FROM orders o
			WHERE `+strings.Join(where, " AND ")+`
		) eligible
		WHERE ? = 0 OR rn <= ?
		ORDER BY location, order_number
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ports.EligibleOrder, 0)
	for rows.Next() {
		var o ports.EligibleOrder
		var deliveryDate time.Time
		var lineItems string

		if err = rows.Scan(&o.ID, &o.OrderNumber, &o.StoreTag, &o.Location, &deliveryDate, &lineItems); err != nil {
			return nil, err
		}
		o.DeliveryDate = kernel.DeliveryDateOf(deliveryDate)
		if lineItems != "" {
			o.LineItems = strings.Split(lineItems, lineSeparator)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// MarkProcessed sets the fulfillment status of ids to Processed in one statement.
func (r *GormOrderRepository) MarkProcessed(ctx context.Context, ids []string) error {
	return r.setStatus(ctx, ids, statusProcessed)
}

// MarkHold sets the fulfillment status of ids to Hold in one statement.
func (r *GormOrderRepository) MarkHold(ctx context.Context, ids []string) error {
	return r.setStatus(ctx, ids, statusHold)
}

func (r *GormOrderRepository) setStatus(ctx context.Context, ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id IN ?", ids).
		Update("fulfillment_status", status).Error
}
