package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// EligibleOrderFilter selects the orders a run is seeded with.
type EligibleOrderFilter struct {
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	// StoreTag restricts the query to one store. Empty means every store.
	StoreTag string
	// OrderIDs, when set, restricts the query to these orders (manual runs).
	OrderIDs []string
	// Locations, when set, restricts the query to these locations.
	Locations []string
	// RowLimitPerLocation caps the rows returned per location. Zero means no cap.
	RowLimitPerLocation int
	// IncludeHeld also returns orders a previous run put on Hold (manual runs).
	IncludeHeld bool
}

// EligibleOrder is one row of the eligible-orders query.
type EligibleOrder struct {
	ID           string
	OrderNumber  string
	Location     string
	StoreTag     string
	DeliveryDate kernel.DeliveryDate
	LineItems    []string
}

// EligibleOrderSource is the relational data source supplying orders to fulfil.
type EligibleOrderSource interface {
	// FindEligible returns orders matching filter, ordered by location then order number.
	FindEligible(ctx context.Context, filter EligibleOrderFilter) ([]EligibleOrder, error)
}
