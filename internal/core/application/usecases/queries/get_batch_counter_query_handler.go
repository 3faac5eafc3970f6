package queries

import (
	"context"

	"fulfillment/internal/core/application/batching"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetBatchCounterQueryHandler reads counters straight from the document store. It
// never creates a missing key.
type GetBatchCounterQueryHandler struct {
	store ports.CounterDocumentStore
}

func NewGetBatchCounterQueryHandler(store ports.CounterDocumentStore) GetBatchCounterQueryHandler {
	return GetBatchCounterQueryHandler{store: store}
}

// Handle returns the counter, or an ObjectNotFoundError when no run has created it yet.
func (h GetBatchCounterQueryHandler) Handle(
	ctx context.Context,
	query GetBatchCounterQuery,
) (GetBatchCounterQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchCounterQueryResponse{}, err
	}

	key := batching.Key(query.Location(), query.DeliveryDate(), query.DeliveryType())
	doc, found, err := h.store.Get(ctx, key)
	if err != nil {
		return GetBatchCounterQueryResponse{}, err
	}
	if !found {
		return GetBatchCounterQueryResponse{}, errs.NewObjectNotFoundError("batch counter", key)
	}

	return GetBatchCounterQueryResponse{
		Key:          key,
		Location:     query.Location(),
		DeliveryDate: query.DeliveryDate(),
		DeliveryType: query.DeliveryType(),
		Batch:        doc.Batch,
		UpdatedAt:    doc.Metadata["updated_at"],
	}, nil
}
