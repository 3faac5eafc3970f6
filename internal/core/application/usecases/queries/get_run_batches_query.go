package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetRunBatchesQueryIsNotConstructed = errors.New(
		"GetRunBatchesQuery must be created via NewGetRunBatchesQuery constructor",
	)
)

// GetRunBatchesQuery lists the audited batch summary of one run.
type GetRunBatchesQuery struct {
	runID string
	guard guard.ConstructorGuard
}

func NewGetRunBatchesQuery(runID string) (GetRunBatchesQuery, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return GetRunBatchesQuery{}, errs.NewValueIsRequiredError("run id")
	}
	if _, err := kernel.UUIDFromString(runID); err != nil {
		return GetRunBatchesQuery{}, errs.NewValueIsInvalidErrorWithCause("run id", err)
	}
	return GetRunBatchesQuery{runID: runID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRunBatchesQuery) RunID() string {
	return q.runID
}

// Validate ensures the query was created through the constructor.
func (q GetRunBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetRunBatchesQueryIsNotConstructed)
}

// GetRunBatchesQueryResponse is one audited batch row. Batch is nil when the counter
// was unknown during the run.
type GetRunBatchesQueryResponse struct {
	StoreTag     string
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	Batch        *int
	Orders       int
	Booked       int
}
