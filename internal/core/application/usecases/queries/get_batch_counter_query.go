// Package queries contains read operations over fulfillment state.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetBatchCounterQueryIsNotConstructed = errors.New(
		"GetBatchCounterQuery must be created via NewGetBatchCounterQuery constructor",
	)
)

// GetBatchCounterQuery reads the current batch number of one location and lane.
//
// Example:
//
//	query, err := NewGetBatchCounterQuery("Sydney", date, kernel.SameDay)
//	if err != nil {
//	    return err
//	}
//	counter, err := handler.Handle(ctx, query)
type GetBatchCounterQuery struct { //nolint:recvcheck //using for validation
	location     string
	deliveryDate kernel.DeliveryDate
	deliveryType kernel.DeliveryType
	guard        guard.ConstructorGuard
}

func NewGetBatchCounterQuery(
	location string,
	deliveryDate kernel.DeliveryDate,
	deliveryType kernel.DeliveryType,
) (GetBatchCounterQuery, error) {
	q := GetBatchCounterQuery{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		q.setLocation(location),
		q.setDeliveryDate(deliveryDate),
		q.setDeliveryType(deliveryType),
	)
	if err != nil {
		return GetBatchCounterQuery{}, err
	}

	return q, nil
}

func (q GetBatchCounterQuery) Location() string {
	return q.location
}

func (q GetBatchCounterQuery) DeliveryDate() kernel.DeliveryDate {
	return q.deliveryDate
}

func (q GetBatchCounterQuery) DeliveryType() kernel.DeliveryType {
	return q.deliveryType
}

// Validate ensures the query was created through the constructor.
func (q GetBatchCounterQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchCounterQueryIsNotConstructed)
}

func (q *GetBatchCounterQuery) setLocation(location string) error {
	loc, err := kernel.LocationByName(location)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("location", err)
	}
	q.location = loc.Name()
	return nil
}

func (q *GetBatchCounterQuery) setDeliveryDate(date kernel.DeliveryDate) error {
	if err := date.Validate(); err != nil {
		return err
	}
	q.deliveryDate = date
	return nil
}

func (q *GetBatchCounterQuery) setDeliveryType(deliveryType kernel.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	q.deliveryType = deliveryType
	return nil
}

// GetBatchCounterQueryResponse is the stored state of one counter.
type GetBatchCounterQueryResponse struct {
	Key          string
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	Batch        int
	UpdatedAt    string
}
