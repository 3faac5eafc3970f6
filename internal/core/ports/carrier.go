package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// BookingRequest is everything a carrier needs to schedule one pickup.
type BookingRequest struct {
	OrderID      string
	OrderNumber  string
	StoreTag     string
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	// PickupTime is the chosen same-day slot. Empty for next-day bookings.
	PickupTime kernel.ClockTime
	// ReadyBy is the local time the parcel is ready for collection.
	ReadyBy   kernel.ClockTime
	LineItems []string
}

// BookingResult is the outcome of one booking call. A rejected booking is a result,
// not an error.
type BookingResult struct {
	Success          bool
	CarrierReference string
	Error            string
}

// CarrierBooker books one order per call. Implementations never retry.
type CarrierBooker interface {
	Book(ctx context.Context, request BookingRequest) BookingResult
}

// LabelFetcher retrieves the shipping label of an already booked order.
type LabelFetcher interface {
	FetchLabel(ctx context.Context, carrierReference string) ([]byte, error)
}

// Carrier is the full client for one delivery lane.
type Carrier interface {
	CarrierBooker
	LabelFetcher
	Name() string
}
