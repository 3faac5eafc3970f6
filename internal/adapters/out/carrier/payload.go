package carrier

import (
	"fulfillment/internal/core/ports"
)

// Shaper turns a booking request into the carrier-specific request body.
type Shaper interface {
	Path() string
	Payload(req ports.BookingRequest) any
}

type sameDayPayload struct {
	Reference      string        `json:"reference"`
	Store          string        `json:"store"`
	PickupLocation string        `json:"pickup_location"`
	PickupWindow   pickupWindow  `json:"pickup_window"`
	Items          []payloadItem `json:"items"`
}

type pickupWindow struct {
	Date    string `json:"date"`
	From    string `json:"from"`
	ReadyBy string `json:"ready_by"`
}

type payloadItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// SameDayCourier books a courier pickup inside a window on the delivery day.
type SameDayCourier struct{}

func (SameDayCourier) Path() string {
	return "/v1/jobs"
}

func (SameDayCourier) Payload(req ports.BookingRequest) any {
	return sameDayPayload{
		Reference:      req.OrderNumber,
		Store:          req.StoreTag,
		PickupLocation: req.Location,
		PickupWindow: pickupWindow{
			Date:    req.DeliveryDate.String(),
			From:    req.PickupTime.String(),
			ReadyBy: req.ReadyBy.String(),
		},
		Items: items(req.LineItems),
	}
}

type nextDayPayload struct {
	Reference    string        `json:"reference"`
	Store        string        `json:"store"`
	Origin       string        `json:"origin"`
	ServiceLevel string        `json:"service_level"`
	DeliveryDate string        `json:"delivery_date"`
	ReadyBy      string        `json:"ready_by"`
	Parcels      []payloadItem `json:"parcels"`
}

// NextDayParcel books an overnight parcel collected at the dispatch site the day before
// delivery.
type NextDayParcel struct {
	// ServiceLevel is the carrier product code, "overnight" when empty.
	ServiceLevel string
}

func (NextDayParcel) Path() string {
	return "/v1/consignments"
}

func (p NextDayParcel) Payload(req ports.BookingRequest) any {
	level := p.ServiceLevel
	if level == "" {
		level = "overnight"
	}
	return nextDayPayload{
		Reference:    req.OrderNumber,
		Store:        req.StoreTag,
		Origin:       req.Location,
		ServiceLevel: level,
		DeliveryDate: req.DeliveryDate.String(),
		ReadyBy:      req.DeliveryDate.AddDays(-1).String() + "T" + req.ReadyBy.String(),
		Parcels:      items(req.LineItems),
	}
}

func items(lines []string) []payloadItem {
	out := make([]payloadItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, payloadItem{Description: l, Quantity: 1})
	}
	return out
}
