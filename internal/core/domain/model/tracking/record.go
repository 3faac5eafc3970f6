package tracking

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errs.NewValueIsRequiredError("record must be created via NewRecord")

// Seed carries the order attributes a record is created from.
type Seed struct {
	OrderID      string
	OrderNumber  string
	StoreTag     string
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	LineItems    []string
}

// Record is the tracking state of one order for the duration of a run.
type Record struct {
	id           kernel.UUID
	orderID      string
	orderNumber  string
	storeTag     string
	location     string
	deliveryDate kernel.DeliveryDate
	deliveryType kernel.DeliveryType
	lineItems    []string

	batch *int

	logistics        LogisticsStatus
	skipReason       SkipReason
	logisticsError   string
	scheduledPickup  kernel.ClockTime
	carrierReference string

	labelStored     bool
	personalization bool
	packingSlip     bool
	messageCard     bool

	reconciliation    ReconciliationStatus
	holdNotified      bool
	notificationError string

	guard guard.ConstructorGuard
}

// NewRecord creates a New record. Order id and order number are required; an empty
// location is accepted and resolved by the booking stage.
func NewRecord(seed Seed) (*Record, error) {
	r := &Record{
		id:           kernel.NewUUID(),
		storeTag:     strings.TrimSpace(seed.StoreTag),
		location:     strings.TrimSpace(seed.Location),
		deliveryType: seed.DeliveryType,
		logistics:    New,
		guard:        guard.NewConstructorGuard(),
	}
	r.lineItems = append(r.lineItems, seed.LineItems...)

	err := errors.Join(
		r.setOrderID(seed.OrderID),
		r.setOrderNumber(seed.OrderNumber),
		r.setDeliveryDate(seed.DeliveryDate),
		seed.DeliveryType.Validate(),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) setOrderID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	r.orderID = id
	return nil
}

func (r *Record) setOrderNumber(n string) error {
	n = strings.TrimSpace(n)
	if n == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	r.orderNumber = n
	return nil
}

func (r *Record) setDeliveryDate(d kernel.DeliveryDate) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.deliveryDate = d
	return nil
}

func (r *Record) ID() kernel.UUID {
	return r.id
}

func (r *Record) OrderID() string {
	return r.orderID
}

func (r *Record) OrderNumber() string {
	return r.orderNumber
}

func (r *Record) StoreTag() string {
	return r.storeTag
}

func (r *Record) Location() string {
	return r.location
}

func (r *Record) DeliveryDate() kernel.DeliveryDate {
	return r.deliveryDate
}

func (r *Record) DeliveryType() kernel.DeliveryType {
	return r.deliveryType
}

func (r *Record) Logistics() LogisticsStatus {
	return r.logistics
}

func (r *Record) SkipReason() SkipReason {
	return r.skipReason
}

func (r *Record) LogisticsError() string {
	return r.logisticsError
}

func (r *Record) ScheduledPickup() kernel.ClockTime {
	return r.scheduledPickup
}

func (r *Record) CarrierReference() string {
	return r.carrierReference
}

func (r *Record) LabelStored() bool {
	return r.labelStored
}

func (r *Record) Personalization() bool {
	return r.personalization
}

func (r *Record) PackingSlip() bool {
	return r.packingSlip
}

func (r *Record) MessageCard() bool {
	return r.messageCard
}

func (r *Record) Reconciliation() ReconciliationStatus {
	return r.reconciliation
}

func (r *Record) HoldNotified() bool {
	return r.holdNotified
}

func (r *Record) NotificationError() string {
	return r.notificationError
}

// LineItems returns a copy of the order's line item names.
func (r *Record) LineItems() []string {
	out := make([]string, len(r.lineItems))
	copy(out, r.lineItems)
	return out
}

// Batch returns the stamped batch number, or nil when none was assigned.
func (r *Record) Batch() *int {
	if r.batch == nil {
		return nil
	}
	v := *r.batch
	return &v
}

func (r *Record) IsBooked() bool {
	return r.logistics == Booked
}

// MarkBooked records an accepted carrier booking.
func (r *Record) MarkBooked(pickup kernel.ClockTime, carrierReference string) error {
	next, err := r.logistics.Book()
	if err != nil {
		return err
	}
	r.logistics = next
	r.scheduledPickup = pickup
	r.carrierReference = carrierReference
	return nil
}

// MarkBookingFailed records a rejected or errored carrier call.
func (r *Record) MarkBookingFailed(message string) error {
	next, err := r.logistics.Fail()
	if err != nil {
		return err
	}
	r.logistics = next
	r.logisticsError = message
	return nil
}

// MarkSkipped records that no carrier call was made.
func (r *Record) MarkSkipped(reason SkipReason) error {
	if reason == SkipNone {
		return errs.NewValueIsRequiredError("skip reason")
	}
	next, err := r.logistics.Skip()
	if err != nil {
		return err
	}
	r.logistics = next
	r.skipReason = reason
	return nil
}

// AssignBatch stamps the batch number. A nil batch clears any previous stamp.
func (r *Record) AssignBatch(batch *int) {
	if batch == nil {
		r.batch = nil
		return
	}
	v := *batch
	r.batch = &v
}

func (r *Record) MarkLabelStored() {
	r.labelStored = true
}

func (r *Record) SetPersonalization(done bool) {
	r.personalization = done
}

func (r *Record) SetPackingSlip(done bool) {
	r.packingSlip = done
}

func (r *Record) SetMessageCard(done bool) {
	r.messageCard = done
}

func (r *Record) SetReconciliation(status ReconciliationStatus) {
	r.reconciliation = status
}

// RecordHoldNotification stores the outcome of the hold notification attempt.
func (r *Record) RecordHoldNotification(err error) {
	if err != nil {
		r.holdNotified = false
		r.notificationError = err.Error()
		return
	}
	r.holdNotified = true
	r.notificationError = ""
}
