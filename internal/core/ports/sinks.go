package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// ReconciliationSink records the downstream routing decision on the source orders.
// Each method is one bulk update.
type ReconciliationSink interface {
	MarkProcessed(ctx context.Context, orderIDs []string) error
	MarkHold(ctx context.Context, orderIDs []string) error
}

// HoldNotice tells a store that an order was held.
type HoldNotice struct {
	StoreTag     string
	OrderID      string
	OrderNumber  string
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	Reason       string
}

// Notifier sends transactional email routed by store tag.
type Notifier interface {
	NotifyHold(ctx context.Context, notice HoldNotice) error
}

// AuditOrderRow is one per-order row of the audit log.
type AuditOrderRow struct {
	RunID            string
	OrderID          string
	OrderNumber      string
	StoreTag         string
	Location         string
	DeliveryDate     kernel.DeliveryDate
	DeliveryType     kernel.DeliveryType
	Batch            *int
	LogisticsStatus  string
	SkipReason       string
	LogisticsError   string
	ScheduledPickup  string
	CarrierReference string
	Personalization  bool
	PackingSlip      bool
	MessageCard      bool
	Reconciliation   string
}

// AuditBatchRow is one per-batch row of the audit log.
type AuditBatchRow struct {
	RunID        string
	StoreTag     string
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	Batch        *int
	Orders       int
	Booked       int
}

// AuditSink is an append-only row sink. AppendRun writes both row sets of one run.
type AuditSink interface {
	AppendRun(ctx context.Context, orders []AuditOrderRow, batches []AuditBatchRow) error
}
