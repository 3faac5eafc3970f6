// Package auditrepo appends the per-order and per-batch outcome of every run to two
// append-only tables.
package auditrepo

import (
	"time"

	"fulfillment/internal/core/ports"
)

// RunOrderDTO is the final state of one order in one run.
type RunOrderDTO struct {
	ID               uint   `gorm:"primaryKey"`
	RunID            string `gorm:"index;not null"`
	OrderID          string `gorm:"index;not null"`
	OrderNumber      string `gorm:"not null"`
	StoreTag         string
	Location         string
	DeliveryDate     time.Time `gorm:"type:date"`
	DeliveryType     string
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
	CreatedAt        time.Time
}

// TableName specifies the database table name for run order rows.
func (RunOrderDTO) TableName() string {
	return "fulfillment_run_orders"
}

// RunBatchDTO is one row of a run's batch summary.
type RunBatchDTO struct {
	ID           uint   `gorm:"primaryKey"`
	RunID        string `gorm:"index;not null"`
	StoreTag     string
	Location     string    `gorm:"index"`
	DeliveryDate time.Time `gorm:"type:date;index"`
	DeliveryType string
	Batch        *int
	Orders       int
	Booked       int
	CreatedAt    time.Time
}

// TableName specifies the database table name for run batch rows.
func (RunBatchDTO) TableName() string {
	return "fulfillment_run_batches"
}

func fromOrderRow(row ports.AuditOrderRow) RunOrderDTO {
	return RunOrderDTO{
		RunID:            row.RunID,
		OrderID:          row.OrderID,
		OrderNumber:      row.OrderNumber,
		StoreTag:         row.StoreTag,
		Location:         row.Location,
		DeliveryDate:     row.DeliveryDate.Time(),
		DeliveryType:     row.DeliveryType.String(),
		Batch:            copyInt(row.Batch),
		LogisticsStatus:  row.LogisticsStatus,
		SkipReason:       row.SkipReason,
		LogisticsError:   row.LogisticsError,
		ScheduledPickup:  row.ScheduledPickup,
		CarrierReference: row.CarrierReference,
		Personalization:  row.Personalization,
		PackingSlip:      row.PackingSlip,
		MessageCard:      row.MessageCard,
		Reconciliation:   row.Reconciliation,
	}
}

func fromBatchRow(row ports.AuditBatchRow) RunBatchDTO {
	return RunBatchDTO{
		RunID:        row.RunID,
		StoreTag:     row.StoreTag,
		Location:     row.Location,
		DeliveryDate: row.DeliveryDate.Time(),
		DeliveryType: row.DeliveryType.String(),
		Batch:        copyInt(row.Batch),
		Orders:       row.Orders,
		Booked:       row.Booked,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
