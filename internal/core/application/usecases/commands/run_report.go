package commands

import (
	"time"

	"fulfillment/internal/core/domain/model/tracking"
)

// RunReport is what a caller gets back from every run, even a fully failed one.
type RunReport struct {
	RunID        string          `json:"run_id"`
	Mode         string          `json:"mode"`
	Format       ReportFormat    `json:"format"`
	DeliveryDate string          `json:"delivery_date"`
	DeliveryType string          `json:"delivery_type"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
	Failed       bool            `json:"failed"`
	Stages       []StageResult   `json:"stages"`
	Tallies      Tallies         `json:"tallies"`
	Records      []RecordView    `json:"records,omitempty"`
	Batches      []BatchView     `json:"batches,omitempty"`
	Orders       []OrderOutcome  `json:"orders,omitempty"`
	Counters     map[string]*int `json:"counters,omitempty"`
}

// Tallies count records by final state. Booked, BookingFailed and Skipped always sum to Seeded.
type Tallies struct {
	Seeded        int `json:"seeded"`
	Booked        int `json:"booked"`
	BookingFailed int `json:"booking_failed"`
	Skipped       int `json:"skipped"`
	Processed     int `json:"processed"`
	Hold          int `json:"hold"`
}

// RecordView is the full-format projection of a tracking record.
type RecordView struct {
	OrderID          string `json:"order_id"`
	OrderNumber      string `json:"order_number"`
	StoreTag         string `json:"store_tag"`
	Location         string `json:"location"`
	DeliveryDate     string `json:"delivery_date"`
	DeliveryType     string `json:"delivery_type"`
	Batch            *int   `json:"batch"`
	LogisticsStatus  string `json:"logistics_status"`
	SkipReason       string `json:"skip_reason,omitempty"`
	LogisticsError   string `json:"logistics_error,omitempty"`
	ScheduledPickup  string `json:"scheduled_pickup,omitempty"`
	CarrierReference string `json:"carrier_reference,omitempty"`
	LabelStored      bool   `json:"label_stored"`
	Personalization  bool   `json:"personalization"`
	PackingSlip      bool   `json:"packing_slip"`
	MessageCard      bool   `json:"message_card"`
	Reconciliation   string `json:"reconciliation,omitempty"`
	HoldNotified     bool   `json:"hold_notified"`
}

// BatchView is one row of the batch summary.
type BatchView struct {
	StoreTag     string `json:"store_tag"`
	DeliveryDate string `json:"delivery_date"`
	Location     string `json:"location"`
	DeliveryType string `json:"delivery_type"`
	Batch        *int   `json:"batch"`
	Orders       int    `json:"orders"`
	Booked       int    `json:"booked"`
}

// OrderOutcome is the compact-format line of one order.
type OrderOutcome struct {
	OrderNumber string `json:"order_number"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

func buildReport(run *PipelineRun, finishedAt time.Time) RunReport {
	cmd := run.Command
	report := RunReport{
		RunID:        run.ID.String(),
		Mode:         cmd.Mode().String(),
		Format:       cmd.Format(),
		DeliveryDate: cmd.DeliveryDate().String(),
		DeliveryType: cmd.DeliveryType().String(),
		StartedAt:    run.StartedAt,
		FinishedAt:   finishedAt,
		Failed:       run.seedFailed,
		Stages:       run.Stages(),
	}

	records := run.Ledger.All()
	counts := run.Ledger.CountByStatus()
	report.Tallies = Tallies{
		Seeded:        len(records),
		Booked:        counts[tracking.Booked],
		BookingFailed: counts[tracking.BookingFailed],
		Skipped:       counts[tracking.Skipped],
	}
	for _, r := range records {
		switch r.Reconciliation() {
		case tracking.Processed:
			report.Tallies.Processed++
		case tracking.Hold:
			report.Tallies.Hold++
		case tracking.ReconciliationPending:
		}
	}

	if cmd.Format() == FormatCompact {
		report.Orders = make([]OrderOutcome, 0, len(records))
		for _, r := range records {
			report.Orders = append(report.Orders, outcomeOf(r))
		}
		return report
	}

	report.Counters = run.Counters
	report.Records = make([]RecordView, 0, len(records))
	for _, r := range records {
		report.Records = append(report.Records, viewOf(r))
	}
	for _, s := range tracking.Summarize(records) {
		report.Batches = append(report.Batches, BatchView{
			StoreTag:     s.StoreTag,
			DeliveryDate: s.DeliveryDate.String(),
			Location:     s.Location,
			DeliveryType: s.DeliveryType.String(),
			Batch:        s.Batch,
			Orders:       s.Orders,
			Booked:       s.Booked,
		})
	}
	return report
}

func viewOf(r *tracking.Record) RecordView {
	return RecordView{
		OrderID:          r.OrderID(),
		OrderNumber:      r.OrderNumber(),
		StoreTag:         r.StoreTag(),
		Location:         r.Location(),
		DeliveryDate:     r.DeliveryDate().String(),
		DeliveryType:     r.DeliveryType().String(),
		Batch:            r.Batch(),
		LogisticsStatus:  r.Logistics().String(),
		SkipReason:       string(r.SkipReason()),
		LogisticsError:   r.LogisticsError(),
		ScheduledPickup:  r.ScheduledPickup().String(),
		CarrierReference: r.CarrierReference(),
		LabelStored:      r.LabelStored(),
		Personalization:  r.Personalization(),
		PackingSlip:      r.PackingSlip(),
		MessageCard:      r.MessageCard(),
		Reconciliation:   string(r.Reconciliation()),
		HoldNotified:     r.HoldNotified(),
	}
}

func outcomeOf(r *tracking.Record) OrderOutcome {
	switch r.Logistics() {
	case tracking.Booked:
		return OrderOutcome{OrderNumber: r.OrderNumber(), Success: true}
	case tracking.BookingFailed:
		return OrderOutcome{OrderNumber: r.OrderNumber(), Error: r.LogisticsError()}
	default:
		return OrderOutcome{OrderNumber: r.OrderNumber(), Error: "skipped: " + string(r.SkipReason())}
	}
}
