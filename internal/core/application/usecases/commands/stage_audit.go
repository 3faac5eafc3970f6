package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

var ErrAuditSinkNotConfigured = errors.New("audit sink is not configured")

// writeAudit appends the ledger and its batch summary to the audit log.
func (h RunPipelineCommandHandler) writeAudit(ctx context.Context, run *PipelineRun) StageResult {
	if !run.Command.Stages().Has(FlagAudit) {
		return disabled(StageAudit)
	}
	if h.deps.Audit == nil {
		return failed(StageAudit, ErrAuditSinkNotConfigured.Error())
	}

	records := run.Ledger.All()
	orders := make([]ports.AuditOrderRow, 0, len(records))
	for _, r := range records {
		orders = append(orders, ports.AuditOrderRow{
			RunID:            run.ID.String(),
			OrderID:          r.OrderID(),
			OrderNumber:      r.OrderNumber(),
			StoreTag:         r.StoreTag(),
			Location:         r.Location(),
			DeliveryDate:     r.DeliveryDate(),
			DeliveryType:     r.DeliveryType(),
			Batch:            r.Batch(),
			LogisticsStatus:  r.Logistics().String(),
			SkipReason:       string(r.SkipReason()),
			LogisticsError:   r.LogisticsError(),
			ScheduledPickup:  r.ScheduledPickup().String(),
			CarrierReference: r.CarrierReference(),
			Personalization:  r.Personalization(),
			PackingSlip:      r.PackingSlip(),
			MessageCard:      r.MessageCard(),
			Reconciliation:   string(r.Reconciliation()),
		})
	}

	summaries := tracking.Summarize(records)
	batches := make([]ports.AuditBatchRow, 0, len(summaries))
	for _, s := range summaries {
		batches = append(batches, ports.AuditBatchRow{
			RunID:        run.ID.String(),
			StoreTag:     s.StoreTag,
			Location:     s.Location,
			DeliveryDate: s.DeliveryDate,
			DeliveryType: s.DeliveryType,
			Batch:        s.Batch,
			Orders:       s.Orders,
			Booked:       s.Booked,
		})
	}

	callCtx, cancel := h.call(ctx)
	defer cancel()
	if err := h.deps.Audit.AppendRun(callCtx, orders, batches); err != nil {
		result := failed(StageAudit, err.Error())
		result.Failed = len(orders)
		return result
	}
	return tally(StageAudit, len(orders), 0, 0)
}
