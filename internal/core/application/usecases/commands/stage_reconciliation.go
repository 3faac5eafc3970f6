package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

var (
	ErrReconciliationSinkNotConfigured = errors.New("reconciliation sink is not configured")
	ErrNotifierNotConfigured           = errors.New("notifier is not configured")
)

// reconcile splits the whole ledger into Processed and Hold, one bulk call per side.
// Records are only marked once their side's update was accepted.
func (h RunPipelineCommandHandler) reconcile(ctx context.Context, run *PipelineRun) StageResult {
	if !run.Command.Stages().Has(FlagReconciliation) {
		return disabled(StageReconciliation)
	}
	if run.Ledger.Len() == 0 {
		return skipped(StageReconciliation, "ledger is empty")
	}
	if h.deps.Reconciliation == nil {
		return failed(StageReconciliation, ErrReconciliationSinkNotConfigured.Error())
	}

	partition := services.Partition(run.Ledger.All())
	var succeeded, failedCount int
	var reasons []error

	apply := func(records []*tracking.Record, status tracking.ReconciliationStatus,
		update func(context.Context, []string) error) {
		if len(records) == 0 {
			return
		}
		callCtx, cancel := h.call(ctx)
		err := update(callCtx, services.OrderIDs(records))
		cancel()
		if err != nil {
			failedCount += len(records)
			reasons = append(reasons, fmt.Errorf("%s update: %w", status, err))
			return
		}
		for _, r := range records {
			r.SetReconciliation(status)
		}
		succeeded += len(records)
	}

	apply(partition.Processed, tracking.Processed, h.deps.Reconciliation.MarkProcessed)
	apply(partition.Hold, tracking.Hold, h.deps.Reconciliation.MarkHold)

	result := tally(StageReconciliation, succeeded, failedCount, 0)
	if err := errors.Join(reasons...); err != nil {
		result.Reason = err.Error()
	}
	return result
}

// notifyHolds sends one notice per record whose Hold update was committed.
func (h RunPipelineCommandHandler) notifyHolds(ctx context.Context, run *PipelineRun) StageResult {
	if !run.Command.Stages().Has(FlagNotification) {
		return disabled(StageNotification)
	}

	held := run.Ledger.Filter(func(r *tracking.Record) bool {
		return r.Reconciliation() == tracking.Hold
	})
	if len(held) == 0 {
		return skipped(StageNotification, "no committed holds")
	}
	if h.deps.Notifier == nil {
		return failed(StageNotification, ErrNotifierNotConfigured.Error())
	}

	var sent, failedCount int
	for _, r := range held {
		callCtx, cancel := h.call(ctx)
		err := h.deps.Notifier.NotifyHold(callCtx, ports.HoldNotice{
			StoreTag:     r.StoreTag(),
			OrderID:      r.OrderID(),
			OrderNumber:  r.OrderNumber(),
			Location:     r.Location(),
			DeliveryDate: r.DeliveryDate(),
			DeliveryType: r.DeliveryType(),
			Reason:       holdReason(r),
		})
		cancel()

		r.RecordHoldNotification(err)
		if err != nil {
			failedCount++
			run.logger.WarnContext(ctx, "Hold notification failed", "order_number", r.OrderNumber(),
				"store_tag", r.StoreTag(), "error", err)
			continue
		}
		sent++
	}

	return tally(StageNotification, sent, failedCount, 0)
}

func holdReason(r *tracking.Record) string {
	switch r.Logistics() {
	case tracking.BookingFailed:
		return "booking failed: " + r.LogisticsError()
	case tracking.Skipped:
		return "booking skipped: " + string(r.SkipReason())
	default:
		return "not booked"
	}
}
