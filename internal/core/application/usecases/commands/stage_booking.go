package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

var ErrNoCarrierForLane = errors.New("no carrier configured for delivery type")

func (h RunPipelineCommandHandler) book(ctx context.Context, run *PipelineRun) StageResult {
	records := run.Ledger.All()
	cmd := run.Command

	if !cmd.Stages().Has(FlagBooking) {
		skipAll(ctx, run, records, tracking.SkipFlagOff)
		result := disabled(StageBooking)
		result.Skipped = len(records)
		return result
	}

	carrier, ok := h.deps.Carriers[cmd.DeliveryType()]
	if !ok || carrier == nil {
		skipAll(ctx, run, records, tracking.SkipCarrierUnavailable)
		result := failed(StageBooking, ErrNoCarrierForLane.Error()+": "+cmd.DeliveryType().String())
		result.Skipped = len(records)
		return result
	}

	var booked, rejected, skippedCount, calls int
	for _, record := range records {
		if !h.deps.Scheduler.KnowsLocation(record.Location()) {
			mark(ctx, run, record, record.MarkSkipped(tracking.SkipMissingLocation))
			skippedCount++
			continue
		}

		decision := h.deps.Scheduler.Resolve(record.Location(), cmd.DeliveryType(), record.DeliveryDate(), h.deps.Clock())
		if !decision.Bookable {
			mark(ctx, run, record, record.MarkSkipped(tracking.SkipCutoff))
			run.logger.InfoContext(ctx, "Order skipped", "order_number", record.OrderNumber(),
				"location", record.Location(), "reason", string(decision.Reason))
			skippedCount++
			continue
		}

		if calls > 0 {
			h.deps.Sleep(ctx, h.deps.Settings.BookingPacing)
		}
		calls++

		callCtx, cancel := h.call(ctx)
		result := carrier.Book(callCtx, ports.BookingRequest{
			OrderID:      record.OrderID(),
			OrderNumber:  record.OrderNumber(),
			StoreTag:     record.StoreTag(),
			Location:     record.Location(),
			DeliveryDate: record.DeliveryDate(),
			DeliveryType: record.DeliveryType(),
			PickupTime:   decision.Pickup,
			ReadyBy:      decision.Cutoff,
			LineItems:    record.LineItems(),
		})
		cancel()

		if result.Success {
			mark(ctx, run, record, record.MarkBooked(decision.Pickup, result.CarrierReference))
			booked++
			continue
		}
		mark(ctx, run, record, record.MarkBookingFailed(result.Error))
		run.logger.WarnContext(ctx, "Booking failed", "order_number", record.OrderNumber(),
			"carrier", carrier.Name(), "error", result.Error)
		rejected++
	}

	return tally(StageBooking, booked, rejected, skippedCount)
}

func skipAll(ctx context.Context, run *PipelineRun, records []*tracking.Record, reason tracking.SkipReason) {
	for _, r := range records {
		mark(ctx, run, r, r.MarkSkipped(reason))
	}
}

// mark logs a transition the ledger refused. Seeded records are always New when the
// booking stage reaches them, so this only fires on a programming error.
func mark(ctx context.Context, run *PipelineRun, r *tracking.Record, err error) {
	if err != nil {
		run.logger.ErrorContext(ctx, "Ledger transition rejected", "order_number", r.OrderNumber(), "error", err)
	}
}
