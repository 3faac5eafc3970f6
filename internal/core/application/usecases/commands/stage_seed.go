package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

var ErrOrderSourceNotConfigured = errors.New("eligible order source is not configured")

func (h RunPipelineCommandHandler) seed(ctx context.Context, run *PipelineRun) StageResult {
	cmd := run.Command
	if h.deps.Orders == nil {
		run.seedFailed = true
		return failed(StageSeed, ErrOrderSourceNotConfigured.Error())
	}

	filter := ports.EligibleOrderFilter{
		DeliveryDate: cmd.DeliveryDate(),
		DeliveryType: cmd.DeliveryType(),
		StoreTag:     cmd.StoreTag(),
		OrderIDs:     cmd.OrderIDs(),
		Locations:    cmd.Locations(),
	}
	if cmd.Mode() == Automatic {
		filter.RowLimitPerLocation = h.deps.Settings.AutoRowLimitPerLocation
	} else {
		filter.IncludeHeld = true
	}

	callCtx, cancel := h.call(ctx)
	rows, err := h.deps.Orders.FindEligible(callCtx, filter)
	cancel()
	if err != nil {
		run.seedFailed = true
		return failed(StageSeed, err.Error())
	}

	records := make([]*tracking.Record, 0, len(rows))
	rejected := 0
	for _, row := range rows {
		date := row.DeliveryDate
		if date.IsZero() {
			date = cmd.DeliveryDate()
		}
		record, recErr := tracking.NewRecord(tracking.Seed{
			OrderID:      row.ID,
			OrderNumber:  row.OrderNumber,
			StoreTag:     row.StoreTag,
			Location:     canonicalLocation(row.Location),
			DeliveryDate: date,
			DeliveryType: cmd.DeliveryType(),
			LineItems:    row.LineItems,
		})
		if recErr != nil {
			rejected++
			run.logger.WarnContext(ctx, "Eligible row rejected", "order_id", row.ID, "error", recErr)
			continue
		}
		records = append(records, record)
	}
	run.Ledger = tracking.NewLedger(records...)

	return tally(StageSeed, len(records), rejected, 0)
}

// canonicalLocation spells a known dispatch site the way counters and folders key it.
// Other tags are passed through for the booking stage to reject.
func canonicalLocation(tag string) string {
	if loc, err := kernel.LocationByName(tag); err == nil {
		return loc.Name()
	}
	return tag
}
