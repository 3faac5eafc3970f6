package commands

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

// storeLabels downloads the carrier label of every Booked order whose location has an
// asset folder and stores it next to the production material.
func (h RunPipelineCommandHandler) storeLabels(ctx context.Context, run *PipelineRun) StageResult {
	cmd := run.Command
	if !cmd.Stages().Has(FlagLabels) {
		return disabled(StageLabels)
	}
	if len(run.Folders) == 0 {
		return skipped(StageLabels, "no asset folders")
	}
	carrier, ok := h.deps.Carriers[cmd.DeliveryType()]
	if !ok || carrier == nil {
		return skipped(StageLabels, ErrNoCarrierForLane.Error())
	}

	targets := run.Ledger.Filter(func(r *tracking.Record) bool {
		_, hasFolder := run.Folders[r.Location()]
		return r.IsBooked() && r.CarrierReference() != "" && hasFolder
	})
	if len(targets) == 0 {
		return skipped(StageLabels, "no booked orders with a carrier reference")
	}

	var stored, failedCount int
	for i, record := range targets {
		if i > 0 {
			h.deps.Sleep(ctx, h.deps.Settings.BookingPacing)
		}
		if err := h.storeLabel(ctx, run, carrier, record); err != nil {
			failedCount++
			run.logger.WarnContext(ctx, "Label not stored", "order_number", record.OrderNumber(), "error", err)
			continue
		}
		record.MarkLabelStored()
		stored++
	}

	return tally(StageLabels, stored, failedCount, 0)
}

func (h RunPipelineCommandHandler) storeLabel(
	ctx context.Context,
	run *PipelineRun,
	carrier ports.LabelFetcher,
	record *tracking.Record,
) error {
	callCtx, cancel := h.call(ctx)
	label, err := carrier.FetchLabel(callCtx, record.CarrierReference())
	cancel()
	if err != nil {
		return fmt.Errorf("fetch label: %w", err)
	}

	batch, _ := run.Counters.Value(record.Location())
	folder := ports.AssetFolder{
		Location:     record.Location(),
		DeliveryDate: run.Command.DeliveryDate(),
		DeliveryType: run.Command.DeliveryType(),
		Batch:        batch,
	}

	callCtx, cancel = h.call(ctx)
	defer cancel()
	if err = h.deps.Assets.Put(callCtx, folder, labelName(record.OrderNumber()), label); err != nil {
		return fmt.Errorf("store label: %w", err)
	}
	return nil
}

func labelName(orderNumber string) string {
	return "label-" + strings.TrimPrefix(orderNumber, "#") + ".pdf"
}
