package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

var ErrAssetStoreNotConfigured = errors.New("asset store is not configured")

type folderResult struct {
	location string
	address  string
	err      error
}

// prepareAssets creates the batch folder of every location that has Booked orders and
// a batch number. Locations are independent: one failure never affects another.
func (h RunPipelineCommandHandler) prepareAssets(ctx context.Context, run *PipelineRun) StageResult {
	if !run.Command.Stages().Has(FlagAssets) {
		return disabled(StageAssets)
	}
	if run.Counters == nil {
		return skipped(StageAssets, "batch numbers unavailable")
	}
	if h.deps.Assets == nil {
		return failed(StageAssets, ErrAssetStoreNotConfigured.Error())
	}

	booked := run.Ledger.BookedCountByLocation()
	var targets []string
	skippedCount := 0
	for _, loc := range run.Ledger.Locations() {
		if booked[loc] == 0 {
			continue
		}
		if _, ok := run.Counters.Value(loc); !ok {
			run.logger.WarnContext(ctx, "Asset folder skipped, batch unknown", "location", loc)
			skippedCount++
			continue
		}
		targets = append(targets, loc)
	}
	if len(targets) == 0 {
		result := skipped(StageAssets, "no booked orders with a batch number")
		result.Skipped = skippedCount
		return result
	}

	cmd := run.Command
	results := make([]folderResult, len(targets))
	var g errgroup.Group
	g.SetLimit(h.deps.Settings.AssetConcurrency)
	for i, loc := range targets {
		batch, _ := run.Counters.Value(loc)
		g.Go(func() error {
			callCtx, cancel := h.call(ctx)
			defer cancel()
			address, err := h.deps.Assets.EnsureFolder(callCtx, ports.AssetFolder{
				Location:     loc,
				DeliveryDate: cmd.DeliveryDate(),
				DeliveryType: cmd.DeliveryType(),
				Batch:        batch,
			})
			results[i] = folderResult{location: loc, address: address, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var created, failedCount int
	for _, res := range results {
		if res.err != nil {
			failedCount++
			run.logger.WarnContext(ctx, "Asset folder creation failed", "location", res.location, "error", res.err)
			continue
		}
		run.Folders[res.location] = res.address
		created++
	}

	return tally(StageAssets, created, failedCount, skippedCount)
}
