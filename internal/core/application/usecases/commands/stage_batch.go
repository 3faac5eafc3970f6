package commands

import (
	"context"
	"errors"
)

var ErrCounterStoreNotConfigured = errors.New("batch counter store is not configured")

// assignBatches advances the counter of every known ledger location once and stamps every
// record of the location with the result. Unknown counters stamp nil. Locations without
// cutoff rules get no counter document at all.
func (h RunPipelineCommandHandler) assignBatches(ctx context.Context, run *PipelineRun) StageResult {
	if !run.Command.Stages().Has(FlagBatch) {
		return disabled(StageBatch)
	}
	if h.deps.Counters == nil {
		return failed(StageBatch, ErrCounterStoreNotConfigured.Error())
	}

	var locations []string
	excluded := 0
	for _, loc := range run.Ledger.Locations() {
		if !h.deps.Scheduler.KnowsLocation(loc) {
			excluded++
			run.logger.WarnContext(ctx, "No batch counter for unknown location", "location", loc)
			continue
		}
		locations = append(locations, loc)
	}
	if len(locations) == 0 {
		result := skipped(StageBatch, "no known locations in ledger")
		result.Skipped = excluded
		return result
	}

	cmd := run.Command
	prior := h.deps.Counters.GetCounters(ctx, locations, cmd.DeliveryDate(), cmd.DeliveryType())
	next := h.deps.Counters.IncrementCounters(
		ctx,
		run.Ledger.BookedCountByLocation(),
		cmd.DeliveryDate(),
		cmd.DeliveryType(),
		prior,
	)
	run.Counters = next

	var known, unknown int
	for _, loc := range locations {
		batch := next[loc]
		for _, record := range run.Ledger.ForLocation(loc) {
			record.AssignBatch(batch)
		}
		if batch == nil {
			unknown++
			run.logger.WarnContext(ctx, "Batch number unavailable", "location", loc)
			continue
		}
		known++
	}

	return tally(StageBatch, known, unknown, excluded)
}
