// Package commands contains the operations that change state outside the process.
// RunPipelineCommand drives one fulfillment run end to end; each stage of the run
// lives in its own stage_*.go file and returns a StageResult instead of an error.
package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/application/batching"
	"fulfillment/internal/core/domain/model/kernel"
)

type (
	// BatchCounters is the two-step counter contract implemented by batching.CounterService.
	BatchCounters interface {
		GetCounters(
			ctx context.Context,
			locations []string,
			date kernel.DeliveryDate,
			deliveryType kernel.DeliveryType,
		) batching.Counters
		IncrementCounters(
			ctx context.Context,
			successCounts map[string]int,
			date kernel.DeliveryDate,
			deliveryType kernel.DeliveryType,
			prior batching.Counters,
		) batching.Counters
	}

	// Clock returns the current instant.
	Clock func() time.Time

	// Sleeper pauses between carrier calls. It returns early when ctx is done.
	Sleeper func(ctx context.Context, d time.Duration)
)

// ContextSleep is the production Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
