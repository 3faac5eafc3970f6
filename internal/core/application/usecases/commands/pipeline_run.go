package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/batching"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// Stage names as they appear in reports and logs.
const (
	StageSeed            = "seed"
	StageBooking         = "booking"
	StageBatch           = "batch"
	StageAssets          = "assets"
	StageLabels          = "labels"
	StagePersonalization = "personalization"
	StagePackingSlip     = "packing-slip"
	StageMessageCard     = "message-card"
	StageReconciliation  = "reconciliation"
	StageNotification    = "notification"
	StageAudit           = "audit"
)

// StageStatus is the outcome of one stage.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StagePartial   StageStatus = "partial"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
	StageDisabled  StageStatus = "disabled"
)

// StageResult is the tally of one stage. Succeeded, Failed and Skipped count the
// units the stage works on: orders for booking and content, locations for batch and assets.
type StageResult struct {
	Name       string      `json:"name"`
	Status     StageStatus `json:"status"`
	Reason     string      `json:"reason,omitempty"`
	Succeeded  int         `json:"succeeded"`
	Failed     int         `json:"failed"`
	Skipped    int         `json:"skipped"`
	DurationMs int64       `json:"duration_ms"`
}

func disabled(name string) StageResult {
	return StageResult{Name: name, Status: StageDisabled, Reason: "flag off"}
}

func skipped(name, reason string) StageResult {
	return StageResult{Name: name, Status: StageSkipped, Reason: reason}
}

func failed(name, reason string) StageResult {
	return StageResult{Name: name, Status: StageFailed, Reason: reason}
}

// tally derives the status from the counts: any failure with no success is failed,
// mixed outcomes are partial.
func tally(name string, succeeded, failedCount, skippedCount int) StageResult {
	status := StageCompleted
	switch {
	case failedCount > 0 && succeeded == 0:
		status = StageFailed
	case failedCount > 0:
		status = StagePartial
	}
	return StageResult{Name: name, Status: status, Succeeded: succeeded, Failed: failedCount, Skipped: skippedCount}
}

// PipelineRun is the state of one run. It is created by Handle, passed by pointer to
// every stage and dropped once the report is built.
type PipelineRun struct {
	ID        kernel.UUID
	Command   RunPipelineCommand
	StartedAt time.Time
	Ledger    *tracking.Ledger
	// Counters is nil until the batch stage has run.
	Counters batching.Counters
	// Folders maps a location to its asset folder address.
	Folders map[string]string

	seedFailed bool
	stages     []StageResult
	logger     *slog.Logger
}

func newPipelineRun(cmd RunPipelineCommand, startedAt time.Time, logger *slog.Logger) *PipelineRun {
	id := kernel.NewUUID()
	return &PipelineRun{
		ID:        id,
		Command:   cmd,
		StartedAt: startedAt,
		Ledger:    tracking.NewLedger(),
		Folders:   make(map[string]string),
		logger:    logger.With("run_id", id.String()),
	}
}

// Stages returns the results recorded so far, in execution order.
func (r *PipelineRun) Stages() []StageResult {
	return append([]StageResult(nil), r.stages...)
}

// Stage returns the result of a named stage.
func (r *PipelineRun) Stage(name string) (StageResult, bool) {
	for _, s := range r.stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageResult{}, false
}

type stageFunc func(ctx context.Context, run *PipelineRun) StageResult

// track runs one stage, stamps its duration and logs the outcome. Once seeding has
// failed every later stage is recorded as skipped without running.
func (r *PipelineRun) track(ctx context.Context, name string, fn stageFunc) StageResult {
	var result StageResult
	start := time.Now()

	if r.seedFailed && name != StageSeed {
		result = skipped(name, "seed failed")
	} else {
		result = fn(ctx, r)
	}
	result.Name = name
	result.DurationMs = time.Since(start).Milliseconds()
	r.stages = append(r.stages, result)

	attrs := []any{
		"stage", name,
		"status", result.Status,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration_ms", result.DurationMs,
	}
	if result.Reason != "" {
		attrs = append(attrs, "reason", result.Reason)
	}
	if result.Status == StageFailed || result.Status == StagePartial {
		r.logger.WarnContext(ctx, "Stage finished with failures", attrs...)
	} else {
		r.logger.InfoContext(ctx, "Stage finished", attrs...)
	}
	return result
}
