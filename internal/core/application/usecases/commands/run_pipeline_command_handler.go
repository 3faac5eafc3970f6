package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// Settings tune the run without changing its semantics.
type Settings struct {
	// CallTimeout bounds every single external call.
	CallTimeout time.Duration
	// BookingPacing is the fixed delay between two calls to the same carrier.
	BookingPacing time.Duration
	// AutoRowLimitPerLocation caps seeded rows per location in automatic runs.
	AutoRowLimitPerLocation int
	// AssetConcurrency bounds parallel asset folder creation.
	AssetConcurrency int
}

// Dependencies are the collaborators of a run. A nil collaborator fails the stages
// that need it; it never stops the run.
type Dependencies struct {
	Orders         ports.EligibleOrderSource
	Carriers       map[kernel.DeliveryType]ports.Carrier
	Scheduler      services.PickupScheduler
	Counters       BatchCounters
	Assets         ports.AssetStore
	Content        ports.ContentGenerator
	Reconciliation ports.ReconciliationSink
	Notifier       ports.Notifier
	Audit          ports.AuditSink
	Clock          Clock
	Sleep          Sleeper
	Settings       Settings
	Logger         *slog.Logger
}

// RunPipelineCommandHandler executes fulfillment runs. Stages run strictly in order;
// no stage failure aborts the run and a report is always produced.
//
// Example:
//
//	handler := NewRunPipelineCommandHandler(deps)
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // the command itself was not constructed
//	}
//	for _, stage := range report.Stages {
//	    fmt.Println(stage.Name, stage.Status)
//	}
type RunPipelineCommandHandler struct {
	deps   Dependencies
	logger *slog.Logger
}

func NewRunPipelineCommandHandler(deps Dependencies) RunPipelineCommandHandler {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Sleep == nil {
		deps.Sleep = ContextSleep
	}
	if deps.Settings.CallTimeout <= 0 {
		deps.Settings.CallTimeout = 30 * time.Second
	}
	if deps.Settings.AssetConcurrency <= 0 {
		deps.Settings.AssetConcurrency = 4
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return RunPipelineCommandHandler{
		deps:   deps,
		logger: deps.Logger.With("component", "pipeline"),
	}
}

// Handle runs every stage of the pipeline for cmd. The error is returned only for a
// command that was not built by NewRunPipelineCommand.
func (h RunPipelineCommandHandler) Handle(ctx context.Context, cmd RunPipelineCommand) (RunReport, error) {
	if err := cmd.Validate(); err != nil {
		return RunReport{}, err
	}

	run := newPipelineRun(cmd, h.deps.Clock(), h.logger)
	run.logger.InfoContext(ctx, "Run started",
		"mode", cmd.Mode().String(),
		"delivery_date", cmd.DeliveryDate().String(),
		"delivery_type", cmd.DeliveryType().String(),
		"store_tag", cmd.StoreTag(),
		"stages", cmd.Stages().String(),
	)

	run.track(ctx, StageSeed, h.seed)
	run.track(ctx, StageBooking, h.book)
	run.track(ctx, StageBatch, h.assignBatches)
	run.track(ctx, StageAssets, h.prepareAssets)
	run.track(ctx, StageLabels, h.storeLabels)
	run.track(ctx, StagePersonalization, h.contentStage(ports.Personalization, FlagPersonalization))
	run.track(ctx, StagePackingSlip, h.contentStage(ports.PackingSlip, FlagPackingSlip))
	run.track(ctx, StageMessageCard, h.contentStage(ports.MessageCard, FlagMessageCard))
	run.track(ctx, StageReconciliation, h.reconcile)
	run.track(ctx, StageNotification, h.notifyHolds)
	run.track(ctx, StageAudit, h.writeAudit)

	report := buildReport(run, h.deps.Clock())
	run.logger.InfoContext(ctx, "Run finished",
		"failed", report.Failed,
		"seeded", report.Tallies.Seeded,
		"booked", report.Tallies.Booked,
		"booking_failed", report.Tallies.BookingFailed,
		"skipped", report.Tallies.Skipped,
	)
	return report, nil
}

// call derives the per-call context every collaborator call runs under.
func (h RunPipelineCommandHandler) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.deps.Settings.CallTimeout)
}
