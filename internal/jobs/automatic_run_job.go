package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// RunPipelineHandler is the part of RunPipelineCommandHandler a job needs.
type RunPipelineHandler interface {
	Handle(ctx context.Context, cmd commands.RunPipelineCommand) (commands.RunReport, error)
}

// Lane describes one automatic run schedule.
type Lane struct {
	DeliveryType kernel.DeliveryType
	// Spec is a standard five field cron expression.
	Spec string
	// StoreTag restricts the run to one store. Empty runs every store.
	StoreTag string
}

// AutomaticRunJob starts an automatic pipeline run for one lane on a cron schedule.
// The delivery date is today at the home location for same-day and tomorrow for next-day.
type AutomaticRunJob struct {
	handler RunPipelineHandler
	lane    Lane
	home    kernel.Location
	clock   func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewAutomaticRunJob(
	handler RunPipelineHandler,
	lane Lane,
	home kernel.Location,
	clock func() time.Time,
	logger *slog.Logger,
) *AutomaticRunJob {
	if clock == nil {
		clock = time.Now
	}
	return &AutomaticRunJob{
		handler: handler,
		lane:    lane,
		home:    home,
		clock:   clock,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		logger:  logger.With("component", "automatic_run_job", "delivery_type", lane.DeliveryType.String()),
	}
}

// Start schedules the lane. A run still in progress when the next tick fires is not overlapped.
func (j *AutomaticRunJob) Start() error {
	_, err := j.cron.AddFunc(j.lane.Spec, func() {
		if runErr := j.RunOnce(context.Background()); runErr != nil {
			j.logger.ErrorContext(context.Background(), "Automatic run failed to start", "error", runErr)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Automatic run job started", "schedule", j.lane.Spec)
	return nil
}

// Stop stops scheduling and waits for a running pipeline to finish.
func (j *AutomaticRunJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Automatic run job stopped")
}

// RunOnce performs one automatic run for the lane's current delivery date.
func (j *AutomaticRunJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewRunPipelineCommand(commands.RunParams{
		DeliveryDate: j.deliveryDate(),
		DeliveryType: j.lane.DeliveryType,
		StoreTag:     j.lane.StoreTag,
		Mode:         commands.Automatic,
		Stages:       commands.AllStages,
	})
	if err != nil {
		return err
	}

	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if report.Failed {
		level = slog.LevelWarn
	}
	j.logger.Log(ctx, level, "Automatic run finished",
		"run_id", report.RunID,
		"delivery_date", report.DeliveryDate,
		"seeded", report.Tallies.Seeded,
		"booked", report.Tallies.Booked,
		"failed", report.Failed,
	)
	return nil
}

func (j *AutomaticRunJob) deliveryDate() kernel.DeliveryDate {
	today := j.home.Today(j.clock())
	if j.lane.DeliveryType == kernel.NextDay {
		return today.AddDays(1)
	}
	return today
}
