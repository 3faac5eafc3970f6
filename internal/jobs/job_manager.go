package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// JobManager coordinates the automatic run jobs of every configured lane.
type JobManager struct {
	jobs []*AutomaticRunJob
}

// NewJobManager creates one AutomaticRunJob per lane. Lanes with an empty spec are skipped.
func NewJobManager(
	handler RunPipelineHandler,
	lanes []Lane,
	home kernel.Location,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	for _, lane := range lanes {
		if lane.Spec == "" {
			continue
		}
		jm.jobs = append(jm.jobs, NewAutomaticRunJob(handler, lane, home, time.Now, logger))
	}
	return jm
}

// Jobs returns the scheduled jobs in lane order.
func (jm *JobManager) Jobs() []*AutomaticRunJob {
	return jm.jobs
}

// StartAll starts all scheduled jobs. On failure the jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s run job: %w", job.lane.DeliveryType, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, job := range jm.jobs {
		job.Stop()
	}
}
