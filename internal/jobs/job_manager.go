package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	retrySweepJob *RetrySweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(sweeper RetrySweeper, logger *slog.Logger) *JobManager {
	return &JobManager{
		retrySweepJob: NewRetrySweepJob(sweeper, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.retrySweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start retry sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retrySweepJob.Stop()
}
