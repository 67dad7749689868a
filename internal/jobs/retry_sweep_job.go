package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// RetrySweeper delivers every due retry record. Implemented by the dispatch
// coordinator.
type RetrySweeper interface {
	SweepDue(ctx context.Context) error
}

// RetrySweepJob periodically re-attempts failed event deliveries.
// Runs every second so scheduled retries fire close to their due time.
type RetrySweepJob struct {
	sweeper RetrySweeper
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRetrySweepJob creates a job that sweeps due delivery retries.
func NewRetrySweepJob(sweeper RetrySweeper, logger *slog.Logger) *RetrySweepJob {
	return &RetrySweepJob{
		sweeper: sweeper,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "retry_sweep_job"),
	}
}

// Start begins the sweep loop.
func (j *RetrySweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.sweeper.SweepDue(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Retry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retry sweep job started (running every second)")
	return nil
}

// Stop stops the sweep loop.
func (j *RetrySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Retry sweep job stopped")
}
