package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob runs the search deadline sweep every second. Deadlines are
// stored on the order rows, so the sweep is stateless: any instance, fresh
// from a restart or one of several replicas, picks up whatever is due.
type DispatchSweepJob struct {
	handler commands.ProcessDueSearchesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchSweepJob creates the sweep job around the due-search handler.
func NewDispatchSweepJob(handler commands.ProcessDueSearchesCommandHandler, logger *slog.Logger) *DispatchSweepJob {
	return &DispatchSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_sweep_job"),
	}
}

// Start begins the sweep, firing every second.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewProcessDueSearchesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch sweep job started (running every second)")
	return nil
}

// Stop stops the sweep job.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch sweep job stopped")
}
