package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSessionPurgeSchedule runs the purge every 30 seconds.
const DefaultSessionPurgeSchedule = "*/30 * * * * *"

type sessionPurger interface {
	Handle(ctx context.Context, command commands.PurgeExpiredSessionsCommand) (int, error)
}

// SessionPurgeJob periodically removes payment sessions that are past their
// expiry or their post-payment grace period.
type SessionPurgeJob struct {
	handler  sessionPurger
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionPurgeJob creates the job. An empty schedule means DefaultSessionPurgeSchedule.
// The schedule uses the six-field cron format with seconds.
func NewSessionPurgeJob(handler sessionPurger, schedule string, logger *slog.Logger) *SessionPurgeJob {
	if schedule == "" {
		schedule = DefaultSessionPurgeSchedule
	}
	return &SessionPurgeJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_purge_job"),
	}
}

// Start registers the purge on its schedule and starts the scheduler.
func (j *SessionPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session purge job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (j *SessionPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session purge job stopped")
}

func (j *SessionPurgeJob) run() {
	ctx := context.Background()

	removed, err := j.handler.Handle(ctx, commands.NewPurgeExpiredSessionsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Session purge job failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.DebugContext(ctx, "Expired payment sessions purged", "removed", removed)
	}
}
