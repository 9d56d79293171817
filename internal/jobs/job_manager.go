package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionPurgeJob *SessionPurgeJob
}

// NewJobManager creates a job manager. purgeSchedule may be empty to use the default.
func NewJobManager(purgeHandler sessionPurger, purgeSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		sessionPurgeJob: NewSessionPurgeJob(purgeHandler, purgeSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start session purge job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionPurgeJob.Stop()
}
