package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	shortageDigestJob *ShortageDigestJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	shortageDigestHandler ShortageDigestHandler,
	shortageDigestSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		shortageDigestJob: NewShortageDigestJob(shortageDigestHandler, shortageDigestSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.shortageDigestJob.Start(); err != nil {
		return fmt.Errorf("failed to start shortage digest job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.shortageDigestJob.Stop()
}
