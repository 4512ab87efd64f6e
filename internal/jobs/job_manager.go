package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Terminal is what the jobs need from the kitchen coordinator.
type Terminal interface {
	Reconciler
	Ticker
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconcileJob   *ReconcileJob
	elapsedTickJob *ElapsedTickJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(terminal Terminal, reconcileInterval time.Duration, onTick func(time.Time), logger *slog.Logger) *JobManager {
	return &JobManager{
		reconcileJob:   NewReconcileJob(terminal, reconcileInterval, logger),
		elapsedTickJob: NewElapsedTickJob(terminal, onTick, logger),
	}
}

// SetTickInterval forwards a cadence change to the elapsed tick job. Wire it
// as the coordinator's cadence listener.
func (jm *JobManager) SetTickInterval(d time.Duration) {
	if err := jm.elapsedTickJob.SetInterval(d); err != nil {
		jm.elapsedTickJob.logger.Error("Failed to reschedule elapsed tick", "interval", d.String(), "error", err)
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconcile job: %w", err)
	}

	if err := jm.elapsedTickJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconcileJob.Stop()
		return fmt.Errorf("failed to start elapsed tick job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.elapsedTickJob.Stop()
	jm.reconcileJob.Stop()
}
