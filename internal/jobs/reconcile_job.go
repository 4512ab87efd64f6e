package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kitchen/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Reconciler is the part of the coordinator the reconcile job drives.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}

// ReconcileJob periodically reconciles the local view.
type ReconcileJob struct {
	reconciler Reconciler
	interval   time.Duration
	cron       *cron.Cron
	logger     *slog.Logger

	// first tracks the immediate reconciliation started outside cron.
	first sync.WaitGroup
}

// NewReconcileJob creates a job that reconciles every interval.
func NewReconcileJob(reconciler Reconciler, interval time.Duration, logger *slog.Logger) *ReconcileJob {
	logger = logger.With("component", "reconcile_job")
	cronLog := newCronLogger(logger)

	return &ReconcileJob{
		reconciler: reconciler,
		interval:   interval,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

// Start runs one reconciliation right away, then schedules the rest.
func (j *ReconcileJob) Start() error {
	if j.interval < time.Second {
		return errs.NewValueIsOutOfRangeError("reconcile interval", j.interval, time.Second, "unbounded")
	}

	if _, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.run); err != nil {
		return err
	}

	j.first.Add(1)
	go func() {
		defer j.first.Done()
		j.run()
	}()
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconcile job started", "interval", j.interval.String())
	return nil
}

// Stop stops the reconcile job and waits for a running reconciliation.
func (j *ReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.first.Wait()
	j.logger.InfoContext(context.Background(), "Reconcile job stopped")
}

func (j *ReconcileJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	if err := j.reconciler.Reconcile(ctx); err != nil {
		// fetch failures are already logged by the coordinator
		if !errors.Is(err, errs.ErrTransientFetch) {
			j.logger.ErrorContext(ctx, "Reconcile job failed", "error", err)
		}
	}
}
