package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker is the part of the coordinator the elapsed tick job drives.
type Ticker interface {
	Tick() time.Time
	TickInterval() time.Duration
}

// ElapsedTickJob refreshes elapsed timers on the coordinator's cadence.
type ElapsedTickJob struct {
	ticker Ticker
	cron   *cron.Cron
	logger *slog.Logger

	mu       sync.Mutex
	extra    sync.WaitGroup
	entry    cron.EntryID
	interval time.Duration
	onTick   func(time.Time)
}

// NewElapsedTickJob creates the job. onTick, when not nil, is called after
// every tick with the new time.
func NewElapsedTickJob(t Ticker, onTick func(time.Time), logger *slog.Logger) *ElapsedTickJob {
	if onTick == nil {
		onTick = func(time.Time) {}
	}
	logger = logger.With("component", "elapsed_tick_job")
	return &ElapsedTickJob{
		ticker: t,
		cron:   cron.New(cron.WithSeconds(), cron.WithLogger(newCronLogger(logger))),
		logger: logger,
		onTick: onTick,
	}
}

// Start schedules ticks at the coordinator's current interval.
func (j *ElapsedTickJob) Start() error {
	if err := j.SetInterval(j.ticker.TickInterval()); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// SetInterval reschedules the tick. It is registered as the coordinator's
// cadence listener and ticks once immediately so the display does not wait
// a full minute after switching back to coarse mode.
func (j *ElapsedTickJob) SetInterval(d time.Duration) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if d == j.interval && j.entry != 0 {
		return nil
	}

	id, err := j.cron.AddFunc(fmt.Sprintf("@every %s", d), j.run)
	if err != nil {
		return err
	}
	if j.entry != 0 {
		j.cron.Remove(j.entry)
		j.extra.Add(1)
		go func() {
			defer j.extra.Done()
			j.run()
		}()
	}
	j.entry = id
	j.interval = d

	j.logger.InfoContext(context.Background(), "Elapsed tick scheduled", "interval", d.String())
	return nil
}

// Interval returns the current tick interval.
func (j *ElapsedTickJob) Interval() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.interval
}

// Stop stops the elapsed tick job.
func (j *ElapsedTickJob) Stop() {
	<-j.cron.Stop().Done()
	j.extra.Wait()
	j.logger.InfoContext(context.Background(), "Elapsed tick job stopped")
}

func (j *ElapsedTickJob) run() {
	j.onTick(j.ticker.Tick())
}
