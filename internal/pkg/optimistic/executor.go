package optimistic

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrSuperseded is reported for commands that were undone without being
// committed because an earlier command with the same key failed.
var ErrSuperseded = errors.New("undone after an earlier mutation failed")

// ErrClosed is returned by Execute after Close.
var ErrClosed = errors.New("executor is closed")

// Command is one optimistic change.
type Command[K comparable] struct {
	// Key serializes commits. Commands with equal keys commit one at a time.
	Key K

	// Name is used in logs.
	Name string

	// Apply changes local state and returns the function that reverts it.
	// A non-nil error means nothing was changed and the command is dropped.
	Apply func() (undo func(), err error)

	// Commit persists the change.
	Commit func(ctx context.Context) error
}

// Result is passed to the Done callback once per failed or superseded command.
type Result[K comparable] struct {
	Key  K
	Name string
	Err  error
}

type queued[K comparable] struct {
	cmd  Command[K]
	undo func()
}

// Executor runs Commands. The zero value is not usable; use New.
type Executor[K comparable] struct {
	logger        *slog.Logger
	commitTimeout time.Duration
	done          func(Result[K])

	mu     sync.Mutex
	queues map[K][]*queued[K]
	closed bool
	wg     sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

type Option[K comparable] func(*Executor[K])

// WithCommitTimeout bounds every commit. Zero means no bound.
func WithCommitTimeout[K comparable](d time.Duration) Option[K] {
	return func(e *Executor[K]) { e.commitTimeout = d }
}

// WithDone registers the callback for failed and superseded commands. It is
// called after the undo functions have run and outside any executor lock.
func WithDone[K comparable](fn func(Result[K])) Option[K] {
	return func(e *Executor[K]) { e.done = fn }
}

func New[K comparable](logger *slog.Logger, opts ...Option[K]) *Executor[K] {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor[K]{
		logger: logger.With("component", "optimistic_executor"),
		done:   func(Result[K]) {},
		queues: make(map[K][]*queued[K]),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies cmd and schedules its commit. The returned error is the
// one from Apply; commit failures only reach the Done callback.
func (e *Executor[K]) Execute(cmd Command[K]) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	undo, err := cmd.Apply()
	if err != nil {
		return err
	}
	if undo == nil {
		undo = func() {}
	}

	q := &queued[K]{cmd: cmd, undo: undo}
	e.queues[cmd.Key] = append(e.queues[cmd.Key], q)
	if len(e.queues[cmd.Key]) == 1 {
		e.wg.Add(1)
		go e.drain(cmd.Key)
	}
	return nil
}

// Pending returns the number of commands applied but not yet committed.
func (e *Executor[K]) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, q := range e.queues {
		n += len(q)
	}
	return n
}

// Wait blocks until every scheduled commit has finished.
func (e *Executor[K]) Wait() {
	e.wg.Wait()
}

// Close stops accepting commands and waits for in-flight commits until ctx
// is done, after which their contexts are cancelled.
func (e *Executor[K]) Close(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		e.cancel()
		return nil
	case <-ctx.Done():
		e.cancel()
		<-finished
		return ctx.Err()
	}
}

// drain commits the queue for key head first. The head stays in the queue
// while it commits so that new commands for the key do not start a second
// worker.
func (e *Executor[K]) drain(key K) {
	defer e.wg.Done()

	for {
		e.mu.Lock()
		head := e.queues[key][0]
		e.mu.Unlock()

		err := e.commit(head.cmd)

		e.mu.Lock()
		var failed []*queued[K]
		if err != nil {
			failed = e.queues[key]
			delete(e.queues, key)
			// undo runs under the lock so no Apply for this key interleaves
			for i := len(failed) - 1; i >= 0; i-- {
				failed[i].undo()
			}
		} else {
			e.queues[key] = e.queues[key][1:]
			if len(e.queues[key]) == 0 {
				delete(e.queues, key)
			}
		}
		more := len(e.queues[key]) > 0
		e.mu.Unlock()

		if err != nil {
			e.report(key, failed, err)
			return
		}
		if !more {
			return
		}
	}
}

func (e *Executor[K]) commit(cmd Command[K]) error {
	ctx := e.ctx
	if e.commitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.commitTimeout)
		defer cancel()
	}
	return cmd.Commit(ctx)
}

func (e *Executor[K]) report(key K, failed []*queued[K], err error) {
	e.logger.Warn("mutation rolled back",
		"key", key,
		"name", failed[0].cmd.Name,
		"rolled_back", len(failed),
		"error", err,
	)

	e.done(Result[K]{Key: key, Name: failed[0].cmd.Name, Err: err})
	for _, q := range failed[1:] {
		e.done(Result[K]{Key: key, Name: q.cmd.Name, Err: ErrSuperseded})
	}
}
