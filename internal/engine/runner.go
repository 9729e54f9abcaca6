package engine

import (
	"context"
	"math/rand"
	"sync"

	"commitpulse/internal/logsink"
	"commitpulse/internal/stats"
	"commitpulse/pkg/errors"
	"commitpulse/pkg/models"
)

// State is the batch lifecycle state. Terminal states are transient:
// every finished batch settles back to Idle.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// DefaultMaxCommits bounds the randomized commit count when none is given.
const DefaultMaxCommits = 50

// Runner owns the single in-flight batch. All state transitions go
// through its mutex; the batch itself runs on one background goroutine.
type Runner struct {
	mu         sync.Mutex
	state      State
	lastState  State
	cancel     context.CancelFunc
	done       chan struct{}
	lastResult *BatchResult

	distributor *Distributor
	tracker     *stats.Tracker
	log         *logsink.Sink
	rng         *rand.Rand
}

// NewRunner creates an idle runner.
func NewRunner(distributor *Distributor, tracker *stats.Tracker, log *logsink.Sink, rng *rand.Rand) *Runner {
	return &Runner{
		state:       StateIdle,
		lastState:   StateIdle,
		distributor: distributor,
		tracker:     tracker,
		log:         log,
		rng:         rng,
	}
}

// Start launches a batch of total commits over the given repositories.
// A total of zero picks a random count in [1, DefaultMaxCommits]. Starting
// while a batch is running is a logged no-op.
func (r *Runner) Start(repos []models.Repository, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRunning {
		r.log.Append("Batch already running, start request ignored")
		return errors.New(errors.ErrCodeBatchRunning, "A batch is already running")
	}
	if total < 0 {
		return errors.ValidationError("commits", total, "must be at least 1")
	}
	if total == 0 {
		total = 1 + r.rng.Intn(DefaultMaxCommits)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.state = StateRunning
	r.cancel = cancel
	r.done = make(chan struct{})
	r.log.Appendf("Starting batch of %d commit(s) across %d repositories", total, len(repos))

	go r.work(ctx, repos, total)
	return nil
}

// work runs the batch to completion and settles the state machine.
func (r *Runner) work(ctx context.Context, repos []models.Repository, total int) {
	result, err := r.distributor.Run(ctx, repos, total)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastResult = result
	switch {
	case ctx.Err() != nil:
		r.lastState = StateCancelled
		r.log.Appendf("Batch cancelled after %d successful commit(s)", result.Succeeded)
	case err != nil:
		r.lastState = StateFailed
		r.log.Appendf("Batch failed: %d of %d commit(s) succeeded", result.Succeeded, result.Requested)
	default:
		r.lastState = StateCompleted
		r.log.Appendf("Batch completed: %d of %d commit(s) succeeded, %d total commits recorded",
			result.Succeeded, result.Requested, r.tracker.Snapshot().TotalCommits)
	}

	r.state = StateIdle
	r.cancel = nil
	close(r.done)
}

// Cancel requests cooperative cancellation of the in-flight batch. The
// distributor honors it at the next iteration boundary; an in-flight git
// sequence runs to completion first. Cancelling while idle is a no-op
// that still produces exactly one log entry.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		r.log.Append("Cancel requested but no batch is running")
		return
	}
	r.log.Append("Cancellation requested, stopping at next commit boundary")
	r.cancel()
}

// Wait blocks until the current batch finishes. Returns immediately when idle.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether a batch is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == StateRunning
}

// LastOutcome returns the terminal state and result of the most recently
// finished batch.
func (r *Runner) LastOutcome() (State, *BatchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastState, r.lastResult
}

// ResetStats clears the statistics. Only valid while no batch is running.
func (r *Runner) ResetStats() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRunning {
		return errors.New(errors.ErrCodeBatchRunning, "Cannot reset statistics while a batch is running")
	}
	if err := r.tracker.Reset(); err != nil {
		return err
	}
	r.log.Append("Statistics reset")
	return nil
}
