package engine

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitpulse/internal/logsink"
	"commitpulse/internal/stats"
	"commitpulse/pkg/errors"
)

// blockingPublisher parks every publish until released, so tests can
// observe the Running state deterministically.
type blockingPublisher struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingPublisher() *blockingPublisher {
	return &blockingPublisher{
		started: make(chan struct{}, 100),
		release: make(chan struct{}),
	}
}

func (b *blockingPublisher) Publish(_ context.Context, _, _ string) error {
	b.started <- struct{}{}
	<-b.release
	return nil
}

func newTestRunner(publisher Publisher, sink *logsink.Sink) (*Runner, *stats.Tracker) {
	tracker := stats.NewTracker()
	rng := rand.New(rand.NewSource(1))
	d := NewDistributor(&fakeProbe{}, &fakeMutator{}, publisher, tracker, sink, rng)
	return NewRunner(d, tracker, sink, rand.New(rand.NewSource(2))), tracker
}

func TestRunnerCompletesBatch(t *testing.T) {
	sink := logsink.New()
	runner, tracker := newTestRunner(&fakePublisher{}, sink)

	require.NoError(t, runner.Start(repoList("/repo/a", "/repo/b"), 5))
	runner.Wait()

	state, result := runner.LastOutcome()
	assert.Equal(t, StateCompleted, state)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.Succeeded)
	assert.Equal(t, 5, tracker.Snapshot().TotalCommits)
	assert.False(t, runner.Running())

	var summary bool
	for _, entry := range sink.Entries() {
		if strings.Contains(entry.Message, "Batch completed") {
			summary = true
		}
	}
	assert.True(t, summary, "completion must be logged with the final total")
}

func TestRunnerRejectsConcurrentStart(t *testing.T) {
	sink := logsink.New()
	publisher := newBlockingPublisher()
	runner, _ := newTestRunner(publisher, sink)

	require.NoError(t, runner.Start(repoList("/repo/a"), 2))
	<-publisher.started
	assert.True(t, runner.Running())

	err := runner.Start(repoList("/repo/a"), 2)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBatchRunning, errors.GetErrorCode(err))

	close(publisher.release)
	runner.Wait()
	assert.False(t, runner.Running())
}

func TestRunnerCancellation(t *testing.T) {
	sink := logsink.New()
	publisher := newBlockingPublisher()
	runner, _ := newTestRunner(publisher, sink)

	require.NoError(t, runner.Start(repoList("/repo/a", "/repo/b", "/repo/c"), 10))
	<-publisher.started

	runner.Cancel()
	close(publisher.release)
	runner.Wait()

	state, _ := runner.LastOutcome()
	assert.Equal(t, StateCancelled, state)
	assert.False(t, runner.Running())

	var cancelled bool
	for _, entry := range sink.Entries() {
		if strings.Contains(entry.Message, "Batch cancelled") {
			cancelled = true
		}
	}
	assert.True(t, cancelled)
}

func TestRunnerCancelWhileIdle(t *testing.T) {
	sink := logsink.New()
	runner, tracker := newTestRunner(&fakePublisher{}, sink)

	before := tracker.Snapshot()
	runner.Cancel()

	entries := sink.Entries()
	require.Len(t, entries, 1, "idle cancel produces exactly one log entry")
	assert.Contains(t, entries[0].Message, "no batch is running")
	assert.Equal(t, before.TotalCommits, tracker.Snapshot().TotalCommits)
}

func TestRunnerNoAccessibleRepositoriesFails(t *testing.T) {
	sink := logsink.New()
	tracker := stats.NewTracker()
	probe := &fakeProbe{inaccessible: map[string]bool{"/repo/a": true}}
	d := NewDistributor(probe, &fakeMutator{}, &fakePublisher{}, tracker, sink, rand.New(rand.NewSource(1)))
	runner := NewRunner(d, tracker, sink, rand.New(rand.NewSource(2)))

	require.NoError(t, runner.Start(repoList("/repo/a"), 3))
	runner.Wait()

	state, result := runner.LastOutcome()
	assert.Equal(t, StateFailed, state)
	assert.Zero(t, result.Succeeded)
	assert.Zero(t, tracker.Snapshot().TotalCommits)
	assert.False(t, runner.Running())
}

func TestRunnerRandomizedTotalWithinBounds(t *testing.T) {
	sink := logsink.New()
	runner, tracker := newTestRunner(&fakePublisher{}, sink)

	require.NoError(t, runner.Start(repoList("/repo/a"), 0))
	runner.Wait()

	total := tracker.Snapshot().TotalCommits
	assert.GreaterOrEqual(t, total, 1)
	assert.LessOrEqual(t, total, DefaultMaxCommits)
}

func TestRunnerRejectsNegativeTotal(t *testing.T) {
	runner, _ := newTestRunner(&fakePublisher{}, logsink.New())

	err := runner.Start(repoList("/repo/a"), -1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.GetErrorCode(err))
	assert.False(t, runner.Running())
}

func TestRunnerResetStats(t *testing.T) {
	sink := logsink.New()
	runner, tracker := newTestRunner(&fakePublisher{}, sink)

	require.NoError(t, runner.Start(repoList("/repo/a"), 2))
	runner.Wait()
	require.Equal(t, 2, tracker.Snapshot().TotalCommits)

	require.NoError(t, runner.ResetStats())
	assert.Zero(t, tracker.Snapshot().TotalCommits)
}

func TestRunnerResetStatsWhileRunning(t *testing.T) {
	publisher := newBlockingPublisher()
	runner, _ := newTestRunner(publisher, logsink.New())

	require.NoError(t, runner.Start(repoList("/repo/a"), 2))
	<-publisher.started

	err := runner.ResetStats()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBatchRunning, errors.GetErrorCode(err))

	close(publisher.release)
	runner.Wait()
}

func TestRunnerCanRunSequentialBatches(t *testing.T) {
	sink := logsink.New()
	runner, tracker := newTestRunner(&fakePublisher{}, sink)

	require.NoError(t, runner.Start(repoList("/repo/a"), 2))
	runner.Wait()
	require.NoError(t, runner.Start(repoList("/repo/a"), 3))
	runner.Wait()

	assert.Equal(t, 5, tracker.Snapshot().TotalCommits)

	state, _ := runner.LastOutcome()
	assert.Equal(t, StateCompleted, state)
}

func TestRunnerWaitWhileIdleReturnsImmediately(t *testing.T) {
	runner, _ := newTestRunner(&fakePublisher{}, logsink.New())

	done := make(chan struct{})
	go func() {
		runner.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait should return immediately when no batch ran")
	}
}
