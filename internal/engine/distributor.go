// Package engine contains the commit distribution and execution core: it
// partitions a commit budget across repositories, drives the mutation and
// publish cycle for each allocated unit, and owns the single in-flight batch.
package engine

import (
	"context"
	"math/rand"
	"time"

	"commitpulse/internal/logsink"
	"commitpulse/pkg/errors"
	"commitpulse/pkg/models"
)

// AccessProbe reports whether a repository can currently publish.
type AccessProbe interface {
	Accessible(ctx context.Context, repoPath string) bool
}

// FileMutator applies one minimal change under a repository root and
// returns the mutated file path.
type FileMutator interface {
	Mutate(root string) (string, error)
}

// Publisher runs the stage/commit/push sequence against a repository.
type Publisher interface {
	Publish(ctx context.Context, repoPath, message string) error
}

// Recorder receives one notification per successful commit cycle.
type Recorder interface {
	RecordCommit(filePath string, at time.Time) error
}

// BatchResult summarizes one finished batch.
type BatchResult struct {
	Requested int
	Succeeded int
	Failed    int
	// TouchedRepos lists repositories that received at least one
	// successful commit, in processing order. The reset flow iterates it.
	TouchedRepos []string
}

// Distributor partitions a total commit count across accessible
// repositories and executes the allocated cycles strictly sequentially.
type Distributor struct {
	probe     AccessProbe
	mutator   FileMutator
	publisher Publisher
	recorder  Recorder
	log       *logsink.Sink
	messages  *MessageGenerator
	rng       *rand.Rand
	now       func() time.Time

	// OnCycle, when set, is invoked after every commit cycle with the
	// number of cycles executed so far. It runs on the batch worker
	// goroutine; implementations must do their own locking.
	OnCycle func(completed int, repoPath string, success bool)
}

// NewDistributor wires the distributor. The random source drives the
// shuffle, the per-repository allocation and the commit messages; inject a
// seeded source to make a batch deterministic.
func NewDistributor(probe AccessProbe, mutator FileMutator, publisher Publisher, recorder Recorder, log *logsink.Sink, rng *rand.Rand) *Distributor {
	return &Distributor{
		probe:     probe,
		mutator:   mutator,
		publisher: publisher,
		recorder:  recorder,
		log:       log,
		messages:  NewMessageGenerator(rng),
		rng:       rng,
		now:       time.Now,
	}
}

// Run executes one batch of total commits across the given repositories.
// Only enabled repositories that pass the access probe participate; if none
// do, the batch fails outright with no partial work. Cancellation is
// honored at the start of each repository and each commit cycle.
func (d *Distributor) Run(ctx context.Context, repos []models.Repository, total int) (*BatchResult, error) {
	result := &BatchResult{Requested: total}

	accessible := d.filterAccessible(ctx, repos)
	if len(accessible) == 0 {
		err := errors.New(errors.ErrCodeNoAccessibleRepos, "No accessible repositories, aborting batch").
			WithSuggestions(
				"Enable at least one repository with 'commitpulse repo toggle'",
				"Check that 'git push --dry-run' succeeds in each repository",
			)
		d.log.Append(err.Message)
		return result, err
	}

	// Random processing order. The allocation below is intentionally
	// front-loaded: earlier repositories tend to receive larger shares.
	d.rng.Shuffle(len(accessible), func(i, j int) {
		accessible[i], accessible[j] = accessible[j], accessible[i]
	})

	remaining := total
	for _, repo := range accessible {
		if remaining == 0 {
			break
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		alloc := 1 + d.rng.Intn(remaining)
		remaining -= alloc
		d.log.Appendf("Processing repository %s with %d commit(s)", repo.Path, alloc)

		touched := false
		for i := 0; i < alloc; i++ {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			ok := d.runCycle(ctx, repo.Path)
			if ok {
				result.Succeeded++
				// Record the repository immediately: a cancellation at
				// the next boundary must not lose it, the rollback flow
				// iterates this list.
				if !touched {
					touched = true
					result.TouchedRepos = append(result.TouchedRepos, repo.Path)
				}
			} else {
				// Failed cycles still consume budget: the unit was
				// charged when the allocation was drawn.
				result.Failed++
			}
			if d.OnCycle != nil {
				d.OnCycle(result.Succeeded+result.Failed, repo.Path, ok)
			}
		}
	}

	return result, nil
}

// filterAccessible keeps enabled repositories that pass the probe,
// preserving input order. Each skipped repository gets one log entry.
func (d *Distributor) filterAccessible(ctx context.Context, repos []models.Repository) []models.Repository {
	var accessible []models.Repository
	for _, repo := range repos {
		if !repo.Enabled {
			continue
		}
		if !d.probe.Accessible(ctx, repo.Path) {
			d.log.Appendf("Repository %s is not accessible for push, skipping", repo.Path)
			continue
		}
		accessible = append(accessible, repo)
	}
	return accessible
}

// runCycle performs one mutate-then-publish attempt. Failures are logged
// exactly once and skipped; there is no retry.
func (d *Distributor) runCycle(ctx context.Context, repoPath string) bool {
	filePath, err := d.mutator.Mutate(repoPath)
	if err != nil {
		d.log.Appendf("Commit cycle failed in %s: %v", repoPath, err)
		return false
	}

	message := d.messages.Generate(filePath)
	if err := d.publisher.Publish(ctx, repoPath, message); err != nil {
		d.log.Appendf("Commit cycle failed in %s: %v", repoPath, err)
		return false
	}

	if err := d.recorder.RecordCommit(filePath, d.now()); err != nil {
		// The commit itself landed; a stats persistence problem must not
		// fail the cycle.
		d.log.Appendf("Failed to persist statistics: %v", err)
	}
	d.log.Appendf("Committed to %s: %s", repoPath, message)
	return true
}
