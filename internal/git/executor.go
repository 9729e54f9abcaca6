package git

import (
	"context"
)

// Executor runs the fixed command sequences the engine needs. Sequences
// stop at the first failing command; nothing is retried.
type Executor struct {
	runner Runner
}

// NewExecutor creates an executor over the given runner.
func NewExecutor(runner Runner) *Executor {
	return &Executor{runner: runner}
}

// Publish stages everything, commits with the given message and pushes.
func (e *Executor) Publish(ctx context.Context, repoPath, message string) error {
	steps := [][]string{
		{"add", "."},
		{"commit", "-m", message},
		{"push"},
	}
	return e.runSequence(ctx, repoPath, steps)
}

// Reset discards local changes back to HEAD and force-pushes. It is
// all-or-nothing per repository: the first failing command stops the
// sequence with no rollback of earlier steps.
func (e *Executor) Reset(ctx context.Context, repoPath string) error {
	steps := [][]string{
		{"reset", "--hard", "HEAD"},
		{"push", "--force"},
	}
	return e.runSequence(ctx, repoPath, steps)
}

func (e *Executor) runSequence(ctx context.Context, repoPath string, steps [][]string) error {
	for _, args := range steps {
		if err := e.runner.Run(ctx, repoPath, args...); err != nil {
			return err
		}
	}
	return nil
}
