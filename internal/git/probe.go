package git

import "context"

// Probe checks whether a repository can currently publish.
type Probe struct {
	runner Runner
}

// NewProbe creates a probe over the given runner.
func NewProbe(runner Runner) *Probe {
	return &Probe{runner: runner}
}

// Accessible runs a non-mutating dry-run push. Every kind of failure,
// including a failure to spawn the process, means "not accessible".
func (p *Probe) Accessible(ctx context.Context, repoPath string) bool {
	return p.runner.Run(ctx, repoPath, "push", "--dry-run") == nil
}
