// Package git drives the external git tool for the commit engine. It
// issues fixed command sequences and only ever inspects exit status.
package git

import (
	"context"
	"os/exec"
	"strings"

	"commitpulse/pkg/errors"
)

// Runner executes one external git command in a working directory.
// Implementations report nonzero exits as CommandError and failures to
// start the process as SpawnError.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) error
}

// ExecRunner invokes the real git binary via os/exec.
type ExecRunner struct{}

// NewExecRunner returns the production runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes `git <args...>` with the repository as working directory.
// Output is discarded; only the exit status matters.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	err := cmd.Run()
	if err == nil {
		return nil
	}

	name := strings.Join(args, " ")
	if exitErr, ok := err.(*exec.ExitError); ok {
		return errors.CommandError(name, exitErr.ExitCode(), err)
	}
	return errors.SpawnError(name, err)
}
