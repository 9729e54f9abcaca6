package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand(t *testing.T) {
	cmd := rootCmd
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.NoError(t, err)

	output := b.String()
	assert.Contains(t, output, "commitpulse")
	assert.Contains(t, output, "commit")
}

func TestRootCommandHelp(t *testing.T) {
	cmd := rootCmd
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	assert.NoError(t, err)

	output := b.String()
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "run")
	assert.Contains(t, output, "repo")
	assert.Contains(t, output, "stats")
	assert.Contains(t, output, "reset")
	assert.Contains(t, output, "log")
}

func TestInvalidCommand(t *testing.T) {
	cmd := rootCmd
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"invalid-command"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestVersionCommand(t *testing.T) {
	b := bytes.NewBufferString("")
	versionCmd.SetOut(b)

	versionCmd.Run(versionCmd, []string{})

	assert.Contains(t, b.String(), "commitpulse")
	assert.Contains(t, b.String(), Version)
}
