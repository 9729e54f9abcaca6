package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "basic error",
			err:      New(ErrCodeCommandFailed, "Command failed"),
			expected: "[CPLS3001] ERROR: Command failed",
		},
		{
			name: "error with suggestions",
			err: New(ErrCodeCommandFailed, "Command failed").
				WithSuggestions("Check git remote", "Verify repository path"),
			expected: "[CPLS3001] ERROR: Command failed\nSuggestions:\n  1. Check git remote\n  2. Verify repository path",
		},
		{
			name: "error with context",
			err: New(ErrCodeCommandFailed, "Command failed").
				WithContext("command", "push").
				WithContext("exit_status", 1),
			expected: "[CPLS3001] ERROR: Command failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	baseErr := fmt.Errorf("exit status 1")

	appErr := Wrap(baseErr, ErrCodeCommandFailed, "Failed to push changes")

	if appErr.Cause != baseErr {
		t.Error("Wrapped error should contain original error as cause")
	}

	if appErr.Code != ErrCodeCommandFailed {
		t.Errorf("Expected code %s, got %s", ErrCodeCommandFailed, appErr.Code)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "should vanish") != nil {
		t.Error("Wrapping nil should return nil")
	}
}

func TestCommandError(t *testing.T) {
	err := CommandError("commit", 1, fmt.Errorf("exit status 1"))

	if err.Code != ErrCodeCommandFailed {
		t.Errorf("Expected code %s, got %s", ErrCodeCommandFailed, err.Code)
	}
	if err.Context["command"] != "commit" {
		t.Errorf("Expected command context 'commit', got %v", err.Context["command"])
	}
	if err.Context["exit_status"] != 1 {
		t.Errorf("Expected exit_status context 1, got %v", err.Context["exit_status"])
	}
}

func TestGetErrorCode(t *testing.T) {
	appErr := New(ErrCodeNoSupportedFiles, "nothing to mutate")
	if got := GetErrorCode(appErr); got != ErrCodeNoSupportedFiles {
		t.Errorf("Expected %s, got %s", ErrCodeNoSupportedFiles, got)
	}

	plain := fmt.Errorf("plain error")
	if got := GetErrorCode(plain); got != ErrCodeInternal {
		t.Errorf("Expected %s for plain error, got %s", ErrCodeInternal, got)
	}
}

func TestIsRecoverable(t *testing.T) {
	err := ValidationError("commits", 0, "must be at least 1")
	if !IsRecoverable(err) {
		t.Error("Validation errors should be recoverable")
	}
	if IsRecoverable(fmt.Errorf("plain")) {
		t.Error("Plain errors should not be recoverable")
	}
}

func TestErrorIsByCode(t *testing.T) {
	a := New(ErrCodeNoAccessibleRepos, "none accessible")
	b := New(ErrCodeNoAccessibleRepos, "different message")

	if !errors.Is(a, b) {
		t.Error("AppErrors with the same code should match via errors.Is")
	}
}
