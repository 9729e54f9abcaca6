package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Repository errors (1xxx)
	ErrCodeRepoNotFound      ErrorCode = "CPLS1001"
	ErrCodeRepoNotAccessible ErrorCode = "CPLS1002"
	ErrCodeNoAccessibleRepos ErrorCode = "CPLS1003"
	ErrCodeDuplicateRepo     ErrorCode = "CPLS1004"
	ErrCodeNotAWorkTree      ErrorCode = "CPLS1005"

	// Mutation errors (2xxx)
	ErrCodeNoSupportedFiles ErrorCode = "CPLS2001"
	ErrCodeFileIO           ErrorCode = "CPLS2002"

	// Process errors (3xxx)
	ErrCodeCommandFailed ErrorCode = "CPLS3001"
	ErrCodeProcessSpawn  ErrorCode = "CPLS3002"

	// Configuration errors (4xxx)
	ErrCodeConfigNotFound ErrorCode = "CPLS4001"
	ErrCodeConfigInvalid  ErrorCode = "CPLS4002"

	// Batch errors (5xxx)
	ErrCodeBatchRunning ErrorCode = "CPLS5001"
	ErrCodeInvalidState ErrorCode = "CPLS5002"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "CPLS6001"
	ErrCodeInvalidInput     ErrorCode = "CPLS6002"

	// System errors (9xxx)
	ErrCodeInternal ErrorCode = "CPLS9001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit some properties
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// CommandError creates an error for an external command that exited nonzero
func CommandError(command string, exitStatus int, cause error) *AppError {
	return Wrap(cause, ErrCodeCommandFailed, fmt.Sprintf("Command 'git %s' failed with exit status %d", command, exitStatus)).
		WithContext("command", command).
		WithContext("exit_status", exitStatus)
}

// SpawnError creates an error for an external command that could not be started
func SpawnError(command string, cause error) *AppError {
	return Wrap(cause, ErrCodeProcessSpawn, fmt.Sprintf("Failed to start command 'git %s'", command)).
		WithContext("command", command).
		WithSuggestions(
			"Verify git is installed and on PATH",
			"Check the repository path exists",
		)
}

// NoSupportedFilesError creates an error for a repository with no mutable files
func NoSupportedFilesError(repoPath string) *AppError {
	return New(ErrCodeNoSupportedFiles, "No files with supported extensions found").
		WithContext("repository", repoPath).
		WithSuggestions(
			"Supported extensions: .py .sql .cpp .hpp .cxx .h .kt .kts .swift",
			"Disable the repository with 'commitpulse repo toggle'",
		)
}

// FileIOError creates an error for a failed file read or write
func FileIOError(message string, path string, cause error) *AppError {
	return Wrap(cause, ErrCodeFileIO, message).
		WithContext("file", path)
}

// ValidationError creates a validation error
func ValidationError(field string, value interface{}, reason string) *AppError {
	return New(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity(SeverityWarning).
		AsRecoverable()
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
