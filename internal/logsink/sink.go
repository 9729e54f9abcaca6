// Package logsink provides the append-only activity log shared between the
// batch worker and the presentation layer.
package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"commitpulse/internal/common"
	"commitpulse/pkg/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Sink is an order-preserving, append-only message stream. Appends are
// serialized; Entries returns a snapshot so readers never observe a
// partially-written entry.
type Sink struct {
	mu      sync.Mutex
	entries []models.LogEntry
	file    *os.File
	now     func() time.Time
}

// New returns an in-memory sink.
func New() *Sink {
	return &Sink{now: time.Now}
}

// NewWithFile returns a sink that mirrors every entry to the given file.
// The file is opened append-only; a failure to open is returned so the
// caller can decide whether to continue without persistence.
func NewWithFile(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), common.DirPermissionSecure); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, common.FilePermissionSecure)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity log: %w", err)
	}
	return &Sink{file: f, now: time.Now}, nil
}

// DefaultLogFile is where the activity log lives unless overridden.
func DefaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".commitpulse", "activity.log")
}

// Append adds one entry to the log and returns it.
func (s *Sink) Append(message string) models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.LogEntry{
		ID:        common.NewID(),
		Message:   message,
		Timestamp: s.now().Format(timestampLayout),
	}
	s.entries = append(s.entries, entry)

	if s.file != nil {
		// Mirror failures are swallowed: the in-memory log is the
		// source of truth and losing the mirror must not fail a batch.
		fmt.Fprintf(s.file, "%s - %s\n", entry.Timestamp, entry.Message)
	}
	return entry
}

// Appendf formats and appends one entry.
func (s *Sink) Appendf(format string, args ...interface{}) models.LogEntry {
	return s.Append(fmt.Sprintf(format, args...))
}

// Entries returns a copy of the log in insertion order.
func (s *Sink) Entries() []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries appended so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close releases the mirror file, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
