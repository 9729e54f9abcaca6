// Package stats aggregates commit statistics across batches and persists
// them between runs.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"commitpulse/internal/common"
	"commitpulse/pkg/models"
)

const dateLayout = "2006-01-02"

// Tracker owns the commit statistics. All mutation goes through its mutex;
// readers only ever see deep copies.
type Tracker struct {
	mu    sync.Mutex
	stats *models.CommitStatistics
	file  string
	now   func() time.Time
}

// NewTracker returns an in-memory tracker (no persistence).
func NewTracker() *Tracker {
	return &Tracker{
		stats: models.NewCommitStatistics(),
		now:   time.Now,
	}
}

// OpenTracker loads persisted statistics from the given file, starting
// empty if the file does not exist yet.
func OpenTracker(file string) (*Tracker, error) {
	t := NewTracker()
	t.file = file

	data, err := os.ReadFile(file) // #nosec G304 - path comes from our own config dir
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	var loaded models.CommitStatistics
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats file: %w", err)
	}
	if loaded.FileCommits == nil {
		loaded.FileCommits = make(map[string]int)
	}
	t.stats = &loaded
	return t, nil
}

// DefaultStatsFile is where statistics live unless overridden.
func DefaultStatsFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".commitpulse", "stats.json")
}

// RecordCommit registers one successful commit cycle against the mutated
// file. Totals, per-file counts, history, last-commit date and the streak
// all move together under one lock acquisition.
func (t *Tracker) RecordCommit(filePath string, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.TotalCommits++
	t.stats.FileCommits[filePath]++
	t.stats.CommitHistory = append(t.stats.CommitHistory, at)
	t.stats.LastCommit = &at
	t.updateStreak(at)

	return t.save()
}

// updateStreak extends or resets the consecutive-day counter. Caller holds the lock.
func (t *Tracker) updateStreak(at time.Time) {
	today := at.Format(dateLayout)

	if t.stats.Streak.LastDate == "" {
		t.stats.Streak.Current = 1
	} else if t.stats.Streak.LastDate != today {
		last, err := time.Parse(dateLayout, t.stats.Streak.LastDate)
		if err != nil {
			t.stats.Streak.Current = 1
		} else {
			// Compare calendar dates, not wall-clock instants: both
			// sides are anchored to midnight UTC so the day gap is
			// exact regardless of the commit's zone.
			cur := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
			days := int(cur.Sub(last).Hours() / 24)
			if days == 1 {
				t.stats.Streak.Current++
			} else {
				t.stats.Streak.Current = 1
			}
		}
	}

	if t.stats.Streak.Current > t.stats.Streak.Longest {
		t.stats.Streak.Longest = t.stats.Streak.Current
	}
	t.stats.Streak.LastDate = today
}

// Reset discards all statistics. The batch runner refuses to call this
// while a batch is in flight.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats = models.NewCommitStatistics()
	return t.save()
}

// Snapshot returns a deep copy safe for concurrent display.
func (t *Tracker) Snapshot() models.CommitStatistics {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := models.CommitStatistics{
		TotalCommits: t.stats.TotalCommits,
		FileCommits:  make(map[string]int, len(t.stats.FileCommits)),
		Streak:       t.stats.Streak,
	}
	for k, v := range t.stats.FileCommits {
		out.FileCommits[k] = v
	}
	out.CommitHistory = append([]time.Time(nil), t.stats.CommitHistory...)
	if t.stats.LastCommit != nil {
		last := *t.stats.LastCommit
		out.LastCommit = &last
	}
	return out
}

// save writes the stats file if persistence is configured. Caller holds the lock.
func (t *Tracker) save() error {
	if t.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.file), common.DirPermissionSecure); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}
	data, err := json.MarshalIndent(t.stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := os.WriteFile(t.file, data, common.FilePermissionSecure); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
