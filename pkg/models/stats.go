package models

import "time"

// CommitStatistics aggregates the outcome of successful commit cycles.
// TotalCommits never decreases except through an explicit reset.
type CommitStatistics struct {
	TotalCommits  int            `json:"total_commits"`
	FileCommits   map[string]int `json:"file_commits"`
	LastCommit    *time.Time     `json:"last_commit,omitempty"`
	CommitHistory []time.Time    `json:"commit_history"`
	Streak        CommitStreak   `json:"commit_streak"`
}

// CommitStreak tracks runs of consecutive calendar days with at least one commit.
type CommitStreak struct {
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"last_commit_date,omitempty"`
}

// NewCommitStatistics returns an empty, initialized statistics value.
func NewCommitStatistics() *CommitStatistics {
	return &CommitStatistics{
		FileCommits: make(map[string]int),
	}
}

// LogEntry is one line of the append-only activity log. Insertion order is
// display-significant; consumers reverse it for most-recent-first output.
type LogEntry struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
