package stats

import (
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"
)

// Summary condenses the statistics for the report view.
type Summary struct {
	TotalCommits  int
	UniqueFiles   int
	BusiestFile   string
	BusiestCount  int
	MeanGap       time.Duration
	MedianGap     time.Duration
	CurrentStreak int
	LongestStreak int
}

// Summarize computes a display summary from the current snapshot.
// Cadence gaps are only meaningful with at least two commits.
func (t *Tracker) Summarize() Summary {
	snap := t.Snapshot()

	s := Summary{
		TotalCommits:  snap.TotalCommits,
		UniqueFiles:   len(snap.FileCommits),
		CurrentStreak: snap.Streak.Current,
		LongestStreak: snap.Streak.Longest,
	}

	for file, count := range snap.FileCommits {
		if count > s.BusiestCount || (count == s.BusiestCount && file < s.BusiestFile) {
			s.BusiestFile = file
			s.BusiestCount = count
		}
	}

	if len(snap.CommitHistory) < 2 {
		return s
	}

	history := append([]time.Time(nil), snap.CommitHistory...)
	sort.Slice(history, func(i, j int) bool { return history[i].Before(history[j]) })

	gaps := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		gaps = append(gaps, history[i].Sub(history[i-1]).Seconds())
	}

	if mean, err := mstats.Mean(gaps); err == nil {
		s.MeanGap = time.Duration(mean * float64(time.Second))
	}
	if median, err := mstats.Median(gaps); err == nil {
		s.MedianGap = time.Duration(median * float64(time.Second))
	}
	return s
}
