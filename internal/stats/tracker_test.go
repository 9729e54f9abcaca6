package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCommit(t *testing.T) {
	tr := NewTracker()

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tr.RecordCommit("/repo/a/main.py", at))
	require.NoError(t, tr.RecordCommit("/repo/a/main.py", at.Add(time.Minute)))
	require.NoError(t, tr.RecordCommit("/repo/b/query.sql", at.Add(2*time.Minute)))

	snap := tr.Snapshot()
	assert.Equal(t, 3, snap.TotalCommits)
	assert.Equal(t, 2, snap.FileCommits["/repo/a/main.py"])
	assert.Equal(t, 1, snap.FileCommits["/repo/b/query.sql"])
	require.NotNil(t, snap.LastCommit)
	assert.Equal(t, at.Add(2*time.Minute), *snap.LastCommit)
	assert.Len(t, snap.CommitHistory, 3)
}

func TestReset(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.RecordCommit("/repo/a/main.py", time.Now()))
	require.NoError(t, tr.Reset())

	snap := tr.Snapshot()
	assert.Zero(t, snap.TotalCommits)
	assert.Empty(t, snap.FileCommits)
	assert.Empty(t, snap.CommitHistory)
	assert.Nil(t, snap.LastCommit)
	assert.Zero(t, snap.Streak.Current)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.RecordCommit("/repo/a/main.py", time.Now()))

	snap := tr.Snapshot()
	snap.FileCommits["/repo/a/main.py"] = 999
	snap.TotalCommits = 999

	fresh := tr.Snapshot()
	assert.Equal(t, 1, fresh.TotalCommits)
	assert.Equal(t, 1, fresh.FileCommits["/repo/a/main.py"])
}

func TestStreaks(t *testing.T) {
	tr := NewTracker()

	day1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day5 := day1.AddDate(0, 0, 4)

	require.NoError(t, tr.RecordCommit("/repo/a.py", day1))
	assert.Equal(t, 1, tr.Snapshot().Streak.Current)

	// Same day does not extend the streak
	require.NoError(t, tr.RecordCommit("/repo/a.py", day1.Add(time.Hour)))
	assert.Equal(t, 1, tr.Snapshot().Streak.Current)

	// Next day extends it
	require.NoError(t, tr.RecordCommit("/repo/a.py", day2))
	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.Streak.Current)
	assert.Equal(t, 2, snap.Streak.Longest)

	// A gap resets current but keeps longest
	require.NoError(t, tr.RecordCommit("/repo/a.py", day5))
	snap = tr.Snapshot()
	assert.Equal(t, 1, snap.Streak.Current)
	assert.Equal(t, 2, snap.Streak.Longest)
}

func TestStreaksAcrossZones(t *testing.T) {
	tr := NewTracker()
	zone := time.FixedZone("UTC+2", 2*60*60)

	// Both commits land shortly after local midnight on consecutive
	// local days; in UTC they are less than 24 hours apart.
	day1 := time.Date(2025, 6, 1, 0, 30, 0, 0, zone)
	day2 := time.Date(2025, 6, 2, 0, 30, 0, 0, zone)

	require.NoError(t, tr.RecordCommit("/repo/a.py", day1))
	require.NoError(t, tr.RecordCommit("/repo/a.py", day2))

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.Streak.Current)
	assert.Equal(t, 2, snap.Streak.Longest)
}

func TestPersistenceRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stats.json")

	tr, err := OpenTracker(file)
	require.NoError(t, err)

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tr.RecordCommit("/repo/a/main.py", at))
	require.NoError(t, tr.RecordCommit("/repo/b/util.h", at.Add(time.Minute)))

	reopened, err := OpenTracker(file)
	require.NoError(t, err)

	snap := reopened.Snapshot()
	assert.Equal(t, 2, snap.TotalCommits)
	assert.Equal(t, 1, snap.FileCommits["/repo/a/main.py"])
	assert.Equal(t, 1, snap.FileCommits["/repo/b/util.h"])
	assert.Len(t, snap.CommitHistory, 2)
}

func TestOpenTrackerMissingFile(t *testing.T) {
	tr, err := OpenTracker(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Zero(t, tr.Snapshot().TotalCommits)
}

func TestSummarize(t *testing.T) {
	tr := NewTracker()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tr.RecordCommit("/repo/hot.py", base))
	require.NoError(t, tr.RecordCommit("/repo/hot.py", base.Add(10*time.Second)))
	require.NoError(t, tr.RecordCommit("/repo/cold.sql", base.Add(30*time.Second)))

	s := tr.Summarize()
	assert.Equal(t, 3, s.TotalCommits)
	assert.Equal(t, 2, s.UniqueFiles)
	assert.Equal(t, "/repo/hot.py", s.BusiestFile)
	assert.Equal(t, 2, s.BusiestCount)
	assert.Equal(t, 15*time.Second, s.MeanGap)
	assert.Equal(t, 15*time.Second, s.MedianGap)
}

func TestSummarizeSingleCommit(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.RecordCommit("/repo/only.py", time.Now()))

	s := tr.Summarize()
	assert.Equal(t, 1, s.TotalCommits)
	assert.Zero(t, s.MeanGap)
	assert.Zero(t, s.MedianGap)
}
