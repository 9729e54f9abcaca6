package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"commitpulse/internal/config"
	"commitpulse/internal/git"
	"commitpulse/internal/stats"
	"commitpulse/internal/ui"
)

var statsVerbose bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show commit statistics",
	Run:   runStats,
}

var statsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all commit statistics",
	Run:   runStatsReset,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsResetCmd)

	statsCmd.Flags().BoolVarP(&statsVerbose, "verbose", "v", false, "Include recent commits per repository")
}

func runStats(cmd *cobra.Command, args []string) {
	tracker, err := stats.OpenTracker(stats.DefaultStatsFile())
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load statistics: %w", err))
		return
	}

	summary := tracker.Summarize()
	snap := tracker.Snapshot()

	ui.ShowHeader("Commit Statistics")

	if summary.TotalCommits == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No commits recorded yet. Run 'commitpulse run' to start a batch.")
		return
	}

	overview := ui.NewTable()
	overview.AddHeader("METRIC", "VALUE")
	overview.AddRow("Total commits", fmt.Sprintf("%d", summary.TotalCommits))
	overview.AddRow("Files touched", fmt.Sprintf("%d", summary.UniqueFiles))
	overview.AddRow("Current streak", fmt.Sprintf("%d day(s)", summary.CurrentStreak))
	overview.AddRow("Longest streak", fmt.Sprintf("%d day(s)", summary.LongestStreak))
	if snap.LastCommit != nil {
		overview.AddRow("Last commit", snap.LastCommit.Format("2006-01-02 15:04:05"))
	}
	if summary.MeanGap > 0 {
		overview.AddRow("Mean gap", summary.MeanGap.Round(time.Second).String())
		overview.AddRow("Median gap", summary.MedianGap.Round(time.Second).String())
	}
	overview.Render()

	fmt.Fprintln(cmd.OutOrStdout())

	files := make([]string, 0, len(snap.FileCommits))
	for file := range snap.FileCommits {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		if snap.FileCommits[files[i]] != snap.FileCommits[files[j]] {
			return snap.FileCommits[files[i]] > snap.FileCommits[files[j]]
		}
		return files[i] < files[j]
	})

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"File", "Commits"})
	table.SetBorder(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, file := range files {
		table.Append([]string{file, fmt.Sprintf("%d", snap.FileCommits[file])})
	}
	table.Render()

	if statsVerbose {
		showRecentCommits(cmd.OutOrStdout())
	}
}

// showRecentCommits reads each enabled repository's history without
// invoking the external git binary.
func showRecentCommits(w io.Writer) {
	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	for _, repo := range store.Enabled() {
		commits, err := git.RecentCommits(repo.Path, 5)
		if err != nil {
			ui.ShowWarning(fmt.Sprintf("Cannot read history of %s: %v", repo.Path, err))
			continue
		}

		fmt.Fprintf(w, "\n%s\n", ui.ColorBold(repo.Path))
		for _, c := range commits {
			fmt.Fprintf(w, "  %s %s %s\n",
				ui.ColorDim(c.Hash[:8]),
				c.Date.Format("2006-01-02"),
				c.Message,
			)
		}
	}
}

func runStatsReset(cmd *cobra.Command, args []string) {
	tracker, err := stats.OpenTracker(stats.DefaultStatsFile())
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load statistics: %w", err))
		return
	}

	if err := tracker.Reset(); err != nil {
		ui.ShowError(err)
		return
	}
	ui.ShowSuccess("Statistics reset")
}
