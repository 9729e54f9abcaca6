package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"commitpulse/internal/config"
	"commitpulse/internal/engine"
	"commitpulse/internal/git"
	"commitpulse/internal/logsink"
	"commitpulse/internal/mutate"
	"commitpulse/internal/stats"
	"commitpulse/internal/ui"
)

var (
	runCommits int
	runSeed    int64
	runKeep    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one commit batch across the enabled repositories",
	Long: `Run distributes a total commit count across the enabled repositories
that currently accept pushes, mutating one file per commit and publishing
each change. Press Ctrl-C to cancel at the next commit boundary.`,
	Run: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runCommits, "commits", "c", 0, "Total commits to distribute (default: random 1-50)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Seed for the random source (default: time-based)")
	runCmd.Flags().BoolVarP(&runKeep, "keep", "k", false, "Keep published changes without asking")
}

func runRun(cmd *cobra.Command, args []string) {
	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	repos := store.List()
	if len(repos) == 0 {
		ui.ShowWarning("No repositories configured. Use 'commitpulse repo add' first.")
		return
	}

	sink, err := logsink.NewWithFile(logsink.DefaultLogFile())
	if err != nil {
		ui.ShowWarning(fmt.Sprintf("Activity log unavailable: %v", err))
		sink = logsink.New()
	}
	defer sink.Close()

	tracker, err := stats.OpenTracker(stats.DefaultStatsFile())
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load statistics: %w", err))
		return
	}

	rng := rand.New(rand.NewSource(resolveSeed()))

	runner := git.NewExecRunner()
	distributor := engine.NewDistributor(
		git.NewProbe(runner),
		mutate.NewMutator(rng),
		git.NewExecutor(runner),
		tracker,
		sink,
		rng,
	)

	total := resolveTotal()
	if total == 0 {
		total = 1 + rng.Intn(engine.DefaultMaxCommits)
	}

	progress := ui.NewBatchProgress(total)
	distributor.OnCycle = progress.Update

	batch := engine.NewRunner(distributor, tracker, sink, rng)

	ui.ShowHeader("CommitPulse")
	ui.ShowInfo(fmt.Sprintf("Distributing %d commit(s) across %d repositories", total, len(repos)))

	if err := batch.Start(repos, total); err != nil {
		ui.ShowError(err)
		return
	}

	// Ctrl-C requests cooperative cancellation; a second Ctrl-C kills us.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		signal.Stop(sigs)
		batch.Cancel()
	}()

	batch.Wait()
	signal.Stop(sigs)
	progress.Finish()

	state, result := batch.LastOutcome()
	switch state {
	case engine.StateCompleted:
		ui.ShowSuccess(fmt.Sprintf("Batch completed: %d of %d commit(s) published", result.Succeeded, result.Requested))
	case engine.StateCancelled:
		ui.ShowWarning(fmt.Sprintf("Batch cancelled after %d commit(s)", result.Succeeded))
	case engine.StateFailed:
		ui.ShowError(fmt.Errorf("batch failed: no accessible repositories"))
		return
	}

	if result != nil && result.Succeeded > 0 && !runKeep {
		offerRollback(result.TouchedRepos, sink)
	}
}

// resolveTotal returns the commit total: the flag wins, then the config
// file's "commits" key; zero means "pick a random count".
func resolveTotal() int {
	if runCommits != 0 {
		return runCommits
	}
	return viper.GetInt("commits")
}

// resolveSeed returns the random seed: the flag wins, then the config
// file's "seed" key, then the clock.
func resolveSeed() int64 {
	if runSeed != 0 {
		return runSeed
	}
	if seed := viper.GetInt64("seed"); seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// offerRollback asks once, after the whole batch, whether to keep the
// published changes. Declining resets every touched repository; each
// repository is reset independently and one failure does not stop the rest.
func offerRollback(touched []string, sink *logsink.Sink) {
	keep := true
	prompt := &survey.Confirm{
		Message: "Keep the published changes?",
		Default: true,
	}
	if err := survey.AskOne(prompt, &keep); err != nil || keep {
		return
	}

	executor := git.NewExecutor(git.NewExecRunner())
	ctx := context.Background()
	for _, repoPath := range touched {
		if err := executor.Reset(ctx, repoPath); err != nil {
			sink.Appendf("Failed to reset repository %s: %v", repoPath, err)
			ui.ShowError(fmt.Errorf("failed to reset %s: %w", repoPath, err))
			continue
		}
		sink.Appendf("Reset repository %s to its previous state", repoPath)
		ui.ShowSuccess(fmt.Sprintf("Reset %s", repoPath))
	}
}
