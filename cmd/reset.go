package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"commitpulse/internal/config"
	"commitpulse/internal/git"
	"commitpulse/internal/logsink"
	"commitpulse/internal/ui"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset [id...]",
	Short: "Reset repositories to HEAD and force-push",
	Long: `Reset discards local changes in the given repositories and force-pushes
the result. Each repository is reset independently: a failure in one does
not stop the others.`,
	Run: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Reset every configured repository")
}

func runReset(cmd *cobra.Command, args []string) {
	if !resetAll && len(args) == 0 {
		ui.ShowWarning("Nothing to do: pass repository ids or --all")
		return
	}

	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	var paths []string
	if resetAll {
		for _, repo := range store.List() {
			paths = append(paths, repo.Path)
		}
	} else {
		for _, id := range args {
			found := false
			for _, repo := range store.List() {
				if repo.ID == id {
					paths = append(paths, repo.Path)
					found = true
					break
				}
			}
			if !found {
				ui.ShowWarning(fmt.Sprintf("No repository with id '%s'", id))
			}
		}
	}
	if len(paths) == 0 {
		return
	}

	sink, err := logsink.NewWithFile(logsink.DefaultLogFile())
	if err != nil {
		sink = logsink.New()
	}
	defer sink.Close()

	executor := git.NewExecutor(git.NewExecRunner())
	ctx := context.Background()

	failures := 0
	for _, path := range paths {
		if err := executor.Reset(ctx, path); err != nil {
			failures++
			sink.Appendf("Failed to reset repository %s: %v", path, err)
			ui.ShowError(fmt.Errorf("failed to reset %s: %w", path, err))
			continue
		}
		sink.Appendf("Reset repository %s to its previous state", path)
		ui.ShowSuccess(fmt.Sprintf("Reset %s", path))
	}

	if failures > 0 {
		ui.ShowWarning(fmt.Sprintf("%d of %d repositories failed to reset", failures, len(paths)))
	}
}
