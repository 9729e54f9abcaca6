package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"commitpulse/internal/config"
	"commitpulse/internal/ui"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage the repository list",
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured repositories",
	Run:   runRepoList,
}

var repoAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Add a repository",
	Args:  cobra.MaximumNArgs(1),
	Run:   runRepoAdd,
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a repository",
	Args:  cobra.ExactArgs(1),
	Run:   runRepoRemove,
}

var repoToggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Enable or disable a repository",
	Args:  cobra.ExactArgs(1),
	Run:   runRepoToggle,
}

func init() {
	rootCmd.AddCommand(repoCmd)
	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoToggleCmd)
}

func runRepoList(cmd *cobra.Command, args []string) {
	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	repos := store.List()
	if len(repos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No repositories configured.")
		fmt.Fprintln(cmd.OutOrStdout(), "Use 'commitpulse repo add' to add one")
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configured Repositories:")
	fmt.Fprintln(cmd.OutOrStdout())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATH\tENABLED")
	fmt.Fprintln(w, "--\t----\t-------")

	for _, repo := range repos {
		enabled := "yes"
		if !repo.Enabled {
			enabled = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", repo.ID, repo.Path, enabled)
	}
	_ = w.Flush()
}

func runRepoAdd(cmd *cobra.Command, args []string) {
	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		prompt := &survey.Input{
			Message: "Repository path (local git clone):",
		}
		if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
			ui.ShowError(err)
			return
		}
	}

	repo, err := store.Add(path)
	if err != nil {
		ui.ShowError(err)
		return
	}

	ui.ShowSuccess(fmt.Sprintf("Added repository %s (id %s)", repo.Path, repo.ID))
}

func runRepoRemove(cmd *cobra.Command, args []string) {
	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	confirm := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Remove repository '%s'?", args[0]),
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirm); err != nil {
		ui.ShowError(err)
		return
	}
	if !confirm {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return
	}

	if err := store.Remove(args[0]); err != nil {
		ui.ShowError(err)
		return
	}
	ui.ShowSuccess(fmt.Sprintf("Removed repository %s", args[0]))
}

func runRepoToggle(cmd *cobra.Command, args []string) {
	store, err := config.OpenStore()
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	repo, err := store.Toggle(args[0])
	if err != nil {
		ui.ShowError(err)
		return
	}

	state := "enabled"
	if !repo.Enabled {
		state = "disabled"
	}
	ui.ShowSuccess(fmt.Sprintf("Repository %s is now %s", repo.Path, state))
}
