package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "commitpulse",
	Short: "Generate synthetic commit activity across local repositories",
	Long: `CommitPulse distributes a commit budget across your configured local
repositories, applies one minimal change per commit, and drives git to
stage, commit and push each change.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home + "/.commitpulse")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay for now
	}
}
