package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"commitpulse/internal/logsink"
	"commitpulse/internal/ui"
)

var logLines int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent activity, most recent first",
	Run:   runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVarP(&logLines, "lines", "n", 20, "Number of entries to show")
}

func runLog(cmd *cobra.Command, args []string) {
	file, err := os.Open(logsink.DefaultLogFile())
	if os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded yet.")
		return
	}
	if err != nil {
		ui.ShowError(fmt.Errorf("failed to open activity log: %w", err))
		return
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		ui.ShowError(fmt.Errorf("failed to read activity log: %w", err))
		return
	}

	if len(lines) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded yet.")
		return
	}

	timestampColor := color.New(color.FgCyan)
	errorColor := color.New(color.FgRed)

	// Most recent first
	shown := 0
	for i := len(lines) - 1; i >= 0 && shown < logLines; i-- {
		timestamp, message, found := strings.Cut(lines[i], " - ")
		if !found {
			fmt.Fprintln(cmd.OutOrStdout(), lines[i])
			shown++
			continue
		}

		if strings.Contains(message, "failed") || strings.Contains(message, "Failed") {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", timestampColor.Sprint(timestamp), errorColor.Sprint(message))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", timestampColor.Sprint(timestamp), message)
		}
		shown++
	}
}
