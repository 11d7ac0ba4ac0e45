// Package main provides the CLI entrypoint for tunestat.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loganmitchell124/tunestat/internal/explorer"
	"github.com/loganmitchell124/tunestat/internal/model"
)

const (
	defaultTop    = 10
	defaultFormat = "table"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgYellow)
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logErrf("%s %v\n", errorColor.Sprint("error:"), err)
		if hint := errorHint(err); hint != "" {
			logErrln(hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "tunestat",
		Short:         "Explore a popular-songs dataset",
		Long:          "tunestat loads a song dataset (CSV or SQLite) and shows rankings, trends, distributions and correlations in an interactive explorer or as tables, charts and YAML.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplorerCmd(cmd, opts)
		},
	}
	opts.addGlobalFlags(rootCmd)

	rootCmd.AddCommand(newOverviewCmd(opts))
	rootCmd.AddCommand(newTopCmd(opts))
	rootCmd.AddCommand(newTimelineCmd(opts))
	rootCmd.AddCommand(newYearlyCmd(opts))
	rootCmd.AddCommand(newTrendCmd(opts))
	rootCmd.AddCommand(newGenresCmd(opts))
	rootCmd.AddCommand(newArtistsCmd(opts))
	rootCmd.AddCommand(newArtistCmd(opts))
	rootCmd.AddCommand(newProbCmd(opts))
	rootCmd.AddCommand(newCorrCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func runExplorerCmd(cmd *cobra.Command, opts *rootOptions) error {
	rs, err := opts.loadDataset(cmd)
	if err != nil {
		return err
	}
	var history []model.Listen
	if opts.settings.explore.HistoryPath != "" {
		history, err = opts.loadHistory()
		if err != nil {
			return err
		}
	}
	ui := explorer.New(rs, history, opts.settings.explore)
	program := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run explorer: %w", err)
	}
	return nil
}

// errorHint suggests a fix for the error classes a user can act on.
func errorHint(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return "Set --dataset, TUNESTAT_DATASET or [data] dataset in the config file (tunestat config)."
	case errors.Is(err, model.ErrParse):
		return "The file could not be read as a dataset; the message names the line and column."
	case errors.Is(err, model.ErrValidation):
		return "Run the command with --help to see accepted values."
	}
	return ""
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
