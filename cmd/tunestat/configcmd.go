package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loganmitchell124/tunestat/internal/config"
	"github.com/loganmitchell124/tunestat/internal/stats"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		// The config file may be broken; editing it must not depend on loading it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ExpandPath(o.configPath)
			created, err := writeConfigTemplate(path)
			if err != nil {
				return err
			}
			if created {
				logErrf("Wrote %s\n", path)
			}
			return openEditor(path)
		},
	}
}

// writeConfigTemplate creates the commented template unless a config already exists.
func writeConfigTemplate(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

func openEditor(path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tunestat configuration
# Uncomment a value to enable it.
# Precedence: CLI flags, then %s_* environment variables (a .env file is read too), then this file.

[data]
# dataset = %q   # CSV or SQLite file with a songs table
# history = "~/StreamingHistory.json"   # listening history export

[explore]
# top = %d                 # Entries in rankings
# from = 2000              # First year of genre trends
# to = 2019                # Last year of genre trends
# format = %q           # table, chart or yaml
# corr-attrs = [%s]
`,
		envPrefix,
		config.DefaultDatasetPath(),
		defaultTop,
		defaultFormat,
		quoteList(stats.DefaultCorrelationAttributes),
	)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
