package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loganmitchell124/tunestat/internal/config"
	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/report"
	"github.com/loganmitchell124/tunestat/internal/store"
)

const envPrefix = "TUNESTAT"

// rootOptions carries flag values and the settings resolved from them.
type rootOptions struct {
	configPath string
	envFile    string
	dataset    string
	history    string
	format     string
	top        int
	from       int
	to         int
	corrAttrs  []string

	settings settings
}

type settings struct {
	explore model.ExploreConfig
	format  report.Format
}

func (o *rootOptions) addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&o.envFile, "env-file", ".env", "dotenv file with TUNESTAT_* variables")
	flags.StringVar(&o.dataset, "dataset", "", "dataset file (.csv, .db, .sqlite)")
	flags.StringVar(&o.history, "history", "", "listening history JSON file")
	flags.StringVar(&o.format, "format", defaultFormat, "output format: table, chart or yaml")
	flags.IntVar(&o.top, "top", defaultTop, "number of entries in rankings")
}

// resolve applies, for every flag not given on the command line, the TUNESTAT_* environment
// and then the config file, and validates the result.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	if err := loadEnvFile(o.envFile); err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.ExpandPath(o.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	env := newEnv()

	applyStringConfig(cmd, "dataset", &o.dataset, envString(env, "dataset"), fileCfg.Data.Dataset)
	applyStringConfig(cmd, "history", &o.history, envString(env, "history"), fileCfg.Data.History)
	applyStringConfig(cmd, "format", &o.format, envString(env, "format"), fileCfg.Explore.Format)
	if err := applyIntConfig(cmd, "top", &o.top, envString(env, "top"), fileCfg.Explore.Top); err != nil {
		return err
	}
	if err := applyIntConfig(cmd, "from", &o.from, envString(env, "from"), fileCfg.Explore.From); err != nil {
		return err
	}
	if err := applyIntConfig(cmd, "to", &o.to, envString(env, "to"), fileCfg.Explore.To); err != nil {
		return err
	}
	applyListConfig(cmd, "attrs", &o.corrAttrs, envString(env, "corr-attrs"), fileCfg.Explore.CorrAttrs)

	s, err := o.validate()
	if err != nil {
		return err
	}
	o.settings = s
	return nil
}

func (o *rootOptions) validate() (settings, error) {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return settings{}, err
	}
	if o.top <= 0 {
		return settings{}, model.Invalid("top", strconv.Itoa(o.top), "must be greater than 0")
	}
	if err := checkYear("from", o.from); err != nil {
		return settings{}, err
	}
	if err := checkYear("to", o.to); err != nil {
		return settings{}, err
	}
	if o.from != 0 && o.to != 0 && o.from > o.to {
		return settings{}, model.Invalid("year range", fmt.Sprintf("%d-%d", o.from, o.to), "from is after to")
	}
	dataset := strings.TrimSpace(o.dataset)
	if dataset == "" {
		dataset = config.DefaultDatasetPath()
	}
	history := strings.TrimSpace(o.history)
	if history != "" {
		history = config.ExpandPath(history)
	}
	return settings{
		format: format,
		explore: model.ExploreConfig{
			DatasetPath: config.ExpandPath(dataset),
			HistoryPath: history,
			Top:         o.top,
			From:        o.from,
			To:          o.to,
			CorrAttrs:   o.corrAttrs,
		},
	}, nil
}

func checkYear(name string, year int) error {
	if !model.ValidYear(year) {
		return model.Invalid(name, strconv.Itoa(year), fmt.Sprintf("expected a year in %d-%d", model.MinYear, model.MaxYear))
	}
	return nil
}

// loadEnvFile reads KEY=value pairs into the process environment without overriding set variables.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func newEnv() *viper.Viper {
	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	env.AutomaticEnv()
	return env
}

func envString(env *viper.Viper, key string) *string {
	value := strings.TrimSpace(env.GetString(key))
	if value == "" {
		return nil
	}
	return &value
}

func applyStringConfig(cmd *cobra.Command, name string, target *string, values ...*string) {
	if cmd.Flags().Changed(name) {
		return
	}
	for _, value := range values {
		if value != nil {
			*target = *value
			return
		}
	}
}

func applyIntConfig(cmd *cobra.Command, name string, target *int, envValue *string, fileValue *int) error {
	if cmd.Flags().Changed(name) {
		return nil
	}
	if envValue != nil {
		n, err := strconv.Atoi(*envValue)
		if err != nil {
			return model.Invalid(envPrefix+"_"+strings.ToUpper(name), *envValue, "expected a whole number")
		}
		*target = n
		return nil
	}
	if fileValue != nil {
		*target = *fileValue
	}
	return nil
}

func applyListConfig(cmd *cobra.Command, name string, target *[]string, envValue *string, fileValue *[]string) {
	if cmd.Flags().Changed(name) {
		return
	}
	if envValue != nil {
		*target = splitList(*envValue)
		return
	}
	if fileValue != nil {
		*target = append([]string(nil), (*fileValue)...)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (o *rootOptions) loadDataset(cmd *cobra.Command) (*store.RecordSet, error) {
	rs, err := store.LoadFile(cmd.Context(), o.settings.explore.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return rs, nil
}

func (o *rootOptions) loadHistory() ([]model.Listen, error) {
	path := o.settings.explore.HistoryPath
	if path == "" {
		return nil, model.Invalid("history", path, "set --history or TUNESTAT_HISTORY")
	}
	entries, err := store.LoadHistory(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}
