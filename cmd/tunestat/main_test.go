package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/loganmitchell124/tunestat/internal/config"
	"github.com/loganmitchell124/tunestat/internal/model"
)

const testHeader = "artist,song,duration_ms,explicit,year,popularity,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,genre"

var testRows = []string{
	`Britney Spears,Oops!...I Did It Again,211160,False,2000,77,0.751,0.834,1,-5.444,0,0.0437,0.3,1.77e-05,0.355,0.894,95.053,pop`,
	`Eminem,The Real Slim Shady,284200,True,2000,86,0.949,0.661,5,-4.244,0,0.0572,0.0302,0,0.0454,0.76,104.504,"['hip hop', 'rock']"`,
	`Rihanna,Umbrella,275986,False,2007,80,0.583,0.829,1,-4.603,1,0.134,0.00864,0,0.0426,0.575,174.028,"pop, R&B"`,
	`Coldplay,Clocks,307879,False,2002,70,0.577,0.749,5,-7.215,0,0.0279,0.599,0.0115,0.183,0.255,130.97,rock`,
}

// isolate points every config source at the temp dir so the user's files never leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{"DATASET", "HISTORY", "FORMAT", "TOP", "FROM", "TO", "CORR_ATTRS"} {
		t.Setenv("TUNESTAT_"+key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, filepath.Join(dir, "songs.csv"), testHeader+"\n"+strings.Join(testRows, "\n")+"\n")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestTopCommandYAML(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	out, err := run(t, "top", "--dataset", dataset, "--format", "yaml", "--top", "2")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	var ranked []model.Ranked
	if err := yaml.Unmarshal([]byte(out), &ranked); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(ranked) != 2 || ranked[0].Key != "Eminem" || ranked[1].Key != "Rihanna" {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
}

func TestTopCommandTable(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	out, err := run(t, "top", "--dataset", dataset, "--by", "genre", "--agg", "count")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if !strings.Contains(out, "pop") || !strings.Contains(out, "rock") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestSettingsPrecedence(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	cfgPath := writeFile(t, filepath.Join(dir, "config.toml"), "[explore]\ntop = 1\nformat = \"yaml\"\n")

	count := func(args ...string) int {
		t.Helper()
		out, err := run(t, append([]string{"top", "--dataset", dataset, "--config", cfgPath}, args...)...)
		if err != nil {
			t.Fatalf("top: %v", err)
		}
		var ranked []model.Ranked
		if err := yaml.Unmarshal([]byte(out), &ranked); err != nil {
			t.Fatalf("decode: %v\n%s", err, out)
		}
		return len(ranked)
	}

	if got := count(); got != 1 {
		t.Fatalf("expected config file top=1, got %d", got)
	}
	t.Setenv("TUNESTAT_TOP", "2")
	if got := count(); got != 2 {
		t.Fatalf("expected env top=2, got %d", got)
	}
	if got := count("--top", "3"); got != 3 {
		t.Fatalf("expected flag top=3, got %d", got)
	}
}

func TestEnvFileIsLoaded(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	os.Unsetenv("TUNESTAT_DATASET")
	t.Cleanup(func() { os.Unsetenv("TUNESTAT_DATASET") })
	envFile := writeFile(t, filepath.Join(dir, "test.env"), "TUNESTAT_DATASET="+dataset+"\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"timeline", "--env-file", envFile, "--format", "yaml"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if !strings.Contains(out.String(), "year: 2007") {
		t.Fatalf("unexpected timeline:\n%s", out.String())
	}
}

func TestInvalidEnvNumber(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	t.Setenv("TUNESTAT_TOP", "many")
	_, err := run(t, "top", "--dataset", dataset)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUnknownFormat(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	_, err := run(t, "timeline", "--dataset", dataset, "--format", "json")
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if errorHint(err) == "" {
		t.Fatalf("expected a hint for validation errors")
	}
}

func TestTrendRejectsFarYears(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	for _, args := range [][]string{
		{"--to", "9223372036854775807"},
		{"--from", "1", "--to", "2000000000"},
		{"--from=-3"},
	} {
		_, err := run(t, append([]string{"trend", "--dataset", dataset}, args...)...)
		if !errors.Is(err, model.ErrValidation) {
			t.Fatalf("%v: expected ErrValidation, got %v", args, err)
		}
	}
	out, err := run(t, "trend", "--dataset", dataset, "--smooth", "2", "--format", "chart")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if !strings.Contains(out, "2-year moving average") {
		t.Fatalf("expected smoothed title:\n%s", out)
	}
}

func TestMissingDataset(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "timeline", "--dataset", filepath.Join(dir, "nope.csv"))
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(errorHint(err), "--dataset") {
		t.Fatalf("unexpected hint: %q", errorHint(err))
	}
}

func TestArtistNotFoundIsNotice(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	out, err := run(t, "artist", "Rihana", "--dataset", dataset, "--format", "yaml")
	if err != nil {
		t.Fatalf("artist: %v", err)
	}
	if !strings.Contains(out, "status: empty") || !strings.Contains(out, "Rihanna") {
		t.Fatalf("expected empty notice with suggestion:\n%s", out)
	}
}

func TestGenresRequiresPeriod(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	if _, err := run(t, "genres", "--dataset", dataset); err == nil {
		t.Fatalf("expected missing --period error")
	}
	out, err := run(t, "genres", "--dataset", dataset, "--period", "2000s", "--format", "yaml")
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	var shares []model.Share
	if err := yaml.Unmarshal([]byte(out), &shares); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(shares) != 4 || shares[0].Key != "pop" {
		t.Fatalf("unexpected shares: %+v", shares)
	}
}

func TestProbBreakdown(t *testing.T) {
	dir := isolate(t)
	dataset := writeDataset(t, dir)
	out, err := run(t, "prob", "--dataset", dataset, "--artist", "Rihanna", "--genre", "pop", "--period", "2000s", "--format", "yaml")
	if err != nil {
		t.Fatalf("prob: %v", err)
	}
	var b model.Breakdown
	if err := yaml.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.GenreGivenArtist.Matching != 1 || b.GenreGivenArtist.Total != 2 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
}

func TestHistoryCommand(t *testing.T) {
	dir := isolate(t)
	history := writeFile(t, filepath.Join(dir, "history.json"),
		`[{"artistName":"A","msPlayed":3600000},{"artistName":"B","msPlayed":1800000}]`)
	out, err := run(t, "history", "--history", history, "--format", "yaml")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var totals []model.ListenTotal
	if err := yaml.Unmarshal([]byte(out), &totals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(totals) != 2 || totals[0].Artist != "A" || totals[0].Hours != 1 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if _, err := run(t, "history"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation without --history, got %v", err)
	}
}

func TestConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunestat", "config.toml")
	created, err := writeConfigTemplate(path)
	if err != nil || !created {
		t.Fatalf("writeConfigTemplate: created=%v err=%v", created, err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template must decode: %v", err)
	}
	created, err = writeConfigTemplate(path)
	if err != nil || created {
		t.Fatalf("expected existing config to be kept, created=%v err=%v", created, err)
	}
}
