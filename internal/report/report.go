// Package report renders derived views as tables, charts or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loganmitchell124/tunestat/internal/model"
)

// Format selects how a view is written.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatChart Format = "chart"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTable, FormatChart, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, ok := range Formats {
		if f == ok {
			return f, nil
		}
	}
	return "", model.Invalid("format", name, "expected table, chart or yaml")
}

// Renderer writes views to Out in the chosen format.
type Renderer struct {
	Out    io.Writer
	Format Format
	// Width is the total column budget for charts; zero means the terminal width.
	Width int
	// Color forces ANSI colour in charts even when Out is not a terminal.
	Color bool
}

// New returns a renderer for the given writer and format.
func New(out io.Writer, format Format) *Renderer {
	return &Renderer{Out: out, Format: format}
}

// EncodeYAML writes v as a YAML document.
func EncodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}

func (r *Renderer) yaml(v any) error {
	return EncodeYAML(r.Out, v)
}

func (r *Renderer) heading(title string) error {
	if title == "" {
		return nil
	}
	_, err := fmt.Fprintln(r.Out, title)
	return err
}

// Notice writes a plain message line, used for empty results.
func (r *Renderer) Notice(msg string) error {
	if r.Format == FormatYAML {
		return r.yaml(map[string]string{"status": model.StatusEmpty.String(), "reason": msg})
	}
	_, err := fmt.Fprintln(r.Out, msg)
	return err
}
