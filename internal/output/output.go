// Package output provides formatters for simulation traces.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/bouncy/internal/model"
)

// Formatter formats a simulation trace for output.
type Formatter interface {
	// Format writes the formatted trace to the writer.
	Format(w io.Writer, trace *model.Trace) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	FrameTemplate string // text/template applied to each frame (plain only)
	ShowFrames    bool   // Include per-tick frames (plain only; json/yaml always include recorded frames)
	ShowBounces   bool   // List individual bounces (plain only)
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowBounces: true,
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (FormatType, error) {
	switch f := FormatType(name); f {
	case FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want plain, json or yaml)", name)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}
