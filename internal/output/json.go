package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/bouncy/internal/model"
)

// JSONFormatter formats traces as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the trace as an indented JSON object.
func (f *JSONFormatter) Format(w io.Writer, trace *model.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(trace)
}
