package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/bouncy/internal/model"
)

// DefaultFrameTemplate renders one line per tick.
const DefaultFrameTemplate = "{{.Tick | comma}}\t{{.X}},{{.Y}}\tv={{.VelX | num}},{{.VelY | num}}\n"

// PlainFormatter formats traces as human-readable text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
// An unparsable frame template falls back to DefaultFrameTemplate.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	text := opts.FrameTemplate
	if text == "" {
		text = DefaultFrameTemplate
	}
	tmpl, err := template.New("frame").Funcs(templateFuncs()).Parse(text)
	if err != nil {
		tmpl = template.Must(template.New("frame").Funcs(templateFuncs()).Parse(DefaultFrameTemplate))
	}
	f.template = tmpl

	return f
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": humanize.Comma,
		"num":   formatNumber,
	}
}

func formatNumber(v float64) string {
	return humanize.FtoaWithDigits(v, 2)
}

// Format writes a summary of the run, optionally followed by frames.
func (f *PlainFormatter) Format(w io.Writer, trace *model.Trace) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "run %s\n", trace.RunID)
	fmt.Fprintf(&sb, "  tick:     %s (gravity %s, friction %s, bounce %s)\n",
		trace.TickInterval,
		formatNumber(trace.Gravity),
		formatNumber(trace.Friction),
		formatNumber(trace.BounceFactor))
	fmt.Fprintf(&sb, "  window:   %dx%d in work area %d,%d-%d,%d\n",
		trace.Geometry.WindowWidth, trace.Geometry.WindowHeight,
		trace.Geometry.WorkAreaLeft, trace.Geometry.WorkAreaTop,
		trace.Geometry.WorkAreaRight, trace.Geometry.WorkAreaBottom)
	fmt.Fprintf(&sb, "  release:  %d,%d at %s,%s px/s\n",
		trace.Release.X, trace.Release.Y,
		formatNumber(trace.ReleaseVelX), formatNumber(trace.ReleaseVelY))
	fmt.Fprintf(&sb, "  bounces:  %s\n", humanize.Comma(int64(len(trace.Bounces))))
	if trace.SettledAt > 0 {
		fmt.Fprintf(&sb, "  settled:  tick %s\n", humanize.Comma(trace.SettledAt))
	} else {
		fmt.Fprintf(&sb, "  settled:  no (stopped after %s ticks)\n", humanize.Comma(trace.Ticks))
	}
	fmt.Fprintf(&sb, "  final:    %d,%d\n", trace.Final.X, trace.Final.Y)

	if f.opts.ShowBounces && len(trace.Bounces) > 0 {
		sb.WriteString("\nbounces\n")
		for _, b := range trace.Bounces {
			fmt.Fprintf(&sb, "  %s\t%-6s\t%s\n", humanize.Comma(b.Tick), b.Edge, formatNumber(b.Speed))
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if !f.opts.ShowFrames || len(trace.Frames) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, "\nframes\n"); err != nil {
		return err
	}
	for _, frame := range trace.Frames {
		if err := f.template.Execute(w, frame); err != nil {
			return fmt.Errorf("failed to render frame %d: %w", frame.Tick, err)
		}
	}
	return nil
}
