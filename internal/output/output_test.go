package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/bouncy/internal/model"
)

func testTrace() *model.Trace {
	return &model.Trace{
		RunID:        "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		TickInterval: "16ms",
		Gravity:      0.8,
		Friction:     0.98,
		BounceFactor: 0.5,
		Geometry: model.Geometry{
			WindowWidth: 300, WindowHeight: 200,
			WorkAreaRight: 1920, WorkAreaBottom: 1080,
		},
		Release:     model.Point{X: 600, Y: 100},
		ReleaseVelX: 1000,
		ReleaseVelY: -250,
		Frames: []model.Frame{
			{Tick: 1, X: 1580, Y: 0, VelX: 980, VelY: -244.2},
			{Tick: 2, X: 1620, Y: 0, VelX: -480.2, VelY: 119.66},
		},
		Bounces: []model.Bounce{
			{Tick: 1, Axis: model.AxisY, Edge: model.EdgeTop, Speed: 244.2},
		},
		SettledAt: 1234,
		Ticks:     1234,
		Final:     model.Point{X: 810, Y: 880},
	}
}

func TestPlainFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	err := NewPlainFormatter(DefaultFormatterOptions()).Format(&buf, testTrace())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run 01HZZZZZZZZZZZZZZZZZZZZZZZ")
	assert.Contains(t, out, "16ms (gravity 0.8, friction 0.98, bounce 0.5)")
	assert.Contains(t, out, "300x200 in work area 0,0-1920,1080")
	assert.Contains(t, out, "600,100 at 1000,-250 px/s")
	assert.Contains(t, out, "settled:  tick 1,234")
	assert.Contains(t, out, "final:    810,880")
	assert.Contains(t, out, "top")
	assert.NotContains(t, out, "frames")
}

func TestPlainFormatter_NotSettled(t *testing.T) {
	trace := testTrace()
	trace.SettledAt = 0
	trace.Ticks = 100000

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(DefaultFormatterOptions()).Format(&buf, trace))
	assert.Contains(t, buf.String(), "no (stopped after 100,000 ticks)")
}

func TestPlainFormatter_Frames(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.ShowFrames = true
	opts.ShowBounces = false

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testTrace()))

	out := buf.String()
	assert.NotContains(t, out, "\nbounces\n")
	assert.Contains(t, out, "1\t1580,0\tv=980,-244.2\n")
	assert.Contains(t, out, "2\t1620,0\tv=-480.2,119.66\n")
}

func TestPlainFormatter_CustomFrameTemplate(t *testing.T) {
	opts := FormatterOptions{ShowFrames: true, FrameTemplate: "{{.X}}\n"}

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testTrace()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "1620", lines[len(lines)-1])
}

func TestPlainFormatter_InvalidTemplateFallsBack(t *testing.T) {
	opts := FormatterOptions{ShowFrames: true, FrameTemplate: "{{.X"}

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testTrace()))
	assert.Contains(t, buf.String(), "1\t1580,0")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, testTrace()))

	var decoded model.Trace
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testTrace().RunID, decoded.RunID)
	assert.Len(t, decoded.Frames, 2)
	assert.Contains(t, buf.String(), `"settled_at": 1234`)
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(DefaultFormatterOptions()).Format(&buf, testTrace()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "16ms", decoded["tick_interval"])
	assert.Equal(t, 1234, decoded["settled_at"])
	assert.Contains(t, buf.String(), "edge: top")
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()

	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("unknown", opts))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"plain", "json", "yaml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, FormatType(name), f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
