package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bouncy/internal/model"
)

func TestSampleHistory_Empty(t *testing.T) {
	h := NewSampleHistory(10)
	assert.Equal(t, 0, h.Len())

	_, ok := h.First()
	assert.False(t, ok)
	_, ok = h.Last()
	assert.False(t, ok)
}

func TestSampleHistory_EvictsOldest(t *testing.T) {
	h := NewSampleHistory(10)
	for i := 1; i <= 11; i++ {
		h.Push(model.Sample{X: i, Timestamp: int64(i)})
	}

	require.Equal(t, 10, h.Len())

	first, ok := h.First()
	require.True(t, ok)
	assert.Equal(t, 2, first.X)

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, 11, last.X)

	samples := h.Samples()
	for i, s := range samples {
		assert.Equal(t, i+2, s.X, "samples must stay in insertion order")
	}
}

func TestSampleHistory_SamplesIsCopy(t *testing.T) {
	h := NewSampleHistory(3)
	h.Push(model.Sample{X: 1})

	samples := h.Samples()
	samples[0].X = 99

	first, _ := h.First()
	assert.Equal(t, 1, first.X)
}

func TestSampleHistory_Reset(t *testing.T) {
	h := NewSampleHistory(3)
	h.Push(model.Sample{X: 1})
	h.Push(model.Sample{X: 2})
	h.Reset()

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 3, h.Limit())
}

func TestSampleHistory_MinimumLimit(t *testing.T) {
	h := NewSampleHistory(0)
	assert.Equal(t, 2, h.Limit())
}
