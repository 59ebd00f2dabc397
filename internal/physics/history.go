package physics

import "github.com/jmylchreest/bouncy/internal/model"

// SampleHistory is a bounded, chronologically ordered list of drag samples.
// When full, pushing a new sample evicts the oldest one.
type SampleHistory struct {
	samples []model.Sample
	limit   int
}

// NewSampleHistory creates a history holding at most limit samples.
// A limit below 2 is raised to 2, the minimum needed to estimate a velocity.
func NewSampleHistory(limit int) *SampleHistory {
	if limit < 2 {
		limit = 2
	}
	return &SampleHistory{
		samples: make([]model.Sample, 0, limit+1),
		limit:   limit,
	}
}

// Push appends a sample, evicting the oldest when the limit is exceeded.
func (h *SampleHistory) Push(s model.Sample) {
	h.samples = append(h.samples, s)
	if len(h.samples) > h.limit {
		// shift in place so the backing array does not grow
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit]
	}
}

// Len returns the number of retained samples.
func (h *SampleHistory) Len() int {
	return len(h.samples)
}

// Limit returns the maximum number of retained samples.
func (h *SampleHistory) Limit() int {
	return h.limit
}

// First returns the oldest retained sample.
func (h *SampleHistory) First() (model.Sample, bool) {
	if len(h.samples) == 0 {
		return model.Sample{}, false
	}
	return h.samples[0], true
}

// Last returns the newest retained sample.
func (h *SampleHistory) Last() (model.Sample, bool) {
	if len(h.samples) == 0 {
		return model.Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Samples returns a copy of the retained samples, oldest first.
func (h *SampleHistory) Samples() []model.Sample {
	out := make([]model.Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Reset drops all samples.
func (h *SampleHistory) Reset() {
	h.samples = h.samples[:0]
}
