// SPDX-License-Identifier: MIT
package dsp

import "math"

// FilterType selects one of the four streaming filter shapes.
type FilterType string

const (
	Lowpass  FilterType = "lowpass"
	Highpass FilterType = "highpass"
	Bandpass FilterType = "bandpass"
	Notch    FilterType = "notch"
)

// ParseFilterType converts a configuration or wire string to a FilterType.
func ParseFilterType(s string) (FilterType, error) {
	switch FilterType(s) {
	case Lowpass, Highpass, Bandpass, Notch:
		return FilterType(s), nil
	}
	return "", ErrUnknownFilterType
}

// Default filter parameters, applied when the corresponding Params field is
// zero. The highpass edge of a lowpass filter defaults lower than the band
// filters' upper edge.
const (
	DefaultCutoffLow      = 500.0
	DefaultCutoffHigh     = 1000.0
	DefaultCutoffHighBand = 2000.0
	DefaultQ              = 1.0
)

// Params holds the optional filter parameters. Zero-valued fields take the
// documented defaults; negative values are rejected.
type Params struct {
	CutoffLow  float64 // Hz, lower band edge / highpass cutoff
	CutoffHigh float64 // Hz, upper band edge / lowpass cutoff
	Q          float64 // bandwidth sharpness for band filters
}

func (p Params) withDefaults(t FilterType) Params {
	if p.CutoffLow == 0 {
		p.CutoffLow = DefaultCutoffLow
	}
	if p.CutoffHigh == 0 {
		if t == Lowpass {
			p.CutoffHigh = DefaultCutoffHigh
		} else {
			p.CutoffHigh = DefaultCutoffHighBand
		}
	}
	if p.Q == 0 {
		p.Q = DefaultQ
	}
	return p
}

func (p Params) validate(t FilterType) error {
	if p.CutoffLow < 0 || p.CutoffHigh < 0 || p.Q < 0 {
		return ErrInvalidParams
	}
	if (t == Bandpass || t == Notch) && p.CutoffLow >= p.CutoffHigh {
		return ErrInvalidParams
	}
	return nil
}

// Filter is a streaming filter instance. State persists across Process calls
// so that filtering a stream chunk by chunk produces the same output as
// filtering it in one call. Instances are not safe for concurrent use; bind
// one instance per logical stream.
type Filter interface {
	// Type reports the filter shape this instance was built with.
	Type() FilterType
	// Process filters the next chunk of the stream. An empty input is a
	// no-op: it returns an empty slice and leaves the state untouched.
	Process(in []float64) []float64
	// Reset restarts the recurrence from the first sample of the next
	// chunk, equivalent to the session's buffer Clear.
	Reset()
}

// New builds a streaming filter of the given type. Zero params fields take
// defaults; sampleRate must be positive. An unrecognized type fails with
// ErrUnknownFilterType and performs no work.
func New(t FilterType, p Params, sampleRate float64) (Filter, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	p = p.withDefaults(t)
	if err := p.validate(t); err != nil {
		return nil, err
	}

	switch t {
	case Lowpass:
		return &lowpassFilter{alpha: lowpassAlpha(p.CutoffHigh, sampleRate)}, nil
	case Highpass:
		return &highpassFilter{alpha: highpassAlpha(p.CutoffLow, sampleRate)}, nil
	case Bandpass:
		return newBandpass(p, sampleRate), nil
	case Notch:
		return &notchFilter{band: newBandpass(p, sampleRate)}, nil
	}
	return nil, ErrUnknownFilterType
}

// Apply runs samples through a fresh filter instance in one shot. Streaming
// callers that feed successive chunks should hold a Filter from New instead.
func Apply(samples []float64, t FilterType, p Params, sampleRate float64) ([]float64, error) {
	f, err := New(t, p, sampleRate)
	if err != nil {
		return nil, err
	}
	return f.Process(samples), nil
}

// One-pole RC coefficient mapping. With w = 2*pi*fc/fs, the discretized RC
// stage gives alpha = dt/(RC+dt) = w/(w+1) for the lowpass form and
// alpha = RC/(RC+dt) = 1/(1+w) for the highpass form. Cutoffs above Nyquist
// are clamped to it.
func lowpassAlpha(cutoff, sampleRate float64) float64 {
	w := 2 * math.Pi * clampToNyquist(cutoff, sampleRate) / sampleRate
	return w / (w + 1)
}

func highpassAlpha(cutoff, sampleRate float64) float64 {
	w := 2 * math.Pi * clampToNyquist(cutoff, sampleRate) / sampleRate
	return 1 / (1 + w)
}

func clampToNyquist(cutoff, sampleRate float64) float64 {
	if nyq := sampleRate / 2; cutoff > nyq {
		return nyq
	}
	return cutoff
}

// bandEdges applies Q to the band filters: edges move toward the band center
// as Q grows, Q=1 keeps them as given. A first-order stage has no independent
// bandwidth control, so Q is expressed entirely through the effective edges.
func bandEdges(p Params) (low, high float64) {
	center := (p.CutoffLow + p.CutoffHigh) / 2
	half := (p.CutoffHigh - p.CutoffLow) / (2 * p.Q)
	low = center - half
	if low < 0 {
		low = 0
	}
	return low, center + half
}

type lowpassFilter struct {
	alpha  float64
	prev   float64
	primed bool
}

func (f *lowpassFilter) Type() FilterType { return Lowpass }

func (f *lowpassFilter) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		if !f.primed {
			f.prev = x
			f.primed = true
			out[i] = x
			continue
		}
		f.prev += f.alpha * (x - f.prev)
		out[i] = f.prev
	}
	return out
}

func (f *lowpassFilter) Reset() {
	f.prev = 0
	f.primed = false
}

type highpassFilter struct {
	alpha   float64
	prevIn  float64
	prevOut float64
	primed  bool
}

func (f *highpassFilter) Type() FilterType { return Highpass }

func (f *highpassFilter) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		if !f.primed {
			f.prevIn = x
			f.prevOut = x
			f.primed = true
			out[i] = x
			continue
		}
		y := f.alpha * (f.prevOut + x - f.prevIn)
		f.prevIn = x
		f.prevOut = y
		out[i] = y
	}
	return out
}

func (f *highpassFilter) Reset() {
	f.prevIn = 0
	f.prevOut = 0
	f.primed = false
}

// bandpassFilter cascades a highpass at the lower edge into a lowpass at the
// upper edge; each stage keeps its own independent state.
type bandpassFilter struct {
	hp highpassFilter
	lp lowpassFilter
}

func newBandpass(p Params, sampleRate float64) *bandpassFilter {
	low, high := bandEdges(p)
	return &bandpassFilter{
		hp: highpassFilter{alpha: highpassAlpha(low, sampleRate)},
		lp: lowpassFilter{alpha: lowpassAlpha(high, sampleRate)},
	}
}

func (f *bandpassFilter) Type() FilterType { return Bandpass }

func (f *bandpassFilter) Process(in []float64) []float64 {
	return f.lp.Process(f.hp.Process(in))
}

func (f *bandpassFilter) Reset() {
	f.hp.Reset()
	f.lp.Reset()
}

// notchFilter subtracts the bandpassed signal from the input, so
// band[i] + notch[i] == in[i] holds exactly by construction.
type notchFilter struct {
	band *bandpassFilter
}

func (f *notchFilter) Type() FilterType { return Notch }

func (f *notchFilter) Process(in []float64) []float64 {
	band := f.band.Process(in)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = x - band[i]
	}
	return out
}

func (f *notchFilter) Reset() {
	f.band.Reset()
}
