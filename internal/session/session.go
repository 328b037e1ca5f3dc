// SPDX-License-Identifier: MIT
/*
Package session binds the capture buffer, the spectrum analyzer and the
streaming filters into one facade. It validates caller-supplied parameters,
normalizes them against documented defaults and maps internal failures onto
the boundary error kinds in errors.go.

A session owns its filter states exclusively. Filters bound to one session
must never be shared with another: their recurrences carry per-stream state.
*/
package session

import (
	"errors"
	"fmt"
	"sync"

	"voicefront/internal/buffer"
	"voicefront/internal/dsp"
	"voicefront/internal/pcm"
	"voicefront/internal/wakeword"
)

// Session is the audio front-end facade. One producer appends samples while
// any number of consumers read snapshots, compute spectra and run filters.
type Session struct {
	buffer   *buffer.Ring
	analyzer *dsp.Analyzer

	mu      sync.Mutex
	filters map[string]dsp.Filter
}

// New creates a session with a bounded sample buffer. sampleRate and
// channels describe the capture format; capacity is the maximum number of
// buffered samples.
func New(sampleRate, channels, capacity int) (*Session, error) {
	ring := buffer.New(sampleRate, channels, capacity)
	if ring == nil {
		return nil, fmt.Errorf("%w: sample rate %d, channels %d, capacity %d",
			ErrFormat, sampleRate, channels, capacity)
	}
	return &Session{
		buffer:   ring,
		analyzer: dsp.NewAnalyzer(),
		filters:  make(map[string]dsp.Filter),
	}, nil
}

// AddSamples appends a batch to the buffer, discarding the oldest samples
// once capacity is reached. Called from the capture path.
func (s *Session) AddSamples(batch []float64) {
	s.buffer.AddSamples(batch)
}

// ReadSamples returns up to count oldest-first samples without consuming
// them. A negative count is a caller error.
func (s *Session) ReadSamples(count int) ([]float64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrFormat, count)
	}
	return s.buffer.ReadSamples(count), nil
}

// Len returns the number of buffered samples.
func (s *Session) Len() int {
	return s.buffer.Len()
}

// Clear empties the buffer and resets every bound filter, so the next chunk
// starts a fresh stream.
func (s *Session) Clear() {
	s.buffer.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.filters {
		f.Reset()
	}
}

// Spectrum reads up to count buffered samples and returns their magnitude
// spectrum, one bin per sample. An empty buffer yields an empty spectrum.
func (s *Session) Spectrum(count int) ([]float64, error) {
	samples, err := s.ReadSamples(count)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Magnitudes(samples), nil
}

// ApplyFilter runs samples through a fresh filter of the named type. For
// chunked streaming use BindFilter and ProcessFilter instead, so the filter
// state carries across calls.
func (s *Session) ApplyFilter(samples []float64, filterType string, p dsp.Params) ([]float64, error) {
	t, err := dsp.ParseFilterType(filterType)
	if err != nil {
		return nil, fmt.Errorf("%w: filter type %q", ErrFormat, filterType)
	}
	out, err := dsp.Apply(samples, t, p, float64(s.buffer.SampleRate()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return out, nil
}

// BindFilter creates a named streaming filter owned by this session,
// replacing any filter previously bound under the name.
func (s *Session) BindFilter(name, filterType string, p dsp.Params) error {
	t, err := dsp.ParseFilterType(filterType)
	if err != nil {
		return fmt.Errorf("%w: filter type %q", ErrFormat, filterType)
	}
	f, err := dsp.New(t, p, float64(s.buffer.SampleRate()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[name] = f
	return nil
}

// ProcessFilter feeds the next chunk through the named streaming filter.
// Chunk-by-chunk processing matches a single whole-stream call exactly.
func (s *Session) ProcessFilter(name string, in []float64) ([]float64, error) {
	s.mu.Lock()
	f, ok := s.filters[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: no filter bound as %q", ErrFormat, name)
	}
	return f.Process(in), nil
}

// ReleaseFilter removes a named filter and its state. Releasing an unbound
// name is a no-op.
func (s *Session) ReleaseFilter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.filters, name)
}

// DetectWakeWord converts a normalized sample frame to integer PCM and
// forwards it to the detector. The frame must match the detector's required
// length; the session validates before forwarding.
func (s *Session) DetectWakeWord(d *wakeword.Detector, samples []float64) (bool, error) {
	required, err := d.FrameLength()
	if err != nil {
		return false, wrapCapabilityError(err)
	}
	if len(samples) != required {
		return false, fmt.Errorf("%w: got %d samples, detector requires %d",
			ErrFrameLength, len(samples), required)
	}

	match, err := d.Process(pcm.Int16Frame(samples))
	if err != nil {
		return false, wrapCapabilityError(err)
	}
	return match, nil
}

// SetWakeSensitivity adjusts the detector's sensitivity through the facade.
// Values outside [0, 1] are a caller error.
func (s *Session) SetWakeSensitivity(d *wakeword.Detector, sensitivity float64) error {
	if err := d.SetSensitivity(sensitivity); err != nil {
		return wrapCapabilityError(err)
	}
	return nil
}

// wrapCapabilityError maps capability-internal errors onto the session's
// boundary kinds so callers only ever match against errors.go.
func wrapCapabilityError(err error) error {
	switch {
	case errors.Is(err, wakeword.ErrNotInitialized), errors.Is(err, wakeword.ErrReleased):
		return fmt.Errorf("%w: %v", ErrUninitialized, err)
	case errors.Is(err, wakeword.ErrFrameLength):
		return fmt.Errorf("%w: %v", ErrFrameLength, err)
	case errors.Is(err, wakeword.ErrSensitivity):
		return fmt.Errorf("%w: %v", ErrFormat, err)
	default:
		return fmt.Errorf("%w: %v", ErrStream, err)
	}
}
