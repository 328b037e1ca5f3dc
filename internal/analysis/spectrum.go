// SPDX-License-Identifier: MIT
/*
Package analysis implements the streaming side of spectral processing: a
windowed power-of-2 FFT that runs once per capture buffer and publishes
magnitudes through a transport, plus processors layered on its results.

This is distinct from dsp.Analyzer, which computes exact arbitrary-length
spectra over buffer snapshots on demand. The streaming processor trades that
generality for a zero-allocation hot path.
*/
package analysis

import (
	"fmt"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"voicefront/internal/transport"
	"voicefront/pkg/bitint"
)

// WindowFunc selects the analysis window applied before the transform.
type WindowFunc int

const (
	Hann WindowFunc = iota
	Hamming
	Blackman
)

// ParseWindow maps a configuration string to a WindowFunc. Unknown names
// return Hann and false.
func ParseWindow(s string) (WindowFunc, bool) {
	switch s {
	case "hann", "Hann", "":
		return Hann, true
	case "hamming", "Hamming":
		return Hamming, true
	case "blackman", "Blackman":
		return Blackman, true
	default:
		return Hann, false
	}
}

// spectrumWorkspace holds the pre-allocated buffers for the hot path.
type spectrumWorkspace struct {
	input     []float64    // windowed input
	coeffs    []complex128 // FFT output, fftSize/2+1 bins
	magnitude []float64    // latest magnitudes, guarded by mu
	window    []float64    // window coefficients
	mu        sync.RWMutex
}

// SpectrumProcessor performs windowed FFT analysis on successive capture
// buffers and publishes each frame's magnitudes. Buffers shorter than the
// FFT size are zero-padded. Safe for one producer and many readers.
type SpectrumProcessor struct {
	fftSize    int
	sampleRate float64
	fft        *fourier.FFT
	transport  transport.Transport
	workspace  spectrumWorkspace
}

// NewSpectrumProcessor creates a processor for power-of-2 fftSize buffers at
// sampleRate. transport may be nil to disable publishing.
func NewSpectrumProcessor(fftSize int, sampleRate float64, win WindowFunc, tr transport.Transport) (*SpectrumProcessor, error) {
	if !bitint.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("fft size %d must be a power of 2", fftSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %v", sampleRate)
	}

	coeffs := make([]float64, fftSize)
	for i := range coeffs {
		coeffs[i] = 1
	}
	switch win {
	case Hamming:
		window.Hamming(coeffs)
	case Blackman:
		window.Blackman(coeffs)
	default:
		window.Hann(coeffs)
	}

	outputSize := fftSize/2 + 1
	return &SpectrumProcessor{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		fft:        fourier.NewFFT(fftSize),
		transport:  tr,
		workspace: spectrumWorkspace{
			input:     make([]float64, fftSize),
			coeffs:    make([]complex128, outputSize),
			magnitude: make([]float64, outputSize),
			window:    coeffs,
		},
	}, nil
}

// Process analyzes one capture buffer and publishes the magnitudes. With a
// nil transport the hot path performs no allocations.
func (p *SpectrumProcessor) Process(buffer []float64) {
	w := &p.workspace
	for i := range w.input {
		if i < len(buffer) {
			w.input[i] = buffer[i] * w.window[i]
		} else {
			w.input[i] = 0
		}
	}

	p.fft.Coefficients(w.coeffs, w.input)

	w.mu.Lock()
	for i, c := range w.coeffs {
		w.magnitude[i] = cmplx.Abs(c)
	}
	w.mu.Unlock()

	if p.transport != nil {
		// Publish a copy; the broadcast goroutine serializes it after
		// this frame's workspace may already be rewritten.
		_ = p.transport.Send(p.Magnitudes())
	}
}

// Magnitudes returns a copy of the latest magnitude spectrum, fftSize/2+1
// bins from DC to Nyquist.
func (p *SpectrumProcessor) Magnitudes() []float64 {
	p.workspace.mu.RLock()
	defer p.workspace.mu.RUnlock()
	out := make([]float64, len(p.workspace.magnitude))
	copy(out, p.workspace.magnitude)
	return out
}

// FrequencyForBin returns the center frequency in Hz for a bin index.
func (p *SpectrumProcessor) FrequencyForBin(i int) float64 {
	if i < 0 || i >= len(p.workspace.coeffs) {
		return 0
	}
	return p.fft.Freq(i) * p.sampleRate
}

// Size returns the FFT length in points.
func (p *SpectrumProcessor) Size() int { return p.fftSize }

// SampleRate returns the analysis sample rate in Hz.
func (p *SpectrumProcessor) SampleRate() float64 { return p.sampleRate }

// Close shuts down the attached transport, if any.
func (p *SpectrumProcessor) Close() error {
	if p.transport != nil {
		return p.transport.Close()
	}
	return nil
}

var (
	_ ClosableProcessor = (*SpectrumProcessor)(nil)
	_ SpectrumProvider  = (*SpectrumProcessor)(nil)
)
