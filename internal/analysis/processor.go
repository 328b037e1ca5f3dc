// SPDX-License-Identifier: MIT
package analysis

// SampleProcessor is the standard interface for components fed from the
// capture path. Implementations must be efficient: Process is called from
// the real-time audio callback with a snapshot of normalized samples.
type SampleProcessor interface {
	Process(buffer []float64)
}

// ClosableProcessor combines SampleProcessor with resource cleanup.
type ClosableProcessor interface {
	SampleProcessor
	Close() error
}

// SpectrumProvider exposes the latest streaming FFT result to downstream
// processors without coupling them to the concrete implementation.
type SpectrumProvider interface {
	// Magnitudes returns a copy of the latest magnitude spectrum.
	Magnitudes() []float64
	// FrequencyForBin returns the center frequency in Hz for a bin index.
	FrequencyForBin(binIndex int) float64
	// Size returns the FFT length in points.
	Size() int
	// SampleRate returns the analysis sample rate in Hz.
	SampleRate() float64
}
