// SPDX-License-Identifier: MIT
// Package utils holds shared test support: deterministic signal generators
// and a transport stub for inspecting published analysis frames.
package utils

import (
	"math"
	"sync"
)

// MockTransport implements the transport interface for testing. It stores
// what was sent instead of transmitting.
type MockTransport struct {
	mu    sync.Mutex
	Sent  []any
	Drops int
}

// Send records the payload for later inspection.
func (m *MockTransport) Send(data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mags, ok := data.([]float64); ok {
		// Copy slices: callers reuse their buffers between sends.
		cp := make([]float64, len(mags))
		copy(cp, mags)
		m.Sent = append(m.Sent, cp)
		return nil
	}
	m.Sent = append(m.Sent, data)
	return nil
}

// Close is a no-op.
func (m *MockTransport) Close() error { return nil }

// Last returns the most recently sent payload, or nil.
func (m *MockTransport) Last() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return m.Sent[len(m.Sent)-1]
}

// GenerateSineWave returns size unit-amplitude samples of a sine at the
// given frequency.
func GenerateSineWave(size int, sampleRate, frequency float64) []float64 {
	out := make([]float64, size)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = math.Sin(2 * math.Pi * frequency * t)
	}
	return out
}

// GenerateComplexWave returns a 440 Hz fundamental plus two harmonics,
// scaled to stay inside unit range.
func GenerateComplexWave(size int, sampleRate float64) []float64 {
	out := make([]float64, size)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = math.Sin(2*math.Pi*440*t)*0.5 +
			math.Sin(2*math.Pi*880*t)*0.3 +
			math.Sin(2*math.Pi*1320*t)*0.2
	}
	return out
}

// FindPeakBin returns the index of the largest magnitude in
// magnitudes[startBin..endBin].
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}
	if startBin < 0 {
		startBin = 0
	}
	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > magnitudes[peakBin] {
			peakBin = bin
		}
	}
	return peakBin
}
