// SPDX-License-Identifier: MIT
package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitudesOfSilence(t *testing.T) {
	a := NewAnalyzer()
	got := a.Magnitudes([]float64{0, 0, 0, 0})
	assert.Equal(t, []float64{0, 0, 0, 0}, got)
}

func TestMagnitudesEdgeLengths(t *testing.T) {
	a := NewAnalyzer()

	assert.Empty(t, a.Magnitudes(nil))
	assert.Empty(t, a.Magnitudes([]float64{}))
	assert.Equal(t, []float64{0.25}, a.Magnitudes([]float64{-0.25}))
	assert.Equal(t, []float64{0.5}, a.Magnitudes([]float64{0.5}))
}

func TestMagnitudesLengthMatchesInput(t *testing.T) {
	a := NewAnalyzer()
	for _, n := range []int{1, 2, 3, 7, 64, 100, 1024} {
		in := make([]float64, n)
		for i := range in {
			in[i] = math.Sin(float64(i) * 0.37)
		}
		assert.Len(t, a.Magnitudes(in), n, "N=%d", n)
	}
}

func TestMagnitudesDCComponent(t *testing.T) {
	a := NewAnalyzer()
	in := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	got := a.Magnitudes(in)
	require.Len(t, got, 8)

	// Constant signal concentrates all energy in bin 0: |X[0]| = N*c.
	assert.InDelta(t, 4.0, got[0], 1e-12)
	for i := 1; i < len(got); i++ {
		assert.InDelta(t, 0.0, got[i], 1e-9, "bin %d", i)
	}
}

func TestMagnitudesSinePeakBin(t *testing.T) {
	const (
		n          = 256
		sampleRate = 16000.0
	)
	a := NewAnalyzer()

	// Bin-aligned sine at bin 8 (500 Hz for these parameters).
	const bin = 8
	in := make([]float64, n)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * bin * float64(i) / n)
	}

	got := a.Magnitudes(in)
	peak := 0
	for i := 1; i < n/2; i++ {
		if got[i] > got[peak] {
			peak = i
		}
	}
	assert.Equal(t, bin, peak)
	// Pure bin-aligned sine: |X[bin]| = N/2.
	assert.InDelta(t, n/2, got[bin], 1e-9)
}

func TestMagnitudesHermitianSymmetry(t *testing.T) {
	a := NewAnalyzer()
	in := make([]float64, 100)
	for i := range in {
		in[i] = math.Sin(float64(i)*0.11) + 0.3*math.Cos(float64(i)*0.7)
	}

	got := a.Magnitudes(in)
	for k := 1; k < len(in); k++ {
		assert.InDelta(t, got[k], got[len(in)-k], 1e-9, "bin %d", k)
	}
}

func TestMagnitudesDeterministic(t *testing.T) {
	a := NewAnalyzer()
	in := make([]float64, 333)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.051)
	}

	first := a.Magnitudes(in)
	second := a.Magnitudes(in)
	assert.Equal(t, first, second)
}

func TestMagnitudesConcurrent(t *testing.T) {
	a := NewAnalyzer()
	in := make([]float64, 128)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.2)
	}
	want := a.Magnitudes(in)

	done := make(chan []float64, 8)
	for g := 0; g < 8; g++ {
		go func() { done <- a.Magnitudes(in) }()
	}
	for g := 0; g < 8; g++ {
		assert.Equal(t, want, <-done)
	}
}

func BenchmarkMagnitudes(b *testing.B) {
	a := NewAnalyzer()
	in := make([]float64, 1024)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.17)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = a.Magnitudes(in)
	}
}
