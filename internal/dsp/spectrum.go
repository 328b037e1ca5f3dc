// SPDX-License-Identifier: MIT
/*
Package dsp provides the signal-processing stage of the voice front-end: a
magnitude-spectrum computation and a bank of streaming first-order filters.

Everything in this package operates on snapshot slices already copied out of
the sample buffer; nothing here touches the buffer lock or the capture path.
*/
package dsp

import (
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyzer computes magnitude spectra over finite sample sequences. The
// transform length always equals the input length; no windowing or
// zero-padding is applied. Results are deterministic for a fixed input.
//
// FFT plans are cached per input length so repeated analysis of equally sized
// snapshots does not replan. An Analyzer is safe for concurrent use.
type Analyzer struct {
	mu    sync.Mutex
	plans map[int]*fourier.CmplxFFT
}

// NewAnalyzer returns an Analyzer with an empty plan cache.
func NewAnalyzer() *Analyzer {
	return &Analyzer{plans: make(map[int]*fourier.CmplxFFT)}
}

// Magnitudes applies a forward DFT of length len(samples) and returns
// sqrt(re²+im²) for each of the N bins in order 0..N-1.
//
// len == 0 returns an empty slice; len == 1 returns the absolute value of the
// single sample. For real input the result is symmetric about bin N/2 up to
// floating-point rounding.
func (a *Analyzer) Magnitudes(samples []float64) []float64 {
	n := len(samples)
	switch n {
	case 0:
		return []float64{}
	case 1:
		v := samples[0]
		if v < 0 {
			v = -v
		}
		return []float64{v}
	}

	in := make([]complex128, n)
	for i, s := range samples {
		in[i] = complex(s, 0)
	}

	// gonum FFT plans carry scratch space, so the transform itself runs
	// under the lock as well.
	a.mu.Lock()
	plan, ok := a.plans[n]
	if !ok {
		plan = fourier.NewCmplxFFT(n)
		a.plans[n] = plan
	}
	coeffs := plan.Coefficients(nil, in)
	a.mu.Unlock()

	out := make([]float64, n)
	for i, c := range coeffs {
		out[i] = cmplx.Abs(c)
	}
	return out
}
