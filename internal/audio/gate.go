// SPDX-License-Identifier: MIT
package audio

import "math"

// Gate is a peak-amplitude noise gate on unit-normalized samples. A closed
// gate keeps silence out of the buffer and the analysis chain so the
// downstream capabilities only ever see frames worth inspecting.
type Gate struct {
	enabled   bool
	threshold float64 // 0=always open, 1=always closed
}

// NewGate returns an enabled gate with the given threshold, clamped to [0, 1].
func NewGate(threshold float64) Gate {
	g := Gate{enabled: true}
	g.SetThreshold(threshold)
	return g
}

// Enable turns the gate on.
func (g *Gate) Enable() { g.enabled = true }

// Disable turns the gate off; Open then always reports true.
func (g *Gate) Disable() { g.enabled = false }

// Enabled reports whether the gate participates in the capture path.
func (g *Gate) Enabled() bool { return g.enabled }

// SetThreshold adjusts the gate threshold, clamped to [0, 1].
func (g *Gate) SetThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	g.threshold = threshold
}

// Threshold returns the current threshold.
func (g *Gate) Threshold() float64 { return g.threshold }

// Open reports whether the frame's peak amplitude clears the threshold.
// Hot path: no allocations.
func (g *Gate) Open(samples []float64) bool {
	if !g.enabled {
		return true
	}
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak > g.threshold
}
