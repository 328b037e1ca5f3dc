// SPDX-License-Identifier: MIT
package analysis

import (
	"math"

	applog "voicefront/internal/log"
	"voicefront/internal/transport"
)

// FrequencyBand names a frequency range and accumulates its energy for the
// current frame.
type FrequencyBand struct {
	Name    string
	LowHz   float64
	HighHz  float64
	energy  float64
	numBins int
}

// VoiceBands returns the default speech-oriented band layout: fundamental
// voicing, vowel formants, consonant detail and sibilance.
func VoiceBands() []*FrequencyBand {
	return []*FrequencyBand{
		{Name: "voicing", LowHz: 80, HighHz: 250},
		{Name: "vowels", LowHz: 250, HighHz: 1000},
		{Name: "consonants", LowHz: 1000, HighHz: 4000},
		{Name: "sibilance", LowHz: 4000, HighHz: 8000},
	}
}

// BandEnergyProcessor folds a spectrum provider's magnitudes into named band
// energies and publishes them. Downstream stages use the speech bands as a
// cheap "is anyone talking" signal before waking the heavier capabilities.
type BandEnergyProcessor struct {
	transport transport.Transport
	provider  SpectrumProvider
	bands     []*FrequencyBand
}

// NewBandEnergyProcessor creates a processor over the given provider. A nil
// bands slice selects VoiceBands.
func NewBandEnergyProcessor(tr transport.Transport, provider SpectrumProvider, bands []*FrequencyBand) *BandEnergyProcessor {
	if bands == nil {
		bands = VoiceBands()
	}
	return &BandEnergyProcessor{
		transport: tr,
		provider:  provider,
		bands:     bands,
	}
}

// Process recomputes band energies from the provider's latest spectrum and
// publishes them. The buffer itself is unused; register this processor after
// the spectrum processor so it sees the current frame's result.
func (p *BandEnergyProcessor) Process(_ []float64) {
	if p.provider == nil {
		return
	}
	magnitudes := p.provider.Magnitudes()
	if len(magnitudes) == 0 {
		return
	}

	for _, band := range p.bands {
		band.energy = 0
		band.numBins = 0
	}

	for i, mag := range magnitudes {
		freq := p.provider.FrequencyForBin(i)
		for _, band := range p.bands {
			if freq >= band.LowHz && freq < band.HighHz {
				band.energy += mag * mag
				band.numBins++
				break
			}
		}
	}

	if p.transport == nil {
		return
	}
	frame := map[string]any{"type": "band_energy"}
	for name, level := range p.Levels() {
		frame[name] = level
	}
	if err := p.transport.Send(frame); err != nil {
		applog.Warnf("analysis: failed to publish band energies: %v", err)
	}
}

// Levels returns the per-band normalized level from the last Process call,
// clamped to [0, 1].
func (p *BandEnergyProcessor) Levels() map[string]float64 {
	out := make(map[string]float64, len(p.bands))
	for _, band := range p.bands {
		avg := 0.0
		if band.numBins > 0 {
			avg = band.energy / float64(band.numBins)
		}
		out[band.Name] = math.Min(1.0, math.Sqrt(avg))
	}
	return out
}

// SpeechRatio returns the fraction of total band energy inside the speech
// range (voicing through consonants). Zero when no energy was measured.
func (p *BandEnergyProcessor) SpeechRatio() float64 {
	var speech, total float64
	for _, band := range p.bands {
		total += band.energy
		if band.HighHz <= 4000 {
			speech += band.energy
		}
	}
	if total == 0 {
		return 0
	}
	return speech / total
}

var _ SampleProcessor = (*BandEnergyProcessor)(nil)
