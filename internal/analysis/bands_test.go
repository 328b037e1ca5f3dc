// SPDX-License-Identifier: MIT
package analysis

import (
	"testing"

	"voicefront/pkg/utils"
)

func newTestSpectrum(t *testing.T, freq float64) *SpectrumProcessor {
	t.Helper()
	processor, err := NewSpectrumProcessor(testFFTSize, testSampleRate, Hann, nil)
	if err != nil {
		t.Fatalf("NewSpectrumProcessor: %v", err)
	}
	processor.Process(utils.GenerateSineWave(testFFTSize, testSampleRate, freq))
	return processor
}

func TestBandEnergyVowelTone(t *testing.T) {
	// 500 Hz is squarely inside the vowel band.
	provider := newTestSpectrum(t, 500)
	bands := NewBandEnergyProcessor(nil, provider, nil)
	bands.Process(nil)

	levels := bands.Levels()
	if len(levels) != 4 {
		t.Fatalf("got %d bands, want 4", len(levels))
	}
	for name, level := range levels {
		if name == "vowels" {
			continue
		}
		if levels["vowels"] <= level {
			t.Errorf("vowel level %.4f not above %s level %.4f", levels["vowels"], name, level)
		}
	}
}

func TestBandEnergySibilantTone(t *testing.T) {
	provider := newTestSpectrum(t, 6000)
	bands := NewBandEnergyProcessor(nil, provider, nil)
	bands.Process(nil)

	levels := bands.Levels()
	for name, level := range levels {
		if name == "sibilance" {
			continue
		}
		if levels["sibilance"] <= level {
			t.Errorf("sibilance level %.4f not above %s level %.4f", levels["sibilance"], name, level)
		}
	}
}

func TestBandLevelsClamped(t *testing.T) {
	provider := newTestSpectrum(t, 500)
	bands := NewBandEnergyProcessor(nil, provider, nil)
	bands.Process(nil)

	for name, level := range bands.Levels() {
		if level < 0 || level > 1 {
			t.Errorf("band %s level %v outside [0, 1]", name, level)
		}
	}
}

func TestSpeechRatio(t *testing.T) {
	speech := NewBandEnergyProcessor(nil, newTestSpectrum(t, 500), nil)
	speech.Process(nil)
	if ratio := speech.SpeechRatio(); ratio < 0.9 {
		t.Errorf("speech ratio for a vowel tone = %.3f, want >= 0.9", ratio)
	}

	hiss := NewBandEnergyProcessor(nil, newTestSpectrum(t, 6000), nil)
	hiss.Process(nil)
	if ratio := hiss.SpeechRatio(); ratio > 0.5 {
		t.Errorf("speech ratio for sibilant tone = %.3f, want <= 0.5", ratio)
	}

	idle := NewBandEnergyProcessor(nil, nil, nil)
	if ratio := idle.SpeechRatio(); ratio != 0 {
		t.Errorf("speech ratio with no energy = %v, want 0", ratio)
	}
}

func TestBandEnergyPublishes(t *testing.T) {
	mock := &utils.MockTransport{}
	bands := NewBandEnergyProcessor(mock, newTestSpectrum(t, 500), nil)
	bands.Process(nil)

	frame, ok := mock.Last().(map[string]any)
	if !ok {
		t.Fatalf("published frame is %T, want map[string]any", mock.Last())
	}
	if frame["type"] != "band_energy" {
		t.Errorf("frame type = %v, want band_energy", frame["type"])
	}
	if _, ok := frame["vowels"].(float64); !ok {
		t.Error("frame missing vowels level")
	}
}

func TestBandEnergyNilProvider(t *testing.T) {
	mock := &utils.MockTransport{}
	bands := NewBandEnergyProcessor(mock, nil, nil)
	bands.Process(nil)

	if mock.Last() != nil {
		t.Error("nil provider should publish nothing")
	}
}

func BenchmarkBandEnergyProcess(b *testing.B) {
	processor, err := NewSpectrumProcessor(testFFTSize, testSampleRate, Hann, nil)
	if err != nil {
		b.Fatalf("NewSpectrumProcessor: %v", err)
	}
	processor.Process(utils.GenerateComplexWave(testFFTSize, testSampleRate))
	bands := NewBandEnergyProcessor(nil, processor, nil)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		bands.Process(nil)
	}
}
