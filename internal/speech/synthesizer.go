// SPDX-License-Identifier: MIT
package speech

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-audio/wav"

	applog "voicefront/internal/log"
	"voicefront/internal/pcm"
)

// DefaultSynthesizerRate is the output sample rate synthesis models use by
// default, in Hz.
const DefaultSynthesizerRate = 22050

// Synthesizer renders text into 16-bit PCM. Like Recognizer it is a lifecycle
// shell: the synthesis model is a placeholder, the frame and encoding
// boundary is real.
type Synthesizer struct {
	mu          sync.Mutex
	modelPath   string
	voice       string
	sampleRate  int
	initialized bool
}

// NewSynthesizer creates an uninitialized synthesizer. An empty voice selects
// "default"; a non-positive sampleRate falls back to DefaultSynthesizerRate.
func NewSynthesizer(modelPath, voice string, sampleRate int) *Synthesizer {
	if voice == "" {
		voice = "default"
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSynthesizerRate
	}
	return &Synthesizer{modelPath: modelPath, voice: voice, sampleRate: sampleRate}
}

// Initialize loads the model. The model directory must exist.
func (s *Synthesizer) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.modelPath); err != nil {
		return fmt.Errorf("synthesizer model not found at %s: %w", s.modelPath, err)
	}

	s.initialized = true
	applog.Infof("speech: synthesizer initialized (model %s, voice %s, %d Hz)",
		s.modelPath, s.voice, s.sampleRate)
	return nil
}

// Synthesize renders text to PCM at the synthesizer's sample rate.
func (s *Synthesizer) Synthesize(text string) ([]int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	// Placeholder: a real engine would render audio for text here.
	_ = text
	return []int16{}, nil
}

// EncodeWAV writes a synthesized PCM frame as 16-bit mono WAV. The encoder
// needs to seek back to patch the header, hence io.WriteSeeker.
func (s *Synthesizer) EncodeWAV(w io.WriteSeeker, frame []int16) error {
	s.mu.Lock()
	rate := s.sampleRate
	initialized := s.initialized
	s.mu.Unlock()

	if !initialized {
		return ErrNotInitialized
	}

	enc := wav.NewEncoder(w, rate, 16, 1, 1)
	if err := enc.Write(pcm.IntBuffer(frame, rate)); err != nil {
		return fmt.Errorf("failed to encode synthesized audio: %w", err)
	}
	return enc.Close()
}

// SetVoice selects the synthesis voice.
func (s *Synthesizer) SetVoice(voice string) {
	s.mu.Lock()
	s.voice = voice
	s.mu.Unlock()
}

// Voice returns the current synthesis voice.
func (s *Synthesizer) Voice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

// SetSampleRate changes the output rate for subsequent synthesis.
func (s *Synthesizer) SetSampleRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", rate)
	}
	s.mu.Lock()
	s.sampleRate = rate
	s.mu.Unlock()
	return nil
}

// SampleRate returns the output rate in Hz.
func (s *Synthesizer) SampleRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleRate
}

// Release frees engine resources.
func (s *Synthesizer) Release() {
	s.mu.Lock()
	s.initialized = false
	s.mu.Unlock()
}
