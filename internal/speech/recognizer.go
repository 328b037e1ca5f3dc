// SPDX-License-Identifier: MIT
/*
Package speech holds the recognition and synthesis capability contracts. Both
are lifecycle shells around engines that are not part of this repository: the
front-end cares about initialize/process/reset/release semantics and the PCM
frame boundary, not about the models behind them.
*/
package speech

import (
	"errors"
	"fmt"
	"os"
	"sync"

	applog "voicefront/internal/log"
)

// ErrNotInitialized is returned when process, reset or synthesize is called
// before Initialize or after Release.
var ErrNotInitialized = errors.New("speech engine not initialized")

// DefaultRecognizerRate is the sample rate recognition models expect by
// default, in Hz.
const DefaultRecognizerRate = 16000

// Recognizer converts 16-bit PCM frames into text. The recognition model is a
// placeholder; the lifecycle and the frame contract are what downstream code
// builds against.
type Recognizer struct {
	mu          sync.Mutex
	modelPath   string
	sampleRate  int
	initialized bool
	active      bool
}

// NewRecognizer creates an uninitialized recognizer for the model at
// modelPath. A non-positive sampleRate falls back to DefaultRecognizerRate.
func NewRecognizer(modelPath string, sampleRate int) *Recognizer {
	if sampleRate <= 0 {
		sampleRate = DefaultRecognizerRate
	}
	return &Recognizer{modelPath: modelPath, sampleRate: sampleRate}
}

// Initialize loads the model and activates the recognizer. The model
// directory must exist.
func (r *Recognizer) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.modelPath); err != nil {
		return fmt.Errorf("recognizer model not found at %s: %w", r.modelPath, err)
	}

	r.initialized = true
	r.active = true
	applog.Infof("speech: recognizer initialized (model %s, %d Hz)", r.modelPath, r.sampleRate)
	return nil
}

// Process feeds one PCM frame to the recognizer. It returns the recognized
// text and true once a result is available; an inactive recognizer consumes
// the frame silently.
func (r *Recognizer) Process(frame []int16) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return "", false, ErrNotInitialized
	}
	if !r.active {
		return "", false, nil
	}

	// Placeholder: a real engine would consume the frame here and emit
	// partial or final hypotheses.
	_ = frame
	return "", false, nil
}

// Reset clears any in-flight recognition state.
func (r *Recognizer) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return ErrNotInitialized
	}
	return nil
}

// SetActive toggles recognition without tearing down the model. Activating an
// uninitialized recognizer is illegal.
func (r *Recognizer) SetActive(active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if active && !r.initialized {
		return ErrNotInitialized
	}
	r.active = active
	return nil
}

// Active reports whether the recognizer is accepting frames.
func (r *Recognizer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// SetSampleRate changes the expected input rate; the next Initialize applies it.
func (r *Recognizer) SetSampleRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", rate)
	}
	r.mu.Lock()
	r.sampleRate = rate
	r.mu.Unlock()
	return nil
}

// SampleRate returns the expected input rate in Hz.
func (r *Recognizer) SampleRate() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleRate
}

// Release frees engine resources. Further calls other than Release fail with
// ErrNotInitialized.
func (r *Recognizer) Release() {
	r.mu.Lock()
	r.initialized = false
	r.active = false
	r.mu.Unlock()
}
