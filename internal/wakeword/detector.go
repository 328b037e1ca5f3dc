// SPDX-License-Identifier: MIT
/*
Package wakeword wraps an external keyword-spotting engine in the lifecycle
and validation the voice front-end requires. The detection model itself is
opaque: anything satisfying Engine can be plugged in.
*/
package wakeword

import (
	"errors"
	"fmt"
	"sync"

	applog "voicefront/internal/log"
)

var (
	// ErrNotInitialized is returned for operations that require a
	// successfully initialized engine.
	ErrNotInitialized = errors.New("wake word detector not initialized")

	// ErrReleased is returned once Release has been called; a released
	// detector cannot be reused.
	ErrReleased = errors.New("wake word detector released")

	// ErrSensitivity is returned when a sensitivity outside [0, 1] is set.
	ErrSensitivity = errors.New("sensitivity must be between 0.0 and 1.0")

	// ErrFrameLength is returned when a frame does not match the engine's
	// required length.
	ErrFrameLength = errors.New("audio frame length mismatch")
)

// Engine is the contract an external wake-word implementation must satisfy.
// Process consumes one frame of 16-bit PCM of exactly FrameLength samples at
// SampleRate and reports whether the keyword was heard.
type Engine interface {
	FrameLength() int
	SampleRate() int
	Process(frame []int16) (bool, error)
}

// State tracks the detector lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateInactive
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Detector owns an Engine and enforces the legal lifecycle:
// Uninitialized -> Active (Initialize), Active <-> Inactive (SetActive),
// any -> Released (Release, terminal). Calls outside these transitions fail
// with ErrNotInitialized or ErrReleased.
type Detector struct {
	mu          sync.Mutex
	engine      Engine
	state       State
	sensitivity float64
}

// NewDetector returns an uninitialized detector with the default sensitivity
// of 0.5.
func NewDetector() *Detector {
	return &Detector{sensitivity: 0.5}
}

// Initialize attaches the engine and activates the detector. Only legal from
// the uninitialized state.
func (d *Detector) Initialize(engine Engine) error {
	if engine == nil {
		return fmt.Errorf("wake word engine must not be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case StateReleased:
		return ErrReleased
	case StateActive, StateInactive:
		return fmt.Errorf("wake word detector already initialized")
	}

	d.engine = engine
	d.state = StateActive
	applog.Infof("wakeword: initialized (frame length %d, sample rate %d Hz)",
		engine.FrameLength(), engine.SampleRate())
	return nil
}

// Process forwards one PCM frame to the engine. The frame length is validated
// against the engine's requirement before forwarding. An inactive detector
// reports no match without consulting the engine.
func (d *Detector) Process(frame []int16) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireInitialized(); err != nil {
		return false, err
	}
	if d.state == StateInactive {
		return false, nil
	}
	if len(frame) != d.engine.FrameLength() {
		return false, fmt.Errorf("%w: got %d samples, engine requires %d",
			ErrFrameLength, len(frame), d.engine.FrameLength())
	}
	return d.engine.Process(frame)
}

// FrameLength reports the engine's required frame length in samples.
func (d *Detector) FrameLength() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInitialized(); err != nil {
		return 0, err
	}
	return d.engine.FrameLength(), nil
}

// SampleRate reports the engine's required sample rate in Hz.
func (d *Detector) SampleRate() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInitialized(); err != nil {
		return 0, err
	}
	return d.engine.SampleRate(), nil
}

// SetSensitivity updates the detection sensitivity. Valid range is [0, 1]
// inclusive.
func (d *Detector) SetSensitivity(s float64) error {
	if s < 0 || s > 1 {
		return fmt.Errorf("%w: got %v", ErrSensitivity, s)
	}
	d.mu.Lock()
	d.sensitivity = s
	d.mu.Unlock()
	return nil
}

// Sensitivity returns the current detection sensitivity.
func (d *Detector) Sensitivity() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sensitivity
}

// SetActive toggles between the active and inactive states. Only legal after
// initialization and before release.
func (d *Detector) SetActive(active bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.requireInitialized(); err != nil {
		return err
	}
	if active {
		d.state = StateActive
	} else {
		d.state = StateInactive
	}
	return nil
}

// Active reports whether the detector is initialized and active.
func (d *Detector) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == StateActive
}

// State returns the current lifecycle state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Release drops the engine and moves to the terminal state. Safe to call from
// any state and idempotent.
func (d *Detector) Release() {
	d.mu.Lock()
	d.engine = nil
	d.state = StateReleased
	d.mu.Unlock()
}

// requireInitialized must be called with d.mu held.
func (d *Detector) requireInitialized() error {
	switch d.state {
	case StateUninitialized:
		return ErrNotInitialized
	case StateReleased:
		return ErrReleased
	}
	return nil
}
