// SPDX-License-Identifier: MIT
/*
Package audio implements the capture front-end: a PortAudio input stream
whose callback normalizes 32-bit device samples to unit floats, gates out
silence and fans the frame out to the session buffer and the streaming
analysis processors.

The callback path uses pre-allocated buffers only; nothing in it allocates
or blocks beyond the session buffer's short critical section.
*/
package audio

import (
	"runtime"
	"time"

	"github.com/gordonklaus/portaudio"

	"voicefront/internal/analysis"
	"voicefront/internal/config"
	applog "voicefront/internal/log"
	"voicefront/internal/pcm"
	"voicefront/internal/session"
)

// Engine owns the input stream and the capture-side wiring.
type Engine struct {
	config *config.Config

	inputBuffer  []int32
	inputDevice  *portaudio.DeviceInfo
	inputLatency time.Duration
	inputStream  *portaudio.Stream

	// monoSamples holds the normalized mono frame handed to consumers.
	monoSamples []float64

	gate       Gate
	session    *session.Session
	processors []analysis.SampleProcessor
}

// NewEngine resolves the configured input device and wires the capture path
// to the session and the given processors. PortAudio must be initialized.
func NewEngine(cfg *config.Config, sess *session.Session, processors ...analysis.SampleProcessor) (*Engine, error) {
	inputDevice, err := InputDevice(cfg.Audio.InputDevice)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:      cfg,
		inputBuffer: make([]int32, cfg.Audio.FramesPerBuffer*cfg.Audio.InputChannels),
		inputDevice: inputDevice,
		monoSamples: make([]float64, cfg.Audio.FramesPerBuffer),
		gate:        NewGate(cfg.Audio.GateThreshold),
		session:     sess,
		processors:  processors,
	}

	if cfg.Audio.LowLatency {
		engine.inputLatency = inputDevice.DefaultLowInputLatency
	} else {
		engine.inputLatency = inputDevice.DefaultHighInputLatency
	}

	applog.Infof("audio: using input device %q (latency %v)", inputDevice.Name, engine.inputLatency)
	return engine, nil
}

// StartInputStream opens and starts the capture stream.
func (e *Engine) StartInputStream() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: e.config.Audio.InputChannels,
			Device:   e.inputDevice,
			Latency:  e.inputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Channels: 0,
			Device:   nil,
		},
		FramesPerBuffer: e.config.Audio.FramesPerBuffer,
		SampleRate:      e.config.Audio.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, e.processInputStream)
	if err != nil {
		return wrapDeviceError("open input stream", err)
	}
	e.inputStream = stream

	if err := e.inputStream.Start(); err != nil {
		e.inputStream.Close()
		e.inputStream = nil
		return wrapDeviceError("start input stream", err)
	}

	applog.Infof("audio: capture started at %.0f Hz, %d frames per buffer",
		e.config.Audio.SampleRate, e.config.Audio.FramesPerBuffer)
	return nil
}

// StopInputStream stops and closes the capture stream. Safe to call when no
// stream is open.
func (e *Engine) StopInputStream() error {
	if e.inputStream == nil {
		return nil
	}
	if err := e.inputStream.Stop(); err != nil {
		return wrapDeviceError("stop input stream", err)
	}
	if err := e.inputStream.Close(); err != nil {
		return wrapDeviceError("close input stream", err)
	}
	e.inputStream = nil
	applog.Infof("audio: capture stopped")
	return nil
}

// EnableGate turns silence gating on.
func (e *Engine) EnableGate() { e.gate.Enable() }

// DisableGate turns silence gating off; every frame then reaches consumers.
func (e *Engine) DisableGate() { e.gate.Disable() }

// SetGateThreshold adjusts the noise gate threshold, 0=always open and
// 1=always closed.
func (e *Engine) SetGateThreshold(threshold float64) {
	e.gate.SetThreshold(threshold)
}

// GateThreshold returns the current noise gate threshold.
func (e *Engine) GateThreshold() float64 {
	return e.gate.Threshold()
}

// processInputStream is the capture callback. Performance critical: runs on
// a dedicated OS thread and touches pre-allocated buffers only.
func (e *Engine) processInputStream(in []int32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	copy(e.inputBuffer, in)
	e.processBuffer(e.inputBuffer)
}

// processBuffer extracts the first channel, normalizes it and fans the frame
// out when the gate is open. Dropped frames are a policy, not an error.
func (e *Engine) processBuffer(buffer []int32) {
	channels := e.config.Audio.InputChannels
	for i := range e.monoSamples {
		if idx := i * channels; idx < len(buffer) {
			e.monoSamples[i] = pcm.Int32ToFloat64(buffer[idx])
		} else {
			e.monoSamples[i] = 0
		}
	}

	if !e.gate.Open(e.monoSamples) {
		return
	}

	e.session.AddSamples(e.monoSamples)
	for _, p := range e.processors {
		p.Process(e.monoSamples)
	}
}
