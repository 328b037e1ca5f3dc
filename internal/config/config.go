// SPDX-License-Identifier: MIT
// Package config defines the runtime configuration for the voice front-end:
// built-in defaults, the YAML file layer and environment overrides.
package config

// Defaults and limits for the audio front-end. The buffer default keeps five
// seconds of mono 16 kHz audio, which covers the wake-word pre-roll plus a
// short utterance head.
const (
	DefaultDeviceID        = MinDeviceID // system default input device
	DefaultChannels        = 1           // mono capture
	DefaultSampleRate      = 16000       // speech models expect 16 kHz
	DefaultFramesPerBuffer = 512         // balanced latency/FFT resolution
	DefaultLowLatency      = false
	DefaultBufferSeconds   = 5.0
	DefaultGateThreshold   = 0.001 // normalized amplitude, 0=always open
	DefaultFFTWindow       = "hann"

	DefaultWakeSensitivity = 0.5
	DefaultWakeFrameLength = 512

	DefaultRecognizerRate  = 16000
	DefaultSynthesizerRate = 22050
	DefaultVoice           = "default"

	DefaultWSAddress = ":8080"

	// Hardware and processing limits.
	MinDeviceID     = -1     // -1 selects the system default device
	MinSampleRate   = 8000   // Hz
	MaxSampleRate   = 192000 // Hz
	MaxBufferFrames = 8192   // frames per buffer upper bound
)

// Config is the root configuration, loaded from defaults, then an optional
// YAML file, then environment overrides.
type Config struct {
	Debug     bool            `yaml:"debug"`
	LogLevel  string          `yaml:"log_level"`
	Command   string          `yaml:"command,omitempty"` // one-off command instead of running the engine
	Audio     AudioConfig     `yaml:"audio"`
	Buffer    BufferConfig    `yaml:"buffer"`
	Filter    FilterConfig    `yaml:"filter"`
	WakeWord  WakeWordConfig  `yaml:"wake_word"`
	Speech    SpeechConfig    `yaml:"speech"`
	Transport TransportConfig `yaml:"transport"`
}

// AudioConfig holds capture device and stream settings.
type AudioConfig struct {
	InputDevice     int     `yaml:"input_device"`      // PortAudio device index, -1 for default
	SampleRate      float64 `yaml:"sample_rate"`       // Hz
	FramesPerBuffer int     `yaml:"frames_per_buffer"` // affects latency and FFT resolution
	InputChannels   int     `yaml:"input_channels"`
	LowLatency      bool    `yaml:"low_latency"`
	GateThreshold   float64 `yaml:"gate_threshold"` // 0..1 on normalized samples
	FFTWindow       string  `yaml:"fft_window"`     // hann, hamming or blackman
}

// BufferConfig sizes the shared sample buffer.
type BufferConfig struct {
	Seconds float64 `yaml:"seconds"` // retained audio duration
}

// Capacity returns the buffer capacity in samples for the given rate.
func (b BufferConfig) Capacity(sampleRate float64) int {
	return int(b.Seconds * sampleRate)
}

// FilterConfig carries the default filter parameters handed to the session.
type FilterConfig struct {
	CutoffLow  float64 `yaml:"cutoff_low"`  // Hz
	CutoffHigh float64 `yaml:"cutoff_high"` // Hz
	Q          float64 `yaml:"q_factor"`
}

// WakeWordConfig configures the wake-word capability seam.
type WakeWordConfig struct {
	Sensitivity float64 `yaml:"sensitivity"`  // 0..1
	FrameLength int     `yaml:"frame_length"` // samples per detection frame
	ModelPath   string  `yaml:"model_path"`
	KeywordPath string  `yaml:"keyword_path"`
}

// SpeechConfig configures the recognition and synthesis capability seams.
type SpeechConfig struct {
	RecognizerModel  string `yaml:"recognizer_model"`
	RecognizerRate   int    `yaml:"recognizer_rate"`
	SynthesizerModel string `yaml:"synthesizer_model"`
	SynthesizerRate  int    `yaml:"synthesizer_rate"`
	Voice            string `yaml:"voice"`
}

// TransportConfig controls the outbound analysis feed.
type TransportConfig struct {
	WSEnabled bool   `yaml:"ws_enabled"`
	WSAddress string `yaml:"ws_address"`
}

// NewConfig returns a Config populated with the built-in defaults. This is
// the base before the YAML file and environment overrides are applied.
func NewConfig() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		Audio: AudioConfig{
			InputDevice:     DefaultDeviceID,
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
			InputChannels:   DefaultChannels,
			LowLatency:      DefaultLowLatency,
			GateThreshold:   DefaultGateThreshold,
			FFTWindow:       DefaultFFTWindow,
		},
		Buffer: BufferConfig{
			Seconds: DefaultBufferSeconds,
		},
		Filter: FilterConfig{
			CutoffLow:  500,
			CutoffHigh: 1000,
			Q:          1.0,
		},
		WakeWord: WakeWordConfig{
			Sensitivity: DefaultWakeSensitivity,
			FrameLength: DefaultWakeFrameLength,
		},
		Speech: SpeechConfig{
			RecognizerRate:  DefaultRecognizerRate,
			SynthesizerRate: DefaultSynthesizerRate,
			Voice:           DefaultVoice,
		},
		Transport: TransportConfig{
			WSEnabled: false,
			WSAddress: DefaultWSAddress,
		},
	}
}
