// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	applog "voicefront/internal/log"
	"voicefront/pkg/bitint"
)

// LoadConfig loads configuration from a YAML file at path. If path is empty
// it looks for "config.yaml" in the working directory and falls back to the
// built-in defaults when no file exists. Environment overrides are applied
// after the file layer, then the result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against the documented limits.
func (c *Config) Validate() error {
	if c.Audio.SampleRate < MinSampleRate || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate %v outside [%d, %d]",
			c.Audio.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Audio.InputChannels < 1 {
		return fmt.Errorf("audio.input_channels must be at least 1, got %d", c.Audio.InputChannels)
	}
	if c.Audio.FramesPerBuffer < 1 || c.Audio.FramesPerBuffer > MaxBufferFrames {
		return fmt.Errorf("audio.frames_per_buffer %d outside [1, %d]",
			c.Audio.FramesPerBuffer, MaxBufferFrames)
	}
	if !bitint.IsPowerOfTwo(c.Audio.FramesPerBuffer) {
		return fmt.Errorf("audio.frames_per_buffer %d must be a power of 2", c.Audio.FramesPerBuffer)
	}
	if c.Audio.GateThreshold < 0 || c.Audio.GateThreshold > 1 {
		return fmt.Errorf("audio.gate_threshold %v outside [0, 1]", c.Audio.GateThreshold)
	}
	if c.Buffer.Seconds <= 0 {
		return fmt.Errorf("buffer.seconds must be positive, got %v", c.Buffer.Seconds)
	}
	if c.Filter.CutoffLow <= 0 || c.Filter.CutoffHigh <= 0 || c.Filter.Q <= 0 {
		return fmt.Errorf("filter cutoffs and q_factor must be positive")
	}
	if c.Filter.CutoffLow >= c.Filter.CutoffHigh {
		return fmt.Errorf("filter.cutoff_low %v must be below filter.cutoff_high %v",
			c.Filter.CutoffLow, c.Filter.CutoffHigh)
	}
	if c.WakeWord.Sensitivity < 0 || c.WakeWord.Sensitivity > 1 {
		return fmt.Errorf("wake_word.sensitivity %v outside [0, 1]", c.WakeWord.Sensitivity)
	}
	if c.WakeWord.FrameLength < 1 {
		return fmt.Errorf("wake_word.frame_length must be positive, got %d", c.WakeWord.FrameLength)
	}
	if _, ok := applog.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Transport.WSEnabled && c.Transport.WSAddress == "" {
		return fmt.Errorf("transport.ws_address must be set when the websocket feed is enabled")
	}
	return nil
}

// applyEnvOverrides layers VOICEFRONT_* environment variables over the
// current values. Unparseable values are ignored with a warning.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("VOICEFRONT_DEBUG"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Debug = b
		} else {
			applog.Warnf("config: ignoring unparseable VOICEFRONT_DEBUG=%q", val)
		}
	}
	if val, ok := os.LookupEnv("VOICEFRONT_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("VOICEFRONT_WS_ENABLED"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Transport.WSEnabled = b
		} else {
			applog.Warnf("config: ignoring unparseable VOICEFRONT_WS_ENABLED=%q", val)
		}
	}
	if val, ok := os.LookupEnv("VOICEFRONT_WS_ADDRESS"); ok {
		c.Transport.WSAddress = val
	}
	if val, ok := os.LookupEnv("VOICEFRONT_WAKE_SENSITIVITY"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.WakeWord.Sensitivity = f
		} else {
			applog.Warnf("config: ignoring unparseable VOICEFRONT_WAKE_SENSITIVITY=%q", val)
		}
	}
}
