// SPDX-License-Identifier: MIT
/*
Package pcm owns the conversion seam between the unit-normalized float samples
used by the buffer/filter/spectrum path and the integer PCM frames consumed by
the wake-word and speech capabilities.

Conventions:
  - Float samples are nominally in [-1.0, 1.0]; values outside are clamped on
    the way to integer PCM, never wrapped.
  - Positive full scale maps to 32767 so that +1.0 stays representable;
    int16 -> float divides by 32768, making every int16 value round-trip.
  - Capture input arrives as int32 from the device layer and is normalized by
    MaxInt32.
*/
package pcm

import (
	"math"

	"github.com/go-audio/audio"
)

// Float64ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float64ToInt16(x float64) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767.0)
}

// Int16ToFloat64 maps a 16-bit PCM sample into [-1, 1).
func Int16ToFloat64(s int16) float64 {
	return float64(s) / 32768.0
}

// Int32ToFloat64 normalizes a full-scale 32-bit capture sample to [-1, 1].
func Int32ToFloat64(s int32) float64 {
	return float64(s) / float64(math.MaxInt32)
}

// Int16Frame converts a slice of unit floats to a 16-bit PCM frame.
func Int16Frame(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = Float64ToInt16(s)
	}
	return out
}

// Float64Frame converts a 16-bit PCM frame to unit floats.
func Float64Frame(frame []int16) []float64 {
	out := make([]float64, len(frame))
	for i, s := range frame {
		out[i] = Int16ToFloat64(s)
	}
	return out
}

// IntBuffer wraps a 16-bit PCM frame in a go-audio buffer for encoders and
// other go-audio consumers. The frame is mono at the given sample rate.
func IntBuffer(frame []int16, sampleRate int) *audio.IntBuffer {
	data := make([]int, len(frame))
	for i, s := range frame {
		data[i] = int(s)
	}
	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 16,
		Data:           data,
	}
}
