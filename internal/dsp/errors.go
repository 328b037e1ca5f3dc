// SPDX-License-Identifier: MIT
package dsp

import "errors"

var (
	// ErrUnknownFilterType is returned when a filter type outside the
	// supported set is requested. No computation is performed.
	ErrUnknownFilterType = errors.New("unknown filter type")

	// ErrInvalidParams is returned for out-of-range filter parameters
	// (non-positive cutoff or Q, band edges out of order).
	ErrInvalidParams = errors.New("invalid filter parameters")

	// ErrInvalidSampleRate is returned when a filter is constructed with a
	// non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
