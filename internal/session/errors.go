// SPDX-License-Identifier: MIT
package session

import "errors"

// Boundary error kinds surfaced by the session facade. Callers match them
// with errors.Is; wrapped messages carry the operation-specific detail.
var (
	// ErrDevice marks a capture or playback device failure propagated from
	// the device layer.
	ErrDevice = errors.New("device error")

	// ErrStream marks a failure in an active capability session.
	ErrStream = errors.New("stream error")

	// ErrFormat marks a malformed or unsupported parameter.
	ErrFormat = errors.New("format error")

	// ErrFrameLength marks a frame that does not match a capability's
	// required length.
	ErrFrameLength = errors.New("frame length mismatch")

	// ErrUninitialized marks an operation on a capability before
	// initialization or after release.
	ErrUninitialized = errors.New("uninitialized state")
)
