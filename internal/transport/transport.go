// SPDX-License-Identifier: MIT
// Package transport moves analysis frames (spectra, band energies, wake
// events) out of the process. Implementations must be thread-safe and must
// never block the caller: a slow or absent consumer drops frames.
package transport

// Transport is the outbound side of the analysis feed.
type Transport interface {
	Send(data any) error
	Close() error
}
