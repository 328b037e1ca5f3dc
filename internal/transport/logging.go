// SPDX-License-Identifier: MIT
package transport

import applog "voicefront/internal/log"

// LoggingTransport implements Transport by logging frame summaries at debug
// level. Useful during development when no websocket consumer is attached.
type LoggingTransport struct{}

// NewLoggingTransport creates a LoggingTransport.
func NewLoggingTransport() *LoggingTransport {
	return &LoggingTransport{}
}

// Send logs the payload type; magnitude slices log their length only.
func (lt *LoggingTransport) Send(data any) error {
	switch v := data.(type) {
	case []float64:
		applog.Debugf("transport: frame with %d bins", len(v))
	default:
		applog.Debugf("transport: %T %+v", v, v)
	}
	return nil
}

// Close is a no-op.
func (lt *LoggingTransport) Close() error {
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
