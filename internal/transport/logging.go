package transport

import (
	applog "bitbrush/internal/log"
)

// LoggingTransport implements the Transport interface by logging each
// frame at debug level. Useful when no network collaborator is
// configured.
type LoggingTransport struct{}

// NewLoggingTransport creates a new LoggingTransport instance.
func NewLoggingTransport() *LoggingTransport {
	applog.Infof("Transport: Using LoggingTransport")
	return &LoggingTransport{}
}

// Send logs the received data. Logging never fails to "send".
func (lt *LoggingTransport) Send(data any) error {
	applog.Debugf("LoggingTransport: %+v", data)
	return nil
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	return nil
}

// Ensure LoggingTransport satisfies the interface at compile time.
var _ Transport = (*LoggingTransport)(nil)
