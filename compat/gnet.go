// FILE: lixenwraith/linelog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/linelog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps linelog.Logger to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       *linelog.Logger
	prefix       string
	fatalHandler func(msg string) // Customizable fatal behavior
	errorHandler func(err error)  // Receives write failures the interface cannot return
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *linelog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		prefix: "gnet: ",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetPrefix sets the text placed before every message
func WithGnetPrefix(prefix string) GnetOption {
	return func(a *GnetAdapter) {
		a.prefix = prefix
	}
}

// WithGnetErrorHandler receives errors from failed writes
func WithGnetErrorHandler(handler func(error)) GnetOption {
	return func(a *GnetAdapter) {
		a.errorHandler = handler
	}
}

// Debugf logs a debug record with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.write(linelog.SeverityDebug, fmt.Sprintf(format, args...))
}

// Infof logs a normal record with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.write(linelog.SeverityNormal, fmt.Sprintf(format, args...))
}

// Warnf logs a warning record with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.write(linelog.SeverityWarning, fmt.Sprintf(format, args...))
}

// Errorf logs an error record with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.write(linelog.SeverityError, fmt.Sprintf(format, args...))
}

// Fatalf logs an error record and triggers the fatal handler.
// Writes are synchronous, so the record is on disk before the handler runs.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.write(linelog.SeverityError, "fatal: "+msg)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// write attributes the record to the code that called the adapter method
func (a *GnetAdapter) write(sev linelog.Severity, msg string) {
	if err := a.logger.Output(3, sev, a.prefix+msg, true); err != nil && a.errorHandler != nil {
		a.errorHandler(err)
	}
}
