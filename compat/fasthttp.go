// FILE: lixenwraith/linelog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/linelog"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter wraps linelog.Logger to implement the fasthttp Logger interface
type FastHTTPAdapter struct {
	logger           *linelog.Logger
	defaultSeverity  linelog.Severity
	severityDetector func(string) linelog.Severity // Detects severity from message content
	errorHandler     func(err error)
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *linelog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:           logger,
		defaultSeverity:  linelog.SeverityNormal,
		severityDetector: DetectSeverity,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultSeverity sets the severity used when detection finds nothing
func WithDefaultSeverity(sev linelog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultSeverity = sev
	}
}

// WithSeverityDetector sets a custom function to detect severity from message content.
// A zero return falls back to the default severity.
func WithSeverityDetector(detector func(string) linelog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.severityDetector = detector
	}
}

// WithFastHTTPErrorHandler receives errors from failed writes
func WithFastHTTPErrorHandler(handler func(error)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.errorHandler = handler
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	sev := a.defaultSeverity
	if a.severityDetector != nil {
		if detected := a.severityDetector(msg); detected != 0 {
			sev = detected
		}
	}

	if err := a.logger.Output(2, sev, "fasthttp: "+msg, true); err != nil && a.errorHandler != nil {
		a.errorHandler(err)
	}
}

// DetectSeverity guesses a severity from message content
func DetectSeverity(msg string) linelog.Severity {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return linelog.SeverityError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return linelog.SeverityWarning
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return linelog.SeverityDebug
	}

	return linelog.SeverityNormal
}
