// FILE: lixenwraith/linelog/builder.go
package linelog

import "time"

// Builder provides a fluent API for building a session.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg    *Config
	clock  func() time.Time
	caller CallerFunc
	err    error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// New opens a session on path with the default configuration.
func New(path string) (*Logger, error) {
	return NewBuilder().Path(path).Build()
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	// The clock must be in place before ApplyConfig snapshots the session start
	if b.clock != nil {
		logger.SetClock(b.clock)
	}
	if b.caller != nil {
		logger.SetCallerFunc(b.caller)
	}

	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Path sets the target file.
func (b *Builder) Path(path string) *Builder {
	b.cfg.Path = path
	return b
}

// Header sets the session header text.
func (b *Builder) Header(header string) *Builder {
	b.cfg.Header = header
	return b
}

// HeaderLayout selects the labeled header layout (true) or timestamped lines (false).
func (b *Builder) HeaderLayout(enable bool) *Builder {
	b.cfg.HeaderLayout = enable
	return b
}

// TopInsert places new lines near the start of the file.
func (b *Builder) TopInsert(enable bool) *Builder {
	b.cfg.TopInsert = enable
	return b
}

// CallerTrace toggles the caller location suffix.
func (b *Builder) CallerTrace(enable bool) *Builder {
	b.cfg.CallerTrace = enable
	return b
}

// LineLimit sets the retention ceiling.
func (b *Builder) LineLimit(limit int64) *Builder {
	b.cfg.LineLimit = limit
	return b
}

// CountHeader controls whether header lines count toward the line limit.
func (b *Builder) CountHeader(enable bool) *Builder {
	b.cfg.CountHeader = enable
	return b
}

// TimestampFormat sets the Go time layout for the header and timestamped lines.
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// Sanitization sets how control characters in messages are rendered.
func (b *Builder) Sanitization(mode string) *Builder {
	b.cfg.Sanitization = mode
	return b
}

// SyncOnWrite fsyncs the target after every append.
func (b *Builder) SyncOnWrite(enable bool) *Builder {
	b.cfg.SyncOnWrite = enable
	return b
}

// FileMode sets permission bits for a newly created target.
func (b *Builder) FileMode(mode int64) *Builder {
	b.cfg.FileMode = mode
	return b
}

// InternalErrorsToStderr mirrors write failures to stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Overrides applies "key=value" strings on top of the values set so far.
func (b *Builder) Overrides(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = applyOverrideStrings(b.cfg, overrides)
	return b
}

// Clock sets the time source for timestamps.
func (b *Builder) Clock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// Caller sets the caller resolver used by caller_trace.
func (b *Builder) Caller(fn CallerFunc) *Builder {
	b.caller = fn
	return b
}

// Example usage:
// logger, err := linelog.NewBuilder().
//
//	Path("/var/log/app/events.log").
//	TopInsert(true).
//	LineLimit(500).
//	Build()
//
// if err == nil {
//
//	 defer logger.Close()
//	 logger.Print("started")
//
// }
