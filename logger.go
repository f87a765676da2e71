// FILE: lixenwraith/linelog/logger.go
package linelog

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is one logging session bound to a single target file
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State
	initMu        sync.Mutex // serializes ApplyConfig and Close

	// mu guards placement state, the formatter and the swappable fields below.
	// It is always taken before the path lock.
	mu        sync.Mutex
	formatter *Formatter
	target    *target
	lock      *pathLock
	clock     func() time.Time
	caller    CallerFunc
}

// NewLogger creates a new Logger instance with default settings.
// ApplyConfig must be called with a target path before logging.
func NewLogger() *Logger {
	l := &Logger{
		clock:  time.Now,
		caller: RuntimeCaller,
	}

	l.currentConfig.Store(DefaultConfig())

	l.state.IsInitialized.Store(false)
	l.state.Closed.Store(false)
	l.state.SessionStart.Store(time.Time{})

	return l
}

// ApplyConfig validates and applies a configuration.
// The first successful call starts the session. Changing the path starts a new session on the new target.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.Closed.Load() {
		return ErrClosed
	}

	return l.applyConfig(cfg.Clone())
}

func (l *Logger) applyConfig(cfg *Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	oldCfg := l.getConfig()
	pathChanged := !l.state.IsInitialized.Load() || lockKey(oldCfg.Path) != lockKey(cfg.Path)

	if pathChanged {
		newLock := acquirePathLock(cfg.Path)
		releasePathLock(l.lock)
		l.lock = newLock
		l.state.resetSession(l.clock())
	}

	l.formatter = NewFormatter(cfg.TimestampFormat, cfg.Sanitization)
	l.target = newTarget(cfg)
	l.currentConfig.Store(cfg)
	l.state.IsInitialized.Store(true)

	return nil
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// update clones the current configuration, mutates it and applies the result
func (l *Logger) update(mutate func(*Config)) error {
	cfg := l.getConfig().Clone()
	mutate(cfg)
	return l.ApplyConfig(cfg)
}

// SetHeader replaces the header text; empty restores the timestamped default.
// A header already written in this session is not rewritten.
func (l *Logger) SetHeader(header string) error {
	return l.update(func(c *Config) { c.Header = header })
}

// SetLineLimit sets the retention ceiling; 0 disables eviction
func (l *Logger) SetLineLimit(limit int) error {
	return l.update(func(c *Config) { c.LineLimit = int64(limit) })
}

// SetHeaderLayout toggles between the labeled header layout and timestamped lines
func (l *Logger) SetHeaderLayout(enabled bool) error {
	return l.update(func(c *Config) { c.HeaderLayout = enabled })
}

// SetTopInsert toggles top insertion
func (l *Logger) SetTopInsert(enabled bool) error {
	return l.update(func(c *Config) { c.TopInsert = enabled })
}

// SetCallerTrace toggles the " - at <caller>" suffix
func (l *Logger) SetCallerTrace(enabled bool) error {
	return l.update(func(c *Config) { c.CallerTrace = enabled })
}

// SetCountHeader controls whether header lines count toward the line limit
func (l *Logger) SetCountHeader(enabled bool) error {
	return l.update(func(c *Config) { c.CountHeader = enabled })
}

// SetCallerFunc replaces the caller resolver; nil restores RuntimeCaller
func (l *Logger) SetCallerFunc(fn CallerFunc) {
	if fn == nil {
		fn = RuntimeCaller
	}
	l.mu.Lock()
	l.caller = fn
	l.mu.Unlock()
}

// SetClock replaces the time source used for headerless timestamps; nil restores time.Now
func (l *Logger) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	l.mu.Lock()
	l.clock = clock
	l.mu.Unlock()
}

// Log writes one record with the given severity.
// With appendMode false the target is truncated first.
func (l *Logger) Log(message string, severity Severity, appendMode bool) error {
	return l.output(2, severity, message, appendMode)
}

// Print appends a normal record
func (l *Logger) Print(message string) error {
	return l.output(2, SeverityNormal, message, true)
}

// Printf appends a normal record built from a format string
func (l *Logger) Printf(format string, args ...any) error {
	return l.output(2, SeverityNormal, fmt.Sprintf(format, args...), true)
}

// Normal appends a normal record built from args
func (l *Logger) Normal(args ...any) error {
	return l.outputArgs(2, SeverityNormal, args)
}

// Debug appends a debug record built from args
func (l *Logger) Debug(args ...any) error {
	return l.outputArgs(2, SeverityDebug, args)
}

// Warning appends a warning record built from args
func (l *Logger) Warning(args ...any) error {
	return l.outputArgs(2, SeverityWarning, args)
}

// Error appends an error record built from args
func (l *Logger) Error(args ...any) error {
	return l.outputArgs(2, SeverityError, args)
}

// Output writes a record for wrappers that add their own stack frames.
// calldepth 1 attributes the record to the caller of Output.
func (l *Logger) Output(calldepth int, severity Severity, message string, appendMode bool) error {
	return l.output(calldepth+1, severity, message, appendMode)
}

// Lines probes the number of lines currently in the target
func (l *Logger) Lines() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ready(); err != nil {
		return 0, err
	}

	l.lock.mu.Lock()
	defer l.lock.mu.Unlock()

	return l.target.countLines()
}

// Exists reports whether the target file is present
func (l *Logger) Exists() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.target == nil {
		return false
	}

	return l.target.exists()
}

// Enforce runs the eviction check on demand and returns the number of evicted lines
func (l *Logger) Enforce() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ready(); err != nil {
		return 0, err
	}

	l.lock.mu.Lock()
	defer l.lock.mu.Unlock()

	return l.evict(l.getConfig())
}

// Header returns the header line this session writes
func (l *Logger) Header() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.formatter == nil {
		return ""
	}
	return l.headerLine(l.getConfig())
}

// HeaderEmitted reports whether the header has been written in this session
func (l *Logger) HeaderEmitted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.headerEmitted
}

// Cursor returns the top-insertion cursor
func (l *Logger) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.cursor
}

// Stats returns a snapshot of session state and counters
func (l *Logger) Stats() Stats {
	l.mu.Lock()
	emitted, cursor := l.state.headerEmitted, l.state.cursor
	l.mu.Unlock()

	return Stats{
		Path:          l.getConfig().Path,
		SessionStart:  l.state.sessionStart(),
		HeaderEmitted: emitted,
		Cursor:        cursor,
		Records:       l.state.TotalRecords.Load(),
		Headers:       l.state.TotalHeaders.Load(),
		Inserts:       l.state.TotalInserts.Load(),
		Truncations:   l.state.TotalTruncations.Load(),
		Evictions:     l.state.TotalEvictions.Load(),
		EvictedLines:  l.state.EvictedLines.Load(),
		FailedCalls:   l.state.FailedCalls.Load(),
	}
}

// Close ends the session and releases its hold on the target path. Safe to call multiple times.
func (l *Logger) Close() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.Closed.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	releasePathLock(l.lock)
	l.lock = nil
	l.state.IsInitialized.Store(false)

	return nil
}
