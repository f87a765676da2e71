// FILE: lixenwraith/linelog/default.go
package linelog

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default package-level functions that delegate to the default logger

// Init configures the default logger
func Init(cfg *Config) error {
	return defaultLogger.ApplyConfig(cfg)
}

// InitWithDefaults configures the default logger on path with built-in defaults and optional overrides
func InitWithDefaults(path string, overrides ...string) error {
	cfg := DefaultConfig()
	cfg.Path = path
	if err := defaultLogger.ApplyConfig(cfg); err != nil {
		return err
	}
	if len(overrides) == 0 {
		return nil
	}
	return defaultLogger.ApplyConfigString(overrides...)
}

// Default returns the logger behind the package-level functions
func Default() *Logger {
	return defaultLogger
}

// Log writes one record through the default logger
func Log(message string, severity Severity, appendMode bool) error {
	return defaultLogger.output(2, severity, message, appendMode)
}

// Print appends a normal record
func Print(message string) error {
	return defaultLogger.output(2, SeverityNormal, message, true)
}

// Normal appends a normal record built from args
func Normal(args ...any) error {
	return defaultLogger.outputArgs(2, SeverityNormal, args)
}

// Debug appends a debug record built from args
func Debug(args ...any) error {
	return defaultLogger.outputArgs(2, SeverityDebug, args)
}

// Warning appends a warning record built from args
func Warning(args ...any) error {
	return defaultLogger.outputArgs(2, SeverityWarning, args)
}

// Error appends an error record built from args
func Error(args ...any) error {
	return defaultLogger.outputArgs(2, SeverityError, args)
}

// Lines probes the default logger's target
func Lines() (int, error) {
	return defaultLogger.Lines()
}

// Close ends the default session
func Close() error {
	return defaultLogger.Close()
}
