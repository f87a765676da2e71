// FILE: lixenwraith/linelog/caller.go
package linelog

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Caller identifies the source position of a log call
type Caller struct {
	Function string // Package-qualified function name
	File     string
	Line     int
}

// String renders "pkg.Func(file.go:12)"
func (c Caller) String() string {
	if c.Function == "" && c.File == "" {
		return "(unknown)"
	}
	return fmt.Sprintf("%s(%s:%d)", c.Function, filepath.Base(c.File), c.Line)
}

// CallerFunc supplies the caller location for records when caller_trace is enabled.
// skip counts stack frames above the CallerFunc's own caller, so skip 0 is the function that invoked it.
// Implementations that do not inspect the stack may ignore skip; returning false omits the suffix.
type CallerFunc func(skip int) (Caller, bool)

// RuntimeCaller is the default CallerFunc, resolved from the goroutine's call stack
func RuntimeCaller(skip int) (Caller, bool) {
	pc := make([]uintptr, 1)
	// +2: runtime.Callers itself and RuntimeCaller
	if runtime.Callers(skip+2, pc) == 0 {
		return Caller{}, false
	}
	frame, _ := runtime.CallersFrames(pc).Next()
	if frame.Function == "" {
		return Caller{}, false
	}
	return Caller{
		Function: frame.Function,
		File:     frame.File,
		Line:     frame.Line,
	}, true
}

// Here returns the location of the code calling it, for callers that build their own message text
// with caller_trace disabled.
func Here() Caller {
	c, _ := RuntimeCaller(1)
	return c
}
