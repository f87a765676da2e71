// FILE: lixenwraith/linelog/interface.go
package linelog

import (
	"bytes"
	"io"
)

// lineWriter adapts a session to io.Writer for code that only knows how to write bytes,
// such as a standard library *log.Logger
type lineWriter struct {
	logger   *Logger
	severity Severity
}

// Writer returns an io.Writer that appends every line of each Write as one record.
// Caller trace, when enabled, names the function that called Write.
func (l *Logger) Writer(severity Severity) io.Writer {
	return &lineWriter{logger: l, severity: severity}
}

// Write implements io.Writer. Blank lines are skipped.
func (w *lineWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\r\n"), []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		if err := w.logger.output(2, w.severity, string(line), true); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
