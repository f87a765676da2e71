// FILE: lixenwraith/linelog/format.go
package linelog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/lixenwraith/linelog/sanitizer"
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityDebug:
		return "debug"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// label returns the fixed-width record prefix
func (s Severity) label() (string, error) {
	switch s {
	case SeverityNormal:
		return labelNormal, nil
	case SeverityDebug:
		return labelDebug, nil
	case SeverityWarning:
		return labelWarning, nil
	case SeverityError:
		return labelError, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownSeverity, int(s))
	}
}

// valueDumper renders composite arguments; spew config states are safe for concurrent use
var valueDumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true, // Cleaner for logs
	DisableCapacities:       true,
	SortKeys:                true, // Consistent map output
}

// Formatter renders records into single lines.
// It reuses a sanitizer buffer and must not be shared across goroutines without external locking.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	timestampFormat string
	buf             []byte
}

// NewFormatter creates a formatter for the given timestamp layout and sanitization mode
func NewFormatter(timestampFormat, sanitization string) *Formatter {
	policy := sanitizer.PolicyEscape
	if sanitization == SanitizeHex {
		policy = sanitizer.PolicyHex
	}
	if timestampFormat == "" {
		timestampFormat = DefaultTimestampFormat
	}
	return &Formatter{
		sanitizer:       sanitizer.New().Policy(policy),
		timestampFormat: timestampFormat,
		buf:             make([]byte, 0, 256),
	}
}

// Record renders "<label><message>[ - at <caller>]"
func (f *Formatter) Record(sev Severity, message, caller string) (string, error) {
	label, err := sev.label()
	if err != nil {
		return "", err
	}
	f.buf = append(f.buf[:0], label...)
	f.buf = append(f.buf, f.sanitizer.Sanitize(message)...)
	f.appendCaller(caller)
	return string(f.buf), nil
}

// Stamped renders "<timestamp> <message>[ - at <caller>]" for the headerless layout.
// The severity is still checked so an invalid value fails the same way in both layouts.
func (f *Formatter) Stamped(ts time.Time, sev Severity, message, caller string) (string, error) {
	if _, err := sev.label(); err != nil {
		return "", err
	}
	f.buf = ts.AppendFormat(f.buf[:0], f.timestampFormat)
	f.buf = append(f.buf, ' ')
	f.buf = append(f.buf, f.sanitizer.Sanitize(message)...)
	f.appendCaller(caller)
	return string(f.buf), nil
}

// Header returns the custom header, or the rule-framed session start time when custom is empty
func (f *Formatter) Header(custom string, start time.Time) string {
	if custom != "" {
		return f.sanitizer.Sanitize(custom)
	}
	return headerRule + " " + start.Format(f.timestampFormat) + " " + headerRule
}

// Args joins values with single spaces. Composite values are rendered by spew on one line.
func (f *Formatter) Args(args ...any) string {
	return formatArgs(f.timestampFormat, args...)
}

func formatArgs(timestampFormat string, args ...any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatValue(timestampFormat, arg))
	}
	return sb.String()
}

func (f *Formatter) appendCaller(caller string) {
	if caller == "" {
		return
	}
	f.buf = append(f.buf, traceSeparator...)
	f.buf = append(f.buf, f.sanitizer.Sanitize(caller)...)
}

func formatValue(timestampFormat string, v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case []byte:
		return string(val)
	case error:
		return val.Error()
	case time.Time:
		return val.Format(timestampFormat)
	case fmt.Stringer:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	default:
		return valueDumper.Sprint(val)
	}
}

// isHeaderLine reports whether a stored line is a session header: either the current header text
// or any rule-framed default header left by an earlier session
func isHeaderLine(line, current string) bool {
	if current != "" && line == current {
		return true
	}
	return len(line) > 2*len(headerRule)+2 &&
		strings.HasPrefix(line, headerRule+" ") &&
		strings.HasSuffix(line, " "+headerRule)
}
