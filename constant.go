// FILE: lixenwraith/linelog/constant.go
package linelog

import "os"

// Severity tags a record. The set is closed: values outside it are rejected by the formatter.
type Severity int

// Severity constants
const (
	SeverityNormal Severity = iota + 1
	SeverityDebug
	SeverityWarning
	SeverityError
)

// Fixed-width labels prefixed to records in header layout
const (
	labelNormal  = "normal : "
	labelDebug   = "debug  : "
	labelWarning = "warning: "
	labelError   = "error  : "
)

// Line layout
const (
	headerRule     = "======================="
	traceSeparator = " - at "
	// DefaultTimestampFormat mirrors the classic "Thu Mar 30 11:18:18 BRT 2017" date rendering
	DefaultTimestampFormat = "Mon Jan 02 15:04:05 MST 2006"
)

// Sanitization modes for message text
const (
	SanitizeEscape = "escape"
	SanitizeHex    = "hex"
)

// Storage
const (
	// Read buffer for the streaming line counter
	countBufferSize = 32 * 1024
	// Mode used when the config leaves file_mode at zero
	defaultFileMode os.FileMode = 0644
)
