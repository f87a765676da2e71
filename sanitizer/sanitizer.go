// FILE: lixenwraith/linelog/sanitizer/sanitizer.go
// Package sanitizer rewrites message text so that one record always occupies exactly one line
// of the target file. Rules pair a filter (which runes match) with a transform (what replaces them).
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterLineBreak    uint64 = 1 << iota // '\n', '\r', U+2028, U+2029, U+0085
	FilterControl                         // unicode.IsControl
	FilterNonPrintable                    // !strconv.IsPrint
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // "<XXYY>" of the rune's UTF-8 bytes
	TransformEscape                       // Backslash escape: \n, \r, \t, \uXXXX
	TransformSpace                        // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw    PolicyPreset = "raw"    // No-op
	PolicyEscape PolicyPreset = "escape" // Backslash-escape line breaks and control runes
	PolicyHex    PolicyPreset = "hex"    // Hex-encode every non-printable rune
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyEscape: {
		{filter: FilterLineBreak | FilterControl, transform: TransformEscape},
	},
	PolicyHex: {
		{filter: FilterLineBreak | FilterNonPrintable, transform: TransformHexEncode},
	},
}

var filterCheckers = map[uint64]func(rune) bool{
	FilterLineBreak: func(r rune) bool {
		switch r {
		case '\n', '\r', '\u2028', '\u2029', '\u0085':
			return true
		}
		return false
	},
	FilterControl:      unicode.IsControl,
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
}

// Sanitizer applies an ordered rule list; the first matching rule wins.
// Not safe for concurrent use: the scratch buffer is reused between calls.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
		buf:   make([]byte, 0, 256),
	}
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}
	s.buf = s.buf[:0]

	for _, r := range data {
		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				applyTransform(&s.buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			s.buf = utf8.AppendRune(s.buf, r)
		}
	}

	return string(s.buf)
}

func matchesFilter(r rune, filter uint64) bool {
	for flag, check := range filterCheckers {
		if filter&flag != 0 && check(r) {
			return true
		}
	}
	return false
}

func applyTransform(buf *[]byte, r rune, transform uint64) {
	switch {
	case transform&TransformStrip != 0:
	case transform&TransformSpace != 0:
		*buf = append(*buf, ' ')
	case transform&TransformHexEncode != 0:
		var enc [utf8.UTFMax]byte
		n := utf8.EncodeRune(enc[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(enc[:n])...)
		*buf = append(*buf, '>')
	case transform&TransformEscape != 0:
		switch r {
		case '\n':
			*buf = append(*buf, '\\', 'n')
		case '\r':
			*buf = append(*buf, '\\', 'r')
		case '\t':
			*buf = append(*buf, '\\', 't')
		default:
			*buf = append(*buf, fmt.Sprintf("\\u%04x", r)...)
		}
	default:
		*buf = utf8.AppendRune(*buf, r)
	}
}
