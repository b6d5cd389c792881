// FILE: lixenwraith/ulog/sanitizer/sanitizer.go
// Package sanitizer rewrites text according to ordered filter/transform rules.
// Sinks use the txt policy so that one event always renders as exactly one line.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // runes not printable per strconv.IsPrint
	FilterControl                         // unicode.IsControl
	FilterWhitespace                      // unicode.IsSpace
	FilterLineBreak                       // '\n', '\r', U+0085, U+2028, U+2029
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // drop the rune
	TransformHexEncode                    // "<XXYY>" of the UTF-8 bytes
	TransformEscape                       // backslash escape ('\n', '\u0000')
	TransformSpace                        // replace with a single space
)

// PolicyPreset names a pre-configured rule list
type PolicyPreset string

const (
	PolicyRaw  PolicyPreset = "raw"  // passthrough
	PolicyTxt  PolicyPreset = "txt"  // hex-encode everything non-printable
	PolicyLine PolicyPreset = "line" // escape line breaks and controls, keep the rest
	PolicyFlat PolicyPreset = "flat" // fold whitespace runs of any kind into spaces
)

// ParsePolicy returns the preset named s (case-insensitive)
func ParsePolicy(s string) (PolicyPreset, error) {
	preset := PolicyPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := policyRules[preset]; !ok {
		return "", fmt.Errorf("unknown sanitize policy: '%s' (use raw, txt, line, or flat)", s)
	}
	return preset, nil
}

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:  {},
	PolicyTxt:  {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyLine: {{filter: FilterLineBreak | FilterControl, transform: TransformEscape}},
	PolicyFlat: {
		{filter: FilterWhitespace, transform: TransformSpace},
		{filter: FilterNonPrintable, transform: TransformStrip},
	},
}

// filterOrder fixes the evaluation order of filter flags
var filterOrder = []struct {
	flag  uint64
	check func(rune) bool
}{
	{FilterLineBreak, isLineBreak},
	{FilterControl, unicode.IsControl},
	{FilterWhitespace, unicode.IsSpace},
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Sanitizer holds an ordered rule list; the first matching rule wins.
// A Sanitizer is immutable once built and safe for concurrent use.
type Sanitizer struct {
	rules []rule
}

// New creates an empty (passthrough) sanitizer
func New() *Sanitizer {
	return &Sanitizer{}
}

// ForPolicy creates a sanitizer holding the preset's rules
func ForPolicy(preset PolicyPreset) *Sanitizer {
	return New().Policy(preset)
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the preset's rules; unknown presets are ignored
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies the rules to data
func (s *Sanitizer) Sanitize(data string) string {
	if s == nil || len(s.rules) == 0 || s.clean(data) {
		return data
	}
	return string(s.Append(make([]byte, 0, len(data)+16), data))
}

// Append applies the rules to data and appends the result to dst
func (s *Sanitizer) Append(dst []byte, data string) []byte {
	prevSpace := false
	for _, r := range data {
		rl, ok := s.match(r)
		if !ok {
			dst = utf8.AppendRune(dst, r)
			prevSpace = false
			continue
		}
		if rl.transform&TransformSpace != 0 {
			if !prevSpace {
				dst = append(dst, ' ')
			}
			prevSpace = true
			continue
		}
		dst = applyTransform(dst, r, rl.transform)
		prevSpace = false
	}
	return dst
}

// clean reports whether no rune of data matches any rule
func (s *Sanitizer) clean(data string) bool {
	for _, r := range data {
		if _, ok := s.match(r); ok {
			return false
		}
	}
	return true
}

func (s *Sanitizer) match(r rune) (rule, bool) {
	for _, rl := range s.rules {
		if matchesFilter(r, rl.filter) {
			return rl, true
		}
	}
	return rule{}, false
}

func matchesFilter(r rune, mask uint64) bool {
	for _, f := range filterOrder {
		if mask&f.flag != 0 && f.check(r) {
			return true
		}
	}
	return false
}

func applyTransform(dst []byte, r rune, mask uint64) []byte {
	switch {
	case mask&TransformStrip != 0:
		return dst

	case mask&TransformHexEncode != 0:
		var rb [utf8.UTFMax]byte
		n := utf8.EncodeRune(rb[:], r)
		dst = append(dst, '<')
		dst = hex.AppendEncode(dst, rb[:n])
		return append(dst, '>')

	case mask&TransformEscape != 0:
		switch r {
		case '\n':
			return append(dst, '\\', 'n')
		case '\r':
			return append(dst, '\\', 'r')
		case '\t':
			return append(dst, '\\', 't')
		case '\b':
			return append(dst, '\\', 'b')
		case '\f':
			return append(dst, '\\', 'f')
		}
		if r < 0x10000 {
			dst = append(dst, '\\', 'u')
			return appendHexPad(dst, uint64(r), 4)
		}
		dst = append(dst, '\\', 'U')
		return appendHexPad(dst, uint64(r), 8)
	}
	return utf8.AppendRune(dst, r)
}

func appendHexPad(dst []byte, v uint64, width int) []byte {
	h := strconv.FormatUint(v, 16)
	for n := width - len(h); n > 0; n-- {
		dst = append(dst, '0')
	}
	return append(dst, h...)
}
