// FILE: lixenwraith/ulog/formatter/error.go
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// ErrFormat is matched by every error returned from this package
var ErrFormat = errors.New("formatting failed")

// Failure reasons
const (
	reasonMissingArg   = "missing argument"
	reasonSurplusArg   = "argument overflow, template exhausted"
	reasonTruncated    = "truncated format, '%' at end of template"
	reasonUnterminated = "unterminated specifier"
	reasonSizeHint     = "incomplete size hint at end of template"
	reasonUnknownVerb  = "unhandled format verb"
)

// argDumper renders offending arguments compactly with their type
var argDumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                3,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Error describes a template/argument contract violation
type Error struct {
	Template string
	Offset   int  // byte offset of the specifier's '%' (or template length)
	Verb     byte // 0 when the verb was never reached
	ArgIndex int  // -1 when no argument is involved
	Arg      any
	Reason   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("formatter: ")
	sb.WriteString(ErrFormat.Error())
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Verb != 0 {
		fmt.Fprintf(&sb, " for %%%c", e.Verb)
	}
	fmt.Fprintf(&sb, " at offset %d in %q", e.Offset, e.Template)
	if e.ArgIndex >= 0 {
		fmt.Fprintf(&sb, " (arg %d: %s)", e.ArgIndex, argDumper.Sprintf("%#v", e.Arg))
	}
	return sb.String()
}

// Unwrap allows errors.Is(err, ErrFormat)
func (e *Error) Unwrap() error {
	return ErrFormat
}

func newError(template string, offset int, verb byte, reason string) *Error {
	return &Error{
		Template: template,
		Offset:   offset,
		Verb:     verb,
		ArgIndex: -1,
		Reason:   reason,
	}
}

func newArgError(template string, offset int, verb byte, index int, arg any, reason string) *Error {
	e := newError(template, offset, verb, reason)
	e.ArgIndex = index
	e.Arg = arg
	return e
}
