// FILE: lixenwraith/ulog/formatter/formatter.go
// Package formatter implements a type-checked printf-style mini-language.
//
// Each specifier is validated against the kind of its argument and a mismatch is reported
// as an *Error wrapping ErrFormat instead of being rendered silently. Arguments are consumed
// strictly left to right; there is no positional or reordered argument support.
//
// Grammar: '%' ['+'] [width] ['.' precision] [z|h|l|L] verb
//
//	c      one-byte value (byte, int8, bool)
//	s S    textual value (string, []byte, error, fmt.Stringer); S adds double quotes
//	d i u  any integer or floating value
//	x X    integer value in lower/upper case hex
//	p      pointer-like value as 0x + fixed-width hex address
//	f e E g G  any numeric value; all share one rendering, fixed-point when a precision is given
//	%%     literal percent, no argument
package formatter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// pointerDigits is the zero-padded hex width of %p addresses
const pointerDigits = strconv.IntSize/4 - 4

// defaultFloatDigits is the significant digit count of a float dump without precision
const defaultFloatDigits = 6

// Sprintf renders the template with args
func Sprintf(template string, args ...any) (string, error) {
	buf, err := Append(make([]byte, 0, len(template)+16*len(args)), template, args...)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Append renders the template with args and appends the result to dst.
// On error dst is returned with whatever was appended before the failure.
func Append(dst []byte, template string, args ...any) ([]byte, error) {
	next := 0

	for i := 0; i < len(template); {
		c := template[i]
		if c != '%' {
			dst = append(dst, c)
			i++
			continue
		}

		start := i
		i++
		if i >= len(template) {
			return dst, newError(template, start, 0, reasonTruncated)
		}
		if template[i] == '%' {
			dst = append(dst, '%')
			i++
			continue
		}

		d, after, err := parseDirective(template, start, i)
		if err != nil {
			return dst, err
		}
		if next >= len(args) {
			return dst, newError(template, start, d.verb, reasonMissingArg)
		}

		arg := args[next]
		var reason string
		dst, reason = d.render(dst, arg)
		if reason != "" {
			return dst, newArgError(template, start, d.verb, next, arg, reason)
		}

		next++
		i = after
	}

	if next < len(args) {
		return dst, newArgError(template, len(template), 0, next, args[next], reasonSurplusArg)
	}

	return dst, nil
}

// render appends one converted argument, or returns a failure reason
func (d *directive) render(dst []byte, arg any) ([]byte, string) {
	var body []byte
	numeric := false

	switch d.verb {
	case 'c':
		b, reason := charBytes(arg)
		if reason != "" {
			return dst, reason
		}
		body = b

	case 's', 'S':
		s, ok := textOf(arg)
		if !ok {
			return dst, "string format needs a textual argument"
		}
		if d.verb == 'S' {
			body = make([]byte, 0, len(s)+2)
			body = append(body, '"')
			body = append(body, s...)
			body = append(body, '"')
		} else {
			body = []byte(s)
		}

	case 'd', 'i', 'u':
		b, ok := d.number(arg)
		if !ok {
			return dst, "integer format needs a numeric argument"
		}
		body, numeric = b, true

	case 'x', 'X':
		b, ok := hexOf(arg, d.verb == 'X')
		if !ok {
			return dst, "hex format needs an integer argument"
		}
		body = b

	case 'p':
		b, ok := pointerOf(arg)
		if !ok {
			return dst, "pointer format needs a pointer-like argument"
		}
		body = b

	case 'f', 'e', 'E', 'g', 'G':
		b, ok := d.number(arg)
		if !ok {
			return dst, "float format needs a numeric argument"
		}
		body, numeric = b, true

	default:
		return dst, reasonUnknownVerb
	}

	return d.pad(dst, body, numeric), ""
}

// pad appends body right-aligned in the directive's field width
func (d *directive) pad(dst, body []byte, numeric bool) []byte {
	n := d.padWidth() - len(body)
	if n <= 0 {
		return append(dst, body...)
	}

	if d.fill == '0' && numeric && len(body) > 0 && (body[0] == '-' || body[0] == '+') {
		dst = append(dst, body[0])
		body = body[1:]
	}
	for ; n > 0; n-- {
		dst = append(dst, d.fill)
	}
	return append(dst, body...)
}

// number renders integer and floating kinds; precision applies to floats only
func (d *directive) number(arg any) ([]byte, bool) {
	v := reflect.ValueOf(arg)
	var b []byte

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if d.plus && n >= 0 {
			b = append(b, '+')
		}
		b = strconv.AppendInt(b, n, 10)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if d.plus {
			b = append(b, '+')
		}
		b = strconv.AppendUint(b, v.Uint(), 10)

	case reflect.Float32, reflect.Float64:
		bits := 64
		if v.Kind() == reflect.Float32 {
			bits = 32
		}
		f := v.Float()
		if d.plus && f >= 0 {
			b = append(b, '+')
		}
		if d.prec >= 0 {
			b = strconv.AppendFloat(b, f, 'f', d.prec, bits)
		} else {
			b = strconv.AppendFloat(b, f, 'g', defaultFloatDigits, bits)
		}

	default:
		return nil, false
	}

	return b, true
}

// charBytes accepts values whose storage is exactly one byte
func charBytes(arg any) ([]byte, string) {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Uint8:
		return []byte{byte(v.Uint())}, ""
	case reflect.Int8:
		return []byte{byte(v.Int())}, ""
	case reflect.Bool:
		return strconv.AppendBool(nil, v.Bool()), ""
	case reflect.Int, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return nil, "char format needs a one-byte argument"
	default:
		return nil, "char format needs an integer argument"
	}
}

// textOf returns the textual representation of string-like values
func textOf(arg any) (string, bool) {
	switch val := arg.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	case error:
		return val.Error(), true
	case fmt.Stringer:
		return val.String(), true
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Kind() == reflect.String:
		return v.String(), true
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		return string(v.Bytes()), true
	}
	return "", false
}

// hexOf renders integer kinds; signed values as two's complement of their width
func hexOf(arg any, upper bool) ([]byte, bool) {
	v := reflect.ValueOf(arg)
	var u uint64

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		u = uint64(v.Int())
		if bits := v.Type().Bits(); bits < 64 {
			u &= 1<<uint(bits) - 1
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u = v.Uint()
	default:
		return nil, false
	}

	s := strconv.FormatUint(u, 16)
	if upper {
		s = strings.ToUpper(s)
	}
	return []byte(s), true
}

// pointerOf renders the address of pointer-like values
func pointerOf(arg any) ([]byte, bool) {
	var addr uintptr

	if arg != nil {
		v := reflect.ValueOf(arg)
		switch v.Kind() {
		case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
			addr = v.Pointer()
		case reflect.Uintptr:
			addr = uintptr(v.Uint())
		default:
			return nil, false
		}
	}

	b := make([]byte, 0, 2+pointerDigits)
	b = append(b, "0x"...)
	h := strconv.FormatUint(uint64(addr), 16)
	for n := pointerDigits - len(h); n > 0; n-- {
		b = append(b, '0')
	}
	return append(b, h...), true
}
