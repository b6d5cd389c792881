// FILE: lixenwraith/ulog/format.go
package ulog

import (
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/ulog/sanitizer"
)

// StampFormat selects the parts of a rendered timestamp
type StampFormat uint8

const (
	StampDate   StampFormat = 1 << iota // 2006-01-02
	StampTime                           // 15:04:05
	StampMillis                         // :000 appended to the time
	StampMicros                         // :000000 appended to the time, wins over StampMillis
	StampUTC                            // render in UTC instead of local time

	StampNone    StampFormat = 0
	StampDefault             = StampTime | StampMillis
)

// ParseStampFormat converts a comma separated list of date, time, ms, us, utc
// (or "none") to a StampFormat
func ParseStampFormat(s string) (StampFormat, error) {
	var f StampFormat
	for _, part := range splitList(s) {
		switch strings.ToLower(part) {
		case "date":
			f |= StampDate
		case "time":
			f |= StampTime
		case "ms", "millis", "millisec":
			f |= StampMillis
		case "us", "micros", "microsec":
			f |= StampMicros
		case "utc":
			f |= StampUTC
		case "none":
		default:
			return 0, fmtErrorf("invalid stamp_format part: '%s' (use date, time, ms, us, utc, or none)", part)
		}
	}
	return f, nil
}

// String returns the ParseStampFormat form of f
func (f StampFormat) String() string {
	var parts []string
	if f&StampDate != 0 {
		parts = append(parts, "date")
	}
	if f&StampTime != 0 {
		parts = append(parts, "time")
	}
	if f&StampMillis != 0 {
		parts = append(parts, "ms")
	}
	if f&StampMicros != 0 {
		parts = append(parts, "us")
	}
	if f&StampUTC != 0 {
		parts = append(parts, "utc")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// FormatStamp renders t according to f
func FormatStamp(t time.Time, f StampFormat) string {
	return string(appendStamp(nil, t, f))
}

func appendStamp(dst []byte, t time.Time, f StampFormat) []byte {
	if f&StampUTC != 0 {
		t = t.UTC()
	}

	if f&StampDate != 0 {
		dst = t.AppendFormat(dst, "2006-01-02")
		if f&StampTime != 0 {
			dst = append(dst, ' ')
		}
	}
	if f&StampTime == 0 {
		return dst
	}

	dst = t.AppendFormat(dst, "15:04:05")
	switch {
	case f&StampMicros != 0:
		dst = append(dst, ':')
		dst = appendZeroPadded(dst, t.Nanosecond()/int(time.Microsecond), 6)
	case f&StampMillis != 0:
		dst = append(dst, ':')
		dst = appendZeroPadded(dst, t.Nanosecond()/int(time.Millisecond), 3)
	}
	return dst
}

func appendZeroPadded(dst []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for n := width - len(s); n > 0; n-- {
		dst = append(dst, '0')
	}
	return append(dst, s...)
}

// lineRenderer turns events into text lines. It is not safe for concurrent use;
// each sink guards its renderer with its own mutex.
type lineRenderer struct {
	stamp     StampFormat
	sepSecs   float64 // < 0 disables separators
	showLevel bool
	san       *sanitizer.Sanitizer // nil when sanitizing is off

	last time.Time // zero until the first event
}

// separator returns the number of dashes to write before an event stamped t
// and records t as the latest event time
func (r *lineRenderer) separator(t time.Time) int {
	prev := r.last
	r.last = t
	if prev.IsZero() || r.sepSecs < 0 {
		return 0
	}

	delta := t.Sub(prev).Seconds()
	if delta > maxSeparatorDashes {
		delta = maxSeparatorDashes
	}
	if delta <= r.sepSecs || int(delta) < 1 {
		return 0
	}
	return int(delta)
}

// appendSeparator appends a dash line terminated by a newline
func appendSeparator(dst []byte, dashes int) []byte {
	for ; dashes > 0; dashes-- {
		dst = append(dst, '-')
	}
	return append(dst, '\n')
}

// appendLine appends "<stamp> [<level> ][_THREAD <n> : ]<message>" without a newline
func (r *lineRenderer) appendLine(dst []byte, ev Event, offHome bool) []byte {
	start := len(dst)
	dst = appendStamp(dst, ev.Time, r.stamp)
	if len(dst) > start {
		dst = append(dst, ' ')
	}

	if r.showLevel {
		dst = append(dst, ev.Level.String()...)
		dst = append(dst, ' ')
	}

	if offHome {
		dst = append(dst, threadMarker...)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(ev.Thread), 10)
		dst = append(dst, " : "...)
	}

	if r.san != nil {
		return r.san.Append(dst, ev.Message)
	}
	return append(dst, ev.Message...)
}

// reset forgets the latest event time
func (r *lineRenderer) reset() {
	r.last = time.Time{}
}
