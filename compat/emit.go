// FILE: lixenwraith/ulog/compat/emit.go
package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/ulog"
)

// Levels for severities the base set does not name
var (
	LevelTrace = ulog.Hash("TRACE")
	LevelDebug = ulog.Hash("DEBUG")
	LevelInfo  = ulog.LevelMsg
)

// emit broadcasts msg tagged with its source. The adapted interfaces have no error
// return; delivery failures are reported by the logger's internal diagnostics.
func emit(l *ulog.Logger, level ulog.LogLevel, source, msg string) {
	if source != "" {
		msg = source + ": " + msg
	}
	_ = l.Emit(level, msg)
}

// emitf formats with fmt semantics, only when level is enabled
func emitf(l *ulog.Logger, level ulog.LogLevel, source, format string, args []any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	emit(l, level, source, fmt.Sprintf(format, args...))
}

// joinPairs renders msg followed by " key=value" for each pair; an odd trailing key
// is rendered with a missing value marker
func joinPairs(msg string, keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		sb.WriteByte(' ')
		fmt.Fprint(&sb, keysAndValues[i])
		sb.WriteByte('=')
		if i+1 < len(keysAndValues) {
			fmt.Fprint(&sb, keysAndValues[i+1])
		} else {
			sb.WriteString("<missing>")
		}
	}
	return sb.String()
}
