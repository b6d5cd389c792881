// FILE: lixenwraith/ulog/constant.go
package ulog

import "os"

// Separator line
const (
	// Upper bound of dashes in one time-gap separator line
	maxSeparatorDashes = 80
	// Default idle seconds before a separator is written
	defaultSeparatorSecs = 2.0
)

// SeparatorDisabled turns time-gap separators off when used as separator seconds.
// Zero separates on any gap of at least one whole second.
const SeparatorDisabled = -1.0

// Storage
const (
	// Permissions of newly created log files
	logFileMode os.FileMode = 0644
	// Permissions of directories created for log files
	logDirMode os.FileMode = 0755
	// Default rotation limits for rotating sinks
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
)

// Rendering
const (
	// Marker placed before the thread index of events posted from another goroutine
	threadMarker = "_THREAD"
	// Initial capacity of per-line render buffers
	lineBufferSize = 256
)

// Dispatcher
const (
	// Number of goroutines the thread table remembers; indices wrap past it
	maxThreadIndices = 256
)
