// FILE: lixenwraith/ulog/storage.go
package ulog

import (
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ensureLogDir creates the parent directory of path if missing
func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, logDirMode); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}
	return nil
}

// createLogFile creates or truncates the log file at path
func createLogFile(path string) (*os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFileMode)
	if err != nil {
		return nil, fmtErrorf("failed to create log file '%s': %w", path, err)
	}
	return f, nil
}

// truncateLogFile discards the content of f and rewinds it
func truncateLogFile(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmtErrorf("failed to truncate log file '%s': %w", f.Name(), err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmtErrorf("failed to rewind log file '%s': %w", f.Name(), err)
	}
	return nil
}

// newRotatingWriter opens a size-rotated writer on path. The file is probed once so that
// an unwritable destination fails here instead of on the first event.
func newRotatingWriter(path string, maxSizeMB, maxBackups int) (*lumberjack.Logger, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, err
	}
	probe, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, fmtErrorf("failed to open rotating log file '%s': %w", path, err)
	}
	if err := probe.Close(); err != nil {
		return nil, fmtErrorf("failed to close rotating log file probe '%s': %w", path, err)
	}

	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	if maxBackups < 0 {
		maxBackups = 0
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}, nil
}
