// FILE: lixenwraith/ulog/sink_text.go
package ulog

import (
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// TextSink writes one line per event to a file, a rotating file or the console.
// Events from goroutines other than the home goroutine carry a "_THREAD <n> :" marker.
type TextSink struct {
	SinkBase

	mu     sync.Mutex
	kind   SinkKind
	path   string
	w      io.Writer
	file   *os.File           // KindFile only
	rot    *lumberjack.Logger // KindRotating only
	r      lineRenderer
	buf    []byte
	closed bool
}

func newTextSink(kind SinkKind, path string, o *sinkOptions) (*TextSink, error) {
	s := &TextSink{
		kind: kind,
		path: path,
		r:    o.renderer(),
		buf:  make([]byte, 0, lineBufferSize),
	}

	switch kind {
	case KindFile:
		f, err := createLogFile(path)
		if err != nil {
			return nil, err
		}
		s.file, s.w = f, f
	case KindRotating:
		rot, err := newRotatingWriter(path, o.maxSizeMB, o.maxBackups)
		if err != nil {
			return nil, err
		}
		s.rot, s.w = rot, rot
	case KindConsole:
		s.w = os.Stdout
		if o.stderr {
			s.w = os.Stderr
		}
	default:
		return nil, fmtErrorf("sink kind %s is not a text sink", kind)
	}

	return s, nil
}

// Path returns the destination file path, empty for console sinks
func (s *TextSink) Path() string {
	return s.path
}

// Kind returns the sink kind
func (s *TextSink) Kind() SinkKind {
	return s.kind
}

// Receive renders ev and writes it in a single Write call
func (s *TextSink) Receive(ev Event) error {
	offHome := !s.OnHome(ev)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmtErrorf("write to closed %s sink", s.kind)
	}

	buf := s.buf[:0]
	if n := s.r.separator(ev.Time); n > 0 {
		buf = appendSeparator(buf, n)
	}
	buf = s.r.appendLine(buf, ev, offHome)
	buf = append(buf, '\n')
	s.buf = buf

	if _, err := s.w.Write(buf); err != nil {
		return fmtErrorf("failed to write to %s sink '%s': %w", s.kind, s.path, err)
	}
	return nil
}

// Clear truncates a file sink, starts a new file on a rotating sink and is a no-op
// on the console
func (s *TextSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.r.reset()

	switch s.kind {
	case KindFile:
		return truncateLogFile(s.file)
	case KindRotating:
		if err := s.rot.Rotate(); err != nil {
			return fmtErrorf("failed to rotate log file '%s': %w", s.path, err)
		}
	}
	return nil
}

// Sync flushes a file sink to stable storage
func (s *TextSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", s.path, err)
	}
	return nil
}

// Close disconnects the sink and releases its destination. Calling Close twice is safe.
func (s *TextSink) Close() error {
	s.DisconnectSelf()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	switch s.kind {
	case KindFile:
		if syncErr := s.file.Sync(); syncErr != nil {
			err = fmtErrorf("failed to sync log file '%s': %w", s.path, syncErr)
		}
		if closeErr := s.file.Close(); closeErr != nil {
			err = combineErrors(err, fmtErrorf("failed to close log file '%s': %w", s.path, closeErr))
		}
	case KindRotating:
		if closeErr := s.rot.Close(); closeErr != nil {
			err = fmtErrorf("failed to close rotating log file '%s': %w", s.path, closeErr)
		}
	}
	return err
}
