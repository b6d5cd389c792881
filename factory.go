// FILE: lixenwraith/ulog/factory.go
package ulog

import "github.com/lixenwraith/ulog/sanitizer"

// sinkOptions collects SinkOption values for NewSink
type sinkOptions struct {
	stamp      StampFormat
	sepSecs    float64
	poster     func(func())
	stderr     bool
	maxSizeMB  int
	maxBackups int
	maxLines   int
	sanitize   bool
	policy     sanitizer.PolicyPreset
	showLevel  bool
}

func defaultSinkOptions() *sinkOptions {
	return &sinkOptions{
		stamp:      StampDefault,
		sepSecs:    defaultSeparatorSecs,
		maxSizeMB:  defaultMaxSizeMB,
		maxBackups: defaultMaxBackups,
		sanitize:   true,
		policy:     sanitizer.PolicyTxt,
	}
}

func (o *sinkOptions) renderer() lineRenderer {
	r := lineRenderer{
		stamp:     o.stamp,
		sepSecs:   o.sepSecs,
		showLevel: o.showLevel,
	}
	if o.sanitize {
		r.san = sanitizer.ForPolicy(o.policy)
	}
	return r
}

// SinkOption customizes a sink built by NewSink
type SinkOption func(*sinkOptions)

// WithStampFormat sets the timestamp rendering
func WithStampFormat(f StampFormat) SinkOption {
	return func(o *sinkOptions) {
		o.stamp = f
	}
}

// WithSeparatorSecs sets the idle time after which a dash separator line is written.
// Zero separates on any whole-second gap; SeparatorDisabled (any negative value) turns
// separators off.
func WithSeparatorSecs(secs float64) SinkOption {
	return func(o *sinkOptions) {
		o.sepSecs = secs
	}
}

// WithPoster installs the deferral hook of a memory sink
func WithPoster(poster func(func())) SinkOption {
	return func(o *sinkOptions) {
		o.poster = poster
	}
}

// WithStderr sends a console sink to stderr instead of stdout
func WithStderr(enable bool) SinkOption {
	return func(o *sinkOptions) {
		o.stderr = enable
	}
}

// WithRotation sets the size limit and the number of kept backups of a rotating sink
func WithRotation(maxSizeMB, maxBackups int) SinkOption {
	return func(o *sinkOptions) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
	}
}

// WithMaxLines bounds the number of lines a memory sink keeps
func WithMaxLines(n int) SinkOption {
	return func(o *sinkOptions) {
		o.maxLines = n
	}
}

// WithSanitize toggles hex-encoding of non-printable message characters (on by default)
func WithSanitize(enable bool) SinkOption {
	return func(o *sinkOptions) {
		o.sanitize = enable
	}
}

// WithSanitizePolicy selects the sanitizer preset applied to messages (txt by default).
// Every preset except raw keeps one event on one line.
func WithSanitizePolicy(preset sanitizer.PolicyPreset) SinkOption {
	return func(o *sinkOptions) {
		o.policy = preset
	}
}

// WithShowLevel prefixes each line with the level name
func WithShowLevel(enable bool) SinkOption {
	return func(o *sinkOptions) {
		o.showLevel = enable
	}
}

// NewSink builds a sink of the given kind. destination is the file path for file and
// rotating sinks and is ignored otherwise. The calling goroutine becomes the sink's home.
func NewSink(kind SinkKind, destination string, opts ...SinkOption) (Sink, error) {
	o := defaultSinkOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.poster != nil && kind != KindMemory {
		return nil, fmtErrorf("poster is only supported by memory sinks, got %s", kind)
	}

	var s Sink
	switch kind {
	case KindFile, KindRotating:
		if destination == "" {
			return nil, fmtErrorf("%s sink requires a destination path", kind)
		}
		ts, err := newTextSink(kind, destination, o)
		if err != nil {
			return nil, err
		}
		s = ts
	case KindConsole:
		ts, err := newTextSink(kind, "", o)
		if err != nil {
			return nil, err
		}
		s = ts
	case KindMemory:
		ms := newMemorySink(o)
		ms.SetPoster(o.poster)
		s = ms
	default:
		return nil, fmtErrorf("unknown sink kind: %d", int(kind))
	}

	s.base().SetHome()
	return s, nil
}

// MustNewSink is NewSink that panics on error
func MustNewSink(kind SinkKind, destination string, opts ...SinkOption) Sink {
	s, err := NewSink(kind, destination, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
