// FILE: lixenwraith/ulog/compat/builder.go
package compat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/ulog"
)

// Builder provides a flexible way to create configured logger adapters for gnet, fasthttp
// and Fiber. It can use an existing *ulog.Logger instance or create a new one from a *ulog.Config
type Builder struct {
	logger *ulog.Logger
	logCfg *ulog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored
func (b *Builder) WithLogger(l *ulog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("ulog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// This is used only if an existing logger is NOT provided via WithLogger
func (b *Builder) WithConfig(cfg *ulog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*ulog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := ulog.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = ulog.DefaultConfig()
	}

	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildFiber creates a Fiber adapter
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(l, opts...), nil
}

// ConnectZap creates a ZapSink for z and connects it to the logger.
// The caller owns the sink and closes it after the logger.
func (b *Builder) ConnectZap(z *zap.Logger, opts ...ZapOption) (*ZapSink, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	s := NewZapSink(z, opts...)
	l.Connect(s)
	return s, nil
}

// GetLogger returns the underlying *ulog.Logger instance.
// If a logger has not been provided or created yet, it will be initialized
func (b *Builder) GetLogger() (*ulog.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	appLogger, err := ulog.NewBuilder().Levels("default", "DEBUG").File("/var/log/app/net.log").Build()
//	if err != nil { /* handle error */ }
//	defer appLogger.Close()
//
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
//
//	// Mirror every event into an existing zap pipeline
//	zs, _ := builder.ConnectZap(zapLogger)
//	defer zs.Close()
