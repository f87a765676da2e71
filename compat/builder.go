// FILE: lixenwraith/linelog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/linelog"
)

// Builder creates gnet and fasthttp adapters over one shared session.
// It can use an existing *linelog.Logger instance or create a new one from a *linelog.Config.
type Builder struct {
	logger *linelog.Logger
	logCfg *linelog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *linelog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("linelog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// The configuration must name a target path.
func (b *Builder) WithConfig(cfg *linelog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*linelog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	if b.logCfg == nil {
		return nil, fmt.Errorf("linelog/compat: either WithLogger or WithConfig is required")
	}

	l := linelog.NewLogger()
	if err := l.ApplyConfig(b.logCfg); err != nil {
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

// GetLogger returns the underlying *linelog.Logger instance
func (b *Builder) GetLogger() (*linelog.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	appLogger, err := linelog.New("/var/log/app/server.log")
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
