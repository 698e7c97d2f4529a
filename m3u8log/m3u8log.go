// Package m3u8log adapts a *zap.Logger into the registry.WarnFunc and
// registry.DebugFunc callback shapes the parser expects, so parse-time
// diagnostics flow through the same structured logger as the rest of a
// host application.
package m3u8log

import (
	"go.uber.org/zap"

	"github.com/ar13101085/hls-playlist/m3u8/registry"
)

// Adapter binds a *zap.Logger to a playlist URI or source name, attached
// as a field on every emitted log line.
type Adapter struct {
	logger *zap.Logger
	source string
}

// New returns an Adapter that logs through logger, tagging every line
// with source (typically the playlist URI or file path being parsed).
func New(logger *zap.Logger, source string) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{logger: logger, source: source}
}

// Warn satisfies registry.WarnFunc.
func (a *Adapter) Warn(message string) {
	a.logger.Warn(message, zap.String("source", a.source))
}

// Debug satisfies registry.DebugFunc.
func (a *Adapter) Debug(args ...interface{}) {
	if ce := a.logger.Check(zap.DebugLevel, "parse trace"); ce != nil {
		ce.Write(zap.String("source", a.source), zap.Any("args", args))
	}
}

var _ registry.WarnFunc = (*Adapter)(nil).Warn
var _ registry.DebugFunc = (*Adapter)(nil).Debug
