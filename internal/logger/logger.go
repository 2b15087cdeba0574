// Package logger wires zap logging for the application and mirrors
// each entry into a persisted bounded ring buffer.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the application's zap logger.
type Logger struct {
	// Log is the configured zap logger.
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init configures the logger at the given level. When ring is non-nil
// every emitted entry is also appended to the ring buffer.
func (l *Logger) Init(level string, ring *RingBuffer) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	base, err := cfg.Build()
	if err != nil {
		return err
	}

	if ring != nil {
		core := zapcore.NewTee(base.Core(), &ringCore{LevelEnabler: lvl, ring: ring})
		l.Log = zap.New(core)
	} else {
		l.Log = base
	}
	return nil
}

// ringCore is a zapcore.Core that appends each entry to a RingBuffer.
type ringCore struct {
	zapcore.LevelEnabler
	ring *RingBuffer
}

func (c *ringCore) With([]zapcore.Field) zapcore.Core { return c }

func (c *ringCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *ringCore) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	c.ring.Append(Entry{
		Time:    ent.Time,
		Level:   ent.Level.String(),
		Message: ent.Message,
	})
	return nil
}

func (c *ringCore) Sync() error { return nil }
