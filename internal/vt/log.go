package vt

import "log"

// Logger is the per-Terminal logging sink. Passing one through the
// orchestrator (rather than a package-level logger) avoids the module-level
// mutable state the teacher's log.Printf calls rely on (§9 "Global state /
// singletons").
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// StdLogger adapts the standard library's log.Logger, matching the
// teacher's own logDebug-over-log.Printf convention (vterm.go, vterm_modes.go).
type StdLogger struct {
	*log.Logger
	Debug bool
}

// NewStdLogger returns a StdLogger writing through the standard library
// default logger. When debug is false, Debugf calls are silently discarded.
func NewStdLogger(debug bool) *StdLogger {
	return &StdLogger{Logger: log.Default(), Debug: debug}
}

func (l *StdLogger) Debugf(format string, args ...any) {
	if l.Debug {
		l.Printf("[debug] "+format, args...)
	}
}

func (l *StdLogger) Infof(format string, args ...any) { l.Printf("[info] "+format, args...) }
func (l *StdLogger) Warnf(format string, args ...any) { l.Printf("[warn] "+format, args...) }

// noopLogger discards everything; used when a Terminal is constructed
// without an explicit Logger.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
