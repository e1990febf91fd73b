// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package log provides the leveled logger plumbing shared by every
// package in this module. It follows the btcsuite-family convention:
// each consuming package holds a package-scoped Logger set via
// UseLogger, defaulting to a disabled logger so library callers never
// see output unless they opt in.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level is a logging priority, ordered from most to least verbose.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// String returns the lowercase tag for a Level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return "off"
	}
}

// LevelFromString maps a case-insensitive level name to a Level. It
// returns (LevelInfo, false) for unrecognized input.
func LevelFromString(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}

// Logger is the interface every package-scoped logger in this module
// satisfies. It is intentionally small: formatted messages at each
// level, plus the ability to read/change the active level.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})

	Level() Level
	SetLevel(Level)
}

// Disabled is a Logger that drops everything. It is the zero-value
// default held by every package-scoped `logger` variable until a caller
// wires a real one in via UseLogger.
var Disabled Logger = &disabledLogger{}

type disabledLogger struct{}

func (*disabledLogger) Tracef(string, ...interface{})    {}
func (*disabledLogger) Debugf(string, ...interface{})    {}
func (*disabledLogger) Infof(string, ...interface{})     {}
func (*disabledLogger) Warnf(string, ...interface{})     {}
func (*disabledLogger) Errorf(string, ...interface{})    {}
func (*disabledLogger) Criticalf(string, ...interface{}) {}
func (*disabledLogger) Level() Level                     { return LevelOff }
func (*disabledLogger) SetLevel(Level)                   {}

// slogLogger adapts log/slog into the Logger interface, the way the
// teacher's log/v2 package adapts slog into its own btclog-style API.
type slogLogger struct {
	inner *slog.Logger
	level *slog.LevelVar
}

// New returns a Logger that writes to w at the given starting level,
// one structured line per call, subsystem-tagged.
func New(w io.Writer, subsystem string, level Level) Logger {
	lv := &slog.LevelVar{}
	lv.Set(toSlogLevel(level))
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &slogLogger{
		inner: slog.New(h).With(slog.String("subsystem", subsystem)),
		level: lv,
	}
}

func (l *slogLogger) log(lvl slog.Level, format string, args []interface{}) {
	l.inner.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

func (l *slogLogger) Tracef(format string, args ...interface{})    { l.log(levelTraceSlog, format, args) }
func (l *slogLogger) Debugf(format string, args ...interface{})    { l.log(slog.LevelDebug, format, args) }
func (l *slogLogger) Infof(format string, args ...interface{})     { l.log(slog.LevelInfo, format, args) }
func (l *slogLogger) Warnf(format string, args ...interface{})     { l.log(slog.LevelWarn, format, args) }
func (l *slogLogger) Errorf(format string, args ...interface{})    { l.log(slog.LevelError, format, args) }
func (l *slogLogger) Criticalf(format string, args ...interface{}) { l.log(levelCriticalSlog, format, args) }

func (l *slogLogger) Level() Level {
	return fromSlogLevel(l.level.Level())
}

func (l *slogLogger) SetLevel(lvl Level) {
	l.level.Set(toSlogLevel(lvl))
}

const (
	levelTraceSlog    slog.Level = -8
	levelCriticalSlog slog.Level = 9
)

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelTrace:
		return levelTraceSlog
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return levelCriticalSlog
	default:
		return slog.Level(127)
	}
}

func fromSlogLevel(l slog.Level) Level {
	switch {
	case l <= levelTraceSlog:
		return LevelTrace
	case l <= slog.LevelDebug:
		return LevelDebug
	case l <= slog.LevelInfo:
		return LevelInfo
	case l <= slog.LevelWarn:
		return LevelWarn
	case l <= slog.LevelError:
		return LevelError
	case l <= levelCriticalSlog:
		return LevelCritical
	default:
		return LevelOff
	}
}
