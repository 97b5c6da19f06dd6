package store

import (
	"fmt"
	"strings"
	"sync/atomic"

	"variant.mleku.dev/lol"
)

// NewLogger creates a badger logger printing through lol.
func NewLogger(logLevel int, label string) (l *logger) {
	log.T.Ln("getting logger for", label)
	l = &logger{Label: label}
	l.Level.Store(int32(logLevel))
	return
}

type logger struct {
	Level atomic.Int32
	Label string
}

// SetLogLevel atomically adjusts the log level to the given log level code.
func (l *logger) SetLogLevel(level int) {
	l.Level.Store(int32(level))
}

func (l *logger) text(s string, i ...any) string {
	return strings.TrimSpace(fmt.Sprintf(l.Label+": "+s, i...))
}

// Errorf is a log printer for this level of message.
func (l *logger) Errorf(s string, i ...any) {
	if l.Level.Load() >= lol.Error {
		log.E.Ln(l.text(s, i...))
	}
}

// Warningf is a log printer for this level of message.
func (l *logger) Warningf(s string, i ...any) {
	if l.Level.Load() >= lol.Warn {
		log.W.Ln(l.text(s, i...))
	}
}

// Infof is a log printer for this level of message.
func (l *logger) Infof(s string, i ...any) {
	if l.Level.Load() >= lol.Info {
		log.D.Ln(l.text(s, i...))
	}
}

// Debugf is a log printer for this level of message.
func (l *logger) Debugf(s string, i ...any) {
	if l.Level.Load() >= lol.Debug {
		log.T.Ln(l.text(s, i...))
	}
}
