// Package logging configures the structured logger shared by the entry points.
package logging

import (
	"io"

	"github.com/aura-studio/smoke/engine"
	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to stderr, at debug level when debug is set.
func New(debug bool) *logrus.Logger {
	return NewWithOutput(engine.Stderr(), debug)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(w io.Writer, debug bool) *logrus.Logger {
	if w == nil {
		w = engine.Stderr()
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
