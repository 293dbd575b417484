// Package internal holds bits shared across uglify's commands
package internal

import (
	"fmt"

	"github.com/thatguystone/uglify"
)

type logger struct {
	prefix string
	logf   LogFunc
}

// LogFunc is the function called for everything
type LogFunc func(format string, a ...interface{})

// NewLogger creates a new uglify.Logger that pushes everything to the given
// LogFunc with the given prefix.
func NewLogger(prefix string, logf LogFunc) uglify.Logger {
	return &logger{
		prefix: prefix,
		logf:   logf,
	}
}

func (l *logger) Log(msg string) {
	l.logf("I: %s: %s", l.prefix, msg)
}

func (l *logger) Error(err error, msg string) {
	l.logf("E: %s: %s: %v", l.prefix, msg, err)
}

// Warning logs a warning emitted from a stream
func Warning(l uglify.Logger, v interface{}) {
	if w, ok := v.(uglify.Warning); ok {
		l.Error(w.Err, fmt.Sprintf("%s: %s", w.Path, w.Message))
		return
	}

	l.Log(fmt.Sprintf("warning: %v", v))
}
