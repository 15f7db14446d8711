package logging

import (
	"sync"
)

// Logger accumulates diagnostics and errors produced while running the
// pipeline so that printing to the terminal stays synchronized.
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings collects every non-error message handed to the logger; this
	// package stores them and does not display them
	warnings []LogMessage

	// label is used to shorten display paths in errors
	label string

	// m is the mutex used to synchronize the printing of error messages
	m *sync.Mutex
}

// Enumeration of the different log levels. The level only decides whether
// logged errors are displayed: LogLevelSilent suppresses them, and the other
// three levels display them the same way. Stage progress, the run header and
// the closing summary print at every level, and no level displays warnings.
const (
	LogLevelSilent  = iota // logged errors are counted but not displayed
	LogLevelError          // logged errors are displayed
	LogLevelWarning        // same as LogLevelError
	LogLevelVerbose        // same as LogLevelError (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(label string, loglevel int) Logger {
	return Logger{
		label:    label,
		LogLevel: loglevel,
		m:        &sync.Mutex{},
	}
}

// handleMsg prompts the logger to process a message -- this could be coming
// in concurrently (an analyzer pass may accumulate diagnostics while a
// spinner is still printing) so access is serialized with a mutex.
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}

	l.m.Unlock()
}
