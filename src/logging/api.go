package logging

// logger is a global reference to a shared Logger (created/initialized once
// per pipeline run, but separated for general usage across packages)
var logger Logger

// Initialize initializes the global logger with the provided log level. Call
// this once before running the lex/parse/analyze/run pipeline for a source.
func Initialize(sourceLabel string, loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(sourceLabel, loglevel)
}

// ShouldProceed indicates whether the log module has encountered any errors.
// Analyzer diagnostics are logged as warnings and do not affect it; the host
// decides whether to attempt `run` from the analyzer's diagnostic list.
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// ErrorCount returns the number of errors logged so far.
func ErrorCount() int {
	return logger.errorCount
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogCompileError logs and a compilation error (user-induced, bad code)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to host or run configuration.
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogFatal logs a fatal, unexpected error: the toolchain did something it
// wasn't supposed to (an invariant from spec.md §3.4 was violated).
func LogFatal(message string) {
	displayEndPhase(false)
	displayFatalError(message)
	panic(message)
}
