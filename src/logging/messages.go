package logging

// LogMessage is the common interface for anything the logger can accumulate
// and eventually display: a diagnostic from one of the four pipeline stages,
// or a host/config-level error.
type LogMessage interface {
	isError() bool
	display()
}

// Enumeration of diagnostic kinds, spanning spec.md §7's error taxonomy.
// Named LMK* (log-message-kind) after the teacher's own convention.
const (
	LMKSyntax  = iota // lexer/parser: unexpected char, unterminated string, bad dedent, unexpected token
	LMKTyping         // type mismatch
	LMKName           // undefined name, duplicate function/struct/enum/trait/extern definition
	LMKArg            // arity mismatch (call or closure invocation)
	LMKImmut          // assignment to an immutable binding
	LMKMove           // use of a moved value
	LMKIndex          // invalid index / non-indexable
	LMKIter           // non-iterable iteration target
	LMKPattern        // enum-pattern family mismatch
	LMKMethod         // trait method not found for receiver type
	LMKRuntime        // fatal runtime error (undefined variable, etc.)
)

var messageKindNames = map[int]string{
	LMKSyntax:  "Syntax",
	LMKTyping:  "Type",
	LMKName:    "Name",
	LMKArg:     "Argument",
	LMKImmut:   "Mutability",
	LMKMove:    "Move",
	LMKIndex:   "Index",
	LMKIter:    "Iteration",
	LMKPattern: "Pattern",
	LMKMethod:  "Method",
	LMKRuntime: "Runtime",
}

// CompileMessage is a diagnostic tied to a span of source text: an analyzer
// diagnostic, a lex error, or a parse error.
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// ConfigError reports a problem loading the run configuration (src/config)
// or resolving CLI arguments, before any source has been read.
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}
