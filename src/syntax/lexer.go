package syntax

import (
	"strings"

	"wisp/src/logging"
)

// LexError is a fatal lexical error: unexpected character, unterminated
// string, or inconsistent indentation (spec.md §4.1, §7).
type LexError struct {
	Message string
	Line    int
	Col     int
}

func (e *LexError) Error() string {
	return e.Message
}

// Lexer converts a source string into a token sequence, synthesizing
// INDENT/DEDENT/NEWLINE layout tokens as it goes. Mirrors the teacher's
// Scanner (src/syntax/scanner.go): a small struct tracking position plus a
// queue for tokens produced incidentally while scanning another one.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int

	// indentStack is initialized to [0] and tracks nesting levels (spec §4.1).
	indentStack []int

	// bracketDepth suppresses layout tokens while > 0 (inside `()[]{}`).
	bracketDepth int

	// queued holds layout tokens produced while processing a newline
	// (e.g. several DEDENTs at once) that have not yet been returned.
	queued []*Token

	atLineStart bool
}

// NewLexer creates a lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:         src,
		line:        1,
		col:         0,
		indentStack: []int{0},
		atLineStart: true,
	}
}

// Lex tokenizes a source string eagerly, in one call, as the library
// surface (spec.md §6.1) allows callers to fully tokenize without managing
// lexer state themselves.
func Lex(src string) ([]*Token, error) {
	lx := NewLexer(src)
	var toks []*Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// Next returns the next token, consuming input.
func (lx *Lexer) Next() (*Token, error) {
	if len(lx.queued) > 0 {
		tok := lx.queued[0]
		lx.queued = lx.queued[1:]
		return tok, nil
	}

	if lx.atLineStart && lx.bracketDepth == 0 {
		tok, err := lx.measureIndentation()
		if err != nil {
			return nil, err
		}
		if tok != nil {
			return tok, nil
		}
	}
	lx.atLineStart = false

	for {
		r, ok := lx.peekRune()
		if !ok {
			return lx.atEOF()
		}

		switch {
		case r == ' ' || r == '\t' || r == '\r':
			lx.advance()
			continue
		case r == '#':
			for {
				r, ok := lx.peekRune()
				if !ok || r == '\n' {
					break
				}
				lx.advance()
			}
			continue
		case r == '\n':
			lx.advance()
			lx.line++
			lx.col = 0
			if lx.bracketDepth > 0 {
				// implicit line-joining inside brackets: no layout emitted
				continue
			}
			lx.atLineStart = true
			return &Token{Kind: NEWLINE, Value: "\n", Line: lx.line - 1, Col: lx.col}, nil
		case isLetter(r) || r == '_':
			return lx.lexIdentifier(), nil
		case isDigit(r):
			return lx.lexNumber()
		case r == '"':
			return lx.lexString()
		default:
			return lx.lexSymbol()
		}
	}
}

// atEOF flushes any remaining DEDENTs (spec §4.1 step 5) and returns EOF.
func (lx *Lexer) atEOF() (*Token, error) {
	if len(lx.indentStack) > 1 {
		lx.indentStack = lx.indentStack[:len(lx.indentStack)-1]
		return &Token{Kind: DEDENT, Value: "", Line: lx.line, Col: lx.col}, nil
	}
	return &Token{Kind: EOF, Value: "", Line: lx.line, Col: lx.col}, nil
}

// measureIndentation implements spec.md §4.1's indentation algorithm. It is
// invoked whenever the lexer is positioned right after a newline outside of
// brackets. It may recurse through blank/comment-only lines.
func (lx *Lexer) measureIndentation() (*Token, error) {
	width := 0
	for {
		r, ok := lx.peekRune()
		if !ok {
			break
		}
		if r == ' ' {
			width++
			lx.advance()
		} else if r == '\t' {
			width += 4
			lx.advance()
		} else {
			break
		}
	}

	r, ok := lx.peekRune()
	if ok && (r == '#' || r == '\n') {
		// blank or comment-only line: consume to end of line and recurse
		// without emitting layout tokens.
		if r == '#' {
			for {
				r, ok := lx.peekRune()
				if !ok || r == '\n' {
					break
				}
				lx.advance()
			}
		}
		if r2, ok2 := lx.peekRune(); ok2 && r2 == '\n' {
			lx.advance()
			lx.line++
			lx.col = 0
		}
		return lx.measureIndentation()
	}

	if !ok {
		lx.atLineStart = false
		return nil, nil
	}

	// The NEWLINE terminating the line that just ended was already returned
	// by Next()'s literal '\n' handling (or, for the very first line of the
	// file, no NEWLINE is needed at all). This function's only job is to
	// compare the new line's width against the indent stack and synthesize
	// whatever INDENT/DEDENT tokens that comparison implies -- never a
	// second NEWLINE for the same transition.
	top := lx.indentStack[len(lx.indentStack)-1]
	var first *Token
	if width > top {
		lx.indentStack = append(lx.indentStack, width)
		first = &Token{Kind: INDENT, Value: "", Line: lx.line, Col: lx.col}
	} else if width < top {
		for len(lx.indentStack) > 0 && lx.indentStack[len(lx.indentStack)-1] > width {
			lx.indentStack = lx.indentStack[:len(lx.indentStack)-1]
			lx.queued = append(lx.queued, &Token{Kind: DEDENT, Value: "", Line: lx.line, Col: lx.col})
		}
		if lx.indentStack[len(lx.indentStack)-1] != width {
			return nil, &LexError{
				Message: "inconsistent dedent: indentation does not match any enclosing block",
				Line:    lx.line,
				Col:     lx.col,
			}
		}
		if len(lx.queued) > 0 {
			first = lx.queued[0]
			lx.queued = lx.queued[1:]
		}
	}

	lx.atLineStart = false
	return first, nil
}

func (lx *Lexer) lexIdentifier() *Token {
	start := lx.pos
	startCol := lx.col + 1
	for {
		r, ok := lx.peekRune()
		if !ok || !(isLetter(r) || isDigit(r) || r == '_') {
			break
		}
		lx.advance()
	}
	text := lx.src[start:lx.pos]

	if text == "_" {
		return &Token{Kind: UNDERSCORE, Value: "_", Line: lx.line, Col: startCol + (lx.pos - start) - 1}
	}

	if kind, ok := keywordPatterns[text]; ok {
		return &Token{Kind: kind, Value: text, Line: lx.line, Col: lx.col}
	}

	return &Token{Kind: IDENTIFIER, Value: text, Line: lx.line, Col: lx.col}
}

func (lx *Lexer) lexNumber() (*Token, error) {
	start := lx.pos
	for {
		r, ok := lx.peekRune()
		if !ok || !isDigit(r) {
			break
		}
		lx.advance()
	}
	return &Token{Kind: NUMBER, Value: lx.src[start:lx.pos], Line: lx.line, Col: lx.col}, nil
}

func (lx *Lexer) lexString() (*Token, error) {
	startLine, startCol := lx.line, lx.col
	lx.advance() // consume opening quote
	var b strings.Builder
	for {
		r, ok := lx.peekRune()
		if !ok {
			return nil, &LexError{Message: "unterminated string literal", Line: startLine, Col: startCol}
		}
		if r == '"' {
			lx.advance()
			break
		}
		if r == '\n' {
			return nil, &LexError{Message: "unterminated string literal", Line: startLine, Col: startCol}
		}
		b.WriteRune(r)
		lx.advance()
	}
	return &Token{Kind: STRING, Value: b.String(), Line: lx.line, Col: lx.col}, nil
}

func (lx *Lexer) lexSymbol() (*Token, error) {
	startLine, startCol := lx.line, lx.col+1
	for _, sym := range maximalSymbols {
		if strings.HasPrefix(lx.src[lx.pos:], sym) {
			for range sym {
				lx.advance()
			}
			switch sym {
			case "(", "[", "{":
				lx.bracketDepth++
			case ")", "]", "}":
				if lx.bracketDepth > 0 {
					lx.bracketDepth--
				}
			}
			return &Token{Kind: symbolPatterns[sym], Value: sym, Line: lx.line, Col: lx.col}, nil
		}
	}

	r, _ := lx.peekRune()
	return nil, &LexError{
		Message: "unexpected character '" + string(r) + "'",
		Line:    startLine,
		Col:     startCol,
	}
}

// -----------------------------------------------------------------------------

func (lx *Lexer) peekRune() (rune, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	return rune(lx.src[lx.pos]), true
}

func (lx *Lexer) advance() {
	r, ok := lx.peekRune()
	if !ok {
		return
	}
	lx.pos++
	if r == '\t' {
		lx.col += 4
	} else {
		lx.col++
	}
}

func isLetter(r rune) bool {
	return r > '`' && r < '{' || r > '@' && r < '['
}

func isDigit(r rune) bool {
	return r > '/' && r < ':'
}

// reportLexError logs a lex error through the shared logging package,
// matching the teacher's habit of routing all diagnostics through
// `logging.LogCompileError` rather than constructing ad-hoc error strings
// at call sites.
func reportLexError(lctx *logging.LogContext, err *LexError) {
	logging.LogCompileError(lctx, err.Message, logging.LMKSyntax, &logging.TextPosition{
		StartLn: err.Line, StartCol: err.Col, EndLn: err.Line, EndCol: err.Col + 1,
	})
}

// ReportSyntaxError logs whatever Lex or Parse returned -- a *LexError or a
// *ParseError -- through the shared logging package, so the host gets the
// same code-frame banner for a bad token that analyze diagnostics get,
// instead of the bare one-line message PrintErrorMessage would produce.
func ReportSyntaxError(lctx *logging.LogContext, err error) {
	switch e := err.(type) {
	case *LexError:
		reportLexError(lctx, e)
	case *ParseError:
		logging.LogCompileError(lctx, e.Message, logging.LMKSyntax, &logging.TextPosition{
			StartLn: e.Line, StartCol: e.Col, EndLn: e.Line, EndCol: e.Col + 1,
		})
	}
}
