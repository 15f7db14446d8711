package syntax

import (
	"wisp/src/logging"
)

// ParseError is a fatal syntax error: an unexpected or missing token
// (spec.md §4.2, §7). The parser aborts at the first one -- no recovery.
type ParseError struct {
	Message string
	Line    int
	Col     int
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parser is a recursive-descent parser with single-token lookahead (plus a
// small extra lookahead for statement-vs-assignment disambiguation). Unlike
// the teacher's table-driven LALR(1) engine (src/syntax/parser.go, driven
// by a generated ParsingTable from an EBNF grammar file), spec.md §4.2
// mandates a hand-written recursive-descent parser, so the algorithm here
// is original; what is kept from the teacher is the package layout
// (token/ast/lexer/parser sharing one `syntax` package) and its habit of
// routing every diagnostic through `logging.LogCompileError`.
type Parser struct {
	toks []*Token
	pos  int
	lctx *logging.LogContext
}

// Parse tokenizes and parses a complete source string into a Program.
// Matches the library surface of spec.md §6.1: `parse(source) → AST |
// ParserError`, internally constructing a lexer.
func Parse(src string) (*Program, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	p := &Parser{toks: toks, lctx: &logging.LogContext{Label: "<script>", Source: src}}
	return p.parseProgram()
}

// -----------------------------------------------------------------------------
// token stream helpers

func (p *Parser) cur() *Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.toks[len(p.toks)-1] // EOF
}

func (p *Parser) peekAt(n int) *Token {
	idx := p.pos + n
	if idx < len(p.toks) {
		return p.toks[idx]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() *Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(kind int) bool {
	return p.cur().Kind == kind
}

func (p *Parser) errorf(tok *Token, expected string) error {
	return &ParseError{
		Message: "expected " + expected + ", got '" + tokenKindName(tok.Kind) + "'",
		Line:    tok.Line,
		Col:     tok.Col,
	}
}

func (p *Parser) expect(kind int) (*Token, error) {
	if !p.at(kind) {
		return nil, p.errorf(p.cur(), tokenKindName(kind))
	}
	return p.advance(), nil
}

func (p *Parser) skipNewlines() {
	for p.at(NEWLINE) {
		p.advance()
	}
}

func posAt(tok *Token) *logging.TextPosition {
	return &logging.TextPosition{
		StartLn: tok.Line, StartCol: tok.Col - len(tok.Value), EndLn: tok.Line, EndCol: tok.Col,
	}
}

// -----------------------------------------------------------------------------
// top level

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{position: &logging.TextPosition{StartLn: 1, StartCol: 0}}
	p.skipNewlines()
	for !p.at(EOF) {
		stmt, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipNewlines()
	}
	return prog, nil
}

func (p *Parser) parseTopLevelStatement() (Node, error) {
	switch p.cur().Kind {
	case FN:
		return p.parseFunctionDef()
	case STRUCT:
		return p.parseStructDef()
	case ENUM:
		return p.parseEnumDef()
	case TRAIT:
		return p.parseTraitDef()
	case IMPL:
		return p.parseImplBlock()
	case EXTERN:
		return p.parseExternFn()
	default:
		return p.parseStatement()
	}
}

// parseStatement dispatches on the leading token for anything valid inside
// a block (spec.md §4.2 "Top level").
func (p *Parser) parseStatement() (Node, error) {
	switch p.cur().Kind {
	case LET:
		return p.parseVarDecl()
	case IF:
		return p.parseIfStmt()
	case WHILE:
		return p.parseWhileStmt()
	case FOR:
		return p.parseForStmt()
	case RETURN:
		return p.parseReturnStmt()
	case MATCH:
		return p.parseMatchStmt()
	default:
		return p.parseExprOrAssignStatement()
	}
}

// -----------------------------------------------------------------------------
// blocks

// parseBlockAfterColon implements spec.md §4.2: "A block opens after a `:`
// with NEWLINE INDENT, contains statements terminated by NEWLINE, and
// closes with DEDENT."
func (p *Parser) parseBlockAfterColon() (*Block, error) {
	colonTok, err := p.expect(COLON)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	block := &Block{position: posAt(colonTok)}
	p.skipNewlines()
	for !p.at(DEDENT) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return block, nil
}

// parseMatchCaseBody implements the match-case body grammar: "a single
// statement or a `{ … }` braced block (useful because bracket depth
// suppresses layout)."
func (p *Parser) parseMatchCaseBody() (*Block, error) {
	if p.at(LBRACE) {
		open := p.advance()
		block := &Block{position: posAt(open)}
		p.skipNewlines()
		for !p.at(RBRACE) {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, stmt)
			p.skipNewlines()
		}
		if _, err := p.expect(RBRACE); err != nil {
			return nil, err
		}
		return block, nil
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &Block{Statements: []Node{stmt}, position: stmt.Pos()}, nil
}

// -----------------------------------------------------------------------------
// definitions

func (p *Parser) parseParamList() ([]Param, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var params []Param
	for !p.at(RPAREN) {
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: nameTok.Value, Type: t})
		if p.at(COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionDef() (*FunctionDef, error) {
	fnTok := p.advance() // fn
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	retType := ""
	if p.at(ARROW) {
		p.advance()
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockAfterColon()
	if err != nil {
		return nil, err
	}
	return &FunctionDef{Name: nameTok.Value, Params: params, ReturnType: retType, Body: body, position: posAt(fnTok)}, nil
}

func (p *Parser) parseStructDef() (*StructDef, error) {
	structTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	generic := ""
	if p.at(LT) {
		p.advance()
		paramTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		generic = paramTok.Value
		if _, err := p.expect(GT); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	def := &StructDef{Name: nameTok.Value, GenericParam: generic, position: posAt(structTok)}
	p.skipNewlines()
	for !p.at(DEDENT) {
		fname, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		ft, err := p.parseType()
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, Field{Name: fname.Value, Type: ft})
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *Parser) parseEnumDef() (*EnumDef, error) {
	enumTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	def := &EnumDef{Name: nameTok.Value, position: posAt(enumTok)}
	p.skipNewlines()
	for !p.at(DEDENT) {
		vname, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		variant := EnumVariantDef{Name: vname.Value}
		switch {
		case p.at(LBRACE):
			p.advance()
			variant.Kind = VariantStruct
			for !p.at(RBRACE) {
				fname, err := p.expect(IDENTIFIER)
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(COLON); err != nil {
					return nil, err
				}
				ft, err := p.parseType()
				if err != nil {
					return nil, err
				}
				variant.Fields = append(variant.Fields, Field{Name: fname.Value, Type: ft})
				if p.at(COMMA) {
					p.advance()
				} else {
					break
				}
			}
			if _, err := p.expect(RBRACE); err != nil {
				return nil, err
			}
		case p.at(LPAREN):
			p.advance()
			variant.Kind = VariantTuple
			idx := 0
			for !p.at(RPAREN) {
				ft, err := p.parseType()
				if err != nil {
					return nil, err
				}
				variant.Fields = append(variant.Fields, Field{Name: syntheticTupleField(idx), Type: ft})
				idx++
				if p.at(COMMA) {
					p.advance()
				} else {
					break
				}
			}
			if _, err := p.expect(RPAREN); err != nil {
				return nil, err
			}
		default:
			variant.Kind = VariantUnit
		}
		def.Variants = append(def.Variants, variant)
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return def, nil
}

func syntheticTupleField(i int) string {
	digits := "0123456789"
	if i < 10 {
		return "_" + string(digits[i])
	}
	return "_n"
}

func (p *Parser) parseTraitDef() (*TraitDef, error) {
	traitTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	def := &TraitDef{Name: nameTok.Value, position: posAt(traitTok)}
	p.skipNewlines()
	for !p.at(DEDENT) {
		if _, err := p.expect(FN); err != nil {
			return nil, err
		}
		mname, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.parseParamList(); err != nil {
			return nil, err
		}
		ret := ""
		if p.at(ARROW) {
			p.advance()
			ret, err = p.parseType()
			if err != nil {
				return nil, err
			}
		}
		def.Methods = append(def.Methods, TraitMethodSig{Name: mname.Value, ReturnType: ret})
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *Parser) parseImplBlock() (*ImplBlock, error) {
	implTok := p.advance()
	traitTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeywordFor(); err != nil {
		return nil, err
	}
	target, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	block := &ImplBlock{TraitName: traitTok.Value, TargetType: target, position: posAt(implTok)}
	p.skipNewlines()
	for !p.at(DEDENT) {
		method, err := p.parseFunctionDef()
		if err != nil {
			return nil, err
		}
		block.Methods = append(block.Methods, method)
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return block, nil
}

// expectKeywordFor matches the contextual keyword `for` in `impl Trait for
// Type:`. The lexer emits the same FOR keyword token used by for-loops, so
// this simply requires that token at this position.
func (p *Parser) expectKeywordFor() (*Token, error) {
	if p.at(FOR) {
		return p.advance(), nil
	}
	return nil, p.errorf(p.cur(), "'for'")
}

func (p *Parser) parseExternFn() (*ExternFn, error) {
	externTok := p.advance()
	if _, err := p.expect(FN); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	return &ExternFn{Name: nameTok.Value, Params: params, position: posAt(externTok)}, nil
}

// -----------------------------------------------------------------------------
// types

// parseType parses a type reference to its canonical string form (spec.md
// §3.2): `int`, `str`, `bool`, `[T]`, `(T1, T2, …)`, `Name`, `Name<T1, T2>`.
func (p *Parser) parseType() (string, error) {
	switch p.cur().Kind {
	case INTTYPE:
		p.advance()
		return "int", nil
	case STRTYPE:
		p.advance()
		return "str", nil
	case BOOLTYPE:
		p.advance()
		return "bool", nil
	case LBRACKET:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(RBRACKET); err != nil {
			return "", err
		}
		return "[" + elem + "]", nil
	case LPAREN:
		p.advance()
		var elems []string
		for !p.at(RPAREN) {
			t, err := p.parseType()
			if err != nil {
				return "", err
			}
			elems = append(elems, t)
			if p.at(COMMA) {
				p.advance()
			} else {
				break
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return "", err
		}
		s := "("
		for i, e := range elems {
			if i > 0 {
				s += ", "
			}
			s += e
		}
		return s + ")", nil
	case IDENTIFIER:
		nameTok := p.advance()
		name := nameTok.Value
		if p.at(LT) {
			p.advance()
			var args []string
			for {
				t, err := p.parseType()
				if err != nil {
					return "", err
				}
				args = append(args, t)
				if p.at(COMMA) {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(GT); err != nil {
				return "", err
			}
			s := name + "<"
			for i, a := range args {
				if i > 0 {
					s += ", "
				}
				s += a
			}
			return s + ">", nil
		}
		return name, nil
	default:
		return "", p.errorf(p.cur(), "type")
	}
}

// -----------------------------------------------------------------------------
// statements

func (p *Parser) parseVarDecl() (Node, error) {
	letTok := p.advance() // let

	if p.at(LPAREN) {
		// destructuring: let (a, b, …) = expr
		p.advance()
		var names []string
		for !p.at(RPAREN) {
			n, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			names = append(names, n.Value)
			if p.at(COMMA) {
				p.advance()
			} else {
				break
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(ASSIGN); err != nil {
			return nil, err
		}
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &DestructuringAssign{Names: names, Init: init, position: posAt(letTok)}, nil
	}

	mutable := false
	if p.at(MUT) {
		mutable = true
		p.advance()
	}
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	declType := ""
	if p.at(COLON) {
		p.advance()
		declType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	var init Node
	if p.at(ASSIGN) {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	return &VarDecl{Name: nameTok.Value, DeclType: declType, Mutable: mutable, Init: init, position: posAt(letTok)}, nil
}

func (p *Parser) parseIfStmt() (*IfStmt, error) {
	ifTok := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockAfterColon()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then, position: posAt(ifTok)}

	// an `else` may be followed immediately by `if` (else-if chaining) or a
	// bare block; both forms are looked ahead past any stray NEWLINEs that
	// the `skipNewlines` calls around blocks may have consumed.
	save := p.pos
	p.skipNewlines()
	if p.at(ELSE) {
		p.advance()
		if p.at(IF) {
			elseIf, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseIf
		} else {
			elseBlock, err := p.parseBlockAfterColon()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	} else {
		p.pos = save
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (*WhileStmt, error) {
	whileTok := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockAfterColon()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, position: posAt(whileTok)}, nil
}

func (p *Parser) parseForStmt() (*ForStmt, error) {
	forTok := p.advance()
	itemTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockAfterColon()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Item: itemTok.Value, Iterator: iter, Body: body, position: posAt(forTok)}, nil
}

func (p *Parser) parseReturnStmt() (*ReturnStmt, error) {
	retTok := p.advance()
	if p.at(NEWLINE) || p.at(DEDENT) || p.at(EOF) || p.at(RBRACE) {
		return &ReturnStmt{position: posAt(retTok)}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: val, position: posAt(retTok)}, nil
}

func (p *Parser) parseMatchStmt() (*MatchStmt, error) {
	matchTok := p.advance()
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}

	stmt := &MatchStmt{Subject: subject, position: posAt(matchTok)}
	p.skipNewlines()
	for !p.at(DEDENT) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(FATARROW); err != nil {
			return nil, err
		}
		body, err := p.parseMatchCaseBody()
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, MatchCase{Pattern: pat, Body: body})
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseExprOrAssignStatement implements spec.md §4.2's disambiguation rule:
// "identifier followed by `=` → Assignment; otherwise expression statement".
func (p *Parser) parseExprOrAssignStatement() (Node, error) {
	if p.at(IDENTIFIER) && p.peekAt(1).Kind == ASSIGN {
		nameTok := p.advance()
		p.advance() // '='
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: nameTok.Value, Value: val, position: posAt(nameTok)}, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ExpressionStatement{Expr: expr, position: expr.Pos()}, nil
}

// -----------------------------------------------------------------------------
// expressions: precedence climbing (spec.md §4.2)
// comparison (5) < additive (10) < multiplicative (20)

func (p *Parser) parseExpr() (Node, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for isComparisonOp(p.cur().Kind) {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Kind, Left: left, Right: right, position: left.Pos()}
	}
	return left, nil
}

func isComparisonOp(k int) bool {
	switch k {
	case EQ, NEQ, LT, GT, LTEQ, GTEQ:
		return true
	}
	return false
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(PLUS) || p.at(MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Kind, Left: left, Right: right, position: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(STAR) || p.at(SLASH) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Kind, Left: left, Right: right, position: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.at(AMP) {
		ampTok := p.advance()
		mutable := false
		if p.at(MUT) {
			mutable = true
			p.advance()
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Borrow{Mutable: mutable, Expr: expr, position: posAt(ampTok)}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Kind {
		case DOT:
			dotTok := p.advance()
			fieldTok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			expr = &MemberAccess{Target: expr, Field: fieldTok.Value, position: posAt(dotTok)}
		case LBRACKET:
			lb := p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Target: expr, Index: idx, position: posAt(lb)}
		case LPAREN:
			lp := p.advance()
			var args []Node
			for !p.at(RPAREN) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.at(COMMA) {
					p.advance()
				} else {
					break
				}
			}
			if _, err := p.expect(RPAREN); err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Args: args, position: posAt(lp)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case NUMBER:
		p.advance()
		return &Literal{ValueType: LitInt, Value: tok.Value, position: posAt(tok)}, nil
	case STRING:
		p.advance()
		return &Literal{ValueType: LitStr, Value: tok.Value, position: posAt(tok)}, nil
	case BOOLEAN:
		p.advance()
		return &Literal{ValueType: LitBool, Value: tok.Value, position: posAt(tok)}, nil
	case SOME:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &EnumVariantExpr{EnumType: "Option", Variant: "Some", Kind: VariantTuple, Payload: inner, position: posAt(tok)}, nil
	case NONE:
		p.advance()
		return &EnumVariantExpr{EnumType: "Option", Variant: "None", Kind: VariantUnit, position: posAt(tok)}, nil
	case OK:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &EnumVariantExpr{EnumType: "Result", Variant: "Ok", Kind: VariantTuple, Payload: inner, position: posAt(tok)}, nil
	case ERR:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &EnumVariantExpr{EnumType: "Result", Variant: "Err", Kind: VariantTuple, Payload: inner, position: posAt(tok)}, nil
	case THIS:
		p.advance()
		return &Identifier{Name: "this", position: posAt(tok)}, nil
	case IDENTIFIER:
		return p.parseIdentifierLed()
	case LPAREN:
		return p.parseParenOrTuple()
	case LBRACKET:
		return p.parseArrayLiteral()
	case PIPE:
		return p.parseLambda()
	default:
		return nil, p.errorf(tok, "expression")
	}
}

func (p *Parser) parseIdentifierLed() (Node, error) {
	nameTok := p.advance()
	name := nameTok.Value

	switch {
	case p.at(LBRACE):
		return p.parseStructInit(name, nameTok)
	case p.at(DCOLON):
		return p.parseEnumVariantExpr(name, nameTok)
	default:
		return &Identifier{Name: name, position: posAt(nameTok)}, nil
	}
}

func (p *Parser) parseStructInit(name string, nameTok *Token) (Node, error) {
	p.advance() // '{'
	init := &StructInit{StructName: name, position: posAt(nameTok)}
	for !p.at(RBRACE) {
		fnameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		init.Fields = append(init.Fields, StructInitField{Name: fnameTok.Value, Value: val})
		if p.at(COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return init, nil
}

func (p *Parser) parseEnumVariantExpr(enumName string, nameTok *Token) (Node, error) {
	p.advance() // '::'
	variantTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	switch {
	case p.at(LBRACE):
		p.advance()
		var fields []StructInitField
		for !p.at(RBRACE) {
			fnameTok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			fields = append(fields, StructInitField{Name: fnameTok.Value, Value: val})
			if p.at(COMMA) {
				p.advance()
			} else {
				break
			}
		}
		if _, err := p.expect(RBRACE); err != nil {
			return nil, err
		}
		return &EnumVariantExpr{EnumType: enumName, Variant: variantTok.Value, Kind: VariantStruct, Payload: fields, position: posAt(nameTok)}, nil
	case p.at(LPAREN):
		p.advance()
		var args []Node
		for !p.at(RPAREN) {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.at(COMMA) {
				p.advance()
			} else {
				break
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		var payload Node = &TupleLiteral{Elements: args, position: posAt(nameTok)}
		if len(args) == 1 {
			payload = args[0]
		}
		return &EnumVariantExpr{EnumType: enumName, Variant: variantTok.Value, Kind: VariantTuple, Payload: payload, position: posAt(nameTok)}, nil
	default:
		return &EnumVariantExpr{EnumType: enumName, Variant: variantTok.Value, Kind: VariantUnit, position: posAt(nameTok)}, nil
	}
}

func (p *Parser) parseParenOrTuple() (Node, error) {
	lp := p.advance()
	if p.at(RPAREN) {
		p.advance()
		return &TupleLiteral{position: posAt(lp)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(COMMA) {
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}
	elems := []Node{first}
	for p.at(COMMA) {
		p.advance()
		if p.at(RPAREN) {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return &TupleLiteral{Elements: elems, position: posAt(lp)}, nil
}

func (p *Parser) parseArrayLiteral() (Node, error) {
	lb := p.advance()
	var elems []Node
	for !p.at(RBRACKET) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return &ArrayLiteral{Elements: elems, position: posAt(lb)}, nil
}

func (p *Parser) parseLambda() (Node, error) {
	pipeTok := p.advance()
	var params []Param
	for !p.at(PIPE) {
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: nameTok.Value})
		if p.at(COMMA) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(PIPE); err != nil {
		return nil, err
	}

	if p.at(COLON) {
		body, err := p.parseBlockAfterColon()
		if err != nil {
			return nil, err
		}
		return &LambdaExpr{Params: params, Body: body, position: posAt(pipeTok)}, nil
	}

	// `|x| e` lowers to `|x|: return e` (spec.md §9 Design Notes).
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body := &Block{Statements: []Node{&ReturnStmt{Value: e, position: e.Pos()}}, position: e.Pos()}
	return &LambdaExpr{Params: params, Body: body, position: posAt(pipeTok)}, nil
}

// -----------------------------------------------------------------------------
// patterns

func (p *Parser) parsePattern() (Pattern, error) {
	tok := p.cur()
	switch tok.Kind {
	case UNDERSCORE:
		p.advance()
		return &WildcardPattern{position: posAt(tok)}, nil
	case SOME:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		bindTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &EnumPattern{Variant: "Some", InnerBind: bindTok.Value, position: posAt(tok)}, nil
	case NONE:
		p.advance()
		return &EnumPattern{Variant: "None", position: posAt(tok)}, nil
	case OK:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		bindTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &EnumPattern{Variant: "Ok", InnerBind: bindTok.Value, position: posAt(tok)}, nil
	case ERR:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		bindTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &EnumPattern{Variant: "Err", InnerBind: bindTok.Value, position: posAt(tok)}, nil
	case NUMBER, STRING, BOOLEAN:
		lit, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &LiteralPattern{Lit: lit.(*Literal), position: lit.Pos()}, nil
	case IDENTIFIER:
		nameTok := p.advance()
		if p.at(DCOLON) {
			p.advance()
			variantTok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			pat := &EnumPattern{EnumName: nameTok.Value, Variant: variantTok.Value, position: posAt(nameTok)}
			if p.at(LBRACE) {
				p.advance()
				for !p.at(RBRACE) {
					fnameTok, err := p.expect(IDENTIFIER)
					if err != nil {
						return nil, err
					}
					pat.Fields = append(pat.Fields, fnameTok.Value)
					if p.at(COMMA) {
						p.advance()
					} else {
						break
					}
				}
				if _, err := p.expect(RBRACE); err != nil {
					return nil, err
				}
			}
			return pat, nil
		}
		return &IdentifierPattern{Name: nameTok.Value, position: posAt(nameTok)}, nil
	default:
		return nil, p.errorf(tok, "pattern")
	}
}
