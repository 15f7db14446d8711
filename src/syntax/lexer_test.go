package syntax

import "testing"

func kindsOf(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}

func TestLexIndentation(t *testing.T) {
	src := "fn main():\n    let x = 1\n    let y = 2\n"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}

	want := []int{
		FN, IDENTIFIER, LPAREN, RPAREN, COLON, NEWLINE, INDENT,
		LET, IDENTIFIER, ASSIGN, NUMBER, NEWLINE,
		LET, IDENTIFIER, ASSIGN, NUMBER, NEWLINE,
		DEDENT, EOF,
	}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLexNestedDedent(t *testing.T) {
	src := "fn f():\n    if true:\n        let x = 1\n    let y = 2\n"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}

	dedents := 0
	indents := 0
	for _, tok := range toks {
		switch tok.Kind {
		case DEDENT:
			dedents++
		case INDENT:
			indents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Errorf("got %d INDENT / %d DEDENT, want 2 / 2", indents, dedents)
	}
}

func TestLexBracketSuppressesLayout(t *testing.T) {
	src := "let x = [\n1,\n2,\n3\n]\n"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	for _, tok := range toks {
		if tok.Kind == INDENT || tok.Kind == DEDENT {
			t.Errorf("unexpected layout token %d inside brackets", tok.Kind)
		}
	}
}

func TestLexSymbolsLongestMatch(t *testing.T) {
	src := "a == b != c <= d >= e -> f => g"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	want := []int{IDENTIFIER, EQ, IDENTIFIER, NEQ, IDENTIFIER, LTEQ, IDENTIFIER,
		GTEQ, IDENTIFIER, ARROW, IDENTIFIER, FATARROW, IDENTIFIER, EOF}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	_, err := Lex(`let s = "unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestLexKeywordsVsIdentifiers(t *testing.T) {
	toks, err := Lex("let letter = mutable")
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	if toks[0].Kind != LET {
		t.Errorf("first token kind = %d, want LET", toks[0].Kind)
	}
	if toks[1].Kind != IDENTIFIER || toks[1].Value != "letter" {
		t.Errorf("second token = %+v, want identifier 'letter'", toks[1])
	}
	if toks[2].Kind != ASSIGN {
		t.Errorf("third token kind = %d, want ASSIGN", toks[2].Kind)
	}
	if toks[3].Kind != IDENTIFIER || toks[3].Value != "mutable" {
		t.Errorf("fourth token = %+v, want identifier 'mutable'", toks[3])
	}
}
