package syntax

import "testing"

func TestParseFunctionDef(t *testing.T) {
	prog, err := Parse("fn add(a: int, b: int) -> int:\n    return a + b\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("Statements = %d, want 1", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*FunctionDef)
	if !ok {
		t.Fatalf("Statements[0] = %T, want *FunctionDef", prog.Statements[0])
	}
	if fn.Name != "add" || fn.ReturnType != "int" {
		t.Errorf("fn = %+v", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Type != "int" {
		t.Errorf("fn.Params = %+v", fn.Params)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("fn.Body.Statements = %d, want 1", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("body[0] = %T, want *ReturnStmt", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*BinaryExpr)
	if !ok || bin.Op != PLUS {
		t.Errorf("ret.Value = %+v, want a BinaryExpr with op PLUS", ret.Value)
	}
}

func TestParseStructDef(t *testing.T) {
	prog, err := Parse("struct Point:\n    x: int\n    y: int\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sd, ok := prog.Statements[0].(*StructDef)
	if !ok {
		t.Fatalf("Statements[0] = %T, want *StructDef", prog.Statements[0])
	}
	if sd.Name != "Point" || len(sd.Fields) != 2 {
		t.Errorf("sd = %+v", sd)
	}
}

func TestParseGenericStructDef(t *testing.T) {
	prog, err := Parse("struct Box<T>:\n    value: T\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sd := prog.Statements[0].(*StructDef)
	if sd.GenericParam != "T" {
		t.Errorf("GenericParam = %q, want T", sd.GenericParam)
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	src := "fn main():\n    if a:\n        let x = 1\n    else if b:\n        let y = 2\n    else:\n        let z = 3\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := prog.Statements[0].(*FunctionDef)
	ifStmt := fn.Body.Statements[0].(*IfStmt)
	elseIf, ok := ifStmt.Else.(*IfStmt)
	if !ok {
		t.Fatalf("Else = %T, want *IfStmt", ifStmt.Else)
	}
	if _, ok := elseIf.Else.(*Block); !ok {
		t.Errorf("elseIf.Else = %T, want *Block", elseIf.Else)
	}
}

func TestParseMatchStmt(t *testing.T) {
	src := "fn main():\n    match x:\n        1 => print(\"one\")\n        _ => print(\"other\")\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := prog.Statements[0].(*FunctionDef)
	m, ok := fn.Body.Statements[0].(*MatchStmt)
	if !ok {
		t.Fatalf("body[0] = %T, want *MatchStmt", fn.Body.Statements[0])
	}
	if len(m.Cases) != 2 {
		t.Fatalf("Cases = %d, want 2", len(m.Cases))
	}
	if _, ok := m.Cases[0].Pattern.(*LiteralPattern); !ok {
		t.Errorf("Cases[0].Pattern = %T, want *LiteralPattern", m.Cases[0].Pattern)
	}
	if _, ok := m.Cases[1].Pattern.(*WildcardPattern); !ok {
		t.Errorf("Cases[1].Pattern = %T, want *WildcardPattern", m.Cases[1].Pattern)
	}
}

func TestParseStructInitExpr(t *testing.T) {
	src := "fn main():\n    let p = Point { x: 1, y: 2 }\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := prog.Statements[0].(*FunctionDef)
	decl := fn.Body.Statements[0].(*VarDecl)
	init, ok := decl.Init.(*StructInit)
	if !ok {
		t.Fatalf("Init = %T, want *StructInit", decl.Init)
	}
	if init.StructName != "Point" || len(init.Fields) != 2 {
		t.Errorf("init = %+v", init)
	}
}

func TestParseDestructuringAssign(t *testing.T) {
	src := "fn main():\n    let (a, b) = (1, 2)\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := prog.Statements[0].(*FunctionDef)
	d, ok := fn.Body.Statements[0].(*DestructuringAssign)
	if !ok {
		t.Fatalf("body[0] = %T, want *DestructuringAssign", fn.Body.Statements[0])
	}
	if len(d.Names) != 2 || d.Names[0] != "a" || d.Names[1] != "b" {
		t.Errorf("Names = %v", d.Names)
	}
}

func TestParseUnexpectedTokenErrors(t *testing.T) {
	_, err := Parse("fn main(:\n    let x = 1\n")
	if err == nil {
		t.Fatal("expected a parse error for a malformed parameter list")
	}
}

func TestParseLambdaExpr(t *testing.T) {
	src := "fn main():\n    let f = |x| x + 1\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := prog.Statements[0].(*FunctionDef)
	decl := fn.Body.Statements[0].(*VarDecl)
	if _, ok := decl.Init.(*LambdaExpr); !ok {
		t.Fatalf("Init = %T, want *LambdaExpr", decl.Init)
	}
}
