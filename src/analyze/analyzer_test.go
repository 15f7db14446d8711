package analyze

import (
	"strings"
	"testing"

	"wisp/src/logging"
	"wisp/src/syntax"
)

func init() {
	logging.Initialize("analyzer_test", "silent")
}

func analyzeSource(t *testing.T, src string) []string {
	t.Helper()
	prog, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v\nsource:\n%s", err, src)
	}
	return Analyze(prog, &logging.LogContext{Label: "test", Source: src})
}

func wantNoDiagnostics(t *testing.T, src string) {
	t.Helper()
	diags := analyzeSource(t, src)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v\nsource:\n%s", diags, src)
	}
}

func wantDiagnosticContaining(t *testing.T, src, substr string) {
	t.Helper()
	diags := analyzeSource(t, src)
	for _, d := range diags {
		if strings.Contains(d, substr) {
			return
		}
	}
	t.Errorf("expected a diagnostic containing %q, got %v\nsource:\n%s", substr, diags, src)
}

func TestAnalyzeValidFunction(t *testing.T) {
	wantNoDiagnostics(t, "fn add(a: int, b: int) -> int:\n    return a + b\n")
}

func TestAnalyzeUndefinedName(t *testing.T) {
	wantDiagnosticContaining(t, "fn main():\n    let x = y\n", "undefined name")
}

func TestAnalyzeTypeMismatchInVarDecl(t *testing.T) {
	wantDiagnosticContaining(t, "fn main():\n    let x: int = \"hello\"\n", "cannot initialize")
}

func TestAnalyzeAssignToImmutable(t *testing.T) {
	wantDiagnosticContaining(t, "fn main():\n    let x = 1\n    x = 2\n", "immutable")
}

func TestAnalyzeAssignToMutableOK(t *testing.T) {
	wantNoDiagnostics(t, "fn main():\n    let mut x = 1\n    x = 2\n")
}

func TestAnalyzeMoveThenUse(t *testing.T) {
	src := "struct Box:\n    n: int\n" +
		"fn main():\n    let b = Box { n: 1 }\n    let c = b\n    let d = b\n"
	wantDiagnosticContaining(t, src, "moved")
}

func TestAnalyzeMovePrimitiveExempt(t *testing.T) {
	wantNoDiagnostics(t, "fn main():\n    let x = 1\n    let y = x\n    let z = x\n")
}

func TestAnalyzeIfConditionMustBeBool(t *testing.T) {
	wantDiagnosticContaining(t, "fn main():\n    if 1:\n        let x = 1\n", "must be of type 'bool'")
}

func TestAnalyzeArityMismatch(t *testing.T) {
	src := "fn add(a: int, b: int) -> int:\n    return a + b\n" +
		"fn main():\n    let x = add(1)\n"
	wantDiagnosticContaining(t, src, "expects 2 argument")
}

func TestAnalyzeStructFieldTypeMismatch(t *testing.T) {
	src := "struct Point:\n    x: int\n    y: int\n" +
		"fn main():\n    let p = Point { x: 1, y: \"nope\" }\n"
	wantDiagnosticContaining(t, src, "field 'y'")
}

func TestAnalyzeMissingStructField(t *testing.T) {
	src := "struct Point:\n    x: int\n    y: int\n" +
		"fn main():\n    let p = Point { x: 1 }\n"
	wantDiagnosticContaining(t, src, "missing struct field")
}

func TestAnalyzeUndefinedMethod(t *testing.T) {
	src := "struct Box:\n    n: int\n" +
		"fn main():\n    let b = Box { n: 1 }\n    let x = b.missing()\n"
	wantDiagnosticContaining(t, src, "no method")
}

func TestAnalyzeArrayElementTypeMismatch(t *testing.T) {
	wantDiagnosticContaining(t, "fn main():\n    let xs = [1, \"two\", 3]\n", "array element type mismatch")
}

func TestAnalyzeForOverArray(t *testing.T) {
	wantNoDiagnostics(t, "fn main():\n    let xs = [1, 2, 3]\n    for x in xs:\n        let y = x\n")
}

func TestAnalyzePrintDoesNotMove(t *testing.T) {
	src := "struct Box:\n    n: int\n" +
		"fn main():\n    let b = Box { n: 1 }\n    print(b)\n    print(b)\n"
	wantNoDiagnostics(t, src)
}

func TestAnalyzeTopLevelLetVisibleInFunction(t *testing.T) {
	src := "let g = 1\nfn main():\n    let x = g\n"
	wantNoDiagnostics(t, src)
}

func TestAnalyzeAssignToMovedValue(t *testing.T) {
	src := "struct Box:\n    n: int\n" +
		"fn main():\n    let mut b = Box { n: 1 }\n    let c = b\n    b = Box { n: 2 }\n"
	wantDiagnosticContaining(t, src, "moved")
}
