package interp

import (
	"testing"

	"wisp/src/syntax"
)

func runSource(t *testing.T, src string) ([]string, []Event, error) {
	t.Helper()
	prog, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v\nsource:\n%s", err, src)
	}
	var output []string
	var events []Event
	err = Run(prog,
		func(line string) { output = append(output, line) },
		func(e Event) { events = append(events, e) },
		nil,
	)
	return output, events, err
}

func TestRunPrintsOutput(t *testing.T) {
	src := "fn main():\n    print(\"hello\")\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "hello" {
		t.Errorf("output = %v, want [hello]", output)
	}
}

func TestRunArithmetic(t *testing.T) {
	src := "fn main():\n    let x = 3 + 4 * 2\n    print(to_string(x))\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "11" {
		t.Errorf("output = %v, want [11]", output)
	}
}

func TestRunStringConcat(t *testing.T) {
	src := "fn main():\n    let x = \"a\" + \"b\"\n    print(x)\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "ab" {
		t.Errorf("output = %v, want [ab]", output)
	}
}

func TestRunIfElse(t *testing.T) {
	src := "fn main():\n    if false:\n        print(\"no\")\n    else:\n        print(\"yes\")\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "yes" {
		t.Errorf("output = %v, want [yes]", output)
	}
}

func TestRunWhileLoop(t *testing.T) {
	src := "fn main():\n    let mut i = 0\n    while i < 3:\n        print(to_string(i))\n        i = i + 1\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"0", "1", "2"}
	if len(output) != len(want) {
		t.Fatalf("output = %v, want %v", output, want)
	}
	for i := range want {
		if output[i] != want[i] {
			t.Errorf("output[%d] = %q, want %q", i, output[i], want[i])
		}
	}
}

func TestRunForOverArray(t *testing.T) {
	src := "fn main():\n    for x in [1, 2, 3]:\n        print(to_string(x))\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"1", "2", "3"}
	for i := range want {
		if output[i] != want[i] {
			t.Errorf("output[%d] = %q, want %q", i, output[i], want[i])
		}
	}
}

func TestRunFunctionCallAndReturn(t *testing.T) {
	src := "fn square(n: int) -> int:\n    return n * n\n" +
		"fn main():\n    print(to_string(square(5)))\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "25" {
		t.Errorf("output = %v, want [25]", output)
	}
}

func TestRunStructFieldAccessAndMethod(t *testing.T) {
	src := "struct Point:\n    x: int\n    y: int\n" +
		"impl Summable for Point:\n    fn sum() -> int:\n        return this.x + this.y\n" +
		"fn main():\n    let p = Point { x: 2, y: 3 }\n    print(to_string(p.sum()))\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "5" {
		t.Errorf("output = %v, want [5]", output)
	}
}

func TestRunDivideByZeroIsRuntimeError(t *testing.T) {
	src := "fn main():\n    let x = 1 / 0\n"
	_, _, err := runSource(t, src)
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Errorf("error = %T, want *RuntimeError", err)
	}
}

func TestRunEmitsDeclareAndMoveEvents(t *testing.T) {
	src := "struct Box:\n    n: int\n" +
		"fn main():\n    let b = Box { n: 1 }\n    let c = b\n"
	_, events, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var sawDeclare, sawMove bool
	for _, e := range events {
		if e.Kind == Declare && e.Name == "b" {
			sawDeclare = true
		}
		if e.Kind == Move && e.Name == "b" {
			sawMove = true
		}
	}
	if !sawDeclare {
		t.Errorf("expected a DECLARE event for 'b', got %v", events)
	}
	if !sawMove {
		t.Errorf("expected a MOVE event for 'b', got %v", events)
	}
}

func TestRunEnterExitScopeBalanced(t *testing.T) {
	src := "fn main():\n    if true:\n        let x = 1\n"
	_, events, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	enters, exits := 0, 0
	for _, e := range events {
		switch e.Kind {
		case EnterScope:
			enters++
		case ExitScope:
			exits++
		}
	}
	if enters != exits {
		t.Errorf("ENTER_SCOPE count %d != EXIT_SCOPE count %d", enters, exits)
	}
}

func TestRunLenRangeToInt(t *testing.T) {
	src := "fn main():\n" +
		"    print(to_string(len(\"hello\")))\n" +
		"    let xs = range(3)\n" +
		"    print(to_string(len(xs)))\n" +
		"    print(to_string(to_int(\"42\")))\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"5", "3", "42"}
	if len(output) != len(want) {
		t.Fatalf("output = %v, want %v", output, want)
	}
	for i := range want {
		if output[i] != want[i] {
			t.Errorf("output[%d] = %q, want %q", i, output[i], want[i])
		}
	}
}

func TestRunPrintDoesNotMove(t *testing.T) {
	src := "struct Box:\n    n: int\n" +
		"fn main():\n    let b = Box { n: 1 }\n    print(b)\n    print(b)\n"
	_, events, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, e := range events {
		if e.Kind == Move {
			t.Errorf("expected no MOVE event from print arguments, got %v", events)
		}
	}
}

func TestRunTopLevelLetVisibleInFunction(t *testing.T) {
	src := "let g = 41\nfn main():\n    print(to_string(g + 1))\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "42" {
		t.Errorf("output = %v, want [42]", output)
	}
}

func TestRunAlertFallsBackToBracketPrefix(t *testing.T) {
	src := "fn main():\n    alert(\"disk full\")\n"
	output, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(output) != 1 || output[0] != "[ALERT] disk full" {
		t.Errorf("output = %v, want [[ALERT] disk full]", output)
	}
}

func TestRunAlertForwardsToExtern(t *testing.T) {
	prog, err := syntax.Parse("fn main():\n    alert(\"disk full\")\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var captured string
	opts := &RunOptions{Externs: map[string]ExternBinding{
		"alert": func(args []Value) Value {
			if len(args) == 1 {
				if s, ok := args[0].(StrValue); ok {
					captured = string(s)
				}
			}
			return NullValue{}
		},
	}}
	var output []string
	if err := Run(prog, func(line string) { output = append(output, line) }, func(Event) {}, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if captured != "disk full" {
		t.Errorf("captured = %q, want %q", captured, "disk full")
	}
	if len(output) != 0 {
		t.Errorf("output = %v, want no bracket-prefixed fallback once an extern handled it", output)
	}
}

func TestRunExternDispatchesToBinding(t *testing.T) {
	src := "extern fn notify(msg: str)\nfn main():\n    notify(\"hi\")\n"
	prog, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var captured string
	opts := &RunOptions{Externs: map[string]ExternBinding{
		"notify": func(args []Value) Value {
			if len(args) == 1 {
				if s, ok := args[0].(StrValue); ok {
					captured = string(s)
				}
			}
			return NullValue{}
		},
	}}
	if err := Run(prog, func(string) {}, func(Event) {}, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if captured != "hi" {
		t.Errorf("captured = %q, want %q", captured, "hi")
	}
}
