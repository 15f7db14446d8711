package analyze

import "wisp/src/syntax"

// stdlibSignatures builds the synthetic FunctionDef entries for the
// standard-library functions named in spec.md §4.3: print, len, range,
// to_string, to_int, alert. Per spec.md §9's Design Notes, these are
// "injected as synthetic FunctionDef entries in Pass A" rather than being a
// distinct kind at the type level -- the interpreter later recognizes the
// same six names by a dedicated dispatch instead of looking them up as
// user functions (src/interp/builtins.go).
func stdlibSignatures() []*syntax.FunctionDef {
	return []*syntax.FunctionDef{
		{Name: "print", Params: []syntax.Param{{Name: "x", Type: "any"}}, ReturnType: ""},
		{Name: "len", Params: []syntax.Param{{Name: "x", Type: "any"}}, ReturnType: "int"},
		{Name: "range", Params: []syntax.Param{{Name: "n", Type: "int"}}, ReturnType: "[int]"},
		{Name: "to_string", Params: []syntax.Param{{Name: "x", Type: "any"}}, ReturnType: "str"},
		{Name: "to_int", Params: []syntax.Param{{Name: "x", Type: "any"}}, ReturnType: "int"},
		{Name: "alert", Params: []syntax.Param{{Name: "msg", Type: "str"}}, ReturnType: ""},
	}
}
