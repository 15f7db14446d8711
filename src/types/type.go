// Package types implements the canonical type-string representation
// described in spec.md §3.2: `int`, `str`, `bool`, `[T]`, `(T1, T2, …)`,
// `Name`, `Name<T1, T2>`. The teacher (src/typing) models types as a
// DataType interface with coercion/casting lattices for a much larger type
// system (primitive widths, structural types, operator overloading); Wisp's
// type system is deliberately text-based per spec.md §3.2 and §9, so this
// package works directly on strings rather than reintroducing that lattice.
package types

import "strings"

const (
	Int  = "int"
	Str  = "str"
	Bool = "bool"
	Any  = "any"
)

// IsPrimitive reports whether t is one of int/str/bool. Per spec.md I4,
// only primitive-typed bindings are exempt from move tracking.
func IsPrimitive(t string) bool {
	return t == Int || t == Str || t == Bool
}

// Equals compares two canonical type strings for equality. Per spec.md I5,
// comparison is bytewise except for the sentinel `any`, which matches any
// type (used for stdlib polymorphism).
func Equals(a, b string) bool {
	if a == Any || b == Any {
		return true
	}
	return a == b
}

// Array builds the canonical array type string for an element type.
func Array(elem string) string {
	return "[" + elem + "]"
}

// ArrayElem extracts T from `[T]`. Returns ok=false if t is not an array type.
func ArrayElem(t string) (string, bool) {
	if len(t) >= 2 && t[0] == '[' && t[len(t)-1] == ']' {
		return t[1 : len(t)-1], true
	}
	return "", false
}

// Tuple builds the canonical tuple type string for a sequence of element types.
func Tuple(elems []string) string {
	return "(" + strings.Join(elems, ", ") + ")"
}

// TupleElems splits `(T1, T2, …)` into its element type strings. Returns
// ok=false if t is not a tuple type. Only top-level commas split elements
// (see splitTopLevel), so a nested `Name<T1, T2>` element stays whole.
func TupleElems(t string) ([]string, bool) {
	if len(t) >= 2 && t[0] == '(' && t[len(t)-1] == ')' {
		inner := t[1 : len(t)-1]
		if inner == "" {
			return nil, true
		}
		return splitTopLevel(inner), true
	}
	return nil, false
}

// Generic builds the canonical `Name<T1, T2>` type string.
func Generic(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

// GenericArgs splits `Name<T1, T2>` into its base name and argument list. If
// t has no angle brackets, returns (t, nil, true) -- a bare name.
func GenericArgs(t string) (base string, args []string, ok bool) {
	lt := strings.IndexByte(t, '<')
	if lt < 0 {
		return t, nil, true
	}
	if !strings.HasSuffix(t, ">") {
		return "", nil, false
	}
	base = t[:lt]
	inner := t[lt+1 : len(t)-1]
	if inner == "" {
		return base, nil, true
	}
	return base, splitTopLevel(inner), true
}

// splitTopLevel splits a comma-separated list on commas that are not nested
// inside another level of (), [], or <> bracketing.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}
