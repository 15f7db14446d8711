package interp

import (
	"fmt"
	"strconv"
	"strings"

	"wisp/src/syntax"
)

// Value is the closed sum of runtime values from spec.md §3.3: integer,
// boolean, string, array, tuple, struct instance, enum instance, closure,
// function reference, and null. One concrete Go type per member, following
// the same one-struct-per-kind discipline as src/syntax.Node.
type Value interface {
	isValue()
}

type IntValue int64

func (IntValue) isValue() {}

type StrValue string

func (StrValue) isValue() {}

type BoolValue bool

func (BoolValue) isValue() {}

// NullValue is the sole null value; a value-typed empty struct so zero
// NullValue{} compares equal to itself.
type NullValue struct{}

func (NullValue) isValue() {}

type ArrayValue struct {
	Elems []Value
}

func (ArrayValue) isValue() {}

type TupleValue struct {
	Elems []Value
}

func (TupleValue) isValue() {}

// StructValue is a struct instance `{ _type: Name, field→value }`. Per
// spec.md §9's Design Notes, the runtime erases generic arguments: TypeName
// is always the bare struct name, never `Name<T>` -- this is what makes
// trait dispatch a prefix match instead of an exact match (see
// src/interp/interpreter.go's evalMethodCall and DESIGN.md).
type StructValue struct {
	TypeName string
	Fields   map[string]Value
}

func (StructValue) isValue() {}

// EnumValue is an enum instance `{ enumType, variant, payload }`. Payload is
// nil for a unit variant, a single Value for a tuple-like variant (itself a
// TupleValue if the variant has more than one positional field), or a
// map[string]Value for a struct-like variant.
type EnumValue struct {
	EnumType string
	Variant  string
	Payload  interface{}
}

func (EnumValue) isValue() {}

// ClosureValue is a lambda value: its parameter list, body, and the
// environment captured at the LambdaExpr evaluation site.
type ClosureValue struct {
	Params []syntax.Param
	Body   *syntax.Block
	Env    *Environment
}

func (ClosureValue) isValue() {}

// FuncRefValue names a top-level function or extern by name, for the rare
// case a host wants to pass a function around as a value (not produced by
// the evaluator itself -- spec.md §3.3 lists it as part of the closed sum
// but no surface grammar in §6.2 constructs one directly).
type FuncRefValue struct {
	Name string
}

func (FuncRefValue) isValue() {}

func isPrimitiveValue(v Value) bool {
	switch v.(type) {
	case IntValue, StrValue, BoolValue, NullValue:
		return true
	}
	return false
}

// displayString renders a value the way `print`/`to_string` and string
// concatenation (spec.md §4.3: "Binary `+` with either operand `str`
// produces `str`") need to: a readable, non-reparsable textual form.
func displayString(v Value) string {
	switch t := v.(type) {
	case IntValue:
		return strconv.FormatInt(int64(t), 10)
	case StrValue:
		return string(t)
	case BoolValue:
		if t {
			return "true"
		}
		return "false"
	case NullValue:
		return "null"
	case ArrayValue:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = displayString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TupleValue:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = displayString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case StructValue:
		parts := make([]string, 0, len(t.Fields))
		for name, val := range t.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", name, displayString(val)))
		}
		return t.TypeName + " { " + strings.Join(parts, ", ") + " }"
	case EnumValue:
		base := t.EnumType + "::" + t.Variant
		switch p := t.Payload.(type) {
		case nil:
			return base
		case map[string]Value:
			parts := make([]string, 0, len(p))
			for name, val := range p {
				parts = append(parts, fmt.Sprintf("%s: %s", name, displayString(val)))
			}
			return base + " { " + strings.Join(parts, ", ") + " }"
		case Value:
			return base + "(" + displayString(p) + ")"
		}
		return base
	case ClosureValue:
		return "<lambda>"
	case FuncRefValue:
		return "<fn " + t.Name + ">"
	}
	return ""
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case StrValue:
		bv, ok := b.(StrValue)
		return ok && av == bv
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	}
	return displayString(a) == displayString(b)
}
