package interp

import (
	"fmt"
	"strconv"
)

// builtinNames lists the stdlib surface of spec.md §6.1, mirrored from the
// synthetic signatures analyze/stdlib.go injects for type checking.
var builtinNames = map[string]bool{
	"print":      true,
	"len":        true,
	"range":      true,
	"to_string":  true,
	"to_int":     true,
	"alert":      true,
}

func isBuiltinName(name string) bool {
	return builtinNames[name]
}

func (in *Interpreter) callBuiltin(name string, args []Value) (Value, error) {
	switch name {
	case "print":
		line := ""
		if len(args) > 0 {
			line = displayString(args[0])
		}
		in.output(line)
		return NullValue{}, nil

	case "alert":
		// alert forwards to a host-registered extern named "alert" if one
		// is wired in (src/host.externBindingsFrom); otherwise it falls
		// back to printing "[ALERT] <msg>" to the output stream.
		line := ""
		if len(args) > 0 {
			line = displayString(args[0])
		}
		if binding, ok := in.externBindings["alert"]; ok {
			return binding(args), nil
		}
		in.output("[ALERT] " + line)
		return NullValue{}, nil

	case "len":
		if len(args) != 1 {
			return nil, &RuntimeError{Message: "len expects exactly one argument"}
		}
		switch v := args[0].(type) {
		case ArrayValue:
			return IntValue(len(v.Elems)), nil
		case StrValue:
			return IntValue(len(string(v))), nil
		}
		return nil, &RuntimeError{Message: "len requires an array or str argument"}

	case "range":
		if len(args) != 1 {
			return nil, &RuntimeError{Message: "range expects exactly one argument"}
		}
		n, ok := args[0].(IntValue)
		if !ok {
			return nil, &RuntimeError{Message: "range requires an int argument"}
		}
		elems := make([]Value, 0, n)
		for i := int64(0); i < int64(n); i++ {
			elems = append(elems, IntValue(i))
		}
		return ArrayValue{Elems: elems}, nil

	case "to_string":
		if len(args) != 1 {
			return nil, &RuntimeError{Message: "to_string expects exactly one argument"}
		}
		return StrValue(displayString(args[0])), nil

	case "to_int":
		if len(args) != 1 {
			return nil, &RuntimeError{Message: "to_int expects exactly one argument"}
		}
		s, ok := args[0].(StrValue)
		if !ok {
			return nil, &RuntimeError{Message: "to_int requires a str argument"}
		}
		iv, err := strconv.ParseInt(string(s), 10, 64)
		if err != nil {
			return nil, &RuntimeError{Message: fmt.Sprintf("to_int: '%s' is not a valid integer", string(s))}
		}
		return IntValue(iv), nil
	}
	return nil, &RuntimeError{Message: fmt.Sprintf("unknown builtin '%s'", name)}
}
