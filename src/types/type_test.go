package types

import (
	"reflect"
	"testing"
)

func TestIsPrimitive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"int", Int, true},
		{"str", Str, true},
		{"bool", Bool, true},
		{"any", Any, false},
		{"array", Array(Int), false},
		{"generic", Generic("Box", []string{Int}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrimitive(tt.in); got != tt.want {
				t.Errorf("IsPrimitive(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same primitive", Int, Int, true},
		{"different primitive", Int, Str, false},
		{"any matches left", Any, Str, true},
		{"any matches right", Bool, Any, true},
		{"same generic", Generic("Box", []string{Int}), Generic("Box", []string{Int}), true},
		{"different generic args", Generic("Box", []string{Int}), Generic("Box", []string{Str}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.a, tt.b); got != tt.want {
				t.Errorf("Equals(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestArrayRoundTrip(t *testing.T) {
	arr := Array(Int)
	if arr != "[int]" {
		t.Fatalf("Array(int) = %q, want [int]", arr)
	}
	elem, ok := ArrayElem(arr)
	if !ok || elem != Int {
		t.Errorf("ArrayElem(%q) = (%q, %v), want (int, true)", arr, elem, ok)
	}
	if _, ok := ArrayElem(Int); ok {
		t.Errorf("ArrayElem(int) should report ok=false")
	}
}

func TestTupleRoundTrip(t *testing.T) {
	tup := Tuple([]string{Int, Str, Bool})
	if tup != "(int, str, bool)" {
		t.Fatalf("Tuple(...) = %q", tup)
	}
	elems, ok := TupleElems(tup)
	if !ok {
		t.Fatalf("TupleElems(%q) ok = false", tup)
	}
	if !reflect.DeepEqual(elems, []string{Int, Str, Bool}) {
		t.Errorf("TupleElems(%q) = %v, want [int str bool]", tup, elems)
	}
}

func TestTupleNestedGeneric(t *testing.T) {
	inner := Generic("Box", []string{Int, Str})
	tup := Tuple([]string{inner, Bool})
	elems, ok := TupleElems(tup)
	if !ok || len(elems) != 2 || elems[0] != inner || elems[1] != Bool {
		t.Errorf("TupleElems(%q) = %v, want [%q %q]", tup, elems, inner, Bool)
	}
}

func TestGenericArgs(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantBase string
		wantArgs []string
		wantOK   bool
	}{
		{"bare name", "Box", "Box", nil, true},
		{"single arg", "Box<int>", "Box", []string{Int}, true},
		{"multi arg", "Pair<int, str>", "Pair", []string{Int, Str}, true},
		{"unterminated", "Box<int", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, args, ok := GenericArgs(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if base != tt.wantBase || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("GenericArgs(%q) = (%q, %v), want (%q, %v)", tt.in, base, args, tt.wantBase, tt.wantArgs)
			}
		})
	}
}
