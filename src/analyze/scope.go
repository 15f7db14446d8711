package analyze

// binding is the analyzer's record for a single name in a Scope (spec.md
// §3.4): its declared type, whether it was declared `let mut`, and whether
// it has been moved (spec.md I3).
type binding struct {
	declType string
	mutable  bool
	moved    bool
}

// Scope is the analyzer's lexical scope: a name→binding map plus a parent
// link, mirroring the teacher's scope-chain convention in src/resolve but
// carrying move/mutability metadata instead of symbol-table entries for a
// module graph.
type Scope struct {
	parent *Scope
	names  map[string]*binding
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: map[string]*binding{}}
}

func (s *Scope) define(name string, b *binding) {
	s.names[name] = b
}

// resolve walks the scope chain outward, returning the nearest enclosing
// binding for name (spec.md I1). A name shadows outer bindings only within
// its own scope, which falls out naturally from checking s.names first.
func (s *Scope) resolve(name string) *binding {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.names[name]; ok {
			return b
		}
	}
	return nil
}
