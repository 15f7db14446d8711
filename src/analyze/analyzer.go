// Package analyze implements the two-pass semantic analyzer of spec.md
// §4.3: nominal type checking, lightweight generic-parameter resolution,
// and move/mutability discipline over the AST produced by src/syntax.
//
// Grounded on the teacher's two-pass resolver shape (src/resolve, which
// registers symbols in one pass and type-checks expressions in a second),
// generalized from Chai's structural/coercion type lattice (src/typing) to
// the spec's flat canonical-type-string model (src/types).
package analyze

import (
	"fmt"

	"wisp/src/logging"
	"wisp/src/syntax"
	"wisp/src/types"
)

// Analyzer accumulates diagnostics while walking a Program. Each pipeline
// run uses a fresh Analyzer (spec.md §5: "the standard-library function
// table is populated per-Analyzer... instance").
type Analyzer struct {
	lctx *logging.LogContext

	diagnostics []string

	funcs   map[string]*syntax.FunctionDef
	externs map[string]*syntax.ExternFn
	structs map[string]*syntax.StructDef
	enums   map[string]*syntax.EnumDef
	traits  map[string]*syntax.TraitDef
	impls   []*syntax.ImplBlock

	// userFuncs holds only the FunctionDefs that came from source, i.e.
	// funcs minus the injected stdlib signatures, so Pass B knows which
	// bodies to walk.
	userFuncs []*syntax.FunctionDef

	// global is the top-level scope holding module-level `let` bindings.
	// Function/method bodies parent onto it (spec.md §4.4: a function
	// body's environment parent is the caller's current environment,
	// which for a top-level call is the global scope) so a top-level
	// binding stays visible from inside `main` and other functions.
	global *Scope
}

// Analyze runs both analysis passes over prog and returns the accumulated
// diagnostics, matching the library surface of spec.md §6.1:
// `analyze(ast) → diagnostics[]`. It never raises; a fully broken program
// simply yields a long diagnostic list.
func Analyze(prog *syntax.Program, lctx *logging.LogContext) []string {
	a := &Analyzer{
		lctx:    lctx,
		funcs:   map[string]*syntax.FunctionDef{},
		externs: map[string]*syntax.ExternFn{},
		structs: map[string]*syntax.StructDef{},
		enums:   map[string]*syntax.EnumDef{},
		traits:  map[string]*syntax.TraitDef{},
	}

	a.passA(prog)
	a.passB(prog)

	return a.diagnostics
}

func (a *Analyzer) diag(kind int, pos *logging.TextPosition, message string) {
	a.diagnostics = append(a.diagnostics, message)
	logging.LogCompileWarning(a.lctx, message, kind, pos)
}

// -----------------------------------------------------------------------------
// Pass A: register top-level definitions, inject stdlib signatures.

func (a *Analyzer) passA(prog *syntax.Program) {
	for _, sig := range stdlibSignatures() {
		a.funcs[sig.Name] = sig
	}

	for _, stmt := range prog.Statements {
		switch n := stmt.(type) {
		case *syntax.FunctionDef:
			if _, dup := a.funcs[n.Name]; dup {
				a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("duplicate definition of function '%s'", n.Name))
				continue
			}
			a.funcs[n.Name] = n
			a.userFuncs = append(a.userFuncs, n)
		case *syntax.StructDef:
			if _, dup := a.structs[n.Name]; dup {
				a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("duplicate definition of struct '%s'", n.Name))
				continue
			}
			a.structs[n.Name] = n
		case *syntax.EnumDef:
			if _, dup := a.enums[n.Name]; dup {
				a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("duplicate definition of enum '%s'", n.Name))
				continue
			}
			a.enums[n.Name] = n
		case *syntax.TraitDef:
			if _, dup := a.traits[n.Name]; dup {
				a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("duplicate definition of trait '%s'", n.Name))
				continue
			}
			a.traits[n.Name] = n
		case *syntax.ImplBlock:
			a.impls = append(a.impls, n)
		case *syntax.ExternFn:
			if _, dup := a.externs[n.Name]; dup {
				a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("duplicate definition of extern fn '%s'", n.Name))
				continue
			}
			a.externs[n.Name] = n
		}
	}
}

// -----------------------------------------------------------------------------
// Pass B: visit every statement.

func isDefinitionNode(n syntax.Node) bool {
	switch n.(type) {
	case *syntax.FunctionDef, *syntax.StructDef, *syntax.EnumDef, *syntax.TraitDef, *syntax.ImplBlock, *syntax.ExternFn:
		return true
	}
	return false
}

func (a *Analyzer) passB(prog *syntax.Program) {
	top := newScope(nil)
	a.global = top
	for _, stmt := range prog.Statements {
		if isDefinitionNode(stmt) {
			continue
		}
		a.analyzeStmt(stmt, top)
	}

	for _, fn := range a.userFuncs {
		a.analyzeFunctionBody(fn, "")
	}
	for _, impl := range a.impls {
		for _, method := range impl.Methods {
			a.analyzeFunctionBody(method, impl.TargetType)
		}
	}
}

func (a *Analyzer) analyzeFunctionBody(fn *syntax.FunctionDef, thisType string) {
	scope := newScope(a.global)
	if thisType != "" {
		scope.define("this", &binding{declType: thisType})
	}
	for _, p := range fn.Params {
		scope.define(p.Name, &binding{declType: p.Type})
	}
	a.analyzeBlockInPlace(fn.Body, scope)
}

// analyzeBlockInPlace walks a block's statements directly in scope, without
// pushing a further child scope -- used for function/method/lambda bodies
// so parameters stay visible alongside the body's own let-bindings.
func (a *Analyzer) analyzeBlockInPlace(b *syntax.Block, scope *Scope) {
	for _, stmt := range b.Statements {
		a.analyzeStmt(stmt, scope)
	}
}

func (a *Analyzer) analyzeBlock(b *syntax.Block, parent *Scope) {
	a.analyzeBlockInPlace(b, newScope(parent))
}

// -----------------------------------------------------------------------------
// statements

func (a *Analyzer) analyzeStmt(stmt syntax.Node, scope *Scope) {
	switch n := stmt.(type) {
	case *syntax.VarDecl:
		a.analyzeVarDecl(n, scope)
	case *syntax.DestructuringAssign:
		a.analyzeDestructuringAssign(n, scope)
	case *syntax.Assignment:
		a.analyzeAssignment(n, scope)
	case *syntax.IfStmt:
		a.analyzeIf(n, scope)
	case *syntax.WhileStmt:
		condType := a.exprType(n.Cond, scope)
		if !types.Equals(condType, types.Bool) {
			a.diag(logging.LMKTyping, n.Cond.Pos(), "while condition must be of type 'bool'")
		}
		a.analyzeBlock(n.Body, scope)
	case *syntax.ForStmt:
		a.analyzeFor(n, scope)
	case *syntax.ReturnStmt:
		if n.Value != nil {
			a.exprType(n.Value, scope)
		}
	case *syntax.MatchStmt:
		a.analyzeMatch(n, scope)
	case *syntax.ExpressionStatement:
		a.exprType(n.Expr, scope)
	case *syntax.Block:
		a.analyzeBlock(n, scope)
	}
}

func (a *Analyzer) analyzeVarDecl(n *syntax.VarDecl, scope *Scope) {
	declType := n.DeclType
	var initType string
	if n.Init != nil {
		initType = a.evalMoving(n.Init, scope)
		if declType == "" {
			declType = initType
		} else if !types.Equals(declType, initType) {
			a.diag(logging.LMKTyping, n.Pos(), fmt.Sprintf("cannot initialize '%s' of type '%s' with value of type '%s'", n.Name, declType, initType))
		}
	}
	scope.define(n.Name, &binding{declType: declType, mutable: n.Mutable})
}

func (a *Analyzer) analyzeDestructuringAssign(n *syntax.DestructuringAssign, scope *Scope) {
	initType := a.evalMoving(n.Init, scope)
	elemTypes, ok := types.TupleElems(initType)
	for i, name := range n.Names {
		t := "any"
		if ok && i < len(elemTypes) {
			t = elemTypes[i]
		} else if !ok {
			a.diag(logging.LMKTyping, n.Pos(), fmt.Sprintf("cannot destructure non-tuple value of type '%s'", initType))
		}
		scope.define(name, &binding{declType: t, mutable: n.Mutable})
	}
}

func (a *Analyzer) analyzeAssignment(n *syntax.Assignment, scope *Scope) {
	b := scope.resolve(n.Name)
	if b == nil {
		a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("undefined name '%s'", n.Name))
		a.evalMoving(n.Value, scope)
		return
	}
	if !b.mutable {
		a.diag(logging.LMKImmut, n.Pos(), fmt.Sprintf("cannot assign to immutable binding '%s'", n.Name))
	}
	if b.moved {
		a.diag(logging.LMKMove, n.Pos(), fmt.Sprintf("assignment to moved value '%s'", n.Name))
	}
	valType := a.evalMoving(n.Value, scope)
	if !types.Equals(b.declType, valType) {
		a.diag(logging.LMKTyping, n.Pos(), fmt.Sprintf("cannot assign value of type '%s' to '%s' of type '%s'", valType, n.Name, b.declType))
	}
	b.moved = false
}

func (a *Analyzer) analyzeIf(n *syntax.IfStmt, scope *Scope) {
	condType := a.exprType(n.Cond, scope)
	if !types.Equals(condType, types.Bool) {
		a.diag(logging.LMKTyping, n.Cond.Pos(), "if condition must be of type 'bool'")
	}
	a.analyzeBlock(n.Then, scope)
	switch e := n.Else.(type) {
	case nil:
	case *syntax.Block:
		a.analyzeBlock(e, scope)
	case *syntax.IfStmt:
		a.analyzeIf(e, scope)
	}
}

func (a *Analyzer) analyzeFor(n *syntax.ForStmt, scope *Scope) {
	iterType := a.exprType(n.Iterator, scope)
	itemType := "any"
	if elem, ok := types.ArrayElem(iterType); ok {
		itemType = elem
	} else if iterType == types.Str {
		itemType = types.Str
	} else if iterType != types.Any {
		a.diag(logging.LMKIter, n.Iterator.Pos(), fmt.Sprintf("cannot iterate over value of type '%s'", iterType))
	}

	body := newScope(scope)
	body.define(n.Item, &binding{declType: itemType})
	a.analyzeBlockInPlace(n.Body, body)
}

func (a *Analyzer) analyzeMatch(n *syntax.MatchStmt, scope *Scope) {
	subjectType := a.evalMoving(n.Subject, scope)
	for _, c := range n.Cases {
		caseScope := newScope(scope)
		a.bindPattern(c.Pattern, subjectType, caseScope)
		a.analyzeBlockInPlace(c.Body, caseScope)
	}
}

func (a *Analyzer) bindPattern(pat syntax.Pattern, subjectType string, scope *Scope) {
	switch p := pat.(type) {
	case *syntax.WildcardPattern, *syntax.LiteralPattern:
		// no bindings
	case *syntax.IdentifierPattern:
		scope.define(p.Name, &binding{declType: subjectType})
	case *syntax.EnumPattern:
		if p.InnerBind != "" {
			if subjectType != types.Any && !hasPrefixFold(subjectType, "Option") && !hasPrefixFold(subjectType, "Result") {
				a.diag(logging.LMKPattern, p.Pos(), fmt.Sprintf("pattern '%s' expects an Option or Result subject, got '%s'", p.Variant, subjectType))
			}
			inner := "any"
			if _, args, ok := types.GenericArgs(subjectType); ok && len(args) > 0 {
				inner = args[0]
			}
			scope.define(p.InnerBind, &binding{declType: inner})
			return
		}
		if p.EnumName != "" && subjectType != types.Any && subjectType != p.EnumName {
			a.diag(logging.LMKPattern, p.Pos(), fmt.Sprintf("pattern expects subject of enum '%s', got '%s'", p.EnumName, subjectType))
		}
		if p.EnumName != "" {
			if ed, ok := a.enums[p.EnumName]; ok {
				found := false
				for _, v := range ed.Variants {
					if v.Name == p.Variant {
						found = true
						break
					}
				}
				if !found {
					a.diag(logging.LMKPattern, p.Pos(), fmt.Sprintf("enum '%s' has no variant '%s'", p.EnumName, p.Variant))
				}
			} else {
				a.diag(logging.LMKName, p.Pos(), fmt.Sprintf("undefined enum '%s'", p.EnumName))
			}
		}
		// Per spec.md §9's open question, destructured enum-pattern fields
		// are bound untyped (`any`) rather than tightened to the declared
		// variant field types -- see DESIGN.md.
		for _, f := range p.Fields {
			scope.define(f, &binding{declType: types.Any})
		}
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// -----------------------------------------------------------------------------
// expressions

// evalMoving evaluates expr in one of the five moving contexts named by
// spec.md §4.3 (struct-init field value, function argument, match subject,
// assignment RHS, var-decl initializer). If expr is a bare Identifier
// bound to a non-primitive type, the binding is marked moved.
func (a *Analyzer) evalMoving(expr syntax.Node, scope *Scope) string {
	t := a.exprType(expr, scope)
	if id, ok := expr.(*syntax.Identifier); ok {
		if b := scope.resolve(id.Name); b != nil && !types.IsPrimitive(b.declType) && !b.moved {
			b.moved = true
		}
	}
	return t
}

func (a *Analyzer) exprType(expr syntax.Node, scope *Scope) string {
	switch n := expr.(type) {
	case *syntax.Literal:
		switch n.ValueType {
		case syntax.LitInt:
			return types.Int
		case syntax.LitStr:
			return types.Str
		case syntax.LitBool:
			return types.Bool
		}
		return types.Any
	case *syntax.Identifier:
		return a.readIdentifier(n, scope)
	case *syntax.BinaryExpr:
		return a.analyzeBinary(n, scope)
	case *syntax.CallExpr:
		return a.analyzeCall(n, scope)
	case *syntax.MemberAccess:
		return a.analyzeMemberAccess(n, scope)
	case *syntax.IndexExpr:
		return a.analyzeIndex(n, scope)
	case *syntax.ArrayLiteral:
		return a.analyzeArrayLiteral(n, scope)
	case *syntax.TupleLiteral:
		elems := make([]string, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = a.exprType(e, scope)
		}
		return types.Tuple(elems)
	case *syntax.StructInit:
		return a.analyzeStructInit(n, scope)
	case *syntax.EnumVariantExpr:
		return a.analyzeEnumVariantExpr(n, scope)
	case *syntax.Borrow:
		return a.exprType(n.Expr, scope)
	case *syntax.LambdaExpr:
		return a.analyzeLambda(n, scope)
	}
	return types.Any
}

func (a *Analyzer) readIdentifier(id *syntax.Identifier, scope *Scope) string {
	b := scope.resolve(id.Name)
	if b == nil {
		a.diag(logging.LMKName, id.Pos(), fmt.Sprintf("undefined name '%s'", id.Name))
		return types.Any
	}
	if b.moved {
		a.diag(logging.LMKMove, id.Pos(), fmt.Sprintf("use of moved value '%s'", id.Name))
	}
	return b.declType
}

func (a *Analyzer) analyzeBinary(n *syntax.BinaryExpr, scope *Scope) string {
	lt := a.exprType(n.Left, scope)
	rt := a.exprType(n.Right, scope)

	switch n.Op {
	case syntax.EQ, syntax.NEQ, syntax.LT, syntax.GT, syntax.LTEQ, syntax.GTEQ:
		return types.Bool
	case syntax.PLUS:
		if lt == types.Str || rt == types.Str {
			return types.Str
		}
		fallthrough
	default:
		if !types.Equals(lt, rt) {
			a.diag(logging.LMKTyping, n.Pos(), fmt.Sprintf("operand type mismatch: '%s' vs '%s'", lt, rt))
			return types.Any
		}
		if lt == types.Any {
			return rt
		}
		return lt
	}
}

func (a *Analyzer) analyzeCall(n *syntax.CallExpr, scope *Scope) string {
	if ma, ok := n.Callee.(*syntax.MemberAccess); ok {
		return a.analyzeMethodCall(ma, n.Args, scope)
	}

	id, ok := n.Callee.(*syntax.Identifier)
	if !ok {
		return types.Any
	}

	if fn, found := a.funcs[id.Name]; found {
		a.checkArity(id.Name, len(fn.Params), len(n.Args), n.Pos())
		for i, arg := range n.Args {
			// print arguments are read, not moved (spec.md §4.3 exempts
			// them alongside method receivers and field reads).
			var argType string
			if id.Name == "print" {
				argType = a.exprType(arg, scope)
			} else {
				argType = a.evalMoving(arg, scope)
			}
			if i < len(fn.Params) && !types.Equals(fn.Params[i].Type, argType) {
				a.diag(logging.LMKTyping, arg.Pos(), fmt.Sprintf("argument %d to '%s' has type '%s', expected '%s'", i+1, id.Name, argType, fn.Params[i].Type))
			}
		}
		if fn.ReturnType == "" {
			return types.Any
		}
		return fn.ReturnType
	}

	if ex, found := a.externs[id.Name]; found {
		a.checkArity(id.Name, len(ex.Params), len(n.Args), n.Pos())
		for _, arg := range n.Args {
			a.evalMoving(arg, scope)
		}
		// Per spec.md §9's open question, extern fn carries no return-type
		// arrow in the grammar; calls are typed `any` (see DESIGN.md).
		return types.Any
	}

	if b := scope.resolve(id.Name); b != nil {
		for _, arg := range n.Args {
			a.evalMoving(arg, scope)
		}
		return types.Any
	}

	a.diag(logging.LMKName, id.Pos(), fmt.Sprintf("undefined function '%s'", id.Name))
	for _, arg := range n.Args {
		a.evalMoving(arg, scope)
	}
	return types.Any
}

func (a *Analyzer) checkArity(name string, expected, got int, pos *logging.TextPosition) {
	if expected != got {
		a.diag(logging.LMKArg, pos, fmt.Sprintf("'%s' expects %d argument(s), got %d", name, expected, got))
	}
}

// analyzeMethodCall implements spec.md §4.3's static trait dispatch: an
// exact type-string match against registered impls (unlike the
// interpreter's looser runtime prefix match -- see DESIGN.md for why the
// two differ).
func (a *Analyzer) analyzeMethodCall(ma *syntax.MemberAccess, args []syntax.Node, scope *Scope) string {
	receiverType := a.exprType(ma.Target, scope)

	for _, impl := range a.impls {
		if impl.TargetType != receiverType {
			continue
		}
		for _, method := range impl.Methods {
			if method.Name == ma.Field {
				a.checkArity(ma.Field, len(method.Params), len(args), ma.Pos())
				for i, arg := range args {
					argType := a.evalMoving(arg, scope)
					if i < len(method.Params) && !types.Equals(method.Params[i].Type, argType) {
						a.diag(logging.LMKTyping, arg.Pos(), fmt.Sprintf("argument %d to '%s' has type '%s', expected '%s'", i+1, ma.Field, argType, method.Params[i].Type))
					}
				}
				if method.ReturnType == "" {
					return types.Any
				}
				return method.ReturnType
			}
		}
	}

	a.diag(logging.LMKMethod, ma.Pos(), fmt.Sprintf("no method '%s' found for type '%s'", ma.Field, receiverType))
	for _, arg := range args {
		a.evalMoving(arg, scope)
	}
	return types.Any
}

func (a *Analyzer) analyzeMemberAccess(ma *syntax.MemberAccess, scope *Scope) string {
	targetType := a.exprType(ma.Target, scope)
	base, args, ok := types.GenericArgs(targetType)
	if !ok {
		a.diag(logging.LMKTyping, ma.Pos(), fmt.Sprintf("malformed type '%s'", targetType))
		return types.Any
	}

	sd, found := a.structs[base]
	if !found {
		a.diag(logging.LMKName, ma.Pos(), fmt.Sprintf("'%s' is not a struct type", targetType))
		return types.Any
	}

	field, found := findField(sd, ma.Field)
	if !found {
		a.diag(logging.LMKName, ma.Pos(), fmt.Sprintf("unknown field '%s' on struct '%s'", ma.Field, sd.Name))
		return types.Any
	}

	if sd.GenericParam != "" && field.Type == sd.GenericParam {
		if len(args) > 0 {
			return args[0]
		}
		return types.Any
	}
	return field.Type
}

func findField(sd *syntax.StructDef, name string) (syntax.Field, bool) {
	for _, f := range sd.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return syntax.Field{}, false
}

func (a *Analyzer) analyzeIndex(n *syntax.IndexExpr, scope *Scope) string {
	targetType := a.exprType(n.Target, scope)
	idxType := a.exprType(n.Index, scope)
	if !types.Equals(idxType, types.Int) {
		a.diag(logging.LMKIndex, n.Index.Pos(), fmt.Sprintf("index must be of type 'int', got '%s'", idxType))
	}

	if elem, ok := types.ArrayElem(targetType); ok {
		return elem
	}
	if targetType == types.Str {
		return types.Str
	}
	if targetType == types.Any {
		return types.Any
	}
	a.diag(logging.LMKIndex, n.Pos(), fmt.Sprintf("cannot index value of type '%s'", targetType))
	return types.Any
}

func (a *Analyzer) analyzeArrayLiteral(n *syntax.ArrayLiteral, scope *Scope) string {
	if len(n.Elements) == 0 {
		return types.Array(types.Any)
	}
	elemType := a.exprType(n.Elements[0], scope)
	for _, e := range n.Elements[1:] {
		t := a.exprType(e, scope)
		if !types.Equals(elemType, t) {
			a.diag(logging.LMKTyping, e.Pos(), fmt.Sprintf("array element type mismatch: '%s' vs '%s'", elemType, t))
		}
	}
	return types.Array(elemType)
}

func (a *Analyzer) analyzeStructInit(n *syntax.StructInit, scope *Scope) string {
	sd, found := a.structs[n.StructName]
	if !found {
		a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("undefined struct '%s'", n.StructName))
		for _, f := range n.Fields {
			a.evalMoving(f.Value, scope)
		}
		return types.Any
	}

	seen := map[string]bool{}
	genericArg := ""
	for _, f := range n.Fields {
		valType := a.evalMoving(f.Value, scope)
		seen[f.Name] = true
		field, found := findField(sd, f.Name)
		if !found {
			a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("unknown field '%s' on struct '%s'", f.Name, sd.Name))
			continue
		}
		if sd.GenericParam != "" && field.Type == sd.GenericParam {
			genericArg = valType
			continue
		}
		if !types.Equals(field.Type, valType) {
			a.diag(logging.LMKTyping, n.Pos(), fmt.Sprintf("field '%s' has type '%s', expected '%s'", f.Name, valType, field.Type))
		}
	}
	for _, field := range sd.Fields {
		if !seen[field.Name] {
			a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("missing struct field '%s' in initializer for '%s'", field.Name, sd.Name))
		}
	}

	if sd.GenericParam != "" {
		if genericArg == "" {
			genericArg = types.Any
		}
		return types.Generic(sd.Name, []string{genericArg})
	}
	return sd.Name
}

func (a *Analyzer) analyzeEnumVariantExpr(n *syntax.EnumVariantExpr, scope *Scope) string {
	switch n.EnumType {
	case "Option":
		if n.Variant == "None" {
			return types.Generic("Option", []string{types.Any})
		}
		innerType := a.exprType(n.Payload.(syntax.Node), scope)
		return types.Generic("Option", []string{innerType})
	case "Result":
		innerType := a.exprType(n.Payload.(syntax.Node), scope)
		return types.Generic("Result", []string{innerType})
	}

	ed, found := a.enums[n.EnumType]
	if !found {
		a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("undefined enum '%s'", n.EnumType))
		return types.Any
	}
	variantFound := false
	for _, v := range ed.Variants {
		if v.Name == n.Variant {
			variantFound = true
			break
		}
	}
	if !variantFound {
		a.diag(logging.LMKName, n.Pos(), fmt.Sprintf("enum '%s' has no variant '%s'", n.EnumType, n.Variant))
	}

	switch payload := n.Payload.(type) {
	case []syntax.StructInitField:
		for _, f := range payload {
			a.exprType(f.Value, scope)
		}
	case syntax.Node:
		a.exprType(payload, scope)
	}

	return ed.Name
}

func (a *Analyzer) analyzeLambda(n *syntax.LambdaExpr, scope *Scope) string {
	lamScope := newScope(scope)
	for _, p := range n.Params {
		lamScope.define(p.Name, &binding{declType: types.Any})
	}
	a.analyzeBlockInPlace(n.Body, lamScope)
	return types.Any
}
