// Package interp implements the tree-walking evaluator of spec.md §4.4:
// recursive visitor execution producing output lines and a memory-event
// trace, with closures, prefix-matched trait dispatch, and return-as-
// non-local-exit.
//
// Grounded on the teacher's visitor-per-node-kind walk (src/walk), adapted
// from Chai's IR-emitting tree walk to a direct evaluator over the
// spec's closed value sum (src/interp/values.go) rather than emitting any
// intermediate representation.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"wisp/src/syntax"
)

// RuntimeError is a fatal execution error (spec.md §7): undefined variable,
// non-indexable/non-iterable target, method not found, or closure arity
// mismatch. The run aborts, surfacing alongside any output already produced.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// ExternBinding is a host-supplied implementation for an `extern fn`
// declared in source (spec.md §4.4: "forwards to a host-provided extern if
// registered"). It receives the evaluated argument values and returns a
// single result value.
type ExternBinding func(args []Value) Value

// RunOptions configures a single Run invocation. Externs maps a declared
// extern name (including "alert") to a host implementation; an extern with
// no entry here returns null when called (spec.md §4.4).
type RunOptions struct {
	Externs map[string]ExternBinding
}

// Interpreter holds all state for one pipeline run (spec.md §5: "Each
// invocation of the pipeline uses private state").
type Interpreter struct {
	funcs   map[string]*syntax.FunctionDef
	externs map[string]*syntax.ExternFn
	impls   []*syntax.ImplBlock

	externBindings map[string]ExternBinding

	onOutput OutputSink
	onEvent  EventSink

	nextScopeID int

	// global is the top-level environment holding module-level `let`
	// bindings. Function/method bodies parent onto it (spec.md §4.4: a
	// function body's environment parent is the caller's current
	// environment) so a top-level binding stays visible from inside
	// `main` and other functions.
	global *Environment
}

// Run executes prog, matching spec.md §6.1's `run(ast, onOutput, onEvent) →
// () | RuntimeError`. Pass 1 registers every FunctionDef, ExternFn, and
// ImplBlock; Pass 2 executes top-level non-definition statements in source
// order; finally, if a function named `main` exists, it is invoked with no
// arguments.
func Run(prog *syntax.Program, onOutput OutputSink, onEvent EventSink, opts *RunOptions) error {
	in := &Interpreter{
		funcs:          map[string]*syntax.FunctionDef{},
		externs:        map[string]*syntax.ExternFn{},
		externBindings: map[string]ExternBinding{},
		onOutput:       onOutput,
		onEvent:        onEvent,
	}
	if opts != nil {
		for name, b := range opts.Externs {
			in.externBindings[name] = b
		}
	}

	for _, stmt := range prog.Statements {
		switch n := stmt.(type) {
		case *syntax.FunctionDef:
			in.funcs[n.Name] = n
		case *syntax.ExternFn:
			in.externs[n.Name] = n
		case *syntax.ImplBlock:
			in.impls = append(in.impls, n)
		}
	}

	global := in.enterScope(nil)
	in.global = global
	for _, stmt := range prog.Statements {
		if isDefinitionNode(stmt) {
			continue
		}
		_, ret, err := in.execStmt(stmt, global)
		if err != nil {
			in.exitScope(global)
			return err
		}
		if ret {
			break
		}
	}

	var runErr error
	if mainFn, ok := in.funcs["main"]; ok {
		if _, err := in.callFunction(mainFn, nil, nil); err != nil {
			runErr = err
		}
	}
	in.exitScope(global)
	return runErr
}

func isDefinitionNode(n syntax.Node) bool {
	switch n.(type) {
	case *syntax.FunctionDef, *syntax.StructDef, *syntax.EnumDef, *syntax.TraitDef, *syntax.ImplBlock, *syntax.ExternFn:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// scope + event plumbing

func (in *Interpreter) enterScope(parent *Environment) *Environment {
	id := in.nextScopeID
	in.nextScopeID++
	env := &Environment{id: id, parent: parent, vars: map[string]Value{}}

	parentID := -1
	if parent != nil {
		parentID = parent.id
	}
	in.emit(Event{Kind: EnterScope, ScopeID: id, ParentScopeID: parentID})
	return env
}

func (in *Interpreter) exitScope(env *Environment) {
	in.emit(Event{Kind: ExitScope, ScopeID: env.id})
}

func (in *Interpreter) emit(e Event) {
	if in.onEvent != nil {
		in.onEvent(e)
	}
}

func (in *Interpreter) output(line string) {
	if in.onOutput != nil {
		in.onOutput(line)
	}
}

func (in *Interpreter) declare(env *Environment, name string, v Value) {
	env.vars[name] = v
	in.emit(Event{Kind: Declare, ScopeID: env.id, Name: name, Value: v})
}

func (in *Interpreter) update(env *Environment, name string, v Value) {
	_, owner, found := env.get(name)
	if !found {
		owner = env
	}
	owner.vars[name] = v
	in.emit(Event{Kind: Update, ScopeID: owner.id, Name: name, Value: v})
}

// evalMoving evaluates expr in one of the five moving contexts of spec.md
// §4.3. If expr is a bare Identifier bound to a non-primitive value, it
// emits a MOVE event (the interpreter trusts the analyzer to have already
// rejected programs that violate move discipline; this purely reports the
// data flow for the event trace).
func (in *Interpreter) evalMoving(expr syntax.Node, env *Environment) (Value, error) {
	v, err := in.eval(expr, env)
	if err != nil {
		return nil, err
	}
	if id, ok := expr.(*syntax.Identifier); ok && !isPrimitiveValue(v) {
		if _, owner, found := env.get(id.Name); found {
			in.emit(Event{Kind: Move, ScopeID: owner.id, Name: id.Name, Value: v, Moved: true})
		}
	}
	return v, nil
}

func evalArgs(in *Interpreter, args []syntax.Node, env *Environment) ([]Value, error) {
	vals := make([]Value, len(args))
	for i, a := range args {
		v, err := in.evalMoving(a, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// evalArgsRead evaluates args as plain reads, with no move tracking --
// spec.md §4.3 exempts print arguments (alongside method receivers and
// field reads) from moving the source identifier.
func evalArgsRead(in *Interpreter, args []syntax.Node, env *Environment) ([]Value, error) {
	vals := make([]Value, len(args))
	for i, a := range args {
		v, err := in.eval(a, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// -----------------------------------------------------------------------------
// statement execution: (result, returned, err). `returned` propagates a
// ReturnStmt up through blocks/loops to the enclosing call frame.

func (in *Interpreter) execStmtsInEnv(stmts []syntax.Node, env *Environment) (Value, bool, error) {
	for _, stmt := range stmts {
		v, ret, err := in.execStmt(stmt, env)
		if err != nil {
			return nil, false, err
		}
		if ret {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func (in *Interpreter) execBlock(b *syntax.Block, parent *Environment) (Value, bool, error) {
	env := in.enterScope(parent)
	v, ret, err := in.execStmtsInEnv(b.Statements, env)
	in.exitScope(env)
	return v, ret, err
}

func (in *Interpreter) execStmt(stmt syntax.Node, env *Environment) (Value, bool, error) {
	switch n := stmt.(type) {
	case *syntax.VarDecl:
		var v Value = NullValue{}
		if n.Init != nil {
			vv, err := in.evalMoving(n.Init, env)
			if err != nil {
				return nil, false, err
			}
			v = vv
		}
		in.declare(env, n.Name, v)
		return nil, false, nil

	case *syntax.DestructuringAssign:
		v, err := in.evalMoving(n.Init, env)
		if err != nil {
			return nil, false, err
		}
		tuple, _ := v.(TupleValue)
		for i, name := range n.Names {
			var elem Value = NullValue{}
			if i < len(tuple.Elems) {
				elem = tuple.Elems[i]
			}
			in.declare(env, name, elem)
		}
		return nil, false, nil

	case *syntax.Assignment:
		v, err := in.evalMoving(n.Value, env)
		if err != nil {
			return nil, false, err
		}
		in.update(env, n.Name, v)
		return nil, false, nil

	case *syntax.IfStmt:
		return in.execIf(n, env)

	case *syntax.WhileStmt:
		for {
			cv, err := in.eval(n.Cond, env)
			if err != nil {
				return nil, false, err
			}
			b, ok := cv.(BoolValue)
			if !ok {
				return nil, false, &RuntimeError{Message: "while condition did not evaluate to a bool"}
			}
			if !bool(b) {
				return nil, false, nil
			}
			v, ret, err := in.execBlock(n.Body, env)
			if err != nil {
				return nil, false, err
			}
			if ret {
				return v, true, nil
			}
		}

	case *syntax.ForStmt:
		return in.execFor(n, env)

	case *syntax.ReturnStmt:
		if n.Value == nil {
			return NullValue{}, true, nil
		}
		v, err := in.eval(n.Value, env)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil

	case *syntax.MatchStmt:
		return in.execMatch(n, env)

	case *syntax.ExpressionStatement:
		_, err := in.eval(n.Expr, env)
		return nil, false, err

	case *syntax.Block:
		return in.execBlock(n, env)
	}
	return nil, false, nil
}

func (in *Interpreter) execIf(n *syntax.IfStmt, env *Environment) (Value, bool, error) {
	cv, err := in.eval(n.Cond, env)
	if err != nil {
		return nil, false, err
	}
	b, ok := cv.(BoolValue)
	if !ok {
		return nil, false, &RuntimeError{Message: "if condition did not evaluate to a bool"}
	}
	if bool(b) {
		return in.execBlock(n.Then, env)
	}
	switch e := n.Else.(type) {
	case nil:
		return nil, false, nil
	case *syntax.Block:
		return in.execBlock(e, env)
	case *syntax.IfStmt:
		return in.execIf(e, env)
	}
	return nil, false, nil
}

func (in *Interpreter) execFor(n *syntax.ForStmt, env *Environment) (Value, bool, error) {
	iv, err := in.eval(n.Iterator, env)
	if err != nil {
		return nil, false, err
	}
	items, ok := iterableValues(iv)
	if !ok {
		return nil, false, &RuntimeError{Message: "for loop target is not iterable"}
	}

	for _, item := range items {
		iterEnv := in.enterScope(env)
		in.declare(iterEnv, n.Item, item)
		v, ret, err := in.execStmtsInEnv(n.Body.Statements, iterEnv)
		in.exitScope(iterEnv)
		if err != nil {
			return nil, false, err
		}
		if ret {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func iterableValues(v Value) ([]Value, bool) {
	switch t := v.(type) {
	case ArrayValue:
		return t.Elems, true
	case StrValue:
		s := string(t)
		elems := make([]Value, 0, len(s))
		for _, r := range s {
			elems = append(elems, StrValue(string(r)))
		}
		return elems, true
	}
	return nil, false
}

func (in *Interpreter) execMatch(n *syntax.MatchStmt, env *Environment) (Value, bool, error) {
	subject, err := in.evalMoving(n.Subject, env)
	if err != nil {
		return nil, false, err
	}
	for _, c := range n.Cases {
		binds, matched := matchPattern(c.Pattern, subject)
		if !matched {
			continue
		}
		caseEnv := in.enterScope(env)
		for name, val := range binds {
			in.declare(caseEnv, name, val)
		}
		v, ret, err := in.execStmtsInEnv(c.Body.Statements, caseEnv)
		in.exitScope(caseEnv)
		return v, ret, err
	}
	return nil, false, nil
}

func matchPattern(pat syntax.Pattern, v Value) (map[string]Value, bool) {
	switch p := pat.(type) {
	case *syntax.WildcardPattern:
		return map[string]Value{}, true
	case *syntax.LiteralPattern:
		return map[string]Value{}, literalMatches(p.Lit, v)
	case *syntax.IdentifierPattern:
		return map[string]Value{p.Name: v}, true
	case *syntax.EnumPattern:
		ev, ok := v.(EnumValue)
		if !ok || ev.Variant != p.Variant {
			return nil, false
		}
		binds := map[string]Value{}
		if p.InnerBind != "" {
			if inner, ok := ev.Payload.(Value); ok {
				binds[p.InnerBind] = inner
			}
			return binds, true
		}
		if fields, ok := ev.Payload.(map[string]Value); ok {
			for _, name := range p.Fields {
				if val, present := fields[name]; present {
					binds[name] = val
				}
			}
		}
		return binds, true
	}
	return nil, false
}

func literalMatches(lit *syntax.Literal, v Value) bool {
	switch lit.ValueType {
	case syntax.LitInt:
		iv, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			return false
		}
		av, ok := v.(IntValue)
		return ok && int64(av) == iv
	case syntax.LitStr:
		av, ok := v.(StrValue)
		return ok && string(av) == lit.Value
	case syntax.LitBool:
		av, ok := v.(BoolValue)
		return ok && strconv.FormatBool(bool(av)) == lit.Value
	}
	return false
}

// -----------------------------------------------------------------------------
// expression evaluation

func (in *Interpreter) eval(expr syntax.Node, env *Environment) (Value, error) {
	switch n := expr.(type) {
	case *syntax.Literal:
		return evalLiteral(n)
	case *syntax.Identifier:
		v, _, found := env.get(n.Name)
		if !found {
			return nil, &RuntimeError{Message: fmt.Sprintf("undefined variable '%s'", n.Name)}
		}
		return v, nil
	case *syntax.BinaryExpr:
		return in.evalBinary(n, env)
	case *syntax.CallExpr:
		return in.evalCall(n, env)
	case *syntax.MemberAccess:
		return in.evalMemberAccess(n, env)
	case *syntax.IndexExpr:
		return in.evalIndex(n, env)
	case *syntax.ArrayLiteral:
		elems := make([]Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := in.eval(e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return ArrayValue{Elems: elems}, nil
	case *syntax.TupleLiteral:
		elems := make([]Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := in.eval(e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return TupleValue{Elems: elems}, nil
	case *syntax.StructInit:
		fields := map[string]Value{}
		for _, f := range n.Fields {
			v, err := in.evalMoving(f.Value, env)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return StructValue{TypeName: n.StructName, Fields: fields}, nil
	case *syntax.EnumVariantExpr:
		return in.evalEnumVariant(n, env)
	case *syntax.Borrow:
		return in.eval(n.Expr, env)
	case *syntax.LambdaExpr:
		return ClosureValue{Params: n.Params, Body: n.Body, Env: env}, nil
	}
	return nil, fmt.Errorf("unsupported expression node")
}

func evalLiteral(n *syntax.Literal) (Value, error) {
	switch n.ValueType {
	case syntax.LitInt:
		iv, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, &RuntimeError{Message: "malformed integer literal '" + n.Value + "'"}
		}
		return IntValue(iv), nil
	case syntax.LitStr:
		return StrValue(n.Value), nil
	case syntax.LitBool:
		return BoolValue(n.Value == "true"), nil
	}
	return NullValue{}, nil
}

func (in *Interpreter) evalBinary(n *syntax.BinaryExpr, env *Environment) (Value, error) {
	lv, err := in.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	rv, err := in.eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case syntax.PLUS:
		if _, ok := lv.(StrValue); ok {
			return StrValue(displayString(lv) + displayString(rv)), nil
		}
		if _, ok := rv.(StrValue); ok {
			return StrValue(displayString(lv) + displayString(rv)), nil
		}
		li, lok := lv.(IntValue)
		ri, rok := rv.(IntValue)
		if lok && rok {
			return li + ri, nil
		}
		return nil, &RuntimeError{Message: "operand type mismatch for '+'"}
	case syntax.MINUS, syntax.STAR, syntax.SLASH:
		li, lok := lv.(IntValue)
		ri, rok := rv.(IntValue)
		if !lok || !rok {
			return nil, &RuntimeError{Message: "arithmetic requires int operands"}
		}
		switch n.Op {
		case syntax.MINUS:
			return li - ri, nil
		case syntax.STAR:
			return li * ri, nil
		case syntax.SLASH:
			if ri == 0 {
				return nil, &RuntimeError{Message: "division by zero"}
			}
			return li / ri, nil
		}
	case syntax.EQ:
		return BoolValue(valuesEqual(lv, rv)), nil
	case syntax.NEQ:
		return BoolValue(!valuesEqual(lv, rv)), nil
	case syntax.LT, syntax.GT, syntax.LTEQ, syntax.GTEQ:
		return compareValues(n.Op, lv, rv)
	}
	return nil, fmt.Errorf("unsupported operator")
}

func compareValues(op int, lv, rv Value) (Value, error) {
	if li, ok := lv.(IntValue); ok {
		if ri, ok := rv.(IntValue); ok {
			switch op {
			case syntax.LT:
				return BoolValue(li < ri), nil
			case syntax.GT:
				return BoolValue(li > ri), nil
			case syntax.LTEQ:
				return BoolValue(li <= ri), nil
			case syntax.GTEQ:
				return BoolValue(li >= ri), nil
			}
		}
	}
	if ls, ok := lv.(StrValue); ok {
		if rs, ok := rv.(StrValue); ok {
			switch op {
			case syntax.LT:
				return BoolValue(ls < rs), nil
			case syntax.GT:
				return BoolValue(ls > rs), nil
			case syntax.LTEQ:
				return BoolValue(ls <= rs), nil
			case syntax.GTEQ:
				return BoolValue(ls >= rs), nil
			}
		}
	}
	return nil, &RuntimeError{Message: "comparison requires matching int or str operands"}
}

func (in *Interpreter) evalCall(n *syntax.CallExpr, env *Environment) (Value, error) {
	if ma, ok := n.Callee.(*syntax.MemberAccess); ok {
		return in.evalMethodCall(ma, n.Args, env)
	}

	id, ok := n.Callee.(*syntax.Identifier)
	if !ok {
		return nil, fmt.Errorf("unsupported call target")
	}

	if isBuiltinName(id.Name) {
		var args []Value
		var err error
		if id.Name == "print" {
			args, err = evalArgsRead(in, n.Args, env)
		} else {
			args, err = evalArgs(in, n.Args, env)
		}
		if err != nil {
			return nil, err
		}
		return in.callBuiltin(id.Name, args)
	}

	if fn, found := in.funcs[id.Name]; found {
		args, err := evalArgs(in, n.Args, env)
		if err != nil {
			return nil, err
		}
		return in.callFunction(fn, args, nil)
	}

	if ext, found := in.externs[id.Name]; found {
		args, err := evalArgs(in, n.Args, env)
		if err != nil {
			return nil, err
		}
		if binding, ok := in.externBindings[ext.Name]; ok {
			return binding(args), nil
		}
		return NullValue{}, nil
	}

	v, _, found := env.get(id.Name)
	if !found {
		return nil, &RuntimeError{Message: fmt.Sprintf("undefined function '%s'", id.Name)}
	}
	closure, ok := v.(ClosureValue)
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("'%s' is not callable", id.Name)}
	}
	args, err := evalArgs(in, n.Args, env)
	if err != nil {
		return nil, err
	}
	return in.callClosure(closure, args)
}

// evalMethodCall implements spec.md §4.4's dynamic dispatch: scan all
// registered impls for the first `impl Trait for U` whose type string
// starts with the receiver's runtime type tag and that defines the named
// method. Deliberately looser than the analyzer's static exact-match check
// (src/analyze/analyzer.go) because the runtime struct tag carries no
// generic arguments.
func (in *Interpreter) evalMethodCall(ma *syntax.MemberAccess, args []syntax.Node, env *Environment) (Value, error) {
	recv, err := in.eval(ma.Target, env)
	if err != nil {
		return nil, err
	}
	sv, ok := recv.(StructValue)
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("cannot call method '%s' on a non-struct value", ma.Field)}
	}

	for _, impl := range in.impls {
		if !strings.HasPrefix(impl.TargetType, sv.TypeName) {
			continue
		}
		for _, method := range impl.Methods {
			if method.Name != ma.Field {
				continue
			}
			argVals, err := evalArgs(in, args, env)
			if err != nil {
				return nil, err
			}
			if len(argVals) != len(method.Params) {
				return nil, &RuntimeError{Message: fmt.Sprintf("closure arity mismatch calling '%s': expected %d, got %d", method.Name, len(method.Params), len(argVals))}
			}
			return in.callFunction(method, argVals, sv)
		}
	}
	return nil, &RuntimeError{Message: fmt.Sprintf("no method '%s' found for type '%s'", ma.Field, sv.TypeName)}
}

func (in *Interpreter) evalMemberAccess(ma *syntax.MemberAccess, env *Environment) (Value, error) {
	tv, err := in.eval(ma.Target, env)
	if err != nil {
		return nil, err
	}
	sv, ok := tv.(StructValue)
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("cannot access field '%s' on a non-struct value", ma.Field)}
	}
	fv, present := sv.Fields[ma.Field]
	if !present {
		return nil, &RuntimeError{Message: fmt.Sprintf("struct '%s' has no field '%s'", sv.TypeName, ma.Field)}
	}
	return fv, nil
}

func (in *Interpreter) evalIndex(n *syntax.IndexExpr, env *Environment) (Value, error) {
	tv, err := in.eval(n.Target, env)
	if err != nil {
		return nil, err
	}
	iv, err := in.eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	idx, ok := iv.(IntValue)
	if !ok {
		return nil, &RuntimeError{Message: "index must be of type 'int'"}
	}

	switch t := tv.(type) {
	case ArrayValue:
		if int(idx) < 0 || int(idx) >= len(t.Elems) {
			return nil, &RuntimeError{Message: fmt.Sprintf("index %d out of range", idx)}
		}
		return t.Elems[idx], nil
	case StrValue:
		s := string(t)
		if int(idx) < 0 || int(idx) >= len(s) {
			return nil, &RuntimeError{Message: fmt.Sprintf("index %d out of range", idx)}
		}
		return StrValue(string(s[idx])), nil
	}
	return nil, &RuntimeError{Message: "value is not indexable"}
}

func (in *Interpreter) evalEnumVariant(n *syntax.EnumVariantExpr, env *Environment) (Value, error) {
	switch n.Kind {
	case syntax.VariantUnit:
		return EnumValue{EnumType: n.EnumType, Variant: n.Variant, Payload: nil}, nil
	case syntax.VariantTuple:
		payloadNode, ok := n.Payload.(syntax.Node)
		if !ok {
			return nil, fmt.Errorf("malformed enum variant payload")
		}
		pv, err := in.eval(payloadNode, env)
		if err != nil {
			return nil, err
		}
		return EnumValue{EnumType: n.EnumType, Variant: n.Variant, Payload: pv}, nil
	case syntax.VariantStruct:
		fields, ok := n.Payload.([]syntax.StructInitField)
		if !ok {
			return nil, fmt.Errorf("malformed enum variant payload")
		}
		fieldVals := map[string]Value{}
		for _, f := range fields {
			v, err := in.eval(f.Value, env)
			if err != nil {
				return nil, err
			}
			fieldVals[f.Name] = v
		}
		return EnumValue{EnumType: n.EnumType, Variant: n.Variant, Payload: fieldVals}, nil
	}
	return nil, fmt.Errorf("unknown enum variant kind")
}

// -----------------------------------------------------------------------------
// calling functions and closures

func (in *Interpreter) callFunction(fn *syntax.FunctionDef, args []Value, this Value) (Value, error) {
	env := in.enterScope(in.global)
	if this != nil {
		in.declare(env, "this", this)
	}
	for i, p := range fn.Params {
		var v Value = NullValue{}
		if i < len(args) {
			v = args[i]
		}
		in.declare(env, p.Name, v)
	}
	v, ret, err := in.execStmtsInEnv(fn.Body.Statements, env)
	in.exitScope(env)
	if err != nil {
		return nil, err
	}
	if ret {
		return v, nil
	}
	return NullValue{}, nil
}

func (in *Interpreter) callClosure(c ClosureValue, args []Value) (Value, error) {
	if len(args) != len(c.Params) {
		return nil, &RuntimeError{Message: fmt.Sprintf("closure arity mismatch: expected %d, got %d", len(c.Params), len(args))}
	}
	env := in.enterScope(c.Env)
	for i, p := range c.Params {
		in.declare(env, p.Name, args[i])
	}
	v, ret, err := in.execStmtsInEnv(c.Body.Statements, env)
	in.exitScope(env)
	if err != nil {
		return nil, err
	}
	if ret {
		return v, nil
	}
	return NullValue{}, nil
}
