package symbols

import (
	"strings"

	"pylens/internal/ast"
)

// Table is the result of resolving one module: the scope tree plus a
// file-wide index of attribute reads. The attribute index lets the
// unused-code rule treat `obj.helper()` as a use of any member named
// helper, which keeps it conservative in a dynamically typed language.
type Table struct {
	Module    *Scope
	AttrReads map[string]int
}

// Resolve walks the module tree and returns its symbol table. It never
// fails and never reports diagnostics: names that resolve to nothing may
// be builtins or wildcard imports.
func Resolve(mod *ast.Module) *Table {
	t := &Table{
		Module:    newScope(ScopeModule, "", mod.Sp, nil),
		AttrReads: make(map[string]int),
	}
	r := &resolver{table: t, scope: t.Module}
	r.stmts(mod.Body)
	// Function bodies run after their enclosing scope is fully
	// populated, so a call to a function defined further down still
	// counts as a use.
	for len(r.pending) > 0 {
		batch := r.pending
		r.pending = nil
		for _, run := range batch {
			run()
		}
	}
	return t
}

type resolver struct {
	table *Table
	scope *Scope

	// receiver is the first parameter name of the method currently being
	// walked ("self" by convention), or "" outside methods.
	receiver string

	// pending holds deferred function body walks.
	pending []func()
}

func (r *resolver) stmts(body []ast.Stmt) {
	for _, s := range body {
		r.stmt(s)
	}
}

func (r *resolver) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.FunctionDef:
		r.functionDef(st)
	case *ast.ClassDef:
		r.classDef(st)
	case *ast.Assign:
		if st.Ann != nil {
			r.load(st.Ann)
		}
		if st.Value != nil {
			r.load(st.Value)
		}
		if st.Aug != "" {
			// Augmented assignment reads the target too.
			for _, t := range st.Targets {
				r.load(t)
			}
		}
		for _, t := range st.Targets {
			r.store(t, st.Value)
		}
	case *ast.Import:
		for _, alias := range st.Names {
			r.bindImport(alias, false)
		}
	case *ast.ImportFrom:
		if st.Star {
			r.scope.HasWildcard = true
			return
		}
		for _, alias := range st.Names {
			r.bindImport(alias, true)
		}
	case *ast.If:
		r.load(st.Cond)
		r.stmts(st.Body)
		r.stmts(st.Orelse)
	case *ast.While:
		r.load(st.Cond)
		r.stmts(st.Body)
		r.stmts(st.Orelse)
	case *ast.For:
		r.load(st.Iter)
		r.store(st.Target, nil)
		r.stmts(st.Body)
		r.stmts(st.Orelse)
	case *ast.Try:
		r.stmts(st.Body)
		for i := range st.Handlers {
			h := &st.Handlers[i]
			if h.Type != nil {
				r.load(h.Type)
			}
			if h.Name != nil {
				sym := r.scope.declare(h.Name.Name, SymVariable, h.Name.Sp)
				sym.Assigns++
			}
			r.stmts(h.Body)
		}
		r.stmts(st.Orelse)
		r.stmts(st.Final)
	case *ast.With:
		for _, item := range st.Items {
			r.load(item.Expr)
			if item.As != nil {
				r.store(item.As, nil)
			}
		}
		r.stmts(st.Body)
	case *ast.Return:
		if st.Value != nil {
			r.load(st.Value)
		}
	case *ast.Raise:
		if st.Exc != nil {
			r.load(st.Exc)
		}
		if st.Cause != nil {
			r.load(st.Cause)
		}
	case *ast.Delete:
		for _, t := range st.Targets {
			r.load(t)
		}
	case *ast.Global:
		for _, n := range st.Names {
			r.scope.markGlobal(n.Name)
		}
	case *ast.Assert:
		r.load(st.Cond)
		if st.Msg != nil {
			r.load(st.Msg)
		}
	case *ast.ExprStmt:
		r.load(st.Value)
	}
	// Pass, Break, Continue, Bad: nothing to resolve.
}

func (r *resolver) functionDef(st *ast.FunctionDef) {
	kind := SymFunction
	if r.scope.Kind == ScopeClass {
		kind = SymMethod
	}
	r.scope.declare(st.Name.Name, kind, st.Name.Sp)

	// Decorators, defaults, and annotations evaluate in the enclosing
	// scope, before the function body exists.
	for _, d := range st.Decorators {
		r.load(d.Expr)
	}
	for i := range st.Params {
		if st.Params[i].Ann != nil {
			r.load(st.Params[i].Ann)
		}
		if st.Params[i].Default != nil {
			r.load(st.Params[i].Default)
		}
	}
	if st.Returns != nil {
		r.load(st.Returns)
	}

	fnScope := newScope(ScopeFunction, st.Name.Name, st.Sp, r.scope)
	recv := ""
	if kind == SymMethod && len(st.Params) > 0 {
		first := st.Params[0]
		if !first.Star && !first.Kwargs {
			recv = first.Name.Name
		}
	}
	for i := range st.Params {
		p := st.Params[i]
		if p.Name.Name == "" {
			continue // bare * separator
		}
		fnScope.declare(p.Name.Name, SymParameter, p.Name.Sp)
	}
	r.pending = append(r.pending, func() {
		saveScope, saveRecv := r.scope, r.receiver
		r.scope, r.receiver = fnScope, recv
		r.stmts(st.Body)
		r.scope, r.receiver = saveScope, saveRecv
	})
}

func (r *resolver) classDef(st *ast.ClassDef) {
	r.scope.declare(st.Name.Name, SymClass, st.Name.Sp)
	for _, d := range st.Decorators {
		r.load(d.Expr)
	}
	for _, b := range st.Bases {
		r.load(b)
	}
	outer, outerRecv := r.scope, r.receiver
	r.scope = newScope(ScopeClass, st.Name.Name, st.Sp, outer)
	r.receiver = ""
	r.stmts(st.Body)
	r.scope, r.receiver = outer, outerRecv
}

// bindImport declares the name an import clause introduces. For a dotted
// `import os.path` without alias only the first segment is bound.
func (r *resolver) bindImport(alias ast.ImportAlias, fromImport bool) {
	b := alias.Bound()
	name := b.Name
	if alias.Alias == nil && !fromImport {
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
	}
	if name == "" {
		return
	}
	r.scope.declare(name, SymImport, b.Sp)
}

// store binds assignment targets. value, when non-nil, is the assigned
// expression and feeds the literal-constant tracking used by the naming
// rule.
func (r *resolver) store(target ast.Expr, value ast.Expr) {
	switch t := target.(type) {
	case *ast.Name:
		name := t.ID.Name
		scope := r.scope
		if scope.isGlobal(name) {
			scope = scope.Module()
		}
		sym := scope.declare(name, SymVariable, t.ID.Sp)
		sym.Assigns++
		sym.ConstValue = sym.Assigns == 1 && value != nil && ast.IsLiteralConst(value)
	case *ast.Tuple:
		r.storeElements(t.Elts, value)
	case *ast.List:
		r.storeElements(t.Elts, value)
	case *ast.Starred:
		r.store(t.Value, nil)
	case *ast.Attribute:
		r.load(t.Value)
		r.storeAttr(t)
	case *ast.Subscript:
		r.load(t.Value)
		if t.Index != nil {
			r.load(t.Index)
		}
	default:
		// Malformed target: treat whatever survives as reads.
		r.load(target)
	}
}

// storeElements unpacks `a, b = 1, 2` pairwise so each element keeps its
// own constant tracking.
func (r *resolver) storeElements(elts []ast.Expr, value ast.Expr) {
	var values []ast.Expr
	switch v := value.(type) {
	case *ast.Tuple:
		values = v.Elts
	case *ast.List:
		values = v.Elts
	}
	for i, e := range elts {
		if values != nil && i < len(values) {
			r.store(e, values[i])
		} else {
			r.store(e, nil)
		}
	}
}

// storeAttr records `recv.attr = ...` as a member declaration on the
// enclosing class when recv is the method receiver.
func (r *resolver) storeAttr(t *ast.Attribute) {
	nm, ok := t.Value.(*ast.Name)
	if !ok || r.receiver == "" || nm.ID.Name != r.receiver {
		return
	}
	cls := r.scope.EnclosingClass()
	if cls == nil {
		return
	}
	sym := cls.declare(t.Attr.Name, SymMember, t.Attr.Sp)
	sym.Assigns++
}

// load walks an expression recording every name read.
func (r *resolver) load(e ast.Expr) {
	switch x := e.(type) {
	case nil:
	case *ast.Name:
		r.use(x.ID)
	case *ast.Attribute:
		r.load(x.Value)
		r.table.AttrReads[x.Attr.Name]++
		if nm, ok := x.Value.(*ast.Name); ok && r.receiver != "" && nm.ID.Name == r.receiver {
			if cls := r.scope.EnclosingClass(); cls != nil {
				if sym, ok := cls.Names[x.Attr.Name]; ok {
					sym.Usages = append(sym.Usages, x.Attr.Sp)
				}
			}
		}
	case *ast.Call:
		r.load(x.Func)
		for _, a := range x.Args {
			r.load(a)
		}
	case *ast.Subscript:
		r.load(x.Value)
		if x.Index != nil {
			r.load(x.Index)
		}
	case *ast.BinOp:
		r.load(x.Left)
		r.load(x.Right)
	case *ast.UnaryOp:
		if x.Operand != nil {
			r.load(x.Operand)
		}
	case *ast.Lambda:
		r.lambda(x)
	case *ast.Tuple:
		for _, e := range x.Elts {
			r.load(e)
		}
	case *ast.List:
		for _, e := range x.Elts {
			r.load(e)
		}
	case *ast.IfExp:
		r.load(x.Cond)
		r.load(x.Body)
		if x.Orelse != nil {
			r.load(x.Orelse)
		}
	case *ast.Starred:
		r.load(x.Value)
	case *ast.Comprehension:
		for i := range x.Clauses {
			cl := &x.Clauses[i]
			r.load(cl.Iter)
			r.store(cl.Target, nil)
			for _, c := range cl.Ifs {
				r.load(c)
			}
		}
		r.load(x.Elt)
	}
	// Literal, BadExpr: nothing to resolve.
}

func (r *resolver) lambda(x *ast.Lambda) {
	for i := range x.Params {
		if x.Params[i].Default != nil {
			r.load(x.Params[i].Default)
		}
	}
	outer := r.scope
	r.scope = newScope(ScopeLambda, "<lambda>", x.Sp, outer)
	for i := range x.Params {
		p := x.Params[i]
		if p.Name.Name == "" {
			continue
		}
		r.scope.declare(p.Name.Name, SymParameter, p.Name.Sp)
	}
	r.load(x.Body)
	r.scope = outer
}

// use records a read of the identifier against whatever symbol it
// resolves to. Unresolved names are silently ignored.
func (r *resolver) use(id ast.Ident) {
	if sym := r.scope.Lookup(id.Name); sym != nil {
		sym.Usages = append(sym.Usages, id.Sp)
	}
}
