package symbols

import (
	"pylens/internal/source"
)

// ScopeKind distinguishes the binding behavior of a scope.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeClass
	ScopeFunction
	ScopeLambda
)

var scopeKindNames = [...]string{
	ScopeModule:   "module",
	ScopeClass:    "class",
	ScopeFunction: "function",
	ScopeLambda:   "lambda",
}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return "scope"
}

// Scope is one lexical scope: the module itself, a class body, or a
// function body. Names maps declared names to their symbols; Order keeps
// declaration order so iteration is deterministic.
type Scope struct {
	Kind     ScopeKind
	Name     string // owner name, "" for the module scope
	Span     source.Span
	Parent   *Scope
	Children []*Scope

	Names map[string]*Symbol
	Order []*Symbol

	// HasWildcard is set when the scope contains `from m import *`,
	// which can bind names resolution cannot see.
	HasWildcard bool

	globals map[string]bool // names declared global/nonlocal here
}

func newScope(kind ScopeKind, name string, sp source.Span, parent *Scope) *Scope {
	s := &Scope{
		Kind:   kind,
		Name:   name,
		Span:   sp,
		Parent: parent,
		Names:  make(map[string]*Symbol),
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// declare binds a name in this scope, or returns the existing symbol when
// the name is already bound here.
func (s *Scope) declare(name string, kind SymbolKind, decl source.Span) *Symbol {
	if sym, ok := s.Names[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Kind: kind, Decl: decl, Scope: s}
	s.Names[name] = sym
	s.Order = append(s.Order, sym)
	return sym
}

// Lookup resolves a name from this scope outward. Class scopes are only
// visible to code directly inside the class body, matching how the
// language scopes methods and class attributes.
func (s *Scope) Lookup(name string) *Symbol {
	if sym, ok := s.Names[name]; ok {
		return sym
	}
	for p := s.Parent; p != nil; p = p.Parent {
		if p.Kind == ScopeClass {
			continue
		}
		if sym, ok := p.Names[name]; ok {
			return sym
		}
	}
	return nil
}

// Module walks up to the root scope.
func (s *Scope) Module() *Scope {
	r := s
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// EnclosingClass returns the nearest class scope containing s, or nil.
func (s *Scope) EnclosingClass() *Scope {
	for p := s.Parent; p != nil; p = p.Parent {
		if p.Kind == ScopeClass {
			return p
		}
	}
	return nil
}

// isGlobal reports whether name was declared global in this scope.
func (s *Scope) isGlobal(name string) bool {
	return s.globals != nil && s.globals[name]
}

func (s *Scope) markGlobal(name string) {
	if s.globals == nil {
		s.globals = make(map[string]bool)
	}
	s.globals[name] = true
}

// Walk visits the scope and all descendants in declaration order.
func (s *Scope) Walk(fn func(*Scope)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}
