package rules

import (
	"fmt"
	"strings"

	"pylens/internal/diag"
	"pylens/internal/symbols"
)

// UnusedCode flags declarations the resolver never saw a read for:
// imports, variables, functions, and class members. Classes and
// parameters are never flagged; for names reachable as attributes the
// attribute-read index is consulted so `obj.name` anywhere in the file
// counts as a use.
type UnusedCode struct{}

func (UnusedCode) Name() string     { return "unused-code" }
func (UnusedCode) Category() string { return "unused" }

func (UnusedCode) Check(ctx *Context) {
	ctx.Scopes.Module.Walk(func(sc *symbols.Scope) {
		if sc.HasWildcard {
			// A wildcard import can bind and use anything.
			return
		}
		for _, sym := range sc.Order {
			checkSymbol(ctx, sc, sym)
		}
	})
}

func checkSymbol(ctx *Context, sc *symbols.Scope, sym *symbols.Symbol) {
	if sym.Used() || exemptName(sym.Name) {
		return
	}
	switch sym.Kind {
	case symbols.SymImport:
		ctx.warn(diag.LintUnusedImport, sym.Decl,
			fmt.Sprintf("%q imported but never used", sym.Name))
	case symbols.SymVariable:
		if ctx.Config.Rules.IgnoreUnusedVariables {
			return
		}
		if sc.Kind == symbols.ScopeClass && attrRead(ctx, sym.Name) {
			// A class-body binding read as `obj.name` is alive even
			// though no plain name read exists.
			return
		}
		ctx.warn(diag.LintUnusedVariable, sym.Decl,
			fmt.Sprintf("variable %q assigned but never used", sym.Name))
	case symbols.SymFunction:
		ctx.warn(diag.LintUnusedFunction, sym.Decl,
			fmt.Sprintf("function %q defined but never used", sym.Name))
	case symbols.SymMethod:
		if attrRead(ctx, sym.Name) {
			return
		}
		ctx.warn(diag.LintUnusedMember, sym.Decl,
			fmt.Sprintf("method %q never called", sym.Name))
	case symbols.SymMember:
		if attrRead(ctx, sym.Name) {
			return
		}
		ctx.warn(diag.LintUnusedMember, sym.Decl,
			fmt.Sprintf("attribute %q assigned but never read", sym.Name))
	}
	// Parameters and classes are never flagged: parameters may be part
	// of a required signature, classes may be instantiated elsewhere.
}

// attrRead reports whether name is read as an attribute anywhere in the
// file. Attribute resolution is name-based, so any `x.name` keeps the
// member alive.
func attrRead(ctx *Context, name string) bool {
	return ctx.Scopes.AttrReads[name] > 0
}

// exemptName skips underscore-prefixed names and dunders; both spell
// "intentionally unused" or "protocol hook" by convention.
func exemptName(name string) bool {
	return strings.HasPrefix(name, "_")
}
