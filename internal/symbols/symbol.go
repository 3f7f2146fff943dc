// Package symbols builds the scope tree for a parsed module and records
// every declaration together with its usages. Resolution never produces
// diagnostics: an unresolved name may be a builtin or come from a
// wildcard import, so the rules downstream decide what is worth
// flagging.
package symbols

import (
	"pylens/internal/source"
)

// SymbolKind classifies what a name was bound by.
type SymbolKind uint8

const (
	SymVariable SymbolKind = iota
	SymParameter
	SymFunction
	SymMethod
	SymClass
	SymImport
	// SymMember is an attribute assigned through the receiver parameter
	// inside a method body, e.g. `self.count = 0`.
	SymMember
)

var symbolKindNames = [...]string{
	SymVariable:  "variable",
	SymParameter: "parameter",
	SymFunction:  "function",
	SymMethod:    "method",
	SymClass:     "class",
	SymImport:    "import",
	SymMember:    "member",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "symbol"
}

// Symbol is one declared name within a scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Decl  source.Span // span of the declaring identifier
	Scope *Scope

	// Usages are the spans of every read of this name. Writes do not
	// count: assigning a variable nobody reads still leaves it unused.
	Usages []source.Span

	// Assigns counts how many times the name is a store target.
	Assigns int

	// ConstValue is true while the symbol has exactly one assignment
	// and that assignment's value is a literal constant. The naming
	// rule uses it for the ALL_CAPS module constant exemption.
	ConstValue bool
}

// Used reports whether the symbol has at least one recorded read.
func (s *Symbol) Used() bool { return len(s.Usages) > 0 }
