package ast

import "pylens/internal/source"

// Ident is a name occurrence with its exact location.
type Ident struct {
	Name string
	Sp   source.Span
}

func (i *Ident) Span() source.Span { return i.Sp }

// Param is one entry of a function parameter list.
type Param struct {
	Name    Ident
	Star    bool // *args
	Kwargs  bool // **kwargs
	Ann     Expr // nil when the parameter has no annotation
	Default Expr // nil when the parameter has no default
}

// Decorator is one @name(...) line attached to a def or class.
type Decorator struct {
	Expr Expr
	Sp   source.Span
}

// FunctionDef represents `def name(params): body` with optional decorators.
type FunctionDef struct {
	Name       Ident
	Params     []Param
	Returns    Expr // nil when there is no `-> type` annotation
	Body       []Stmt
	Decorators []Decorator
	Async      bool
	Sp         source.Span
}

func (s *FunctionDef) Span() source.Span { return s.Sp }
func (s *FunctionDef) stmtNode()         {}

// ClassDef represents `class name(bases): body`.
type ClassDef struct {
	Name       Ident
	Bases      []Expr
	Body       []Stmt
	Decorators []Decorator
	Sp         source.Span
}

func (s *ClassDef) Span() source.Span { return s.Sp }
func (s *ClassDef) stmtNode()         {}

// Assign represents `targets = value`, including chained and tuple targets,
// and augmented forms like `x += 1` (Aug holds the operator text).
type Assign struct {
	Targets []Expr // one entry per '=' group; tuple targets are Tuple exprs
	Value   Expr   // nil for a bare annotation like `x: int`
	Ann     Expr   // nil when the target has no annotation
	Aug     string // "" for plain assignment
	Sp      source.Span
}

func (s *Assign) Span() source.Span { return s.Sp }
func (s *Assign) stmtNode()         {}

// ImportAlias is one `name` or `name as alias` clause.
type ImportAlias struct {
	Name  Ident // dotted module path or imported symbol
	Alias *Ident
}

// Bound returns the identifier the clause binds in the importing scope.
func (a ImportAlias) Bound() Ident {
	if a.Alias != nil {
		return *a.Alias
	}
	return a.Name
}

// Import represents `import a, b as c`.
type Import struct {
	Names []ImportAlias
	Sp    source.Span
}

func (s *Import) Span() source.Span { return s.Sp }
func (s *Import) stmtNode()         {}

// ImportFrom represents `from module import a, b as c`.
type ImportFrom struct {
	Module Ident // zero for purely relative imports like `from . import x`
	Dots   int   // relative import level
	Names  []ImportAlias
	Star   bool // from m import *
	Sp     source.Span
}

func (s *ImportFrom) Span() source.Span { return s.Sp }
func (s *ImportFrom) stmtNode()         {}

// If represents an if/elif/else chain; elif branches become nested If
// statements in Orelse.
type If struct {
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
	Sp     source.Span
}

func (s *If) Span() source.Span { return s.Sp }
func (s *If) stmtNode()         {}

// While represents `while cond: body` with an optional else block.
type While struct {
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
	Sp     source.Span
}

func (s *While) Span() source.Span { return s.Sp }
func (s *While) stmtNode()         {}

// For represents `for target in iter: body` with an optional else block.
type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
	Async  bool
	Sp     source.Span
}

func (s *For) Span() source.Span { return s.Sp }
func (s *For) stmtNode()         {}

// ExceptHandler is one `except [type [as name]]:` clause.
type ExceptHandler struct {
	Type Expr   // nil for a bare except
	Name *Ident // nil when no `as name`
	Body []Stmt
	Sp   source.Span
}

// Try represents try/except/else/finally.
type Try struct {
	Body     []Stmt
	Handlers []ExceptHandler
	Orelse   []Stmt
	Final    []Stmt
	Sp       source.Span
}

func (s *Try) Span() source.Span { return s.Sp }
func (s *Try) stmtNode()         {}

// WithItem is one `expr [as target]` clause of a with statement.
type WithItem struct {
	Expr Expr
	As   Expr // nil when no `as` clause; usually a Name, may be a Tuple
}

// With represents `with items: body`.
type With struct {
	Items []WithItem
	Body  []Stmt
	Async bool
	Sp    source.Span
}

func (s *With) Span() source.Span { return s.Sp }
func (s *With) stmtNode()         {}

// Return represents `return [value]`.
type Return struct {
	Value Expr // nil for bare return
	Sp    source.Span
}

func (s *Return) Span() source.Span { return s.Sp }
func (s *Return) stmtNode()         {}

// Raise represents `raise [exc [from cause]]`.
type Raise struct {
	Exc   Expr // nil for bare raise
	Cause Expr // nil without a `from` clause
	Sp    source.Span
}

func (s *Raise) Span() source.Span { return s.Sp }
func (s *Raise) stmtNode()         {}

// Pass represents the `pass` statement.
type Pass struct {
	Sp source.Span
}

func (s *Pass) Span() source.Span { return s.Sp }
func (s *Pass) stmtNode()         {}

// Break represents the `break` statement.
type Break struct {
	Sp source.Span
}

func (s *Break) Span() source.Span { return s.Sp }
func (s *Break) stmtNode()         {}

// Continue represents the `continue` statement.
type Continue struct {
	Sp source.Span
}

func (s *Continue) Span() source.Span { return s.Sp }
func (s *Continue) stmtNode()         {}

// Global represents `global names`; Nonlocal is the nonlocal variant.
type Global struct {
	Names    []Ident
	Nonlocal bool
	Sp       source.Span
}

func (s *Global) Span() source.Span { return s.Sp }
func (s *Global) stmtNode()         {}

// Delete represents `del targets`.
type Delete struct {
	Targets []Expr
	Sp      source.Span
}

func (s *Delete) Span() source.Span { return s.Sp }
func (s *Delete) stmtNode()         {}

// Assert represents `assert cond[, msg]`.
type Assert struct {
	Cond Expr
	Msg  Expr // nil when absent
	Sp   source.Span
}

func (s *Assert) Span() source.Span { return s.Sp }
func (s *Assert) stmtNode()         {}

// ExprStmt is an expression evaluated for effect (calls, docstrings).
type ExprStmt struct {
	Value Expr
	Sp    source.Span
}

func (s *ExprStmt) Span() source.Span { return s.Sp }
func (s *ExprStmt) stmtNode()         {}

// Bad marks a statement span that failed to parse. Recovery wraps the
// malformed tokens here so siblings stay parseable.
type Bad struct {
	Sp source.Span
}

func (s *Bad) Span() source.Span { return s.Sp }
func (s *Bad) stmtNode()         {}
