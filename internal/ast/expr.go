package ast

import "pylens/internal/source"

// Name is an identifier read or written as an expression.
type Name struct {
	ID Ident
}

func (e *Name) Span() source.Span { return e.ID.Sp }
func (e *Name) exprNode()         {}

// Attribute represents `value.attr`.
type Attribute struct {
	Value Expr
	Attr  Ident
	Sp    source.Span
}

func (e *Attribute) Span() source.Span { return e.Sp }
func (e *Attribute) exprNode()         {}

// Call represents `func(args)`. Keyword arguments keep their value
// expressions; the keyword names themselves bind nothing.
type Call struct {
	Func Expr
	Args []Expr
	Sp   source.Span
}

func (e *Call) Span() source.Span { return e.Sp }
func (e *Call) exprNode()         {}

// Subscript represents `value[index]`.
type Subscript struct {
	Value Expr
	Index Expr // nil for malformed or empty slices
	Sp    source.Span
}

func (e *Subscript) Span() source.Span { return e.Sp }
func (e *Subscript) exprNode()         {}

// BinOp represents a binary operation; Op is the operator token text.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
	Sp    source.Span
}

func (e *BinOp) Span() source.Span { return e.Sp }
func (e *BinOp) exprNode()         {}

// UnaryOp represents `not x`, `-x`, `+x`, `~x`.
type UnaryOp struct {
	Op      string
	Operand Expr
	Sp      source.Span
}

func (e *UnaryOp) Span() source.Span { return e.Sp }
func (e *UnaryOp) exprNode()         {}

// Lambda represents `lambda params: body`.
type Lambda struct {
	Params []Param
	Body   Expr
	Sp     source.Span
}

func (e *Lambda) Span() source.Span { return e.Sp }
func (e *Lambda) exprNode()         {}

// Tuple represents a comma-separated expression list, parenthesized or not.
// Assignment targets like `x, y, z` parse as a Tuple.
type Tuple struct {
	Elts []Expr
	Sp   source.Span
}

func (e *Tuple) Span() source.Span { return e.Sp }
func (e *Tuple) exprNode()         {}

// List represents `[elts]`; Set and Dict share the shape via Kind.
type List struct {
	Elts []Expr
	Kind byte // '[' list, '{' set/dict
	Sp   source.Span
}

func (e *List) Span() source.Span { return e.Sp }
func (e *List) exprNode()         {}

// Literal is a string, number, or constant literal (None/True/False).
type Literal struct {
	Text string
	Kind LiteralKind
	Sp   source.Span
}

// LiteralKind distinguishes literal categories for the naming rule's
// constant detection.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralNone
	LiteralBool
	LiteralEllipsis
)

func (e *Literal) Span() source.Span { return e.Sp }
func (e *Literal) exprNode()         {}

// IfExp represents `body if cond else orelse`.
type IfExp struct {
	Cond   Expr
	Body   Expr
	Orelse Expr
	Sp     source.Span
}

func (e *IfExp) Span() source.Span { return e.Sp }
func (e *IfExp) exprNode()         {}

// Starred represents `*expr` in call arguments or assignment targets.
type Starred struct {
	Value Expr
	Sp    source.Span
}

func (e *Starred) Span() source.Span { return e.Sp }
func (e *Starred) exprNode()         {}

// CompClause is one `for target in iter [if cond]...` clause of a
// comprehension.
type CompClause struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// Comprehension represents list/set/dict comprehensions and generator
// expressions. Kind mirrors the surrounding bracket ('[', '{', '(').
type Comprehension struct {
	Elt     Expr
	Clauses []CompClause
	Kind    byte
	Sp      source.Span
}

func (e *Comprehension) Span() source.Span { return e.Sp }
func (e *Comprehension) exprNode()         {}

// BadExpr marks an expression span that failed to parse.
type BadExpr struct {
	Sp source.Span
}

func (e *BadExpr) Span() source.Span { return e.Sp }
func (e *BadExpr) exprNode()         {}

// IsLiteralConst reports whether the expression is a literal constant for
// the purpose of the ALL_CAPS module-constant exemption: a plain literal,
// a negated number, or a tuple of such values.
func IsLiteralConst(e Expr) bool {
	switch v := e.(type) {
	case *Literal:
		return true
	case *UnaryOp:
		lit, ok := v.Operand.(*Literal)
		return ok && lit.Kind == LiteralNumber
	case *Tuple:
		for _, elt := range v.Elts {
			if !IsLiteralConst(elt) {
				return false
			}
		}
		return len(v.Elts) > 0
	case *List:
		for _, elt := range v.Elts {
			if !IsLiteralConst(elt) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
