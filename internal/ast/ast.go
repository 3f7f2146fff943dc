// Package ast defines the tolerant syntax tree produced by the parser.
//
// The tree always has exactly one Module root, even when the whole file
// failed to parse (the root then wraps a single Bad node spanning the file).
// Bad statements and BadExpr expressions are first-class variants: they mark
// spans that failed to parse without aborting their siblings. Every node
// belongs to exactly one parent; the tree exclusively owns its children.
package ast

import "pylens/internal/source"

// Node is the root interface for every tree element.
type Node interface {
	// Span returns the source range the node covers.
	Span() source.Span
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Module is the root node for one source file.
type Module struct {
	File source.FileID
	Body []Stmt
	Sp   source.Span
}

func (m *Module) Span() source.Span { return m.Sp }
