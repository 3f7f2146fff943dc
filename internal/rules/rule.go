// Package rules implements the lint rules. Every rule receives the same
// immutable view of one analyzed file and reports findings through the
// diagnostics reporter; rules never mutate the tree or the symbol table
// and never see each other's output.
package rules

import (
	"fmt"

	"pylens/internal/ast"
	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/source"
	"pylens/internal/symbols"
	"pylens/internal/token"
)

// Context is the per-file input shared by all rules.
type Context struct {
	File    *source.File
	Tokens  []token.Token
	Indents []token.IndentRecord
	Tree    *ast.Module
	Scopes  *symbols.Table
	Config  config.Config

	// SyntaxDiags holds the lexer and parser recovery diagnostics; the
	// syntax rule forwards them so one collector sees everything.
	SyntaxDiags []diag.Diagnostic

	Reporter diag.Reporter
}

// warn is the common path for rule findings.
func (ctx *Context) warn(code diag.Code, sp source.Span, msg string) {
	ctx.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
}

// Rule checks one concern over a file.
type Rule interface {
	Name() string
	Category() string
	Check(ctx *Context)
}

// All returns the registry in its fixed execution order.
func All() []Rule {
	return []Rule{
		LineLength{},
		NamingConvention{},
		StyleIssues{},
		UnusedCode{},
		SyntaxValidity{},
	}
}

// Run executes every registered rule. A panic inside one rule becomes an
// engine-internal diagnostic and the remaining rules still run.
func Run(ctx *Context) {
	for _, r := range All() {
		runIsolated(ctx, r)
	}
}

func runIsolated(ctx *Context, r Rule) {
	defer func() {
		if p := recover(); p != nil {
			sp := source.Span{File: ctx.File.ID}
			ctx.Reporter.Report(diag.LintInternal, diag.SevError, sp,
				fmt.Sprintf("rule %s failed: %v", r.Name(), p), nil)
		}
	}()
	r.Check(ctx)
}
