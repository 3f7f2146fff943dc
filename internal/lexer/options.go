package lexer

import (
	"pylens/internal/diag"
	"pylens/internal/source"
)

// Options configures a Lexer. A nil Reporter silently drops lex diagnostics
// while scanning continues; the lexer itself never fails.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
