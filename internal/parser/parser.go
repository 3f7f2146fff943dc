// Package parser builds a structural tree from a token stream.
//
// The parser never fails: every statement that cannot be understood is
// reported through the diagnostics reporter, replaced with an ast.Bad
// node and the parser resynchronizes at the next logical line. The
// resulting module always spans the whole file, so later passes can rely
// on a single well formed root no matter how broken the input was.
package parser

import (
	"pylens/internal/ast"
	"pylens/internal/diag"
	"pylens/internal/source"
	"pylens/internal/token"
)

// DefaultMaxErrors bounds how many syntax diagnostics a single file may
// produce before the parser stops reporting (it keeps parsing).
const DefaultMaxErrors = 200

// Options controls parsing of a single file.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors int
}

// Result is what Parse returns: the module root plus a flag telling
// whether any syntax diagnostics were emitted.
type Result struct {
	Module   *ast.Module
	HadError bool
}

type parser struct {
	file *source.File
	toks []token.Token
	pos  int
	opts Options

	errs     int
	hadError bool
}

// Parse consumes the token stream produced by the lexer and returns a
// module tree. Comment tokens are skipped transparently.
func Parse(file *source.File, toks []token.Token, opts Options) Result {
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = DefaultMaxErrors
	}
	p := &parser{file: file, toks: toks, opts: opts}
	mod := p.parseModule()
	return Result{Module: mod, HadError: p.hadError}
}

func (p *parser) parseModule() *ast.Module {
	mod := &ast.Module{File: p.file.ID}
	start := p.cur().Span
	for !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		if p.at(token.Indent) {
			// A top level statement cannot be indented.
			sp := p.cur().Span
			p.report(diag.SynUnexpectedToken, sp, "unexpected indentation")
			p.advance()
			p.skipBlock()
			mod.Body = append(mod.Body, &ast.Bad{Sp: sp.Cover(p.prevSpan())})
			continue
		}
		p.parseStatementInto(&mod.Body)
	}
	mod.Sp = start.Cover(p.cur().Span)
	return mod
}

// --- stream access -------------------------------------------------------

// cur returns the current token, transparently skipping comments.
func (p *parser) cur() token.Token {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == token.Comment {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		if len(p.toks) > 0 {
			return p.toks[len(p.toks)-1]
		}
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

// peekNext returns the token after the current one.
func (p *parser) peekNext() token.Token {
	p.cur() // settles p.pos on a non comment token
	i := p.pos + 1
	for i < len(p.toks) && p.toks[i].Kind == token.Comment {
		i++
	}
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) && t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// eat consumes the current token when it has the given kind.
func (p *parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// prevSpan returns the span of the last consumed token.
func (p *parser) prevSpan() source.Span {
	for i := p.pos - 1; i >= 0; i-- {
		if p.toks[i].Kind != token.Comment {
			return p.toks[i].Span
		}
	}
	return p.cur().Span
}

// expect consumes a token of the given kind or reports and leaves the
// stream untouched. The caller decides how to recover.
func (p *parser) expect(k token.Kind, code diag.Code, msg string) bool {
	if p.eat(k) {
		return true
	}
	p.report(code, p.cur().Span, msg)
	return false
}

// want consumes a token of the given kind when present and reports when
// it is not, but always keeps going. Used for coarse punctuation such as
// the colon after a compound statement header, where the body is still
// worth parsing.
func (p *parser) want(k token.Kind, code diag.Code, msg string) {
	if !p.eat(k) {
		p.report(code, p.cur().Span, msg)
	}
}

func (p *parser) report(code diag.Code, sp source.Span, msg string) {
	p.hadError = true
	if p.errs >= p.opts.MaxErrors {
		return
	}
	p.errs++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// --- recovery ------------------------------------------------------------

// recoverStatement skips to the end of the current logical line and, when
// an indented block follows (a broken header dragged a body with it),
// skips that block too. At least one token is always consumed so the
// parser cannot loop. The returned node covers everything skipped.
func (p *parser) recoverStatement(from source.Span) *ast.Bad {
	if !p.at(token.EOF) && !p.at(token.Newline) && !p.at(token.Dedent) {
		p.advance()
	}
	for {
		switch p.cur().Kind {
		case token.EOF, token.Dedent:
			return &ast.Bad{Sp: from.Cover(p.prevSpan())}
		case token.Newline:
			p.advance()
			if p.at(token.Indent) {
				p.advance()
				p.skipBlock()
			}
			return &ast.Bad{Sp: from.Cover(p.prevSpan())}
		default:
			p.advance()
		}
	}
}

// skipBlock consumes tokens until the Dedent matching an already consumed
// Indent.
func (p *parser) skipBlock() {
	depth := 1
	for depth > 0 {
		switch p.cur().Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
		case token.EOF:
			return
		}
		if depth > 0 {
			p.advance()
		} else {
			p.advance()
			return
		}
	}
}
