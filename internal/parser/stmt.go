package parser

import (
	"pylens/internal/ast"
	"pylens/internal/diag"
	"pylens/internal/source"
	"pylens/internal/token"
)

// parseStatementInto parses one statement line and appends the results to
// dst. Simple statement lines may carry several semicolon separated
// statements, which is why the destination is a slice.
func (p *parser) parseStatementInto(dst *[]ast.Stmt) {
	switch p.cur().Kind {
	case token.KwDef:
		*dst = append(*dst, p.parseFunctionDef(nil, false))
	case token.KwAsync:
		*dst = append(*dst, p.parseAsync())
	case token.KwClass:
		*dst = append(*dst, p.parseClassDef(nil))
	case token.At:
		*dst = append(*dst, p.parseDecorated())
	case token.KwIf:
		*dst = append(*dst, p.parseIf())
	case token.KwWhile:
		*dst = append(*dst, p.parseWhile())
	case token.KwFor:
		*dst = append(*dst, p.parseFor(false))
	case token.KwTry:
		*dst = append(*dst, p.parseTry())
	case token.KwWith:
		*dst = append(*dst, p.parseWith(false))
	default:
		p.parseSimpleInto(dst)
	}
}

// parseSimpleInto parses simple statements up to the end of the logical
// line and appends them to dst.
func (p *parser) parseSimpleInto(dst *[]ast.Stmt) {
	for {
		*dst = append(*dst, p.parseSimpleStatement())
		if p.eat(token.Semicolon) {
			if p.atLineEnd() {
				break
			}
			continue
		}
		break
	}
	switch p.cur().Kind {
	case token.Newline:
		p.advance()
	case token.EOF, token.Dedent:
	default:
		p.report(diag.SynUnexpectedToken, p.cur().Span, "unexpected token after statement")
		*dst = append(*dst, p.recoverStatement(p.cur().Span))
	}
}

func (p *parser) parseSimpleStatement() ast.Stmt {
	sp := p.cur().Span
	switch p.cur().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	case token.KwReturn:
		p.advance()
		st := &ast.Return{Sp: sp}
		if !p.atSimpleEnd() {
			st.Value = p.parseExprList()
			st.Sp = sp.Cover(st.Value.Span())
		}
		return st
	case token.KwRaise:
		p.advance()
		st := &ast.Raise{Sp: sp}
		if !p.atSimpleEnd() {
			st.Exc = p.parseExpr()
			if p.eat(token.KwFrom) {
				st.Cause = p.parseExpr()
			}
			st.Sp = sp.Cover(p.prevSpan())
		}
		return st
	case token.KwPass:
		p.advance()
		return &ast.Pass{Sp: sp}
	case token.KwBreak:
		p.advance()
		return &ast.Break{Sp: sp}
	case token.KwContinue:
		p.advance()
		return &ast.Continue{Sp: sp}
	case token.KwGlobal, token.KwNonlocal:
		nonlocal := p.cur().Kind == token.KwNonlocal
		p.advance()
		st := &ast.Global{Nonlocal: nonlocal, Sp: sp}
		for {
			if !p.at(token.Ident) {
				p.report(diag.SynExpectIdentifier, p.cur().Span, "expected name")
				break
			}
			t := p.advance()
			st.Names = append(st.Names, ast.Ident{Name: t.Text, Sp: t.Span})
			if !p.eat(token.Comma) {
				break
			}
		}
		st.Sp = sp.Cover(p.prevSpan())
		return st
	case token.KwDel:
		p.advance()
		st := &ast.Delete{Sp: sp}
		for {
			st.Targets = append(st.Targets, p.parseExpr())
			if !p.eat(token.Comma) {
				break
			}
		}
		st.Sp = sp.Cover(p.prevSpan())
		return st
	case token.KwAssert:
		p.advance()
		st := &ast.Assert{Sp: sp}
		st.Cond = p.parseExpr()
		if p.eat(token.Comma) {
			st.Msg = p.parseExpr()
		}
		st.Sp = sp.Cover(p.prevSpan())
		return st
	default:
		return p.parseExprOrAssign()
	}
}

// atLineEnd reports whether the current token terminates the logical line.
func (p *parser) atLineEnd() bool {
	switch p.cur().Kind {
	case token.Newline, token.EOF, token.Dedent:
		return true
	}
	return false
}

// atSimpleEnd additionally treats ';' as a terminator.
func (p *parser) atSimpleEnd() bool {
	return p.atLineEnd() || p.at(token.Semicolon)
}

// parseExprOrAssign parses `targets = ... = value`, augmented assignment,
// an annotated assignment, or a bare expression statement.
func (p *parser) parseExprOrAssign() ast.Stmt {
	first := p.parseExprList()
	sp := first.Span()
	if t := p.cur(); t.IsAssignOp() && t.Kind != token.Assign && t.Kind != token.Walrus {
		op := p.advance()
		value := p.parseExprList()
		return &ast.Assign{
			Targets: []ast.Expr{first},
			Value:   value,
			Aug:     op.Text,
			Sp:      sp.Cover(value.Span()),
		}
	}
	if p.at(token.Colon) {
		// `name: type` or `name: type = value`.
		p.advance()
		ann := p.parseExpr()
		st := &ast.Assign{Targets: []ast.Expr{first}, Ann: ann, Sp: sp.Cover(ann.Span())}
		if p.eat(token.Assign) {
			st.Value = p.parseExprList()
			st.Sp = sp.Cover(st.Value.Span())
		}
		return st
	}
	if !p.at(token.Assign) {
		return &ast.ExprStmt{Value: first, Sp: sp}
	}
	targets := []ast.Expr{first}
	var value ast.Expr
	for p.eat(token.Assign) {
		value = p.parseExprList()
		if p.at(token.Assign) {
			targets = append(targets, value)
		}
	}
	return &ast.Assign{Targets: targets, Value: value, Sp: sp.Cover(value.Span())}
}

// --- compound statements -------------------------------------------------

// parseBlock parses `: NEWLINE INDENT stmts DEDENT` or an inline suite on
// the same line. A missing colon is reported once and the body is still
// attached, so one stray character does not hide a whole function.
func (p *parser) parseBlock(what string) []ast.Stmt {
	p.want(token.Colon, diag.SynExpectColon, "expected ':' after "+what)
	if !p.at(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
		// Inline suite: `if x: pass`.
		var body []ast.Stmt
		p.parseSimpleInto(&body)
		return body
	}
	p.eat(token.Newline)
	if !p.eat(token.Indent) {
		p.report(diag.SynExpectIndent, p.cur().Span, "expected an indented block after "+what)
		return nil
	}
	var body []ast.Stmt
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		if p.at(token.Indent) {
			sp := p.cur().Span
			p.report(diag.SynUnexpectedToken, sp, "unexpected indentation")
			p.advance()
			p.skipBlock()
			body = append(body, &ast.Bad{Sp: sp.Cover(p.prevSpan())})
			continue
		}
		p.parseStatementInto(&body)
	}
	p.eat(token.Dedent)
	return body
}

func (p *parser) parseAsync() ast.Stmt {
	sp := p.cur().Span
	p.advance()
	switch p.cur().Kind {
	case token.KwDef:
		fn := p.parseFunctionDef(nil, true)
		if f, ok := fn.(*ast.FunctionDef); ok {
			f.Sp = sp.Cover(f.Sp)
		}
		return fn
	case token.KwFor:
		return p.parseFor(true)
	case token.KwWith:
		return p.parseWith(true)
	default:
		p.report(diag.SynUnexpectedToken, p.cur().Span, "expected 'def', 'for' or 'with' after 'async'")
		return p.recoverStatement(sp)
	}
}

func (p *parser) parseDecorated() ast.Stmt {
	start := p.cur().Span
	var decs []ast.Decorator
	for p.at(token.At) {
		sp := p.advance().Span
		expr := p.parsePostfix(p.parseAtom())
		decs = append(decs, ast.Decorator{Expr: expr, Sp: sp.Cover(expr.Span())})
		if !p.eat(token.Newline) {
			break
		}
		// Blank lines between decorators are tolerated.
		for p.eat(token.Newline) {
		}
	}
	switch p.cur().Kind {
	case token.KwDef:
		return p.parseFunctionDef(decs, false)
	case token.KwAsync:
		p.advance()
		if p.at(token.KwDef) {
			return p.parseFunctionDef(decs, true)
		}
	case token.KwClass:
		return p.parseClassDef(decs)
	}
	p.report(diag.SynDecoratorOrphan, start, "decorator is not followed by a function or class definition")
	return p.recoverStatement(start)
}

func (p *parser) parseFunctionDef(decs []ast.Decorator, async bool) ast.Stmt {
	sp := p.advance().Span // def
	fn := &ast.FunctionDef{Decorators: decs, Async: async, Sp: sp}
	if len(decs) > 0 {
		fn.Sp = decs[0].Sp.Cover(sp)
	}
	if !p.at(token.Ident) {
		p.report(diag.SynExpectIdentifier, p.cur().Span, "expected function name after 'def'")
		return p.recoverStatement(fn.Sp)
	}
	name := p.advance()
	fn.Name = ast.Ident{Name: name.Text, Sp: name.Span}
	fn.Params = p.parseParams()
	if p.eat(token.Arrow) {
		fn.Returns = p.parseExpr()
	}
	fn.Body = p.parseBlock("function header")
	fn.Sp = fn.Sp.Cover(p.prevSpan())
	return fn
}

// parseParams parses a parenthesized parameter list. A malformed list is
// reported once and skipped up to the closing parenthesis or the end of
// the header, keeping the definition itself alive.
func (p *parser) parseParams() []ast.Param {
	if !p.expect(token.LParen, diag.SynBadParamList, "expected '(' after function name") {
		return nil
	}
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		var prm ast.Param
		switch p.cur().Kind {
		case token.Star:
			p.advance()
			prm.Star = true
		case token.StarStar:
			p.advance()
			prm.Kwargs = true
		}
		if p.at(token.Ident) {
			t := p.advance()
			prm.Name = ast.Ident{Name: t.Text, Sp: t.Span}
		} else if !prm.Star && !prm.Kwargs {
			p.report(diag.SynBadParamList, p.cur().Span, "malformed parameter list")
			p.skipParamsTail()
			return params
		}
		if p.eat(token.Colon) {
			if p.atLineEnd() {
				// `def f(x, y:` with nothing after the colon.
				p.report(diag.SynBadParamList, p.cur().Span, "malformed parameter list")
				params = append(params, prm)
				return params
			}
			prm.Ann = p.parseExpr()
		}
		if p.eat(token.Assign) {
			prm.Default = p.parseExpr()
		}
		params = append(params, prm)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RParen) {
		p.report(diag.SynBadParamList, p.cur().Span, "malformed parameter list")
		p.skipParamsTail()
	}
	return params
}

// skipParamsTail consumes the rest of a broken parameter list, stopping
// after ')' or before the colon or line end.
func (p *parser) skipParamsTail() {
	for {
		switch p.cur().Kind {
		case token.RParen:
			p.advance()
			return
		case token.Colon, token.Newline, token.EOF, token.Dedent:
			return
		default:
			p.advance()
		}
	}
}

func (p *parser) parseClassDef(decs []ast.Decorator) ast.Stmt {
	sp := p.advance().Span // class
	cls := &ast.ClassDef{Decorators: decs, Sp: sp}
	if len(decs) > 0 {
		cls.Sp = decs[0].Sp.Cover(sp)
	}
	if !p.at(token.Ident) {
		p.report(diag.SynExpectIdentifier, p.cur().Span, "expected class name after 'class'")
		return p.recoverStatement(cls.Sp)
	}
	name := p.advance()
	cls.Name = ast.Ident{Name: name.Text, Sp: name.Span}
	if p.eat(token.LParen) {
		for !p.at(token.RParen) && !p.at(token.EOF) && !p.at(token.Newline) {
			cls.Bases = append(cls.Bases, p.parseExpr())
			if !p.eat(token.Comma) {
				break
			}
		}
		if !p.eat(token.RParen) {
			p.report(diag.SynUnclosedParen, p.cur().Span, "unmatched '(' in class header")
		}
	}
	cls.Body = p.parseBlock("class header")
	cls.Sp = cls.Sp.Cover(p.prevSpan())
	return cls
}

func (p *parser) parseIf() ast.Stmt {
	sp := p.advance().Span // if or elif
	st := &ast.If{Sp: sp}
	st.Cond = p.parseExpr()
	st.Body = p.parseBlock("'if' condition")
	switch p.cur().Kind {
	case token.KwElif:
		st.Orelse = []ast.Stmt{p.parseIf()}
	case token.KwElse:
		p.advance()
		st.Orelse = p.parseBlock("'else'")
	}
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

func (p *parser) parseWhile() ast.Stmt {
	sp := p.advance().Span
	st := &ast.While{Sp: sp}
	st.Cond = p.parseExpr()
	st.Body = p.parseBlock("'while' condition")
	if p.eat(token.KwElse) {
		st.Orelse = p.parseBlock("'else'")
	}
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

func (p *parser) parseFor(async bool) ast.Stmt {
	sp := p.advance().Span
	st := &ast.For{Async: async, Sp: sp}
	st.Target = p.parseTargetList()
	p.want(token.KwIn, diag.SynUnexpectedToken, "expected 'in' in 'for' statement")
	st.Iter = p.parseExprList()
	st.Body = p.parseBlock("'for' header")
	if p.eat(token.KwElse) {
		st.Orelse = p.parseBlock("'else'")
	}
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

func (p *parser) parseTry() ast.Stmt {
	sp := p.advance().Span
	st := &ast.Try{Sp: sp}
	st.Body = p.parseBlock("'try'")
	for p.at(token.KwExcept) {
		hsp := p.advance().Span
		h := ast.ExceptHandler{Sp: hsp}
		if !p.at(token.Colon) && !p.at(token.Newline) {
			h.Type = p.parseExpr()
			if p.eat(token.KwAs) {
				if p.at(token.Ident) {
					t := p.advance()
					h.Name = &ast.Ident{Name: t.Text, Sp: t.Span}
				} else {
					p.report(diag.SynExpectIdentifier, p.cur().Span, "expected name after 'as'")
				}
			}
		}
		h.Body = p.parseBlock("'except' clause")
		h.Sp = hsp.Cover(p.prevSpan())
		st.Handlers = append(st.Handlers, h)
	}
	if p.eat(token.KwElse) {
		st.Orelse = p.parseBlock("'else'")
	}
	if p.eat(token.KwFinally) {
		st.Final = p.parseBlock("'finally'")
	}
	if len(st.Handlers) == 0 && st.Final == nil {
		p.report(diag.SynTryWithoutHandler, sp, "'try' has no 'except' or 'finally' clause")
	}
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

func (p *parser) parseWith(async bool) ast.Stmt {
	sp := p.advance().Span
	st := &ast.With{Async: async, Sp: sp}
	for {
		var item ast.WithItem
		item.Expr = p.parseExpr()
		if p.eat(token.KwAs) {
			item.As = p.parseTarget()
		}
		st.Items = append(st.Items, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	st.Body = p.parseBlock("'with' header")
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

// --- imports -------------------------------------------------------------

func (p *parser) parseImport() ast.Stmt {
	sp := p.advance().Span
	st := &ast.Import{Sp: sp}
	for {
		name, ok := p.parseDottedName()
		if !ok {
			p.report(diag.SynExpectIdentifier, p.cur().Span, "expected module name after 'import'")
			return p.recoverInSimple(sp)
		}
		alias := ast.ImportAlias{Name: name}
		if p.eat(token.KwAs) {
			if p.at(token.Ident) {
				t := p.advance()
				alias.Alias = &ast.Ident{Name: t.Text, Sp: t.Span}
			} else {
				p.report(diag.SynExpectIdentifier, p.cur().Span, "expected name after 'as'")
			}
		}
		st.Names = append(st.Names, alias)
		if !p.eat(token.Comma) {
			break
		}
	}
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

func (p *parser) parseImportFrom() ast.Stmt {
	sp := p.advance().Span
	st := &ast.ImportFrom{Sp: sp}
	for p.at(token.Dot) || p.at(token.Ellipsis) {
		if p.advance().Kind == token.Ellipsis {
			st.Dots += 3
		} else {
			st.Dots++
		}
	}
	if p.at(token.Ident) {
		st.Module, _ = p.parseDottedName()
	} else if st.Dots == 0 {
		p.report(diag.SynExpectIdentifier, p.cur().Span, "expected module name after 'from'")
		return p.recoverInSimple(sp)
	}
	p.want(token.KwImport, diag.SynUnexpectedToken, "expected 'import' in 'from' statement")
	if p.eat(token.Star) {
		st.Star = true
		st.Sp = sp.Cover(p.prevSpan())
		return st
	}
	paren := p.eat(token.LParen)
	for {
		if !p.at(token.Ident) {
			p.report(diag.SynExpectIdentifier, p.cur().Span, "expected name in import list")
			break
		}
		t := p.advance()
		alias := ast.ImportAlias{Name: ast.Ident{Name: t.Text, Sp: t.Span}}
		if p.eat(token.KwAs) {
			if p.at(token.Ident) {
				a := p.advance()
				alias.Alias = &ast.Ident{Name: a.Text, Sp: a.Span}
			} else {
				p.report(diag.SynExpectIdentifier, p.cur().Span, "expected name after 'as'")
			}
		}
		st.Names = append(st.Names, alias)
		if !p.eat(token.Comma) {
			break
		}
		if paren && p.at(token.RParen) {
			break
		}
	}
	if paren && !p.eat(token.RParen) {
		p.report(diag.SynUnclosedParen, p.cur().Span, "unmatched '(' in import list")
	}
	st.Sp = sp.Cover(p.prevSpan())
	return st
}

// parseDottedName parses `a.b.c` and returns it as a single identifier
// whose span covers the full path.
func (p *parser) parseDottedName() (ast.Ident, bool) {
	if !p.at(token.Ident) {
		return ast.Ident{}, false
	}
	t := p.advance()
	name := t.Text
	sp := t.Span
	for p.at(token.Dot) && p.peekNext().Kind == token.Ident {
		p.advance()
		n := p.advance()
		name += "." + n.Text
		sp = sp.Cover(n.Span)
	}
	return ast.Ident{Name: name, Sp: sp}, true
}

// recoverInSimple recovers inside a simple statement without consuming
// the trailing newline, which parseSimpleInto owns.
func (p *parser) recoverInSimple(from source.Span) ast.Stmt {
	for !p.atSimpleEnd() {
		p.advance()
	}
	return &ast.Bad{Sp: from.Cover(p.prevSpan())}
}
