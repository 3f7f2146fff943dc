package parser

import (
	"pylens/internal/ast"
	"pylens/internal/diag"
	"pylens/internal/source"
	"pylens/internal/token"
)

// parseExprList parses `expr, expr, ...` and wraps multiple elements in a
// Tuple. A trailing comma also produces a Tuple, matching `x, = f()`.
func (p *parser) parseExprList() ast.Expr {
	first := p.parseExpr()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.eat(token.Comma) {
		if !p.canStartExpr() {
			break
		}
		elts = append(elts, p.parseExpr())
	}
	return &ast.Tuple{Elts: elts, Sp: first.Span().Cover(p.prevSpan())}
}

// canStartExpr reports whether the current token can begin an expression.
func (p *parser) canStartExpr() bool {
	t := p.cur()
	if t.IsLiteral() {
		return true
	}
	switch t.Kind {
	case token.Ident, token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Plus, token.Tilde, token.Star, token.StarStar,
		token.KwNot, token.KwLambda, token.KwAwait, token.KwYield,
		token.Ellipsis:
		return true
	}
	return false
}

func (p *parser) parseExpr() ast.Expr {
	if p.at(token.KwYield) {
		sp := p.advance().Span
		op := "yield"
		if p.eat(token.KwFrom) {
			op = "yield from"
		}
		e := &ast.UnaryOp{Op: op, Sp: sp}
		if p.canStartExpr() {
			e.Operand = p.parseTernary()
			e.Sp = sp.Cover(e.Operand.Span())
		}
		return e
	}
	e := p.parseTernary()
	if p.at(token.Walrus) {
		p.advance()
		right := p.parseTernary()
		return &ast.BinOp{Left: e, Op: ":=", Right: right, Sp: e.Span().Cover(right.Span())}
	}
	return e
}

func (p *parser) parseTernary() ast.Expr {
	body := p.parseOr()
	if !p.at(token.KwIf) {
		return body
	}
	p.advance()
	cond := p.parseOr()
	e := &ast.IfExp{Cond: cond, Body: body, Sp: body.Span().Cover(cond.Span())}
	if p.eat(token.KwElse) {
		e.Orelse = p.parseExpr()
		e.Sp = e.Sp.Cover(e.Orelse.Span())
	} else {
		p.report(diag.SynUnexpectedToken, p.cur().Span, "expected 'else' in conditional expression")
	}
	return e
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.KwOr) {
		p.advance()
		right := p.parseAnd()
		left = &ast.BinOp{Left: left, Op: "or", Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.at(token.KwAnd) {
		p.advance()
		right := p.parseNot()
		left = &ast.BinOp{Left: left, Op: "and", Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseNot() ast.Expr {
	if p.at(token.KwNot) && p.peekNext().Kind != token.KwIn {
		sp := p.advance().Span
		operand := p.parseNot()
		return &ast.UnaryOp{Op: "not", Operand: operand, Sp: sp.Cover(operand.Span())}
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseBitOr()
	for {
		var op string
		switch p.cur().Kind {
		case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
			op = p.advance().Text
		case token.KwIn:
			p.advance()
			op = "in"
		case token.KwIs:
			p.advance()
			op = "is"
			if p.eat(token.KwNot) {
				op = "is not"
			}
		case token.KwNot:
			if p.peekNext().Kind != token.KwIn {
				return left
			}
			p.advance()
			p.advance()
			op = "not in"
		case token.Assign:
			// `=<` or `=>` written in place of `<=`/`>=`. The two
			// characters must be adjacent to count as one mistake.
			next := p.peekNext()
			if (next.Kind != token.Lt && next.Kind != token.Gt) ||
				p.cur().Span.End != next.Span.Start {
				return left
			}
			bad := p.cur().Span.Cover(next.Span)
			p.report(diag.SynBadComparison, bad, "invalid comparison operator '"+p.cur().Text+next.Text+"'")
			p.advance()
			op = "=" + p.advance().Text
		default:
			return left
		}
		right := p.parseBitOr()
		left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	for p.at(token.Pipe) {
		op := p.advance().Text
		right := p.parseBitXor()
		left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	for p.at(token.Caret) {
		op := p.advance().Text
		right := p.parseBitAnd()
		left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseBitAnd() ast.Expr {
	left := p.parseShift()
	for p.at(token.Amp) {
		op := p.advance().Text
		right := p.parseShift()
		left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseShift() ast.Expr {
	left := p.parseArith()
	for p.at(token.Shl) || p.at(token.Shr) {
		op := p.advance().Text
		right := p.parseArith()
		left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseArith() ast.Expr {
	left := p.parseTerm()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := p.advance().Text
		right := p.parseTerm()
		left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for {
		switch p.cur().Kind {
		case token.Star, token.Slash, token.SlashSlash, token.Percent, token.At:
			op := p.advance().Text
			right := p.parseFactor()
			left = &ast.BinOp{Left: left, Op: op, Right: right, Sp: left.Span().Cover(right.Span())}
		default:
			return left
		}
	}
}

func (p *parser) parseFactor() ast.Expr {
	switch p.cur().Kind {
	case token.Plus, token.Minus, token.Tilde:
		t := p.advance()
		operand := p.parseFactor()
		return &ast.UnaryOp{Op: t.Text, Operand: operand, Sp: t.Span.Cover(operand.Span())}
	case token.KwAwait:
		sp := p.advance().Span
		operand := p.parseFactor()
		return &ast.UnaryOp{Op: "await", Operand: operand, Sp: sp.Cover(operand.Span())}
	}
	return p.parsePower()
}

func (p *parser) parsePower() ast.Expr {
	base := p.parsePostfix(p.parseAtom())
	if p.at(token.StarStar) {
		op := p.advance().Text
		// Right associative.
		right := p.parseFactor()
		return &ast.BinOp{Left: base, Op: op, Right: right, Sp: base.Span().Cover(right.Span())}
	}
	return base
}

// parsePostfix applies attribute access, calls, and subscripts to an
// already parsed primary expression.
func (p *parser) parsePostfix(e ast.Expr) ast.Expr {
	for {
		switch p.cur().Kind {
		case token.Dot:
			p.advance()
			if !p.at(token.Ident) {
				p.report(diag.SynExpectIdentifier, p.cur().Span, "expected attribute name after '.'")
				return e
			}
			t := p.advance()
			e = &ast.Attribute{
				Value: e,
				Attr:  ast.Ident{Name: t.Text, Sp: t.Span},
				Sp:    e.Span().Cover(t.Span),
			}
		case token.LParen:
			e = p.parseCall(e)
		case token.LBracket:
			e = p.parseSubscript(e)
		default:
			return e
		}
	}
}

func (p *parser) parseCall(fn ast.Expr) ast.Expr {
	open := p.advance().Span
	call := &ast.Call{Func: fn}
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.atLineEnd() {
		var arg ast.Expr
		switch {
		case p.at(token.Star):
			sp := p.advance().Span
			v := p.parseExpr()
			arg = &ast.Starred{Value: v, Sp: sp.Cover(v.Span())}
		case p.at(token.StarStar):
			sp := p.advance().Span
			v := p.parseExpr()
			arg = &ast.Starred{Value: v, Sp: sp.Cover(v.Span())}
		case p.at(token.Ident) && p.peekNext().Kind == token.Assign:
			// Keyword argument: the name binds nothing, the value is
			// what matters for usage tracking.
			p.advance()
			p.advance()
			arg = p.parseExpr()
		default:
			arg = p.parseExpr()
		}
		if p.at(token.KwFor) && len(call.Args) == 0 {
			// Generator expression argument: f(x for x in xs).
			arg = p.parseComprehensionTail(arg, '(', open)
		}
		call.Args = append(call.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RParen) {
		p.report(diag.SynUnclosedParen, open, "unmatched '('")
	}
	call.Sp = fn.Span().Cover(p.prevSpan())
	return call
}

// parseSubscript parses `[index]` including slice syntax. All slice parts
// are collected so name usages inside them are not lost.
func (p *parser) parseSubscript(v ast.Expr) ast.Expr {
	open := p.advance().Span
	var parts []ast.Expr
	for !p.at(token.RBracket) && !p.at(token.EOF) && !p.atLineEnd() {
		if p.eat(token.Colon) || p.eat(token.Comma) {
			continue
		}
		if !p.canStartExpr() {
			break
		}
		parts = append(parts, p.parseExpr())
	}
	if !p.eat(token.RBracket) {
		p.report(diag.SynUnclosedParen, open, "unmatched '['")
	}
	sub := &ast.Subscript{Value: v, Sp: v.Span().Cover(p.prevSpan())}
	switch len(parts) {
	case 0:
	case 1:
		sub.Index = parts[0]
	default:
		sub.Index = &ast.Tuple{Elts: parts, Sp: parts[0].Span().Cover(parts[len(parts)-1].Span())}
	}
	return sub
}

// parseTarget parses a single assignment target: a starred, name,
// attribute, subscript, or parenthesized target.
func (p *parser) parseTarget() ast.Expr {
	if p.at(token.Star) {
		sp := p.advance().Span
		v := p.parseTarget()
		return &ast.Starred{Value: v, Sp: sp.Cover(v.Span())}
	}
	return p.parsePostfix(p.parseAtom())
}

// parseTargetList parses `a, b, c` targets without crossing an `in`
// keyword, which parseExpr would consume as a comparison.
func (p *parser) parseTargetList() ast.Expr {
	first := p.parseTarget()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.eat(token.Comma) {
		if p.at(token.KwIn) || !p.canStartExpr() {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return &ast.Tuple{Elts: elts, Sp: first.Span().Cover(p.prevSpan())}
}

// parseComprehensionTail parses the `for target in iter [if cond]` chain
// that follows the element expression of a comprehension.
func (p *parser) parseComprehensionTail(elt ast.Expr, kind byte, open source.Span) ast.Expr {
	comp := &ast.Comprehension{Elt: elt, Kind: kind}
	for p.at(token.KwFor) {
		p.advance()
		var cl ast.CompClause
		cl.Target = p.parseTargetList()
		p.want(token.KwIn, diag.SynUnexpectedToken, "expected 'in' in comprehension")
		cl.Iter = p.parseOr()
		for p.at(token.KwIf) {
			p.advance()
			if !p.canStartExpr() {
				p.report(diag.SynExpectExpression, p.cur().Span, "expected expression after 'if'")
				break
			}
			cl.Ifs = append(cl.Ifs, p.parseOr())
		}
		comp.Clauses = append(comp.Clauses, cl)
	}
	comp.Sp = open.Cover(p.prevSpan())
	return comp
}

func (p *parser) parseAtom() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.Ident:
		p.advance()
		return &ast.Name{ID: ast.Ident{Name: t.Text, Sp: t.Span}}
	case token.IntLit, token.FloatLit:
		p.advance()
		return &ast.Literal{Text: t.Text, Kind: ast.LiteralNumber, Sp: t.Span}
	case token.StringLit:
		p.advance()
		sp := t.Span
		text := t.Text
		// Adjacent string literals concatenate implicitly.
		for p.at(token.StringLit) {
			n := p.advance()
			text += n.Text
			sp = sp.Cover(n.Span)
		}
		return &ast.Literal{Text: text, Kind: ast.LiteralString, Sp: sp}
	case token.KwNone:
		p.advance()
		return &ast.Literal{Text: t.Text, Kind: ast.LiteralNone, Sp: t.Span}
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.Literal{Text: t.Text, Kind: ast.LiteralBool, Sp: t.Span}
	case token.Ellipsis:
		p.advance()
		return &ast.Literal{Text: t.Text, Kind: ast.LiteralEllipsis, Sp: t.Span}
	case token.KwLambda:
		return p.parseLambda()
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	default:
		p.report(diag.SynExpectExpression, t.Span, "expected expression, found "+t.Kind.String())
		if !p.atAtomStop() {
			p.advance()
		}
		return &ast.BadExpr{Sp: t.Span}
	}
}

// atAtomStop lists tokens a failed atom must not consume: they close or
// separate enclosing constructs and their owners need to see them.
func (p *parser) atAtomStop() bool {
	switch p.cur().Kind {
	case token.Newline, token.EOF, token.Dedent, token.Indent,
		token.RParen, token.RBracket, token.RBrace,
		token.Comma, token.Colon, token.Semicolon, token.Assign,
		token.KwIn, token.KwFor, token.KwIf, token.KwElse:
		return true
	}
	return false
}

func (p *parser) parseLambda() ast.Expr {
	sp := p.advance().Span
	lam := &ast.Lambda{Sp: sp}
	for !p.at(token.Colon) && !p.atLineEnd() {
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
			break
		}
		if p.eat(token.Assign) {
			prm.Default = p.parseTernary()
		}
		lam.Params = append(lam.Params, prm)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.want(token.Colon, diag.SynExpectColon, "expected ':' in lambda")
	lam.Body = p.parseExpr()
	lam.Sp = sp.Cover(lam.Body.Span())
	return lam
}

func (p *parser) parseParenAtom() ast.Expr {
	open := p.advance().Span
	if p.eat(token.RParen) {
		return &ast.Tuple{Sp: open.Cover(p.prevSpan())}
	}
	first := p.parseExpr()
	if p.at(token.KwFor) {
		e := p.parseComprehensionTail(first, '(', open)
		if !p.eat(token.RParen) {
			p.report(diag.SynUnclosedParen, open, "unmatched '('")
		}
		return e
	}
	if !p.at(token.Comma) {
		if !p.eat(token.RParen) {
			p.report(diag.SynUnclosedParen, open, "unmatched '('")
		}
		return first
	}
	elts := []ast.Expr{first}
	for p.eat(token.Comma) {
		if !p.canStartExpr() {
			break
		}
		elts = append(elts, p.parseExpr())
	}
	if !p.eat(token.RParen) {
		p.report(diag.SynUnclosedParen, open, "unmatched '('")
	}
	return &ast.Tuple{Elts: elts, Sp: open.Cover(p.prevSpan())}
}

func (p *parser) parseListAtom() ast.Expr {
	open := p.advance().Span
	lst := &ast.List{Kind: '['}
	if p.eat(token.RBracket) {
		lst.Sp = open.Cover(p.prevSpan())
		return lst
	}
	first := p.parseExpr()
	if p.at(token.KwFor) {
		e := p.parseComprehensionTail(first, '[', open)
		if !p.eat(token.RBracket) {
			p.report(diag.SynUnclosedParen, open, "unmatched '['")
		}
		return e
	}
	lst.Elts = append(lst.Elts, first)
	for p.eat(token.Comma) {
		if !p.canStartExpr() {
			break
		}
		lst.Elts = append(lst.Elts, p.parseExpr())
	}
	if !p.eat(token.RBracket) {
		p.report(diag.SynUnclosedParen, open, "unmatched '['")
	}
	lst.Sp = open.Cover(p.prevSpan())
	return lst
}

// parseBraceAtom parses dict and set displays. Keys and values all land
// in Elts so that name usages inside either are visible to resolution.
func (p *parser) parseBraceAtom() ast.Expr {
	open := p.advance().Span
	lst := &ast.List{Kind: '{'}
	if p.eat(token.RBrace) {
		lst.Sp = open.Cover(p.prevSpan())
		return lst
	}
	first := p.parseExpr()
	if p.eat(token.Colon) {
		if p.canStartExpr() {
			val := p.parseExpr()
			if p.at(token.KwFor) {
				e := p.parseComprehensionTail(val, '{', open)
				if c, ok := e.(*ast.Comprehension); ok {
					// Keep the key expression visible too.
					c.Elt = &ast.Tuple{Elts: []ast.Expr{first, val}, Sp: first.Span().Cover(val.Span())}
				}
				if !p.eat(token.RBrace) {
					p.report(diag.SynUnclosedParen, open, "unmatched '{'")
				}
				return e
			}
			lst.Elts = append(lst.Elts, first, val)
		} else {
			lst.Elts = append(lst.Elts, first)
		}
	} else {
		if p.at(token.KwFor) {
			e := p.parseComprehensionTail(first, '{', open)
			if !p.eat(token.RBrace) {
				p.report(diag.SynUnclosedParen, open, "unmatched '{'")
			}
			return e
		}
		lst.Elts = append(lst.Elts, first)
	}
	for p.eat(token.Comma) {
		if !p.canStartExpr() {
			break
		}
		lst.Elts = append(lst.Elts, p.parseExpr())
		if p.eat(token.Colon) && p.canStartExpr() {
			lst.Elts = append(lst.Elts, p.parseExpr())
		}
	}
	if !p.eat(token.RBrace) {
		p.report(diag.SynUnclosedParen, open, "unmatched '{'")
	}
	lst.Sp = open.Cover(p.prevSpan())
	return lst
}
