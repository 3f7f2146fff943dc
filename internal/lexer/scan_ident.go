package lexer

import (
	"pylens/internal/diag"
	"pylens/internal/token"
)

// scanIdentOrKeyword scans an identifier and maps it through the keyword
// table. Non-ASCII letters are accepted the way CPython accepts them.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		// a stray non-identifier byte landed here; classify it Unknown
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unrecognized character "+lx.text(sp))
		return token.Token{Kind: token.Unknown, Span: sp, Text: lx.text(sp)}
	}

	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	return token.Token{Kind: token.LookupKeyword(text), Span: sp, Text: text}
}

// scanStringWithPrefix handles r"..." / b'...' / f"..." style literals.
// Returns ok=false when the identifier at the cursor is not a string prefix,
// leaving the cursor untouched.
func (lx *Lexer) scanStringWithPrefix() (token.Token, bool) {
	start := lx.cursor.Mark()

	n := uint32(0)
	for n < 2 {
		b := lx.cursor.PeekAt(n)
		switch b {
		case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
			n++
			continue
		}
		break
	}
	if n == 0 {
		return token.Token{}, false
	}
	q := lx.cursor.PeekAt(n)
	if q != '"' && q != '\'' {
		return token.Token{}, false
	}

	for i := uint32(0); i < n; i++ {
		lx.cursor.Bump()
	}
	tok := lx.scanString()
	// widen the span to cover the prefix
	tok.Span.Start = uint32(start)
	tok.Text = lx.text(tok.Span)
	return tok, true
}
