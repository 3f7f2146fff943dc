package lexer

import (
	"pylens/internal/diag"
	"pylens/internal/token"
)

// scanNumber scans integer and float literals, including hex/oct/bin forms,
// exponents, underscores as digit separators, and the imaginary 'j' suffix.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if b1 := lx.cursor.PeekAt(1); b1 == 'x' || b1 == 'X' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				if lx.cursor.Peek() != '_' {
					digits++
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			if digits == 0 {
				lx.report(diag.LexBadNumber, sp, "hex literal has no digits")
				return token.Token{Kind: token.Unknown, Span: sp, Text: lx.text(sp)}
			}
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		} else if b1 == 'o' || b1 == 'O' || b1 == 'b' || b1 == 'B' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				if lx.cursor.Peek() != '_' {
					digits++
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			if digits == 0 {
				lx.report(diag.LexBadNumber, sp, "numeric literal has no digits")
				return token.Token{Kind: token.Unknown, Span: sp, Text: lx.text(sp)}
			}
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		}
	}

	consumeDigits := func() {
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	consumeDigits()

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		consumeDigits()
	} else if lx.cursor.Peek() == '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) && lx.cursor.PeekAt(1) != '.' {
		// "1." style float
		kind = token.FloatLit
		lx.cursor.Bump()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		b1 := lx.cursor.PeekAt(1)
		b2 := lx.cursor.PeekAt(2)
		if isDec(b1) || ((b1 == '+' || b1 == '-') && isDec(b2)) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if b1 == '+' || b1 == '-' {
				lx.cursor.Bump()
			}
			consumeDigits()
		}
	}

	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.FloatLit
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
