package lexer

import (
	"pylens/internal/diag"
	"pylens/internal/token"
)

// scanString scans a quoted literal starting at the opening quote. Both
// quote characters and triple-quoted forms are supported. A literal never
// closed by end of file is terminated synthetically there: the scan stops,
// reports, and yields an Unknown token so downstream stages keep going.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	} else if lx.cursor.Peek() == quote {
		// empty string ""
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			if lx.cursor.Peek() == '\n' {
				lx.line++
				lx.recordStringLine()
			}
			lx.cursor.Bump()
			continue
		}

		if b == quote {
			if !triple {
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
			}
			if lx.try3(quote, quote, quote) {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
			}
			lx.cursor.Bump()
			continue
		}

		if b == '\n' {
			if !triple {
				// single-quoted literals end at the physical line
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
				return token.Token{Kind: token.Unknown, Span: sp, Text: lx.text(sp)}
			}
			lx.line++
			lx.recordStringLine()
		}
		lx.cursor.Bump()
	}

	// EOF without a closing quote
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Unknown, Span: sp, Text: lx.text(sp)}
}
