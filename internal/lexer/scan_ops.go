package lexer

import (
	"pylens/internal/diag"
	"pylens/internal/token"
)

// scanOperatorOrPunct scans operators, delimiters, and anything else that
// is not an identifier, number, string, or comment. Bracket tokens drive
// the implicit line-joining depth. Unrecognized bytes yield Unknown tokens
// so the scan never stops.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	mk := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	}

	// three-byte operators first
	switch {
	case lx.try3('*', '*', '='):
		return mk(token.StarStarAssign)
	case lx.try3('/', '/', '='):
		return mk(token.SlashSlashAssign)
	case lx.try3('<', '<', '='):
		return mk(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return mk(token.ShrAssign)
	case lx.try3('.', '.', '.'):
		return mk(token.Ellipsis)
	}

	switch {
	case lx.try2('*', '*'):
		return mk(token.StarStar)
	case lx.try2('/', '/'):
		return mk(token.SlashSlash)
	case lx.try2('<', '<'):
		return mk(token.Shl)
	case lx.try2('>', '>'):
		return mk(token.Shr)
	case lx.try2('=', '='):
		return mk(token.EqEq)
	case lx.try2('!', '='):
		return mk(token.BangEq)
	case lx.try2('<', '='):
		return mk(token.LtEq)
	case lx.try2('>', '='):
		return mk(token.GtEq)
	case lx.try2('+', '='):
		return mk(token.PlusAssign)
	case lx.try2('-', '='):
		return mk(token.MinusAssign)
	case lx.try2('*', '='):
		return mk(token.StarAssign)
	case lx.try2('/', '='):
		return mk(token.SlashAssign)
	case lx.try2('%', '='):
		return mk(token.PercentAssign)
	case lx.try2('&', '='):
		return mk(token.AmpAssign)
	case lx.try2('|', '='):
		return mk(token.PipeAssign)
	case lx.try2('^', '='):
		return mk(token.CaretAssign)
	case lx.try2('-', '>'):
		return mk(token.Arrow)
	case lx.try2(':', '='):
		return mk(token.Walrus)
	}

	b := lx.cursor.Bump()
	switch b {
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '/':
		return mk(token.Slash)
	case '%':
		return mk(token.Percent)
	case '@':
		return mk(token.At)
	case '&':
		return mk(token.Amp)
	case '|':
		return mk(token.Pipe)
	case '^':
		return mk(token.Caret)
	case '~':
		return mk(token.Tilde)
	case '=':
		return mk(token.Assign)
	case '<':
		return mk(token.Lt)
	case '>':
		return mk(token.Gt)
	case '(':
		lx.parenDepth++
		return mk(token.LParen)
	case '[':
		lx.parenDepth++
		return mk(token.LBracket)
	case '{':
		lx.parenDepth++
		return mk(token.LBrace)
	case ')':
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
		return mk(token.RParen)
	case ']':
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
		return mk(token.RBracket)
	case '}':
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
		return mk(token.RBrace)
	case ',':
		return mk(token.Comma)
	case ':':
		return mk(token.Colon)
	case ';':
		return mk(token.Semicolon)
	case '.':
		return mk(token.Dot)
	default:
		tok := mk(token.Unknown)
		lx.report(diag.LexUnknownChar, tok.Span, "unrecognized character "+tok.Text)
		return tok
	}
}
