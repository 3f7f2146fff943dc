package token

import (
	"pylens/internal/source"
)

// Token represents a single source token with its location.
// Tokens are immutable once produced; the stream for one file owns them.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, string, or constant literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwNone, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwDef && t.Kind <= KwAwait
}

// IsBinaryOp reports whether the token is a binary operator the style rule
// expects to be surrounded by single spaces.
func (t Token) IsBinaryOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, SlashSlash, Percent, StarStar,
		Amp, Pipe, Caret, Shl, Shr,
		EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether the token assigns to its left operand.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign,
		PercentAssign, AmpAssign, PipeAssign, CaretAssign,
		ShlAssign, ShrAssign, StarStarAssign, SlashSlashAssign, Walrus:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
