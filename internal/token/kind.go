package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown indicates a byte sequence the lexer could not classify.
	// The scan never stops on it; downstream stages decide what to do.
	Unknown Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwDef represents the 'def' keyword.
	KwDef
	// KwClass represents the 'class' keyword.
	KwClass
	// KwIf represents the 'if' keyword.
	KwIf
	// KwElif represents the 'elif' keyword.
	KwElif
	// KwElse represents the 'else' keyword.
	KwElse
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwFor represents the 'for' keyword.
	KwFor
	// KwIn represents the 'in' keyword.
	KwIn
	// KwTry represents the 'try' keyword.
	KwTry
	// KwExcept represents the 'except' keyword.
	KwExcept
	// KwFinally represents the 'finally' keyword.
	KwFinally
	// KwWith represents the 'with' keyword.
	KwWith
	// KwAs represents the 'as' keyword.
	KwAs
	// KwImport represents the 'import' keyword.
	KwImport
	// KwFrom represents the 'from' keyword.
	KwFrom
	// KwReturn represents the 'return' keyword.
	KwReturn
	// KwPass represents the 'pass' keyword.
	KwPass
	// KwBreak represents the 'break' keyword.
	KwBreak
	// KwContinue represents the 'continue' keyword.
	KwContinue
	// KwLambda represents the 'lambda' keyword.
	KwLambda
	// KwNot represents the 'not' keyword.
	KwNot
	// KwAnd represents the 'and' keyword.
	KwAnd
	// KwOr represents the 'or' keyword.
	KwOr
	// KwIs represents the 'is' keyword.
	KwIs
	// KwNone represents the 'None' literal keyword.
	KwNone
	// KwTrue represents the 'True' literal keyword.
	KwTrue
	// KwFalse represents the 'False' literal keyword.
	KwFalse
	// KwGlobal represents the 'global' keyword.
	KwGlobal
	// KwNonlocal represents the 'nonlocal' keyword.
	KwNonlocal
	// KwDel represents the 'del' keyword.
	KwDel
	// KwRaise represents the 'raise' keyword.
	KwRaise
	// KwYield represents the 'yield' keyword.
	KwYield
	// KwAssert represents the 'assert' keyword.
	KwAssert
	// KwAsync represents the 'async' keyword.
	KwAsync
	// KwAwait represents the 'await' keyword.
	KwAwait

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token (any quoting style).
	StringLit

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// StarStar represents '**'.
	StarStar
	// Slash represents '/'.
	Slash
	// SlashSlash represents '//'.
	SlashSlash
	// Percent represents '%'.
	Percent
	// At represents '@'.
	At
	// Amp represents '&'.
	Amp
	// Pipe represents '|'.
	Pipe
	// Caret represents '^'.
	Caret
	// Tilde represents '~'.
	Tilde
	// Shl represents '<<'.
	Shl
	// Shr represents '>>'.
	Shr
	// Assign represents '='.
	Assign
	// PlusAssign represents '+='.
	PlusAssign
	// MinusAssign represents '-='.
	MinusAssign
	// StarAssign represents '*='.
	StarAssign
	// SlashAssign represents '/='.
	SlashAssign
	// PercentAssign represents '%='.
	PercentAssign
	// AmpAssign represents '&='.
	AmpAssign
	// PipeAssign represents '|='.
	PipeAssign
	// CaretAssign represents '^='.
	CaretAssign
	// ShlAssign represents '<<='.
	ShlAssign
	// ShrAssign represents '>>='.
	ShrAssign
	// StarStarAssign represents '**='.
	StarStarAssign
	// SlashSlashAssign represents '//='.
	SlashSlashAssign
	// EqEq represents '=='.
	EqEq
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// Arrow represents '->'.
	Arrow
	// Walrus represents ':='.
	Walrus
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// Comma represents ','.
	Comma
	// Colon represents ':'.
	Colon
	// Semicolon represents ';'.
	Semicolon
	// Dot represents '.'.
	Dot
	// Ellipsis represents '...'.
	Ellipsis

	// Newline terminates a logical line.
	Newline
	// Indent opens a deeper indentation block.
	Indent
	// Dedent closes an indentation block.
	Dedent
	// Comment represents a '#' comment running to end of line.
	Comment
)

var kindNames = map[Kind]string{
	Unknown:          "Unknown",
	EOF:              "EOF",
	Ident:            "Ident",
	KwDef:            "def",
	KwClass:          "class",
	KwIf:             "if",
	KwElif:           "elif",
	KwElse:           "else",
	KwWhile:          "while",
	KwFor:            "for",
	KwIn:             "in",
	KwTry:            "try",
	KwExcept:         "except",
	KwFinally:        "finally",
	KwWith:           "with",
	KwAs:             "as",
	KwImport:         "import",
	KwFrom:           "from",
	KwReturn:         "return",
	KwPass:           "pass",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwLambda:         "lambda",
	KwNot:            "not",
	KwAnd:            "and",
	KwOr:             "or",
	KwIs:             "is",
	KwNone:           "None",
	KwTrue:           "True",
	KwFalse:          "False",
	KwGlobal:         "global",
	KwNonlocal:       "nonlocal",
	KwDel:            "del",
	KwRaise:          "raise",
	KwYield:          "yield",
	KwAssert:         "assert",
	KwAsync:          "async",
	KwAwait:          "await",
	IntLit:           "IntLit",
	FloatLit:         "FloatLit",
	StringLit:        "StringLit",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	SlashSlash:       "//",
	Percent:          "%",
	At:               "@",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	Shl:              "<<",
	Shr:              ">>",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	StarStarAssign:   "**=",
	SlashSlashAssign: "//=",
	EqEq:             "==",
	BangEq:           "!=",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Arrow:            "->",
	Walrus:           ":=",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
	LBrace:           "{",
	RBrace:           "}",
	Comma:            ",",
	Colon:            ":",
	Semicolon:        ";",
	Dot:              ".",
	Ellipsis:         "...",
	Newline:          "Newline",
	Indent:           "Indent",
	Dedent:           "Dedent",
	Comment:          "Comment",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}
