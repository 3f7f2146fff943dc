package lexer

import (
	"pylens/internal/source"
	"pylens/internal/token"
)

// Lexer turns one Python source file into a token stream plus a per-line
// indentation record. It never fails: unrecognized bytes become Unknown
// tokens and unterminated strings are closed synthetically.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look    *token.Token  // 1-element lookahead buffer
	pending []token.Token // queued Indent/Dedent/Newline tokens

	atLineStart bool
	line        uint32   // current 1-based physical line
	parenDepth  int      // implicit line joining while > 0
	indents     []uint32 // indentation width stack, bottom always 0
	records     []token.IndentRecord
	sawContent  bool // current logical line produced at least one token
	eofEmitted  bool
}

// New creates a lexer over the given file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		atLineStart: true,
		line:        1,
		indents:     []uint32{0},
	}
}

// Tokenize drains the lexer and returns the full token stream (terminated
// by EOF) together with the ordered per-line indentation records.
func Tokenize(file *source.File, opts Options) ([]token.Token, []token.IndentRecord) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, lx.Records()
}

// Records returns the indentation records accumulated so far.
func (lx *Lexer) Records() []token.IndentRecord {
	return lx.records
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}

		if lx.atLineStart && lx.parenDepth == 0 {
			lx.startLine()
			continue
		}

		if lx.cursor.EOF() {
			if tok, ok := lx.finishAtEOF(); ok {
				return tok
			}
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		tok, ok := lx.scanToken()
		if ok {
			return tok
		}
		// scanToken consumed whitespace or line glue; go around again
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// scanToken scans one token at the current (non line-start) position.
// Returns ok=false when it consumed only intra-line whitespace.
func (lx *Lexer) scanToken() (token.Token, bool) {
	ch := lx.cursor.Peek()

	switch {
	case ch == ' ' || ch == '\t':
		for {
			b := lx.cursor.Peek()
			if b != ' ' && b != '\t' {
				break
			}
			lx.cursor.Bump()
		}
		return token.Token{}, false

	case ch == '\\' && lx.cursor.PeekAt(1) == '\n':
		// explicit line joining
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.line++
		lx.recordContinuationLine()
		return token.Token{}, false

	case ch == '\n':
		lx.cursor.Bump()
		lx.line++
		if lx.parenDepth > 0 {
			if !lx.nextLineStartsStatement() {
				// implicit joining inside brackets
				lx.recordContinuationLine()
				return token.Token{}, false
			}
			// The bracket was never closed but the next line clearly
			// begins a new statement. Stop joining so the parser sees
			// the unclosed bracket and the rest of the file survives.
			lx.parenDepth = 0
		}
		lx.atLineStart = true
		if lx.sawContent {
			lx.sawContent = false
			sp := source.Span{File: lx.file.ID, Start: lx.cursor.Off - 1, End: lx.cursor.Off}
			return token.Token{Kind: token.Newline, Span: sp, Text: "\n"}, true
		}
		return token.Token{}, false

	case ch == '#':
		return lx.scanComment(), true

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		if tok, ok := lx.scanStringWithPrefix(); ok {
			lx.sawContent = true
			return tok, true
		}
		lx.sawContent = true
		return lx.scanIdentOrKeyword(), true

	case isDec(ch):
		lx.sawContent = true
		return lx.scanNumber(), true

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		lx.sawContent = true
		return lx.scanNumber(), true

	case ch == '"' || ch == '\'':
		lx.sawContent = true
		return lx.scanString(), true

	default:
		lx.sawContent = true
		return lx.scanOperatorOrPunct(), true
	}
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)}
}

// finishAtEOF flushes the trailing Newline and any open Dedents before the
// final EOF token.
func (lx *Lexer) finishAtEOF() (token.Token, bool) {
	if lx.eofEmitted {
		return token.Token{}, false
	}
	lx.eofEmitted = true
	sp := lx.emptySpan()
	if lx.sawContent {
		lx.sawContent = false
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
	}
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok, true
	}
	return token.Token{}, false
}

// statementStarters are keywords that can only begin a statement, never
// continue an expression. `if`, `else` and `for` are absent on purpose:
// they appear on continuation lines of multiline ternaries and
// comprehensions.
var statementStarters = map[string]bool{
	"def": true, "class": true, "import": true, "from": true,
	"return": true, "pass": true, "break": true, "continue": true,
	"raise": true, "del": true, "assert": true, "global": true,
	"nonlocal": true, "while": true, "try": true, "with": true,
	"elif": true, "except": true, "finally": true,
}

// nextLineStartsStatement peeks at the upcoming line and reports whether
// it begins with a statement-only keyword or a decorator.
func (lx *Lexer) nextLineStartsStatement() bool {
	content := lx.file.Content
	i := int(lx.cursor.Off)
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	if i < len(content) && content[i] == '@' {
		return true
	}
	j := i
	for j < len(content) && content[j] >= 'a' && content[j] <= 'z' {
		j++
	}
	if j == i || (j < len(content) && isIdentContinueByte(content[j])) {
		return false
	}
	return statementStarters[string(content[i:j])]
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
