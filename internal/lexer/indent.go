package lexer

import (
	"pylens/internal/diag"
	"pylens/internal/source"
	"pylens/internal/token"
)

// startLine measures the leading whitespace of the physical line under the
// cursor, appends its IndentRecord, and translates width changes into
// Indent/Dedent tokens. Blank and comment-only lines never affect the
// indentation stack.
func (lx *Lexer) startLine() {
	if lx.cursor.EOF() {
		lx.atLineStart = false
		return
	}

	start := lx.cursor.Mark()
	rec := lx.measureLeading()

	next := lx.cursor.Peek()
	switch {
	case lx.cursor.EOF():
		rec.Blank = true
		lx.records = append(lx.records, rec)
		lx.atLineStart = false
		return

	case next == '\n':
		rec.Blank = true
		lx.records = append(lx.records, rec)
		lx.cursor.Bump()
		lx.line++
		return // still at line start

	case next == '#':
		rec.Blank = true
		lx.records = append(lx.records, rec)
		lx.atLineStart = false
		return

	default:
		lx.records = append(lx.records, rec)
		lx.applyIndent(rec.Width, lx.cursor.SpanFrom(start))
		lx.atLineStart = false
		return
	}
}

// measureLeading consumes the run of spaces and tabs at the cursor and
// returns the record for the current physical line.
func (lx *Lexer) measureLeading() token.IndentRecord {
	rec := token.IndentRecord{Line: lx.line}
	for {
		switch lx.cursor.Peek() {
		case ' ':
			rec.Spaces++
			rec.Width++
		case '\t':
			rec.Tabs++
			rec.Width = (rec.Width/token.TabWidth + 1) * token.TabWidth
		default:
			rec.Mixed = rec.Spaces > 0 && rec.Tabs > 0
			return rec
		}
		lx.cursor.Bump()
	}
}

// applyIndent compares the measured width against the indent stack and
// queues Indent/Dedent tokens.
func (lx *Lexer) applyIndent(width uint32, sp source.Span) {
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: sp})
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		if lx.indents[len(lx.indents)-1] != width {
			// no outer level matches; keep going at the nearest one
			lx.report(diag.LexBadDedent, sp, "unindent does not match any outer indentation level")
		}
	}
}

// recordContinuationLine measures the leading whitespace of a physical line
// that continues the current logical line (inside brackets or after '\').
// Continuation lines get a record but never touch the indentation stack.
func (lx *Lexer) recordContinuationLine() {
	rec := lx.measureLeading()
	b := lx.cursor.Peek()
	rec.Blank = lx.cursor.EOF() || b == '\n' || b == '#'
	lx.records = append(lx.records, rec)
}

// recordStringLine appends a blank record for a physical line swallowed by
// a multi-line string literal.
func (lx *Lexer) recordStringLine() {
	lx.records = append(lx.records, token.IndentRecord{Line: lx.line, Blank: true})
}
