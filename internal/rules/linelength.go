package rules

import (
	"fmt"
	"unicode/utf8"

	"pylens/internal/diag"
	"pylens/internal/source"
)

// LineLength flags physical lines whose rune count exceeds the configured
// maximum. The span starts at the first rune past the limit so the caret
// points at the overflow, not at the line start.
type LineLength struct{}

func (LineLength) Name() string     { return "line-length" }
func (LineLength) Category() string { return "length" }

func (LineLength) Check(ctx *Context) {
	limit := ctx.Config.Rules.MaxLineLength
	for ln := uint32(1); ln <= ctx.File.LineCount(); ln++ {
		text := ctx.File.GetLine(ln)
		count := utf8.RuneCountInString(text)
		if count <= limit {
			continue
		}
		start := ctx.File.LineStart(ln)
		// Byte offset of the first rune past the limit.
		off := 0
		for i := 0; i < limit; i++ {
			_, size := utf8.DecodeRuneInString(text[off:])
			off += size
		}
		sp := source.Span{
			File:  ctx.File.ID,
			Start: start + uint32(off),
			End:   start + uint32(len(text)),
		}
		ctx.warn(diag.LintLineTooLong, sp,
			fmt.Sprintf("line too long (%d > %d)", count, limit))
	}
}
