package rules

import (
	"fmt"

	"pylens/internal/ast"
	"pylens/internal/diag"
	"pylens/internal/source"
	"pylens/internal/token"
)

// StyleIssues covers the formatting checks: one module per import
// statement, single spaces around operators, comma and bracket spacing,
// consistent indentation, and trailing whitespace.
type StyleIssues struct{}

func (StyleIssues) Name() string     { return "style-issues" }
func (StyleIssues) Category() string { return "style" }

func (StyleIssues) Check(ctx *Context) {
	checkMultipleImports(ctx, ctx.Tree.Body)
	checkTokenSpacing(ctx)
	checkIndentation(ctx)
	checkTrailingWhitespace(ctx)
}

// checkMultipleImports flags `import a, b` anywhere in the tree. One
// module per import line keeps diffs and greps clean.
func checkMultipleImports(ctx *Context, body []ast.Stmt) {
	for _, s := range body {
		switch st := s.(type) {
		case *ast.Import:
			if len(st.Names) > 1 {
				ctx.warn(diag.LintMultipleImports, st.Span(),
					fmt.Sprintf("%d modules imported on one line; use one import per line", len(st.Names)))
			}
		case *ast.If:
			checkMultipleImports(ctx, st.Body)
			checkMultipleImports(ctx, st.Orelse)
		case *ast.While:
			checkMultipleImports(ctx, st.Body)
			checkMultipleImports(ctx, st.Orelse)
		case *ast.For:
			checkMultipleImports(ctx, st.Body)
			checkMultipleImports(ctx, st.Orelse)
		case *ast.Try:
			checkMultipleImports(ctx, st.Body)
			for i := range st.Handlers {
				checkMultipleImports(ctx, st.Handlers[i].Body)
			}
			checkMultipleImports(ctx, st.Orelse)
			checkMultipleImports(ctx, st.Final)
		case *ast.With:
			checkMultipleImports(ctx, st.Body)
		case *ast.FunctionDef:
			checkMultipleImports(ctx, st.Body)
		case *ast.ClassDef:
			checkMultipleImports(ctx, st.Body)
		}
	}
}

// checkTokenSpacing walks the token stream once, tracking bracket depth to
// tell keyword-argument equals signs from real assignments and unary
// minus from subtraction.
func checkTokenSpacing(ctx *Context) {
	content := ctx.File.Content
	depth := 0
	var prev token.Token // zero Kind == Unknown for "start of file"
	for _, t := range ctx.Tokens {
		switch t.Kind {
		case token.Comment, token.Newline, token.Indent, token.Dedent:
			continue
		case token.LParen, token.LBracket, token.LBrace:
			depth++
			checkOpenBracket(ctx, content, t)
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
			checkCloseBracket(ctx, content, t)
		case token.Comma:
			checkComma(ctx, content, t)
		case token.EOF:
			return
		default:
			checkOperator(ctx, content, t, prev, depth)
		}
		prev = t
	}
}

// binaryPosition reports whether a +, -, *, or ** token follows something
// that can be a left operand. Anywhere else it is unary or a star
// parameter and spacing rules do not apply.
func binaryPosition(prev token.Token) bool {
	if prev.IsLiteral() || prev.Kind == token.Ident {
		return true
	}
	switch prev.Kind {
	case token.RParen, token.RBracket, token.RBrace:
		return true
	}
	return false
}

func checkOperator(ctx *Context, content []byte, t, prev token.Token, depth int) {
	isAssign := t.IsAssignOp()
	if !t.IsBinaryOp() && !isAssign {
		return
	}
	if isAssign && depth > 0 {
		// Keyword arguments and parameter defaults: `f(key=value)` is
		// the expected spelling.
		return
	}
	switch t.Kind {
	case token.Plus, token.Minus, token.Star, token.StarStar:
		if !binaryPosition(prev) {
			return
		}
	}
	before := spaceBefore(content, t.Span.Start)
	after := spaceAfter(content, t.Span.End)
	// An operator at a line boundary is continuation style, not a
	// spacing mistake.
	if before == -1 || after == -1 {
		return
	}
	if before != 1 || after != 1 {
		ctx.warn(diag.LintOperatorSpacing, t.Span,
			fmt.Sprintf("operator %q should be surrounded by single spaces", t.Text))
	}
}

func checkComma(ctx *Context, content []byte, t token.Token) {
	if before := spaceBefore(content, t.Span.Start); before > 0 {
		ctx.warn(diag.LintCommaSpacing, t.Span, "whitespace before ','")
	}
	end := t.Span.End
	if int(end) >= len(content) {
		return
	}
	switch content[end] {
	case ' ':
		if int(end)+1 < len(content) && content[end+1] == ' ' {
			ctx.warn(diag.LintCommaSpacing, t.Span, "multiple spaces after ','")
		}
	case '\n', ')', ']', '}':
		// Trailing comma before a closer or line break is fine.
	default:
		ctx.warn(diag.LintCommaSpacing, t.Span, "missing space after ','")
	}
}

func checkOpenBracket(ctx *Context, content []byte, t token.Token) {
	end := t.Span.End
	if int(end) < len(content) && content[end] == ' ' {
		// Space right after an opener, unless the line ends here.
		if !restIsLineEnd(content, end) {
			ctx.warn(diag.LintParenSpacing, t.Span,
				fmt.Sprintf("whitespace after %q", t.Text))
		}
	}
}

func checkCloseBracket(ctx *Context, content []byte, t token.Token) {
	if before := spaceBefore(content, t.Span.Start); before > 0 {
		ctx.warn(diag.LintParenSpacing, t.Span,
			fmt.Sprintf("whitespace before %q", t.Text))
	}
}

// spaceBefore counts spaces immediately before off; -1 means the token
// starts a line (only whitespace between it and the newline).
func spaceBefore(content []byte, off uint32) int {
	i := int(off) - 1
	n := 0
	for i >= 0 && content[i] == ' ' {
		i--
		n++
	}
	if i < 0 || content[i] == '\n' || content[i] == '\t' {
		return -1
	}
	return n
}

// spaceAfter counts spaces immediately after off; -1 means the rest of
// the line is blank or a comment follows.
func spaceAfter(content []byte, off uint32) int {
	i := int(off)
	n := 0
	for i < len(content) && content[i] == ' ' {
		i++
		n++
	}
	if i >= len(content) || content[i] == '\n' || content[i] == '\\' || content[i] == '#' {
		return -1
	}
	return n
}

func restIsLineEnd(content []byte, off uint32) bool {
	i := int(off)
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	return i >= len(content) || content[i] == '\n' || content[i] == '#'
}

// checkIndentation validates the per-line indentation records: tabs,
// tab/space mixes, and widths that are not a multiple of the configured
// unit.
func checkIndentation(ctx *Context) {
	unit := uint32(ctx.Config.Rules.IndentationUnit)
	for _, rec := range ctx.Indents {
		if rec.Blank || rec.Spaces+rec.Tabs == 0 {
			continue
		}
		sp := indentSpan(ctx.File, rec)
		switch {
		case rec.Mixed:
			ctx.warn(diag.LintMixedIndent, sp, "indentation mixes tabs and spaces")
		case rec.Tabs > 0:
			ctx.warn(diag.LintTabIndent, sp, "indentation uses tabs; use spaces")
		case rec.Width%unit != 0:
			ctx.warn(diag.LintBadIndentWidth, sp,
				fmt.Sprintf("indentation of %d is not a multiple of %d", rec.Width, unit))
		}
	}
}

func indentSpan(f *source.File, rec token.IndentRecord) source.Span {
	start := f.LineStart(rec.Line)
	return source.Span{File: f.ID, Start: start, End: start + rec.Spaces + rec.Tabs}
}

func checkTrailingWhitespace(ctx *Context) {
	for ln := uint32(1); ln <= ctx.File.LineCount(); ln++ {
		text := ctx.File.GetLine(ln)
		end := len(text)
		for end > 0 && (text[end-1] == ' ' || text[end-1] == '\t') {
			end--
		}
		if end == len(text) {
			continue
		}
		if end == 0 {
			// Whitespace-only lines are blank, not trailing.
			continue
		}
		start := ctx.File.LineStart(ln)
		sp := source.Span{
			File:  ctx.File.ID,
			Start: start + uint32(end),
			End:   start + uint32(len(text)),
		}
		ctx.warn(diag.LintTrailingWhitespace, sp, "trailing whitespace")
	}
}
