package lexer_test

import (
	"testing"

	"pylens/internal/diag"
	"pylens/internal/lexer"
	"pylens/internal/source"
	"pylens/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) count(code diag.Code) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

func tokenize(t *testing.T, input string) ([]token.Token, []token.IndentRecord, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(input))
	reporter := &testReporter{}
	toks, recs := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: reporter})
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("stream must end with EOF, got %v", toks)
	}
	return toks, recs, reporter
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func expectKinds(t *testing.T, got []token.Token, want ...token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("kinds = %v, want %v", gk, want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v (all: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	toks, _, rep := tokenize(t, "x = 1\n")
	expectKinds(t, toks,
		token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF)
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.diagnostics)
	}
	if toks[0].Text != "x" {
		t.Errorf("ident text = %q", toks[0].Text)
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	toks, _, _ := tokenize(t, "def f(a, b):\n    return a + b\n")
	expectKinds(t, toks,
		token.KwDef, token.Ident, token.LParen, token.Ident, token.Comma,
		token.Ident, token.RParen, token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.Ident, token.Plus, token.Ident,
		token.Newline, token.Dedent, token.EOF)
}

func TestBlankAndCommentLinesDoNotIndent(t *testing.T) {
	src := "if x:\n    a = 1\n\n    # comment\n    b = 2\n"
	toks, recs, _ := tokenize(t, src)

	indents, dedents := 0, 0
	for _, tk := range toks {
		switch tk.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("indents=%d dedents=%d, want 1/1", indents, dedents)
	}

	if len(recs) != 5 {
		t.Fatalf("records = %d, want 5", len(recs))
	}
	if !recs[2].Blank || !recs[3].Blank {
		t.Errorf("blank/comment lines must be marked Blank: %+v", recs)
	}
}

func TestNestedDedents(t *testing.T) {
	src := "def f():\n    if x:\n        y = 1\nz = 2\n"
	toks, _, _ := tokenize(t, src)

	dedents := 0
	for _, tk := range toks {
		if tk.Kind == token.Dedent {
			dedents++
		}
	}
	if dedents != 2 {
		t.Errorf("dedents = %d, want 2", dedents)
	}
}

func TestImplicitLineJoining(t *testing.T) {
	toks, _, _ := tokenize(t, "x = (1 +\n     2)\n")
	for _, tk := range toks[:len(toks)-2] {
		if tk.Kind == token.Newline && tk.Span.Start < 8 {
			t.Errorf("newline inside brackets must be suppressed: %v", toks)
		}
	}
	expectKinds(t, toks,
		token.Ident, token.Assign, token.LParen, token.IntLit, token.Plus,
		token.IntLit, token.RParen, token.Newline, token.EOF)
}

func TestBackslashContinuation(t *testing.T) {
	toks, _, _ := tokenize(t, "x = 1 + \\\n    2\n")
	expectKinds(t, toks,
		token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit,
		token.Newline, token.EOF)
}

func TestUnterminatedStringTerminatesAtEOF(t *testing.T) {
	toks, _, rep := tokenize(t, `s = "never ends`)
	if rep.count(diag.LexUnterminatedString) != 1 {
		t.Fatalf("want one unterminated-string diagnostic, got %v", rep.diagnostics)
	}
	var sawUnknown bool
	for _, tk := range toks {
		if tk.Kind == token.Unknown {
			sawUnknown = true
		}
	}
	if !sawUnknown {
		t.Error("unterminated string must yield an Unknown tail token")
	}
}

func TestUnterminatedStringAtNewline(t *testing.T) {
	_, _, rep := tokenize(t, "s = \"broken\nx = 1\n")
	if rep.count(diag.LexUnterminatedString) != 1 {
		t.Fatalf("want one diagnostic, got %v", rep.diagnostics)
	}
}

func TestTripleQuotedString(t *testing.T) {
	src := "s = \"\"\"line one\nline two\n\"\"\"\n"
	toks, recs, rep := tokenize(t, src)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
	}
	expectKinds(t, toks,
		token.Ident, token.Assign, token.StringLit, token.Newline, token.EOF)
	// every physical line still has a record
	if len(recs) != 3 {
		t.Errorf("records = %d, want 3", len(recs))
	}
}

func TestStringPrefixes(t *testing.T) {
	toks, _, _ := tokenize(t, `s = rb'\x00'`)
	expectKinds(t, toks,
		token.Ident, token.Assign, token.StringLit, token.Newline, token.EOF)
	if toks[2].Text != `rb'\x00'` {
		t.Errorf("prefixed string text = %q", toks[2].Text)
	}
}

func TestUnknownCharDoesNotStopScan(t *testing.T) {
	toks, _, rep := tokenize(t, "x = 1 ? 2\n")
	if rep.count(diag.LexUnknownChar) != 1 {
		t.Fatalf("want one unknown-char diagnostic, got %v", rep.diagnostics)
	}
	expectKinds(t, toks,
		token.Ident, token.Assign, token.IntLit, token.Unknown, token.IntLit,
		token.Newline, token.EOF)
}

func TestIndentRecordsMeasureMix(t *testing.T) {
	src := "def f():\n\t x = 1\n"
	_, recs, _ := tokenize(t, src)
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	rec := recs[1]
	if rec.Tabs != 1 || rec.Spaces != 1 || !rec.Mixed {
		t.Errorf("record = %+v, want tabs=1 spaces=1 mixed", rec)
	}
	if rec.Width != token.TabWidth+1 {
		t.Errorf("width = %d, want %d", rec.Width, token.TabWidth+1)
	}
}

func TestBadDedentReported(t *testing.T) {
	src := "if x:\n        a = 1\n   b = 2\n"
	_, _, rep := tokenize(t, src)
	if rep.count(diag.LexBadDedent) != 1 {
		t.Errorf("want one bad-dedent diagnostic, got %v", rep.diagnostics)
	}
}

func TestCommentTokenOnCodeLine(t *testing.T) {
	toks, _, _ := tokenize(t, "x = 1  # trailing\n")
	expectKinds(t, toks,
		token.Ident, token.Assign, token.IntLit, token.Comment,
		token.Newline, token.EOF)
}

func TestNumbers(t *testing.T) {
	toks, _, _ := tokenize(t, "a = 0x1f\nb = 1_000\nc = 3.14\nd = 1e-9\ne = .5\n")
	var lits []token.Kind
	for _, tk := range toks {
		if tk.Kind == token.IntLit || tk.Kind == token.FloatLit {
			lits = append(lits, tk.Kind)
		}
	}
	want := []token.Kind{token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.FloatLit}
	if len(lits) != len(want) {
		t.Fatalf("literals = %v, want %v", lits, want)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Errorf("literal[%d] = %v, want %v", i, lits[i], want[i])
		}
	}
}

func TestEmptyInput(t *testing.T) {
	toks, recs, rep := tokenize(t, "")
	expectKinds(t, toks, token.EOF)
	if len(recs) != 0 {
		t.Errorf("records = %v, want none", recs)
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("diagnostics = %v", rep.diagnostics)
	}
}

func TestEOFWithoutTrailingNewline(t *testing.T) {
	toks, _, _ := tokenize(t, "def f():\n    pass")
	expectKinds(t, toks,
		token.KwDef, token.Ident, token.LParen, token.RParen, token.Colon,
		token.Newline, token.Indent, token.KwPass, token.Newline,
		token.Dedent, token.EOF)
}
