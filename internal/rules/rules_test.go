package rules

import (
	"strings"
	"testing"

	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/lexer"
	"pylens/internal/parser"
	"pylens/internal/source"
	"pylens/internal/symbols"
)

func lintSrc(t *testing.T, src string, cfg config.Config) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	file := fs.Get(id)

	syntax := diag.NewBag(128)
	srep := diag.BagReporter{Bag: syntax}
	toks, indents := lexer.Tokenize(file, lexer.Options{Reporter: srep})
	res := parser.Parse(file, toks, parser.Options{Reporter: srep})

	bag := diag.NewBag(128)
	Run(&Context{
		File:        file,
		Tokens:      toks,
		Indents:     indents,
		Tree:        res.Module,
		Scopes:      symbols.Resolve(res.Module),
		Config:      cfg,
		SyntaxDiags: syntax.Items(),
		Reporter:    diag.BagReporter{Bag: bag},
	})
	return bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestLineLengthBoundary(t *testing.T) {
	cfg := config.Default()
	ok := strings.Repeat("x", 88) + "\n"
	if bag := lintSrc(t, ok, cfg); countCode(bag, diag.LintLineTooLong) != 0 {
		t.Fatalf("88-column line flagged: %v", codesOf(bag))
	}
	long := strings.Repeat("x", 90) + "\n"
	bag := lintSrc(t, long, cfg)
	if countCode(bag, diag.LintLineTooLong) != 1 {
		t.Fatalf("90-column line: got %v", codesOf(bag))
	}
	d := bag.Items()[0]
	if d.Primary.Start != 88 || d.Primary.End != 90 {
		t.Errorf("span = [%d,%d), want [88,90)", d.Primary.Start, d.Primary.End)
	}
}

func TestLineLengthColumnCountsRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := strings.Repeat("é", 10) + strings.Repeat("x", 80) + "\n" // 90 runes
	id := fs.AddVirtual("test.py", []byte(src))
	bag := diag.NewBag(16)
	ctx := &Context{
		File:     fs.Get(id),
		Config:   config.Default(),
		Reporter: diag.BagReporter{Bag: bag},
	}
	LineLength{}.Check(ctx)
	if bag.Len() != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	start, _ := fs.Resolve(bag.Items()[0].Primary)
	if start.Col != 89 {
		t.Errorf("column = %d, want 89 (first rune past the limit)", start.Col)
	}
}

func TestLineLengthInsideMultilineString(t *testing.T) {
	src := "text = \"\"\"\n" + strings.Repeat("a", 95) + "\n\"\"\"\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintLineTooLong) != 1 {
		t.Fatalf("overlong line inside string literal: %v", codesOf(bag))
	}
}

func TestNamingConventions(t *testing.T) {
	src := "" +
		"def BadName():\n" +
		"    pass\n" +
		"class lower_class:\n" +
		"    pass\n" +
		"MAX_SIZE = 10\n" +
		"bad_Var = 2\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintBadFunctionName) != 1 {
		t.Errorf("function name: got %v", codesOf(bag))
	}
	if countCode(bag, diag.LintBadClassName) != 1 {
		t.Errorf("class name: got %v", codesOf(bag))
	}
	if countCode(bag, diag.LintBadVariableName) != 1 {
		t.Errorf("variable name: got %v", codesOf(bag))
	}
}

func TestNamingConstantExemptionNeedsSingleLiteral(t *testing.T) {
	// Reassigned uppercase name is not a constant.
	src := "LIMIT = 1\nLIMIT = 2\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintBadVariableName) == 0 {
		t.Fatalf("reassigned SCREAMING name not flagged: %v", codesOf(bag))
	}
}

func TestNamingOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Naming = map[string]string{"function": `^[A-Z][a-z]*$`}
	bag := lintSrc(t, "def Visit():\n    pass\n", cfg)
	if countCode(bag, diag.LintBadFunctionName) != 0 {
		t.Fatalf("override ignored: %v", codesOf(bag))
	}
}

func TestMultipleImports(t *testing.T) {
	bag := lintSrc(t, "import os, sys\n", config.Default())
	if countCode(bag, diag.LintMultipleImports) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	if countCode(bag, diag.LintUnusedImport) != 2 {
		t.Errorf("unused imports: got %v", codesOf(bag))
	}
}

func TestOperatorSpacing(t *testing.T) {
	bag := lintSrc(t, "x = 1+2\ny=3\n", config.Default())
	if n := countCode(bag, diag.LintOperatorSpacing); n != 2 {
		t.Fatalf("got %d spacing findings: %v", n, codesOf(bag))
	}
}

func TestOperatorSpacingSkipsUnaryAndKwargs(t *testing.T) {
	src := "z = -1\nresult = func(key=2)\n"
	bag := lintSrc(t, src, config.Default())
	if n := countCode(bag, diag.LintOperatorSpacing); n != 0 {
		t.Fatalf("got %d spacing findings: %v", n, codesOf(bag))
	}
}

func TestCommaSpacing(t *testing.T) {
	bag := lintSrc(t, "pair = (1 ,2)\n", config.Default())
	if n := countCode(bag, diag.LintCommaSpacing); n != 2 {
		t.Fatalf("got %d comma findings: %v", n, codesOf(bag))
	}
}

func TestParenSpacing(t *testing.T) {
	bag := lintSrc(t, "pair = ( 1, 2 )\n", config.Default())
	if n := countCode(bag, diag.LintParenSpacing); n != 2 {
		t.Fatalf("got %d paren findings: %v", n, codesOf(bag))
	}
}

func TestIndentWidth(t *testing.T) {
	bag := lintSrc(t, "def f():\n   return 1\n", config.Default())
	if countCode(bag, diag.LintBadIndentWidth) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
}

func TestTabIndent(t *testing.T) {
	bag := lintSrc(t, "def f():\n\treturn 1\n", config.Default())
	if countCode(bag, diag.LintTabIndent) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
}

func TestMixedIndent(t *testing.T) {
	bag := lintSrc(t, "def f():\n \treturn 1\n", config.Default())
	if countCode(bag, diag.LintMixedIndent) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	if countCode(bag, diag.LintTabIndent) != 0 {
		t.Errorf("mixed line also reported as tab indent: %v", codesOf(bag))
	}
}

func TestTrailingWhitespace(t *testing.T) {
	bag := lintSrc(t, "x = 1 \n", config.Default())
	if countCode(bag, diag.LintTrailingWhitespace) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	// Whitespace-only lines are blank, not trailing.
	bag = lintSrc(t, "x = 1\n   \ny = 2\n", config.Default())
	if countCode(bag, diag.LintTrailingWhitespace) != 0 {
		t.Fatalf("blank line flagged: %v", codesOf(bag))
	}
}

func TestUnusedLocalVariable(t *testing.T) {
	src := "def compute():\n    temp = 1\n    return 2\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintUnusedVariable) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}

	cfg := config.Default()
	cfg.Rules.IgnoreUnusedVariables = true
	if bag := lintSrc(t, src, cfg); countCode(bag, diag.LintUnusedVariable) != 0 {
		t.Fatalf("ignore_unused_variables not honored: %v", codesOf(bag))
	}
}

func TestUnusedModuleVariable(t *testing.T) {
	bag := lintSrc(t, "exported = 1\n", config.Default())
	if countCode(bag, diag.LintUnusedVariable) != 1 {
		t.Fatalf("module-level binding not flagged: %v", codesOf(bag))
	}
}

func TestUnusedModuleFunction(t *testing.T) {
	bag := lintSrc(t, "def unused_function():\n    return 1\n", config.Default())
	if countCode(bag, diag.LintUnusedFunction) != 1 {
		t.Fatalf("module-level function not flagged: %v", codesOf(bag))
	}
}

func TestDunderMainCallKeepsFunctionUsed(t *testing.T) {
	src := "" +
		"def main():\n" +
		"    return 0\n" +
		"if __name__ == \"__main__\":\n" +
		"    main()\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintUnusedFunction) != 0 {
		t.Fatalf("called function flagged: %v", codesOf(bag))
	}
}

func TestTupleTargetsFlaggedIndividually(t *testing.T) {
	src := "x, y, z = (1, 2, 3)\nprint(x + y)\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintUnusedVariable) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	for _, d := range bag.Items() {
		if d.Code == diag.LintUnusedVariable && !strings.Contains(d.Message, `"z"`) {
			t.Errorf("flagged wrong tuple element: %s", d.Message)
		}
	}
}

func TestClassBodyVariableAliveViaAttrRead(t *testing.T) {
	src := "" +
		"class Config:\n" +
		"    retries = 3\n" +
		"    stale = 0\n" +
		"c = Config()\n" +
		"print(c.retries)\n"
	bag := lintSrc(t, src, config.Default())
	if n := countCode(bag, diag.LintUnusedVariable); n != 1 {
		t.Fatalf("got %d unused variables: %v", n, codesOf(bag))
	}
}

func TestUnusedImportAndUse(t *testing.T) {
	bag := lintSrc(t, "import os\n", config.Default())
	if countCode(bag, diag.LintUnusedImport) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	bag = lintSrc(t, "import os\npath = os.getcwd()\n", config.Default())
	if countCode(bag, diag.LintUnusedImport) != 0 {
		t.Fatalf("used import flagged: %v", codesOf(bag))
	}
}

func TestUnusedNestedFunction(t *testing.T) {
	src := "def outer():\n    def inner():\n        pass\n    return 1\nouter()\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintUnusedFunction) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
}

func TestUnusedMethodUsesAttrReads(t *testing.T) {
	src := "" +
		"class Widget:\n" +
		"    def render(self):\n" +
		"        return 1\n" +
		"    def hidden(self):\n" +
		"        return 2\n" +
		"w = Widget()\n" +
		"w.render()\n"
	bag := lintSrc(t, src, config.Default())
	if n := countCode(bag, diag.LintUnusedMember); n != 1 {
		t.Fatalf("got %d unused members: %v", n, codesOf(bag))
	}
}

func TestUnderscoreNamesExempt(t *testing.T) {
	src := "_hidden = 1\ndef _helper():\n    _ignored = 1\n    return 2\n"
	bag := lintSrc(t, src, config.Default())
	if bag.Len() != 0 {
		t.Fatalf("got %v", codesOf(bag))
	}
}

func TestWildcardImportSilencesScope(t *testing.T) {
	src := "from os import *\ndef f():\n    maybe_bound = 1\n    return 2\n"
	bag := lintSrc(t, src, config.Default())
	if countCode(bag, diag.LintUnusedVariable) != 1 {
		// The wildcard is at module scope; function locals still check.
		t.Fatalf("got %v", codesOf(bag))
	}
}

func TestSyntaxDiagnosticsForwarded(t *testing.T) {
	bag := lintSrc(t, "def f()\n    pass\n", config.Default())
	if countCode(bag, diag.SynExpectColon) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectColon && d.Severity != diag.SevError {
			t.Errorf("forwarded severity = %v, want error", d.Severity)
		}
	}
}

type explodingRule struct{}

func (explodingRule) Name() string       { return "exploding" }
func (explodingRule) Category() string   { return "test" }
func (explodingRule) Check(ctx *Context) { panic("kaboom") }

func TestRulePanicBecomesDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 1\n"))
	file := fs.Get(id)
	bag := diag.NewBag(16)
	ctx := &Context{
		File:     file,
		Config:   config.Default(),
		Reporter: diag.BagReporter{Bag: bag},
	}
	runIsolated(ctx, explodingRule{})
	if countCode(bag, diag.LintInternal) != 1 {
		t.Fatalf("got %v", codesOf(bag))
	}
	if bag.Items()[0].Severity != diag.SevError {
		t.Errorf("severity = %v, want error", bag.Items()[0].Severity)
	}
}
