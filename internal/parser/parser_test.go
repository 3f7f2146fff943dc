package parser

import (
	"testing"

	"pylens/internal/ast"
	"pylens/internal/diag"
	"pylens/internal/lexer"
	"pylens/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(128)
	rep := diag.BagReporter{Bag: bag}
	toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	res := Parse(file, toks, Options{Reporter: rep})
	if res.Module == nil {
		t.Fatalf("Parse returned nil module for %q", src)
	}
	return res.Module, bag
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
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

func TestSimpleFunction(t *testing.T) {
	mod, bag := parseSrc(t, "def add(a, b=1):\n    return a + b\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	if len(mod.Body) != 1 {
		t.Fatalf("body = %d statements, want 1", len(mod.Body))
	}
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionDef", mod.Body[0])
	}
	if fn.Name.Name != "add" {
		t.Errorf("name = %q, want add", fn.Name.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if fn.Params[1].Default == nil {
		t.Error("second parameter lost its default")
	}
	if len(fn.Body) != 1 {
		t.Fatalf("function body = %d statements, want 1", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.Return); !ok {
		t.Errorf("function body statement is %T, want *ast.Return", fn.Body[0])
	}
}

func TestInlineSuite(t *testing.T) {
	mod, bag := parseSrc(t, "if x: y = 1; z = 2\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st, ok := mod.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("statement is %T, want *ast.If", mod.Body[0])
	}
	if len(st.Body) != 2 {
		t.Errorf("inline suite has %d statements, want 2", len(st.Body))
	}
}

func TestMissingColonKeepsBody(t *testing.T) {
	mod, bag := parseSrc(t, "if True\n    x = 1\n")
	if got := countCode(bag, diag.SynExpectColon); got != 1 {
		t.Fatalf("SynExpectColon reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", codesOf(bag))
	}
	st, ok := mod.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("statement is %T, want *ast.If", mod.Body[0])
	}
	if len(st.Body) != 1 {
		t.Errorf("body was not attached: %d statements", len(st.Body))
	}
}

func TestMissingColonClass(t *testing.T) {
	mod, bag := parseSrc(t, "class MissingColon\n    def method(self):\n        pass\n")
	if got := countCode(bag, diag.SynExpectColon); got != 1 {
		t.Fatalf("SynExpectColon reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
	cls, ok := mod.Body[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ClassDef", mod.Body[0])
	}
	if len(cls.Body) != 1 {
		t.Errorf("class body was not attached: %d statements", len(cls.Body))
	}
}

func TestElifElseChain(t *testing.T) {
	mod, bag := parseSrc(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.If)
	if len(st.Orelse) != 1 {
		t.Fatalf("orelse = %d statements, want nested elif", len(st.Orelse))
	}
	inner, ok := st.Orelse[0].(*ast.If)
	if !ok {
		t.Fatalf("elif branch is %T, want nested *ast.If", st.Orelse[0])
	}
	if len(inner.Orelse) != 1 {
		t.Errorf("else branch lost: %d statements", len(inner.Orelse))
	}
}

func TestDecoratorOrphan(t *testing.T) {
	_, bag := parseSrc(t, "@decorator\nx = 1\n")
	if got := countCode(bag, diag.SynDecoratorOrphan); got != 1 {
		t.Fatalf("SynDecoratorOrphan reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
}

func TestDecoratedFunction(t *testing.T) {
	mod, bag := parseSrc(t, "@app.route('/x')\ndef handler():\n    pass\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	fn := mod.Body[0].(*ast.FunctionDef)
	if len(fn.Decorators) != 1 {
		t.Errorf("decorators = %d, want 1", len(fn.Decorators))
	}
}

func TestTryWithoutHandler(t *testing.T) {
	_, bag := parseSrc(t, "try:\n    x = 1\n")
	if got := countCode(bag, diag.SynTryWithoutHandler); got != 1 {
		t.Fatalf("SynTryWithoutHandler reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
}

func TestTryFinallyIsFine(t *testing.T) {
	_, bag := parseSrc(t, "try:\n    x = 1\nfinally:\n    y = 2\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
}

func TestTryExceptAs(t *testing.T) {
	mod, bag := parseSrc(t, "try:\n    x = 1\nexcept ValueError as e:\n    raise\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Try)
	if len(st.Handlers) != 1 {
		t.Fatalf("handlers = %d, want 1", len(st.Handlers))
	}
	if st.Handlers[0].Name == nil || st.Handlers[0].Name.Name != "e" {
		t.Error("handler binding lost")
	}
}

func TestBadComparison(t *testing.T) {
	mod, bag := parseSrc(t, "if x =< 2:\n    pass\n")
	if got := countCode(bag, diag.SynBadComparison); got != 1 {
		t.Fatalf("SynBadComparison reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.If)
	if _, ok := st.Cond.(*ast.BinOp); !ok {
		t.Errorf("condition is %T, want *ast.BinOp", st.Cond)
	}
	if len(st.Body) != 1 {
		t.Errorf("body was not attached")
	}
}

func TestSpacedEqualLessIsNotFlagged(t *testing.T) {
	// `x = < 2` is nonsense but not the `=<` typo; it must not produce
	// the invalid-comparison code.
	_, bag := parseSrc(t, "x = < 2\n")
	if got := countCode(bag, diag.SynBadComparison); got != 0 {
		t.Errorf("SynBadComparison reported for spaced tokens")
	}
	if bag.Len() == 0 {
		t.Error("expected some diagnostic for a malformed line")
	}
}

func TestChainedAssign(t *testing.T) {
	mod, bag := parseSrc(t, "a = b = 1\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	if len(st.Targets) != 2 {
		t.Errorf("targets = %d, want 2", len(st.Targets))
	}
}

func TestTupleAssign(t *testing.T) {
	mod, bag := parseSrc(t, "x, y, z = (1, 2, 3)\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	tup, ok := st.Targets[0].(*ast.Tuple)
	if !ok {
		t.Fatalf("target is %T, want *ast.Tuple", st.Targets[0])
	}
	if len(tup.Elts) != 3 {
		t.Errorf("tuple target has %d elements, want 3", len(tup.Elts))
	}
}

func TestAugAssign(t *testing.T) {
	mod, bag := parseSrc(t, "total += 1\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	if st.Aug != "+=" {
		t.Errorf("aug = %q, want +=", st.Aug)
	}
}

func TestAnnotatedAssign(t *testing.T) {
	mod, bag := parseSrc(t, "count: int = 5\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	if st.Ann == nil {
		t.Error("annotation lost")
	}
	if st.Value == nil {
		t.Error("value lost")
	}
}

func TestImports(t *testing.T) {
	mod, bag := parseSrc(t, "import os, sys\nfrom os.path import join as j, split\nfrom . import local\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	imp := mod.Body[0].(*ast.Import)
	if len(imp.Names) != 2 {
		t.Fatalf("import names = %d, want 2", len(imp.Names))
	}
	frm := mod.Body[1].(*ast.ImportFrom)
	if frm.Module.Name != "os.path" {
		t.Errorf("module = %q, want os.path", frm.Module.Name)
	}
	if frm.Names[0].Bound().Name != "j" {
		t.Errorf("alias binding = %q, want j", frm.Names[0].Bound().Name)
	}
	rel := mod.Body[2].(*ast.ImportFrom)
	if rel.Dots != 1 {
		t.Errorf("relative dots = %d, want 1", rel.Dots)
	}
}

func TestForLoop(t *testing.T) {
	mod, bag := parseSrc(t, "for i in range(10):\n    print(i)\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.For)
	if _, ok := st.Target.(*ast.Name); !ok {
		t.Errorf("target is %T, want *ast.Name", st.Target)
	}
	if _, ok := st.Iter.(*ast.Call); !ok {
		t.Errorf("iter is %T, want *ast.Call", st.Iter)
	}
}

func TestForTupleTarget(t *testing.T) {
	mod, bag := parseSrc(t, "for k, v in items:\n    pass\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.For)
	tup, ok := st.Target.(*ast.Tuple)
	if !ok {
		t.Fatalf("target is %T, want *ast.Tuple", st.Target)
	}
	if len(tup.Elts) != 2 {
		t.Errorf("target tuple has %d elements, want 2", len(tup.Elts))
	}
}

func TestWithAs(t *testing.T) {
	mod, bag := parseSrc(t, "with open(path) as fh:\n    data = fh.read()\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.With)
	if len(st.Items) != 1 || st.Items[0].As == nil {
		t.Fatal("with item binding lost")
	}
}

func TestComprehension(t *testing.T) {
	mod, bag := parseSrc(t, "evens = [x for x in nums if x % 2 == 0]\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	comp, ok := st.Value.(*ast.Comprehension)
	if !ok {
		t.Fatalf("value is %T, want *ast.Comprehension", st.Value)
	}
	if len(comp.Clauses) != 1 || len(comp.Clauses[0].Ifs) != 1 {
		t.Error("comprehension clauses lost")
	}
}

func TestBrokenComprehensionRecovers(t *testing.T) {
	mod, bag := parseSrc(t, "bad = [x for x in range(10) if x % 2 == 0 for]\nok = 1\n")
	if bag.Len() == 0 {
		t.Fatal("expected diagnostics for dangling 'for'")
	}
	if len(mod.Body) != 2 {
		t.Fatalf("body = %d statements, want the broken line plus the next one", len(mod.Body))
	}
	if _, ok := mod.Body[1].(*ast.Assign); !ok {
		t.Errorf("statement after broken line is %T, want *ast.Assign", mod.Body[1])
	}
}

func TestUnclosedParenRecovery(t *testing.T) {
	mod, bag := parseSrc(t, "result = ((1 + 2) * 3\nclass Later:\n    pass\n")
	if got := countCode(bag, diag.SynUnclosedParen); got != 1 {
		t.Fatalf("SynUnclosedParen reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
	if len(mod.Body) != 2 {
		t.Fatalf("body = %d statements, want 2", len(mod.Body))
	}
	if _, ok := mod.Body[1].(*ast.ClassDef); !ok {
		t.Errorf("statement after unclosed paren is %T, want *ast.ClassDef", mod.Body[1])
	}
}

func TestPy2PrintReported(t *testing.T) {
	mod, bag := parseSrc(t, "print \"Hello\"\nx = 1\n")
	if bag.Len() == 0 {
		t.Fatal("expected a diagnostic for print without parentheses")
	}
	if len(mod.Body) < 2 {
		t.Fatalf("later statements were lost: %d", len(mod.Body))
	}
	last := mod.Body[len(mod.Body)-1]
	if _, ok := last.(*ast.Assign); !ok {
		t.Errorf("last statement is %T, want *ast.Assign", last)
	}
}

func TestGarbageStillYieldsModule(t *testing.T) {
	mod, bag := parseSrc(t, "$$$ ??? )))\n&&&\n")
	if bag.Len() == 0 {
		t.Fatal("expected diagnostics for garbage input")
	}
	if mod == nil || len(mod.Body) == 0 {
		t.Fatal("garbage input must still produce a module with error nodes")
	}
}

func TestMissingIndentedBlock(t *testing.T) {
	mod, bag := parseSrc(t, "if x:\npass\n")
	if got := countCode(bag, diag.SynExpectIndent); got != 1 {
		t.Fatalf("SynExpectIndent reported %d times, want 1 (all: %v)", got, codesOf(bag))
	}
	if len(mod.Body) != 2 {
		t.Fatalf("body = %d statements, want the if plus the stray pass", len(mod.Body))
	}
}

func TestMalformedParamsKeepDefinition(t *testing.T) {
	mod, bag := parseSrc(t, "def broken(x, y:\nz = 1\n")
	if countCode(bag, diag.SynBadParamList) == 0 {
		t.Fatalf("expected SynBadParamList, got %v", codesOf(bag))
	}
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionDef", mod.Body[0])
	}
	if fn.Name.Name != "broken" {
		t.Errorf("name = %q, want broken", fn.Name.Name)
	}
}

func TestLambdaAndTernary(t *testing.T) {
	mod, bag := parseSrc(t, "f = lambda a, b=2: a if a > b else b\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	lam, ok := st.Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("value is %T, want *ast.Lambda", st.Value)
	}
	if len(lam.Params) != 2 {
		t.Errorf("lambda params = %d, want 2", len(lam.Params))
	}
	if _, ok := lam.Body.(*ast.IfExp); !ok {
		t.Errorf("lambda body is %T, want *ast.IfExp", lam.Body)
	}
}

func TestMethodCallChain(t *testing.T) {
	mod, bag := parseSrc(t, "value = obj.attr.method(1, key=other)[0]\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(bag))
	}
	st := mod.Body[0].(*ast.Assign)
	if _, ok := st.Value.(*ast.Subscript); !ok {
		t.Errorf("value is %T, want *ast.Subscript", st.Value)
	}
}

func TestMaxErrorsCapsReports(t *testing.T) {
	src := ""
	for i := 0; i < 50; i++ {
		src += "$$$\n"
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	toks, _ := lexer.Tokenize(file, lexer.Options{})
	res := Parse(file, toks, Options{Reporter: rep, MaxErrors: 10})
	if !res.HadError {
		t.Fatal("HadError = false")
	}
	if bag.Len() > 10 {
		t.Errorf("reported %d diagnostics, cap is 10", bag.Len())
	}
}
