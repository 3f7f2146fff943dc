package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestLintSourceSortsAndDedups(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("def f()\n    temp = 1\n"))
	res := LintSource(fs, id, config.Default(), Options{})
	if res.Bag.Len() == 0 {
		t.Fatal("expected diagnostics")
	}
	items := res.Bag.Items()
	for i := 1; i < len(items); i++ {
		if items[i].Primary.Start < items[i-1].Primary.Start {
			t.Fatalf("diagnostics not sorted: %v before %v", items[i-1].Primary, items[i].Primary)
		}
	}
	if !hasCode(res.Bag, diag.SynExpectColon) {
		t.Errorf("missing syntax diagnostic, got %v", items)
	}
	if !hasCode(res.Bag, diag.LintUnusedVariable) {
		t.Errorf("missing unused-variable diagnostic, got %v", items)
	}
}

func TestLintSourceTimings(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 1\n"))
	res := LintSource(fs, id, config.Default(), Options{Timings: true})
	if !hasCode(res.Bag, diag.ObsTimings) {
		t.Fatal("timing diagnostic missing")
	}
	if res.Timing == nil || len(res.Timing.Phases) == 0 {
		t.Fatal("timing report missing")
	}
}

func TestLintFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := "import os, sys\n" +
		"\n" +
		"MAX_RETRIES = 3\n" +
		"\n" +
		"\n" +
		"def fetch(url):\n" +
		"    attempts = 0\n" +
		"    return os.getcwd() + url\n" +
		"\n" +
		"\n" +
		"class connection:\n" +
		"    def close(self):\n" +
		"        pass\n" +
		"\n" +
		"\n" +
		"print(fetch(\"/\" * MAX_RETRIES))\n"
	writeFile(t, dir, "svc.py", src)

	fs, res, err := LintFile(filepath.Join(dir, "svc.py"), config.Default(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if fs == nil {
		t.Fatal("nil file set")
	}

	want := []diag.Code{
		diag.LintBadClassName,    // connection
		diag.LintMultipleImports, // import os, sys
		diag.LintUnusedImport,    // sys
		diag.LintUnusedVariable,  // attempts
		diag.LintUnusedMember,    // close
	}
	for _, code := range want {
		if !hasCode(res.Bag, code) {
			t.Errorf("missing %s in %v", code.ID(), res.Bag.Items())
		}
	}
	if res.Bag.Len() != len(want) {
		t.Errorf("got %d diagnostics, want %d: %v", res.Bag.Len(), len(want), res.Bag.Items())
	}
}

func TestLintFileMissing(t *testing.T) {
	if _, _, err := LintFile(filepath.Join(t.TempDir(), "nope.py"), config.Default(), Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLintDirOrdersResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", "x = 1\n")
	writeFile(t, dir, "a.py", "y = 2\n")
	writeFile(t, dir, "sub/c.py", "z = 3\n")

	_, results, err := LintDir(context.Background(), dir, config.Default(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	want := []string{"a.py", "b.py", filepath.Join("sub", "c.py")}
	for i, w := range want {
		if results[i].Path != w {
			t.Errorf("results[%d].Path = %q, want %q", i, results[i].Path, w)
		}
	}
}

func TestLintDirExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.py", "x = 1\n")
	writeFile(t, dir, "vendor/skip.py", "y = 2\n")
	writeFile(t, dir, "gen_skip.py", "z = 3\n")

	cfg := config.Default()
	cfg.Paths.Exclude = []string{"vendor", "gen_*.py"}
	_, results, err := LintDir(context.Background(), dir, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Path != "keep.py" {
		t.Fatalf("got %v results", len(results))
	}
}

func TestLintDirProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "b.py", "y = 2\n")

	var mu sync.Mutex
	var seen []FileProgress
	opts := Options{
		Jobs: 1,
		Progress: func(ev FileProgress) {
			mu.Lock()
			seen = append(seen, ev)
			mu.Unlock()
		},
	}
	if _, _, err := LintDir(context.Background(), dir, config.Default(), opts); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Fatalf("got %d progress events, want 2", len(seen))
	}
	for _, ev := range seen {
		if ev.Total != 2 {
			t.Errorf("event total = %d, want 2", ev.Total)
		}
	}
}

func TestLintDirCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := LintDir(ctx, dir, config.Default(), Options{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestTokenizeFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 1\n"))
	res := TokenizeFile(fs, id, config.Default())
	if len(res.Tokens) == 0 {
		t.Fatal("no tokens")
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}
