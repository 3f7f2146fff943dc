// Package driver wires the analysis pipeline: tokenize, parse, resolve
// symbols, run the rules, then sort and deduplicate the collected
// diagnostics. The per-file path is pure; the directory path adds file
// discovery, parallelism, and the on-disk result cache.
package driver

import (
	"fmt"
	"path/filepath"

	"pylens/internal/ast"
	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/lexer"
	"pylens/internal/observ"
	"pylens/internal/parser"
	"pylens/internal/rules"
	"pylens/internal/source"
	"pylens/internal/symbols"
	"pylens/internal/token"
)

// Options tunes a lint run. The zero value is usable.
type Options struct {
	// Jobs caps worker goroutines in LintDir; <=0 means GOMAXPROCS.
	Jobs int

	// Timings appends an informational timing diagnostic per file.
	Timings bool

	// Cache, when set, lets LintDir reuse diagnostics for files whose
	// content and configuration hashes match a previous run.
	Cache *DiskCache

	// Progress, when set, is called after each file finishes in LintDir.
	// Calls arrive from worker goroutines.
	Progress func(FileProgress)
}

// FileProgress is one LintDir progress event.
type FileProgress struct {
	Path   string
	Index  int // 0-based position in the discovered file list
	Total  int
	Issues int
	Cached bool
	Failed bool // file could not be loaded
}

// FileResult bundles everything one file's analysis produced. Bag is
// always non-nil and already sorted and deduplicated.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Tree   *ast.Module
	Scopes *symbols.Table
	Bag    *diag.Bag
	Timing *observ.Report
	Cached bool
}

// LintFile loads one file from disk and analyzes it. The FileSet is
// created fresh and returned so callers can resolve spans.
func LintFile(path string, cfg config.Config, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fileSet, LintSource(fileSet, id, cfg, opts), nil
}

// LintSource analyzes one already-loaded file. It never fails: lexer and
// parser recover internally and rule panics degrade to diagnostics.
func LintSource(fileSet *source.FileSet, id source.FileID, cfg config.Config, opts Options) *FileResult {
	file := fileSet.Get(id)
	timer := observ.NewTimer()

	syntax := diag.NewBag(cfg.Rules.MaxDiagnostics)
	// Lexer and parser can trip over the same spot; report-time dedup
	// keeps one entry per (code, span).
	srep := diag.NewDedupReporter(diag.BagReporter{Bag: syntax})

	idx := timer.Begin("tokenize")
	toks, indents := lexer.Tokenize(file, lexer.Options{Reporter: srep})
	timer.End(idx, fmt.Sprintf("%d tokens", len(toks)))

	idx = timer.Begin("parse")
	res := parser.Parse(file, toks, parser.Options{Reporter: srep})
	timer.End(idx, fmt.Sprintf("%d statements", len(res.Module.Body)))

	idx = timer.Begin("resolve")
	table := symbols.Resolve(res.Module)
	timer.End(idx, "")

	bag := diag.NewBag(cfg.Rules.MaxDiagnostics)
	idx = timer.Begin("rules")
	rules.Run(&rules.Context{
		File:        file,
		Tokens:      toks,
		Indents:     indents,
		Tree:        res.Module,
		Scopes:      table,
		Config:      cfg,
		SyntaxDiags: syntax.Items(),
		Reporter:    diag.BagReporter{Bag: bag},
	})
	timer.End(idx, fmt.Sprintf("%d findings", bag.Len()))

	bag.Sort()
	bag.Dedup()

	result := &FileResult{
		Path:   file.Path,
		FileID: id,
		Tokens: toks,
		Tree:   res.Module,
		Scopes: table,
		Bag:    bag,
	}
	report := timer.Report()
	result.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return result
}
