package driver

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/source"
)

// ListFiles returns the sorted relative paths of the Python files a
// LintDir call over the same directory and excludes would analyze.
func ListFiles(dir string, excludes []string) ([]string, error) {
	return listPyFiles(dir, excludes)
}

// listPyFiles returns the sorted relative paths of all *.py files under
// dir, minus those matched by the exclude patterns.
func listPyFiles(dir string, excludes []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if excluded(rel, excludes) && rel != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".py") {
			return nil
		}
		if excluded(rel, excludes) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// excluded matches a relative path against the configured patterns. A
// pattern matches the whole path, any single path component, or acts as
// a directory prefix.
func excluded(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range patterns {
		pat = strings.TrimSuffix(filepath.ToSlash(pat), "/")
		if pat == "" {
			continue
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		for _, part := range strings.Split(rel, "/") {
			if ok, _ := path.Match(pat, part); ok {
				return true
			}
		}
		if strings.HasPrefix(rel, pat+"/") {
			return true
		}
	}
	return false
}

// LintDir discovers, loads, and analyzes every Python file under dir.
// Results come back in discovery order regardless of which worker
// finished first. The error return covers walking and cancellation only;
// per-file problems surface as diagnostics in that file's bag.
func LintDir(ctx context.Context, dir string, cfg config.Config, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listPyFiles(dir, cfg.Paths.Exclude)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Loading up front keeps FileSet mutation out of the workers; the
	// set is read-only while they run.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, rel := range files {
		id, loadErr := fileSet.Load(filepath.Join(dir, rel))
		if loadErr != nil {
			loadErrors[rel] = loadErr
			continue
		}
		fileIDs[rel] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	cfgDigest := cfg.Digest()
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, rel := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[rel]; failed {
				bag := diag.NewBag(cfg.Rules.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: rel, Bag: bag}
				emitProgress(opts, FileProgress{
					Path: rel, Index: i, Total: len(files), Failed: true,
				})
				return nil
			}

			id := fileIDs[rel]
			results[i] = *lintOneFile(fileSet, id, rel, cfg, cfgDigest, opts)
			emitProgress(opts, FileProgress{
				Path:   rel,
				Index:  i,
				Total:  len(files),
				Issues: results[i].Bag.Len(),
				Cached: results[i].Cached,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// lintOneFile runs the cached or full pipeline for one file. A panic
// anywhere inside degrades to a single internal diagnostic so one broken
// file cannot take down the run.
func lintOneFile(fileSet *source.FileSet, id source.FileID, rel string, cfg config.Config, cfgDigest string, opts Options) (result *FileResult) {
	defer func() {
		if p := recover(); p != nil {
			bag := diag.NewBag(cfg.Rules.MaxDiagnostics)
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.LintInternal,
				Message:  "analysis panicked: " + panicText(p),
				Primary:  source.Span{File: id},
			})
			result = &FileResult{Path: rel, FileID: id, Bag: bag}
		}
	}()

	file := fileSet.Get(id)
	key := CacheKey(file.Hash, cfgDigest)

	if opts.Cache != nil {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			return &FileResult{
				Path:   rel,
				FileID: id,
				Bag:    payloadToBag(&payload, id, cfg.Rules.MaxDiagnostics),
				Cached: true,
			}
		}
	}

	res := LintSource(fileSet, id, cfg, opts)
	res.Path = rel
	if opts.Cache != nil {
		// Best effort; a write failure only costs the next run a miss.
		_ = opts.Cache.Put(key, resultToPayload(rel, res.Bag))
	}
	return res
}

func emitProgress(opts Options, ev FileProgress) {
	if opts.Progress == nil {
		return
	}
	opts.Progress(ev)
}

func panicText(p any) string {
	if err, ok := p.(error); ok {
		return err.Error()
	}
	if s, ok := p.(string); ok {
		return s
	}
	return "unknown panic"
}
