package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pylens/internal/config"
	"pylens/internal/diag"
	"pylens/internal/diagfmt"
	"pylens/internal/driver"
	"pylens/internal/source"
	"pylens/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.py|directory>",
	Short: "Lint Python source files",
	Long:  `Check analyzes a Python file or every *.py file under a directory and reports style, naming, unused-code, and syntax findings`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("config", "", "explicit pylens.toml path (default: walk up from the target)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "reuse results for unchanged files across runs")
	checkCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot stat %q: %w", target, err)
	}

	cfg, err := loadCheckConfig(cmd, target, info.IsDir())
	if err != nil {
		return err
	}

	opts, err := buildOptions(cmd, cfg)
	if err != nil {
		return err
	}

	var fileSet *source.FileSet
	var results []driver.FileResult
	if info.IsDir() {
		fileSet, results, err = runCheckDir(cmd, target, cfg, opts, format)
	} else {
		fileSet, results, err = runCheckFile(target, cfg, opts)
	}
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	merged := diag.NewBag(cfg.Rules.MaxDiagnostics)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()

	if err := renderDiagnostics(cmd, merged, fileSet, format); err != nil {
		return err
	}
	if !quiet && format == "pretty" {
		fmt.Fprintf(cmd.OutOrStdout(), "%d files checked, %d findings\n", len(results), merged.Len())
	}

	if merged.HasWarnings() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("found %d issues", merged.Len())
	}
	return nil
}

func loadCheckConfig(cmd *cobra.Command, target string, isDir bool) (config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	var cfg config.Config
	var err error
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		start := target
		if !isDir {
			start = filepath.Dir(target)
		}
		cfg, err = config.Resolve(start)
	}
	if err != nil {
		return config.Config{}, err
	}

	if override, ferr := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); ferr == nil && override > 0 {
		cfg.Rules.MaxDiagnostics = override
	}
	return cfg, nil
}

func buildOptions(cmd *cobra.Command, cfg config.Config) (driver.Options, error) {
	jobs, _ := cmd.Flags().GetInt("jobs")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	opts := driver.Options{Jobs: jobs, Timings: timings}

	if useCache, _ := cmd.Flags().GetBool("disk-cache"); useCache {
		cache, err := driver.OpenDiskCache("pylens")
		if err != nil {
			return opts, fmt.Errorf("cannot open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func runCheckFile(target string, cfg config.Config, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	fileSet, res, err := driver.LintFile(target, cfg, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %q: %w", target, err)
	}
	return fileSet, []driver.FileResult{*res}, nil
}

func runCheckDir(cmd *cobra.Command, dir string, cfg config.Config, opts driver.Options, format string) (*source.FileSet, []driver.FileResult, error) {
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, nil, err
	}
	// The interactive display owns stdout, so it only runs for pretty
	// output on a terminal.
	if format == "pretty" && shouldUseTUI(mode) {
		return runCheckDirTUI(dir, cfg, opts)
	}
	fileSet, results, err := driver.LintDir(context.Background(), dir, cfg, opts)
	return fileSet, results, err
}

func runCheckDirTUI(dir string, cfg config.Config, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(dir, cfg.Paths.Exclude)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan ui.Event, len(files))
	opts.Progress = func(ev driver.FileProgress) {
		events <- ui.Event{
			Path:   ev.Path,
			Issues: ev.Issues,
			Cached: ev.Cached,
			Failed: ev.Failed,
		}
	}

	prog := tea.NewProgram(ui.NewProgressModel("pylens check "+dir, files, events))

	type lintOut struct {
		fileSet *source.FileSet
		results []driver.FileResult
		err     error
	}
	done := make(chan lintOut, 1)
	go func() {
		fileSet, results, lintErr := driver.LintDir(context.Background(), dir, cfg, opts)
		close(events)
		done <- lintOut{fileSet, results, lintErr}
	}()

	if _, uiErr := prog.Run(); uiErr != nil {
		// Fall through; the lint run finishes regardless of the display.
		fmt.Fprintf(os.Stderr, "progress display failed: %v\n", uiErr)
	}
	out := <-done
	return out.fileSet, out.results, out.err
}

func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, fileSet *source.FileSet, format string) error {
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	fullPath, _ := cmd.Flags().GetBool("fullpath")

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	if format == "json" {
		return diagfmt.JSON(os.Stdout, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	}

	diagfmt.Pretty(os.Stdout, bag, fileSet, diagfmt.PrettyOpts{
		Color:      useColor(cmd, os.Stdout),
		PathMode:   pathMode,
		ShowNotes:  withNotes,
		ShowSource: true,
	})
	return nil
}
