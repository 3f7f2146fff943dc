package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pylens/internal/diag"
	"pylens/internal/source"
)

// Pretty renders a sorted bag in the classic compiler shape:
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// Notes follow the same shape indented, when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col,
		severityLabel(d.Severity, opts.Color),
		codeLabel(d.Code, opts.Color),
		d.Message)

	if opts.ShowSource {
		printSourceContext(w, fs, d.Primary, opts.Color)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(fs, n.Span.File, opts.PathMode),
				nstart.Line, nstart.Col, n.Msg)
		}
	}
}

// printSourceContext shows the first line of the span with a caret run
// underneath. Underline width follows display width so wide runes and
// tabs stay aligned.
func printSourceContext(w io.Writer, fs *source.FileSet, sp source.Span, colored bool) {
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := file.GetLine(start.Line)
	// Byte offset within the line; Col counts runes and cannot slice.
	byteCol := sp.Start - file.LineStart(start.Line)
	if line == "" && byteCol > 0 {
		return
	}

	expanded := strings.ReplaceAll(line, "\t", "    ")
	fmt.Fprintf(w, "    %s\n", expanded)

	head := line
	if int(byteCol) <= len(line) {
		head = line[:byteCol]
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(head, "\t", "    "))

	span := sp.Len()
	if end.Line != start.Line {
		// Multi-line span: underline to the end of the first line.
		span = uint32(len(line)) - byteCol
	}
	underWidth := 1
	if int(byteCol)+int(span) <= len(line) {
		spanned := line[byteCol : byteCol+span]
		underWidth = max(1, runewidth.StringWidth(spanned))
	}

	underline := "^" + strings.Repeat("~", underWidth-1)
	if colored {
		underline = color.New(color.FgHiRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}

func codeLabel(code diag.Code, colored bool) string {
	id := code.ID()
	if !colored {
		return id
	}
	return color.New(color.Bold).Sprint(id)
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative, PathModeAuto:
		if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return f.Path
	}
	return f.Path
}
