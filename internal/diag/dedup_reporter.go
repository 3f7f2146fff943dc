package diag

import "pylens/internal/source"

type dedupKey struct {
	code  Code
	file  source.FileID
	start uint32
	end   uint32
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code and primary span. Duplicates are merged, not hidden:
// the first occurrence always passes through.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{
		code:  code,
		file:  primary.File,
		start: primary.Start,
		end:   primary.End,
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}
