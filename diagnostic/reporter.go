// Copyright © 2025 The Whisker authors

package diagnostic

import (
	"fmt"
	"strings"

	"github.com/whiskertales/whisker/source"
)

// Reporter accumulates diagnostics from a single pass over one source
// stream.  Attaching a source.File enables the renderers to show excerpts;
// a reporter with no file still renders locations and messages.
type Reporter struct {
	file  *source.File
	path  string
	diags []Diagnostic
}

// NewReporter returns an empty Reporter for the named stream.
func NewReporter(path string) *Reporter {
	if path == "" {
		path = source.UnknownPath
	}
	return &Reporter{path: path}
}

// AttachFile associates source content with the reporter for excerpt
// rendering.  The file's path replaces the reporter's path.
func (r *Reporter) AttachFile(f *source.File) {
	r.file = f
	if f != nil && f.Path != "" {
		r.path = f.Path
	}
}

// File returns the attached source file, or nil.
func (r *Reporter) File() *source.File { return r.file }

// Path returns the name of the stream being reported on.
func (r *Reporter) Path() string { return r.path }

// Report appends d to the accumulated diagnostics.
func (r *Reporter) Report(d Diagnostic) {
	r.diags = append(r.diags, d)
}

// Reportf builds a diagnostic for code at pos and appends it.
func (r *Reporter) Reportf(code Code, pos source.Position, args ...interface{}) {
	r.Report(New(code, pos, args...))
}

// ReportSpan builds a diagnostic covering span and appends it.
func (r *Reporter) ReportSpan(code Code, span source.Span, args ...interface{}) {
	r.Report(NewSpan(code, span, args...))
}

// Diagnostics returns the accumulated diagnostics in report order, which for
// a single left-to-right pass is source-position order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// Len returns the number of accumulated diagnostics.
func (r *Reporter) Len() int { return len(r.diags) }

// Count returns the number of diagnostics with the given severity.
func (r *Reporter) Count(sev Severity) int {
	n := 0
	for _, d := range r.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any accumulated diagnostic is an error.
func (r *Reporter) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Summary returns a human-readable count by severity, e.g.
// "2 errors, 1 warning".  An empty reporter summarizes as "no problems".
func (r *Reporter) Summary() string {
	if len(r.diags) == 0 {
		return "no problems"
	}
	var parts []string
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityHint} {
		n := r.Count(sev)
		if n == 0 {
			continue
		}
		label := sev.String()
		if n != 1 {
			label += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, label))
	}
	return strings.Join(parts, ", ")
}
