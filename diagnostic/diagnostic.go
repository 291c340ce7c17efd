// Copyright © 2025 The Whisker authors

// Package diagnostic defines the closed error-code table for the Whisker
// Script toolchain and renders accumulated diagnostics as plain text,
// structured records for editor tooling, or annotated source excerpts.
package diagnostic

import (
	"fmt"

	"github.com/whiskertales/whisker/source"
)

// Severity classifies how serious a diagnostic is.  Errors block further
// processing of the affected construct; warnings and hints are advisory.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported problem.  Message and Suggestion are
// expanded from the code table at construction time; Length is the number of
// characters to underline (0 means a single caret).
type Diagnostic struct {
	Code       Code
	Severity   Severity
	Message    string
	Pos        source.Position
	Length     int
	Suggestion string
}

// New builds a Diagnostic for code at pos, expanding the table template with
// args.  Unknown codes produce a generic unknown-error diagnostic.
func New(code Code, pos source.Position, args ...interface{}) Diagnostic {
	entry := Lookup(code)
	return Diagnostic{
		Code:       code,
		Severity:   entry.Severity,
		Message:    expand(entry.Template, args),
		Pos:        pos,
		Suggestion: entry.Suggestion,
	}
}

// NewSpan builds a Diagnostic covering span.
func NewSpan(code Code, span source.Span, args ...interface{}) Diagnostic {
	d := New(code, span.Start, args...)
	d.Length = span.Len()
	return d
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Pos, d.Severity, d.Code, d.Message)
}
