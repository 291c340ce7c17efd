// Copyright © 2025 The Whisker authors

package diagnostic

import (
	"encoding/json"
	"io"
)

// Structured is the machine-consumable form of a diagnostic.  The field set
// and JSON names are the stable contract for editor and IDE tooling; they
// must not be renamed.
type Structured struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Severity   string             `json:"severity"`
	Location   StructuredLocation `json:"location"`
	Suggestion string             `json:"suggestion,omitempty"`
}

// StructuredLocation names where a diagnostic points.
type StructuredLocation struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	File   string `json:"file"`
}

// Structure converts d to its structured form using the reporter's path.
func Structure(rep *Reporter, d Diagnostic) Structured {
	return Structured{
		Code:     string(d.Code),
		Message:  d.Message,
		Severity: d.Severity.String(),
		Location: StructuredLocation{
			Line:   d.Pos.Line,
			Column: d.Pos.Column,
			File:   rep.Path(),
		},
		Suggestion: d.Suggestion,
	}
}

// StructureAll converts every accumulated diagnostic.
func StructureAll(rep *Reporter) []Structured {
	out := make([]Structured, 0, rep.Len())
	for _, d := range rep.Diagnostics() {
		out = append(out, Structure(rep, d))
	}
	return out
}

// WriteJSON writes the structured diagnostics to w as an indented JSON
// array.
func WriteJSON(w io.Writer, rep *Reporter) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(StructureAll(rep))
}
