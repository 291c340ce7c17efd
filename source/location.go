// Copyright © 2025 The Whisker authors

package source

import "fmt"

// UnknownPath is the sentinel path used when a location has no file.
const UnknownPath = "<unknown>"

// Location names a span within a particular file.
type Location struct {
	Path string
	Span Span
}

// NewLocation returns a Location for path and span.  An empty path is
// replaced with UnknownPath.
func NewLocation(path string, span Span) Location {
	if path == "" {
		path = UnknownPath
	}
	return Location{Path: path, Span: span}
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%s", l.Path, l.Span.Start)
}
