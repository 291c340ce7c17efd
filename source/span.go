// Copyright © 2025 The Whisker authors

package source

import "fmt"

// Span is a contiguous region of a source stream delimited by two positions.
type Span struct {
	Start Position
	End   Position
}

// NewSpan returns a span covering [start, end].
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// PointSpan returns a zero-length span whose end is a copy of its start.
func PointSpan(pos Position) Span {
	return Span{Start: pos, End: pos}
}

// Len returns the number of characters covered by s.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Merge returns the union of s and other: the earliest start and the latest
// end, compared by offset.
func (s Span) Merge(other Span) Span {
	merged := s
	if other.Start.Offset < merged.Start.Offset {
		merged.Start = other.Start
	}
	if other.End.Offset > merged.End.Offset {
		merged.End = other.End
	}
	return merged
}

// Contains reports whether pos lies within s, inclusive of both endpoints.
func (s Span) Contains(pos Position) bool {
	return pos.Offset >= s.Start.Offset && pos.Offset <= s.End.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
