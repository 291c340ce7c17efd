// Copyright © 2025 The Whisker authors

// Package source provides source-position tracking for the Whisker Script
// toolchain.  Positions, spans, files, and locations are small immutable
// value types shared by the lexer, parser, and diagnostic reporter.
package source

import "fmt"

// tabWidth is the tab stop interval used when advancing over a tab rune.
const tabWidth = 8

// Position identifies a single character in a source stream.  Line and
// Column are 1-based; Offset is a 0-based character count from the start of
// the stream.
type Position struct {
	Line   int
	Column int
	Offset int
}

// StartPosition returns the position of the first character of a stream.
func StartPosition() Position {
	return Position{Line: 1, Column: 1, Offset: 0}
}

// Advance returns the position following p after consuming c.  A newline
// moves to column 1 of the next line.  A tab advances the column to one past
// the next multiple-of-8 boundary (column 3 advances to 9, column 9 to 17).
// Every other character advances the column by one.  The offset always
// advances by one; p itself is unchanged.
func (p Position) Advance(c rune) Position {
	next := Position{Line: p.Line, Column: p.Column + 1, Offset: p.Offset + 1}
	switch c {
	case '\n':
		next.Line = p.Line + 1
		next.Column = 1
	case '\t':
		next.Column = ((p.Column-1)/tabWidth+1)*tabWidth + 1
	}
	return next
}

// Before reports whether p precedes q in the stream.
func (p Position) Before(q Position) bool {
	return p.Offset < q.Offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
