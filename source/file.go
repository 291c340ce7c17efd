// Copyright © 2025 The Whisker authors

package source

import "strings"

// File pairs a path with script content and answers line-oriented queries
// for diagnostic rendering.
type File struct {
	Path    string
	Content string

	lines []string
}

// NewFile returns a File for the given path and content.
func NewFile(path, content string) *File {
	f := &File{Path: path, Content: content}
	if content != "" {
		f.lines = strings.Split(content, "\n")
		// A trailing newline does not start a new line.
		if n := len(f.lines); n > 0 && f.lines[n-1] == "" && strings.HasSuffix(content, "\n") {
			f.lines = f.lines[:n-1]
		}
	}
	return f
}

// Line returns the 1-indexed line n without its trailing newline.  The
// second return value is false when n is outside the file.
func (f *File) Line(n int) (string, bool) {
	if n < 1 || n > len(f.lines) {
		return "", false
	}
	return f.lines[n-1], true
}

// LineCount returns the number of lines in the file.  A file with empty
// content has zero lines.
func (f *File) LineCount() int {
	return len(f.lines)
}

// ContextLine is one line of a context window around a position.
type ContextLine struct {
	Number int
	Text   string
}

// Context returns a window of up to n lines before and after the line
// containing pos, clamped to the bounds of the file.
func (f *File) Context(pos Position, n int) []ContextLine {
	if len(f.lines) == 0 {
		return nil
	}
	first := pos.Line - n
	if first < 1 {
		first = 1
	}
	last := pos.Line + n
	if last > len(f.lines) {
		last = len(f.lines)
	}
	if first > last {
		return nil
	}
	window := make([]ContextLine, 0, last-first+1)
	for i := first; i <= last; i++ {
		window = append(window, ContextLine{Number: i, Text: f.lines[i-1]})
	}
	return window
}
