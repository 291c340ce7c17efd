// Copyright © 2025 The Whisker authors

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionAdvance(t *testing.T) {
	p := StartPosition()
	p = p.Advance('a')
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, p)
	p = p.Advance('\n')
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 2}, p)
}

func TestPositionAdvanceTab(t *testing.T) {
	tests := []struct {
		column int
		want   int
	}{
		{1, 9},
		{3, 9},
		{8, 9},
		{9, 17},
		{16, 17},
		{17, 25},
	}
	for _, test := range tests {
		p := Position{Line: 1, Column: test.column, Offset: 0}
		next := p.Advance('\t')
		assert.Equal(t, test.want, next.Column, "tab from column %d", test.column)
		assert.Equal(t, 1, next.Offset)
	}
}

func TestPositionImmutable(t *testing.T) {
	p := StartPosition()
	_ = p.Advance('x')
	assert.Equal(t, StartPosition(), p)
}

func TestSpanMerge(t *testing.T) {
	a := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 5, Offset: 4},
	}
	b := Span{
		Start: Position{Line: 1, Column: 3, Offset: 2},
		End:   Position{Line: 2, Column: 2, Offset: 9},
	}
	m := a.Merge(b)
	assert.Equal(t, 0, m.Start.Offset)
	assert.Equal(t, 9, m.End.Offset)
	// Merge is symmetric.
	assert.Equal(t, m, b.Merge(a))
}

func TestSpanContains(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 2, Offset: 1},
		End:   Position{Line: 1, Column: 6, Offset: 5},
	}
	assert.True(t, s.Contains(s.Start))
	assert.True(t, s.Contains(s.End))
	assert.True(t, s.Contains(Position{Line: 1, Column: 4, Offset: 3}))
	assert.False(t, s.Contains(Position{Line: 1, Column: 1, Offset: 0}))
	assert.False(t, s.Contains(Position{Line: 1, Column: 7, Offset: 6}))
	assert.Equal(t, 4, s.Len())
}

func TestPointSpan(t *testing.T) {
	p := Position{Line: 3, Column: 7, Offset: 20}
	s := PointSpan(p)
	assert.Equal(t, p, s.Start)
	assert.Equal(t, p, s.End)
	assert.Equal(t, 0, s.Len())
}

func TestFileLines(t *testing.T) {
	f := NewFile("story.ws", "first\nsecond\nthird\n")
	assert.Equal(t, 3, f.LineCount())

	line, ok := f.Line(2)
	require.True(t, ok)
	assert.Equal(t, "second", line)

	_, ok = f.Line(0)
	assert.False(t, ok)
	_, ok = f.Line(4)
	assert.False(t, ok)
}

func TestFileEmpty(t *testing.T) {
	f := NewFile("empty.ws", "")
	assert.Equal(t, 0, f.LineCount())
	_, ok := f.Line(1)
	assert.False(t, ok)
	assert.Nil(t, f.Context(Position{Line: 1, Column: 1}, 2))
}

func TestFileContext(t *testing.T) {
	f := NewFile("story.ws", "a\nb\nc\nd\ne")
	window := f.Context(Position{Line: 1, Column: 1, Offset: 0}, 2)
	require.Len(t, window, 3)
	assert.Equal(t, 1, window[0].Number)
	assert.Equal(t, "a", window[0].Text)
	assert.Equal(t, "c", window[2].Text)

	window = f.Context(Position{Line: 5, Column: 1, Offset: 8}, 1)
	require.Len(t, window, 2)
	assert.Equal(t, 4, window[0].Number)
	assert.Equal(t, 5, window[1].Number)
}

func TestLocationDefaultPath(t *testing.T) {
	loc := NewLocation("", PointSpan(StartPosition()))
	assert.Equal(t, UnknownPath, loc.Path)
	assert.Equal(t, "<unknown>:1:1", loc.String())
}
