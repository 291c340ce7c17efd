// Copyright © 2025 The Whisker authors

package story_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser"
	"github.com/whiskertales/whisker/parser/ast"
	"github.com/whiskertales/whisker/story"
)

const testScript = `@@ title: "The Cold Room"
@@ version: 2
@@ tags: [demo, short]
@include "lib/common.ws" as common

:: Start [important, priority: 1]
    You wake up in a cold room.
    * Take the sword -> Armory
    * Sleep more -> Start
    -> Hallway

:: Armory [dark]
    Racks of dull steel.
`

func buildStory(t *testing.T, src string) *story.Story {
	t.Helper()
	rep := diagnostic.NewReporter("test.ws")
	script := parser.Parse(rep, src)
	require.Zero(t, rep.Len(), rep.Summary())
	return story.FromScript(script)
}

func TestFromScript(t *testing.T) {
	s := buildStory(t, testScript)

	assert.Equal(t, "The Cold Room", s.Title)
	assert.Equal(t, 2.0, s.Metadata["version"])
	assert.Equal(t, []interface{}{"demo", "short"}, s.Metadata["tags"])

	require.Len(t, s.Includes, 1)
	assert.Equal(t, "lib/common.ws", s.Includes[0].Path)
	assert.Equal(t, "common", s.Includes[0].Alias)

	require.Len(t, s.Passages, 2)
	start := s.Passages[0]
	assert.Equal(t, "Start", start.Name)
	assert.True(t, start.HasTag("important"))
	assert.False(t, start.HasTag("dark"))
	require.Len(t, start.Tags, 2)
	assert.Equal(t, 1.0, start.Tags[1].Value)
	assert.Nil(t, start.Tags[0].Value)
}

func TestPassageLookup(t *testing.T) {
	s := buildStory(t, testScript)

	p, ok := s.Passage("Armory")
	require.True(t, ok)
	assert.True(t, p.HasTag("dark"))

	_, ok = s.Passage("Nowhere")
	assert.False(t, ok)
}

func TestChoices(t *testing.T) {
	s := buildStory(t, testScript)
	p, ok := s.Passage("Start")
	require.True(t, ok)

	choices := p.Choices()
	require.Len(t, choices, 2)
	assert.Equal(t, "Take the sword", choices[0].Text)
	assert.Equal(t, "Armory", choices[0].Target)
	assert.Equal(t, "Start", choices[1].Target)
}

func TestDuplicatePassagesKept(t *testing.T) {
	s := buildStory(t, ":: Twice\n:: Twice\n")
	assert.Len(t, s.Passages, 2)

	p, ok := s.Passage("Twice")
	require.True(t, ok)
	assert.Same(t, s.Passages[0], p, "lookup returns the first declaration")
}

func TestStatementsPassThrough(t *testing.T) {
	s := buildStory(t, ":: P\n    Some text.\n    { $seen } -> Skip\n")
	p, ok := s.Passage("P")
	require.True(t, ok)
	require.Len(t, p.Statements, 2)
	_, isText := p.Statements[0].(*ast.TextStmt)
	assert.True(t, isText)
	_, isCond := p.Statements[1].(*ast.CondStmt)
	assert.True(t, isCond)
	assert.Empty(t, p.Choices(), "conditional choices are not descended into")
}
