// Copyright © 2025 The Whisker authors

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/ast"
)

func parse(t *testing.T, src string, opts ...Option) (*ast.Script, *diagnostic.Reporter) {
	t.Helper()
	rep := diagnostic.NewReporter("test.ws")
	script := Parse(rep, src, opts...)
	require.NotNil(t, script)
	return script, rep
}

func TestParseEmptyInputs(t *testing.T) {
	for _, src := range []string{"", "   \n\t\n", "// just a comment\n// and another\n"} {
		script, rep := parse(t, src)
		assert.Empty(t, script.Metadata, "source %q", src)
		assert.Empty(t, script.Includes, "source %q", src)
		assert.Empty(t, script.Passages, "source %q", src)
		assert.Zero(t, rep.Len(), "source %q", src)
	}
}

func TestParseMetadataString(t *testing.T) {
	script, rep := parse(t, `@@ title: "My Story"`)
	require.Len(t, script.Metadata, 1)
	d := script.Metadata[0]
	assert.Equal(t, "title", d.Key)
	assert.Equal(t, ast.StringValue, d.Value.Kind)
	assert.Equal(t, "My Story", d.Value.Str)
	assert.Zero(t, rep.Len())
}

func TestParseMetadataKinds(t *testing.T) {
	src := "@@ version: 2\n@@ debug: true\n@@ theme: dark\n"
	script, rep := parse(t, src)
	require.Len(t, script.Metadata, 3)
	assert.Equal(t, ast.NumberValue, script.Metadata[0].Value.Kind)
	assert.Equal(t, 2.0, script.Metadata[0].Value.Num)
	assert.Equal(t, ast.BooleanValue, script.Metadata[1].Value.Kind)
	assert.True(t, script.Metadata[1].Value.Bool)
	assert.Equal(t, ast.IdentValue, script.Metadata[2].Value.Kind)
	assert.Equal(t, "dark", script.Metadata[2].Value.Str)
	assert.Zero(t, rep.Len())
}

func TestParseMetadataList(t *testing.T) {
	script, rep := parse(t, "@@ tags: [one, two, three]\n")
	require.Len(t, script.Metadata, 1)
	v := script.Metadata[0].Value
	require.Equal(t, ast.ListValue, v.Kind)
	require.Len(t, v.List, 3)
	assert.Equal(t, "one", v.List[0].Str)
	assert.Equal(t, "three", v.List[2].Str)
	assert.Zero(t, rep.Len())
}

func TestParseInclude(t *testing.T) {
	script, rep := parse(t, "@include \"lib/common.ws\" as common\n@include \"extra.ws\"\n")
	require.Len(t, script.Includes, 2)
	assert.Equal(t, "lib/common.ws", script.Includes[0].Path)
	assert.Equal(t, "common", script.Includes[0].Alias)
	assert.Equal(t, "extra.ws", script.Includes[1].Path)
	assert.Empty(t, script.Includes[1].Alias)
	assert.Zero(t, rep.Len())
}

func TestParsePassageWithTags(t *testing.T) {
	script, rep := parse(t, ":: Start [important, priority: 1]\n")
	require.Len(t, script.Passages, 1)
	p := script.Passages[0]
	assert.Equal(t, "Start", p.Name)
	require.Len(t, p.Tags, 2)
	assert.Equal(t, "important", p.Tags[0].Name)
	assert.Nil(t, p.Tags[0].Value)
	assert.Equal(t, "priority", p.Tags[1].Name)
	require.NotNil(t, p.Tags[1].Value)
	assert.Equal(t, ast.NumberValue, p.Tags[1].Value.Kind)
	assert.Equal(t, 1.0, p.Tags[1].Value.Num)
	assert.Zero(t, rep.Len())
}

func TestParsePassageBody(t *testing.T) {
	src := ":: Start\n" +
		"    You wake up in a cold room.\n" +
		"    ~ $gold = 5 + 2 * 3\n" +
		"    * Take the sword -> Armory\n" +
		"    * Sleep more\n" +
		"    -> Hallway\n"
	script, rep := parse(t, src)
	require.Len(t, script.Passages, 1)
	body := script.Passages[0].Body
	require.Len(t, body, 5)

	text, ok := body[0].(*ast.TextStmt)
	require.True(t, ok)
	assert.Equal(t, "You wake up in a cold room.", text.Text)

	set, ok := body[1].(*ast.SetStmt)
	require.True(t, ok)
	assert.Equal(t, "gold", set.Name)
	sum, ok := set.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)
	product, ok := sum.Y.(*ast.BinaryExpr)
	require.True(t, ok, "multiplication binds tighter than addition")
	assert.Equal(t, "*", product.Op)

	choice, ok := body[2].(*ast.ChoiceStmt)
	require.True(t, ok)
	assert.Equal(t, "Take the sword", choice.Text)
	assert.Equal(t, "Armory", choice.Target)

	bare, ok := body[3].(*ast.ChoiceStmt)
	require.True(t, ok)
	assert.Equal(t, "Sleep more", bare.Text)
	assert.Empty(t, bare.Target)

	divert, ok := body[4].(*ast.DivertStmt)
	require.True(t, ok)
	assert.Equal(t, "Hallway", divert.Target)
	assert.Zero(t, rep.Len())
}

func TestParseConditionalWithElse(t *testing.T) {
	src := ":: Fight\n" +
		"    { $health > 0 and not $fled } You fight on.\n" +
		"    { else } -> Defeat\n"
	script, rep := parse(t, src)
	require.Len(t, script.Passages, 1)
	body := script.Passages[0].Body
	require.Len(t, body, 1)

	cond, ok := body[0].(*ast.CondStmt)
	require.True(t, ok)
	and, ok := cond.Cond.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "and", and.Op)
	_, ok = cond.Then.(*ast.TextStmt)
	assert.True(t, ok)
	elseDivert, ok := cond.Else.(*ast.DivertStmt)
	require.True(t, ok)
	assert.Equal(t, "Defeat", elseDivert.Target)
	assert.Zero(t, rep.Len())
}

func TestParseDeclarationOrderPreserved(t *testing.T) {
	src := "@@ a: 1\n@@ b: 2\n@@ c: 3\n:: One\n:: Two\n:: Three\n"
	script, _ := parse(t, src)
	keys := []string{}
	for _, m := range script.Metadata {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	names := []string{}
	for _, p := range script.Passages {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"One", "Two", "Three"}, names)
}

func TestParseDuplicatePassagesAllowed(t *testing.T) {
	script, rep := parse(t, ":: Start\n:: Start\n")
	assert.Len(t, script.Passages, 2)
	assert.Zero(t, rep.Len(), "duplicate detection is a semantic concern")
}

func TestParseRecovery(t *testing.T) {
	script, rep := parse(t, "invalid\n:: Valid\n")
	assert.GreaterOrEqual(t, rep.Len(), 1)
	require.Len(t, script.Passages, 1)
	assert.Equal(t, "Valid", script.Passages[0].Name)
}

func TestParseRecoveryMultipleErrors(t *testing.T) {
	src := "@@ : 1\n" + // missing key
		":: One\n" +
		"    ~ 5 = $x\n" + // bad assignment target
		":: Two\n" +
		"    -> \n" + // missing divert target
		":: Three\n"
	script, rep := parse(t, src)
	assert.Len(t, script.Passages, 3, "all passages survive recovery")
	codes := map[diagnostic.Code]bool{}
	for _, d := range rep.Diagnostics() {
		codes[d.Code] = true
	}
	assert.True(t, codes[diagnostic.ParseExpectedIdentifier])
	assert.True(t, codes[diagnostic.ParseInvalidAssignTarget])
	assert.True(t, codes[diagnostic.ParseExpectedDivertTarget])
}

func TestParsePanicModeSuppressesCascade(t *testing.T) {
	// A single malformed set line holds several grammar violations; panic
	// mode reports only the first.
	_, rep := parse(t, ":: P\n    ~ = = =\n")
	assert.Equal(t, 1, rep.Len())
	assert.Equal(t, diagnostic.ParseInvalidAssignTarget, rep.Diagnostics()[0].Code)
}

func TestParseErrorLimit(t *testing.T) {
	src := ""
	for i := 0; i < 6; i++ {
		src += "    stray indented line\n"
	}
	_, rep := parse(t, src, WithMaxErrors(3))
	var tooMany int
	for _, d := range rep.Diagnostics() {
		if d.Code == diagnostic.ParseTooManyErrors {
			tooMany++
		}
	}
	assert.Equal(t, 1, tooMany, "the limit diagnostic is emitted once")
	assert.Equal(t, 3+1, rep.Len(), "three recorded errors plus the limit notice")
}

func TestParseDiagnosticsInSourceOrder(t *testing.T) {
	src := "invalid one\n:: P\n    -> \ninvalid two\n"
	_, rep := parse(t, src)
	diags := rep.Diagnostics()
	require.GreaterOrEqual(t, len(diags), 2)
	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Pos.Offset, diags[i].Pos.Offset)
	}
}

func TestParseNestingLimit(t *testing.T) {
	expr := ""
	for i := 0; i < 80; i++ {
		expr += "("
	}
	expr += "1"
	for i := 0; i < 80; i++ {
		expr += ")"
	}
	_, rep := parse(t, ":: P\n    ~ $x = "+expr+"\n", WithMaxNesting(16))
	require.NotZero(t, rep.Len())
	assert.Contains(t, rep.Diagnostics()[0].Message, "nesting deeper than 16")
}

func TestParseUnexpectedTopLevelIndent(t *testing.T) {
	_, rep := parse(t, "    stray indent\n")
	require.NotZero(t, rep.Len())
	assert.Equal(t, diagnostic.ParseUnexpectedIndent, rep.Diagnostics()[0].Code)
}
