// Copyright © 2025 The Whisker authors

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/token"
)

func scan(t *testing.T, src string, opts ...Option) ([]token.Token, *diagnostic.Reporter) {
	t.Helper()
	rep := diagnostic.NewReporter("test.ws")
	toks := Scan(rep, src, opts...)
	require.NotEmpty(t, toks)
	return toks, rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanEmpty(t *testing.T) {
	toks, rep := scan(t, "")
	assert.Equal(t, []token.Kind{token.EOF}, kinds(toks))
	assert.Zero(t, rep.Len())
}

func TestScanWhitespaceOnly(t *testing.T) {
	toks, rep := scan(t, "   \n\t\n  ")
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	for _, tok := range toks {
		assert.Contains(t, []token.Kind{token.NEWLINE, token.EOF}, tok.Kind)
	}
	assert.Zero(t, rep.Len())
}

func TestScanCommentOnly(t *testing.T) {
	toks, rep := scan(t, "// a comment\n// another\n")
	assert.Equal(t, []token.Kind{
		token.COMMENT, token.NEWLINE,
		token.COMMENT, token.NEWLINE,
		token.EOF,
	}, kinds(toks))
	assert.Zero(t, rep.Len())
}

func TestScanMetadata(t *testing.T) {
	toks, rep := scan(t, `@@ title: "My Story"`)
	assert.Equal(t, []token.Kind{
		token.METADATA, token.IDENT, token.COLON, token.STRING, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "title", toks[1].Literal)
	assert.Equal(t, "My Story", toks[3].Literal)
	assert.Zero(t, rep.Len())
}

func TestScanMetadataList(t *testing.T) {
	toks, _ := scan(t, "@@ tags: [one, two, three]\n")
	assert.Equal(t, []token.Kind{
		token.METADATA, token.IDENT, token.COLON,
		token.LBRACKET,
		token.IDENT, token.COMMA, token.IDENT, token.COMMA, token.IDENT,
		token.RBRACKET,
		token.NEWLINE, token.EOF,
	}, kinds(toks))
}

func TestScanInclude(t *testing.T) {
	toks, _ := scan(t, `@include "lib/common.ws" as common`)
	assert.Equal(t, []token.Kind{
		token.INCLUDE, token.STRING, token.AS, token.IDENT, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "lib/common.ws", toks[1].Literal)
	assert.Equal(t, "common", toks[3].Literal)
}

func TestScanPassageHeader(t *testing.T) {
	toks, rep := scan(t, ":: Start [important, priority: 1]\n")
	assert.Equal(t, []token.Kind{
		token.PASSAGE, token.IDENT,
		token.LBRACKET,
		token.IDENT, token.COMMA, token.IDENT, token.COLON, token.NUMBER,
		token.RBRACKET,
		token.NEWLINE, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "Start", toks[1].Literal)
	assert.Equal(t, "priority", toks[5].Literal)
	assert.Equal(t, "1", toks[7].Literal)
	assert.Zero(t, rep.Len())
}

func TestScanPassageNameWithSpaces(t *testing.T) {
	toks, _ := scan(t, ":: The Dark Cellar\n")
	require.Equal(t, token.IDENT, toks[1].Kind)
	assert.Equal(t, "The Dark Cellar", toks[1].Literal)
}

func TestScanBodyStatements(t *testing.T) {
	src := ":: Start\n" +
		"    You wake up.\n" +
		"    * Open the door -> Hallway\n" +
		"    -> Cellar\n" +
		"    ~ $gold = 10\n"
	toks, rep := scan(t, src)
	assert.Equal(t, []token.Kind{
		token.PASSAGE, token.IDENT, token.NEWLINE,
		token.INDENT, token.TEXT, token.NEWLINE,
		token.INDENT, token.CHOICE, token.TEXT, token.DIVERT, token.IDENT, token.NEWLINE,
		token.INDENT, token.DIVERT, token.IDENT, token.NEWLINE,
		token.INDENT, token.SET, token.VARIABLE, token.ASSIGN, token.NUMBER, token.NEWLINE,
		token.EOF,
	}, kinds(toks))
	assert.Equal(t, "You wake up.", toks[4].Literal)
	assert.Equal(t, "Open the door", toks[8].Literal)
	assert.Equal(t, "Hallway", toks[10].Literal)
	assert.Equal(t, "gold", toks[18].Literal)
	assert.Zero(t, rep.Len())
}

func TestScanConditionalLine(t *testing.T) {
	toks, rep := scan(t, "    { $health > 0 } You live.\n")
	assert.Equal(t, []token.Kind{
		token.INDENT,
		token.LBRACE, token.VARIABLE, token.GT, token.NUMBER, token.RBRACE,
		token.TEXT, token.NEWLINE, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "You live.", toks[6].Literal)
	assert.Zero(t, rep.Len())
}

func TestScanConditionalDivert(t *testing.T) {
	toks, _ := scan(t, "    { $found and not $used } -> Vault\n")
	assert.Equal(t, []token.Kind{
		token.INDENT,
		token.LBRACE, token.VARIABLE, token.AND, token.NOT, token.VARIABLE, token.RBRACE,
		token.DIVERT, token.IDENT, token.NEWLINE, token.EOF,
	}, kinds(toks))
}

func TestScanStringEscapes(t *testing.T) {
	toks, rep := scan(t, `@@ title: "a\n\t\"b\\"`)
	require.Equal(t, token.STRING, toks[3].Kind)
	assert.Equal(t, "a\n\t\"b\\", toks[3].Literal)
	assert.Zero(t, rep.Len())
}

func TestScanInvalidEscape(t *testing.T) {
	toks, rep := scan(t, `@@ title: "a\qb"`)
	require.Equal(t, token.STRING, toks[3].Kind)
	require.Equal(t, 1, rep.Len())
	assert.Equal(t, diagnostic.LexInvalidEscape, rep.Diagnostics()[0].Code)
}

func TestScanUnterminatedString(t *testing.T) {
	toks, rep := scan(t, "@@ title: \"oops\n:: Start\n")
	require.Equal(t, 1, rep.Len())
	assert.Equal(t, diagnostic.LexUnterminatedString, rep.Diagnostics()[0].Code)
	// Scanning continues on the next line.
	assert.Contains(t, kinds(toks), token.PASSAGE)
}

func TestScanInvalidNumber(t *testing.T) {
	_, rep := scan(t, "~ $x = 12.\n")
	require.Equal(t, 1, rep.Len())
	assert.Equal(t, diagnostic.LexInvalidNumber, rep.Diagnostics()[0].Code)
}

func TestScanInvalidVariableName(t *testing.T) {
	_, rep := scan(t, "~ $1 = 2\n")
	require.NotZero(t, rep.Len())
	assert.Equal(t, diagnostic.LexInvalidVariableName, rep.Diagnostics()[0].Code)
}

func TestScanUnexpectedChar(t *testing.T) {
	_, rep := scan(t, "~ $x = 1 ? 2\n")
	require.Equal(t, 1, rep.Len())
	d := rep.Diagnostics()[0]
	assert.Equal(t, diagnostic.LexUnexpectedChar, d.Code)
	assert.Contains(t, d.Message, "'?'")
}

func TestScanErrorCap(t *testing.T) {
	_, rep := scan(t, "~ ? ? ? ? ?\n", WithMaxErrors(3))
	diags := rep.Diagnostics()
	require.Equal(t, 4, len(diags))
	for _, d := range diags[:3] {
		assert.Equal(t, diagnostic.LexUnexpectedChar, d.Code)
	}
	assert.Equal(t, diagnostic.LexTooManyErrors, diags[3].Code)
}

func TestSpansMonotonicNonOverlapping(t *testing.T) {
	src := "@@ title: \"My Story\"\n" +
		"@include \"lib.ws\"\n" +
		":: Start [dark]\n" +
		"\tTabbed text here.\n" +
		"    { $x >= 2 } * pick -> End\n"
	toks, _ := scan(t, src)

	prevEnd := 0
	for i, tok := range toks {
		assert.GreaterOrEqual(t, tok.Span.Start.Offset, prevEnd,
			"token %d (%s) overlaps previous", i, tok)
		assert.GreaterOrEqual(t, tok.Span.End.Offset, tok.Span.Start.Offset)
		prevEnd = tok.Span.End.Offset
	}
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestTabColumnTracking(t *testing.T) {
	toks, _ := scan(t, "\tText after tab\n")
	require.Equal(t, token.INDENT, toks[0].Kind)
	require.Equal(t, token.TEXT, toks[1].Kind)
	// A tab from column 1 lands on column 9.
	assert.Equal(t, 9, toks[1].Span.Start.Column)
}

func TestEOFStable(t *testing.T) {
	toks, _ := scan(t, "hello")
	last := toks[len(toks)-1]
	assert.Equal(t, token.EOF, last.Kind)
	assert.Equal(t, last.Span.Start, last.Span.End)

	again := Scan(diagnostic.NewReporter(""), "hello")
	assert.Equal(t, last.Span, again[len(again)-1].Span)
}
