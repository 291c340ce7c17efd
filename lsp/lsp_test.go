// Copyright © 2025 The Whisker authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/source"
)

func TestDocumentStoreParse(t *testing.T) {
	store := NewDocumentStore()
	doc := store.Open("file:///tmp/test.ws", 1, ":: Start\n    Hello.\n")
	require.NotNil(t, doc.Script())
	assert.Len(t, doc.Script().Passages, 1)
	assert.Empty(t, doc.diags)

	doc = store.Change("file:///tmp/test.ws", 2, "not a passage\n")
	assert.NotEmpty(t, doc.diags)
	assert.Empty(t, doc.Script().Passages)

	store.Close("file:///tmp/test.ws")
	assert.Nil(t, store.Get("file:///tmp/test.ws"))
}

func TestChangeUnknownURIOpens(t *testing.T) {
	store := NewDocumentStore()
	doc := store.Change("file:///tmp/new.ws", 1, ":: P\n")
	require.NotNil(t, doc)
	assert.Len(t, store.All(), 1)
}

func TestConvertDiagnostic(t *testing.T) {
	d := diagnostic.Diagnostic{
		Code:       diagnostic.ParseExpectedPassage,
		Severity:   diagnostic.SeverityError,
		Message:    "expected a passage declaration",
		Pos:        source.Position{Line: 3, Column: 5, Offset: 20},
		Length:     7,
		Suggestion: "passages are declared as ':: Name'",
	}
	converted := convertDiagnostic(d)

	assert.Equal(t, protocol.UInteger(2), converted.Range.Start.Line)
	assert.Equal(t, protocol.UInteger(4), converted.Range.Start.Character)
	assert.Equal(t, protocol.UInteger(11), converted.Range.End.Character)
	assert.Equal(t, protocol.DiagnosticSeverityError, *converted.Severity)
	assert.Equal(t, "whisker", *converted.Source)
	assert.Equal(t, string(diagnostic.ParseExpectedPassage), converted.Code.Value)
	assert.Contains(t, converted.Message, "declared as")
}

func TestUriToPath(t *testing.T) {
	assert.Equal(t, "/tmp/a.ws", uriToPath("file:///tmp/a.ws"))
	assert.Equal(t, "relative.ws", uriToPath("relative.ws"))
}
