// Copyright © 2025 The Whisker authors

package lsp

import (
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/whiskertales/whisker/diagnostic"
)

const debounceDelay = 300 * time.Millisecond

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.publishDiagnostics(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay publishing to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(debounceDelay, func() {
		if d := s.docs.Get(doc.URI); d != nil {
			s.publishDiagnostics(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	// Cancel any pending debounce and publish immediately.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	if doc := s.docs.Get(params.TextDocument.URI); doc != nil {
		s.publishDiagnostics(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

// publishDiagnostics pushes a document's parse diagnostics to the client.
func (s *Server) publishDiagnostics(doc *Document) {
	doc.mu.Lock()
	diags := doc.diags
	uri := doc.URI
	doc.mu.Unlock()

	// The client contract wants an empty array, not null, to clear.
	converted := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		converted = append(converted, convertDiagnostic(d))
	}

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: converted,
	})
}

// convertDiagnostic converts a whisker diagnostic to an LSP Diagnostic.
func convertDiagnostic(d diagnostic.Diagnostic) protocol.Diagnostic {
	line := d.Pos.Line
	col := d.Pos.Column
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	length := d.Length
	if length < 1 {
		length = 1
	}
	start := protocol.Position{Line: safeUint(line), Character: safeUint(col)}
	end := protocol.Position{Line: safeUint(line), Character: safeUint(col + length)}

	sev := mapSeverity(d.Severity)
	message := d.Message
	if d.Suggestion != "" {
		message += " (" + d.Suggestion + ")"
	}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &sev,
		Source:   strPtr("whisker"),
		Code:     &protocol.IntegerOrString{Value: string(d.Code)},
		Message:  message,
	}
}

// mapSeverity converts a diagnostic.Severity to a protocol severity.
func mapSeverity(sev diagnostic.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diagnostic.SeverityError:
		return protocol.DiagnosticSeverityError
	case diagnostic.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diagnostic.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n)
}
