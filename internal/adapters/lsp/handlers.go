package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	s.docs[uri] = params.TextDocument.Text
	s.mu.Unlock()

	publishDiagnostics(context, uri, s.check(uri, params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	text, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("document %s is not open", uri)
	}
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				continue
			}
			start, end := change.Range.IndexesIn(text)
			text = text[:start] + change.Text + text[end:]
		default:
			s.mu.Unlock()
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}
	s.docs[uri] = text
	s.mu.Unlock()

	publishDiagnostics(context, uri, s.check(uri, text))
	return nil
}

func (s *Server) textDocumentDidSave(context *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	text, ok := s.document(params.TextDocument.URI)
	if params.Text != nil {
		text, ok = *params.Text, true
	}
	if !ok {
		return nil
	}
	publishDiagnostics(context, params.TextDocument.URI, s.check(params.TextDocument.URI, text))
	return nil
}

func (s *Server) textDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	// Clear what the client still shows for the closed file.
	publishDiagnostics(context, uri, nil)
	return nil
}

func (s *Server) textDocumentCompletion(context *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pkgName, prefix, ok := selectorAt(text, params.Position)
	if !ok {
		return nil, nil
	}
	importPath, ok := importedAs(text, pkgName)
	if !ok || !s.service.Config().IsVirtual(importPath) {
		return nil, nil
	}

	members, err := s.service.Members(importPath)
	if err != nil {
		s.log.Warningf("members of %s: %s", importPath, err)
		return nil, nil
	}

	items := make([]protocol.CompletionItem, 0, len(members))
	for _, m := range members {
		if !hasPrefix(m.Name, prefix) {
			continue
		}
		kind := completionKind(m.Kind)
		detail := m.Detail
		items = append(items, protocol.CompletionItem{
			Label:  m.Name,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items, nil
}

func publishDiagnostics(context *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}
