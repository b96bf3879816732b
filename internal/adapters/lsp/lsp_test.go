package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/editor"
	"github.com/3-lines-studio/vitrine/internal/source"
)

const uri = "file:///tmp/preview.go"

type notifier struct {
	published []protocol.PublishDiagnosticsParams
}

func (n *notifier) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				n.published = append(n.published, params.(protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (n *notifier) last(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, n.published)
	return n.published[len(n.published)-1]
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := editor.NewService(editor.NewConfig(), nil)
	t.Cleanup(svc.Close)
	return New(svc, "test")
}

func open(t *testing.T, s *Server, n *notifier, text string) {
	t.Helper()
	require.NoError(t, s.textDocumentDidOpen(n.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "go", Version: 1, Text: text},
	}))
}

func TestInitialize(t *testing.T) {
	s := newTestServer(t)

	res, err := s.initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	result := res.(protocol.InitializeResult)
	assert.Equal(t, Name, result.ServerInfo.Name)
	opts := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *opts.Change)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Equal(t, []string{"."}, result.Capabilities.CompletionProvider.TriggerCharacters)
}

func TestDiagnosticsLifecycle(t *testing.T) {
	s := newTestServer(t)
	n := &notifier{}

	open(t, s, n, source.DefaultSource)
	assert.Empty(t, n.last(t).Diagnostics)

	bad := "package preview\n\nimport \"os\"\n\nfunc Default() {}\n"
	require.NoError(t, s.textDocumentDidChange(n.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: bad}},
	}))

	diags := n.last(t).Diagnostics
	require.NotEmpty(t, diags)
	first := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *first.Severity)
	assert.Equal(t, protocol.Position{Line: 2, Character: 7}, first.Range.Start)
	assert.Contains(t, first.Message, `"os"`)

	require.NoError(t, s.textDocumentDidClose(n.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Equal(t, []protocol.Diagnostic{}, n.last(t).Diagnostics)
	_, ok := s.document(uri)
	assert.False(t, ok)
}

func TestIncrementalChange(t *testing.T) {
	s := newTestServer(t)
	n := &notifier{}
	open(t, s, n, "package preview\n")

	require.NoError(t, s.textDocumentDidChange(n.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 8},
				End:   protocol.Position{Line: 0, Character: 15},
			},
			Text: "demo",
		}},
	}))

	text, _ := s.document(uri)
	assert.Equal(t, "package demo\n", text)
}

func TestChangeUnknownDocument(t *testing.T) {
	s := newTestServer(t)
	n := &notifier{}

	err := s.textDocumentDidChange(n.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x"}},
	})
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	s := newTestServer(t)
	n := &notifier{}
	text := "package preview\n\nimport \"@/ui\"\n\nfunc Default() *ui.Node {\n\treturn ui.Bu\n"
	open(t, s, n, text)

	res, err := s.textDocumentCompletion(n.context(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 5, Character: 13},
		},
	})
	require.NoError(t, err)

	items := res.([]protocol.CompletionItem)
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "Button")
	assert.Contains(t, labels, "ButtonProps")
	assert.NotContains(t, labels, "Div")
}

func TestCompletionOutsideSelector(t *testing.T) {
	s := newTestServer(t)
	n := &notifier{}
	open(t, s, n, "package preview\n\nimport \"strings\"\n\nvar x = strings.\n")

	res, err := s.textDocumentCompletion(n.context(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 4, Character: 16},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res, "only virtual packages are completed")
}

func TestToProtocol(t *testing.T) {
	got := toProtocol([]core.Diagnostic{
		{Line: 1, Column: 1, EndLine: 1, EndColumn: 8, Severity: core.SeverityWarning, Source: "vitrine", Message: "m"},
		{Line: 0, Column: 0, Severity: core.SeverityInfo, Message: "n"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, protocol.Range{End: protocol.Position{Character: 7}}, got[0].Range)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *got[0].Severity)
	assert.Equal(t, "vitrine", *got[0].Source)
	assert.Equal(t, protocol.Range{}, got[1].Range)
	assert.Equal(t, protocol.DiagnosticSeverityInformation, *got[1].Severity)
}

func TestSelectorAt(t *testing.T) {
	tests := []struct {
		text   string
		col    int
		pkg    string
		prefix string
		ok     bool
	}{
		{"ui.", 3, "ui", "", true},
		{"x := ui.Te", 10, "ui", "Te", true},
		{"Text", 4, "", "", false},
		{".Text", 5, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pkg, prefix, ok := selectorAt(tt.text, protocol.Position{Character: protocol.UInteger(tt.col)})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}
