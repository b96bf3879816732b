package lsp

import (
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"
	"unicode"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/3-lines-studio/vitrine/internal/core"
)

// toProtocol converts 1-based diagnostics to the protocol's 0-based ranges.
func toProtocol(diags []core.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		start := position(d.Line, d.Column)
		end := start
		if d.EndLine > 0 {
			end = position(d.EndLine, d.EndColumn)
		}

		severity := severityOf(d.Severity)
		src := d.Source
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   &src,
			Message:  d.Message,
		})
	}
	return out
}

func position(line, col int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	return protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(col - 1)}
}

func severityOf(s core.Severity) protocol.DiagnosticSeverity {
	switch s {
	case core.SeverityError:
		return protocol.DiagnosticSeverityError
	case core.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func completionKind(kind string) protocol.CompletionItemKind {
	switch kind {
	case "func":
		return protocol.CompletionItemKindFunction
	case "type":
		return protocol.CompletionItemKindStruct
	case "const":
		return protocol.CompletionItemKindConstant
	case "var":
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindText
	}
}

// selectorAt finds `pkg.prefix` ending at pos.
func selectorAt(text string, pos protocol.Position) (pkg, prefix string, ok bool) {
	idx := pos.IndexIn(text)
	if idx > len(text) {
		idx = len(text)
	}
	before := text[:idx]

	i := len(before)
	for i > 0 && isIdent(rune(before[i-1])) {
		i--
	}
	prefix = before[i:]
	if i == 0 || before[i-1] != '.' {
		return "", "", false
	}

	j := i - 1
	for j > 0 && isIdent(rune(before[j-1])) {
		j--
	}
	pkg = before[j : i-1]
	if pkg == "" {
		return "", "", false
	}
	return pkg, prefix, true
}

// importedAs returns the import path bound to name in text. Only the
// import block is parsed so an unfinished body does not matter.
func importedAs(text, name string) (string, bool) {
	// Errors past the imports still leave a usable file.
	file, _ := parser.ParseFile(token.NewFileSet(), "", text, parser.ImportsOnly)
	if file == nil {
		return "", false
	}

	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		local := path.Base(p)
		if spec.Name != nil {
			local = spec.Name.Name
		}
		if local == name {
			return p, true
		}
	}
	return "", false
}

func isIdent(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func hasPrefix(name, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix))
}
