package editor

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/3-lines-studio/vitrine/internal/core"
)

const maxSyntaxDiagnostics = 20

// syntaxDiagnostics reports ERROR and MISSING nodes from a tree-sitter parse.
// It keeps going past the first error, which go/parser does not.
func syntaxDiagnostics(ctx context.Context, parser *sitter.Parser, src []byte) ([]core.Diagnostic, error) {
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var diags []core.Diagnostic
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if len(diags) >= maxSyntaxDiagnostics {
			return
		}

		switch {
		case n.IsMissing():
			diags = append(diags, nodeDiagnostic(n, fmt.Sprintf("syntax error: missing %s", n.Type())))
			return
		case n.IsError():
			diags = append(diags, nodeDiagnostic(n, unexpected(n.Content(src))))
			return
		}

		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return diags, nil
}

func nodeDiagnostic(n *sitter.Node, msg string) core.Diagnostic {
	start, end := n.StartPoint(), n.EndPoint()
	return core.Diagnostic{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
		Severity:  core.SeverityError,
		Source:    "syntax",
		Message:   msg,
	}
}

func unexpected(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	if text == "" {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error: unexpected %q", text)
}
