package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		contains []string
	}{
		{
			name:     "nil node renders nothing",
			node:     nil,
			contains: nil,
		},
		{
			name:     "text is escaped",
			node:     Div("", Text("<script>alert(1)</script>")),
			contains: []string{"&lt;script&gt;alert(1)&lt;/script&gt;"},
		},
		{
			name:     "button carries widget and variant",
			node:     Button(ButtonProps{Variant: VariantOutline}, Text("Go")),
			contains: []string{`data-widget="button"`, `data-variant="outline"`, ">Go</button>"},
		},
		{
			name:     "unknown variant falls back to default",
			node:     Button(ButtonProps{Variant: "sparkly"}, Text("Go")),
			contains: []string{`data-variant="default"`},
		},
		{
			name:     "input is a void element",
			node:     Input(InputProps{Placeholder: "Name"}),
			contains: []string{`<input`, `placeholder="Name"`, `type="text"`},
		},
		{
			name:     "progress is clamped",
			node:     Progress(140),
			contains: []string{`aria-valuenow="100"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(tt.node)
			if err != nil {
				t.Fatalf("RenderHTML() error = %v", err)
			}
			if tt.node == nil && got != "" {
				t.Errorf("expected empty output, got %q", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got %q", want, got)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("cycle is rejected", func(t *testing.T) {
		n := Div("")
		n.Children = append(n.Children, n)

		if err := Validate(n); err == nil {
			t.Error("expected error for cyclic tree")
		}
		if _, err := RenderHTML(n); err == nil {
			t.Error("expected RenderHTML to refuse cyclic tree")
		}
	})

	t.Run("shared subtree is fine", func(t *testing.T) {
		shared := Text("x")
		n := Div("", Span("", shared), Span("", shared))

		if err := Validate(n); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("deep tree is rejected", func(t *testing.T) {
		root := Div("")
		cur := root
		for i := 0; i < maxDepth+2; i++ {
			next := Div("")
			cur.Children = []*Node{next}
			cur = next
		}

		if err := Validate(root); err != ErrTooDeep {
			t.Errorf("expected ErrTooDeep, got %v", err)
		}
	})

	t.Run("void element with children is rejected", func(t *testing.T) {
		n := El("input", "", Text("nope"))
		if err := Validate(n); err == nil {
			t.Error("expected error for void element with children")
		}
	})
}

func TestTextContent(t *testing.T) {
	n := Card("", CardHeader(CardTitle(Text("Hello"))), CardContent(Text(", world")))

	if got := TextContent(n); got != "Hello, world" {
		t.Errorf("TextContent() = %q, want %q", got, "Hello, world")
	}
}

func TestNilChildrenAreDropped(t *testing.T) {
	n := Div("", nil, Text("a"), nil)
	if len(n.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(n.Children))
	}
}

func TestKitchenSinkSnapshot(t *testing.T) {
	tree := Div("p-4 space-y-4",
		Heading(1, "text-4xl font-bold", Text("Kitchen Sink")),
		Card("",
			CardHeader(
				CardTitle(Text("Basic Input Components")),
				CardDescription(Text("Essential form controls and buttons")),
			),
			CardContent(
				Label("name", Text("Text Input")),
				Input(InputProps{ID: "name", Placeholder: "Enter some text..."}),
				Checkbox("terms", true),
				Switch("airplane-mode", false),
				Progress(60),
			),
			CardFooter(Button(ButtonProps{}, Text("Submit"))),
		),
		Separator(),
		Alert(VariantDestructive, AlertTitle(Text("Heads up!")), AlertDescription(Text("Something happened."))),
		Badge("", Text("New")),
	)

	got, err := RenderHTML(tree)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	snaps.MatchSnapshot(t, got)
}
