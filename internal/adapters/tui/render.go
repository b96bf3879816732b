package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

var blockTags = map[string]bool{
	"div": true, "p": true, "section": true, "form": true, "header": true,
	"footer": true, "main": true, "article": true, "ul": true, "ol": true,
	"li": true, "pre": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true,
}

var inlineWidgets = map[string]bool{
	"badge": true, "button": true, "checkbox": true, "switch": true,
	"input": true, "label": true,
}

type renderer struct {
	styles Styles
	width  int
}

// RenderNode draws a component tree as styled terminal text.
func RenderNode(n *ui.Node, styles Styles, width int) (string, error) {
	if n == nil {
		return "", nil
	}
	if err := ui.Validate(n); err != nil {
		return "", err
	}
	if width < 10 {
		width = 10
	}
	r := &renderer{styles: styles, width: width}
	return r.node(n), nil
}

func (r *renderer) node(n *ui.Node) string {
	if n.IsText() {
		return n.Text
	}

	switch n.Widget {
	case "button":
		label := ui.TextContent(n)
		style := r.styles.Button
		if n.Attrs["data-variant"] == string(ui.VariantDestructive) {
			style = r.styles.Destructive
		}
		if _, ok := n.Attrs["disabled"]; ok {
			style = r.styles.Muted
		}
		return style.Render("[ " + label + " ]")
	case "input":
		text := n.Attrs["value"]
		style := r.styles.Text
		if text == "" {
			text = n.Attrs["placeholder"]
			style = r.styles.Muted
		}
		if n.Attrs["type"] == "password" && n.Attrs["value"] != "" {
			text = strings.Repeat("•", len([]rune(text)))
		}
		return "[" + style.Render(pad(text, 24)) + "]"
	case "checkbox":
		if n.Attrs["aria-checked"] == "true" {
			return "[x]"
		}
		return "[ ]"
	case "switch":
		if n.Attrs["aria-checked"] == "true" {
			return r.styles.Accent.Render("(● on)")
		}
		return r.styles.Muted.Render("(○ off)")
	case "badge":
		return r.styles.Accent.Render("(" + ui.TextContent(n) + ")")
	case "separator":
		return r.styles.Muted.Render(strings.Repeat("─", r.width))
	case "progress":
		value, _ := strconv.Atoi(n.Attrs["aria-valuenow"])
		return progressBar(value, 20)
	case "card":
		return r.styles.Card.Render(r.children(n.Children))
	case "alert":
		style := r.styles.Card
		if n.Attrs["data-variant"] == string(ui.VariantDestructive) {
			style = style.BorderForeground(r.styles.Destructive.GetForeground())
		}
		return style.Render(r.children(n.Children))
	case "card-title", "alert-title":
		return r.styles.Title.Render(r.children(n.Children))
	case "card-description":
		return r.styles.Muted.Render(r.children(n.Children))
	}

	if len(n.Tag) == 2 && n.Tag[0] == 'h' {
		return r.styles.Title.Render(r.children(n.Children))
	}
	return r.children(n.Children)
}

// children lays inline nodes out on one line and blocks on their own.
func (r *renderer) children(children []*ui.Node) string {
	var lines []string
	var line strings.Builder

	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}

	for _, c := range children {
		out := r.node(c)
		if isBlock(c) {
			flush()
			if out != "" {
				lines = append(lines, out)
			}
			continue
		}
		if line.Len() > 0 && c.Widget != "" {
			line.WriteByte(' ')
		}
		line.WriteString(out)
	}
	flush()

	return strings.Join(lines, "\n")
}

func isBlock(n *ui.Node) bool {
	if n.IsText() || inlineWidgets[n.Widget] {
		return false
	}
	return n.Widget != "" || blockTags[n.Tag]
}

func progressBar(value, width int) string {
	filled := value * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "] " + fmt.Sprintf("%d%%", value)
}

func pad(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}

// RenderFrame draws the preview pane for a frame.
func RenderFrame(f core.Frame, styles Styles, width int) string {
	var b strings.Builder

	switch f.Kind {
	case core.FrameContent:
		out, err := RenderNode(f.Node, styles, width)
		if err != nil {
			b.WriteString(styles.Error.Render(err.Error()))
		} else {
			b.WriteString(out)
		}
	case core.FrameFault:
		msg := core.DefaultFaultMessage
		if f.Fault != nil {
			msg = f.Fault.Message
			if f.Fault.Kind == core.FaultRender {
				b.WriteString(styles.Title.Render("Runtime Error"))
				b.WriteString("\n")
			}
		}
		b.WriteString(styles.Error.Render(msg))
	default:
		b.WriteString(styles.Muted.Render("Loading..."))
	}

	if len(f.Diagnostics) > 0 {
		b.WriteString("\n\n")
		for _, d := range f.Diagnostics {
			style := styles.Warning
			if d.Severity == core.SeverityError {
				style = styles.Error
			}
			b.WriteString(style.Render(d.String()))
			b.WriteString("\n")
		}
	}

	if f.Console != "" {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("console"))
		b.WriteString("\n")
		b.WriteString(f.Console)
	}

	return b.String()
}

type Styles struct {
	Text        lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Button      lipgloss.Style
	Destructive lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Card        lipgloss.Style
	Pane        lipgloss.Style
	Status      lipgloss.Style
}

func DefaultStyles() Styles {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	return Styles{
		Text:        lipgloss.NewStyle(),
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       muted,
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Button:      lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")),
		Destructive: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Pane:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		Status:      muted,
	}
}
