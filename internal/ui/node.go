// Package ui is the widget toolkit preview components are written against.
//
// Components build a tree of *Node values; the host renders the tree as HTML
// in the browser playground and as styled text in the terminal playground.
package ui

import (
	"errors"
	"fmt"
	"strings"
)

const ImportPath = "vitrine.dev/ui"

const maxDepth = 256

var ErrTooDeep = errors.New("node tree exceeds maximum depth")

type Node struct {
	Tag      string
	Widget   string
	Class    string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

func (n *Node) IsText() bool {
	return n != nil && n.Tag == ""
}

func Text(s string) *Node {
	return &Node{Text: s}
}

func El(tag string, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: compact(children)}
}

func Div(class string, children ...*Node) *Node {
	return El("div", class, children...)
}

func Span(class string, children ...*Node) *Node {
	return El("span", class, children...)
}

func P(class string, children ...*Node) *Node {
	return El("p", class, children...)
}

func Heading(level int, class string, children ...*Node) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return El(fmt.Sprintf("h%d", level), class, children...)
}

func (n *Node) With(key, value string) *Node {
	if n == nil || n.IsText() {
		return n
	}
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[key] = value
	return n
}

// Validate reports trees the renderers cannot handle: cycles, excessive
// nesting and void elements with children.
func Validate(n *Node) error {
	return validate(n, 0, map[*Node]bool{})
}

func validate(n *Node, depth int, onPath map[*Node]bool) error {
	if n == nil {
		return nil
	}
	if depth > maxDepth {
		return ErrTooDeep
	}
	if onPath[n] {
		return fmt.Errorf("node <%s> contains itself", n.Tag)
	}
	if voidElements[n.Tag] && len(n.Children) > 0 {
		return fmt.Errorf("void element <%s> cannot have children", n.Tag)
	}

	onPath[n] = true
	defer delete(onPath, n)

	for _, c := range n.Children {
		if err := validate(c, depth+1, onPath); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || depth > maxDepth {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// TextContent concatenates every text node below n.
func TextContent(n *Node) string {
	var sb strings.Builder
	Walk(n, func(c *Node, _ int) bool {
		if c.IsText() {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

func compact(children []*Node) []*Node {
	out := children[:0:0]
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func cn(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}
