package ui

import (
	"bytes"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func RenderHTML(n *Node) (string, error) {
	if n == nil {
		return "", nil
	}
	if err := Validate(n); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(n)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n *Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}

	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	if n.Widget != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "data-widget", Val: n.Widget})
	}

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		if k == "class" || k == "data-widget" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}

	for _, c := range n.Children {
		if c == nil {
			continue
		}
		el.AppendChild(toHTML(c))
	}
	return el
}
