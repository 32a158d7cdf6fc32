package view

import (
	"bytes"
	"io"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serializes the tree. A root <html> element gets a doctype.
func RenderHTML(w io.Writer, n *Node) error {
	root := toHTML(n)
	if n.Tag == "html" {
		doc := &xhtml.Node{Type: xhtml.DocumentNode}
		doc.AppendChild(&xhtml.Node{Type: xhtml.DoctypeNode, Data: "html"})
		doc.AppendChild(root)
		root = doc
	}
	return xhtml.Render(w, root)
}

// HTMLString renders the tree to a string
func HTMLString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n *Node) *xhtml.Node {
	if n.Tag == "" {
		if n.Markup != "" {
			return &xhtml.Node{Type: xhtml.RawNode, Data: n.Markup}
		}
		return &xhtml.Node{Type: xhtml.TextNode, Data: n.Text}
	}

	el := &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, xhtml.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Text != "" {
		el.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: n.Text})
	}
	if n.Markup != "" {
		el.AppendChild(&xhtml.Node{Type: xhtml.RawNode, Data: n.Markup})
	}
	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}
