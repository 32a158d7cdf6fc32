package view

import "strings"

// Attr is one element attribute; attribute order is kept on output
type Attr struct {
	Key string
	Val string
}

// Node is one element of the declarative view tree.
//
// An element has a Tag. A node without a Tag is a leaf: Text is escaped on
// output, Markup is written verbatim.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Markup   string
	Children []*Node
}

// El creates an element node
func El(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// TextNode creates an escaped text leaf
func TextNode(text string) *Node {
	return &Node{Text: text}
}

// MarkupNode creates a leaf whose content is injected without escaping
func MarkupNode(markup string) *Node {
	return &Node{Markup: markup}
}

// A builds an attribute list from key/value pairs
func A(kv ...string) []Attr {
	attrs := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attr{Key: kv[i], Val: kv[i+1]})
	}
	return attrs
}

// Attr returns the value of the named attribute
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute contains class
func (n *Node) HasClass(class string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns every node in the subtree, n included, that matches in document order
func (n *Node) Find(match func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		if match(cur) {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByID returns the first element with the given id
func (n *Node) ByID(id string) *Node {
	found := n.Find(func(x *Node) bool {
		v, ok := x.Attr("id")
		return ok && v == id
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}
