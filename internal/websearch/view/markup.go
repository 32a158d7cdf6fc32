package view

import (
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// MarkupPolicy decides how backend-supplied snippet and highlight markup is injected
type MarkupPolicy string

const (
	// MarkupTrusted injects backend markup verbatim. The backend is the trust boundary.
	MarkupTrusted MarkupPolicy = "trusted"
	// MarkupHighlightOnly keeps highlight tags and escapes everything else
	MarkupHighlightOnly MarkupPolicy = "highlight-only"
)

// highlightTags are the only tags kept under MarkupHighlightOnly
var highlightTags = map[string]bool{
	"b":      true,
	"em":     true,
	"mark":   true,
	"strong": true,
}

// droppedContent lists elements whose text is discarded along with the tag
var droppedContent = map[string]bool{
	"script": true,
	"style":  true,
}

// ParseMarkupPolicy parses a configured policy name; empty means trusted
func ParseMarkupPolicy(s string) (MarkupPolicy, error) {
	switch MarkupPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MarkupTrusted:
		return MarkupTrusted, nil
	case MarkupHighlightOnly:
		return MarkupHighlightOnly, nil
	default:
		return "", fmt.Errorf("unknown markup policy %q, must be 'trusted' or 'highlight-only'", s)
	}
}

// Node wraps backend markup into a leaf according to the policy
func (p MarkupPolicy) Node(markup string) *Node {
	if p == MarkupHighlightOnly {
		return MarkupNode(keepHighlights(markup))
	}
	return MarkupNode(markup)
}

// keepHighlights re-serializes markup keeping only attribute-free highlight tags
func keepHighlights(markup string) string {
	var b strings.Builder
	var open []string
	skip := 0

	z := xhtml.NewTokenizer(strings.NewReader(markup))
tokens:
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			break tokens
		case xhtml.TextToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}
		case xhtml.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case droppedContent[tag]:
				skip++
			case highlightTags[tag] && skip == 0:
				open = append(open, tag)
				b.WriteString("<" + tag + ">")
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case droppedContent[tag]:
				if skip > 0 {
					skip--
				}
			case highlightTags[tag] && skip == 0:
				idx := lastIndex(open, tag)
				if idx < 0 {
					continue
				}
				for i := len(open) - 1; i >= idx; i-- {
					b.WriteString("</" + open[i] + ">")
				}
				open = open[:idx]
			}
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}

func lastIndex(stack []string, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return i
		}
	}
	return -1
}
