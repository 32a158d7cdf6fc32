package view

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags start and end a line in text output
var blockTags = map[string]bool{
	"body": true, "div": true, "form": true, "html": true,
	"nav": true, "p": true, "section": true,
}

// skippedTags never produce text output
var skippedTags = map[string]bool{
	"button": true, "head": true, "input": true, "script": true, "style": true,
}

// RenderText writes a terminal rendering of the tree: one line per block,
// pagination controls as [n], the active one as [*n*], highlight markup as *term*.
func RenderText(w io.Writer, n *Node) error {
	t := &textWriter{}
	t.walk(n)
	t.flush()
	_, err := io.WriteString(w, strings.Join(t.lines, "\n")+"\n")
	return err
}

// TextString renders the tree to a string
func TextString(n *Node) string {
	var b strings.Builder
	_ = RenderText(&b, n)
	return b.String()
}

type textWriter struct {
	lines []string
	line  strings.Builder
}

func (t *textWriter) write(s string) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return
	}
	if t.line.Len() > 0 {
		t.line.WriteByte(' ')
	}
	t.line.WriteString(s)
}

func (t *textWriter) flush() {
	if t.line.Len() > 0 {
		t.lines = append(t.lines, t.line.String())
		t.line.Reset()
	}
}

func (t *textWriter) walk(n *Node) {
	if n.Tag == "" {
		if n.Markup != "" {
			t.write(markupText(n.Markup))
		} else {
			t.write(n.Text)
		}
		return
	}
	if skippedTags[n.Tag] || hidden(n) {
		return
	}

	if _, isControl := n.Attr("data-page"); isControl {
		label := controlText(n)
		if _, active := n.Attr("data-active"); active {
			t.write("[*" + label + "*]")
		} else {
			t.write("[" + label + "]")
		}
		return
	}

	block := blockTags[n.Tag]
	if block {
		t.flush()
	}
	if n.Text != "" {
		t.write(n.Text)
	}
	if n.Markup != "" {
		t.write(markupText(n.Markup))
	}
	for _, c := range n.Children {
		t.walk(c)
	}
	if block {
		t.flush()
	}
}

func controlText(n *Node) string {
	var parts []string
	for _, c := range n.Children {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "")
}

// hidden reports elements switched off through their inline style
func hidden(n *Node) bool {
	style, ok := n.Attr("style")
	if !ok {
		return false
	}
	style = strings.ReplaceAll(style, " ", "")
	return strings.Contains(style, "display:none")
}

// markupText flattens markup to text, marking highlighted terms with asterisks
func markupText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	doc.Find("b, em, mark, strong").Each(func(_ int, s *goquery.Selection) {
		s.SetText("*" + s.Text() + "*")
	})
	return doc.Text()
}
