package view

import (
	"fmt"
	"strconv"
)

// ControlKind identifies a pagination control
type ControlKind int

const (
	ControlPrevious ControlKind = iota
	ControlPage
	ControlEllipsis
	ControlNext
)

var controlKindNames = map[ControlKind]string{
	ControlPrevious: "previous",
	ControlPage:     "page",
	ControlEllipsis: "ellipsis",
	ControlNext:     "next",
}

func (k ControlKind) String() string {
	if name, ok := controlKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ControlKind(%d)", int(k))
}

// MarshalText encodes the kind by name
func (k ControlKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Control is one entry of the pagination region. Target is zero for an ellipsis.
type Control struct {
	Kind   ControlKind `json:"kind"`
	Label  string      `json:"label"`
	Target int         `json:"target,omitempty"`
	Active bool        `json:"active,omitempty"`
}

// Interactive reports whether activating the control triggers a search
func (c Control) Interactive() bool {
	return c.Kind != ControlEllipsis
}

// HrefFunc maps a target page to the link a control navigates to
type HrefFunc func(page int) string

const (
	ellipsisLabel = "..."

	activeControlClass = "px-3 py-1 rounded bg-blue-600 text-white"
	controlClass       = "px-3 py-1 rounded text-blue-600 hover:bg-blue-50"
	ellipsisClass      = "px-2 text-gray-500"
)

// Controls computes the page window for totalPages and currentPage.
//
// Pages 1-3, the last three pages and the neighbours of currentPage are
// listed. A page exactly two away from currentPage that falls outside those
// windows becomes an ellipsis; there is at most one such page per side, so
// a gap never yields two ellipses. currentPage is trusted to be in range.
func Controls(totalPages, currentPage int) []Control {
	if totalPages <= 1 {
		return nil
	}

	var controls []Control
	if currentPage > 1 {
		controls = append(controls, Control{Kind: ControlPrevious, Label: "Previous", Target: currentPage - 1})
	}

	for i := 1; i <= totalPages; i++ {
		dist := i - currentPage
		if dist < 0 {
			dist = -dist
		}

		switch {
		case i == currentPage:
			controls = append(controls, Control{Kind: ControlPage, Label: strconv.Itoa(i), Target: i, Active: true})
		case i <= 3 || i >= totalPages-2 || dist <= 1:
			controls = append(controls, Control{Kind: ControlPage, Label: strconv.Itoa(i), Target: i})
		case dist == 2:
			controls = append(controls, Control{Kind: ControlEllipsis, Label: ellipsisLabel})
		}
	}

	if currentPage < totalPages {
		controls = append(controls, Control{Kind: ControlNext, Label: "Next", Target: currentPage + 1})
	}
	return controls
}

// FindControl returns the first interactive control targeting page
func FindControl(controls []Control, page int) (Control, bool) {
	for _, c := range controls {
		if c.Interactive() && c.Target == page {
			return c, true
		}
	}
	return Control{}, false
}

// FindKind returns the first control of the given kind
func FindKind(controls []Control, kind ControlKind) (Control, bool) {
	for _, c := range controls {
		if c.Kind == kind {
			return c, true
		}
	}
	return Control{}, false
}

// Pagination builds the nodes of the pagination region from scratch
func Pagination(controls []Control, href HrefFunc) []*Node {
	nodes := make([]*Node, 0, len(controls))
	for _, c := range controls {
		nodes = append(nodes, controlNode(c, href))
	}
	return nodes
}

func controlNode(c Control, href HrefFunc) *Node {
	if !c.Interactive() {
		return El("span", A("class", ellipsisClass), TextNode(c.Label))
	}

	class := controlClass
	if c.Active {
		class = activeControlClass
	}
	attrs := A("class", class, "data-page", strconv.Itoa(c.Target))
	if href != nil {
		attrs = append(attrs, Attr{Key: "href", Val: href(c.Target)})
	}
	if c.Active {
		attrs = append(attrs, Attr{Key: "data-active", Val: "true"})
	}
	return El("a", attrs, TextNode(c.Label))
}
