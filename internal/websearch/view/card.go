package view

import "github.com/lk2023060901/nitionsearch-console/internal/websearch/types"

const (
	cardClass      = "result-card bg-white p-6 rounded-lg shadow-sm hover:shadow-md"
	titleClass     = "text-lg text-blue-600 hover:underline font-medium"
	snippetClass   = "snippet text-gray-600 mt-2"
	highlightClass = "highlights text-sm text-gray-500 mt-2"
	fragmentClass  = "highlight mr-2"
)

// ResultCard maps one result to a detached card: a link to the page, the
// snippet markup, and each highlight fragment framed as "...fragment...".
func ResultCard(result *types.SearchResult, policy MarkupPolicy) *Node {
	link := El("a", A("class", titleClass, "href", result.Page.URL), TextNode(result.Page.URL))

	snippet := El("p", A("class", snippetClass), policy.Node(result.Snippet))

	fragments := make([]*Node, 0, len(result.Highlights))
	for _, h := range result.Highlights {
		fragments = append(fragments, El("span", A("class", fragmentClass), policy.Node("..."+h+"...")))
	}
	highlights := El("div", A("class", highlightClass), fragments...)

	return El("div", A("class", cardClass), link, snippet, highlights)
}
