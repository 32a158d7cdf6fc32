package view

import "github.com/lk2023060901/nitionsearch-console/internal/websearch/types"

// Element ids of the search page
const (
	IDSearchForm    = "searchForm"
	IDSearchInput   = "searchInput"
	IDSearchButton  = "searchButton"
	IDSearchResults = "searchResults"
	IDResultsList   = "resultsList"
	IDResultsStats  = "resultsStats"
	IDPagination    = "pagination"
	IDLoader        = "loader"

	ContainerClass    = "search-container"
	ResultsShownClass = "results-shown"
)

// Options controls how the page links back into the application
type Options struct {
	Policy       MarkupPolicy
	SearchAction string   // form action for a query submission
	PageHref     HrefFunc // link target for pagination controls
}

// RenderPage is the view function: it draws the whole search page from state
func RenderPage(state types.ViewState, opts Options) *Node {
	policy := opts.Policy
	if policy == "" {
		policy = MarkupTrusted
	}

	containerClass := ContainerClass
	if state.ResultsShown {
		containerClass += " " + ResultsShownClass
	}

	form := El("form", A("id", IDSearchForm, "action", opts.SearchAction, "method", "get"),
		El("input", A("id", IDSearchInput, "type", "text", "name", "query",
			"value", state.Input, "placeholder", "Search...")),
		El("button", A("id", IDSearchButton, "type", "submit"), TextNode("Search")),
	)

	loaderStyle := "display: none"
	if state.Loading {
		loaderStyle = "display: block"
	}
	loader := El("div", A("id", IDLoader, "class", "loader", "style", loaderStyle), TextNode("Searching..."))

	cards := make([]*Node, 0, len(state.Results))
	for _, r := range state.Results {
		cards = append(cards, ResultCard(r, policy))
	}

	controls := Controls(state.Pagination.TotalPages, state.Pagination.CurrentPage)

	resultsStyle := "opacity: 0"
	if state.ResultsVisible {
		resultsStyle = "opacity: 1"
	}
	results := El("div", A("id", IDSearchResults, "style", resultsStyle),
		El("div", A("id", IDResultsStats, "class", "text-gray-600 mb-4"), TextNode(state.Stats)),
		El("div", A("id", IDResultsList, "class", "space-y-4"), cards...),
		El("nav", A("id", IDPagination, "class", "flex justify-center gap-2 mt-8"), Pagination(controls, opts.PageHref)...),
	)

	return El("div", A("class", containerClass), form, loader, results)
}

// Document wraps body content into a complete HTML document
func Document(title string, body ...*Node) *Node {
	head := El("head", nil,
		El("meta", A("charset", "utf-8")),
		El("title", nil, TextNode(title)),
	)
	return El("html", A("lang", "en"), head, El("body", nil, body...))
}
