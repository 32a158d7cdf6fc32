package types

import "fmt"

// SearchErrorText is the only failure text ever shown to the user
const SearchErrorText = "An error occurred while searching. Please try again."

// PaginationState holds the arguments the pagination region was last rendered with
type PaginationState struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// ViewState is everything the view function needs to draw the search page.
//
// CurrentPage is the page the user asked for last and changes as soon as a
// control is activated. Pagination only changes after a successful response,
// so a failed page click leaves the previous controls on screen.
type ViewState struct {
	Input          string          `json:"input"`
	CurrentPage    int             `json:"currentPage"`
	Pagination     PaginationState `json:"pagination"`
	Loading        bool            `json:"loading"`
	Stats          string          `json:"stats"`
	Results        []*SearchResult `json:"results"`
	ResultsVisible bool            `json:"resultsVisible"`
	ResultsShown   bool            `json:"resultsShown"`
	Failed         bool            `json:"failed"`
}

// NewViewState returns the state of a freshly loaded page
func NewViewState() ViewState {
	return ViewState{CurrentPage: 1}
}

// StatsText formats the summary line for a successful response
func StatsText(resp *SearchResponse) string {
	return fmt.Sprintf("Found %d results (%d pages)", resp.TotalResults, resp.TotalPages)
}
