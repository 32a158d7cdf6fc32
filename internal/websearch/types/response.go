package types

// SearchResponse is the envelope returned by GET /api/search
type SearchResponse struct {
	TotalResults int             `json:"totalResults"`
	TotalPages   int             `json:"totalPages"`
	Items        []*SearchResult `json:"items"`
}

// SearchResult represents a single ranked hit
type SearchResult struct {
	Page       Page     `json:"page"`
	Snippet    string   `json:"snippet"`    // may embed highlight markup
	Highlights []string `json:"highlights"` // may embed highlight markup
}

// Page identifies the document a result points at
type Page struct {
	ID  int    `json:"id,omitempty"`
	URL string `json:"url"`
}
