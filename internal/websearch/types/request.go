package types

import (
	"strings"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
)

// DefaultPageSize is the number of results requested per page
const DefaultPageSize = 10

// SearchRequest represents one request against the backend search endpoint
type SearchRequest struct {
	Query     string `json:"query"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	SortOrder string `json:"sortOrder,omitempty"` // passed through, e.g. "RELEVANCE"
}

// NormalizeQuery trims the query and rejects empty or whitespace-only input
func NormalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", apperrors.New(apperrors.ErrSearchEmptyQuery)
	}
	return q, nil
}

// NewSearchRequest builds a request for the given query and page with the fixed page size
func NewSearchRequest(query string, page int) (*SearchRequest, error) {
	q, err := NormalizeQuery(query)
	if err != nil {
		return nil, err
	}
	return &SearchRequest{
		Query:    q,
		Page:     page,
		PageSize: DefaultPageSize,
	}, nil
}
