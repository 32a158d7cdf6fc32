package biz

import (
	"context"
	"sync"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/provider"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/types"
	"go.uber.org/zap"
)

// SearchUseCase owns the search page state and drives every search.
//
// Each search takes a token from a monotonically increasing sequence. A
// response, successful or not, is applied only while its token is the latest
// issued, so a slow early request cannot overwrite a newer one. The loading
// flag stays on while any request is in flight.
type SearchUseCase struct {
	provider provider.Provider
	logger   *zap.Logger

	mu       sync.Mutex
	state    types.ViewState
	seq      uint64
	inflight int
}

// NewSearchUseCase creates a search use case with a fresh page state
func NewSearchUseCase(p provider.Provider, logger *zap.Logger) *SearchUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchUseCase{
		provider: p,
		logger:   logger,
		state:    types.NewViewState(),
	}
}

// State returns a copy of the current view state
func (uc *SearchUseCase) State() types.ViewState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := uc.state
	s.Results = append([]*types.SearchResult(nil), uc.state.Results...)
	return s
}

// SetInput records typed query text without searching
func (uc *SearchUseCase) SetInput(text string) {
	uc.mu.Lock()
	uc.state.Input = text
	uc.mu.Unlock()
}

// Submit handles a query submission: the page resets to 1 before searching
func (uc *SearchUseCase) Submit(ctx context.Context, text string) error {
	uc.mu.Lock()
	uc.state.Input = text
	uc.state.CurrentPage = 1
	uc.mu.Unlock()

	return uc.PerformSearch(ctx, text, 1)
}

// Activate handles a pagination control: it moves to page and searches with the current input
func (uc *SearchUseCase) Activate(ctx context.Context, page int) error {
	uc.mu.Lock()
	uc.state.CurrentPage = page
	input := uc.state.Input
	uc.mu.Unlock()

	return uc.PerformSearch(ctx, input, page)
}

// PerformSearch fetches one page of results and folds the outcome into the state.
// An empty query is a no-op and returns an ErrSearchEmptyQuery error.
func (uc *SearchUseCase) PerformSearch(ctx context.Context, query string, page int) error {
	req, err := types.NewSearchRequest(query, page)
	if err != nil {
		return err
	}

	token := uc.begin()
	defer uc.end()

	resp, err := uc.provider.Search(ctx, req)
	if err == nil {
		err = checkShape(resp)
	}
	if err != nil {
		uc.fail(token, req, err)
		return err
	}

	uc.apply(token, req, resp)
	return nil
}

func (uc *SearchUseCase) begin() uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.seq++
	uc.inflight++
	uc.state.Loading = true
	return uc.seq
}

func (uc *SearchUseCase) end() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.inflight--
	uc.state.Loading = uc.inflight > 0
}

func (uc *SearchUseCase) apply(token uint64, req *types.SearchRequest, resp *types.SearchResponse) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if token != uc.seq {
		uc.logger.Debug("discarding stale search response",
			zap.String("query", req.Query),
			zap.Int("page", req.Page),
			zap.Uint64("token", token),
			zap.Uint64("latest", uc.seq),
		)
		return
	}

	uc.state.Stats = types.StatsText(resp)
	uc.state.Results = append(make([]*types.SearchResult, 0, len(resp.Items)), resp.Items...)
	uc.state.Pagination = types.PaginationState{CurrentPage: req.Page, TotalPages: resp.TotalPages}
	uc.state.ResultsVisible = true
	uc.state.ResultsShown = true
	uc.state.Failed = false
}

func (uc *SearchUseCase) fail(token uint64, req *types.SearchRequest, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	fields := []zap.Field{
		zap.String("query", req.Query),
		zap.Int("page", req.Page),
		zap.Int("code", apperrors.ExtractCode(err)),
		zap.String("details", apperrors.GetDetails(err)),
		zap.Error(err),
	}
	if token != uc.seq {
		uc.logger.Debug("discarding stale search failure", fields...)
		return
	}

	uc.logger.Error("search failed", fields...)
	uc.state.Stats = types.SearchErrorText
	uc.state.Failed = true
}

// checkShape rejects envelopes the renderer cannot draw
func checkShape(resp *types.SearchResponse) error {
	if resp == nil {
		return apperrors.New(apperrors.ErrSearchDecode, "empty response")
	}
	for i, item := range resp.Items {
		if item == nil {
			return apperrors.Newf(apperrors.ErrSearchDecode, "item %d is null", i)
		}
	}
	return nil
}
