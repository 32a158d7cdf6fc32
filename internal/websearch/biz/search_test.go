package biz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/provider"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/types"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records requests and answers through fn
type fakeProvider struct {
	mu    sync.Mutex
	calls []types.SearchRequest
	fn    func(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error)
}

func (f *fakeProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, *req)
	f.mu.Unlock()
	return f.fn(ctx, req)
}

func (f *fakeProvider) requests() []types.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.SearchRequest(nil), f.calls...)
}

func pageOf(totalPages int, urls ...string) *types.SearchResponse {
	resp := &types.SearchResponse{TotalResults: len(urls) * totalPages, TotalPages: totalPages}
	for _, u := range urls {
		resp.Items = append(resp.Items, &types.SearchResult{Page: types.Page{URL: u}, Snippet: "s " + u})
	}
	return resp
}

func okProvider(resp *types.SearchResponse) *fakeProvider {
	return &fakeProvider{fn: func(context.Context, *types.SearchRequest) (*types.SearchResponse, error) {
		return resp, nil
	}}
}

func urls(results []*types.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Page.URL)
	}
	return out
}

func TestSubmit_ResetsToFirstPage(t *testing.T) {
	p := okProvider(pageOf(5, "a"))
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, "go"))
	require.NoError(t, uc.Activate(ctx, 4))
	assert.Equal(t, 4, uc.State().CurrentPage)

	require.NoError(t, uc.Submit(ctx, "  rust "))

	calls := p.requests()
	require.Len(t, calls, 3)
	assert.Equal(t, types.SearchRequest{Query: "go", Page: 1, PageSize: 10}, calls[0])
	assert.Equal(t, types.SearchRequest{Query: "go", Page: 4, PageSize: 10}, calls[1])
	assert.Equal(t, types.SearchRequest{Query: "rust", Page: 1, PageSize: 10}, calls[2])

	s := uc.State()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, types.PaginationState{CurrentPage: 1, TotalPages: 5}, s.Pagination)
	assert.Equal(t, "  rust ", s.Input)
}

func TestPerformSearch_EmptyQueryIsNoop(t *testing.T) {
	p := okProvider(pageOf(1, "a"))
	uc := NewSearchUseCase(p, nil)
	before := uc.State()

	for _, q := range []string{"", "   ", "\t\n"} {
		err := uc.PerformSearch(context.Background(), q, 1)
		assert.True(t, apperrors.Is(err, apperrors.ErrSearchEmptyQuery))
	}

	assert.Empty(t, p.requests())
	assert.Equal(t, before, uc.State())
}

func TestSubmit_EmptyQueryStillResetsPage(t *testing.T) {
	p := okProvider(pageOf(5, "a"))
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, "go"))
	require.NoError(t, uc.Activate(ctx, 3))
	_ = uc.Submit(ctx, "   ")

	assert.Len(t, p.requests(), 2)
	s := uc.State()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 3, s.Pagination.CurrentPage, "nothing is re-rendered without a response")
}

func TestPerformSearch_Success(t *testing.T) {
	p := okProvider(&types.SearchResponse{
		TotalResults: 42,
		TotalPages:   5,
		Items: []*types.SearchResult{
			{Page: types.Page{URL: "https://c.example"}},
			{Page: types.Page{URL: "https://a.example"}},
			{Page: types.Page{URL: "https://b.example"}},
		},
	})
	uc := NewSearchUseCase(p, nil)

	require.NoError(t, uc.PerformSearch(context.Background(), "go", 2))

	s := uc.State()
	assert.Equal(t, "Found 42 results (5 pages)", s.Stats)
	assert.Equal(t, []string{"https://c.example", "https://a.example", "https://b.example"}, urls(s.Results))
	assert.Equal(t, types.PaginationState{CurrentPage: 2, TotalPages: 5}, s.Pagination)
	assert.True(t, s.ResultsVisible)
	assert.True(t, s.ResultsShown)
	assert.False(t, s.Loading)
	assert.False(t, s.Failed)
}

func TestPerformSearch_ZeroResults(t *testing.T) {
	uc := NewSearchUseCase(okProvider(&types.SearchResponse{}), nil)

	require.NoError(t, uc.Submit(context.Background(), "nothing-matches"))

	s := uc.State()
	assert.Equal(t, "Found 0 results (0 pages)", s.Stats)
	assert.Empty(t, s.Results)
	assert.Empty(t, view.Controls(s.Pagination.TotalPages, s.Pagination.CurrentPage))
}

func TestPerformSearch_ReplacesPreviousResults(t *testing.T) {
	responses := map[int]*types.SearchResponse{
		1: pageOf(2, "p1-a", "p1-b"),
		2: pageOf(2, "p2-a"),
	}
	p := &fakeProvider{fn: func(_ context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
		return responses[req.Page], nil
	}}
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, "go"))
	assert.Equal(t, []string{"p1-a", "p1-b"}, urls(uc.State().Results))

	require.NoError(t, uc.Activate(ctx, 2))
	assert.Equal(t, []string{"p2-a"}, urls(uc.State().Results))
}

func TestPerformSearch_HTTPFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"totalResults":30,"totalPages":3,"items":[{"page":{"url":"https://kept.example"},"snippet":"","highlights":[]}]}`))
	}))
	defer srv.Close()

	np, err := provider.NewNitionProvider(&types.ProviderConfig{APIHost: srv.URL}, nil)
	require.NoError(t, err)
	uc := NewSearchUseCase(np, nil)
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, "go"))

	fail.Store(true)
	err = uc.Activate(ctx, 2)
	assert.True(t, apperrors.Is(err, apperrors.ErrSearchUpstreamStatus))

	s := uc.State()
	assert.Equal(t, types.SearchErrorText, s.Stats)
	assert.False(t, s.Loading)
	assert.True(t, s.Failed)
	assert.True(t, s.ResultsShown)
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, types.PaginationState{CurrentPage: 1, TotalPages: 3}, s.Pagination)
	assert.Equal(t, []string{"https://kept.example"}, urls(s.Results))
}

func TestPerformSearch_FirstSearchFails(t *testing.T) {
	p := &fakeProvider{fn: func(context.Context, *types.SearchRequest) (*types.SearchResponse, error) {
		return nil, apperrors.Wrap(errors.New("dial tcp: connection refused"), apperrors.ErrSearchTransport)
	}}
	uc := NewSearchUseCase(p, nil)

	err := uc.Submit(context.Background(), "go")
	assert.True(t, apperrors.Is(err, apperrors.ErrSearchTransport))

	s := uc.State()
	assert.Equal(t, types.SearchErrorText, s.Stats)
	assert.False(t, s.Loading)
	assert.False(t, s.ResultsShown)
	assert.False(t, s.ResultsVisible)
}

func TestPerformSearch_SuccessClearsFailure(t *testing.T) {
	calls := 0
	p := &fakeProvider{fn: func(context.Context, *types.SearchRequest) (*types.SearchResponse, error) {
		calls++
		if calls == 1 {
			return nil, apperrors.New(apperrors.ErrSearchDecode)
		}
		return pageOf(1, "a"), nil
	}}
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	_ = uc.Submit(ctx, "go")
	require.True(t, uc.State().Failed)

	require.NoError(t, uc.Submit(ctx, "go"))
	assert.False(t, uc.State().Failed)
	assert.Equal(t, "Found 1 results (1 pages)", uc.State().Stats)
}

func TestPerformSearch_NullItemIsShapeFailure(t *testing.T) {
	uc := NewSearchUseCase(okProvider(&types.SearchResponse{TotalResults: 1, TotalPages: 1, Items: []*types.SearchResult{nil}}), nil)

	err := uc.Submit(context.Background(), "go")
	assert.True(t, apperrors.Is(err, apperrors.ErrSearchDecode))
	assert.Equal(t, types.SearchErrorText, uc.State().Stats)
}

func TestActivate_UsesCurrentInput(t *testing.T) {
	p := okProvider(pageOf(3, "a"))
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, "go"))
	uc.SetInput("typed but not submitted")
	require.NoError(t, uc.Activate(ctx, 2))

	calls := p.requests()
	require.Len(t, calls, 2)
	assert.Equal(t, "typed but not submitted", calls[1].Query)
	assert.Equal(t, 2, calls[1].Page)
}

func TestActivate_SamePageReissues(t *testing.T) {
	p := okProvider(pageOf(3, "a"))
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, "go"))
	require.NoError(t, uc.Activate(ctx, 1))
	assert.Len(t, p.requests(), 2)
}

func TestPerformSearch_LoadingWhileInFlight(t *testing.T) {
	var uc *SearchUseCase
	var sawLoading bool
	p := &fakeProvider{fn: func(context.Context, *types.SearchRequest) (*types.SearchResponse, error) {
		sawLoading = uc.State().Loading
		return pageOf(1, "a"), nil
	}}
	uc = NewSearchUseCase(p, nil)

	require.NoError(t, uc.Submit(context.Background(), "go"))
	assert.True(t, sawLoading)
	assert.False(t, uc.State().Loading)
}

func TestPerformSearch_StaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := &fakeProvider{fn: func(_ context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
		if req.Query == "slow" {
			close(started)
			<-release
			return pageOf(9, "stale"), nil
		}
		return pageOf(2, "fresh"), nil
	}}
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = uc.Submit(ctx, "slow")
	}()
	<-started

	require.NoError(t, uc.Submit(ctx, "fast"))
	assert.True(t, uc.State().Loading, "the slow request is still in flight")

	close(release)
	wg.Wait()

	s := uc.State()
	assert.False(t, s.Loading)
	assert.Equal(t, []string{"fresh"}, urls(s.Results))
	assert.Equal(t, types.PaginationState{CurrentPage: 1, TotalPages: 2}, s.Pagination)
	assert.Equal(t, "Found 2 results (2 pages)", s.Stats)
}

func TestPerformSearch_StaleFailureDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := &fakeProvider{fn: func(_ context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
		if req.Query == "slow" {
			close(started)
			<-release
			return nil, apperrors.New(apperrors.ErrSearchUpstreamStatus, "status 500")
		}
		return pageOf(1, "fresh"), nil
	}}
	uc := NewSearchUseCase(p, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- uc.Submit(ctx, "slow") }()
	<-started

	require.NoError(t, uc.Submit(ctx, "fast"))
	close(release)
	assert.Error(t, <-done)

	s := uc.State()
	assert.False(t, s.Failed)
	assert.Equal(t, "Found 1 results (1 pages)", s.Stats)
}

func TestState_ReturnsCopy(t *testing.T) {
	uc := NewSearchUseCase(okProvider(pageOf(1, "a", "b")), nil)
	require.NoError(t, uc.Submit(context.Background(), "go"))

	s := uc.State()
	s.Results[0] = nil
	s.Results = s.Results[:1]

	assert.Equal(t, []string{"a", "b"}, urls(uc.State().Results))
}
