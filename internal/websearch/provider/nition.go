package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/types"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// searchPath is the backend endpoint serving paginated results
const searchPath = "/api/search"

// maxErrorBody caps how much of a failed response body ends up in logs
const maxErrorBody = 512

// NitionProvider talks to the nitionsearch backend
type NitionProvider struct {
	*BaseProvider
	logger *zap.Logger
}

var _ Provider = (*NitionProvider)(nil)

// NewNitionProvider creates a new backend client after validating its configuration
func NewNitionProvider(config *types.ProviderConfig, logger *zap.Logger) (*NitionProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NitionProvider{
		BaseProvider: NewBaseProvider(config),
		logger:       logger.Named("nition"),
	}, nil
}

// buildURL renders GET /api/search?query=..&page=..&pageSize=..[&sortOrder=..]
func (p *NitionProvider) buildURL(req *types.SearchRequest) string {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	sortOrder := req.SortOrder
	if sortOrder == "" {
		sortOrder = p.config.SortOrder
	}

	rawQuery := fmt.Sprintf("query=%s&page=%d&pageSize=%d", encodeComponent(req.Query), req.Page, pageSize)
	if sortOrder != "" {
		rawQuery += "&sortOrder=" + encodeComponent(strings.ToUpper(sortOrder))
	}

	return fmt.Sprintf("%s?%s", p.endpoint(searchPath), rawQuery)
}

// componentUnescaper restores the characters a URI component may carry literally
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s as a URI component: spaces become %20, never +
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Search executes a single search request; it never retries
func (p *NitionProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	startTime := time.Now()

	apiURL := p.buildURL(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrSearchTransport, "failed to create request")
	}
	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrSearchTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.Newf(apperrors.ErrSearchUpstreamStatus,
			"HTTP error! status: %d body: %s", resp.StatusCode, upstreamMessage(body))
	}

	var out types.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrSearchDecode)
	}

	p.logger.Debug("search completed",
		zap.String("query", req.Query),
		zap.Int("page", req.Page),
		zap.Int("total_results", out.TotalResults),
		zap.Int("items", len(out.Items)),
		zap.Duration("took", time.Since(startTime)),
	)

	return &out, nil
}

// upstreamMessage picks the message out of a JSON error body, falling back to the raw text
func upstreamMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "error", "detail"} {
			if msg := gjson.GetBytes(body, path).String(); msg != "" {
				return msg
			}
		}
	}
	return strings.TrimSpace(string(body))
}
