package provider

import (
	"context"
	"net/http"
	"strings"

	wshttp "github.com/lk2023060901/nitionsearch-console/internal/websearch/http"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/types"
)

// Provider defines the interface for the search backend
type Provider interface {
	// Search executes a search query for one page of results
	Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error)
}

// defaultUserAgent is sent when the configuration leaves user_agent empty
const defaultUserAgent = "NitionSearch-Console/1.0"

// BaseProvider provides the HTTP plumbing shared by backend clients
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config *types.ProviderConfig) *BaseProvider {
	return &BaseProvider{
		config:     config,
		httpClient: wshttp.NewHTTPClient(config.Timeout),
	}
}

// GetHTTPClient returns the HTTP client
func (b *BaseProvider) GetHTTPClient() *http.Client {
	return b.httpClient
}

// BuildDefaultHeaders builds default HTTP headers
func (b *BaseProvider) BuildDefaultHeaders() map[string]string {
	ua := b.config.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": ua,
	}
}

// endpoint joins the configured host with an API path
func (b *BaseProvider) endpoint(path string) string {
	return strings.TrimRight(b.config.APIHost, "/") + path
}

// DoRequest executes an HTTP request exactly once; failures are terminal for the request
func (b *BaseProvider) DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	return b.httpClient.Do(req.WithContext(ctx))
}
