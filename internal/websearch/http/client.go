package http

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the client the search provider sends backend
// requests through. One client is shared by every search, so overlapping
// searches reuse pooled connections to the single api_host.
//
// timeout comes from search.timeout. Zero means no client deadline, in which
// case a request lasts until the backend answers or its context is cancelled.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
