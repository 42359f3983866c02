// Package upstream provides the shared HTTP plumbing for the cab server's
// three upstream services: the autocomplete provider, the place-resolution
// service and the cab search/hold backend.
package upstream

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultUserAgent is the default User-Agent string
	DefaultUserAgent = "cab-mcp-server/0.1.0"
)

var (
	// Global HTTP client with connection pooling
	httpClient *http.Client

	// User agent string
	userAgent     string
	userAgentLock sync.RWMutex
)

// init initializes the global HTTP client
func init() {
	// The client-level timeout is a backstop; per-call deadlines come
	// from the caller's context.
	httpClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: 60 * time.Second,
	}

	SetUserAgent(DefaultUserAgent)
}

// SetUserAgent sets the User-Agent string
func SetUserAgent(ua string) {
	userAgentLock.Lock()
	defer userAgentLock.Unlock()
	userAgent = ua
}

// GetUserAgent returns the current User-Agent string
func GetUserAgent() string {
	userAgentLock.RLock()
	defer userAgentLock.RUnlock()
	return userAgent
}

// NewRequest creates an HTTP request with the proper User-Agent header.
func NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", GetUserAgent())
	return req, nil
}

// Do performs an HTTP request against the named service, honoring that
// service's rate limit. The context governs both the rate-limit wait and
// the request itself.
func Do(ctx context.Context, service string, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", GetUserAgent())

	if err := WaitForService(ctx, service); err != nil {
		return nil, err
	}

	return httpClient.Do(req)
}
