// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

// Client wraps the process-wide outbound HTTP client. The underlying
// connection pool is safe for concurrent use; the gateway does not add
// pooling or backpressure of its own.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
