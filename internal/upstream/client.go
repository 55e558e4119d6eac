// Package upstream is the agent's HTTP client for the cloud time-clock API.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/config"
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(cfg config.UpstreamConfig) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}

	timeout := cfg.ConnTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Origin returns the upstream origin the agent proxies for.
func (c *Client) Origin() *url.URL {
	return c.baseURL
}

// Do forwards a raw request to the upstream, preserving method, path, query,
// headers, and body. The caller owns the returned response body.
func (c *Client) Do(ctx context.Context, method, pathAndQuery string, header http.Header, body []byte) (*http.Response, error) {
	target := c.baseURL.JoinPath()
	rel, err := url.Parse(pathAndQuery)
	if err != nil {
		return nil, fmt.Errorf("parse request path: %w", err)
	}
	target.Path = rel.Path
	target.RawQuery = rel.RawQuery

	var bodyReader *bytes.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}

	return resp, nil
}

// Post sends a JSON body to the upstream.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return c.Do(ctx, http.MethodPost, path, header, body)
}

// Health probes the upstream liveness endpoint. A nil error means the
// upstream is reachable and answering.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/api/health", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream health: status %d", resp.StatusCode)
	}
	return nil
}
