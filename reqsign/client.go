package reqsign

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// Client sends signed requests to a single base URL. Every request is
// signed immediately before sending, so the timestamp reflects the actual
// send time.
type Client struct {
	baseURL string
	config  SignConfig
	httpc   *http.Client
	header  http.Header
}

// ClientConfig configures a signing Client.
type ClientConfig struct {
	// BaseURL is prepended to every request path. Required. A trailing
	// slash is trimmed.
	BaseURL string

	// Sign configures request signing. Signer and AppID are required.
	Sign SignConfig

	// HTTPClient sends the requests. When nil, http.DefaultClient is
	// used.
	HTTPClient *http.Client

	// Header holds default headers applied to every request. Per-request
	// headers override them key by key.
	Header http.Header
}

// NewClient creates a Client. It returns ErrNoSigner or ErrNoAppID when
// the signing configuration is incomplete, and ErrInvalidInput when
// BaseURL is empty.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Sign.Signer == nil {
		return nil, ErrNoSigner
	}

	if cfg.Sign.AppID == "" {
		return nil, ErrNoAppID
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base url must not be empty", ErrInvalidInput)
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		config:  cfg.Sign,
		httpc:   httpc,
		header:  cfg.Header.Clone(),
	}, nil
}

// Do sends a signed request. The path is appended to the client's base URL
// and should begin with "/"; the query string, when present, is covered by
// the signature. A non-nil body with no Content-Type set gets
// "application/json". The signature headers are applied after all caller
// headers, so neither default nor per-request headers can displace them.
func (c *Client) Do(ctx context.Context, method, path string, body []byte, header http.Header) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	for key, values := range c.header {
		req.Header[http.CanonicalHeaderKey(key)] = slices.Clone(values)
	}

	for key, values := range header {
		req.Header[http.CanonicalHeaderKey(key)] = slices.Clone(values)
	}

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := SignRequest(req, c.config); err != nil {
		return nil, err
	}

	return c.httpc.Do(req)
}

// Get sends a signed GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

// Post sends a signed POST request.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

// Put sends a signed PUT request.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, nil)
}

// Patch sends a signed PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, nil)
}

// Delete sends a signed DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
