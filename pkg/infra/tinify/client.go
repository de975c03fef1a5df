package tinify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

// DefaultEndpoint is the TinyPNG shrink API
const DefaultEndpoint = "https://api.tinify.com/shrink"

type client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
}

// Option is a functional option for the client
type Option func(*client)

// WithEndpoint overrides the shrink endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *client) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds every request. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client is copied, so options
// never modify the caller's instance.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// NewClient creates a new compression service client
func NewClient(opts ...Option) interfaces.Compressor {
	c := &client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c
}

// errorResponse is the body the service sends with non-2xx statuses
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Shrink uploads the raw image with basic auth "api:<key>" and decodes the result
func (c *client) Shrink(ctx context.Context, apiKey string, image []byte) (*model.ShrinkResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrUpload, err), "failed to create shrink request")
	}
	req.SetBasicAuth("api", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrUpload, err), "failed to call shrink endpoint",
			goerr.V("endpoint", c.endpoint))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrUpload, err), "failed to read shrink response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		return nil, goerr.Wrap(model.ErrUpload, "shrink request rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("error", e.Error),
			goerr.V("message", e.Message),
		)
	}

	var result model.ShrinkResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrProtocol, err), "failed to decode shrink response")
	}
	if result.Output.URL == "" {
		return nil, goerr.Wrap(model.ErrProtocol, "shrink response has no output url")
	}

	return &result, nil
}

// Download fetches the compressed image from its output URL
func (c *client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrDownload, err), "failed to create download request",
			goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrDownload, err), "failed to download compressed image",
			goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(model.ErrDownload, "unexpected status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", url))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrDownload, err), "failed to read compressed image",
			goerr.V("url", url))
	}
	if len(data) == 0 {
		return nil, goerr.Wrap(model.ErrDownload, "compressed image is empty", goerr.V("url", url))
	}

	return data, nil
}
