package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPClient implements Transport and Doer on net/http.
type HTTPClient struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewHTTPClient creates a client with the given request timeout.
func NewHTTPClient(timeout time.Duration, userAgent string, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Get implements Transport.
func (c *HTTPClient) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url, Headers: header})
}

// Post implements Transport.
func (c *HTTPClient) Post(ctx context.Context, url string, payload []byte, header http.Header) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, Headers: header, Body: string(payload)})
}

// Do implements Doer.
func (c *HTTPClient) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if req.Body != "" {
		bodyReader = bytes.NewBufferString(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if c.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.Body != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("sending request", zap.String("method", method), zap.String("url", req.URL))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("response received",
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("size", len(bodyBytes)),
	)

	return &Response{
		Status:     resp.StatusCode,
		StatusText: resp.Status,
		Headers:    resp.Header.Clone(),
		Body:       string(bodyBytes),
	}, nil
}
