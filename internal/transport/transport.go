// Package transport is the HTTP boundary of the application. It is only ever
// called from background goroutines, never from the UI loop.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnsupportedMethod is returned when a transport cannot issue a method.
var ErrUnsupportedMethod = errors.New("unsupported method")

// Methods lists the methods offered by the URL input, in display order.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodOptions,
	http.MethodHead,
}

// Response is the result of a completed HTTP exchange.
type Response struct {
	Status     int
	StatusText string
	Headers    http.Header
	Body       string
}

// Request describes an exchange captured from the UI.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    string
}

// Transport is the minimal capability the UI needs.
type Transport interface {
	Get(ctx context.Context, url string, header http.Header) (*Response, error)
	Post(ctx context.Context, url string, payload []byte, header http.Header) (*Response, error)
}

// Doer is implemented by transports that can issue any method.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Send issues req through t, preferring Doer when available.
func Send(ctx context.Context, t Transport, req Request) (*Response, error) {
	if d, ok := t.(Doer); ok {
		return d.Do(ctx, req)
	}
	switch strings.ToUpper(req.Method) {
	case "", http.MethodGet:
		return t.Get(ctx, req.URL, req.Headers)
	case http.MethodPost:
		return t.Post(ctx, req.URL, []byte(req.Body), req.Headers)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}
}
