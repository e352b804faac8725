// Package httpx is a thin HTTP transfer wrapper. It pairs every response
// with the transfer metadata a cURL user would expect (DNS, connect and
// TLS timings, time to first byte, remote address) and tags each request
// with an X-Request-ID for correlation.
package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"resty.dev/v3"
)

// RequestIDHeader carries the generated correlation id of each request.
const RequestIDHeader = "X-Request-ID"

// Client issues HTTP requests with tracing enabled. Construct it with New;
// the zero value is not usable.
type Client struct {
	rc  *resty.Client
	log *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds the total time of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

// WithBaseURL resolves relative request URLs against base.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.rc.SetBaseURL(base) }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.rc.SetHeader(key, value) }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.rc.SetHeader("User-Agent", ua) }
}

// WithLogger routes the client's debug logging to the given logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a Client. The transport reuses the connection-pool tuning of
// a long-lived service client.
func New(opts ...Option) *Client {
	rc := resty.New()
	rc.SetTransport(&http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	})
	rc.EnableTrace()

	c := &Client{rc: rc, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	return c.rc.Close()
}

// Do performs one request and wraps the reply. A non-2xx status is not an
// error; the wrapper reports, the caller decides. body may be nil.
func (c *Client) Do(ctx context.Context, method, url string, body any) (*Response, error) {
	requestID := uuid.NewString()

	req := c.rc.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)
	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("httpx: %s %s (request %s): %w", method, url, requestID, err)
	}

	resp := &Response{raw: res, requestID: requestID}
	c.log.DebugContext(ctx, "HTTP request finished.",
		"method", method,
		"url", url,
		"status", resp.StatusCode(),
		"total", resp.Transfer().Total,
		"request_id", requestID,
	)
	return resp, nil
}

// Get is shorthand for Do with GET and no body.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil)
}

// Post is shorthand for Do with POST.
func (c *Client) Post(ctx context.Context, url string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, body)
}
