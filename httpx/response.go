package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resty.dev/v3"
)

// Response wraps a completed HTTP exchange together with its transfer
// metadata. The body is fully read by the time a Response is returned.
type Response struct {
	raw       *resty.Response
	requestID string
}

// RequestID returns the X-Request-ID generated for this exchange.
func (r *Response) RequestID() string { return r.requestID }

// StatusCode returns the numeric status, e.g. 404.
func (r *Response) StatusCode() int { return r.raw.StatusCode() }

// Status returns the full status line text, e.g. "404 Not Found".
func (r *Response) Status() string { return r.raw.Status() }

// Proto returns the negotiated protocol, e.g. "HTTP/2.0".
func (r *Response) Proto() string { return r.raw.Proto() }

// Header returns the response headers.
func (r *Response) Header() http.Header { return r.raw.Header() }

// Body returns the response body bytes.
func (r *Response) Body() []byte { return r.raw.Bytes() }

// String returns the response body as a string.
func (r *Response) String() string { return r.raw.String() }

// Size returns the number of body bytes received.
func (r *Response) Size() int64 { return r.raw.Size() }

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool { return r.raw.IsSuccess() }

// IsError reports a 4xx or 5xx status.
func (r *Response) IsError() bool { return r.raw.IsError() }

// JSON unmarshals the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body(), v); err != nil {
		return fmt.Errorf("httpx: decode body of request %s: %w", r.requestID, err)
	}
	return nil
}

// TransferInfo is the cURL-style metadata block of one exchange.
type TransferInfo struct {
	RequestID       string
	DNSLookup       time.Duration
	Connect         time.Duration
	TLSHandshake    time.Duration
	TimeToFirstByte time.Duration
	Total           time.Duration
	ConnReused      bool
	RemoteAddr      string
}

// Transfer returns the timing and connection metadata recorded for this
// exchange.
func (r *Response) Transfer() TransferInfo {
	ti := r.raw.Request.TraceInfo()
	return TransferInfo{
		RequestID:       r.requestID,
		DNSLookup:       ti.DNSLookup,
		Connect:         ti.TCPConnTime,
		TLSHandshake:    ti.TLSHandshake,
		TimeToFirstByte: ti.ServerTime,
		Total:           ti.TotalTime,
		ConnReused:      ti.IsConnReused,
		RemoteAddr:      fmt.Sprint(ti.RemoteAddr),
	}
}

// Summary renders the transfer info in a single line for logs and CLI
// output.
func (t TransferInfo) Summary() string {
	return fmt.Sprintf("dns=%s connect=%s tls=%s ttfb=%s total=%s reused=%t remote=%s",
		t.DNSLookup, t.Connect, t.TLSHandshake, t.TimeToFirstByte, t.Total, t.ConnReused, t.RemoteAddr)
}
