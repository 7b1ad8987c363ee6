package domain

import (
	"strings"

	"github.com/thushan/pigate/internal/core/ports"
)

// Request is a fully-parsed HTTP/1.1 request produced by the connection
// reader. It owns nothing beyond the lifetime of the handler that consumes
// it - no cross-request sharing.
type Request struct {
	Headers Header
	Method  string
	Path    string
	Version string
	Body    []byte
}

// Header is a case-insensitive header map. Keys are stored lower-cased.
type Header map[string]string

func NewHeader() Header {
	return make(Header)
}

func (h Header) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

func (h Header) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// Response is a fully-materialised HTTP response. A handler returns either
// a Response or a StreamDriver - never both.
type Response struct {
	Headers Header
	Body    []byte
	Status  int
	Stream  ports.StreamDriver // non-nil for streaming responses; Body is ignored
}

func NewResponse(status int, contentType string, body []byte) *Response {
	h := NewHeader()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &Response{Status: status, Headers: h, Body: body}
}

// StreamResponse builds a Response whose body is produced by driver rather
// than materialised up front. contentType is either SSE or NDJSON's.
func StreamResponse(contentType string, driver ports.StreamDriver) *Response {
	h := NewHeader()
	h.Set("Content-Type", contentType)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "close")
	h.Set("Transfer-Encoding", "chunked")
	return &Response{Status: 200, Headers: h, Stream: driver}
}

// JSON builds a Response with an application/json body.
func JSON(status int, body []byte) *Response {
	return NewResponse(status, "application/json", body)
}

// Text builds a Response with a text/plain body.
func Text(status int, body string) *Response {
	return NewResponse(status, "text/plain; charset=utf-8", []byte(body))
}

// NormalizePath strips a query suffix and a single trailing slash, leaving
// the root "/" untouched. Idempotent: NormalizePath(NormalizePath(p)) == NormalizePath(p).
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		path = "/"
	}
	return path
}

// ReasonPhrase returns the canonical reason phrase for a status code,
// defaulting to "OK" for anything not explicitly enumerated.
func ReasonPhrase(status int) string {
	switch status {
	case 200:
		return "OK"
	case 204:
		return "No Content"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 413:
		return "Payload Too Large"
	case 500:
		return "Internal Server Error"
	default:
		return "OK"
	}
}
