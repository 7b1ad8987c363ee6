// Package httpserver implements a connection reader and HTTP/1.1 codec:
// a minimal parser over raw TCP bytes and a matching response/chunk
// serializer. It intentionally does not use net/http - the wire-level
// parsing itself is the gateway's own component, not an implementation
// detail delegated elsewhere.
package httpserver

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/thushan/pigate/internal/core/domain"
)

const crlfcrlf = "\r\n\r\n"

// MaxBodyBytes bounds request bodies as hardening against unbounded
// accumulation: anything larger is rejected with 413 rather than buffered
// indefinitely.
const MaxBodyBytes = 64 * 1024 * 1024

// parseResult is the outcome of one attempt to carve a Request out of buf.
type parseResult struct {
	Request  *domain.Request
	Err      error
	Consumed int
	NeedMore bool
	TooLarge bool
}

// tryParseRequest attempts to parse exactly one request from the front of
// buf. It never blocks - if the head or body isn't fully buffered yet it
// reports NeedMore so the caller can read more bytes and retry.
func tryParseRequest(buf []byte) parseResult {
	headEnd := bytes.Index(buf, []byte(crlfcrlf))
	if headEnd < 0 {
		if len(buf) > MaxBodyBytes {
			return parseResult{TooLarge: true}
		}
		return parseResult{NeedMore: true}
	}

	head := string(buf[:headEnd])
	bodyStart := headEnd + len(crlfcrlf)

	lines := strings.Split(head, "\r\n")
	if len(lines) == 0 {
		return parseResult{Err: fmt.Errorf("empty request head")}
	}

	reqLine := strings.Fields(lines[0])
	if len(reqLine) < 2 {
		return parseResult{Err: fmt.Errorf("malformed request line %q", lines[0])}
	}
	method := reqLine[0]
	path := reqLine[1]
	version := "HTTP/1.1"
	if len(reqLine) >= 3 {
		version = reqLine[2]
	}

	headers := domain.NewHeader()
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		headers.Set(key, val)
	}

	contentLength := 0
	if cl := headers.Get("content-length"); cl != "" {
		n, err := strconv.Atoi(strings.TrimSpace(cl))
		if err != nil || n < 0 {
			return parseResult{Err: fmt.Errorf("invalid content-length %q", cl)}
		}
		contentLength = n
	}

	if bodyStart+contentLength > MaxBodyBytes {
		return parseResult{TooLarge: true}
	}

	if contentLength > 0 {
		if len(buf) < bodyStart+contentLength {
			return parseResult{NeedMore: true}
		}
	}

	bodyEnd := bodyStart + contentLength
	if contentLength == 0 {
		// No declared length: treat whatever's already buffered (if any) as
		// the body without waiting for more bytes.
		bodyEnd = len(buf)
	}

	body := make([]byte, bodyEnd-bodyStart)
	copy(body, buf[bodyStart:bodyEnd])

	req := &domain.Request{
		Method:  strings.ToUpper(method),
		Path:    domain.NormalizePath(path),
		Version: version,
		Headers: headers,
		Body:    body,
	}
	return parseResult{Request: req, Consumed: bodyEnd}
}

// writeResponseHead serialises the status line and the given headers (not
// the body) into a byte slice ending in a blank line, ready to prefix a
// body write.
func writeResponseHead(status int, headers domain.Header, contentLength int, includeContentLength bool) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", status, domain.ReasonPhrase(status))
	for k, v := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", canonicalHeaderKey(k), v)
	}
	if includeContentLength {
		fmt.Fprintf(&b, "Content-Length: %d\r\n", contentLength)
	}
	b.WriteString("Access-Control-Allow-Origin: *\r\n")
	b.WriteString("\r\n")
	return b.Bytes()
}

// EncodeResponse serialises a fully-materialised (non-streaming) response.
func EncodeResponse(resp *domain.Response) []byte {
	head := writeResponseHead(resp.Status, resp.Headers, len(resp.Body), true)
	out := make([]byte, 0, len(head)+len(resp.Body))
	out = append(out, head...)
	out = append(out, resp.Body...)
	return out
}

// EncodeStreamHead serialises the headers for a chunked, streaming
// response. The caller is then expected to write chunk-framed bodies via
// EncodeChunk, terminated by TerminalChunk.
func EncodeStreamHead(resp *domain.Response) []byte {
	return writeResponseHead(resp.Status, resp.Headers, 0, false)
}

// EncodeChunk frames one chunk of a chunked-transfer-encoded body: a
// lowercase hex size line, the bytes, then CRLF.
func EncodeChunk(data []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%x\r\n", len(data))
	b.Write(data)
	b.WriteString("\r\n")
	return b.Bytes()
}

// TerminalChunk is the zero-size chunk that ends a chunked body.
func TerminalChunk() []byte {
	return []byte("0\r\n\r\n")
}

func canonicalHeaderKey(lower string) string {
	parts := strings.Split(lower, "-")
	for i, p := range parts {
		if len(p) == 0 {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}
