package httpserver

import (
	"strconv"
	"strings"
	"testing"
)

func TestTryParseRequest_NeedsMoreHead(t *testing.T) {
	res := tryParseRequest([]byte("GET / HTTP/1.1\r\nHost: x"))
	if !res.NeedMore {
		t.Fatalf("expected NeedMore for an incomplete head")
	}
}

func TestTryParseRequest_GetWithNoBody(t *testing.T) {
	raw := "GET /v1/models HTTP/1.1\r\nHost: localhost\r\n\r\n"
	res := tryParseRequest([]byte(raw))

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.NeedMore {
		t.Fatalf("did not expect NeedMore")
	}
	if res.Request.Method != "GET" || res.Request.Path != "/v1/models" {
		t.Errorf("Request = %+v", res.Request)
	}
	if len(res.Request.Body) != 0 {
		t.Errorf("expected empty body, got %d bytes", len(res.Request.Body))
	}
}

func TestTryParseRequest_PostWithContentLength(t *testing.T) {
	body := `{"model":"apple.local"}`
	raw := "POST /v1/chat/completions HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"\r\n" + body

	res := tryParseRequest([]byte(raw))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.NeedMore {
		t.Fatalf("did not expect NeedMore once the full body is buffered")
	}
	if string(res.Request.Body) != body {
		t.Errorf("Body = %q, want %q", res.Request.Body, body)
	}
	if res.Consumed != len(raw) {
		t.Errorf("Consumed = %d, want %d", res.Consumed, len(raw))
	}
}

func TestTryParseRequest_BodyNotYetFullyBuffered(t *testing.T) {
	raw := "POST /v1/chat/completions HTTP/1.1\r\nContent-Length: 100\r\n\r\nshort"
	res := tryParseRequest([]byte(raw))
	if !res.NeedMore {
		t.Fatalf("expected NeedMore when declared content-length exceeds buffered bytes")
	}
}

func TestTryParseRequest_InvalidContentLengthErrors(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nContent-Length: not-a-number\r\n\r\n"
	res := tryParseRequest([]byte(raw))
	if res.Err == nil {
		t.Fatalf("expected an error for a non-numeric Content-Length")
	}
}

func TestTryParseRequest_OversizedBodyRejected(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nContent-Length: " + strconv.Itoa(MaxBodyBytes+1) + "\r\n\r\n"
	res := tryParseRequest([]byte(raw))
	if !res.TooLarge {
		t.Fatalf("expected TooLarge for a body exceeding MaxBodyBytes")
	}
}

func TestEncodeChunkAndTerminalChunk(t *testing.T) {
	chunk := EncodeChunk([]byte("hello"))
	if !strings.HasPrefix(string(chunk), "5\r\n") {
		t.Errorf("EncodeChunk did not prefix the hex length: %q", chunk)
	}
	if !strings.HasSuffix(string(chunk), "hello\r\n") {
		t.Errorf("EncodeChunk did not suffix CRLF: %q", chunk)
	}
	if string(TerminalChunk()) != "0\r\n\r\n" {
		t.Errorf("TerminalChunk() = %q", TerminalChunk())
	}
}

