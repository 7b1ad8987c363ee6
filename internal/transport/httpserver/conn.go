package httpserver

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/pkg/pool"
)

// Handler dispatches a fully-parsed Request to a Response, or a streaming
// Response whose Stream field drives the body.
type Handler func(ctx context.Context, req *domain.Request) *domain.Response

var bufPool, _ = pool.NewLitePool(func() *bytes.Buffer {
	return bytes.NewBuffer(make([]byte, 0, 4096))
})

// Serve accepts connections on ln until ctx is cancelled, handling each on
// its own goroutine. It blocks until the listener is closed.
func Serve(ctx context.Context, ln net.Listener, handler Handler, log *slog.Logger) {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Warn("accept error", "error", err)
				return
			}
		}
		go handleConnection(ctx, conn, handler, log)
	}
}

// handleConnection owns the socket exclusively: it reads exactly one
// request, dispatches it, writes exactly one response (materialised or
// streamed), and closes. Keep-alive is out of scope, so every connection
// is one request/response cycle.
func handleConnection(ctx context.Context, conn net.Conn, handler Handler, log *slog.Logger) {
	defer conn.Close()

	buf := bufPool.Get()
	defer bufPool.Put(buf)

	req, err := readRequest(conn, buf)
	if err != nil {
		writeBadRequest(conn, err)
		return
	}
	if req == nil {
		// peer closed before sending any bytes
		return
	}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
	}()

	resp := handler(connCtx, req)
	if resp == nil {
		resp = domain.NewResponse(500, "text/plain", []byte("internal error"))
	}

	if resp.Stream != nil {
		serveStream(connCtx, conn, resp)
		return
	}

	if req.Method == "HEAD" {
		resp = &domain.Response{Status: resp.Status, Headers: resp.Headers}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Minute))
	_, _ = conn.Write(EncodeResponse(resp))
}

// readRequest accumulates bytes from conn into buf until one full request
// is parsed or the peer closes. It returns (nil, nil) on a clean close
// before any bytes arrived, and a *RequestParseError otherwise.
func readRequest(conn net.Conn, buf *bytes.Buffer) (*domain.Request, error) {
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	chunk := make([]byte, 8192)

	for {
		res := tryParseRequest(buf.Bytes())
		if res.TooLarge {
			return nil, &domain.RequestParseError{Reason: "body exceeds maximum size"}
		}
		if res.Err != nil {
			return nil, &domain.RequestParseError{Err: res.Err, Reason: "parse failure"}
		}
		if res.Request != nil {
			return res.Request, nil
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err != nil {
			if buf.Len() == 0 {
				return nil, nil
			}
			return nil, &domain.RequestParseError{Err: err, Reason: "connection closed before complete request"}
		}
	}
}

func writeBadRequest(conn net.Conn, err error) {
	status := 400
	if pe, ok := err.(*domain.RequestParseError); ok && pe.Reason == "body exceeds maximum size" {
		status = 413
	}
	resp := domain.Text(status, err.Error())
	_, _ = conn.Write(EncodeResponse(resp))
}

// serveStream hands the connection to a single-writer serializer for the
// duration of the stream driver, then writes the terminal chunk and closes.
func serveStream(ctx context.Context, conn net.Conn, resp *domain.Response) {
	_, _ = conn.Write(EncodeStreamHead(resp))

	emitter := newConnEmitter(ctx, conn)
	defer emitter.close()

	resp.Stream(emitter)

	if emitter.Err() == nil {
		_, _ = conn.Write(TerminalChunk())
	}
}

var _ ports.Emitter = (*connEmitter)(nil)
