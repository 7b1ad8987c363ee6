package httpserver

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/thushan/pigate/internal/adapter/stream"
)

// connEmitter is the single-writer serializer that owns conn for the
// lifetime of a streaming response. Every Emit* call takes mu, so
// concurrent callers queue rather than interleave writes on the socket -
// out-of-order bytes on the wire would corrupt SSE/NDJSON framing.
type connEmitter struct {
	conn net.Conn
	ctx  context.Context
	mu   sync.Mutex
	err  error
}

func newConnEmitter(ctx context.Context, conn net.Conn) *connEmitter {
	return &connEmitter{conn: conn, ctx: ctx}
}

func (e *connEmitter) EmitSSERaw(raw string) error {
	return e.write(stream.FormatSSERaw(raw))
}

func (e *connEmitter) EmitSSE(v interface{}) error {
	b, err := stream.FormatSSE(v)
	if err != nil {
		return e.fail(err)
	}
	return e.write(b)
}

func (e *connEmitter) EmitNDJSON(v interface{}) error {
	b, err := stream.FormatNDJSON(v)
	if err != nil {
		return e.fail(err)
	}
	return e.write(b)
}

func (e *connEmitter) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *connEmitter) close() {}

func (e *connEmitter) write(payload []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return e.err
	}
	select {
	case <-e.ctx.Done():
		e.err = e.ctx.Err()
		return e.err
	default:
	}

	_ = e.conn.SetWriteDeadline(time.Now().Add(2 * time.Minute))
	if _, err := e.conn.Write(EncodeChunk(payload)); err != nil {
		e.err = err
	}
	return e.err
}

func (e *connEmitter) fail(err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err == nil {
		e.err = err
	}
	return e.err
}
