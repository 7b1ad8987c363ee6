package ports

// Emitter is handed to a StreamDriver by the stream engine. All three
// methods funnel through a single-writer serializer that owns the
// underlying connection for the lifetime of the stream - concurrent Emit
// calls from multiple goroutines queue rather than interleave.
type Emitter interface {
	// EmitSSERaw writes the framing "data: " + raw + "\n\n" as one chunk.
	EmitSSERaw(raw string) error

	// EmitSSE serialises v to JSON and writes it as an SSE data line.
	EmitSSE(v interface{}) error

	// EmitNDJSON serialises v to JSON, appends "\n", and flushes it as one
	// chunk.
	EmitNDJSON(v interface{}) error

	// Err returns the first write error observed, if any. A StreamDriver
	// should check this after every emit and return promptly once set -
	// it means the peer went away or the server is shutting down.
	Err() error
}

// StreamDriver produces a streaming response body. It runs on its own
// goroutine with exclusive access to emitter until it returns; the stream
// engine writes the terminating zero-chunk once the driver returns.
type StreamDriver func(emitter Emitter)
