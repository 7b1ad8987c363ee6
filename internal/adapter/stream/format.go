// Package stream implements SSE and NDJSON framing, layered on the
// chunked transfer-encoding the connection writer already speaks.
package stream

import "encoding/json"

// FormatSSERaw frames a raw string as one SSE event: "data: " + raw + "\n\n".
func FormatSSERaw(raw string) []byte {
	out := make([]byte, 0, len(raw)+8)
	out = append(out, "data: "...)
	out = append(out, raw...)
	out = append(out, "\n\n"...)
	return out
}

// FormatSSE serialises v to JSON and frames it as an SSE event.
func FormatSSE(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return FormatSSERaw(string(b)), nil
}

// DoneSentinel is the literal terminating line for OpenAI-shaped SSE
// streams.
const DoneSentinel = "data: [DONE]\n\n"

// FormatNDJSON serialises v to JSON and appends a newline.
func FormatNDJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, b...)
	out = append(out, '\n')
	return out, nil
}
