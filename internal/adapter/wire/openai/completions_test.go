package openai

import "testing"

func TestFlattenPrompt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"hello"`, "hello"},
		{"array of strings", `["part one", "part two"]`, "part one\n\npart two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flattenPrompt([]byte(tt.raw)); got != tt.want {
				t.Errorf("flattenPrompt(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeCompletionRequest(t *testing.T) {
	body := []byte(`{"model":"apple.local","prompt":"say hi","stream":true}`)

	req, err := DecodeCompletionRequest(body)
	if err != nil {
		t.Fatalf("DecodeCompletionRequest() error = %v", err)
	}
	if req.Model != "apple.local" || req.Prompt != "say hi" || !req.Stream {
		t.Errorf("req = %+v", req)
	}
}

func TestNewTerminalTextChunk_HasNoText(t *testing.T) {
	chunk := NewTerminalTextChunk("cmpl-1", "apple.local", 100)
	if len(chunk.Choices) != 1 || chunk.Choices[0].Text != "" {
		t.Errorf("expected empty text on the terminal chunk, got %+v", chunk.Choices)
	}
	if chunk.Choices[0].FinishReason == nil || *chunk.Choices[0].FinishReason != "stop" {
		t.Errorf("expected finish_reason=stop on the terminal chunk")
	}
}
