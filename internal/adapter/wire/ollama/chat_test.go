package ollama

import (
	"encoding/json"
	"testing"

	"github.com/thushan/pigate/internal/core/domain"
)

func TestDecodeChatRequest(t *testing.T) {
	body := []byte(`{
		"model": "apple.local",
		"messages": [{"role":"user","content":"hi"}],
		"options": {"temperature": 0.5, "num_predict": 64},
		"stream": true
	}`)

	req, err := DecodeChatRequest(body)
	if err != nil {
		t.Fatalf("DecodeChatRequest() error = %v", err)
	}
	if req.Model != "apple.local" {
		t.Errorf("Model = %q", req.Model)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != domain.RoleUser || req.Messages[0].Content != "hi" {
		t.Errorf("Messages = %+v", req.Messages)
	}
	if req.Temperature == nil || *req.Temperature != 0.5 {
		t.Errorf("Temperature = %v", req.Temperature)
	}
	if req.MaxTokens == nil || *req.MaxTokens != 64 {
		t.Errorf("MaxTokens = %v", req.MaxTokens)
	}
	if req.Stream {
		t.Errorf("expected Stream to always decode false for /api/chat regardless of the wire flag")
	}
}

func TestDecodeChatRequest_InvalidJSON(t *testing.T) {
	_, err := DecodeChatRequest([]byte(`not json`))
	if err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}

func TestEncodeChatResponse(t *testing.T) {
	b, err := EncodeChatResponse("apple.local:latest", "2026-08-06T00:00:00Z", "hello there", nil)
	if err != nil {
		t.Fatalf("EncodeChatResponse() error = %v", err)
	}

	var decoded wireChatResponse
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("failed to decode encoded response: %v", err)
	}
	if decoded.Message.Content != "hello there" || decoded.Message.Role != "assistant" {
		t.Errorf("Message = %+v", decoded.Message)
	}
	if !decoded.Done {
		t.Errorf("expected Done=true for a non-streaming chat response")
	}
}
