package openai

import (
	"encoding/json"
	"testing"

	"github.com/thushan/pigate/internal/core/domain"
)

func TestDecodeChatRequest_FlattensContentAndDefaultsMultiSegment(t *testing.T) {
	body := []byte(`{
		"model": "apple.local",
		"messages": [{"role":"user","content":[{"type":"text","text":"hi"}]}],
		"stream": false
	}`)

	req, err := DecodeChatRequest(body)
	if err != nil {
		t.Fatalf("DecodeChatRequest() error = %v", err)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "hi" {
		t.Errorf("Messages = %+v", req.Messages)
	}
	if !req.MultiSegment {
		t.Errorf("expected MultiSegment to default true when omitted")
	}
	if req.ToolChoice.Kind != domain.ToolChoiceAuto {
		t.Errorf("expected default ToolChoice to be Auto, got %+v", req.ToolChoice)
	}
}

func TestDecodeChatRequest_MultiSegmentExplicitFalse(t *testing.T) {
	body := []byte(`{"model":"apple.local","messages":[],"multi_segment":false}`)

	req, err := DecodeChatRequest(body)
	if err != nil {
		t.Fatalf("DecodeChatRequest() error = %v", err)
	}
	if req.MultiSegment {
		t.Errorf("expected MultiSegment=false to be honoured")
	}
}

func TestDecodeChatRequest_ParsesTools(t *testing.T) {
	body := []byte(`{
		"model": "apple.local",
		"messages": [],
		"tools": [{"type":"function","function":{"name":"get_weather","description":"d","parameters":{"type":"object"}}}]
	}`)

	req, err := DecodeChatRequest(body)
	if err != nil {
		t.Fatalf("DecodeChatRequest() error = %v", err)
	}
	if len(req.Tools) != 1 || req.Tools[0].Name != "get_weather" {
		t.Errorf("Tools = %+v", req.Tools)
	}
}

func TestEncodeChatResponse(t *testing.T) {
	resp := domain.ChatResponse{
		ID:      "chatcmpl-1",
		Object:  "chat.completion",
		Model:   "apple.local",
		Created: 100,
		Choices: []domain.Choice{
			{Message: &domain.ChatMessage{Role: domain.RoleAssistant, Content: "hi there"}, FinishReason: "stop", Index: 0},
		},
	}

	b, err := EncodeChatResponse(resp)
	if err != nil {
		t.Fatalf("EncodeChatResponse() error = %v", err)
	}

	var decoded wireChatResponse
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if len(decoded.Choices) != 1 || decoded.Choices[0].Message.Content != "hi there" {
		t.Errorf("Choices = %+v", decoded.Choices)
	}
}

func TestNewTerminalChunk_CarriesStopReason(t *testing.T) {
	chunk := NewTerminalChunk("chatcmpl-1", "apple.local", 100)
	if len(chunk.Choices) != 1 || chunk.Choices[0].FinishReason == nil || *chunk.Choices[0].FinishReason != "stop" {
		t.Errorf("NewTerminalChunk() = %+v", chunk)
	}
	if chunk.Choices[0].Delta.Content != "" {
		t.Errorf("expected empty delta content on the terminal chunk")
	}
}

func TestNewContentChunk_CarriesFragment(t *testing.T) {
	chunk := NewContentChunk("chatcmpl-1", "apple.local", 100, "fragment")
	if len(chunk.Choices) != 1 || chunk.Choices[0].Delta.Content != "fragment" {
		t.Errorf("NewContentChunk() = %+v", chunk)
	}
	if chunk.Choices[0].FinishReason != nil {
		t.Errorf("expected nil finish_reason on a content chunk")
	}
}
