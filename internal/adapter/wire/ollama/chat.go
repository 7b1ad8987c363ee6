// Package ollama decodes and encodes the Ollama-compatible wire subset:
// /api/chat, /api/generate, /api/tags, /api/version, /api/ps.
package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/thushan/pigate/internal/core/domain"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireOptions struct {
	Temperature *float64 `json:"temperature"`
	NumPredict  *int     `json:"num_predict"`
}

type wireChatRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Options  wireOptions   `json:"options"`
	Stream   bool          `json:"stream"`
}

// DecodeChatRequest decodes a POST /api/chat body into the internal
// ChatRequest. The route is always non-streaming regardless of the
// stream flag - streaming is only offered on /api/generate.
func DecodeChatRequest(body []byte) (domain.ChatRequest, error) {
	var wire wireChatRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.ChatRequest{}, fmt.Errorf("decode ollama chat request: %w", err)
	}

	messages := make([]domain.ChatMessage, 0, len(wire.Messages))
	for _, m := range wire.Messages {
		messages = append(messages, domain.ChatMessage{Role: domain.Role(m.Role), Content: m.Content})
	}

	return domain.ChatRequest{
		Model:        wire.Model,
		Messages:     messages,
		Temperature:  wire.Options.Temperature,
		MaxTokens:    wire.Options.NumPredict,
		Stream:       false,
		MultiSegment: false,
	}, nil
}

type wireChatResponse struct {
	Model          string      `json:"model"`
	CreatedAt      string      `json:"created_at"`
	Message        wireMessage `json:"message"`
	Done           bool        `json:"done"`
	TotalDuration  *int64      `json:"total_duration,omitempty"`
}

// EncodeChatResponse serializes the Ollama /api/chat response shape.
func EncodeChatResponse(model, createdAt, content string, totalDuration *int64) ([]byte, error) {
	wire := wireChatResponse{
		Model:         model,
		CreatedAt:     createdAt,
		Message:       wireMessage{Role: "assistant", Content: content},
		Done:          true,
		TotalDuration: totalDuration,
	}
	return json.Marshal(wire)
}
