package openai

import (
	"encoding/json"
	"fmt"

	"github.com/thushan/pigate/internal/core/domain"
)

type wireChatMessage struct {
	Content json.RawMessage `json:"content"`
	Role    string          `json:"role"`
}

type wireToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type wireTool struct {
	Type     string           `json:"type"`
	Function wireToolFunction `json:"function"`
}

type wireChatRequest struct {
	Model        string          `json:"model"`
	Messages     []wireChatMessage `json:"messages"`
	Temperature  *float64        `json:"temperature"`
	MaxTokens    *int            `json:"max_tokens"`
	Tools        []wireTool      `json:"tools"`
	ToolChoice   json.RawMessage `json:"tool_choice"`
	Stream       bool            `json:"stream"`
	MultiSegment *bool           `json:"multi_segment"`
}

// DecodeChatRequest decodes a POST /v1/chat/completions body into the
// internal ChatRequest, flattening every message's polymorphic content
// shape to a single string.
func DecodeChatRequest(body []byte) (domain.ChatRequest, error) {
	var wire wireChatRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.ChatRequest{}, fmt.Errorf("decode chat request: %w", err)
	}

	messages := make([]domain.ChatMessage, 0, len(wire.Messages))
	for _, m := range wire.Messages {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.Role(m.Role),
			Content: FlattenContent(m.Content),
		})
	}

	tools := make([]domain.ToolDefinition, 0, len(wire.Tools))
	for _, t := range wire.Tools {
		var schema map[string]interface{}
		if len(t.Function.Parameters) > 0 {
			_ = json.Unmarshal(t.Function.Parameters, &schema)
		}
		tools = append(tools, domain.ToolDefinition{
			Type:        t.Type,
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Schema:      schema,
		})
	}

	multiSegment := true
	if wire.MultiSegment != nil {
		multiSegment = *wire.MultiSegment
	}

	return domain.ChatRequest{
		Model:        wire.Model,
		Messages:     messages,
		Temperature:  wire.Temperature,
		MaxTokens:    wire.MaxTokens,
		Tools:        tools,
		ToolChoice:   DecodeToolChoice(wire.ToolChoice),
		Stream:       wire.Stream,
		MultiSegment: multiSegment,
	}, nil
}

type wireChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireChatChoice struct {
	Message      wireChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
	Index        int               `json:"index"`
}

type wireChatResponse struct {
	ID      string           `json:"id"`
	Object  string           `json:"object"`
	Model   string           `json:"model"`
	Choices []wireChatChoice `json:"choices"`
	Created int64            `json:"created"`
}

// EncodeChatResponse serializes an internal ChatResponse to the OpenAI
// chat.completion wire shape.
func EncodeChatResponse(resp domain.ChatResponse) ([]byte, error) {
	wire := wireChatResponse{
		ID:      resp.ID,
		Object:  resp.Object,
		Model:   resp.Model,
		Created: resp.Created,
	}
	for _, c := range resp.Choices {
		role, content := "assistant", ""
		if c.Message != nil {
			role = string(c.Message.Role)
			content = c.Message.Content
		}
		wire.Choices = append(wire.Choices, wireChatChoice{
			Message:      wireChoiceMessage{Role: role, Content: content},
			FinishReason: c.FinishReason,
			Index:        c.Index,
		})
	}
	return json.Marshal(wire)
}

// ChatCompletionChunk is one SSE delta event for streaming chat.completions.
type ChatCompletionChunk struct {
	ID      string              `json:"id"`
	Object  string              `json:"object"`
	Model   string              `json:"model"`
	Choices []ChatCompletionDelta `json:"choices"`
	Created int64               `json:"created"`
}

type ChatCompletionDelta struct {
	Delta        DeltaContent `json:"delta"`
	FinishReason *string      `json:"finish_reason"`
	Index        int          `json:"index"`
}

type DeltaContent struct {
	Content string `json:"content,omitempty"`
}

// NewContentChunk builds a delta event carrying one fragment of content.
func NewContentChunk(id, model string, created int64, content string) ChatCompletionChunk {
	return ChatCompletionChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Model:   model,
		Created: created,
		Choices: []ChatCompletionDelta{{Delta: DeltaContent{Content: content}, Index: 0}},
	}
}

// NewTerminalChunk builds the terminal delta event: empty delta with
// finish_reason "stop".
func NewTerminalChunk(id, model string, created int64) ChatCompletionChunk {
	stop := "stop"
	return ChatCompletionChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Model:   model,
		Created: created,
		Choices: []ChatCompletionDelta{{Delta: DeltaContent{}, FinishReason: &stop, Index: 0}},
	}
}
