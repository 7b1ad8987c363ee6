package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/thushan/pigate/internal/core/domain"
)

type wireCompletionRequest struct {
	Model       string          `json:"model"`
	Prompt      json.RawMessage `json:"prompt"`
	Temperature *float64        `json:"temperature"`
	MaxTokens   *int            `json:"max_tokens"`
	Stream      bool            `json:"stream"`
}

// DecodeCompletionRequest decodes a POST /v1/completions body. The
// "prompt" field accepts either a plain string or an array of strings,
// joined with a blank line when it's an array.
func DecodeCompletionRequest(body []byte) (domain.CompletionRequest, error) {
	var wire wireCompletionRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.CompletionRequest{}, fmt.Errorf("decode completion request: %w", err)
	}

	return domain.CompletionRequest{
		Model:       wire.Model,
		Prompt:      flattenPrompt(wire.Prompt),
		Temperature: wire.Temperature,
		MaxTokens:   wire.MaxTokens,
		Stream:      wire.Stream,
	}, nil
}

func flattenPrompt(raw []byte) string {
	result := gjson.ParseBytes(raw)
	if result.Type == gjson.String {
		return result.Str
	}
	if result.IsArray() {
		var parts []string
		result.ForEach(func(_, item gjson.Result) bool {
			parts = append(parts, item.String())
			return true
		})
		return strings.Join(parts, "\n\n")
	}
	return result.String()
}

type wireTextChoice struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"`
	Index        int    `json:"index"`
}

type wireCompletionResponse struct {
	ID      string           `json:"id"`
	Object  string           `json:"object"`
	Model   string           `json:"model"`
	Choices []wireTextChoice `json:"choices"`
	Created int64            `json:"created"`
}

// EncodeCompletionResponse serializes an internal CompletionResponse to
// the OpenAI legacy text-completion wire shape.
func EncodeCompletionResponse(resp domain.CompletionResponse) ([]byte, error) {
	wire := wireCompletionResponse{
		ID:      resp.ID,
		Object:  resp.Object,
		Model:   resp.Model,
		Created: resp.Created,
	}
	for _, c := range resp.Choices {
		wire.Choices = append(wire.Choices, wireTextChoice{
			Text:         c.Text,
			FinishReason: c.FinishReason,
			Index:        c.Index,
		})
	}
	return json.Marshal(wire)
}

// TextCompletionChunk is one SSE delta event for streaming /v1/completions.
type TextCompletionChunk struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Model   string             `json:"model"`
	Choices []TextCompletionDelta `json:"choices"`
	Created int64              `json:"created"`
}

type TextCompletionDelta struct {
	FinishReason *string `json:"finish_reason"`
	Text         string  `json:"text"`
	Index        int     `json:"index"`
}

func NewTextChunk(id, model string, created int64, text string) TextCompletionChunk {
	return TextCompletionChunk{
		ID:      id,
		Object:  "text_completion.chunk",
		Model:   model,
		Created: created,
		Choices: []TextCompletionDelta{{Text: text, Index: 0}},
	}
}

func NewTerminalTextChunk(id, model string, created int64) TextCompletionChunk {
	stop := "stop"
	return TextCompletionChunk{
		ID:      id,
		Object:  "text_completion.chunk",
		Model:   model,
		Created: created,
		Choices: []TextCompletionDelta{{FinishReason: &stop, Index: 0}},
	}
}
