package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/thushan/pigate/internal/core/domain"
)

type wireGenerateRequest struct {
	Model   string      `json:"model"`
	Prompt  string      `json:"prompt"`
	Options wireOptions `json:"options"`
	Stream  bool        `json:"stream"`
}

// DecodeGenerateRequest decodes a POST /api/generate body, which shares
// the OpenAI completion shape on input (a single prompt string).
func DecodeGenerateRequest(body []byte) (domain.CompletionRequest, error) {
	var wire wireGenerateRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.CompletionRequest{}, fmt.Errorf("decode ollama generate request: %w", err)
	}

	return domain.CompletionRequest{
		Model:       wire.Model,
		Prompt:      wire.Prompt,
		Temperature: wire.Options.Temperature,
		MaxTokens:   wire.Options.NumPredict,
		Stream:      wire.Stream,
	}, nil
}

type wireGenerateRecord struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response,omitempty"`
	Done      bool   `json:"done"`
}

// EncodeGenerateChunk serializes one NDJSON record carrying a response
// fragment, done:false.
func EncodeGenerateChunk(model, createdAt, chunk string) ([]byte, error) {
	return json.Marshal(wireGenerateRecord{Model: model, CreatedAt: createdAt, Response: chunk, Done: false})
}

// EncodeGenerateDone serializes the terminal NDJSON record, done:true.
func EncodeGenerateDone(model, createdAt string) ([]byte, error) {
	return json.Marshal(wireGenerateRecord{Model: model, CreatedAt: createdAt, Done: true})
}

// EncodeGenerateResponse serializes a non-streaming /api/generate reply
// (used when stream:false), matching the completion+done:true shape.
func EncodeGenerateResponse(model, createdAt, response string) ([]byte, error) {
	return json.Marshal(wireGenerateRecord{Model: model, CreatedAt: createdAt, Response: response, Done: true})
}
