package api

import (
	"context"

	"github.com/thushan/pigate/internal/adapter/wire/openai"
	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
)

// Completions serves POST /v1/completions: legacy single-prompt text
// completion, streamed as fixed 64-char windows when requested.
func (h *Handlers) Completions(ctx context.Context, req *domain.Request) *domain.Response {
	compReq, err := openai.DecodeCompletionRequest(req.Body)
	if err != nil {
		return badRequest(err.Error())
	}

	messages := h.applySettings(ctx, []domain.ChatMessage{{Role: domain.RoleUser, Content: compReq.Prompt}})

	if !compReq.Stream {
		prompt := h.Budgeter.Build(ctx, messages)
		text, _ := h.Generator.Generate(ctx, "", prompt)
		resp := domain.CompletionResponse{
			ID:      newID(),
			Object:  "text_completion",
			Model:   domain.ModelID,
			Created: now(),
			Choices: []domain.Choice{{Text: text, FinishReason: "stop", Index: 0}},
		}
		body, err := openai.EncodeCompletionResponse(resp)
		if err != nil {
			return serverError(err.Error())
		}
		return domain.JSON(200, body)
	}

	id := newID()
	created := now()
	return domain.StreamResponse("text/event-stream", func(emitter ports.Emitter) {
		prompt := h.Budgeter.Build(ctx, messages)
		text, _ := h.Generator.Generate(ctx, "", prompt)

		for _, chunk := range chunkFixed(text, fixedChunkChars) {
			if err := emitter.EmitSSE(openai.NewTextChunk(id, domain.ModelID, created, chunk)); err != nil {
				return
			}
		}
		if err := emitter.EmitSSE(openai.NewTerminalTextChunk(id, domain.ModelID, created)); err != nil {
			return
		}
		_ = emitter.EmitSSERaw("[DONE]")
	})
}
