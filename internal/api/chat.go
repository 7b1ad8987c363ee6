package api

import (
	"context"

	"github.com/thushan/pigate/internal/adapter/wire/openai"
	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/segmenter"
)

const fixedChunkChars = 64

// ChatCompletions serves POST /v1/chat/completions: tool calls force a
// single non-streaming round trip, otherwise the request is answered
// directly or via the streaming multi-segment/fixed-window path.
func (h *Handlers) ChatCompletions(ctx context.Context, req *domain.Request) *domain.Response {
	chatReq, err := openai.DecodeChatRequest(req.Body)
	if err != nil {
		return badRequest(err.Error())
	}

	chatReq.Messages = h.applySettings(ctx, chatReq.Messages)

	if len(chatReq.Tools) > 0 {
		return h.chatWithTools(ctx, chatReq)
	}

	if !chatReq.Stream {
		return h.chatOnce(ctx, chatReq)
	}

	return h.chatStream(ctx, chatReq)
}

func (h *Handlers) chatWithTools(ctx context.Context, chatReq domain.ChatRequest) *domain.Response {
	result, err := h.Orchestrator.Run(ctx, chatReq)
	if err != nil {
		return serverError(err.Error())
	}
	return jsonChatResponse(result.Content)
}

func (h *Handlers) chatOnce(ctx context.Context, chatReq domain.ChatRequest) *domain.Response {
	prompt := h.Budgeter.Build(ctx, chatReq.Messages)
	text, _ := h.Generator.Generate(ctx, "", prompt)
	return jsonChatResponse(text)
}

func jsonChatResponse(content string) *domain.Response {
	resp := domain.ChatResponse{
		ID:      newID(),
		Object:  "chat.completion",
		Model:   domain.ModelID,
		Created: now(),
		Choices: []domain.Choice{{Message: assistantMessage(content), FinishReason: "stop", Index: 0}},
	}
	body, err := openai.EncodeChatResponse(resp)
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}

func (h *Handlers) chatStream(ctx context.Context, chatReq domain.ChatRequest) *domain.Response {
	id := newID()
	created := now()

	return domain.StreamResponse("text/event-stream", func(emitter ports.Emitter) {
		emitDelta := func(content string) error {
			return emitter.EmitSSE(openai.NewContentChunk(id, domain.ModelID, created, content))
		}
		emitTerminal := func() error {
			if err := emitter.EmitSSE(openai.NewTerminalChunk(id, domain.ModelID, created)); err != nil {
				return err
			}
			return emitter.EmitSSERaw("[DONE]")
		}

		if chatReq.MultiSegment {
			prompt := h.Budgeter.Build(ctx, chatReq.Messages)
			_, err := h.Segmenter.Run(ctx, prompt, func(seg segmenter.Segment) error {
				return emitDelta(seg.Text)
			})
			if err != nil {
				return
			}
			_ = emitTerminal()
			return
		}

		prompt := h.Budgeter.Build(ctx, chatReq.Messages)
		text, _ := h.Generator.Generate(ctx, "", prompt)

		for _, chunk := range chunkFixed(text, fixedChunkChars) {
			if err := emitDelta(chunk); err != nil {
				return
			}
		}
		_ = emitTerminal()
	})
}
