package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/thushan/pigate/internal/adapter/wire/ollama"
	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
)

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// OllamaChat serves POST /api/chat. The route is always non-streaming,
// regardless of the request's stream flag - streaming is only offered
// on /api/generate.
func (h *Handlers) OllamaChat(ctx context.Context, req *domain.Request) *domain.Response {
	chatReq, err := ollama.DecodeChatRequest(req.Body)
	if err != nil {
		return badRequest(err.Error())
	}

	messages := h.applySettings(ctx, chatReq.Messages)
	prompt := h.Budgeter.Build(ctx, messages)
	text, _ := h.Generator.Generate(ctx, "", prompt)

	body, err := ollama.EncodeChatResponse(domain.ModelIDOllama, isoNow(), text, nil)
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}

// OllamaGenerate serves POST /api/generate: completion-shaped input,
// optionally streamed as NDJSON chunks.
func (h *Handlers) OllamaGenerate(ctx context.Context, req *domain.Request) *domain.Response {
	compReq, err := ollama.DecodeGenerateRequest(req.Body)
	if err != nil {
		return badRequest(err.Error())
	}

	messages := h.applySettings(ctx, []domain.ChatMessage{{Role: domain.RoleUser, Content: compReq.Prompt}})

	if !compReq.Stream {
		prompt := h.Budgeter.Build(ctx, messages)
		text, _ := h.Generator.Generate(ctx, "", prompt)
		body, err := ollama.EncodeGenerateResponse(domain.ModelIDOllama, isoNow(), text)
		if err != nil {
			return serverError(err.Error())
		}
		return domain.JSON(200, body)
	}

	return domain.StreamResponse("application/x-ndjson", func(emitter ports.Emitter) {
		prompt := h.Budgeter.Build(ctx, messages)
		text, _ := h.Generator.Generate(ctx, "", prompt)

		for _, chunk := range chunkFixed(text, fixedChunkChars) {
			record, err := ollama.EncodeGenerateChunk(domain.ModelIDOllama, isoNow(), chunk)
			if err != nil {
				return
			}
			if err := emitter.EmitNDJSON(json.RawMessage(record)); err != nil {
				return
			}
		}

		done, err := ollama.EncodeGenerateDone(domain.ModelIDOllama, isoNow())
		if err != nil {
			return
		}
		_ = emitter.EmitNDJSON(json.RawMessage(done))
	})
}

// OllamaTags serves GET /api/tags.
func (h *Handlers) OllamaTags(ctx context.Context, req *domain.Request) *domain.Response {
	modifiedAt := time.Unix(domain.ModelCreatedAt(), 0).UTC().Format(time.RFC3339)
	body, err := ollama.EncodeTags(domain.ModelIDOllama, modifiedAt)
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}

// OllamaVersion serves GET /api/version.
func (h *Handlers) OllamaVersion(ctx context.Context, req *domain.Request) *domain.Response {
	body, err := ollama.EncodeVersion(ollamaVersion)
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}

// OllamaPS serves GET /api/ps. The gateway keeps no background model
// processes, so the list is always empty.
func (h *Handlers) OllamaPS(ctx context.Context, req *domain.Request) *domain.Response {
	body, err := ollama.EncodePS()
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}
