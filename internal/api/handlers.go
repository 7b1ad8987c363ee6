// Package api wires the wire-protocol adapters, context budgeter,
// generator façade, multi-segment streamer, and tool-call orchestrator
// into the concrete route handlers the router dispatches to.
package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thushan/pigate/internal/budget"
	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/generator"
	"github.com/thushan/pigate/internal/logger"
	"github.com/thushan/pigate/internal/segmenter"
	"github.com/thushan/pigate/internal/server"
	"github.com/thushan/pigate/internal/settings"
	"github.com/thushan/pigate/internal/toolcall"
)

const ollamaVersion = "0.1.0"

// Handlers holds every component a route handler needs. It is
// constructed once in the composition root and passed by reference -
// there is no global/singleton state, per the redesign flag in the
// gateway's design notes.
type Handlers struct {
	Generator    *generator.Facade
	Budgeter     *budget.Budgeter
	Segmenter    *segmenter.Streamer
	Orchestrator *toolcall.Orchestrator
	Executor     ports.ToolExecutor
	Settings     *settings.Store
	Controller   *server.Controller
	Log          *logger.StyledLogger
}

func newID() string {
	return "chatcmpl-" + uuid.NewString()
}

func now() int64 {
	return time.Now().Unix()
}

func chunkFixed(text string, size int) []string {
	if text == "" {
		return nil
	}
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

func assistantMessage(content string) *domain.ChatMessage {
	return &domain.ChatMessage{Role: domain.RoleAssistant, Content: content}
}

// applySettings honours the persistent user-editable switches: trimming
// history to the latest turn when disabled, prepending a stored system
// prompt when one is configured, and logging the full message set when
// full request debugging is on. A nil Settings store leaves messages
// untouched, so the gateway works before settings.Open has run.
func (h *Handlers) applySettings(ctx context.Context, messages []domain.ChatMessage) []domain.ChatMessage {
	if h.Settings == nil {
		return messages
	}

	if !h.Settings.GetBool(ctx, settings.KeyIncludeHistory, true) && len(messages) > 0 {
		messages = messages[len(messages)-1:]
	}

	if h.Settings.GetBool(ctx, settings.KeyIncludeSystemPrompt, false) {
		if prompt, ok, _ := h.Settings.Get(ctx, settings.KeySystemPrompt); ok && prompt != "" {
			withPrompt := make([]domain.ChatMessage, 0, len(messages)+1)
			withPrompt = append(withPrompt, domain.ChatMessage{Role: domain.RoleSystem, Content: prompt})
			messages = append(withPrompt, messages...)
		}
	}

	if h.Settings.GetBool(ctx, settings.KeyDebugFullRequestLog, false) {
		h.Log.Debug("full request messages", "messages", messages)
	}

	return messages
}
