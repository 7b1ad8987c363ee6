// Package toolcall implements the single-round-trip tool-calling
// protocol: instruct the model to reply with a strict JSON envelope,
// dispatch it through a ToolExecutor, then ask for a final answer that
// has seen the tool's result.
package toolcall

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/thushan/pigate/internal/budget"
	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/logger"
)

const envelopeInstruction = `To call a tool, reply ONLY with a single JSON object in this exact format: {"tool_call": {"name": "<tool-name>", "arguments": { ... }}}`

// Orchestrator runs the tool-call round trip. It never recurses beyond
// one tool invocation per request.
type Orchestrator struct {
	generator ports.Generator
	executor  ports.ToolExecutor
	budgeter  *budget.Budgeter
	log       *logger.StyledLogger
}

func New(generator ports.Generator, executor ports.ToolExecutor, budgeter *budget.Budgeter, log *logger.StyledLogger) *Orchestrator {
	return &Orchestrator{generator: generator, executor: executor, budgeter: budgeter, log: log}
}

// Result is the outcome of one orchestrated exchange.
type Result struct {
	Content  string
	UsedTool bool
}

// Run executes the protocol for a chat request known to carry tools.
func (o *Orchestrator) Run(ctx context.Context, req domain.ChatRequest) (Result, error) {
	messages := append([]domain.ChatMessage{o.systemMessage()}, req.Messages...)

	prompt := o.budgeter.Build(ctx, messages)
	firstReply, err := o.generator.Generate(ctx, "", prompt)
	if err != nil {
		return Result{}, fmt.Errorf("tool orchestrator: first generation: %w", err)
	}

	envelope, ok := parseEnvelope(firstReply)
	if !ok {
		return Result{Content: firstReply}, nil
	}

	toolResult, execErr := o.executor.Invoke(ctx, envelope.Name, envelope.Arguments)
	if execErr != nil {
		toolResult = map[string]interface{}{"error": execErr.Error()}
	}

	resultJSON, err := json.Marshal(toolResult)
	if err != nil {
		resultJSON = []byte(`{"error":"failed to serialize tool result"}`)
	}
	// Tag the result with the tool name in place, without a full
	// decode/re-encode round trip through the result map.
	if tagged, tagErr := sjson.SetBytes(resultJSON, "_tool", envelope.Name); tagErr == nil {
		resultJSON = tagged
	}

	messages = append(messages,
		domain.ChatMessage{Role: domain.RoleAssistant, Content: firstReply},
		domain.ChatMessage{Role: domain.RoleTool, Content: string(resultJSON)},
	)

	secondPrompt := o.budgeter.Build(ctx, messages)
	secondReply, err := o.generator.Generate(ctx, "", secondPrompt)
	if err != nil {
		return Result{}, fmt.Errorf("tool orchestrator: second generation: %w", err)
	}

	return Result{Content: secondReply, UsedTool: true}, nil
}

func (o *Orchestrator) systemMessage() domain.ChatMessage {
	var b strings.Builder
	b.WriteString(envelopeInstruction)
	b.WriteString("\n\nBuilt-in tools available:\n")
	for _, d := range o.executor.Catalogue() {
		b.WriteString("- ")
		b.WriteString(d.Name)
		b.WriteString(": ")
		b.WriteString(d.Description)
		if d.Parameters != "" {
			b.WriteString(" (")
			b.WriteString(d.Parameters)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return domain.ChatMessage{Role: domain.RoleSystem, Content: b.String()}
}

type wireEnvelope struct {
	ToolCall struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	} `json:"tool_call"`
}

// parseEnvelope attempts strict JSON decode of the whole reply, then
// falls back to extracting the substring between the first '{' and the
// last '}' and retrying.
func parseEnvelope(reply string) (domain.ToolCallEnvelope, bool) {
	if env, ok := decodeEnvelope(reply); ok {
		return env, true
	}

	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end <= start {
		return domain.ToolCallEnvelope{}, false
	}

	return decodeEnvelope(reply[start : end+1])
}

func decodeEnvelope(candidate string) (domain.ToolCallEnvelope, bool) {
	if !gjson.Valid(candidate) {
		return domain.ToolCallEnvelope{}, false
	}

	var wire wireEnvelope
	if err := json.Unmarshal([]byte(candidate), &wire); err != nil {
		return domain.ToolCallEnvelope{}, false
	}
	if wire.ToolCall.Name == "" {
		return domain.ToolCallEnvelope{}, false
	}
	return domain.ToolCallEnvelope{Name: wire.ToolCall.Name, Arguments: wire.ToolCall.Arguments}, true
}
