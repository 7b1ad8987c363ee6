package openai

import (
	"encoding/json"

	"github.com/thushan/pigate/internal/core/domain"
)

// DecodeToolChoice decodes the tool_choice field, which the OpenAI wire
// format allows as either a bare string ("none"|"auto"|"required") or an
// object naming a specific function. Anything unrecognised falls back
// to Auto, so malformed or novel client input never hard-fails a request.
func DecodeToolChoice(raw json.RawMessage) domain.ToolChoicePolicy {
	if len(raw) == 0 {
		return domain.ToolChoicePolicy{Kind: domain.ToolChoiceAuto}
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		switch asString {
		case "none":
			return domain.ToolChoicePolicy{Kind: domain.ToolChoiceNone}
		case "required":
			return domain.ToolChoicePolicy{Kind: domain.ToolChoiceRequired}
		default:
			return domain.ToolChoicePolicy{Kind: domain.ToolChoiceAuto}
		}
	}

	var asObject struct {
		Type     string `json:"type"`
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil && asObject.Function.Name != "" {
		return domain.ToolChoicePolicy{Kind: domain.ToolChoiceFunction, FunctionName: asObject.Function.Name}
	}

	return domain.ToolChoicePolicy{Kind: domain.ToolChoiceAuto}
}
