package openai

import (
	"testing"

	"github.com/thushan/pigate/internal/core/domain"
)

func TestDecodeToolChoice(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantKind   domain.ToolChoiceKind
		wantFnName string
	}{
		{"empty defaults to auto", "", domain.ToolChoiceAuto, ""},
		{"none string", `"none"`, domain.ToolChoiceNone, ""},
		{"required string", `"required"`, domain.ToolChoiceRequired, ""},
		{"auto string", `"auto"`, domain.ToolChoiceAuto, ""},
		{"unrecognised string falls back to auto", `"whatever"`, domain.ToolChoiceAuto, ""},
		{"function object", `{"type":"function","function":{"name":"get_weather"}}`, domain.ToolChoiceFunction, "get_weather"},
		{"malformed object falls back to auto", `{"foo":"bar"}`, domain.ToolChoiceAuto, ""},
		{"function object missing name falls back to auto", `{"type":"function","function":{}}`, domain.ToolChoiceAuto, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeToolChoice([]byte(tt.raw))
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.FunctionName != tt.wantFnName {
				t.Errorf("FunctionName = %q, want %q", got.FunctionName, tt.wantFnName)
			}
		})
	}
}
