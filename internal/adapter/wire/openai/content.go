// Package openai decodes and encodes the OpenAI chat/completions/models
// wire dialect, flattening its polymorphic message content shapes into
// the gateway's single internal ChatMessage representation.
package openai

import (
	"strings"

	"github.com/tidwall/gjson"
)

// FlattenContent normalizes the four shapes the OpenAI wire format
// allows for "content" into a single string:
//   - a plain string
//   - an array of strings, joined with "\n"
//   - an array of structured parts {type, text?}, text fields concatenated
//   - a single structured part
//
// raw is the raw JSON value of the content field (including quotes for
// strings, brackets for arrays).
func FlattenContent(raw []byte) string {
	result := gjson.ParseBytes(raw)

	switch result.Type {
	case gjson.String:
		return result.Str
	case gjson.JSON:
		if result.IsArray() {
			return flattenArray(result)
		}
		return flattenPart(result)
	default:
		return result.String()
	}
}

func flattenArray(arr gjson.Result) string {
	var parts []string
	arr.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			parts = append(parts, item.Str)
		} else {
			if text := flattenPart(item); text != "" {
				parts = append(parts, text)
			}
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// flattenPart extracts the "text" field from a single structured part,
// ignoring non-text parts (e.g. image_url) entirely.
func flattenPart(part gjson.Result) string {
	text := part.Get("text")
	if text.Exists() {
		return text.Str
	}
	return ""
}
