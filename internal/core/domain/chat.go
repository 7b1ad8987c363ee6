package domain

// Role enumerates the four chat participants recognised by the wire
// protocols. Tool results are surfaced to the model as a "tool" turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ChatMessage is a single flattened turn. Content has already been reduced
// from whatever polymorphic wire shape the client sent (plain string,
// array of strings, array of typed parts, or a single typed part) to one
// string by the wire adapter that decoded it.
type ChatMessage struct {
	Role    Role
	Content string
}

// ToolChoicePolicy is the decoded tagged variant of the OpenAI tool_choice
// field. Unknown/absent input decodes permissively to ToolChoiceAuto.
type ToolChoicePolicy struct {
	FunctionName string
	Kind         ToolChoiceKind
}

type ToolChoiceKind int

const (
	ToolChoiceAuto ToolChoiceKind = iota
	ToolChoiceNone
	ToolChoiceRequired
	ToolChoiceFunction
)

// ChatRequest is the internal representation both wire dialects decode
// into before dispatch.
type ChatRequest struct {
	Model        string
	Messages     []ChatMessage
	Temperature  *float64
	MaxTokens    *int
	Tools        []ToolDefinition
	ToolChoice   ToolChoicePolicy
	Stream       bool
	MultiSegment bool // openai.DecodeChatRequest defaults it to true; ollama.DecodeChatRequest leaves it false
}

// CompletionRequest is the internal representation for the legacy
// text-completion wire shape (OpenAI /v1/completions, Ollama /api/generate).
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature *float64
	MaxTokens   *int
	Stream      bool
}

// Choice is a single completion alternative. Chat responses populate
// Message; text-completion responses populate Text.
type Choice struct {
	Message      *ChatMessage
	Text         string
	FinishReason string
	Index        int
}

// ChatResponse / CompletionResponse share a shape distinguished only by
// Object and by which Choice field is populated, mirroring the OpenAI wire
// contract closely enough that a single struct can serve as the source for
// both dialects' encoders.
type ChatResponse struct {
	ID      string
	Object  string
	Model   string
	Choices []Choice
	Created int64
}

type CompletionResponse struct {
	ID      string
	Object  string
	Model   string
	Choices []Choice
	Created int64
}

// ToolDefinition is a single tool the client declared as callable. Schema
// is opaque - the built-in executor ignores it entirely and only ever
// consults Name.
type ToolDefinition struct {
	Type        string
	Name        string
	Description string
	Schema      map[string]interface{}
}

// ToolCallEnvelope is the strict JSON object the model is instructed to
// reply with when it wants to invoke a tool:
//
//	{"tool_call": {"name": "<tool-name>", "arguments": {...}}}
type ToolCallEnvelope struct {
	Name      string
	Arguments map[string]interface{}
}
