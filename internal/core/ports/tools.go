package ports

import "context"

// ToolExecutor dispatches a named tool call with structured arguments and
// returns a JSON-serialisable result tree. Errors are never returned as Go
// errors from Invoke for tool-domain failures (bad path, missing file) -
// those are embedded in the returned tree as {"error": "..."} so the model
// can observe and react. Invoke only returns a Go error for conditions the
// orchestration loop itself must treat as fatal (e.g. the tool name is
// entirely unknown).
type ToolExecutor interface {
	// Invoke runs the named tool with the given arguments and returns a
	// result tree ready for json.Marshal.
	Invoke(ctx context.Context, name string, arguments map[string]interface{}) (map[string]interface{}, error)

	// Catalogue returns the descriptors of every built-in tool this executor
	// knows how to run, in a stable order, for use by the tool-call
	// orchestrator when it composes the synthetic system message.
	Catalogue() []ToolDescriptor
}

// ToolDescriptor documents one built-in tool for the synthetic system
// message the orchestrator prepends when tools are requested.
type ToolDescriptor struct {
	Name        string
	Description string
	Parameters  string // human-readable parameter docstring, not a JSON schema
}
