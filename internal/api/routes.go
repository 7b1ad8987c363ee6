package api

import "github.com/thushan/pigate/internal/router"

// RegisterRoutes wires every handler onto the gateway's public route
// surface. GET registrations get an automatic HEAD mirror from the
// router itself.
func RegisterRoutes(r *router.Router, h *Handlers) {
	r.Handle("GET", "/", "gateway index", h.Index)

	r.Handle("GET", "/v1/models", "list OpenAI-shaped models", h.ModelsList)
	r.Handle("GET", "/v1/models/{id}", "get an OpenAI-shaped model", h.ModelsGet)
	r.Handle("POST", "/v1/chat/completions", "OpenAI chat completions", h.ChatCompletions)
	r.Handle("POST", "/v1/completions", "OpenAI text completions", h.Completions)

	r.Handle("GET", "/api/models", "list models (Ollama mirror)", h.ModelsList)
	r.Handle("GET", "/api/models/{id}", "get a model (Ollama mirror)", h.ModelsGet)
	r.Handle("GET", "/api/tags", "Ollama tags list", h.OllamaTags)
	r.Handle("GET", "/api/version", "Ollama version", h.OllamaVersion)
	r.Handle("GET", "/api/ps", "Ollama running processes", h.OllamaPS)
	r.Handle("POST", "/api/chat", "Ollama chat", h.OllamaChat)
	r.Handle("POST", "/api/generate", "Ollama generate", h.OllamaGenerate)

	r.Handle("GET", "/debug/health", "server health snapshot", h.DebugHealth)
	r.Handle("POST", "/debug/echo", "echo the request back", h.DebugEcho)
}
