package api

import (
	"context"
	"encoding/json"
	"unicode/utf8"

	"github.com/thushan/pigate/internal/core/domain"
)

// DebugHealth serves GET /debug/health.
func (h *Handlers) DebugHealth(ctx context.Context, req *domain.Request) *domain.Response {
	port, running, _ := h.Controller.Snapshot()
	body, _ := json.Marshal(map[string]interface{}{
		"status":  "ok",
		"running": running,
		"port":    port,
	})
	return domain.JSON(200, body)
}

// DebugEcho serves POST /debug/echo, decoding the body as UTF-8 text
// when possible and falling back to a byte count otherwise.
func (h *Handlers) DebugEcho(ctx context.Context, req *domain.Request) *domain.Response {
	payload := map[string]interface{}{
		"method":  req.Method,
		"path":    req.Path,
		"headers": req.Headers,
	}
	if utf8.Valid(req.Body) {
		payload["bodyUtf8"] = string(req.Body)
	} else {
		payload["bodyBytes"] = len(req.Body)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}
