package api

import (
	"context"
	"encoding/json"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/version"
)

var publicEndpoints = []string{
	"/v1/models",
	"/v1/models/{id}",
	"/v1/chat/completions",
	"/v1/completions",
	"/api/models",
	"/api/tags",
	"/api/version",
	"/api/ps",
	"/api/chat",
	"/api/generate",
	"/debug/health",
	"/debug/echo",
}

// Index serves GET /: a JSON index of the public route surface.
func (h *Handlers) Index(ctx context.Context, req *domain.Request) *domain.Response {
	body, err := json.Marshal(map[string]interface{}{
		"name":      version.Name,
		"endpoints": publicEndpoints,
	})
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}
