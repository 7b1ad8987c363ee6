package api

import (
	"context"

	"github.com/thushan/pigate/internal/adapter/wire/openai"
	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/router"
)

// ModelsList serves GET /v1/models and its /api/models mirror.
func (h *Handlers) ModelsList(ctx context.Context, req *domain.Request) *domain.Response {
	body, err := openai.EncodeModelList([]domain.Model{domain.CurrentModel()})
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}

// ModelsGet serves GET /v1/models/{id} and its /api/models/{id} mirror.
func (h *Handlers) ModelsGet(ctx context.Context, req *domain.Request) *domain.Response {
	id := router.Param(ctx, "id")
	if id != domain.ModelID {
		return notFoundModel()
	}
	body, err := openai.EncodeModel(domain.CurrentModel())
	if err != nil {
		return serverError(err.Error())
	}
	return domain.JSON(200, body)
}
