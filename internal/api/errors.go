package api

import (
	"github.com/thushan/pigate/internal/adapter/wire/openai"
	"github.com/thushan/pigate/internal/core/domain"
)

func badRequest(message string) *domain.Response {
	return domain.JSON(400, openai.EncodeError(message, "invalid_request_error"))
}

func serverError(message string) *domain.Response {
	return domain.JSON(500, openai.EncodeError(message, "internal_error"))
}

func notFoundModel() *domain.Response {
	return domain.JSON(404, openai.EncodeError("Model not found", "invalid_request_error"))
}
