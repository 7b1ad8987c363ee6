package openai

import (
	"encoding/json"

	"github.com/thushan/pigate/internal/core/domain"
)

type wireModel struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
	Created int64  `json:"created"`
}

type wireModelList struct {
	Object string      `json:"object"`
	Data   []wireModel `json:"data"`
}

// EncodeModelList serializes GET /v1/models.
func EncodeModelList(models []domain.Model) ([]byte, error) {
	list := wireModelList{Object: "list"}
	for _, m := range models {
		list.Data = append(list.Data, wireModel{ID: m.ID, Object: m.Object, OwnedBy: m.OwnedBy, Created: m.Created})
	}
	return json.Marshal(list)
}

// EncodeModel serializes GET /v1/models/{id}.
func EncodeModel(m domain.Model) ([]byte, error) {
	return json.Marshal(wireModel{ID: m.ID, Object: m.Object, OwnedBy: m.OwnedBy, Created: m.Created})
}

type wireErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type wireError struct {
	Error wireErrorDetail `json:"error"`
}

// EncodeError serializes the OpenAI-shaped error envelope used for
// malformed requests and unknown-model lookups.
func EncodeError(message, kind string) []byte {
	body, _ := json.Marshal(wireError{Error: wireErrorDetail{Message: message, Type: kind}})
	return body
}
