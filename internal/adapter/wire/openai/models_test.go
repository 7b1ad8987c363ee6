package openai

import (
	"encoding/json"
	"testing"

	"github.com/thushan/pigate/internal/core/domain"
)

func TestEncodeModelList(t *testing.T) {
	models := []domain.Model{
		{ID: "apple.local", Object: "model", OwnedBy: "local", Created: 100},
	}
	b, err := EncodeModelList(models)
	if err != nil {
		t.Fatalf("EncodeModelList() error = %v", err)
	}
	var list wireModelList
	if err := json.Unmarshal(b, &list); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if list.Object != "list" || len(list.Data) != 1 || list.Data[0].ID != "apple.local" {
		t.Errorf("list = %+v", list)
	}
}

func TestEncodeError(t *testing.T) {
	b := EncodeError("model not found", "invalid_request_error")
	var decoded wireError
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if decoded.Error.Message != "model not found" || decoded.Error.Type != "invalid_request_error" {
		t.Errorf("decoded = %+v", decoded)
	}
}
