package ollama

import (
	"encoding/json"
	"testing"
)

func TestEncodeTags(t *testing.T) {
	b, err := EncodeTags("apple.local:latest", "2026-08-06T00:00:00Z")
	if err != nil {
		t.Fatalf("EncodeTags() error = %v", err)
	}
	var list wireTagsList
	if err := json.Unmarshal(b, &list); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if len(list.Models) != 1 {
		t.Fatalf("expected exactly one model, got %d", len(list.Models))
	}
	if list.Models[0].Name != "apple.local:latest" {
		t.Errorf("Name = %q", list.Models[0].Name)
	}
}

func TestEncodePS_AlwaysEmpty(t *testing.T) {
	b, err := EncodePS()
	if err != nil {
		t.Fatalf("EncodePS() error = %v", err)
	}
	if string(b) != `{"models":[]}` {
		t.Errorf("EncodePS() = %s, want an empty models list", b)
	}
}

func TestEncodeVersion(t *testing.T) {
	b, err := EncodeVersion("v0.0.1")
	if err != nil {
		t.Fatalf("EncodeVersion() error = %v", err)
	}
	if string(b) != `{"version":"v0.0.1"}` {
		t.Errorf("EncodeVersion() = %s", b)
	}
}
