package router

import (
	"context"
	"testing"

	"github.com/thushan/pigate/internal/core/domain"
)

func newTestRouter() *Router {
	return New(nil)
}

func TestDispatch_ExactMatch(t *testing.T) {
	r := newTestRouter()
	called := false
	r.Handle("GET", "/v1/models", "list models", func(ctx context.Context, req *domain.Request) *domain.Response {
		called = true
		return domain.JSON(200, []byte(`{}`))
	})

	resp := r.Dispatch(context.Background(), &domain.Request{Method: "GET", Path: "/v1/models"})

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if resp.Status != 200 {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
}

func TestDispatch_PathParam(t *testing.T) {
	r := newTestRouter()
	var captured string
	r.Handle("GET", "/v1/models/{id}", "get model", func(ctx context.Context, req *domain.Request) *domain.Response {
		captured = Param(ctx, "id")
		return domain.JSON(200, nil)
	})

	r.Dispatch(context.Background(), &domain.Request{Method: "GET", Path: "/v1/models/apple.local"})

	if captured != "apple.local" {
		t.Errorf("captured id = %q, want %q", captured, "apple.local")
	}
}

func TestDispatch_GetRegistersHeadMirror(t *testing.T) {
	r := newTestRouter()
	r.Handle("GET", "/v1/models", "list models", func(ctx context.Context, req *domain.Request) *domain.Response {
		return domain.JSON(200, []byte(`{"ok":true}`))
	})

	resp := r.Dispatch(context.Background(), &domain.Request{Method: "HEAD", Path: "/v1/models"})

	if resp.Status != 200 {
		t.Fatalf("Status = %d, want 200", resp.Status)
	}
	if len(resp.Body) != 0 {
		t.Errorf("expected HEAD response body stripped, got %d bytes", len(resp.Body))
	}
}

func TestDispatch_UnknownRouteReturns404(t *testing.T) {
	r := newTestRouter()
	resp := r.Dispatch(context.Background(), &domain.Request{Method: "GET", Path: "/nope"})

	if resp.Status != 404 {
		t.Errorf("Status = %d, want 404", resp.Status)
	}
}

func TestDispatch_OptionsIsCorsPreflight(t *testing.T) {
	r := newTestRouter()
	resp := r.Dispatch(context.Background(), &domain.Request{Method: "OPTIONS", Path: "/anything"})

	if resp.Status != 204 {
		t.Errorf("Status = %d, want 204", resp.Status)
	}
	if resp.Headers.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected CORS origin header on preflight response")
	}
}

func TestMatchSegments(t *testing.T) {
	tests := []struct {
		name    string
		pattern []string
		actual  []string
		wantOK  bool
	}{
		{"literal match", []string{"api", "tags"}, []string{"api", "tags"}, true},
		{"literal mismatch", []string{"api", "tags"}, []string{"api", "ps"}, false},
		{"param match", []string{"v1", "models", "{id}"}, []string{"v1", "models", "gpt-4"}, true},
		{"length mismatch", []string{"v1", "models"}, []string{"v1", "models", "gpt-4"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := matchSegments(tt.pattern, tt.actual)
			if ok != tt.wantOK {
				t.Errorf("matchSegments(%v, %v) ok = %v, want %v", tt.pattern, tt.actual, ok, tt.wantOK)
			}
		})
	}
}
