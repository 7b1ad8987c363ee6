package tools

import (
	"path/filepath"
	"testing"
)

func TestIsPrefixContained(t *testing.T) {
	tests := []struct {
		name string
		path string
		root string
		want bool
	}{
		{"exact match", "/tmp/foo", "/tmp/foo", true},
		{"descendant", "/tmp/foo/bar.txt", "/tmp/foo", true},
		{"sibling with shared prefix", "/tmp/foobar", "/tmp/foo", false},
		{"parent of root", "/tmp", "/tmp/foo", false},
		{"unrelated", "/etc/passwd", "/tmp/foo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPrefixContained(tt.path, tt.root); got != tt.want {
				t.Errorf("isPrefixContained(%q, %q) = %v, want %v", tt.path, tt.root, got, tt.want)
			}
		})
	}
}

func TestSandboxResolve_RelativeJoinsWorkspaceRoot(t *testing.T) {
	s := NewSandbox("/workspace", nil, false)

	resolved, allowed := s.Resolve("notes/todo.txt")
	want := filepath.Clean("/workspace/notes/todo.txt")

	if resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
	if !allowed {
		t.Errorf("expected relative path under workspace root to be allowed")
	}
}

func TestSandboxResolve_AbsolutePathOutsideRootsRejected(t *testing.T) {
	s := NewSandbox("/workspace", nil, false)

	_, allowed := s.Resolve("/etc/passwd")
	if allowed {
		t.Errorf("expected /etc/passwd to be rejected outside the workspace root")
	}
}

func TestSandboxResolve_AdditionalAllowedRoot(t *testing.T) {
	s := NewSandbox("/workspace", []string{"/data"}, false)

	resolved, allowed := s.Resolve("/data/models/a.gguf")
	want := filepath.Clean("/data/models/a.gguf")

	if resolved != want || !allowed {
		t.Errorf("resolved = %q allowed = %v, want %q true", resolved, allowed, want)
	}
}

func TestSandboxResolve_AllowAllBypassesContainment(t *testing.T) {
	s := NewSandbox("/workspace", nil, true)

	_, allowed := s.Resolve("/anywhere/at/all")
	if !allowed {
		t.Errorf("expected allowAll to permit any path")
	}
}
