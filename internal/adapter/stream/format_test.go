package stream

import (
	"strings"
	"testing"
)

func TestFormatSSERaw(t *testing.T) {
	got := string(FormatSSERaw(`{"a":1}`))
	want := "data: {\"a\":1}\n\n"
	if got != want {
		t.Errorf("FormatSSERaw() = %q, want %q", got, want)
	}
}

func TestFormatSSE(t *testing.T) {
	b, err := FormatSSE(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("FormatSSE() error = %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, "data: ") || !strings.HasSuffix(got, "\n\n") {
		t.Errorf("FormatSSE() = %q, missing SSE framing", got)
	}
	if !strings.Contains(got, `"a":1`) {
		t.Errorf("FormatSSE() = %q, missing marshalled payload", got)
	}
}

func TestFormatNDJSON(t *testing.T) {
	b, err := FormatNDJSON(map[string]string{"status": "ok"})
	if err != nil {
		t.Fatalf("FormatNDJSON() error = %v", err)
	}
	got := string(b)
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("FormatNDJSON() = %q, expected trailing newline", got)
	}
	if strings.Contains(strings.TrimSuffix(got, "\n"), "\n") {
		t.Errorf("FormatNDJSON() = %q, expected exactly one line", got)
	}
}

func TestDoneSentinel(t *testing.T) {
	if DoneSentinel != "data: [DONE]\n\n" {
		t.Errorf("DoneSentinel = %q", DoneSentinel)
	}
}
