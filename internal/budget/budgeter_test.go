package budget

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/logger"
	"github.com/thushan/pigate/theme"
)

func noopLogger() *logger.StyledLogger {
	return logger.NewStyledLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), theme.Default())
}

type stubGenerator struct {
	available bool
	summary   string
	err       error
}

func (s stubGenerator) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func (s stubGenerator) Available(ctx context.Context) bool { return s.available }

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("a", 4000), 1000},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%d chars) = %d, want %d", len(tt.text), got, tt.want)
		}
	}
}

func TestBudget_IsContextMinusReserve(t *testing.T) {
	if got := Budget(); got != MaxContextTokens-ReserveForOutput {
		t.Errorf("Budget() = %d, want %d", got, MaxContextTokens-ReserveForOutput)
	}
}

func TestBuild_ShortHistoryReturnedVerbatim(t *testing.T) {
	b := New(stubGenerator{available: true}, noopLogger(), Config{})
	messages := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hello"},
	}

	got := b.Build(context.Background(), messages)
	want := Format(messages)

	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuild_OversizedHistorySummarizesOlderTurns(t *testing.T) {
	b := New(stubGenerator{available: true, summary: "compact summary"}, noopLogger(), Config{})

	var messages []domain.ChatMessage
	for i := 0; i < 200; i++ {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.RoleUser,
			Content: strings.Repeat("word ", 50),
		})
	}

	got := b.Build(context.Background(), messages)

	if !strings.Contains(got, "compact summary") {
		t.Errorf("Build() did not include the generated summary: %q", got)
	}
	if EstimateTokens(got) > Budget() {
		t.Errorf("Build() result estimated at %d tokens exceeds budget %d", EstimateTokens(got), Budget())
	}
}

func TestBuild_FallsBackToNaiveExtractWhenGeneratorUnavailable(t *testing.T) {
	b := New(stubGenerator{available: false}, noopLogger(), Config{})

	var messages []domain.ChatMessage
	for i := 0; i < 200; i++ {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.RoleUser,
			Content: "This is a sentence. It has punctuation. Repeated many times over.",
		})
	}

	got := b.Build(context.Background(), messages)
	if got == "" {
		t.Fatal("Build() returned empty prompt")
	}
	if EstimateTokens(got) > Budget() {
		t.Errorf("Build() result estimated at %d tokens exceeds budget %d", EstimateTokens(got), Budget())
	}
}

func TestNew_ConfigOverridesLowerTheEffectiveBudget(t *testing.T) {
	b := New(stubGenerator{available: true, summary: "s"}, noopLogger(), Config{
		TokenBudget:      1200,
		VerbatimMessages: 2,
		ClampChars:       200,
		SummaryPassLimit: 1,
	})

	messages := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: strings.Repeat("word ", 2000)},
		{Role: domain.RoleAssistant, Content: "ok"},
		{Role: domain.RoleUser, Content: "last"},
	}

	got := b.Build(context.Background(), messages)
	if !strings.Contains(got, "s") {
		t.Errorf("Build() did not use the generated summary: %q", got)
	}
	if EstimateTokens(got) > b.budget() {
		t.Errorf("Build() result estimated at %d tokens exceeds configured budget %d", EstimateTokens(got), b.budget())
	}
}

func TestClampMiddle(t *testing.T) {
	short := "hello"
	if got := clampMiddle(short, 100); got != short {
		t.Errorf("clampMiddle should return short text unchanged, got %q", got)
	}

	long := strings.Repeat("x", 1000)
	got := clampMiddle(long, 100)
	if len(got) >= len(long) || !strings.Contains(got, "…") {
		t.Errorf("clampMiddle(long, 100) did not truncate with a marker: %q", got)
	}
}
