// Package budget compresses an oversized chat history into a single
// prompt string that fits a fixed input-token ceiling, summarizing
// older turns through the Generator while keeping recent turns verbatim.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/logger"
)

const (
	MaxContextTokens = 4000
	ReserveForOutput = 512

	VerbatimMessages    = 6
	OlderTextClamp      = 6000
	FirstSummaryClamp   = 1500
	SecondSummaryClamp  = 800
	naiveHeadSentences  = 8
	naiveTailSentences  = 4
)

// Budget is the maximum estimated input tokens a single inference
// round may consume, derived from MaxContextTokens - ReserveForOutput
// with a floor of 1000.
func Budget() int {
	b := MaxContextTokens - ReserveForOutput
	if b < 1000 {
		return 1000
	}
	return b
}

// EstimateTokens applies the ⌈chars/4⌉ heuristic used throughout the
// gateway to size prompts without a real tokenizer.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}

// Config tunes a Budgeter's thresholds. A zero value for any field
// falls back to the package default it shadows.
type Config struct {
	TokenBudget      int
	VerbatimMessages int
	ClampChars       int
	SummaryPassLimit int
}

// Budgeter turns a chat history into a single prompt string, invoking
// the Generator to summarize older turns when the naive formatting
// would exceed the token budget.
type Budgeter struct {
	generator ports.Generator
	log       *logger.StyledLogger
	cfg       Config
}

func New(generator ports.Generator, log *logger.StyledLogger, cfg Config) *Budgeter {
	if cfg.TokenBudget <= 0 {
		cfg.TokenBudget = Budget()
	}
	if cfg.VerbatimMessages <= 0 {
		cfg.VerbatimMessages = VerbatimMessages
	}
	if cfg.ClampChars <= 0 {
		cfg.ClampChars = OlderTextClamp
	}
	if cfg.SummaryPassLimit <= 0 {
		cfg.SummaryPassLimit = 2
	}
	return &Budgeter{generator: generator, log: log, cfg: cfg}
}

// budget is the effective per-round token ceiling for this Budgeter,
// floored the same way the package-level Budget() is.
func (b *Budgeter) budget() int {
	if b.cfg.TokenBudget < 1000 {
		return 1000
	}
	return b.cfg.TokenBudget
}

// Format renders messages as "<role>: <content>" lines joined by
// newlines, with a trailing "assistant:" line to prompt completion.
func Format(messages []domain.ChatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("assistant:")
	return b.String()
}

// Build produces the final prompt string for a chat history, applying
// summarization only when the direct formatting exceeds the budget.
func (b *Budgeter) Build(ctx context.Context, messages []domain.ChatMessage) string {
	full := Format(messages)
	budget := b.budget()
	if EstimateTokens(full) <= budget {
		return full
	}

	verbatimCount := b.cfg.VerbatimMessages
	if len(messages) < verbatimCount {
		verbatimCount = len(messages)
	}
	recent := messages[len(messages)-verbatimCount:]
	older := messages[:len(messages)-verbatimCount]
	recentText := Format(recent)

	olderText := clampMiddle(Format(older), b.cfg.ClampChars)
	clamp := FirstSummaryClamp
	summary := b.summarize(ctx, olderText, clamp)

	for pass := 1; pass < b.cfg.SummaryPassLimit; pass++ {
		composed := fmt.Sprintf("system: Conversation summary (compressed): \n%s\n%s", summary, recentText)
		if EstimateTokens(composed) <= budget {
			return composed
		}

		b.log.Debug("budgeter: additional summarization pass", "pass", pass+1)
		if clamp > SecondSummaryClamp {
			clamp = SecondSummaryClamp
		} else {
			clamp /= 2
		}
		summary = b.summarize(ctx, summary, clamp)
	}

	return fmt.Sprintf("system: Conversation summary (compressed): \n%s\n%s", summary, recentText)
}

func (b *Budgeter) summarize(ctx context.Context, text string, clamp int) string {
	instructions := fmt.Sprintf(
		"Summarize the following conversation excerpt in %d characters or fewer, "+
			"preserving technical detail relevant to the latest user request.", clamp)

	if !b.generator.Available(ctx) {
		return clampTo(naiveExtract(text), clamp)
	}

	summary, err := b.generator.Generate(ctx, instructions, text)
	if err != nil {
		b.log.Warn("budgeter: summarization failed, using naive extract", "error", err)
		return clampTo(naiveExtract(text), clamp)
	}
	return clampTo(summary, clamp)
}

// clampMiddle keeps the first and last halves of text when it exceeds
// limit, joining them with an ellipsis marker.
func clampMiddle(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	half := limit / 2
	head := text[:half]
	tail := text[len(text)-half:]
	return head + "\n…\n" + tail
}

func clampTo(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

// naiveExtract is the fallback summarizer used when the Generator is
// unavailable: first N sentences, an ellipsis, then the last M.
func naiveExtract(text string) string {
	sentences := splitSentences(text)
	if len(sentences) <= naiveHeadSentences+naiveTailSentences {
		return text
	}
	head := strings.Join(sentences[:naiveHeadSentences], " ")
	tail := strings.Join(sentences[len(sentences)-naiveTailSentences:], " ")
	return head + "… " + tail
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed+".")
		}
	}
	return sentences
}
