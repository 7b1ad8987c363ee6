// Package segmenter chains bounded generation rounds into a long-form
// streamed answer, emitting each round as one segment rather than
// waiting for the whole response before the first byte goes out.
package segmenter

import (
	"context"
	"fmt"

	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/logger"
)

const (
	SegmentChars = 1400
	MaxSegments  = 6
	tailChars    = 1500

	terminationRatio = 0.6
)

// Segment is emitted once per generation round.
type Segment struct {
	Text  string
	Round int
	Final bool
}

// Config tunes a Streamer's round sizing. A zero value for either field
// falls back to the package default it shadows.
type Config struct {
	SegmentChars int
	MaxSegments  int
}

// Streamer runs the multi-segment loop: fresh bounded generation rounds
// chained back-to-back, each appended to a running total, until a short
// round or the round cap ends it.
type Streamer struct {
	generator ports.Generator
	log       *logger.StyledLogger
	cfg       Config
}

func New(generator ports.Generator, log *logger.StyledLogger, cfg Config) *Streamer {
	if cfg.SegmentChars <= 0 {
		cfg.SegmentChars = SegmentChars
	}
	if cfg.MaxSegments <= 0 {
		cfg.MaxSegments = MaxSegments
	}
	return &Streamer{generator: generator, log: log, cfg: cfg}
}

// Run drives the segment loop, invoking emit for each produced segment
// (including a final fallback segment on generator error). It returns
// the full accumulated text.
func (s *Streamer) Run(ctx context.Context, basePrompt string, emit func(Segment) error) (string, error) {
	var cumulative string

	for round := 1; round <= s.cfg.MaxSegments; round++ {
		prompt := basePrompt
		if round > 1 {
			prompt = basePrompt + "\n\nassistant:"
		}

		instructions := s.roundInstructions(round, cumulative)

		text, err := s.generator.Generate(ctx, instructions, prompt)
		if err != nil {
			s.log.Warn("segmenter: generation failed mid-stream", "round", round, "error", err)
			fallback := "(Local fallback) Apple Intelligence unavailable: generation failed."
			if emitErr := emit(Segment{Text: fallback, Round: round, Final: true}); emitErr != nil {
				return cumulative, emitErr
			}
			return cumulative + fallback, nil
		}

		cumulative += text
		final := round == s.cfg.MaxSegments || len(cumulative) < int(float64(s.cfg.SegmentChars)*(float64(round-1)+terminationRatio))

		if err := emit(Segment{Text: text, Round: round, Final: final}); err != nil {
			return cumulative, err
		}

		if final {
			break
		}
	}

	return cumulative, nil
}

func (s *Streamer) roundInstructions(round int, cumulative string) string {
	base := fmt.Sprintf("continue succinctly, aim ~%d chars, do not repeat", s.cfg.SegmentChars)
	if round == 1 {
		return base
	}
	return base + "\n\nContext so far (tail):\n" + tail(cumulative, tailChars)
}

func tail(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[len(text)-n:]
}
