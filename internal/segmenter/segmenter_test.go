package segmenter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/thushan/pigate/internal/logger"
	"github.com/thushan/pigate/theme"
)

func noopLogger() *logger.StyledLogger {
	return logger.NewStyledLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), theme.Default())
}

type fixedGenerator struct {
	text string
	err  error
}

func (f fixedGenerator) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	return f.text, f.err
}

func (f fixedGenerator) Available(ctx context.Context) bool { return f.err == nil }

func TestRun_ShortRoundTerminatesEarly(t *testing.T) {
	s := New(fixedGenerator{text: "a short answer"}, noopLogger(), Config{})

	var segments []Segment
	total, err := s.Run(context.Background(), "prompt", func(seg Segment) error {
		segments = append(segments, seg)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if total != "a short answer" {
		t.Errorf("total = %q", total)
	}
	if len(segments) != 1 {
		t.Fatalf("expected exactly one segment for a short reply, got %d", len(segments))
	}
	if !segments[0].Final {
		t.Errorf("expected the only segment to be marked Final")
	}
}

func TestRun_LongRoundsContinueUntilMaxSegments(t *testing.T) {
	long := strings.Repeat("x", SegmentChars)
	s := New(fixedGenerator{text: long}, noopLogger(), Config{})

	var segments []Segment
	_, err := s.Run(context.Background(), "prompt", func(seg Segment) error {
		segments = append(segments, seg)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(segments) != MaxSegments {
		t.Fatalf("expected %d segments when every round is full-length, got %d", MaxSegments, len(segments))
	}
	if !segments[len(segments)-1].Final {
		t.Errorf("expected the last segment to be marked Final")
	}
	for i, seg := range segments[:len(segments)-1] {
		if seg.Final {
			t.Errorf("segment %d should not be final", i)
		}
	}
}

func TestRun_GeneratorErrorEmitsFallbackSegment(t *testing.T) {
	s := New(fixedGenerator{err: errors.New("backend unavailable")}, noopLogger(), Config{})

	var segments []Segment
	total, err := s.Run(context.Background(), "prompt", func(seg Segment) error {
		segments = append(segments, seg)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(segments) != 1 || !segments[0].Final {
		t.Fatalf("expected a single final fallback segment, got %+v", segments)
	}
	if !strings.Contains(total, "fallback") {
		t.Errorf("total = %q, want it to mention the fallback", total)
	}
}

func TestNew_ConfigOverridesRoundSizing(t *testing.T) {
	s := New(fixedGenerator{text: "x"}, noopLogger(), Config{SegmentChars: 1, MaxSegments: 2})

	var segments []Segment
	_, err := s.Run(context.Background(), "prompt", func(seg Segment) error {
		segments = append(segments, seg)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected the configured MaxSegments (2) rounds, got %d", len(segments))
	}
	if !segments[len(segments)-1].Final {
		t.Errorf("expected the last segment to be marked Final")
	}
}

func TestRun_EmitErrorStopsTheLoop(t *testing.T) {
	long := strings.Repeat("x", SegmentChars)
	s := New(fixedGenerator{text: long}, noopLogger(), Config{})

	emitErr := errors.New("connection closed")
	calls := 0
	_, err := s.Run(context.Background(), "prompt", func(seg Segment) error {
		calls++
		return emitErr
	})
	if !errors.Is(err, emitErr) {
		t.Fatalf("Run() error = %v, want %v", err, emitErr)
	}
	if calls != 1 {
		t.Errorf("expected the loop to stop after the first emit error, got %d calls", calls)
	}
}
