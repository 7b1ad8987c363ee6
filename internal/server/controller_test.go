package server

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/logger"
	"github.com/thushan/pigate/theme"
)

func noopLogger() *logger.StyledLogger {
	return logger.NewStyledLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), theme.Default())
}

func echoHandler(ctx context.Context, req *domain.Request) *domain.Response {
	return domain.JSON(200, []byte(`{"ok":true}`))
}

func TestController_StartAssignsEphemeralPortAndReportsRunning(t *testing.T) {
	c := New("127.0.0.1", 0, nil, echoHandler, noopLogger())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Stop()

	port, running, lastErr := c.Snapshot()
	if !running {
		t.Errorf("expected running=true after Start()")
	}
	if port == 0 {
		t.Errorf("expected a bound port, got 0")
	}
	if lastErr != "" {
		t.Errorf("lastErr = %q, want empty", lastErr)
	}
}

func TestController_StartIsIdempotent(t *testing.T) {
	c := New("127.0.0.1", 0, nil, echoHandler, noopLogger())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	defer c.Stop()

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("second Start() error = %v, want nil (idempotent)", err)
	}
}

func TestController_StopMarksNotRunning(t *testing.T) {
	c := New("127.0.0.1", 0, nil, echoHandler, noopLogger())
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	_, running, _ := c.Snapshot()
	if running {
		t.Errorf("expected running=false after Stop()")
	}
}

func TestController_StopWithoutStartIsNoop(t *testing.T) {
	c := New("127.0.0.1", 0, nil, echoHandler, noopLogger())
	if err := c.Stop(); err != nil {
		t.Errorf("Stop() on a never-started controller should be a no-op, got error = %v", err)
	}
}

func TestController_RestartRebindsAfterStop(t *testing.T) {
	c := New("127.0.0.1", 0, nil, echoHandler, noopLogger())
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Stop()

	if err := c.Restart(context.Background()); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}

	// Give the accept loop a moment to install after the restart.
	time.Sleep(10 * time.Millisecond)

	_, running, _ := c.Snapshot()
	if !running {
		t.Errorf("expected running=true after Restart()")
	}
}
