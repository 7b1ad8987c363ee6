package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/thushan/pigate/internal/api"
	"github.com/thushan/pigate/internal/budget"
	"github.com/thushan/pigate/internal/config"
	"github.com/thushan/pigate/internal/env"
	"github.com/thushan/pigate/internal/generator"
	"github.com/thushan/pigate/internal/logger"
	"github.com/thushan/pigate/internal/router"
	"github.com/thushan/pigate/internal/segmenter"
	"github.com/thushan/pigate/internal/server"
	"github.com/thushan/pigate/internal/settings"
	"github.com/thushan/pigate/internal/toolcall"
	"github.com/thushan/pigate/internal/tools"
	"github.com/thushan/pigate/internal/util"
	"github.com/thushan/pigate/internal/version"
	"github.com/thushan/pigate/pkg/container"
	"github.com/thushan/pigate/pkg/format"
	"github.com/thushan/pigate/pkg/nerdstats"
)

func main() {
	startTime := time.Now()
	vlog := log.New(log.Writer(), "", 0)
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.PrintVersionInfo(true, vlog)
		os.Exit(0)
	} else {
		version.PrintVersionInfo(false, vlog)
	}

	lcfg := buildLoggerConfig()
	logInstance, styledLogger, cleanup, err := logger.NewWithTheme(lcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.SetDefault(logInstance)
	styledLogger.Info("Initialising", "version", version.Version, "pid", os.Getpid(), "containerised", container.IsContainerised())

	cfg, err := config.Load()
	if err != nil {
		logger.FatalWithLogger(logInstance, "Failed to load configuration", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		styledLogger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	settingsStore, err := settings.Open(filepath.Join(cfg.Logging.LogDir, "..", "settings.db"))
	if err != nil {
		logger.FatalWithLogger(logInstance, "Failed to open settings store", "error", err)
	}
	defer settingsStore.Close()

	handlers := buildHandlers(cfg, styledLogger)
	handlers.Settings = settingsStore

	r := router.New(styledLogger)
	api.RegisterRoutes(r, handlers)
	r.LogRoutes()

	controller := server.New(cfg.Server.Host, cfg.Server.Port, cfg.Server.FallbackPorts, r.Dispatch, styledLogger)
	handlers.Controller = controller

	if err := controller.Start(ctx); err != nil {
		logger.FatalWithLogger(logInstance, "Failed to start gateway", "error", err)
	}

	<-ctx.Done()

	if err := controller.Stop(); err != nil {
		styledLogger.Error("Error during shutdown", "error", err)
	}

	reportProcessStats(styledLogger, startTime)
	styledLogger.Info("pigate has shutdown")
}

// buildHandlers wires the request-processing components into a
// Handlers bundle. Its Controller field is left nil - the caller
// attaches the Server Controller once the router that dispatches to
// these same handlers exists, since the controller needs the router
// and /debug/health needs the controller.
func buildHandlers(cfg *config.Config, styledLogger *logger.StyledLogger) *api.Handlers {
	backend := generator.UnavailableBackend{}
	facade := generator.New(backend, styledLogger)

	budgeter := budget.New(facade, styledLogger, budget.Config{
		TokenBudget:      cfg.Generator.TokenBudget,
		VerbatimMessages: cfg.Generator.VerbatimMessages,
		ClampChars:       cfg.Generator.ClampChars,
		SummaryPassLimit: cfg.Generator.SummaryPassLimit,
	})
	seg := segmenter.New(facade, styledLogger, segmenter.Config{
		SegmentChars: cfg.Generator.SegmentChars,
		MaxSegments:  cfg.Generator.MaxSegments,
	})

	sandbox := tools.NewSandbox(cfg.Sandbox.WorkspaceRoot, cfg.Sandbox.AllowedRoots, cfg.Sandbox.AllowAllPaths)
	executor := tools.NewExecutor(sandbox)

	orchestrator := toolcall.New(facade, executor, budgeter, styledLogger)

	return &api.Handlers{
		Generator:    facade,
		Budgeter:     budgeter,
		Segmenter:    seg,
		Orchestrator: orchestrator,
		Executor:     executor,
		Log:          styledLogger,
	}
}

func reportProcessStats(logger *logger.StyledLogger, startTime time.Time) {
	runtime.GC()

	stats := nerdstats.Snapshot(startTime)

	logger.Info("Process Memory Stats",
		"heap_alloc", format.Bytes(stats.HeapAlloc),
		"heap_sys", format.Bytes(stats.HeapSys),
		"heap_inuse", format.Bytes(stats.HeapInuse),
		"heap_released", format.Bytes(stats.HeapReleased),
		"stack_inuse", format.Bytes(stats.StackInuse),
		"total_alloc", format.Bytes(stats.TotalAlloc),
		"memory_pressure", stats.GetMemoryPressure(),
	)

	logger.Info("Process Allocation Stats",
		"total_mallocs", stats.Mallocs,
		"total_frees", stats.Frees,
		"net_objects", util.SafeInt64Diff(stats.Mallocs, stats.Frees),
	)

	if stats.NumGC > 0 {
		logger.Info("Garbage Collection Stats",
			"num_gc_cycles", stats.NumGC,
			"last_gc", stats.LastGC.Format(time.RFC3339),
			"total_gc_time", format.Duration(stats.TotalGCTime),
			"gc_cpu_fraction", fmt.Sprintf("%.4f%%", stats.GCCPUFraction*100),
		)
	}

	logger.Info("Goroutine Stats",
		"num_goroutines", stats.NumGoroutines,
		"goroutine_health", stats.GetGoroutineHealthStatus(),
		"num_cgo_calls", stats.NumCgoCall,
	)

	logger.Info("Runtime Stats",
		"uptime", format.Duration(stats.Uptime),
		"go_version", stats.GoVersion,
		"num_cpu", stats.NumCPU,
		"gomaxprocs", stats.GOMAXPROCS,
	)

	logger.Info("Process Health Summary",
		"memory_pressure", stats.GetMemoryPressure(),
		"goroutine_status", stats.GetGoroutineHealthStatus(),
		"uptime", format.Duration(stats.Uptime),
		"avg_gc_pause", nerdstats.CalculateAverageGCPause(stats),
	)
}

// buildLoggerConfig creates logger config from environment variables with defaults
func buildLoggerConfig() *logger.Config {
	return &logger.Config{
		Level:      env.GetEnvOrDefault("PI_LOG_LEVEL", "info"),
		FileOutput: env.GetEnvBoolOrDefault("PI_FILE_OUTPUT", true),
		LogDir:     env.GetEnvOrDefault("PI_LOG_DIR", "./logs"),
		MaxSize:    env.GetEnvIntOrDefault("PI_MAX_SIZE", 100),
		MaxBackups: env.GetEnvIntOrDefault("PI_MAX_BACKUPS", 5),
		MaxAge:     env.GetEnvIntOrDefault("PI_MAX_AGE", 30),
		Theme:      env.GetEnvOrDefault("PI_THEME", "default"),
	}
}
