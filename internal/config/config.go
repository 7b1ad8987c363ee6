package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 11434

	EnvPrefix = "PI"
)

// DefaultFallbackPorts is the port list the Server Controller walks in
// order when the configured port is already bound.
func DefaultFallbackPorts() []int {
	return []int{11434, 11435, 11436, 11437, 8080}
}

func defaultWorkspaceRoot() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Documents")
	}
	return "."
}

// DefaultConfig returns a configuration with sensible defaults, applied
// before any config file or environment override is layered on top.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			FallbackPorts:   DefaultFallbackPorts(),
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Sandbox: SandboxConfig{
			WorkspaceRoot: defaultWorkspaceRoot(),
			AllowedRoots:  []string{},
			AllowAllPaths: false,
		},
		Generator: GeneratorConfig{
			TokenBudget:      3488,
			VerbatimMessages: 6,
			ClampChars:       6000,
			SegmentChars:     1400,
			MaxSegments:      6,
			SummaryPassLimit: 2,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogDir:     "./logs",
			Theme:      "default",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			FileOutput: true,
		},
		Engineering: EngineeringConfig{
			ShowNerdStats: false,
		},
	}
}

// Load reads configuration from an optional config file, layers
// PI_-prefixed environment variables on top, and falls back to defaults.
// It does not watch the file; that is WatchAndReload's job.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("pigate")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	applyEnvOverrides(cfg)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if configFile := os.Getenv("PI_CONFIG_FILE"); configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	} else {
		cfg.Filename = viper.ConfigFileUsed()
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Sandbox roots and log-verbosity switches are read directly from
	// the environment rather than viper's struct tags, using the
	// tool-facing PI_WORKSPACE_ROOT / PI_ALLOWED_ROOTS names.
	if v := os.Getenv("PI_WORKSPACE_ROOT"); v != "" {
		cfg.Sandbox.WorkspaceRoot = v
	}
	if v := os.Getenv("PI_ALLOWED_ROOTS"); v != "" {
		cfg.Sandbox.AllowedRoots = strings.Split(v, ":")
	}
	if v := os.Getenv("PI_ALLOW_ALL_PATHS"); v == "1" {
		cfg.Sandbox.AllowAllPaths = true
	}
	if v := os.Getenv("PI_DEBUG_FULL_LOG"); v == "1" {
		cfg.Logging.DebugFullLog = true
	}

	return cfg, nil
}

// applyEnvOverrides binds viper keys that don't share a name with their
// yaml tag path, so AutomaticEnv can still resolve them.
func applyEnvOverrides(cfg *Config) {
	_ = viper.BindEnv("server.host", "PI_SERVER_HOST")
	_ = viper.BindEnv("server.port", "PI_SERVER_PORT")
	_ = viper.BindEnv("logging.level", "PI_LOG_LEVEL")
}

// WatchAndReload starts an fsnotify watch on the resolved config file
// and invokes onChange with the freshly decoded config each time the
// file is written. Intended to run in its own goroutine.
func WatchAndReload(cfg *Config, onChange func(*Config)) error {
	if cfg.Filename == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(cfg.Filename)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching config directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for event := range watcher.Events {
			if event.Name != cfg.Filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reloaded, err := Load()
			if err != nil {
				continue
			}
			onChange(reloaded)
		}
	}()

	return nil
}
