package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the gateway process.
type Config struct {
	Filename    string            `yaml:"-"`
	Logging     LoggingConfig     `yaml:"logging"`
	Server      ServerConfig      `yaml:"server"`
	Sandbox     SandboxConfig     `yaml:"sandbox"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Engineering EngineeringConfig `yaml:"engineering"`
}

// ServerConfig holds HTTP listener configuration, including the port
// fallback list the Server Controller walks on bind failure.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	FallbackPorts   []int         `yaml:"fallback_ports"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GetAddress returns the listener address in host:port form for the
// currently configured port.
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SandboxConfig governs the file-tool path resolver.
type SandboxConfig struct {
	WorkspaceRoot string   `yaml:"workspace_root"`
	AllowedRoots  []string `yaml:"allowed_roots"`
	AllowAllPaths bool     `yaml:"allow_all_paths"`
}

// GeneratorConfig tunes the context budgeter and multi-segment streamer.
type GeneratorConfig struct {
	TokenBudget      int `yaml:"token_budget"`
	VerbatimMessages int `yaml:"verbatim_messages"`
	ClampChars       int `yaml:"clamp_chars"`
	SegmentChars     int `yaml:"segment_chars"`
	MaxSegments      int `yaml:"max_segments"`
	SummaryPassLimit int `yaml:"summary_pass_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	LogDir       string `yaml:"log_dir"`
	Theme        string `yaml:"theme"`
	MaxSize      int    `yaml:"max_size"`
	MaxBackups   int    `yaml:"max_backups"`
	MaxAge       int    `yaml:"max_age"`
	FileOutput   bool   `yaml:"file_output"`
	DebugFullLog bool   `yaml:"debug_full_log"`
}

// EngineeringConfig holds development/debugging switches.
type EngineeringConfig struct {
	ShowNerdStats bool `yaml:"show_nerdstats"`
}
