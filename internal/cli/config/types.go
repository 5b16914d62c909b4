// Package config provides configuration management for the boardcheck CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string      `koanf:"output" validate:"oneof=auto text markdown json"`
	Verbose      bool        `koanf:"verbose"`
	StatePath    string      `koanf:"state_path" validate:"required"`
	Language     string      `koanf:"language" validate:"omitempty,bcp47_language_tag"`
	Watch        WatchConfig `koanf:"watch"`
	DRC          DRCConfig   `koanf:"drc"`
}

// WatchConfig holds options of the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" validate:"gte=0"`
}

// DRCConfig holds the check engine options. Lengths are in nanometres.
type DRCConfig struct {
	MaxError          int64                   `koanf:"max_error" validate:"gt=0"`
	ChainingEpsilon   int64                   `koanf:"chaining_epsilon" validate:"gt=0"`
	DefaultErrorLimit int                     `koanf:"default_error_limit" validate:"gte=0"`
	MaxViolations     int                     `koanf:"max_violations" validate:"gte=0"`
	Parallelism       int                     `koanf:"parallelism" validate:"gte=0,lte=64"`
	ErrorLimits       map[string]int          `koanf:"error_limits" validate:"dive,gte=0"`
	Severities        map[string]drc.Severity `koanf:"severities"`
	DisabledProviders []string                `koanf:"disabled_providers"`
}

// Default configuration values.
const (
	DefaultStateFile = ".boardcheck/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounce  = 250 * time.Millisecond
)

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		StatePath:    DefaultStateFile,
		Watch:        WatchConfig{Debounce: DefaultDebounce},
		DRC: DRCConfig{
			MaxError:        board.DefaultMaxError,
			ChainingEpsilon: board.DefaultChainingEpsilon,
		},
	}
}
