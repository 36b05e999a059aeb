package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsctl/internal/export"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/protocol"
)

// Config is the resolved bitsctl configuration.
type Config struct {
	Part        int
	Input       string
	Format      export.Format
	MaxDepth    int
	LogLevel    string
	MetricsFile string
}

type fileConfig struct {
	Part        int    `toml:"part"`
	Input       string `toml:"input"`
	Format      string `toml:"format"`
	MaxDepth    int    `toml:"max_depth"`
	LogLevel    string `toml:"log_level"`
	MetricsFile string `toml:"metrics_file"`
}

func DefaultConfig() Config {
	return Config{
		Part:     1,
		Input:    "-",
		Format:   export.FormatText,
		MaxDepth: protocol.DefaultLimits().MaxDepth,
	}
}

// Limits returns the decoder limits selected by cfg.
func (cfg Config) Limits() protocol.Limits {
	return protocol.Limits{MaxDepth: cfg.MaxDepth}
}

// Load reads a TOML file over DefaultConfig. Only keys present in the file
// override defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("part") {
		cfg.Part = raw.Part
	}
	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("format") {
		format, err := export.ParseFormat(raw.Format)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		cfg.Format = format
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Part != 1 && cfg.Part != 2 {
		return fmt.Errorf("part must be 1 or 2, got %d", cfg.Part)
	}
	if strings.TrimSpace(cfg.Input) == "" {
		return fmt.Errorf("input is required (use \"-\" for stdin)")
	}
	if _, err := export.ParseFormat(string(cfg.Format)); err != nil {
		return err
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}
