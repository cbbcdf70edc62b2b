// Package config loads the server configuration from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/averycrespi/calc-mcp/pkg/types"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Default returns the built-in configuration
func Default() *types.Config {
	return &types.Config{
		LogLevel:    "info",
		MaxSessions: 64,
		MaxTape:     100,
		Render: types.RenderConfig{
			Width:    470,
			Height:   520,
			FontSize: 24,
		},
	}
}

// Load reads the config file at path from fs over the defaults. An empty path
// returns the defaults.
func Load(fs afero.Fs, path string) (*types.Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalidConfig, path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func Validate(cfg *types.Config) error {
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.MaxSessions < 1 {
		return fmt.Errorf("%w: max_sessions must be at least 1, got %d", ErrInvalidConfig, cfg.MaxSessions)
	}
	if cfg.MaxTape < 1 {
		return fmt.Errorf("%w: max_tape must be at least 1, got %d", ErrInvalidConfig, cfg.MaxTape)
	}
	if cfg.Render.Width < 100 || cfg.Render.Height < 100 {
		return fmt.Errorf("%w: render size must be at least 100x100, got %dx%d",
			ErrInvalidConfig, cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
	}
}
