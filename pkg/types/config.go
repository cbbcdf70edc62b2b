package types

// Config represents the configuration for the calc-mcp server
type Config struct {
	LogLevel    string       `json:"log_level,omitempty" toml:"log_level" yaml:"log_level"`
	MaxSessions int          `json:"max_sessions,omitempty" toml:"max_sessions" yaml:"max_sessions"`
	MaxTape     int          `json:"max_tape,omitempty" toml:"max_tape" yaml:"max_tape"`
	Render      RenderConfig `json:"render" toml:"render" yaml:"render"`
}

// RenderConfig controls the rendered calculator face
type RenderConfig struct {
	Width    int     `json:"width" toml:"width" yaml:"width"`
	Height   int     `json:"height" toml:"height" yaml:"height"`
	FontSize float64 `json:"font_size" toml:"font_size" yaml:"font_size"`
}
