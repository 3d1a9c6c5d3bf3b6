// Package config defines process configuration and how it is loaded.
//
// Conventions:
// - Defaults live in New; Load layers .env, an optional YAML file and env vars on top.
// - External errors are wrapped with ErrLoadConfig or ErrInvalidConfig.
package config

// DefaultInputPath is the score file read when nothing else is configured.
const DefaultInputPath = "scores.csv"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// InputPath is the score file; .xlsx selects the workbook reader.
	InputPath string `koanf:"input_path" validate:"required"`

	// NameField and ScoreField are the header names of the two required columns.
	NameField  string `koanf:"name_field" validate:"required"`
	ScoreField string `koanf:"score_field" validate:"required"`

	// Delimiter separates fields in text input. Quotes, line breaks, NUL and
	// invalid runes are rejected the same way encoding/csv rejects them.
	Delimiter string `koanf:"delimiter" validate:"len=1,csvdelim"`

	// Sheet picks a workbook sheet; empty means the first one.
	Sheet string `koanf:"sheet"`

	// Lang selects the table labels: en or ja.
	Lang string `koanf:"lang" validate:"oneof=en ja"`

	// Color is auto, always or never.
	Color string `koanf:"color" validate:"oneof=auto always never"`

	// Column widths of the rendered table, in characters.
	NameWidth    int `koanf:"name_width" validate:"min=1"`
	AverageWidth int `koanf:"average_width" validate:"min=1"`
	MaxWidth     int `koanf:"max_width" validate:"min=1"`
	MinWidth     int `koanf:"min_width" validate:"min=1"`

	// MetricsFile, when set, receives a Prometheus textfile dump after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:     "warn",
		LogFormat:    "text",
		InputPath:    DefaultInputPath,
		NameField:    "名前",
		ScoreField:   "スコア",
		Delimiter:    ",",
		Lang:         "en",
		Color:        "auto",
		NameWidth:    20,
		AverageWidth: 15,
		MaxWidth:     15,
		MinWidth:     15,
	}
}

// DelimiterRune returns the delimiter as a rune, defaulting to a comma.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}
