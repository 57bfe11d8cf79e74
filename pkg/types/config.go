package types

import (
	"errors"
	"strings"
)

// Config holds the settings the CLI loads from config.yaml.
type Config struct {
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	Journal   bool   `json:"journal" yaml:"journal"`
	Output    string `json:"output" yaml:"output"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// Output modes.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config validation errors.
var (
	ErrOutputUnknown    = errors.New("unknown output mode")
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

var knownOutputs = map[string]bool{
	OutputText: true,
	OutputJSON: true,
	OutputYAML: true,
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var knownLogFormats = map[string]bool{
	LogFormatText: true,
	LogFormatJSON: true,
}

// DefaultConfig returns the settings used when config.yaml is absent.
func DefaultConfig() Config {
	return Config{
		Journal:   true,
		Output:    OutputText,
		LogLevel:  "warn",
		LogFormat: LogFormatText,
	}
}

// Validate checks that the Config is well-formed. Empty fields are
// accepted and mean "use the default". Log levels are case-insensitive.
func (c Config) Validate() error {
	if c.Output != "" && !knownOutputs[c.Output] {
		return ErrOutputUnknown
	}
	if c.LogLevel != "" && !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	if c.LogFormat != "" && !knownLogFormats[c.LogFormat] {
		return ErrLogFormatUnknown
	}
	return nil
}
