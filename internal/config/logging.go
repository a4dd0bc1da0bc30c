package config

import "poetrypass/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // console, json
	Categories map[string]bool `yaml:"categories,omitempty"` // Per-category toggles
}

// Options converts the section into logging.Options. verbose forces debug.
func (c *LoggingConfig) Options(verbose bool) logging.Options {
	level := c.Level
	if verbose {
		level = "debug"
	}
	return logging.Options{
		Level:      level,
		JSONFormat: c.Format == "json",
		Categories: c.Categories,
	}
}
