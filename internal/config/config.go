package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"poetrypass/internal/generator"
	"poetrypass/internal/logging"
	"poetrypass/internal/provider"
	"poetrypass/internal/transform"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the user's home directory.
const DefaultFileName = ".poetrypass.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all poetrypass configuration.
type Config struct {
	// Passphrase defaults
	Generator GeneratorConfig `yaml:"generator"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GeneratorConfig holds the defaults the CLI starts from before flags are
// applied.
type GeneratorConfig struct {
	Source     string `yaml:"source"`      // mixed, poetry, words, word-poem, poem-word, word-word, poem-poem
	Mode       string `yaml:"mode"`        // full, initials, chinese, dual, dual-reverse
	Separator  string `yaml:"separator"`   // used verbatim, may be empty
	AddNumber  bool   `yaml:"add_number"`  // append separator + 4-digit number
	RandomCaps bool   `yaml:"random_caps"` // uppercase 1-3 random letters
	Count      int    `yaml:"count"`       // passphrases per run
	Jobs       int    `yaml:"jobs"`        // parallel workers for batches (1 = sequential)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Source:     provider.Mixed.String(),
			Mode:       transform.Default().String(),
			Separator:  generator.DefaultSeparator,
			AddNumber:  true,
			RandomCaps: false,
			Count:      1,
			Jobs:       1,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns ~/.poetrypass.yaml, or the bare file name when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		logging.Get(logging.CategoryConfig).Debug("loaded config from %s", path)
	case os.IsNotExist(err):
		logging.Get(logging.CategoryConfig).Debug("no config at %s, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("POETRYPASS_SOURCE"); v != "" {
		c.Generator.Source = v
	}
	if v := os.Getenv("POETRYPASS_MODE"); v != "" {
		c.Generator.Mode = v
	}
	// An empty separator is meaningful, so presence is what counts.
	if v, ok := os.LookupEnv("POETRYPASS_SEPARATOR"); ok {
		c.Generator.Separator = v
	}
	if v, ok := envBool("POETRYPASS_NO_NUMBER"); ok {
		c.Generator.AddNumber = !v
	}
	if v, ok := envBool("POETRYPASS_RANDOM_CAPS"); ok {
		c.Generator.RandomCaps = v
	}
	if v := os.Getenv("POETRYPASS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// envBool reads a boolean variable; unset or unparsable values are ignored.
func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logging.Get(logging.CategoryConfig).Warn("ignoring %s=%q: %v", key, raw, err)
		return false, false
	}
	return v, true
}

// Validate checks every field that the generator or logger will parse.
func (c *Config) Validate() error {
	if _, err := provider.ParseSource(c.Generator.Source); err != nil {
		return fmt.Errorf("%w: generator.source: %v", ErrInvalid, err)
	}
	if _, err := transform.ParseStrategy(c.Generator.Mode); err != nil {
		return fmt.Errorf("%w: generator.mode: %v", ErrInvalid, err)
	}
	if c.Generator.Count < 0 {
		return fmt.Errorf("%w: generator.count must be >= 0, got %d", ErrInvalid, c.Generator.Count)
	}
	if c.Generator.Jobs < 0 {
		return fmt.Errorf("%w: generator.jobs must be >= 0, got %d", ErrInvalid, c.Generator.Jobs)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	switch c.Logging.Format {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// GeneratorConfig converts the file defaults into a generator.Config.
func (c *Config) GeneratorConfig() (generator.Config, error) {
	source, err := provider.ParseSource(c.Generator.Source)
	if err != nil {
		return generator.Config{}, fmt.Errorf("%w: generator.source: %v", ErrInvalid, err)
	}
	strategy, err := transform.ParseStrategy(c.Generator.Mode)
	if err != nil {
		return generator.Config{}, fmt.Errorf("%w: generator.mode: %v", ErrInvalid, err)
	}

	gc := generator.DefaultConfig().
		WithSource(source).
		WithStrategy(strategy).
		WithSeparator(c.Generator.Separator)
	if !c.Generator.AddNumber {
		gc = gc.NoNumber()
	}
	if c.Generator.RandomCaps {
		gc = gc.RandomCapitalize()
	}
	return gc, nil
}
