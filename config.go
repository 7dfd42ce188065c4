package pttcrawl

import "time"

// Default crawl settings.
const (
	DefaultTimeout = 3 * time.Second
	DefaultDelay   = 100 * time.Millisecond
)

// Config holds crawl settings shared by all commands.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Delay    time.Duration `yaml:"delay"`
	DBPath   string        `yaml:"db_path"`
	EntityID int           `yaml:"entity_id"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Delay:    DefaultDelay,
		EntityID: DefaultEntityID,
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative")
	}
	return nil
}
