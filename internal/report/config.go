package report

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls report rendering.
type Config struct {
	Title     string `yaml:"title"`
	Footer    string `yaml:"footer"`
	Precision int    `yaml:"precision"`
}

// DefaultConfig returns the rendering defaults.
func DefaultConfig() Config {
	return Config{
		Title:     "Chemical Equipment Report",
		Footer:    "",
		Precision: 2,
	}
}

// LoadConfig loads report configuration from the yaml file named by
// the REPORT_CONFIG env var, falling back to defaults when unset.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := os.Getenv("REPORT_CONFIG")
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Title == "" {
		cfg.Title = DefaultConfig().Title
	}
	if cfg.Precision <= 0 {
		cfg.Precision = DefaultConfig().Precision
	}
	return cfg, nil
}
