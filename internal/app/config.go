package app

import (
	"github.com/vk/gomlgo/internal/errors"
)

// Output formats for the tree dump.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocumentPath string   // .hcl file or directory
	Modules      []string // bundled module names, empty for all

	Output    string
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocumentPath == "" {
		return nil, errors.New("DocumentPath is a required configuration field and cannot be empty")
	}
	switch cfg.Output {
	case "":
		cfg.Output = OutputText
	case OutputText, OutputYAML:
	default:
		return nil, errors.Newf("invalid output %q: must be %q or %q", cfg.Output, OutputText, OutputYAML)
	}
	for _, name := range cfg.Modules {
		if _, ok := lookupModule(name); !ok {
			return nil, errors.WithHintf(
				errors.Newf("unknown module %q", name),
				"available modules: %v", ModuleNames(),
			)
		}
	}
	return &cfg, nil
}
