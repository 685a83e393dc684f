package app

import (
	"errors"
	"fmt"
)

// Output formats understood by the app.
const (
	FormatHCL  = "hcl"
	FormatText = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath  string // hcl file or directory
	Expression string // expand a single macro instead of a model
	Output     string // file to write to, stdout when empty
	Format     string
	Defines    map[string]string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" && cfg.Expression == "" {
		return nil, errors.New("either ModelPath or Expression must be set")
	}
	if cfg.ModelPath != "" && cfg.Expression != "" {
		return nil, errors.New("ModelPath and Expression are mutually exclusive")
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatHCL
	case FormatHCL, FormatText:
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}

	if cfg.Defines == nil {
		cfg.Defines = make(map[string]string)
	}
	for name := range cfg.Defines {
		if name == "" {
			return nil, errors.New("define names cannot be empty")
		}
	}

	return &cfg, nil
}
