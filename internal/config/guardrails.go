package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aven-ai/support-agent/internal/guardrails"
	"gopkg.in/yaml.v3"
)

type guardrailsFile struct {
	Guardrails guardrails.Extensions `yaml:"guardrails"`
}

// LoadGuardrailExtensions reads deployment-specific keyword additions from
// the YAML file at GUARDRAILS_CONFIG_PATH (default configs/guardrails.yaml).
// A missing file is not an error: the built-in rule tables stand alone.
func LoadGuardrailExtensions() (guardrails.Extensions, error) {
	path := os.Getenv("GUARDRAILS_CONFIG_PATH")
	if path == "" {
		path = "configs/guardrails.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return guardrails.Extensions{}, nil
		}
		return guardrails.Extensions{}, fmt.Errorf("failed to read guardrails config %s: %w", path, err)
	}

	var cfg guardrailsFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return guardrails.Extensions{}, fmt.Errorf("failed to parse guardrails config %s: %w", path, err)
	}

	return cfg.Guardrails, nil
}
