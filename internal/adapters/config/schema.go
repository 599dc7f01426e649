package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// manifestFile is the on-disk shape of setup-cpp.yaml and setup-cpp.toml.
type manifestFile struct {
	Version  string                  `yaml:"version" toml:"version"`
	Tools    map[string]versionInput `yaml:"tools" toml:"tools"`
	Settings settingsDTO             `yaml:"settings" toml:"settings"`
}

type settingsDTO struct {
	TempDir   string `yaml:"temp_dir" toml:"temp_dir"`
	ToolCache string `yaml:"tool_cache" toml:"tool_cache"`
	SetupDir  string `yaml:"setup_dir" toml:"setup_dir"`
}

// versionInput keeps a tool value as written, so `cmake: true` and
// `cmake: 3.27` both survive decoding as text.
type versionInput string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *versionInput) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: tool version must be a scalar", node.Line)
	}
	*v = versionInput(node.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *versionInput) UnmarshalTOML(data any) error {
	switch val := data.(type) {
	case string:
		*v = versionInput(val)
	case bool:
		*v = versionInput(strconv.FormatBool(val))
	case int64:
		*v = versionInput(strconv.FormatInt(val, 10))
	case float64:
		*v = versionInput(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("tool version must be a scalar, got %T", data)
	}
	return nil
}
