// Package compose provides typed access to container orchestration manifests.
//
// Overrides are applied to a deserialized manifest and written out as a derived
// file; the original manifest is treated as immutable input. This replaces any
// edit-in-place-and-revert handling of the manifest text.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcptools/toolgate/internal/files"
	"github.com/mcptools/toolgate/internal/perms"
)

// Manifest represents a container orchestration (compose) file.
// Unrecognized top-level keys round-trip through Extra.
type Manifest struct {
	Name     string             `yaml:"name,omitempty"`
	Services map[string]Service `yaml:"services"`
	Extra    map[string]any     `yaml:",inline"`
}

// Service represents one service definition within a Manifest.
// Unrecognized keys round-trip through Extra.
type Service struct {
	Image         string         `yaml:"image,omitempty"`
	ContainerName string         `yaml:"container_name,omitempty"`
	Ports         []string       `yaml:"ports,omitempty"`
	Environment   Environment    `yaml:"environment,omitempty"`
	Volumes       []string       `yaml:"volumes,omitempty"`
	Restart       string         `yaml:"restart,omitempty"`
	DependsOn     []string       `yaml:"depends_on,omitempty"`
	Extra         map[string]any `yaml:",inline"`
}

// Environment holds service environment variables.
// Compose allows both the mapping form and the 'KEY=value' sequence form;
// both decode into the map, and the mapping form is used when encoding.
type Environment map[string]string

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Environment) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		m := map[string]string{}
		if err := value.Decode(&m); err != nil {
			return err
		}
		*e = m
		return nil
	case yaml.SequenceNode:
		var entries []string
		if err := value.Decode(&entries); err != nil {
			return err
		}
		m := make(map[string]string, len(entries))
		for _, entry := range entries {
			parts := strings.SplitN(entry, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid environment entry '%s', expected KEY=value", entry)
			}
			m[parts[0]] = parts[1]
		}
		*e = m
		return nil
	default:
		return fmt.Errorf("environment must be a mapping or a sequence, got yaml kind %d", value.Kind)
	}
}

// Overrides captures the per-launch adjustments applied to a manifest.
type Overrides struct {
	// Service names the service receiving the overrides (the chat interface).
	Service string

	// BackendURL overrides the model backend base URL, when non-empty.
	BackendURL string

	// APIKey sets the backend API key, when non-empty.
	APIKey string
}

// Environment variable names consumed by the chat interface container.
const (
	envBackendURL = "OPENAI_API_BASE_URL"
	envAPIKey     = "OPENAI_API_KEY"
)

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest (%s): %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest (%s): %w", path, err)
	}
	if len(m.Services) == 0 {
		return nil, fmt.Errorf("manifest (%s) declares no services", path)
	}

	return &m, nil
}

// ApplyOverrides sets the override values on the named service's environment.
// The receiver is modified; callers keep the original file untouched by saving
// the result to a derived path.
func (m *Manifest) ApplyOverrides(o Overrides) error {
	svc, ok := m.Services[o.Service]
	if !ok {
		return fmt.Errorf("service '%s' not found in manifest", o.Service)
	}

	if svc.Environment == nil {
		svc.Environment = Environment{}
	}
	if o.BackendURL != "" {
		svc.Environment[envBackendURL] = o.BackendURL
	}
	if o.APIKey != "" {
		svc.Environment[envAPIKey] = o.APIKey
	}

	m.Services[o.Service] = svc

	return nil
}

// Save encodes the manifest to path.
// The file is written with restrictive permissions since it may carry an API key.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := files.EnsureAtLeastRegularDir(filepath.Dir(path)); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, perms.SecureFile); err != nil {
		return fmt.Errorf("failed to write manifest (%s): %w", path, err)
	}

	return nil
}
