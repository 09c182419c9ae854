package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mcptools/toolgate/internal/files"
	"github.com/mcptools/toolgate/internal/perms"
)

// registryKey is the top-level key of the registry file, as consumed by the proxy.
const registryKey = "mcpServers"

// Registry represents the tool-server registry file structure.
// The on-disk form is the 'mcpServers' JSON object mapping server names to launch specs.
type Registry struct {
	Servers        map[string]ServerLaunchSpec
	configFilePath string
}

// registryFile mirrors the wire format of the registry file.
type registryFile struct {
	MCPServers map[string]ServerLaunchSpec `json:"mcpServers"`
}

// Init creates the default registry file, naming the demo tool servers.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	reg := &Registry{
		Servers: map[string]ServerLaunchSpec{
			"time": {
				Command: "uvx",
				Args:    []string{"mcp-server-time", "--local-timezone=UTC"},
			},
			"fetch": {
				Command: "uvx",
				Args:    []string{"mcp-server-fetch"},
			},
		},
		configFilePath: path,
	}

	return reg.saveConfig()
}

// Load reads, validates and decodes the registry file at path.
// Duplicate server names fail the load rather than silently overwriting each other.
func (d *DefaultLoader) Load(path string) (Modifier, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: registry file cannot be found, run: 'toolgate init'", ErrConfigLoadFailed)
		}
		return nil, fmt.Errorf("%w: failed to read registry file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := validateRegistrySchema(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigLoadFailed, path, err)
	}

	dups, err := duplicateServerNames(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan registry file (%s): %w", ErrConfigLoadFailed, path, err)
	}
	if len(dups) > 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrConfigLoadFailed, ErrDuplicateServer, strings.Join(dups, ", "))
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to decode registry file (%s): %w", ErrConfigLoadFailed, path, err)
	}
	if file.MCPServers == nil {
		file.MCPServers = map[string]ServerLaunchSpec{}
	}

	reg := &Registry{
		Servers:        file.MCPServers,
		configFilePath: path,
	}

	if err := reg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate registry (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return reg, nil
}

// AddServer attempts to persist a new tool server to the registry file.
func (r *Registry) AddServer(entry ServerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	name := strings.TrimSpace(entry.Name)
	if _, ok := r.Servers[name]; ok {
		return fmt.Errorf("%w: '%s'", ErrServerExists, name)
	}

	if r.Servers == nil {
		r.Servers = map[string]ServerLaunchSpec{}
	}
	r.Servers[name] = entry.ServerLaunchSpec

	if err := r.validate(); err != nil {
		return err
	}

	if err := r.saveConfig(); err != nil {
		return fmt.Errorf("failed to save updated registry: %w", err)
	}

	return nil
}

// RemoveServer removes a server by name from the registry file.
func (r *Registry) RemoveServer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("server name cannot be empty")
	}

	if _, ok := r.Servers[name]; !ok {
		return fmt.Errorf("%w: '%s'", ErrServerMissing, name)
	}

	delete(r.Servers, name)

	if err := r.saveConfig(); err != nil {
		return fmt.Errorf("failed to save updated registry: %w", err)
	}

	return nil
}

// ListServers returns the configured servers sorted by name.
// This provides read-only access without exposing mutation of the underlying map.
func (r *Registry) ListServers() []ServerEntry {
	entries := make([]ServerEntry, 0, len(r.Servers))
	for name, spec := range r.Servers {
		entries = append(entries, ServerEntry{
			Name:             name,
			ServerLaunchSpec: spec,
		})
	}

	slices.SortFunc(entries, func(a, b ServerEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return entries
}

// SaveConfig saves the current registry to its file.
func (r *Registry) SaveConfig() error {
	return r.saveConfig()
}

func (r *Registry) saveConfig() error {
	file := registryFile{MCPServers: r.Servers}
	if file.MCPServers == nil {
		file.MCPServers = map[string]ServerLaunchSpec{}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	data = append(data, '\n')

	if err := files.EnsureAtLeastRegularDir(filepath.Dir(r.configFilePath)); err != nil {
		return err
	}

	if err := os.WriteFile(r.configFilePath, data, perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.configFilePath, err)
	}

	return nil
}

func (r *Registry) validate() error {
	for name, spec := range r.Servers {
		entry := ServerEntry{Name: name, ServerLaunchSpec: spec}
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// duplicateServerNames scans the raw registry document for repeated keys inside the
// 'mcpServers' object. encoding/json keeps the last occurrence of a repeated key, so
// the raw token stream is the only place duplicates are still visible.
func duplicateServerNames(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("registry document is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token in registry document: %v", keyTok)
		}

		if key == registryKey {
			return scanObjectKeys(dec)
		}

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// scanObjectKeys reports keys that occur more than once in the object the decoder
// is positioned at. Each duplicated key is reported once, in first-repeat order.
func scanObjectKeys(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		// Not an object (e.g. null); schema validation reports the shape error.
		return nil, nil
	}

	seen := make(map[string]int)
	var dups []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token in '%s' object: %v", registryKey, keyTok)
		}

		if seen[key] == 1 {
			dups = append(dups, key)
		}
		seen[key]++

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil { // consume closing brace
		return nil, err
	}

	return dups, nil
}

// skipValue consumes exactly one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil // scalar value
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}

	return nil
}
