package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler so durations can be written
// as strings like "30s" or "1m" in the settings file.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Settings represents optional daemon tuning stored in a TOML file.
// Every field is optional; absent values fall back to daemon defaults.
type Settings struct {
	// API configuration (includes nested timeout and CORS sections).
	API *APISettingsSection `toml:"api,omitempty"`

	// MCP subprocess configuration (includes nested timeout and interval sections).
	MCP *MCPSettingsSection `toml:"mcp,omitempty"`
}

// APISettingsSection contains API server settings.
type APISettingsSection struct {
	// Shutdown timeout for graceful API server shutdown.
	Timeout *APITimeoutSettingsSection `toml:"timeout,omitempty"`

	// Nested CORS configuration for cross-origin requests.
	CORS *CORSSettingsSection `toml:"cors,omitempty"`
}

// APITimeoutSettingsSection contains timeout settings for API operations.
type APITimeoutSettingsSection struct {
	Shutdown *Duration `toml:"shutdown,omitempty"`
}

// CORSSettingsSection contains Cross-Origin Resource Sharing configuration.
type CORSSettingsSection struct {
	Enable        *bool     `toml:"enable,omitempty"`
	Origins       []string  `toml:"allow_origins,omitempty"`
	Methods       []string  `toml:"allow_methods,omitempty"`
	Headers       []string  `toml:"allow_headers,omitempty"`
	ExposeHeaders []string  `toml:"expose_headers,omitempty"`
	Credentials   *bool     `toml:"allow_credentials,omitempty"`
	MaxAge        *Duration `toml:"max_age,omitempty"`
}

// MCPSettingsSection contains settings for supervised tool-server subprocesses.
type MCPSettingsSection struct {
	Timeout  *MCPTimeoutSettingsSection  `toml:"timeout,omitempty"`
	Interval *MCPIntervalSettingsSection `toml:"interval,omitempty"`
}

// MCPTimeoutSettingsSection contains timeout settings for subprocess operations.
type MCPTimeoutSettingsSection struct {
	// Init bounds MCP session initialization after a subprocess launch.
	Init *Duration `toml:"init,omitempty"`

	// Shutdown bounds graceful subprocess shutdown.
	Shutdown *Duration `toml:"shutdown,omitempty"`

	// Health bounds individual health check pings.
	Health *Duration `toml:"health,omitempty"`
}

// MCPIntervalSettingsSection contains interval settings for periodic operations.
type MCPIntervalSettingsSection struct {
	// Health is the interval between health check rounds.
	Health *Duration `toml:"health,omitempty"`
}

// LoadSettings reads the optional daemon settings file.
// A missing file is not an error and yields empty Settings.
func LoadSettings(path string) (Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to stat settings file (%s): %w", path, err)
	}

	var settings Settings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings file (%s): %w", path, err)
	}

	return settings, nil
}
