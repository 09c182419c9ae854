package launcher

import (
	"fmt"
	"strings"
)

// Options contains optional configuration for the launcher.
// NewLauncherOptions should be used to create instances of Options.
type Options struct {
	// ManifestPath is the orchestration manifest describing the deployment.
	ManifestPath string

	// GPUManifestPath is layered over ManifestPath for the GPU profile.
	GPUManifestPath string

	// GeneratedManifestPath receives the derived manifest for the custom profile.
	GeneratedManifestPath string

	// ChatService names the chat interface service inside the manifest.
	ChatService string

	// ChatPort is the published chat interface port.
	ChatPort int

	// ProxyPort is the published tool proxy API port.
	ProxyPort int
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewLauncherOptions creates Options with optional configurations applied.
func NewLauncherOptions(opts ...Option) (Options, error) {
	options := Options{
		ManifestPath:          DefaultManifestPath(),
		GPUManifestPath:       DefaultGPUManifestPath(),
		GeneratedManifestPath: DefaultGeneratedManifestPath(),
		ChatService:           DefaultChatService(),
		ChatPort:              DefaultChatPort(),
		ProxyPort:             DefaultProxyPort(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithManifestPath sets the orchestration manifest path.
func WithManifestPath(path string) Option {
	return func(o *Options) error {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("manifest path cannot be empty")
		}
		o.ManifestPath = path
		return nil
	}
}

// WithGPUManifestPath sets the GPU overlay manifest path.
func WithGPUManifestPath(path string) Option {
	return func(o *Options) error {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("GPU manifest path cannot be empty")
		}
		o.GPUManifestPath = path
		return nil
	}
}

// WithGeneratedManifestPath sets where the custom profile writes its derived manifest.
func WithGeneratedManifestPath(path string) Option {
	return func(o *Options) error {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("generated manifest path cannot be empty")
		}
		o.GeneratedManifestPath = path
		return nil
	}
}

// WithChatService names the chat interface service inside the manifest.
func WithChatService(name string) Option {
	return func(o *Options) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("chat service name cannot be empty")
		}
		o.ChatService = name
		return nil
	}
}

// DefaultManifestPath is the default orchestration manifest.
func DefaultManifestPath() string {
	return "docker-compose.yaml"
}

// DefaultGPUManifestPath is the default GPU overlay manifest.
func DefaultGPUManifestPath() string {
	return "docker-compose.gpu.yaml"
}

// DefaultGeneratedManifestPath is where the custom profile writes its derived manifest.
func DefaultGeneratedManifestPath() string {
	return "docker-compose.custom.yaml"
}

// DefaultChatService is the chat interface service name used by the demo manifest.
func DefaultChatService() string {
	return "open-webui"
}

// DefaultChatPort is the published chat interface port.
func DefaultChatPort() int {
	return 3000
}

// DefaultProxyPort is the published tool proxy API port.
func DefaultProxyPort() int {
	return 8000
}
