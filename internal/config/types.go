package config

import (
	"strings"
)

var (
	_ Provider = (*DefaultLoader)(nil)
	_ Modifier = (*Registry)(nil)
)

type Loader interface {
	Load(path string) (Modifier, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type Modifier interface {
	AddServer(entry ServerEntry) error
	RemoveServer(name string) error
	ListServers() []ServerEntry
	SaveConfig() error
}

type DefaultLoader struct{}

// ServerLaunchSpec is the command-and-arguments pair describing how to start one
// tool-server subprocess.
type ServerLaunchSpec struct {
	// Command is the executable name. It must resolve on PATH when the proxy starts.
	Command string `json:"command"`

	// Args is the ordered argument vector passed to Command.
	Args []string `json:"args,omitempty"`

	// Env contains additional environment variables for the subprocess.
	Env map[string]string `json:"env,omitempty"`
}

// ServerEntry pairs a unique registry name with its launch spec.
type ServerEntry struct {
	// Name is the unique, human-chosen tool-server name, e.g. 'time'.
	Name string `json:"name"`

	ServerLaunchSpec
}

// Validate checks that the entry can identify and launch a subprocess.
func (e ServerEntry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return NewErrInvalidServer(e.Name, "name cannot be empty")
	}
	if strings.TrimSpace(e.Command) == "" {
		return NewErrInvalidServer(e.Name, "command cannot be empty")
	}
	return nil
}
