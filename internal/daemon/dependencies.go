package daemon

import (
	"fmt"
	"net"
	"reflect"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/mcptools/toolgate/internal/config"
)

// Dependencies contains required dependencies for the Daemon.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// APIAddr specifies the network address for the API server to bind (e.g., "0.0.0.0:8000").
	APIAddr string

	// Logger for daemon and subcomponent operations.
	Logger hclog.Logger

	// Servers contains the registry entries whose subprocesses the daemon supervises.
	// An empty slice is valid: the daemon starts with no subprocesses and serves an
	// empty server set over the API.
	Servers []config.ServerEntry
}

// NewDependencies creates and validates Dependencies.
func NewDependencies(logger hclog.Logger, apiAddr string, servers []config.ServerEntry) (Dependencies, error) {
	if servers == nil {
		servers = []config.ServerEntry{}
	}

	deps := Dependencies{
		APIAddr: apiAddr,
		Logger:  logger,
		Servers: servers,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}

	if err := validateAddr(d.APIAddr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.APIAddr, err)
	}

	seen := make(map[string]struct{}, len(d.Servers))
	for _, s := range d.Servers {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: '%s'", config.ErrDuplicateServer, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	return nil
}

// validateAddr checks if the address is a valid "host:port" string.
func validateAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	_ = host // an empty host is fine (listens on all interfaces)

	return nil
}
