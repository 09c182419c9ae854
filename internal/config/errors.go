package config

import (
	"errors"
	"fmt"
)

var (
	ErrConfigLoadFailed = errors.New("failed to load configuration")
	ErrDuplicateServer  = errors.New("duplicate server name")
	ErrInvalidServer    = errors.New("server entry invalid")
	ErrServerExists     = errors.New("server already configured")
	ErrServerMissing    = errors.New("server not configured")
)

// NewErrInvalidServer returns an error describing why a server entry is invalid.
func NewErrInvalidServer(name string, reason string) error {
	return fmt.Errorf("%w: '%s' (%s)", ErrInvalidServer, name, reason)
}
