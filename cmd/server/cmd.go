// Package server contains the 'server' CLI command group for registry management.
package server

import (
	"github.com/spf13/cobra"

	"github.com/mcptools/toolgate/internal/cmd"
	"github.com/mcptools/toolgate/internal/cmd/options"
)

// Cmd should be used to represent the 'server' command group.
type Cmd struct {
	*cmd.BaseCmd
}

// NewServerCmd creates a newly configured (Cobra) command.
func NewServerCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "server",
		Short: "Manages tool server registrations",
		Long: "Manages tool server registrations in the registry file, " +
			"dealing with adding, removing, and listing servers",
	}

	// Sub-commands for: toolgate server
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewAddCmd,    // add
		NewRemoveCmd, // remove
		NewListCmd,   // list
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}
