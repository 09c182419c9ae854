package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcptools/toolgate/cmd/server"
	"github.com/mcptools/toolgate/internal/cmd"
	"github.com/mcptools/toolgate/internal/flags"
)

// RootCmd should be used to represent the root command.
type RootCmd struct {
	*cmd.BaseCmd
}

// Execute builds the command tree and runs the selected command.
func Execute() error {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

// NewRootCmd creates a newly configured (Cobra) command.
func NewRootCmd(baseCmd *cmd.BaseCmd) (*cobra.Command, error) {
	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:          "toolgate <command> [args]",
		Short:        "'toolgate' proxies HTTP requests to MCP tool-server subprocesses.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	initCmd, err := NewInitCmd(baseCmd)
	if err != nil {
		return nil, err
	}
	serveCmd, err := NewServeCmd(baseCmd)
	if err != nil {
		return nil, err
	}
	upCmd, err := NewUpCmd(baseCmd)
	if err != nil {
		return nil, err
	}
	buildCmd, err := NewBuildCmd(baseCmd)
	if err != nil {
		return nil, err
	}
	serverCmd, err := server.NewServerCmd(baseCmd)
	if err != nil {
		return nil, err
	}

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serverCmd)

	return rootCmd, nil
}

// longDescription returns the long version of the command description.
func (c *RootCmd) longDescription() string {
	return `'toolgate' supervises MCP tool-server subprocesses declared in a registry file
and exposes an HTTP API that multiplexes tool calls to them. It also provides
commands to launch the demo deployment and build the proxy container image.`
}
