package server

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/mcptools/toolgate/internal/cmd"
	cmdopts "github.com/mcptools/toolgate/internal/cmd/options"
	"github.com/mcptools/toolgate/internal/cmd/output"
	"github.com/mcptools/toolgate/internal/config"
	"github.com/mcptools/toolgate/internal/flags"
	"github.com/mcptools/toolgate/internal/printer"
)

// ListCmd should be used to represent the 'server list' command.
type ListCmd struct {
	*internalcmd.BaseCmd
	Format        internalcmd.OutputFormat
	cfgLoader     config.Loader
	serverPrinter output.ListPrinter[config.ServerEntry]
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:       baseCmd,
		Format:        internalcmd.FormatText, // Default to plain text
		cfgLoader:     opts.ConfigLoader,
		serverPrinter: &printer.ServerListPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists the tool servers declared in the registry file",
		Long:  "Lists the tool servers declared in the registry file, sorted by name",
		RunE:  c.run,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

// run is configured (via NewListCmd) to be called by the Cobra framework when the command is executed.
func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := internalcmd.FormatHandler(cobraCmd.OutOrStdout(), c.Format, c.serverPrinter)
	if err != nil {
		return err
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(cfg.ListServers())
}
