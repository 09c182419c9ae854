package server

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	internalcmd "github.com/mcptools/toolgate/internal/cmd"
	cmdopts "github.com/mcptools/toolgate/internal/cmd/options"
	"github.com/mcptools/toolgate/internal/config"
	"github.com/mcptools/toolgate/internal/flags"
)

// RemoveCmd should be used to represent the 'server remove' command.
type RemoveCmd struct {
	*internalcmd.BaseCmd
	cfgLoader config.Loader
}

// NewRemoveCmd creates a newly configured (Cobra) command.
func NewRemoveCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &RemoveCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "remove <server-name>",
		Short: "Removes a tool server from the registry file",
		Long:  "Removes a tool server from the registry file by name",
		RunE:  c.run,
		Args:  cobra.ExactArgs(1),
	}

	return cobraCmd, nil
}

// run is configured (via NewRemoveCmd) to be called by the Cobra framework when the command is executed.
func (c *RemoveCmd) run(cobraCmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("server-name is required")
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	if err := cfg.RemoveServer(name); err != nil {
		return err
	}
	if err := cfg.SaveConfig(); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Removed server '%s'\n", name)

	return nil
}
