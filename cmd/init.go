package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcptools/toolgate/internal/cmd"
	cmdopts "github.com/mcptools/toolgate/internal/cmd/options"
	"github.com/mcptools/toolgate/internal/config"
	"github.com/mcptools/toolgate/internal/flags"
)

// InitCmd should be used to represent the 'init' command.
type InitCmd struct {
	*cmd.BaseCmd
	cfgInitializer config.Initializer
}

// NewInitCmd creates a newly configured (Cobra) command.
func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		cfgInitializer: opts.ConfigInitializer,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Creates a default tool server registry file",
		Long:  c.longDescription(),
		RunE:  c.run,
	}

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *InitCmd) longDescription() string {
	return fmt.Sprintf(
		"Creates a default tool server registry file (%s), declaring the demo 'time' and 'fetch' servers.\n\n"+
			"The registry file path can be overridden using the `--%s` flag or the `%s` environment variable",
		flags.DefaultConfigFile,
		flags.FlagNameConfigFile,
		flags.EnvVarConfigFile,
	)
}

// run is configured (via NewInitCmd) to be called by the Cobra framework when the command is executed.
func (c *InitCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	path := flags.ConfigFile
	if err := c.cfgInitializer.Init(path); err != nil {
		return err
	}

	logger.Debug("Registry initialized", "path", path)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Created registry file '%s'\n", path)

	return nil
}
