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

// AddCmd should be used to represent the 'server add' command.
type AddCmd struct {
	*internalcmd.BaseCmd
	Command   string
	Args      []string
	Env       []string
	cfgLoader config.Loader
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &AddCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "add <server-name> --command <executable>",
		Short: "Adds a tool server to the registry file",
		Long: "Adds a tool server to the registry file, declaring the command " +
			"and arguments used to launch its subprocess",
		RunE: c.run,
		Args: cobra.ExactArgs(1),
	}

	cobraCmd.Flags().StringVar(
		&c.Command,
		"command",
		"",
		"Executable used to launch the tool server (must resolve on PATH at proxy startup)",
	)

	cobraCmd.Flags().StringArrayVar(
		&c.Args,
		"arg",
		nil,
		"Argument passed to the command (repeatable, order preserved)",
	)

	cobraCmd.Flags().StringArrayVar(
		&c.Env,
		"env",
		nil,
		"Additional environment variable for the subprocess, as KEY=value (repeatable)",
	)

	if err := cobraCmd.MarkFlagRequired("command"); err != nil {
		return nil, err
	}

	return cobraCmd, nil
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when the command is executed.
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])

	env, err := parseEnv(c.Env)
	if err != nil {
		return err
	}

	entry := config.ServerEntry{
		Name: name,
		ServerLaunchSpec: config.ServerLaunchSpec{
			Command: strings.TrimSpace(c.Command),
			Args:    c.Args,
			Env:     env,
		},
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	// AddServer persists the updated registry itself.
	if err := cfg.AddServer(entry); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added server '%s'\n", name)

	return nil
}

// parseEnv converts repeated KEY=value flags into a map.
func parseEnv(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid env entry '%s', expected KEY=value", pair)
		}
		env[key] = value
	}

	return env, nil
}
