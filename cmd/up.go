package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcptools/toolgate/internal/cmd"
	cmdopts "github.com/mcptools/toolgate/internal/cmd/options"
	"github.com/mcptools/toolgate/internal/launcher"
	"github.com/mcptools/toolgate/internal/shell"
)

// UpCmd should be used to represent the 'up' command.
type UpCmd struct {
	*cmd.BaseCmd
	Profile           string
	ManifestPath      string
	GPUManifestPath   string
	GeneratedManifest string
}

// NewUpCmd creates a newly configured (Cobra) command.
func NewUpCmd(baseCmd *cmd.BaseCmd, _ ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &UpCmd{
		BaseCmd: baseCmd,
	}

	cobraCommand := &cobra.Command{
		Use:   "up [--profile]",
		Short: "Starts the demo deployment",
		Long: "Starts the demo deployment (chat interface, and optionally the tool proxy). " +
			"Without --profile an interactive menu is shown; choosing quit exits without starting anything",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Deployment profile (basic, tools, gpu, custom); omit for the interactive menu",
	)

	cobraCommand.Flags().StringVar(
		&c.ManifestPath,
		"manifest",
		launcher.DefaultManifestPath(),
		"Path to the orchestration manifest",
	)

	cobraCommand.Flags().StringVar(
		&c.GPUManifestPath,
		"gpu-manifest",
		launcher.DefaultGPUManifestPath(),
		"Path to the GPU overlay manifest",
	)

	cobraCommand.Flags().StringVar(
		&c.GeneratedManifest,
		"generated-manifest",
		launcher.DefaultGeneratedManifestPath(),
		"Where the custom profile writes its derived manifest",
	)

	return cobraCommand, nil
}

// run is configured (via NewUpCmd) to be called by the Cobra framework when the command is executed.
// It may return an error (or nil, when there is no error).
func (c *UpCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	runner := &shell.ExecRunner{
		Stdout: cobraCmd.OutOrStdout(),
		Stderr: cobraCmd.ErrOrStderr(),
	}

	deps := launcher.Dependencies{
		Logger: logger,
		Runner: runner,
		In:     cobraCmd.InOrStdin(),
		Out:    cobraCmd.OutOrStdout(),
	}

	l, err := launcher.NewLauncher(
		deps,
		launcher.WithManifestPath(c.ManifestPath),
		launcher.WithGPUManifestPath(c.GPUManifestPath),
		launcher.WithGeneratedManifestPath(c.GeneratedManifest),
	)
	if err != nil {
		return err
	}

	var profile launcher.Profile
	if c.Profile != "" {
		profile, err = launcher.ParseSelection(c.Profile)
	} else {
		profile, err = l.SelectProfile()
	}
	if err != nil {
		if errors.Is(err, launcher.ErrQuit) {
			fmt.Fprintln(cobraCmd.OutOrStdout(), "Quit.")
			return nil
		}
		return err
	}

	return l.Launch(cobraCmd.Context(), profile)
}
