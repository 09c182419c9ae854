package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcptools/toolgate/internal/cmd"
	cmdopts "github.com/mcptools/toolgate/internal/cmd/options"
	"github.com/mcptools/toolgate/internal/imagebuild"
	"github.com/mcptools/toolgate/internal/shell"
)

// BuildCmd should be used to represent the 'build' command.
type BuildCmd struct {
	*cmd.BaseCmd
	Tag        string
	ContextDir string
	SkipLatest bool
}

// NewBuildCmd creates a newly configured (Cobra) command.
func NewBuildCmd(baseCmd *cmd.BaseCmd, _ ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &BuildCmd{
		BaseCmd: baseCmd,
	}

	cobraCommand := &cobra.Command{
		Use:   "build [--tag] [--context] [--skip-latest]",
		Short: "Builds the tool proxy container image",
		Long: fmt.Sprintf(
			"Builds the tool proxy container image as %s under the version tag and '%s'",
			imagebuild.DefaultImageName, imagebuild.LatestTag,
		),
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Tag,
		"tag",
		imagebuild.DefaultVersionTag,
		"Version tag for the image",
	)

	cobraCommand.Flags().StringVar(
		&c.ContextDir,
		"context",
		".",
		"Build context directory",
	)

	cobraCommand.Flags().BoolVar(
		&c.SkipLatest,
		"skip-latest",
		false,
		fmt.Sprintf("Skip tagging the image as '%s'", imagebuild.LatestTag),
	)

	return cobraCommand, nil
}

// run is configured (via NewBuildCmd) to be called by the Cobra framework when the command is executed.
// It may return an error (or nil, when there is no error).
func (c *BuildCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	runner := &shell.ExecRunner{
		Stdout: cobraCmd.OutOrStdout(),
		Stderr: cobraCmd.ErrOrStderr(),
	}

	builder, err := imagebuild.NewBuilder(
		logger,
		runner,
		imagebuild.WithVersionTag(c.Tag),
		imagebuild.WithContextDir(c.ContextDir),
		imagebuild.WithSkipLatest(c.SkipLatest),
	)
	if err != nil {
		return err
	}

	if err := builder.Build(cobraCmd.Context()); err != nil {
		return err
	}

	refs := make([]string, 0, len(builder.Tags()))
	for _, tag := range builder.Tags() {
		refs = append(refs, fmt.Sprintf("%s:%s", imagebuild.DefaultImageName, tag))
	}
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Built %s\n", strings.Join(refs, ", "))

	return nil
}
