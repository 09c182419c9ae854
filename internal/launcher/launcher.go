// Package launcher starts the demo deployment: the chat interface container and
// the tool proxy, selected through a small set of deployment profiles.
package launcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mcptools/toolgate/internal/compose"
)

var (
	// ErrQuit indicates the user chose to quit from the menu. Not a failure.
	ErrQuit = errors.New("quit selected")

	// ErrInvalidSelection indicates the menu input matched no profile.
	ErrInvalidSelection = errors.New("invalid menu selection")
)

// Profile identifies one deployment profile.
type Profile string

const (
	// ProfileBasic starts the chat interface only.
	ProfileBasic Profile = "basic"

	// ProfileTools builds the proxy image and starts the chat interface with the tool proxy.
	ProfileTools Profile = "tools"

	// ProfileGPU starts the chat interface with GPU support layered on.
	ProfileGPU Profile = "gpu"

	// ProfileCustom prompts for an API key and backend URL before starting.
	ProfileCustom Profile = "custom"
)

// Runner abstracts external command execution so launches can be tested.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Dependencies contains required dependencies for the Launcher.
type Dependencies struct {
	// Logger for launcher operations.
	Logger hclog.Logger

	// Runner executes orchestration commands.
	Runner Runner

	// In supplies interactive user input.
	In io.Reader

	// Out receives menus, prompts and status output.
	Out io.Writer
}

// Validate ensures all required dependencies are provided.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	if d.Runner == nil {
		return fmt.Errorf("runner cannot be nil")
	}
	if d.In == nil {
		return fmt.Errorf("input reader cannot be nil")
	}
	if d.Out == nil {
		return fmt.Errorf("output writer cannot be nil")
	}
	return nil
}

// Launcher drives profile selection and orchestration startup.
// NewLauncher should be used to create instances of Launcher.
type Launcher struct {
	logger hclog.Logger
	runner Runner
	in     *bufio.Reader
	out    io.Writer
	opts   Options
}

// NewLauncher creates a launcher from validated dependencies and options.
func NewLauncher(deps Dependencies, opt ...Option) (*Launcher, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for launcher: %w", err)
	}

	opts, err := NewLauncherOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid launcher options: %w", err)
	}

	return &Launcher{
		logger: deps.Logger.Named("launcher"),
		runner: deps.Runner,
		in:     bufio.NewReader(deps.In),
		out:    deps.Out,
		opts:   opts,
	}, nil
}

// ParseSelection maps menu input (or a profile name) to a Profile.
// Returns ErrQuit for the quit selection and ErrInvalidSelection for anything else.
func ParseSelection(input string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", string(ProfileBasic):
		return ProfileBasic, nil
	case "2", string(ProfileTools):
		return ProfileTools, nil
	case "3", string(ProfileGPU):
		return ProfileGPU, nil
	case "4", string(ProfileCustom):
		return ProfileCustom, nil
	case "q", "quit":
		return "", ErrQuit
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidSelection, strings.TrimSpace(input))
	}
}

// SelectProfile presents the menu and reads a single selection.
func (l *Launcher) SelectProfile() (Profile, error) {
	fmt.Fprintln(l.out, "Select a deployment profile:")
	fmt.Fprintln(l.out, "  1) Basic (chat interface only)")
	fmt.Fprintln(l.out, "  2) With tools (chat interface + tool proxy)")
	fmt.Fprintln(l.out, "  3) GPU")
	fmt.Fprintln(l.out, "  4) Custom (API key and backend URL)")
	fmt.Fprintln(l.out, "  q) Quit")
	fmt.Fprint(l.out, "> ")

	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}

	return ParseSelection(line)
}

// Launch starts the orchestration for the given profile and blocks until the
// startup command exits. On success the connection URLs are printed.
func (l *Launcher) Launch(ctx context.Context, profile Profile) error {
	l.logger.Info("launching deployment", "profile", profile)

	var err error
	switch profile {
	case ProfileBasic:
		err = l.composeUp(ctx, l.opts.ManifestPath, nil)
	case ProfileTools:
		err = l.launchTools(ctx)
	case ProfileGPU:
		err = l.composeUp(ctx, l.opts.ManifestPath, []string{"-f", l.opts.GPUManifestPath})
	case ProfileCustom:
		err = l.launchCustom(ctx)
	default:
		return fmt.Errorf("%w: '%s'", ErrInvalidSelection, profile)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(l.out, "\nChat interface: http://localhost:%d\n", l.opts.ChatPort)
	fmt.Fprintf(l.out, "Tool proxy API: http://localhost:%d (docs at /docs)\n", l.opts.ProxyPort)

	return nil
}

// launchTools runs the additional image build step, then starts the tools profile.
func (l *Launcher) launchTools(ctx context.Context) error {
	buildArgs := []string{"compose", "-f", l.opts.ManifestPath, "--profile", "tools", "build"}
	if err := l.runner.Run(ctx, "docker", buildArgs...); err != nil {
		return fmt.Errorf("tool proxy image build failed: %w", err)
	}

	return l.composeUp(ctx, l.opts.ManifestPath, []string{"--profile", "tools"})
}

// launchCustom prompts for the API key and backend URL, applies them to a derived
// manifest, and starts the orchestration from that manifest. The original
// manifest file is never modified.
func (l *Launcher) launchCustom(ctx context.Context) error {
	apiKey, err := l.prompt("API key: ")
	if err != nil {
		return err
	}
	backendURL, err := l.prompt("Backend URL: ")
	if err != nil {
		return err
	}

	manifest, err := compose.Load(l.opts.ManifestPath)
	if err != nil {
		return err
	}

	overrides := compose.Overrides{
		Service:    l.opts.ChatService,
		BackendURL: backendURL,
		APIKey:     apiKey,
	}
	if err := manifest.ApplyOverrides(overrides); err != nil {
		return err
	}

	if err := manifest.Save(l.opts.GeneratedManifestPath); err != nil {
		return err
	}

	return l.composeUp(ctx, l.opts.GeneratedManifestPath, nil)
}

// prompt reads one non-empty line of input. Values are not validated further.
func (l *Launcher) prompt(label string) (string, error) {
	fmt.Fprint(l.out, label)

	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("value cannot be empty")
	}

	return value, nil
}

// composeUp starts the orchestration in detached mode.
func (l *Launcher) composeUp(ctx context.Context, manifestPath string, extraArgs []string) error {
	args := []string{"compose", "-f", manifestPath}
	args = append(args, extraArgs...)
	args = append(args, "up", "-d")

	l.logger.Info("starting orchestration", "manifest", manifestPath)

	if err := l.runner.Run(ctx, "docker", args...); err != nil {
		return fmt.Errorf("orchestration start failed: %w", err)
	}

	return nil
}
