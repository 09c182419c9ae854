package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcptools/toolgate/internal/cmd"
	cmdopts "github.com/mcptools/toolgate/internal/cmd/options"
	"github.com/mcptools/toolgate/internal/config"
	"github.com/mcptools/toolgate/internal/daemon"
	"github.com/mcptools/toolgate/internal/flags"
)

// ServeCmd should be used to represent the 'serve' command.
type ServeCmd struct {
	*cmd.BaseCmd
	Host         string
	Port         int
	SettingsFile string
	cfgLoader    config.Loader
}

// NewServeCmd creates a newly configured (Cobra) command.
func NewServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ServeCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "serve [--host] [--port] [--config]",
		Short: "Launches the tool proxy daemon",
		Long: "Launches the tool proxy daemon, which starts the tool-server subprocesses " +
			"declared in the registry file and routes HTTP requests to them",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Host,
		"host",
		"0.0.0.0",
		"Host interface for the proxy API to bind",
	)

	cobraCommand.Flags().IntVar(
		&c.Port,
		"port",
		8000,
		"Port for the proxy API to bind",
	)

	cobraCommand.Flags().StringVar(
		&c.SettingsFile,
		"settings",
		"toolgate.toml",
		"Path to the optional daemon settings file",
	)

	return cobraCommand, nil
}

// run is configured (via NewServeCmd) to be called by the Cobra framework when the command is executed.
// It may return an error (or nil, when there is no error).
func (c *ServeCmd) run(_ *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	addr := net.JoinHostPort(host, strconv.Itoa(c.Port))

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}
	servers := cfg.ListServers()

	settings, err := config.LoadSettings(c.SettingsFile)
	if err != nil {
		return err
	}

	deps, err := daemon.NewDependencies(logger, addr, servers)
	if err != nil {
		return fmt.Errorf("error configuring daemon dependencies: %w", err)
	}

	d, err := daemon.NewDaemon(deps, daemonOptions(settings)...)
	if err != nil {
		return fmt.Errorf("failed to create daemon instance: %w", err)
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	runErr := make(chan error, 1)
	go func() {
		if err := d.StartAndManage(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	banner := fmt.Sprintf("toolgate proxy running.\n\n"+
		"  Local API:\thttp://%s/api/v1\n"+
		"  OpenAPI UI:\thttp://%s/docs\n"+
		"  Registry file:\t%s\n",
		addr, addr, flags.ConfigFile)

	if flags.LogPath != "" {
		banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
	}

	banner += "\nPress Ctrl+C to stop.\n\n"
	fmt.Print(banner)

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		err := <-runErr // Wait for cleanup and deferred logging.
		return err      // Graceful Ctrl+C / SIGTERM.
	case err := <-runErr:
		logger.Error("daemon exited with error", "error", err)
		return err // Propagate daemon failure.
	}
}

// daemonOptions maps the optional settings file onto daemon options.
// Absent settings leave the daemon defaults untouched.
func daemonOptions(s config.Settings) []daemon.Option {
	var opts []daemon.Option

	if s.MCP != nil {
		if t := s.MCP.Timeout; t != nil {
			if t.Init != nil {
				opts = append(opts, daemon.WithServerInitTimeout(time.Duration(*t.Init)))
			}
			if t.Shutdown != nil {
				opts = append(opts, daemon.WithServerShutdownTimeout(time.Duration(*t.Shutdown)))
			}
			if t.Health != nil {
				opts = append(opts, daemon.WithServerHealthCheckTimeout(time.Duration(*t.Health)))
			}
		}
		if i := s.MCP.Interval; i != nil && i.Health != nil {
			opts = append(opts, daemon.WithServerHealthCheckInterval(time.Duration(*i.Health)))
		}
	}

	if apiOpts := apiOptions(s.API); len(apiOpts) > 0 {
		opts = append(opts, daemon.WithAPIOptions(apiOpts...))
	}

	return opts
}

// apiOptions maps the API settings section onto API server options.
func apiOptions(s *config.APISettingsSection) []daemon.APIOption {
	if s == nil {
		return nil
	}

	var opts []daemon.APIOption

	if s.Timeout != nil && s.Timeout.Shutdown != nil {
		opts = append(opts, daemon.WithShutdownTimeout(time.Duration(*s.Timeout.Shutdown)))
	}

	if c := s.CORS; c != nil {
		if c.Enable != nil {
			opts = append(opts, daemon.WithCORSEnabled(*c.Enable))
		}
		if len(c.Origins) > 0 {
			opts = append(opts, daemon.WithCORSAllowOrigins(c.Origins))
		}
		if len(c.Methods) > 0 {
			opts = append(opts, daemon.WithCORSAllowMethods(c.Methods))
		}
		if len(c.Headers) > 0 {
			opts = append(opts, daemon.WithCORSAllowHeaders(c.Headers))
		}
		if len(c.ExposeHeaders) > 0 {
			opts = append(opts, daemon.WithCORSExposeHeaders(c.ExposeHeaders))
		}
		if c.Credentials != nil {
			opts = append(opts, daemon.WithCORSAllowCredentials(*c.Credentials))
		}
		if c.MaxAge != nil {
			opts = append(opts, daemon.WithCORSMaxAge(time.Duration(*c.MaxAge)))
		}
	}

	return opts
}
