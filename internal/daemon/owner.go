package daemon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mcptools/toolgate/internal/cmd"
	"github.com/mcptools/toolgate/internal/config"
)

// ServerOwner exclusively owns the lifecycle of one tool-server subprocess:
// launch, MCP session initialization, monitoring, and shutdown.
// A failure in one owner is reported for that entry alone and never propagates
// to sibling owners or the supervising daemon.
type ServerOwner struct {
	entry  config.ServerEntry
	logger hclog.Logger

	mu     sync.Mutex
	client *client.Client
	tools  []string
}

// NewServerOwner creates an owner for the given registry entry.
// The subprocess is not launched until Start is called.
func NewServerOwner(logger hclog.Logger, entry config.ServerEntry) *ServerOwner {
	return &ServerOwner{
		entry:  entry,
		logger: logger.Named("owner").With("server", entry.Name),
	}
}

// Name returns the registry name of the owned server.
func (o *ServerOwner) Name() string {
	return o.entry.Name
}

// Start launches the subprocess over stdio and initializes the MCP session.
// The command must resolve on PATH; initTimeout bounds session initialization.
func (o *ServerOwner) Start(ctx context.Context, initTimeout time.Duration) error {
	if _, err := exec.LookPath(o.entry.Command); err != nil {
		return fmt.Errorf("command '%s' for server '%s' not found on PATH: %w", o.entry.Command, o.entry.Name, err)
	}

	o.logger.Info(
		"attempting to start tool server",
		"command", o.entry.Command,
		"args", o.entry.Args,
	)

	stdioClient, err := client.NewStdioMCPClient(o.entry.Command, o.environ(), o.entry.Args...)
	if err != nil {
		return fmt.Errorf("error starting tool server '%s': %w", o.entry.Name, err)
	}

	// Drain stderr into the log so subprocess failures remain diagnosable.
	if stderr, ok := client.GetStderr(stdioClient); ok {
		go o.pipeStderr(ctx, stderr)
	}

	initCtx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	initResult, err := stdioClient.Initialize(initCtx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "toolgate", Version: cmd.Version()},
		},
	})
	if err != nil {
		_ = stdioClient.Close()
		return fmt.Errorf("error initializing MCP session for server '%s': %w", o.entry.Name, err)
	}

	o.logger.Info(
		"tool server initialized",
		"serverInfo", fmt.Sprintf("%s@%s", initResult.ServerInfo.Name, initResult.ServerInfo.Version),
	)

	tools, err := o.discoverTools(ctx, stdioClient)
	if err != nil {
		// Tool discovery failure is not fatal; the server stays up with no tools.
		o.logger.Warn("unable to list tools for server", "error", err)
	}

	o.mu.Lock()
	o.client = stdioClient
	o.tools = tools
	o.mu.Unlock()

	return nil
}

// Client returns the MCP client for the owned subprocess, or nil before Start succeeds.
func (o *ServerOwner) Client() *client.Client {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.client
}

// ToolNames returns the tool names the server advertised at startup.
func (o *ServerOwner) ToolNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tools
}

// Close terminates the owned subprocess, waiting at most timeout for a clean exit.
func (o *ServerOwner) Close(timeout time.Duration) error {
	o.mu.Lock()
	c := o.client
	o.client = nil
	o.mu.Unlock()

	if c == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("error closing server '%s': %w", o.entry.Name, err)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("timed out closing server '%s' after %s", o.entry.Name, timeout)
	}
}

// discoverTools asks the freshly initialized server which tools it exposes.
func (o *ServerOwner) discoverTools(ctx context.Context, c *client.Client) ([]string, error) {
	listCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	result, err := c.ListTools(listCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("no result listing tools for server '%s'", o.entry.Name)
	}

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}

	return names, nil
}

// pipeStderr forwards subprocess stderr lines to the owner's logger.
func (o *ServerOwner) pipeStderr(ctx context.Context, stderr io.Reader) {
	reader := bufio.NewReader(stderr)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			line, err := reader.ReadString('\n')
			if line != "" {
				o.logger.Debug("stderr", "line", strings.TrimRight(line, "\n"))
			}
			if err != nil {
				if err != io.EOF {
					o.logger.Error("error reading stderr", "error", err)
				}
				return
			}
		}
	}
}

// environ merges the configured per-server environment over the process environment.
func (o *ServerOwner) environ() []string {
	overrides := make([]string, 0, len(o.entry.Env))
	for k, v := range o.entry.Env {
		overrides = append(overrides, fmt.Sprintf("%s=%s", k, v))
	}
	return mergeEnvs(os.Environ(), overrides)
}

func mergeEnvs(baseEnvs, overrideEnvs []string) []string {
	envMap := make(map[string]string, len(baseEnvs))

	for _, e := range baseEnvs {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for _, e := range overrideEnvs {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}
