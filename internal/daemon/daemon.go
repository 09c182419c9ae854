package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/client"
	"golang.org/x/sync/errgroup"

	"github.com/mcptools/toolgate/internal/domain"
)

// Daemon supervises the configured tool-server subprocesses and exposes the
// HTTP API that multiplexes requests to them.
//
// Supervision is structured as a registry of owners: every registry entry gets
// exactly one ServerOwner that controls that subprocess's lifecycle. Failures
// are recorded per entry and never bring down the daemon as a whole.
type Daemon struct {
	logger        hclog.Logger
	apiServer     *APIServer
	clientManager *ClientManager
	healthTracker *HealthTracker
	owners        []*ServerOwner
	opts          Options
}

// NewDaemon creates a daemon from validated dependencies and optional configuration.
func NewDaemon(deps Dependencies, opt ...Option) (*Daemon, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for daemon: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon options: %w", err)
	}

	logger := deps.Logger.Named("daemon")
	clientManager := NewClientManager()

	names := make([]string, 0, len(deps.Servers))
	for _, s := range deps.Servers {
		names = append(names, s.Name)
	}
	healthTracker := NewHealthTracker(names)

	apiDeps, err := NewAPIDependencies(logger, clientManager, healthTracker, deps.APIAddr)
	if err != nil {
		return nil, err
	}
	apiServer, err := NewAPIServer(apiDeps, opts.APIOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon API server: %w", err)
	}

	owners := make([]*ServerOwner, 0, len(deps.Servers))
	for _, s := range deps.Servers {
		owners = append(owners, NewServerOwner(logger, s))
	}

	return &Daemon{
		logger:        logger,
		apiServer:     apiServer,
		clientManager: clientManager,
		healthTracker: healthTracker,
		owners:        owners,
		opts:          opts,
	}, nil
}

// StartAndManage launches all configured tool servers, then runs the API server
// and health check loop until the context is canceled or the API server fails.
// All subprocesses are closed before it returns.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	d.startServers(ctx)
	defer d.stopServers()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.apiServer.Start(gctx)
	})

	g.Go(func() error {
		d.healthCheckLoop(gctx, d.opts.ClientHealthCheckInterval, d.opts.ClientHealthCheckTimeout)
		return nil
	})

	return g.Wait()
}

// startServers launches every owned subprocess concurrently and waits for all
// launch attempts to settle. A failed launch marks that entry unreachable and is
// logged; it does not affect sibling servers.
func (d *Daemon) startServers(ctx context.Context) {
	d.logger.Info(fmt.Sprintf("loaded registry entries for %d tool server(s)", len(d.owners)))

	var wg sync.WaitGroup
	wg.Add(len(d.owners))
	for _, owner := range d.owners {
		go func(o *ServerOwner) {
			defer wg.Done()

			if err := o.Start(ctx, d.opts.ClientInitTimeout); err != nil {
				d.logger.Error("failed to launch tool server", "name", o.Name(), "error", err)
				_ = d.healthTracker.Update(o.Name(), domain.HealthStatusUnreachable, nil)
				return
			}

			d.clientManager.Add(o.Name(), o.Client(), o.ToolNames())
			d.logger.Info("tool server ready", "name", o.Name(), "tools", len(o.ToolNames()))
		}(owner)
	}
	wg.Wait()

	d.logger.Info(fmt.Sprintf("started %d of %d tool server(s)", len(d.clientManager.List()), len(d.owners)))
}

// stopServers closes every owned subprocess, bounded by the shutdown timeout.
func (d *Daemon) stopServers() {
	d.logger.Info("shutting down tool servers")

	for _, owner := range d.owners {
		d.clientManager.Remove(owner.Name())
		if err := owner.Close(d.opts.ClientShutdownTimeout); err != nil {
			d.logger.Error("error closing tool server", "name", owner.Name(), "error", err)
		}
	}
}

// healthCheckLoop pings all running servers at the configured interval.
func (d *Daemon) healthCheckLoop(ctx context.Context, interval time.Duration, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.pingAllServers(ctx, timeout)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("stopping tool server health checks")
			return
		case <-ticker.C:
			d.pingAllServers(ctx, timeout)
		}
	}
}

// pingAllServers performs one health check round across all connected servers.
func (d *Daemon) pingAllServers(ctx context.Context, timeout time.Duration) {
	for _, name := range d.clientManager.List() {
		c, ok := d.clientManager.Client(name)
		if !ok {
			continue
		}

		go func(name string, mcpClient client.MCPClient) {
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			err := mcpClient.Ping(pingCtx)
			latency := time.Since(start)

			switch {
			case err == nil:
				_ = d.healthTracker.Update(name, domain.HealthStatusOK, &latency)
				d.logger.Debug("ping successful", "server", name, "latency", latency)
			case pingCtx.Err() != nil:
				_ = d.healthTracker.Update(name, domain.HealthStatusTimeout, nil)
				d.logger.Error("ping timed out", "server", name, "timeout", timeout)
			default:
				_ = d.healthTracker.Update(name, domain.HealthStatusUnreachable, nil)
				d.logger.Error("ping failed", "server", name, "error", err)
			}
		}(name, c)
	}
}
