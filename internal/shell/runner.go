// Package shell runs external commands for components that drive the Docker CLI.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecRunner runs commands via os/exec, streaming output to the configured writers.
type ExecRunner struct {
	// Stdout receives the command's standard output. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives the command's standard error. Defaults to os.Stderr.
	Stderr io.Writer

	// Dir is the working directory for commands. Empty means the current directory.
	Dir string

	// Env contains additional environment variables in KEY=value form,
	// appended to the current process environment.
	Env []string
}

// Run executes the named command, blocking until it exits.
// The returned error is the raw process error; callers add context.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	return cmd.Run()
}
