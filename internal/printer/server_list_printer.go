// Package printer contains text renderers for CLI command results.
package printer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mcptools/toolgate/internal/cmd/output"
	"github.com/mcptools/toolgate/internal/config"
)

var _ output.ListPrinter[config.ServerEntry] = (*ServerListPrinter)(nil)

// ServerListPrinter renders registry entries as text.
type ServerListPrinter struct{}

func (p *ServerListPrinter) Header(w io.Writer, count int) {
	_, _ = fmt.Fprintf(w, "Registered tool servers (%d):\n\n", count)
}

func (p *ServerListPrinter) Item(w io.Writer, elem config.ServerEntry) error {
	_, _ = fmt.Fprintf(w, "  %s\n    command: %s\n", elem.Name, elem.Command)

	if len(elem.Args) > 0 {
		_, _ = fmt.Fprintf(w, "    args: %s\n", strings.Join(elem.Args, " "))
	}

	if len(elem.Env) > 0 {
		names := make([]string, 0, len(elem.Env))
		for name := range elem.Env {
			names = append(names, name)
		}
		slices.Sort(names)
		_, _ = fmt.Fprintf(w, "    env: %s\n", strings.Join(names, ", "))
	}

	return nil
}

func (p *ServerListPrinter) Footer(_ io.Writer, _ int) {}
