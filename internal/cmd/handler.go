package cmd

import (
	"fmt"
	"io"

	"github.com/mcptools/toolgate/internal/cmd/output"
)

// FormatHandler returns the output handler matching the requested format.
func FormatHandler[T any](w io.Writer, format OutputFormat, p output.ListPrinter[T]) (output.Handler[T], error) {
	switch format.Normalize() {
	case FormatJSON:
		return output.NewJSONHandler[T](w, 2), nil
	case FormatText:
		return output.NewTextHandler(w, p), nil
	default:
		allowed := AllowedOutputFormats()
		return nil, fmt.Errorf("unsupported output format '%s', allowed: %s", format, allowed.String())
	}
}
