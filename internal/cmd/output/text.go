package output

import (
	"io"
)

// TextHandler renders listings as human-readable text, delegating the shape of
// each line to a ListPrinter. This is the default format for registry commands.
type TextHandler[T any] struct {
	out     io.Writer
	printer ListPrinter[T]
}

// NewTextHandler creates a handler writing to w using p for item rendering.
func NewTextHandler[T any](w io.Writer, p ListPrinter[T]) *TextHandler[T] {
	return &TextHandler[T]{
		out:     w,
		printer: p,
	}
}

// Writer returns the destination the handler writes to.
func (h *TextHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResults prints the items between the printer's header and footer.
// An empty set prints a single placeholder line instead.
func (h *TextHandler[T]) HandleResults(items []T) error {
	if len(items) == 0 {
		_, _ = io.WriteString(h.out, "No items found\n")
		return nil
	}

	h.printer.Header(h.out, len(items))

	for _, it := range items {
		if err := h.printer.Item(h.out, it); err != nil {
			return err
		}
	}

	h.printer.Footer(h.out, len(items))

	return nil
}

// HandleError passes the error back unchanged; in text mode the CLI framework
// is responsible for presenting it.
func (h *TextHandler[T]) HandleError(err error) error {
	return err
}
