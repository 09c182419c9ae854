package output

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONHandler renders registry listings and errors as JSON documents,
// honoring the struct tags of T. Selected with --format=json.
type JSONHandler[T any] struct {
	out    io.Writer
	indent string
}

// NewJSONHandler creates a handler writing to w, indenting nested values
// by indentSpaces spaces.
func NewJSONHandler[T any](w io.Writer, indentSpaces int) *JSONHandler[T] {
	return &JSONHandler[T]{
		out:    w,
		indent: strings.Repeat(" ", indentSpaces),
	}
}

// Writer returns the destination the handler writes to.
func (h *JSONHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResults writes the items as a document with a single "results" key.
// Empty and nil slices still produce a document, keeping the output
// machine-parseable for scripted callers.
func (h *JSONHandler[T]) HandleResults(items []T) error {
	return h.encode(struct {
		Results []T `json:"results"`
	}{
		Results: items,
	})
}

// HandleError writes the error message as a document with a single "error" key,
// so failures stay parseable in the same way as results.
func (h *JSONHandler[T]) HandleError(err error) error {
	return h.encode(struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	})
}

func (h *JSONHandler[T]) encode(doc any) error {
	enc := json.NewEncoder(h.out)
	enc.SetIndent("", h.indent)
	return enc.Encode(doc)
}
