package output

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// linePrinter prints one line per item, with count markers around the list.
type linePrinter struct{}

func (p *linePrinter) Header(w io.Writer, count int) {
	_, _ = fmt.Fprintf(w, "items (%d):\n", count)
}

func (p *linePrinter) Item(w io.Writer, elem string) error {
	_, _ = fmt.Fprintf(w, "- %s\n", elem)
	return nil
}

func (p *linePrinter) Footer(w io.Writer, count int) {
	_, _ = fmt.Fprintf(w, "end (%d)\n", count)
}

// failingPrinter always fails on the first item.
type failingPrinter struct{}

func (p *failingPrinter) Header(_ io.Writer, _ int) {}

func (p *failingPrinter) Item(_ io.Writer, _ string) error {
	return fmt.Errorf("printer broke")
}

func (p *failingPrinter) Footer(_ io.Writer, _ int) {}

func TestTextHandler_HandleResults(t *testing.T) {
	t.Parallel()

	t.Run("items with header and footer", func(t *testing.T) {
		t.Parallel()

		out := &strings.Builder{}
		h := NewTextHandler[string](out, &linePrinter{})

		require.NoError(t, h.HandleResults([]string{"time", "fetch"}))
		require.Equal(t, "items (2):\n- time\n- fetch\nend (2)\n", out.String())
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		out := &strings.Builder{}
		h := NewTextHandler[string](out, &linePrinter{})

		require.NoError(t, h.HandleResults(nil))
		require.Equal(t, "No items found\n", out.String())
	})

	t.Run("printer failure propagates", func(t *testing.T) {
		t.Parallel()

		h := NewTextHandler[string](&strings.Builder{}, &failingPrinter{})
		err := h.HandleResults([]string{"time"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "printer broke")
	})
}

func TestTextHandler_HandleError(t *testing.T) {
	t.Parallel()

	h := NewTextHandler[string](&strings.Builder{}, &linePrinter{})
	err := fmt.Errorf("boom")
	require.Equal(t, err, h.HandleError(err))
}

func TestTextHandler_Writer(t *testing.T) {
	t.Parallel()

	out := &strings.Builder{}
	h := NewTextHandler[string](out, &linePrinter{})
	require.Same(t, io.Writer(out), h.Writer())
}
