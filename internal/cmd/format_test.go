package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{name: "json", input: "json", want: FormatJSON},
		{name: "text", input: "text", want: FormatText},
		{name: "upper case", input: "JSON", want: FormatJSON},
		{name: "surrounding whitespace", input: "  text ", want: FormatText},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOutputFormat(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "invalid output format")
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestOutputFormat_Set(t *testing.T) {
	t.Parallel()

	var f OutputFormat

	require.NoError(t, f.Set("json"))
	require.Equal(t, FormatJSON, f)

	require.NoError(t, f.Set("TEXT"))
	require.Equal(t, FormatText, f)

	err := f.Set("yaml")
	require.Error(t, err)
	require.Equal(t, FormatText, f, "failed Set must not change the value")
}

func TestOutputFormat_Type(t *testing.T) {
	t.Parallel()

	var f OutputFormat
	require.Equal(t, "format", f.Type())
}

func TestAllowedOutputFormats(t *testing.T) {
	t.Parallel()

	formats := AllowedOutputFormats()
	require.Equal(t, OutputFormats{FormatJSON, FormatText}, formats)
	require.Equal(t, "json, text", formats.String())
}
