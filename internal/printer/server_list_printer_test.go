package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcptools/toolgate/internal/config"
)

func TestServerListPrinter_Header(t *testing.T) {
	t.Parallel()

	out := &strings.Builder{}
	p := &ServerListPrinter{}
	p.Header(out, 3)

	require.Equal(t, "Registered tool servers (3):\n\n", out.String())
}

func TestServerListPrinter_Item(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		entry       config.ServerEntry
		expected    []string
		notExpected []string
	}{
		{
			name: "command only",
			entry: config.ServerEntry{
				Name:             "time",
				ServerLaunchSpec: config.ServerLaunchSpec{Command: "uvx"},
			},
			expected:    []string{"time", "command: uvx"},
			notExpected: []string{"args:", "env:"},
		},
		{
			name: "command with args",
			entry: config.ServerEntry{
				Name: "time",
				ServerLaunchSpec: config.ServerLaunchSpec{
					Command: "uvx",
					Args:    []string{"mcp-server-time", "--local-timezone=UTC"},
				},
			},
			expected: []string{"args: mcp-server-time --local-timezone=UTC"},
		},
		{
			name: "env names sorted, values omitted",
			entry: config.ServerEntry{
				Name: "fetch",
				ServerLaunchSpec: config.ServerLaunchSpec{
					Command: "uvx",
					Env: map[string]string{
						"HTTPS_PROXY": "http://proxy:3128",
						"API_TOKEN":   "secret-value",
					},
				},
			},
			expected:    []string{"env: API_TOKEN, HTTPS_PROXY"},
			notExpected: []string{"secret-value", "http://proxy:3128"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &strings.Builder{}
			p := &ServerListPrinter{}
			require.NoError(t, p.Item(out, tc.entry))

			for _, want := range tc.expected {
				require.Contains(t, out.String(), want)
			}
			for _, unwanted := range tc.notExpected {
				require.NotContains(t, out.String(), unwanted)
			}
		})
	}
}
