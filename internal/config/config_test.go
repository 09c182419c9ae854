package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestDefaultLoader_Init(t *testing.T) {
	t.Parallel()

	t.Run("creates default registry", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")

		loader := &DefaultLoader{}
		require.NoError(t, loader.Init(path))

		cfg, err := loader.Load(path)
		require.NoError(t, err)

		servers := cfg.ListServers()
		require.Len(t, servers, 2)
		require.Equal(t, "fetch", servers[0].Name)
		require.Equal(t, "uvx", servers[0].Command)
		require.Equal(t, []string{"mcp-server-fetch"}, servers[0].Args)
		require.Equal(t, "time", servers[1].Name)
		require.Equal(t, []string{"mcp-server-time", "--local-timezone=UTC"}, servers[1].Args)
	})

	t.Run("refuses to overwrite existing file", func(t *testing.T) {
		t.Parallel()

		path := writeRegistry(t, `{"mcpServers": {}}`)

		loader := &DefaultLoader{}
		err := loader.Init(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "already exists")
	})
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contents    string
		wantErr     error
		errText     string
		wantServers int
	}{
		{
			name:        "valid registry",
			contents:    `{"mcpServers": {"time": {"command": "uvx", "args": ["mcp-server-time"]}}}`,
			wantServers: 1,
		},
		{
			name:        "empty registry is valid",
			contents:    `{"mcpServers": {}}`,
			wantServers: 0,
		},
		{
			name:        "entry without args is valid",
			contents:    `{"mcpServers": {"time": {"command": "uvx"}}}`,
			wantServers: 1,
		},
		{
			name:     "duplicate server names rejected",
			contents: `{"mcpServers": {"time": {"command": "uvx"}, "time": {"command": "npx"}}}`,
			wantErr:  ErrDuplicateServer,
		},
		{
			name:     "missing mcpServers key rejected",
			contents: `{"servers": {}}`,
			wantErr:  ErrConfigLoadFailed,
			errText:  "mcpServers",
		},
		{
			name:     "entry without command rejected",
			contents: `{"mcpServers": {"time": {"args": ["mcp-server-time"]}}}`,
			wantErr:  ErrConfigLoadFailed,
			errText:  "command",
		},
		{
			name:     "empty command rejected",
			contents: `{"mcpServers": {"time": {"command": ""}}}`,
			wantErr:  ErrConfigLoadFailed,
		},
		{
			name:     "malformed JSON rejected",
			contents: `{"mcpServers": {`,
			wantErr:  ErrConfigLoadFailed,
		},
		{
			name:     "non-object document rejected",
			contents: `[]`,
			wantErr:  ErrConfigLoadFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeRegistry(t, tc.contents)

			loader := &DefaultLoader{}
			cfg, err := loader.Load(path)

			if tc.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
				if tc.errText != "" {
					require.Contains(t, err.Error(), tc.errText)
				}
				return
			}

			require.NoError(t, err)
			require.Len(t, cfg.ListServers(), tc.wantServers)
		})
	}

	t.Run("missing file reports init hint", func(t *testing.T) {
		t.Parallel()

		loader := &DefaultLoader{}
		_, err := loader.Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrConfigLoadFailed))
		require.Contains(t, err.Error(), "toolgate init")
	})

	t.Run("empty path rejected", func(t *testing.T) {
		t.Parallel()

		loader := &DefaultLoader{}
		_, err := loader.Load("  ")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrConfigLoadFailed))
	})
}

func TestRegistry_AddServer(t *testing.T) {
	t.Parallel()

	newRegistry := func(t *testing.T) Modifier {
		t.Helper()
		path := writeRegistry(t, `{"mcpServers": {"time": {"command": "uvx"}}}`)
		loader := &DefaultLoader{}
		cfg, err := loader.Load(path)
		require.NoError(t, err)
		return cfg
	}

	t.Run("adds and persists a new server", func(t *testing.T) {
		t.Parallel()

		cfg := newRegistry(t)
		entry := ServerEntry{
			Name: "fetch",
			ServerLaunchSpec: ServerLaunchSpec{
				Command: "uvx",
				Args:    []string{"mcp-server-fetch"},
				Env:     map[string]string{"HTTPS_PROXY": "http://proxy:3128"},
			},
		}

		require.NoError(t, cfg.AddServer(entry))

		servers := cfg.ListServers()
		require.Len(t, servers, 2)
		require.Equal(t, "fetch", servers[0].Name)
		require.Equal(t, "http://proxy:3128", servers[0].Env["HTTPS_PROXY"])
	})

	t.Run("rejects existing name", func(t *testing.T) {
		t.Parallel()

		cfg := newRegistry(t)
		err := cfg.AddServer(ServerEntry{
			Name:             "time",
			ServerLaunchSpec: ServerLaunchSpec{Command: "npx"},
		})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrServerExists))
	})

	t.Run("rejects invalid entry", func(t *testing.T) {
		t.Parallel()

		cfg := newRegistry(t)
		err := cfg.AddServer(ServerEntry{Name: "broken"})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidServer))
	})
}

func TestRegistry_RemoveServer(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, `{"mcpServers": {"time": {"command": "uvx"}, "fetch": {"command": "uvx"}}}`)
	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.RemoveServer("time"))
	require.Len(t, cfg.ListServers(), 1)

	err = cfg.RemoveServer("time")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrServerMissing))

	// The removal is persisted.
	reloaded, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, reloaded.ListServers(), 1)
	require.Equal(t, "fetch", reloaded.ListServers()[0].Name)
}

func TestRegistry_SaveConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, `{"mcpServers": {}}`)
	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	entry := ServerEntry{
		Name: "time",
		ServerLaunchSpec: ServerLaunchSpec{
			Command: "uvx",
			Args:    []string{"mcp-server-time", "--local-timezone=UTC"},
		},
	}
	require.NoError(t, cfg.AddServer(entry))

	// The file keeps the documented wire shape.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]ServerLaunchSpec
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "mcpServers")
	require.Equal(t, "uvx", raw["mcpServers"]["time"].Command)

	reloaded, err := loader.Load(path)
	require.NoError(t, err)
	servers := reloaded.ListServers()
	require.Len(t, servers, 1)
	require.Equal(t, entry.Name, servers[0].Name)
	require.Equal(t, entry.Command, servers[0].Command)
	require.Equal(t, entry.Args, servers[0].Args)
}

func TestDuplicateServerNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{
			name:     "no duplicates",
			document: `{"mcpServers": {"time": {}, "fetch": {}}}`,
			want:     nil,
		},
		{
			name:     "single duplicate reported once",
			document: `{"mcpServers": {"time": {}, "time": {}, "time": {}}}`,
			want:     []string{"time"},
		},
		{
			name:     "multiple duplicates in first-repeat order",
			document: `{"mcpServers": {"fetch": {}, "time": {}, "time": {}, "fetch": {}}}`,
			want:     []string{"time", "fetch"},
		},
		{
			name:     "duplicates outside mcpServers ignored",
			document: `{"other": {"x": 1, "x": 2}, "mcpServers": {"time": {}}}`,
			want:     nil,
		},
		{
			name:     "nested objects do not confuse the scan",
			document: `{"mcpServers": {"time": {"env": {"A": "1", "A": "2"}}, "fetch": {}}}`,
			want:     nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := duplicateServerNames([]byte(tc.document))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestServerEntry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entry   ServerEntry
		wantErr bool
	}{
		{
			name: "valid entry",
			entry: ServerEntry{
				Name:             "time",
				ServerLaunchSpec: ServerLaunchSpec{Command: "uvx"},
			},
		},
		{
			name: "valid entry without args",
			entry: ServerEntry{
				Name:             "fetch",
				ServerLaunchSpec: ServerLaunchSpec{Command: "npx", Args: nil},
			},
		},
		{
			name:    "empty name",
			entry:   ServerEntry{ServerLaunchSpec: ServerLaunchSpec{Command: "uvx"}},
			wantErr: true,
		},
		{
			name:    "whitespace command",
			entry:   ServerEntry{Name: "time", ServerLaunchSpec: ServerLaunchSpec{Command: "   "}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.entry.Validate()
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidServer))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
