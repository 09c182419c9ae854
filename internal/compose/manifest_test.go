package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const demoManifest = `
services:
  open-webui:
    image: ghcr.io/open-webui/open-webui:main
    container_name: open-webui
    ports:
      - "3000:8080"
    environment:
      OPENAI_API_BASE_URL: http://toolgate:8000
      WEBUI_AUTH: "False"
    volumes:
      - open-webui:/app/backend/data
    restart: unless-stopped
  toolgate:
    image: ghcr.io/mcptools/toolgate:latest
    ports:
      - "8000:8000"
volumes:
  open-webui: {}
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docker-compose.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid manifest", func(t *testing.T) {
		t.Parallel()

		m, err := Load(writeManifest(t, demoManifest))
		require.NoError(t, err)
		require.Len(t, m.Services, 2)

		webui := m.Services["open-webui"]
		require.Equal(t, "ghcr.io/open-webui/open-webui:main", webui.Image)
		require.Equal(t, []string{"3000:8080"}, webui.Ports)
		require.Equal(t, "http://toolgate:8000", webui.Environment["OPENAI_API_BASE_URL"])

		// Top-level keys outside the typed set survive in Extra.
		require.Contains(t, m.Extra, "volumes")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read manifest")
	})

	t.Run("manifest without services rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeManifest(t, "name: demo\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "declares no services")
	})

	t.Run("malformed YAML rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeManifest(t, "services: [\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode manifest")
	})
}

func TestEnvironment_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		want    Environment
		wantErr bool
		errText string
	}{
		{
			name: "mapping form",
			yaml: "KEY: value\nOTHER: thing\n",
			want: Environment{"KEY": "value", "OTHER": "thing"},
		},
		{
			name: "sequence form",
			yaml: "- KEY=value\n- OTHER=a=b\n",
			want: Environment{"KEY": "value", "OTHER": "a=b"},
		},
		{
			name:    "sequence entry without separator",
			yaml:    "- JUSTAKEY\n",
			wantErr: true,
			errText: "expected KEY=value",
		},
		{
			name:    "scalar rejected",
			yaml:    "just-a-string\n",
			wantErr: true,
			errText: "mapping or a sequence",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var env Environment
			err := yaml.Unmarshal([]byte(tc.yaml), &env)

			if tc.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errText)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, env)
		})
	}
}

func TestManifest_ApplyOverrides(t *testing.T) {
	t.Parallel()

	t.Run("sets backend URL and API key", func(t *testing.T) {
		t.Parallel()

		m, err := Load(writeManifest(t, demoManifest))
		require.NoError(t, err)

		err = m.ApplyOverrides(Overrides{
			Service:    "open-webui",
			BackendURL: "https://api.example.com/v1",
			APIKey:     "sk-test",
		})
		require.NoError(t, err)

		env := m.Services["open-webui"].Environment
		require.Equal(t, "https://api.example.com/v1", env["OPENAI_API_BASE_URL"])
		require.Equal(t, "sk-test", env["OPENAI_API_KEY"])

		// Unrelated variables are preserved.
		require.Equal(t, "False", env["WEBUI_AUTH"])
	})

	t.Run("empty values leave environment untouched", func(t *testing.T) {
		t.Parallel()

		m, err := Load(writeManifest(t, demoManifest))
		require.NoError(t, err)

		err = m.ApplyOverrides(Overrides{Service: "open-webui"})
		require.NoError(t, err)

		env := m.Services["open-webui"].Environment
		require.Equal(t, "http://toolgate:8000", env["OPENAI_API_BASE_URL"])
		require.NotContains(t, env, "OPENAI_API_KEY")
	})

	t.Run("service without environment section", func(t *testing.T) {
		t.Parallel()

		m, err := Load(writeManifest(t, demoManifest))
		require.NoError(t, err)

		err = m.ApplyOverrides(Overrides{Service: "toolgate", APIKey: "sk-test"})
		require.NoError(t, err)
		require.Equal(t, "sk-test", m.Services["toolgate"].Environment["OPENAI_API_KEY"])
	})

	t.Run("unknown service rejected", func(t *testing.T) {
		t.Parallel()

		m, err := Load(writeManifest(t, demoManifest))
		require.NoError(t, err)

		err = m.ApplyOverrides(Overrides{Service: "missing"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "service 'missing' not found")
	})
}

func TestManifest_Save(t *testing.T) {
	t.Parallel()

	original := writeManifest(t, demoManifest)
	m, err := Load(original)
	require.NoError(t, err)

	require.NoError(t, m.ApplyOverrides(Overrides{
		Service:    "open-webui",
		BackendURL: "https://api.example.com/v1",
		APIKey:     "sk-test",
	}))

	derived := filepath.Join(t.TempDir(), "docker-compose.custom.yaml")
	require.NoError(t, m.Save(derived))

	// The derived file carries the overrides.
	reloaded, err := Load(derived)
	require.NoError(t, err)
	env := reloaded.Services["open-webui"].Environment
	require.Equal(t, "https://api.example.com/v1", env["OPENAI_API_BASE_URL"])
	require.Equal(t, "sk-test", env["OPENAI_API_KEY"])

	// The derived file is written with restrictive permissions.
	info, err := os.Stat(derived)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// The original manifest file is untouched.
	originalData, err := os.ReadFile(original)
	require.NoError(t, err)
	require.Equal(t, demoManifest, string(originalData))
}
