package output

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONHandler_HandleResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{
			name:  "items",
			items: []string{"time", "fetch"},
			want:  "{\n  \"results\": [\n    \"time\",\n    \"fetch\"\n  ]\n}\n",
		},
		{
			name:  "empty list",
			items: []string{},
			want:  "{\n  \"results\": []\n}\n",
		},
		{
			name:  "nil list",
			items: nil,
			want:  "{\n  \"results\": null\n}\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &strings.Builder{}
			h := NewJSONHandler[string](out, 2)

			require.NoError(t, h.HandleResults(tc.items))
			require.Equal(t, tc.want, out.String())
		})
	}
}

func TestJSONHandler_HandleResults_Structs(t *testing.T) {
	t.Parallel()

	type server struct {
		Name    string `json:"name"`
		Command string `json:"command"`
	}

	out := &strings.Builder{}
	h := NewJSONHandler[server](out, 2)

	require.NoError(t, h.HandleResults([]server{{Name: "time", Command: "uvx"}}))
	require.JSONEq(t, `{"results": [{"name": "time", "command": "uvx"}]}`, out.String())
}

func TestJSONHandler_HandleError(t *testing.T) {
	t.Parallel()

	out := &strings.Builder{}
	h := NewJSONHandler[string](out, 2)

	require.NoError(t, h.HandleError(fmt.Errorf("registry file cannot be found")))
	require.JSONEq(t, `{"error": "registry file cannot be found"}`, out.String())
}
