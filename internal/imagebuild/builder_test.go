package imagebuild

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

// recordingRunner captures every command invocation and can fail selectively.
type recordingRunner struct {
	calls   [][]string
	failOn  string
	failErr error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	call := append([]string{name}, args...)
	r.calls = append(r.calls, call)

	if r.failOn != "" && strings.Contains(strings.Join(call, " "), r.failOn) {
		return r.failErr
	}

	return nil
}

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	t.Run("nil logger rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewBuilder(nil, &recordingRunner{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "logger cannot be nil")
	})

	t.Run("nil runner rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewBuilder(hclog.NewNullLogger(), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "runner cannot be nil")
	})

	t.Run("invalid options rejected", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			option  Option
			wantErr string
		}{
			{name: "empty image name", option: WithImageName(" "), wantErr: "image name cannot be empty"},
			{name: "empty version tag", option: WithVersionTag(""), wantErr: "version tag cannot be empty"},
			{name: "empty context dir", option: WithContextDir(""), wantErr: "context directory cannot be empty"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := NewBuilder(hclog.NewNullLogger(), &recordingRunner{}, tc.option)
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
			})
		}
	})
}

func TestBuilder_Tags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "defaults include latest",
			want: []string{DefaultVersionTag, LatestTag},
		},
		{
			name: "custom version tag",
			opts: []Option{WithVersionTag("1.2.3")},
			want: []string{"1.2.3", LatestTag},
		},
		{
			name: "skip latest",
			opts: []Option{WithSkipLatest(true)},
			want: []string{DefaultVersionTag},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBuilder(hclog.NewNullLogger(), &recordingRunner{}, tc.opts...)
			require.NoError(t, err)
			require.Equal(t, tc.want, b.Tags())
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds every tag in order", func(t *testing.T) {
		t.Parallel()

		runner := &recordingRunner{}
		b, err := NewBuilder(hclog.NewNullLogger(), runner, WithVersionTag("1.2.3"), WithContextDir("./build"))
		require.NoError(t, err)

		require.NoError(t, b.Build(context.Background()))

		require.Len(t, runner.calls, 2)
		require.Equal(t,
			[]string{"docker", "build", "-t", DefaultImageName + ":1.2.3", "./build"},
			runner.calls[0],
		)
		require.Equal(t,
			[]string{"docker", "build", "-t", DefaultImageName + ":" + LatestTag, "./build"},
			runner.calls[1],
		)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		t.Parallel()

		runner := &recordingRunner{failOn: ":" + LatestTag, failErr: fmt.Errorf("no space left")}
		b, err := NewBuilder(hclog.NewNullLogger(), runner, WithVersionTag("1.2.3"))
		require.NoError(t, err)

		err = b.Build(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "build failed for "+DefaultImageName+":"+LatestTag)

		// The version tag build ran; nothing is rolled back.
		require.Len(t, runner.calls, 2)
		require.Equal(t, DefaultImageName+":1.2.3", runner.calls[0][3])
	})

	t.Run("failing version tag prevents latest", func(t *testing.T) {
		t.Parallel()

		runner := &recordingRunner{failOn: ":1.2.3", failErr: fmt.Errorf("bad Dockerfile")}
		b, err := NewBuilder(hclog.NewNullLogger(), runner, WithVersionTag("1.2.3"))
		require.NoError(t, err)

		err = b.Build(context.Background())
		require.Error(t, err)
		require.Len(t, runner.calls, 1)
	})
}
