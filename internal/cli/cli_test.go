package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anttrail/internal/app"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want *Command
	}{
		{
			name: "check",
			args: []string{"check", "santafe.trail"},
			want: &Command{
				Name:      "check",
				App:       app.Config{LogLevel: "info", LogFormat: "text"},
				TrailPath: "santafe.trail",
			},
		},
		{
			name: "dot with json logs",
			args: []string{"dot", "-log-format", "JSON", "-log-level", "debug"},
			want: &Command{
				Name: "dot",
				App:  app.Config{LogLevel: "debug", LogFormat: "json"},
			},
		},
		{
			name: "run with options",
			args: []string{"run", "-config", "run.hcl", "-trace", "ant.prog", "santafe.trail"},
			want: &Command{
				Name: "run",
				App:  app.Config{LogLevel: "info", LogFormat: "text"},
				Run: app.RunRequest{
					ProgramPath: "ant.prog",
					TrailPath:   "santafe.trail",
					ConfigPath:  "run.hcl",
					Trace:       true,
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd, exit, err := Parse(tc.args, &out)
			require.NoError(t, err)
			assert.False(t, exit)
			assert.Equal(t, tc.want, cmd)
		})
	}
}

func TestParseUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"run", "-h"}} {
		var out bytes.Buffer
		cmd, exit, err := Parse(args, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cmd)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown command", []string{"evolve"}, `unknown command "evolve"`},
		{"missing argument", []string{"run", "ant.prog"}, "run: expected 2 argument(s), got 1"},
		{"extra argument", []string{"dot", "x"}, "dot: expected 0 argument(s), got 1"},
		{"bad log format", []string{"check", "-log-format", "xml", "t"}, "invalid log-format"},
		{"bad log level", []string{"check", "-log-level", "trace", "t"}, "invalid log-level"},
		{"flag of another command", []string{"check", "-trace", "t"}, "flag provided but not defined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.msg)
		})
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	trailPath := filepath.Join(dir, "t.trail")
	require.NoError(t, os.WriteFile(trailPath, []byte("((2 1) (1 0))"), 0o644))

	var out, logs bytes.Buffer
	cmd, _, err := Parse([]string{"format", trailPath}, &out)
	require.NoError(t, err)
	require.NoError(t, Execute(context.Background(), cmd, &out, &logs))
	assert.Equal(t, "((1 0) (2 1))\n", out.String())
}
