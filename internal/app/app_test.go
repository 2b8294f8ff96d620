package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anttrail/internal/trail"
)

func setupAppTest(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	return New(&out, &logs, Config{LogLevel: "debug", LogFormat: "text"}), &out, &logs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheck(t *testing.T) {
	a, out, _ := setupAppTest(t)
	path := writeFile(t, "ok.trail", "((1 0) (2 2) (1 0))\n")

	tr, err := a.Check(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, path+": 2 positions\n", out.String())
}

func TestCheckMalformed(t *testing.T) {
	a, out, logs := setupAppTest(t)
	path := writeFile(t, "bad.trail", "((1 0)\n (2 x))")

	_, err := a.Check(context.Background(), path)
	require.ErrorIs(t, err, trail.ErrUnrecognizedSymbol)
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "Trail is malformed.")
	assert.Contains(t, logs.String(), "line=2")
	assert.Contains(t, logs.String(), "char=5")
}

func TestFormat(t *testing.T) {
	a, out, _ := setupAppTest(t)
	path := writeFile(t, "messy.trail", "(\n\t(3 5)(1 0)\n  (2   2))")

	require.NoError(t, a.Format(context.Background(), path))
	assert.Equal(t, "((1 0) (2 2) (3 5))\n", out.String())
}

func TestWriteDOT(t *testing.T) {
	a, out, _ := setupAppTest(t)
	require.NoError(t, a.WriteDOT(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "digraph trail {"))
}

func TestRunEatsEverything(t *testing.T) {
	a, out, logs := setupAppTest(t)
	req := RunRequest{
		ProgramPath: writeFile(t, "ant.prog", "(if-food-ahead (forward) (right))"),
		TrailPath:   writeFile(t, "line.trail", "((1 0) (2 0) (3 0))"),
	}

	res, err := a.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, res.FoodEaten)
	assert.Equal(t, 0, res.FoodRemaining)
	assert.Equal(t, 3, res.Cost)
	assert.Equal(t, "all food eaten", res.Halt)
	assert.Equal(t, 0.0, res.Fitness())

	assert.Contains(t, out.String(), "eaten:     3/3\n")
	assert.Contains(t, out.String(), "fitness:   0\n")
	assert.Contains(t, logs.String(), "Run finished.")
}

func TestRunHitsCostLimit(t *testing.T) {
	a, out, _ := setupAppTest(t)
	req := RunRequest{
		ProgramPath: writeFile(t, "ant.prog", "forward"),
		TrailPath:   writeFile(t, "two.trail", "((1 0) (5 5))"),
		ConfigPath:  writeFile(t, "run.hcl", "run {\n  cost_limit = 40\n}\n"),
	}

	res, err := a.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FoodEaten)
	assert.Equal(t, 40, res.Cost)
	assert.Equal(t, "cost limit exceeded", res.Halt)
	assert.Equal(t, 0.5, res.Fitness())
	assert.Contains(t, out.String(), "fitness:   0.5\n")
}

func TestRunWithoutLoop(t *testing.T) {
	a, _, _ := setupAppTest(t)
	req := RunRequest{
		ProgramPath: writeFile(t, "ant.prog", "(progn2 (forward) (forward))"),
		TrailPath:   writeFile(t, "t.trail", "((1 0) (9 9))"),
		ConfigPath:  writeFile(t, "run.hcl", "run {\n  loop = false\n}\n"),
	}

	res, err := a.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "program finished", res.Halt)
	assert.Equal(t, 2, res.Cost)
	assert.Equal(t, 1, res.FoodEaten)
}

func TestRunTrace(t *testing.T) {
	a, out, _ := setupAppTest(t)
	req := RunRequest{
		ProgramPath: writeFile(t, "ant.prog", "forward"),
		TrailPath:   writeFile(t, "t.trail", "((2 0))"),
		ConfigPath:  writeFile(t, "run.hcl", "world {\n  width = 3\n  height = 2\n}\n"),
		Trace:       true,
	}

	_, err := a.Run(context.Background(), req)
	require.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, "step 0: ant at (0 0) heading east, eaten 0, remaining 1\n>.*\n...\n")
	assert.Contains(t, got, "step 1: ant at (1 0) heading east, eaten 0, remaining 1\n.>*\n...\n")
	assert.Contains(t, got, "step 2: ant at (2 0) heading east, eaten 1, remaining 0\n..>\n...\n")
	assert.NotContains(t, got, "step 3:")
}

func TestRunErrors(t *testing.T) {
	a, _, _ := setupAppTest(t)
	prog := writeFile(t, "ant.prog", "forward")
	food := writeFile(t, "t.trail", "((1 1))")

	_, err := a.Run(context.Background(), RunRequest{ProgramPath: prog, TrailPath: writeFile(t, "e.trail", "()")})
	assert.ErrorIs(t, err, ErrEmptyTrail)

	_, err = a.Run(context.Background(), RunRequest{ProgramPath: prog, TrailPath: writeFile(t, "b.trail", "((1 1)")})
	assert.ErrorIs(t, err, trail.ErrIncomplete)

	_, err = a.Run(context.Background(), RunRequest{ProgramPath: writeFile(t, "bad.prog", "(jump)"), TrailPath: food})
	assert.ErrorContains(t, err, "failed to load program")

	_, err = a.Run(context.Background(), RunRequest{
		ProgramPath: prog,
		TrailPath:   food,
		ConfigPath:  writeFile(t, "bad.hcl", "world { width = -3 }"),
	})
	assert.ErrorContains(t, err, "failed to load configuration")
}
