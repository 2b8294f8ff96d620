package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"anttrail/internal/config"
	"anttrail/internal/ctxlog"
	"anttrail/internal/interpreter"
	"anttrail/internal/trail"
)

var ErrEmptyTrail = errors.New("trail is empty")

// Config holds what an App needs regardless of the command it runs.
type Config struct {
	LogLevel  string
	LogFormat string
}

// App writes command results to outW and logs to logW.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	env    *interpreter.Environment
}

func New(outW, logW io.Writer, cfg Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	env := interpreter.NewAntEnvironment()
	logger.Debug("Ant environment ready.", "functions", env.String())

	return &App{outW: outW, logger: logger, env: env}
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Check parses a trail file and prints its size.
func (a *App) Check(ctx context.Context, trailPath string) (trail.Trail, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Checking trail.", "path", trailPath)

	t, err := trail.Load(trailPath)
	if err != nil {
		var synErr *trail.SyntaxError
		if errors.As(err, &synErr) {
			logger.Error("Trail is malformed.",
				"path", trailPath,
				"error", synErr.Err,
				"line", synErr.Line,
				"char", synErr.Column,
				"state", synErr.State.String(),
				"buffer", synErr.Buffer)
		}
		return trail.Trail{}, err
	}
	fmt.Fprintf(a.outW, "%s: %d positions\n", trailPath, t.Len())
	return t, nil
}

// Format prints a trail file in canonical form.
func (a *App) Format(ctx context.Context, trailPath string) error {
	ctx = a.withLogger(ctx)
	ctxlog.FromContext(ctx).Debug("Formatting trail.", "path", trailPath)

	t, err := trail.Load(trailPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, t.String())
	return err
}

// WriteDOT prints the trail parser automaton.
func (a *App) WriteDOT(ctx context.Context) error {
	ctxlog.FromContext(a.withLogger(ctx)).Debug("Writing trail automaton.")
	return trail.WriteDOT(a.outW)
}

// loadConfig returns the defaults when path is empty.
func (a *App) loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(ctx, path)
}
