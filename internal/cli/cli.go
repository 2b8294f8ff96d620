package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"anttrail/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Command is a parsed invocation.
type Command struct {
	Name      string
	App       app.Config
	TrailPath string
	Run       app.RunRequest
}

const usage = `
anttrail - run artificial ant programs on food trails.

Usage:
  anttrail check  [options] TRAIL
  anttrail format [options] TRAIL
  anttrail dot    [options]
  anttrail run    [options] [-config FILE] [-trace] PROGRAM TRAIL

Commands:
  check   Parse a trail file and report its size or the syntax error.
  format  Print a trail file in canonical form.
  dot     Print the trail parser automaton as a Graphviz digraph.
  run     Run a program against a trail and report the food eaten.
`

// Parse processes command-line arguments. It returns the parsed Command,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}

	cmd := &Command{Name: args[0]}
	var nargs int
	switch cmd.Name {
	case "check", "format":
		nargs = 1
	case "dot":
		nargs = 0
	case "run":
		nargs = 2
	case "help", "-h", "-help", "--help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	default:
		return nil, false, usageError("unknown command %q", cmd.Name)
	}

	flagSet := flag.NewFlagSet("anttrail "+cmd.Name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		fmt.Fprintf(output, "\nOptions for %s:\n", cmd.Name)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	var configFlag *string
	var traceFlag *bool
	if cmd.Name == "run" {
		configFlag = flagSet.String("config", "", "Path to an HCL run configuration file.")
		traceFlag = flagSet.Bool("trace", false, "Render the world after every step.")
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%v", err)
	}
	slog.Debug("Arguments parsed successfully.", "command", cmd.Name)

	if flagSet.NArg() != nargs {
		return nil, false, usageError("%s: expected %d argument(s), got %d", cmd.Name, nargs, flagSet.NArg())
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	cmd.App = app.Config{LogLevel: logLevel, LogFormat: logFormat}

	switch cmd.Name {
	case "check", "format":
		cmd.TrailPath = flagSet.Arg(0)
	case "run":
		cmd.Run = app.RunRequest{
			ProgramPath: flagSet.Arg(0),
			TrailPath:   flagSet.Arg(1),
			ConfigPath:  *configFlag,
			Trace:       *traceFlag,
		}
	}

	slog.Debug("CLI parser finished successfully.", "command", cmd.Name)
	return cmd, false, nil
}

// Execute runs a parsed command.
func Execute(ctx context.Context, cmd *Command, outW, logW io.Writer) error {
	a := app.New(outW, logW, cmd.App)
	switch cmd.Name {
	case "check":
		_, err := a.Check(ctx, cmd.TrailPath)
		return err
	case "format":
		return a.Format(ctx, cmd.TrailPath)
	case "dot":
		return a.WriteDOT(ctx)
	case "run":
		_, err := a.Run(ctx, cmd.Run)
		return err
	}
	return usageError("unknown command %q", cmd.Name)
}
