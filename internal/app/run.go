package app

import (
	"context"
	"errors"
	"fmt"

	"anttrail/internal/ctxlog"
	"anttrail/internal/interpreter"
	"anttrail/internal/trail"
	"anttrail/internal/world"
)

// RunRequest names the inputs of one simulation.
type RunRequest struct {
	ProgramPath string
	TrailPath   string
	// ConfigPath is optional; the defaults apply without it.
	ConfigPath string
	// Trace renders the world after every step.
	Trace bool
}

// Result summarizes a finished simulation.
type Result struct {
	Program       string
	FoodTotal     int
	FoodEaten     int
	FoodRemaining int
	Cost          int
	// Halt says why the program stopped.
	Halt string
}

// Fitness is the share of food left uneaten; 0 is a perfect run.
func (r *Result) Fitness() float64 {
	if r.FoodTotal == 0 {
		return 0
	}
	return float64(r.FoodRemaining) / float64(r.FoodTotal)
}

// Run executes a program against a trail and prints the outcome.
func (a *App) Run(ctx context.Context, req RunRequest) (*Result, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "program", req.ProgramPath, "trail", req.TrailPath)

	cfg, err := a.loadConfig(ctx, req.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	food, err := trail.Load(req.TrailPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load trail: %w", err)
	}
	if food.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", req.TrailPath, ErrEmptyTrail)
	}
	logger.Debug("Trail loaded.", "positions", food.Len())

	tree, err := a.env.Load(req.ProgramPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}
	logger.Debug("Program compiled.", "size", tree.Size())

	w, err := world.New(cfg.World, food, cfg.WorldOptions()...)
	if err != nil {
		return nil, err
	}

	x := interpreter.NewExec(tree, w,
		interpreter.WithLoop(cfg.Loop),
		interpreter.WithCostLimit(cfg.CostLimit),
		interpreter.WithStop(func() bool { return w.FoodRemaining() == 0 }),
	)

	var runErr error
	if req.Trace {
		runErr = a.trace(x, w)
	} else {
		runErr = x.Run()
	}

	halt := "program finished"
	switch {
	case w.FoodRemaining() == 0:
		halt = "all food eaten"
	case errors.Is(runErr, interpreter.ErrCostLimitExceeded),
		errors.Is(runErr, interpreter.ErrNoProgress):
		halt = runErr.Error()
	case runErr != nil:
		return nil, fmt.Errorf("execution failed: %w", runErr)
	}

	res := &Result{
		Program:       tree.String(),
		FoodTotal:     food.Len(),
		FoodEaten:     w.FoodEaten(),
		FoodRemaining: w.FoodRemaining(),
		Cost:          x.Cost(),
		Halt:          halt,
	}
	logger.Info("Run finished.", "eaten", res.FoodEaten, "remaining", res.FoodRemaining,
		"cost", res.Cost, "halt", res.Halt)

	fmt.Fprintf(a.outW, "program:   %s\n", res.Program)
	fmt.Fprintf(a.outW, "eaten:     %d/%d\n", res.FoodEaten, res.FoodTotal)
	fmt.Fprintf(a.outW, "remaining: %d\n", res.FoodRemaining)
	fmt.Fprintf(a.outW, "cost:      %d\n", res.Cost)
	fmt.Fprintf(a.outW, "halt:      %s\n", res.Halt)
	fmt.Fprintf(a.outW, "fitness:   %g\n", res.Fitness())
	return res, nil
}

// trace steps x like Exec.Run does, rendering w after each step.
func (a *App) trace(x *interpreter.Exec, w *world.World) error {
	if err := a.render(0, w); err != nil {
		return err
	}
	for step := 1; w.FoodRemaining() > 0; step++ {
		err := x.Step()
		if errors.Is(err, interpreter.ErrFinished) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := a.render(step, w); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) render(step int, w *world.World) error {
	if _, err := fmt.Fprintf(a.outW, "step %d: %v\n", step, w); err != nil {
		return err
	}
	if err := w.Render(a.outW); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.outW)
	return err
}
