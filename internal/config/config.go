// Package config reads the HCL run configuration of an ant simulation.
//
//	world {
//	  width  = 32
//	  height = 32
//	}
//	ant {
//	  heading = east
//	  x       = 0
//	  y       = 0
//	}
//	run {
//	  cost_limit = 600
//	  loop       = true
//	}
//
// Every block and attribute is optional.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"anttrail/internal/ctxlog"
	"anttrail/internal/trail"
	"anttrail/internal/world"
)

const (
	DefaultWidth     = 32
	DefaultHeight    = 32
	DefaultCostLimit = 600
)

// Config is everything needed to set up and run one simulation.
type Config struct {
	World   world.Config
	Heading world.Direction
	Start   trail.Position
	// CostLimit bounds the cost a program may spend.
	CostLimit int
	Loop      bool
}

func Default() Config {
	return Config{
		World:     world.Config{Width: DefaultWidth, Height: DefaultHeight},
		Heading:   world.East,
		CostLimit: DefaultCostLimit,
		Loop:      true,
	}
}

func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if c.CostLimit <= 0 {
		return errors.New("cost_limit must be positive")
	}
	return nil
}

// WorldOptions returns the world options for the initial ant state.
func (c Config) WorldOptions() []world.Option {
	return []world.Option{world.WithHeading(c.Heading), world.WithPosition(c.Start)}
}

type fileRoot struct {
	World *worldBlock `hcl:"world,block"`
	Ant   *antBlock   `hcl:"ant,block"`
	Run   *runBlock   `hcl:"run,block"`
}

type worldBlock struct {
	Width  *int `hcl:"width,optional"`
	Height *int `hcl:"height,optional"`
}

type antBlock struct {
	Heading *string `hcl:"heading,optional"`
	X       *int    `hcl:"x,optional"`
	Y       *int    `hcl:"y,optional"`
}

type runBlock struct {
	CostLimit *int  `hcl:"cost_limit,optional"`
	Loop      *bool `hcl:"loop,optional"`
}

// evalContext lets headings be written as bare words.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, d := range []world.Direction{world.North, world.East, world.South, world.West} {
		vars[d.String()] = cty.StringVal(d.String())
	}
	return &hcl.EvalContext{Variables: vars}
}

// Load reads and validates a config file.
func Load(ctx context.Context, path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, path, src)
}

// Parse decodes HCL source on top of the defaults and validates the result.
func Parse(ctx context.Context, filename string, src []byte) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing config.", "file", filename)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := Default()
	if b := root.World; b != nil {
		setIf(&cfg.World.Width, b.Width)
		setIf(&cfg.World.Height, b.Height)
	}
	if b := root.Ant; b != nil {
		if b.Heading != nil {
			d, err := world.ParseDirection(*b.Heading)
			if err != nil {
				return nil, fmt.Errorf("config %s: ant heading: %w", filename, err)
			}
			cfg.Heading = d
		}
		setIf(&cfg.Start.X, b.X)
		setIf(&cfg.Start.Y, b.Y)
	}
	if b := root.Run; b != nil {
		setIf(&cfg.CostLimit, b.CostLimit)
		setIf(&cfg.Loop, b.Loop)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	logger.Debug("Config loaded.", "width", cfg.World.Width, "height", cfg.World.Height,
		"heading", cfg.Heading, "cost_limit", cfg.CostLimit, "loop", cfg.Loop)
	return &cfg, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
