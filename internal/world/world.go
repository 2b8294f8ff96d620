// Package world models an ant walking a toroidal grid and eating the food
// laid out along a trail.
package world

import (
	"errors"
	"fmt"

	"anttrail/internal/trail"
)

var (
	ErrInvalidExtent  = errors.New("grid extent must be positive")
	ErrInvalidHeading = errors.New("invalid heading")
)

// Config fixes the size of the grid. Both axes wrap around independently.
type Config struct {
	Width  int
	Height int
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidExtent, c.Width, c.Height)
	}
	return nil
}

// wrap reduces v into [0, n).
func wrap(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}

// World holds the ant and the food it has not eaten yet.
type World struct {
	cfg     Config
	heading Direction
	pos     trail.Position
	food    trail.Trail
	eaten   int
}

type Option func(*World)

// WithHeading sets the initial heading. The default is East.
func WithHeading(d Direction) Option {
	return func(w *World) {
		w.heading = d
	}
}

// WithPosition sets the initial position, wrapped into the grid. The default
// is the origin.
func WithPosition(p trail.Position) Option {
	return func(w *World) {
		w.pos = p
	}
}

// New places the ant on a grid holding a copy of food. Food under the
// starting cell is eaten right away.
func New(cfg Config, food trail.Trail, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		heading: East,
		food:    food.Clone(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.heading < North || w.heading > West {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeading, int(w.heading))
	}
	w.pos = w.normalize(w.pos)
	w.eat()
	return w, nil
}

func (w *World) normalize(p trail.Position) trail.Position {
	return trail.Position{X: wrap(p.X, w.cfg.Width), Y: wrap(p.Y, w.cfg.Height)}
}

// Ahead is the cell the ant would occupy after Advance.
func (w *World) Ahead() trail.Position {
	dx, dy := w.heading.delta()
	return w.normalize(trail.Position{X: w.pos.X + dx, Y: w.pos.Y + dy})
}

// Advance moves the ant one cell forward and eats whatever is there.
func (w *World) Advance() {
	w.pos = w.Ahead()
	w.eat()
}

func (w *World) TurnLeft() {
	w.heading = w.heading.Left()
}

func (w *World) TurnRight() {
	w.heading = w.heading.Right()
}

// IsFoodAhead reports whether the cell ahead holds food. It does not change
// the world.
func (w *World) IsFoodAhead() bool {
	return w.food.Contains(w.Ahead())
}

func (w *World) eat() {
	if w.food.Remove(w.pos) {
		w.eaten++
	}
}

func (w *World) FoodEaten() int           { return w.eaten }
func (w *World) FoodRemaining() int       { return w.food.Len() }
func (w *World) Heading() Direction       { return w.heading }
func (w *World) Position() trail.Position { return w.pos }
func (w *World) Config() Config           { return w.cfg }

// Food returns a copy of the remaining food.
func (w *World) Food() trail.Trail {
	return w.food.Clone()
}

func (w *World) String() string {
	return fmt.Sprintf("ant at %v heading %v, eaten %d, remaining %d",
		w.pos, w.heading, w.eaten, w.food.Len())
}
