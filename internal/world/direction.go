package world

import (
	"fmt"
	"strings"
)

// Direction is the heading of the ant.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Left is the heading after a 90 degree counterclockwise turn.
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	default:
		return North
	}
}

// Right is the heading after a 90 degree clockwise turn.
func (d Direction) Right() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	default:
		return North
	}
}

// delta is the step taken along d. Y grows towards the south.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts a direction name in any case, or its initial.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
