package interpreter

// Ant is what the ant primitives need from the world.
type Ant interface {
	Advance()
	TurnLeft()
	TurnRight()
	IsFoodAhead() bool
}

// NewAntEnvironment returns the functions of the artificial ant problem.
//
// if-food-ahead runs its first argument when the cell ahead holds food and
// its second argument otherwise. progn2 and progn3 only sequence their
// arguments.
func NewAntEnvironment() *Environment {
	env := NewEnvironment()
	env.MustAdd(Function{Name: "forward", Cost: 1, Action: Ant.Advance})
	env.MustAdd(Function{Name: "left", Cost: 1, Action: Ant.TurnLeft})
	env.MustAdd(Function{Name: "right", Cost: 1, Action: Ant.TurnRight})
	env.MustAdd(Function{Name: "progn2", Arity: 2})
	env.MustAdd(Function{Name: "progn3", Arity: 3})
	env.MustAdd(Function{Name: "if-food-ahead", Arity: 2, Select: ifFoodAhead})
	return env
}

func ifFoodAhead(a Ant) int {
	if a.IsFoodAhead() {
		return 0
	}
	return 1
}
