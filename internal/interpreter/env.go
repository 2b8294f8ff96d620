package interpreter

import (
	"fmt"
	"sort"
	"strings"
)

// Function is a primitive a program may call. A function either acts on the
// ant after its arguments ran, or selects exactly one argument to run.
type Function struct {
	Name  string
	Arity int
	// Cost is charged to the execution budget on every call. A call with a
	// non-zero cost ends a Step.
	Cost   int
	Action func(Ant)
	// Select returns the index of the argument to evaluate.
	Select func(Ant) int
}

// Environment holds the functions known to programs.
type Environment struct {
	funcs map[string]*Function
}

func NewEnvironment() *Environment {
	return &Environment{funcs: make(map[string]*Function)}
}

func (e *Environment) Add(fn Function) error {
	switch {
	case fn.Name == "":
		return fmt.Errorf("function name is empty")
	case fn.Arity < 0 || fn.Cost < 0:
		return fmt.Errorf("function %s: negative arity or cost", fn.Name)
	case fn.Select != nil && fn.Action != nil:
		return fmt.Errorf("function %s: both action and selector set", fn.Name)
	case fn.Select != nil && fn.Arity == 0:
		return fmt.Errorf("function %s: selector without arguments", fn.Name)
	}
	if _, ok := e.funcs[fn.Name]; ok {
		return fmt.Errorf("function %s already defined", fn.Name)
	}
	e.funcs[fn.Name] = &fn
	return nil
}

func (e *Environment) MustAdd(fn Function) {
	if err := e.Add(fn); err != nil {
		panic(err)
	}
}

func (e *Environment) Get(name string) (*Function, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// Names lists the defined functions in alphabetical order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.funcs))
	for name := range e.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) String() string {
	var b strings.Builder
	for i, name := range e.Names() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s/%d", name, e.funcs[name].Arity)
	}
	return b.String()
}
