package interpreter

import (
	"errors"
	"fmt"
)

var (
	ErrCostLimitExceeded = errors.New("cost limit exceeded")
	// ErrNoProgress stops a looping program whose whole pass cost nothing.
	ErrNoProgress = errors.New("program made no progress")
	// ErrFinished is returned by Step once a non-looping program is over.
	ErrFinished  = errors.New("program finished")
	ErrBadBranch = errors.New("selector returned an invalid branch")
)

type frame struct {
	node *Node
	// next is the index of the next argument to evaluate.
	next int
}

// Exec runs a tree against an ant, one costed call at a time.
type Exec struct {
	tree      *Tree
	ant       Ant
	loop      bool
	costLimit int
	stop      func() bool

	stack    []frame
	cost     int
	passCost int
	started  bool
	err      error
}

type ExecOption func(*Exec)

// WithLoop restarts the program from the root each time it completes.
func WithLoop(loop bool) ExecOption {
	return func(x *Exec) {
		x.loop = loop
	}
}

// WithCostLimit caps the total cost. Zero means no limit.
func WithCostLimit(limit int) ExecOption {
	return func(x *Exec) {
		x.costLimit = limit
	}
}

// WithStop makes Run return as soon as stop reports true.
func WithStop(stop func() bool) ExecOption {
	return func(x *Exec) {
		x.stop = stop
	}
}

func NewExec(tree *Tree, ant Ant, opts ...ExecOption) *Exec {
	x := &Exec{tree: tree, ant: ant}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Cost is the total cost charged so far.
func (x *Exec) Cost() int {
	return x.cost
}

// Err is the error that halted execution, if any.
func (x *Exec) Err() error {
	return x.err
}

func (x *Exec) halt(err error) error {
	x.err = err
	x.stack = x.stack[:0]
	return err
}

// Step evaluates the program until a call with a non-zero cost has run.
// Once Step returns an error every later call returns the same error.
func (x *Exec) Step() error {
	if x.err != nil {
		return x.err
	}
	for {
		if len(x.stack) == 0 {
			if x.started {
				switch {
				case !x.loop:
					return x.halt(ErrFinished)
				case x.passCost == 0:
					return x.halt(ErrNoProgress)
				}
			}
			x.started = true
			x.passCost = 0
			x.stack = append(x.stack, frame{node: x.tree.Root})
		}

		top := &x.stack[len(x.stack)-1]
		n := top.node
		if n.Fn.Select != nil && top.next == 0 {
			i := n.Fn.Select(x.ant)
			if i < 0 || i >= len(n.Args) {
				return x.halt(fmt.Errorf("%w: %s chose %d", ErrBadBranch, n.Fn.Name, i))
			}
			top.next = len(n.Args)
			x.stack = append(x.stack, frame{node: n.Args[i]})
			continue
		}
		if top.next < len(n.Args) {
			child := n.Args[top.next]
			top.next++
			x.stack = append(x.stack, frame{node: child})
			continue
		}

		if n.Fn.Cost > 0 && x.costLimit > 0 && x.cost+n.Fn.Cost > x.costLimit {
			return x.halt(ErrCostLimitExceeded)
		}
		x.stack = x.stack[:len(x.stack)-1]
		if n.Fn.Action != nil {
			n.Fn.Action(x.ant)
		}
		if n.Fn.Cost > 0 {
			x.cost += n.Fn.Cost
			x.passCost += n.Fn.Cost
			return nil
		}
	}
}

// Run steps until the program finishes, the stop condition holds or an
// error halts it. A finished program is not an error. A looping program
// without a cost limit or stop condition may run forever.
func (x *Exec) Run() error {
	for {
		if x.stop != nil && x.stop() {
			return nil
		}
		err := x.Step()
		if errors.Is(err, ErrFinished) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
