package trail

import (
	"fmt"
	"io"
)

// WriteDOT prints the parser automaton as a Graphviz digraph. Only legal
// transitions are drawn; every missing edge leads to StateError.
func WriteDOT(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("digraph trail {\n")
	ew.printf("    rankdir=LR;\n")

	for s := StateReady; s < numStates; s++ {
		shape := "circle"
		if s == StateDone {
			shape = "doublecircle"
		}
		ew.printf("    s%d [shape=%s, label=%q];\n", int(s), shape, s.String())
	}
	for s := StateReady; s < numStates; s++ {
		for cl := classOther; cl < numClasses; cl++ {
			for _, to := range transitions[s][cl].targets {
				ew.printf("    s%d -> s%d [label=%q];\n", int(s), int(to), cl.String())
			}
		}
	}
	ew.printf("    _start [shape=point]; _start -> s%d;\n", int(StateReady))
	ew.printf("}\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
