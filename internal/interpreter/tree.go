package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrArity           = errors.New("wrong number of arguments")
)

// CompileError points at the call that does not fit the environment.
type CompileError struct {
	Pos  lexer.Position
	Name string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Pos, e.Name, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Node is a resolved call.
type Node struct {
	Fn   *Function
	Args []*Node
	Pos  lexer.Position
}

// Tree is a program bound to an environment.
type Tree struct {
	Root *Node
}

// Compile parses src and binds every call to a function of e.
func (e *Environment) Compile(filename, src string) (*Tree, error) {
	expr, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return e.Bind(expr)
}

// CompileReader is Compile for a stream.
func (e *Environment) CompileReader(filename string, r io.Reader) (*Tree, error) {
	expr, err := ParseReader(filename, r)
	if err != nil {
		return nil, err
	}
	return e.Bind(expr)
}

// Load compiles a program file.
func (e *Environment) Load(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.CompileReader(path, f)
}

// Bind resolves a parsed program against e.
func (e *Environment) Bind(expr *Expr) (*Tree, error) {
	root, err := e.bind(expr)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

func (e *Environment) bind(x *Expr) (*Node, error) {
	name := x.name()
	fn, ok := e.Get(name)
	if !ok {
		return nil, &CompileError{Pos: x.Pos, Name: name, Err: ErrUnknownFunction}
	}
	args := x.args()
	if len(args) != fn.Arity {
		return nil, &CompileError{
			Pos:  x.Pos,
			Name: name,
			Err:  fmt.Errorf("%w: want %d, got %d", ErrArity, fn.Arity, len(args)),
		}
	}

	n := &Node{Fn: fn, Pos: x.Pos}
	for _, a := range args {
		child, err := e.bind(a)
		if err != nil {
			return nil, err
		}
		n.Args = append(n.Args, child)
	}
	return n, nil
}

// Size is the number of calls in the tree.
func (t *Tree) Size() int {
	var count func(*Node) int
	count = func(n *Node) int {
		c := 1
		for _, a := range n.Args {
			c += count(a)
		}
		return c
	}
	return count(t.Root)
}

func (t *Tree) String() string {
	var b strings.Builder
	var write func(*Node)
	write = func(n *Node) {
		b.WriteByte('(')
		b.WriteString(n.Fn.Name)
		for _, a := range n.Args {
			b.WriteByte(' ')
			write(a)
		}
		b.WriteByte(')')
	}
	write(t.Root)
	return b.String()
}
