package interpreter

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a program as written: either a parenthesized call or a bare
// function name.
type Expr struct {
	Pos  lexer.Position
	Call *Call   `parser:"  @@"`
	Atom *string `parser:"| @Ident"`
}

type Call struct {
	Pos  lexer.Position
	Name string  `parser:"'(' @Ident"`
	Args []*Expr `parser:"@@* ')'"`
}

func (x *Expr) name() string {
	if x.Call != nil {
		return x.Call.Name
	}
	return *x.Atom
}

func (x *Expr) args() []*Expr {
	if x.Call != nil {
		return x.Call.Args
	}
	return nil
}

var parser = participle.MustBuild[Expr](
	participle.Lexer(mustLexDefinition()),
)

// Parse reads a program in s-expression form, e.g.
//
//	(if-food-ahead (forward) (progn2 (left) (forward)))
func Parse(filename, src string) (*Expr, error) {
	return parser.ParseString(filename, src)
}

func ParseReader(filename string, r io.Reader) (*Expr, error) {
	return parser.Parse(filename, r)
}
