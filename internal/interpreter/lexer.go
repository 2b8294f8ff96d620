package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokenPunct lexer.TokenType = iota + 1
	tokenIdent
)

var symbols = map[string]lexer.TokenType{
	"EOF":   lexer.EOF,
	"Punct": tokenPunct,
	"Ident": tokenIdent,
}

// lexDefinition adapts a compiled lexmachine lexer to participle.
type lexDefinition struct {
	lm *lexmachine.Lexer
}

func newLexDefinition() (*lexDefinition, error) {
	lm := lexmachine.NewLexer()
	lm.Add([]byte(`[ \t\n\r]+`), skip)
	lm.Add([]byte(`;[^\n]*`), skip)
	lm.Add([]byte(`[(]`), tokAction(tokenPunct))
	lm.Add([]byte(`[)]`), tokAction(tokenPunct))
	lm.Add([]byte(`[a-zA-Z_]([a-zA-Z0-9_]|-)*`), tokAction(tokenIdent))

	if err := lm.Compile(); err != nil {
		return nil, err
	}
	return &lexDefinition{lm: lm}, nil
}

func mustLexDefinition() *lexDefinition {
	def, err := newLexDefinition()
	if err != nil {
		panic(err)
	}
	return def
}

func (d *lexDefinition) Symbols() map[string]lexer.TokenType {
	return symbols
}

func (d *lexDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	scanner, err := d.lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	return &tokenStream{filename: filename, scanner: scanner, input: input}, nil
}

type tokenStream struct {
	filename string
	scanner  *lexmachine.Scanner
	input    []byte
}

func (s *tokenStream) Next() (lexer.Token, error) {
	tok, err, eos := s.scanner.Next()
	if eos {
		return lexer.Token{Type: lexer.EOF, Pos: s.endPos()}, nil
	}
	if err != nil {
		var ui *machines.UnconsumedInput
		if errors.As(err, &ui) {
			// Text is the whole input; quote only the part that failed.
			bad := ui.Text[ui.StartTC:min(max(ui.StartTC+1, ui.FailTC), len(ui.Text))]
			pos := lexer.Position{Filename: s.filename, Offset: ui.StartTC, Line: ui.StartLine, Column: ui.StartColumn}
			return lexer.Token{}, &lexer.Error{Msg: fmt.Sprintf("unexpected input %q", bad), Pos: pos}
		}
		return lexer.Token{}, err
	}
	t := tok.(lexer.Token)
	t.Pos.Filename = s.filename
	return t, nil
}

func (s *tokenStream) endPos() lexer.Position {
	pos := lexer.Position{Filename: s.filename, Offset: len(s.input), Line: 1, Column: 1}
	for _, c := range s.input {
		if c == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(typ lexer.TokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lexer.Token{
			Type:  typ,
			Value: string(m.Bytes),
			Pos: lexer.Position{
				Offset: m.TC,
				Line:   m.StartLine,
				Column: m.StartColumn,
			},
		}, nil
	}
}
