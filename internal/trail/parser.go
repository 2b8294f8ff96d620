package trail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// State is a state of the trail automaton.
type State int

const (
	StateReady State = iota
	StateError
	StateDone
	StateExpectItemOrEnd
	StateExpectNumber
	StateInNumber
	StateExpectItemEnd

	numStates
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateError:
		return "Error"
	case StateDone:
		return "Done"
	case StateExpectItemOrEnd:
		return "Expecting next position item or end of trail"
	case StateExpectNumber:
		return "Expecting coordinate number"
	case StateInNumber:
		return "Reading coordinate number"
	case StateExpectItemEnd:
		return "Expecting end of position item"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// class is the category of an input character.
type class int

const (
	classOther class = iota
	classSpace
	classDigit
	classMinus
	classOpen
	classClose

	numClasses
)

func classify(c byte) class {
	switch {
	case c == ' ', c == '\t', c == '\r', c == '\n':
		return classSpace
	case c >= '0' && c <= '9':
		return classDigit
	case c == '-':
		return classMinus
	case c == '(':
		return classOpen
	case c == ')':
		return classClose
	default:
		return classOther
	}
}

func (c class) String() string {
	switch c {
	case classSpace:
		return "space"
	case classDigit:
		return "digit"
	case classMinus:
		return "-"
	case classOpen:
		return "("
	case classClose:
		return ")"
	default:
		return "other"
	}
}

// classErrors is what a character of each class means when the table has
// no transition for it.
var classErrors = [numClasses]error{
	classOther: ErrUnrecognizedSymbol,
	classSpace: ErrUnrecognizedSymbol,
	classDigit: ErrUnexpectedDigit,
	classMinus: ErrUnexpectedDigit,
	classOpen:  ErrUnexpectedLeftParen,
	classClose: ErrUnexpectedRightParen,
}

// transition is a table entry. targets lists the states step may return on
// success and only feeds WriteDOT.
type transition struct {
	targets []State
	step    func(p *Parser, c byte) State
}

func goTo(s State) transition {
	return transition{
		targets: []State{s},
		step:    func(*Parser, byte) State { return s },
	}
}

var (
	startNumber = transition{
		targets: []State{StateInNumber},
		step: func(p *Parser, c byte) State {
			p.buf = append(p.buf[:0], c)
			return StateInNumber
		},
	}
	appendDigit = transition{
		targets: []State{StateInNumber},
		step: func(p *Parser, c byte) State {
			p.buf = append(p.buf, c)
			return StateInNumber
		},
	}
	endNumber = transition{
		targets: []State{StateExpectNumber, StateExpectItemEnd},
		step: func(p *Parser, _ byte) State {
			return p.completeNumber()
		},
	}
	closeNumber = transition{
		targets: []State{StateExpectItemOrEnd},
		step: func(p *Parser, _ byte) State {
			switch s := p.completeNumber(); s {
			case StateError:
				return s
			case StateExpectItemEnd:
				return StateExpectItemOrEnd
			default:
				return p.fail(ErrUnexpectedRightParen)
			}
		},
	}
)

// transitions is indexed by (state, class). A zero entry is a syntax error
// chosen by classErrors. Error and Done never reach the table.
var transitions = [numStates][numClasses]transition{
	StateReady: {
		classSpace: goTo(StateReady),
		classOpen:  goTo(StateExpectItemOrEnd),
	},
	StateExpectItemOrEnd: {
		classSpace: goTo(StateExpectItemOrEnd),
		classOpen:  goTo(StateExpectNumber),
		classClose: goTo(StateDone),
	},
	StateExpectNumber: {
		classSpace: goTo(StateExpectNumber),
		classDigit: startNumber,
		classMinus: startNumber,
	},
	StateInNumber: {
		classSpace: endNumber,
		classDigit: appendDigit,
		classClose: closeNumber,
	},
	StateExpectItemEnd: {
		classSpace: goTo(StateExpectItemEnd),
		classClose: goTo(StateExpectItemOrEnd),
	},
}

// Parser is an incremental trail parser fed one character at a time.
//
// An error is sticky: further input is ignored until Reset. Input arriving
// after the trail was closed starts a new document, discarding the previous
// result, so read Result before feeding more.
type Parser struct {
	state State
	err   *SyntaxError
	trail Trail
	pos   Position
	coord int
	buf   []byte

	line   int
	column int
}

func NewParser() *Parser {
	p := &Parser{}
	p.Reset()
	return p
}

// Reset discards all progress and returns the parser to StateReady.
func (p *Parser) Reset() {
	p.state = StateReady
	p.err = nil
	p.trail.clear()
	p.pos = Position{}
	p.coord = 0
	p.buf = p.buf[:0]
	p.line = 1
	p.column = 0
}

// Consume feeds a single character.
func (p *Parser) Consume(c byte) {
	switch p.state {
	case StateError:
		return
	case StateDone:
		p.Reset()
	}

	p.count(c)

	cl := classify(c)
	t := transitions[p.state][cl]
	if t.step == nil {
		p.fail(classErrors[cl])
		return
	}
	p.state = t.step(p, c)
}

// ParseString feeds s until the trail is closed or an error occurs and
// returns the number of bytes consumed.
func (p *Parser) ParseString(s string) int {
	n := 0
	for n < len(s) {
		p.Consume(s[n])
		n++
		if p.Done() || p.Failed() {
			break
		}
	}
	return n
}

// ParseReader feeds r until the trail is closed, an error occurs or r is
// exhausted. Only read errors are returned; use Finish or Err for the
// outcome of the parse.
//
// A reader that is not an io.ByteReader is wrapped in a bufio.Reader, which
// may consume bytes past the closing paren. To parse several trails from one
// stream, pass an io.ByteReader such as a *bufio.Reader and Reset between
// calls.
func (p *Parser) ParseReader(r io.Reader) error {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for !p.Done() && !p.Failed() {
		c, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		p.Consume(c)
	}
	return nil
}

// Finish reports the outcome once the input is over. It returns nil for a
// closed trail, the syntax error for a failed parse, and an error wrapping
// ErrIncomplete otherwise. The parser state is left untouched.
func (p *Parser) Finish() error {
	switch p.state {
	case StateDone:
		return nil
	case StateError:
		return p.err
	default:
		return p.syntaxError(ErrIncomplete)
	}
}

func (p *Parser) Done() bool   { return p.state == StateDone }
func (p *Parser) Failed() bool { return p.state == StateError }
func (p *Parser) State() State { return p.state }

// Err returns the syntax error of a failed parse, or nil.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Result returns a copy of the positions collected so far.
func (p *Parser) Result() Trail {
	return p.trail.Clone()
}

func (p *Parser) Line() int      { return p.line }
func (p *Parser) Column() int    { return p.column }
func (p *Parser) Buffer() string { return string(p.buf) }

func (p *Parser) count(c byte) {
	if c == '\n' {
		p.line++
		p.column = 0
	} else {
		p.column++
	}
}

func (p *Parser) completeNumber() State {
	n, err := strconv.Atoi(string(p.buf))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return p.fail(ErrNumberOutOfRange)
		}
		return p.fail(ErrNumberInvalid)
	}
	p.buf = p.buf[:0]

	if p.coord == 0 {
		p.pos.X = n
		p.coord = 1
		return StateExpectNumber
	}
	p.pos.Y = n
	p.coord = 0
	p.trail.Add(p.pos)
	return StateExpectItemEnd
}

func (p *Parser) syntaxError(err error) *SyntaxError {
	return &SyntaxError{
		Err:    err,
		Line:   p.line,
		Column: p.column,
		State:  p.state,
		Buffer: string(p.buf),
	}
}

func (p *Parser) fail(err error) State {
	p.err = p.syntaxError(err)
	p.state = StateError
	return StateError
}

// Parse parses a complete trail from s. Text after the closing parenthesis
// is ignored.
func Parse(s string) (Trail, error) {
	p := NewParser()
	p.ParseString(s)
	if err := p.Finish(); err != nil {
		return Trail{}, err
	}
	return p.Result(), nil
}

// Read parses a complete trail from r.
func Read(r io.Reader) (Trail, error) {
	p := NewParser()
	if err := p.ParseReader(r); err != nil {
		return Trail{}, err
	}
	if err := p.Finish(); err != nil {
		return Trail{}, err
	}
	return p.Result(), nil
}

// Load reads a trail file.
func Load(path string) (Trail, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trail{}, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return Trail{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
