package trail

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedSymbol   = errors.New("unrecognized symbol")
	ErrUnexpectedDigit      = errors.New("unexpected digit")
	ErrUnexpectedLeftParen  = errors.New("unexpected `('")
	ErrUnexpectedRightParen = errors.New("unexpected `)'")
	ErrNumberInvalid        = errors.New("invalid number")
	ErrNumberOutOfRange     = errors.New("number is out of range")

	// ErrIncomplete is reported by Finish when the input ended before the
	// trail was closed.
	ErrIncomplete = errors.New("trail is not closed")
)

// SyntaxError describes where and why parsing stopped.
type SyntaxError struct {
	Err    error
	Line   int
	Column int
	// State is the state the parser was in when the offending character
	// arrived.
	State  State
	Buffer string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("trail: %v at line %d char %d (%s)", e.Err, e.Line, e.Column, e.State)
	if e.Buffer != "" {
		msg += fmt.Sprintf(", buffer %q", e.Buffer)
	}
	return msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
