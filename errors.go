package main

import "fmt"

// ParseError is a rejection of statement text by the lexer or the parser.
type ParseError struct {
	Pos Position
	Msg string
}

func NewParseError(pos Position, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pos: pos,
		Msg: fmt.Sprintf(format, args...),
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// UnexpectedFault is a panic that escaped the parser or renderer, recovered
// at the dispatch boundary.
type UnexpectedFault struct {
	Value interface{}
}

func (e *UnexpectedFault) Error() string {
	return fmt.Sprintf("unexpected parser failure: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *UnexpectedFault) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
