// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// for regular-expression matching.
//
// A pattern is compiled by an explicit fragment-stack machine into a Graph:
// an immutable arena of labeled states. An Automaton is a cursor over a Graph
// that tracks the set of active states and advances it one input symbol at a
// time, taking the epsilon-closure after every step. Matching costs
// O(states) per symbol and never backtracks.
package nfa

import (
	"errors"
	"fmt"
)

// Syntax errors. Compile wraps them in a *SyntaxError carrying the offset.
var (
	// ErrUnmatchedLeftParen indicates a '(' without a closing ')'
	ErrUnmatchedLeftParen = errors.New("missing closing )")

	// ErrUnmatchedRightParen indicates a ')' without an opening '('
	ErrUnmatchedRightParen = errors.New("unexpected )")

	// ErrTrailingBackslash indicates a '\' at the end of the pattern
	ErrTrailingBackslash = errors.New("trailing backslash at end of expression")

	// ErrMissingOperand indicates an operator (*, +, ?, |) with nothing to apply to
	ErrMissingOperand = errors.New("missing argument to operator")
)

// Construction errors.
var (
	// ErrTooComplex indicates the pattern needs more states than allowed
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidSpec indicates a state table passed to Load is malformed
	ErrInvalidSpec = errors.New("invalid state table")
)

// SyntaxError reports a malformed pattern. Offset is the byte offset of the
// offending character within Pattern.
type SyntaxError struct {
	Pattern string
	Offset  int
	Err     error
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in pattern %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an invalid state table passed to Load
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns ErrInvalidSpec so callers can test with errors.Is
func (e *BuildError) Unwrap() error {
	return ErrInvalidSpec
}
