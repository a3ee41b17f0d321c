package nfa

import (
	"errors"
	"testing"
)

func TestSyntaxError_Error(t *testing.T) {
	err := &SyntaxError{Pattern: "(a", Offset: 0, Err: ErrUnmatchedLeftParen}
	want := `syntax error in pattern "(a" at offset 0: missing closing )`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnmatchedLeftParen) {
		t.Error("SyntaxError should unwrap to its sentinel")
	}
}

func TestCompileError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CompileError
		wantFull string
	}{
		{
			name:     "with pattern",
			err:      &CompileError{Pattern: `a+b`, Err: ErrTooComplex},
			wantFull: `NFA compilation failed for pattern "a+b": pattern too complex`,
		},
		{
			name:     "empty pattern",
			err:      &CompileError{Pattern: "", Err: ErrTooComplex},
			wantFull: "NFA compilation failed: pattern too complex",
		},
		{
			name:     "nil inner error",
			err:      &CompileError{Pattern: "x", Err: nil},
			wantFull: `NFA compilation failed for pattern "x": <nil>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantFull {
				t.Errorf("Error() = %q, want %q", got, tt.wantFull)
			}
		})
	}
}

func TestCompileError_Unwrap(t *testing.T) {
	err := &CompileError{Pattern: "a+", Err: ErrTooComplex}
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("errors.Is(%v, ErrTooComplex) = false", err)
	}
}

func TestBuildError(t *testing.T) {
	tests := []struct {
		err  *BuildError
		want string
	}{
		{&BuildError{Message: "boom", StateID: 3}, "NFA build error at state 3: boom"},
		{&BuildError{Message: "boom", StateID: InvalidState}, "NFA build error: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, ErrInvalidSpec) {
			t.Errorf("%v should unwrap to ErrInvalidSpec", tt.err)
		}
	}
}
