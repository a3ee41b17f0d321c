package nfa

import (
	"unicode/utf8"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxStates limits the number of states in the compiled graph.
	// Default: 100000
	MaxStates int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxStates: 100_000,
	}
}

// itemKind discriminates entries of the compiler stack.
type itemKind uint8

const (
	// itemFragment holds a compiled operand
	itemFragment itemKind = iota

	// itemGroup marks an open '('
	itemGroup

	// itemSplit marks a pending alternation; it carries LabelSplit semantics
	// and is resolved into a union when its group is reduced
	itemSplit
)

type stackItem struct {
	kind   itemKind
	frag   Fragment
	offset int // byte offset of the '(' or '|' that pushed a marker
}

// Compiler compiles pattern strings into Graphs.
//
// Supported syntax: literals, '.', '\' escapes (the next character is always
// literal), '*', '+', '?', '|' and parenthesized groups.
//
// The compiler is an explicit stack machine: operands are pushed as
// fragments, postfix operators rewrite the fragment on top, and '(' / '|'
// push markers that ')' and end-of-pattern reduce. Nesting depth therefore
// costs heap, not call stack.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	stack   []stackItem
	pattern string
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxStates <= 0 {
		config.MaxStates = DefaultCompilerConfig().MaxStates
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Graph, error) {
	return NewDefaultCompiler().Compile(pattern)
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Graph {
	g, err := Compile(pattern)
	if err != nil {
		panic("nfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return g
}

// CompileAutomaton compiles a pattern and returns a fresh Automaton over it.
func CompileAutomaton(pattern string) (*Automaton, error) {
	g, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return NewAutomaton(g), nil
}

// Compile compiles a pattern string into a Graph.
// A malformed pattern yields a *SyntaxError and no graph.
func (c *Compiler) Compile(pattern string) (*Graph, error) {
	c.builder = NewBuilderWithCapacity(2 * len(pattern))
	c.stack = c.stack[:0]
	c.pattern = pattern

	// START comes first so that it is always state 0.
	start := c.builder.AddState(LabelStart)

	for i := 0; i < len(pattern); {
		r, w := utf8.DecodeRuneInString(pattern[i:])
		if err := c.step(r, i, w); err != nil {
			return nil, err
		}
		if r == '\\' {
			// step consumed the escaped character too.
			_, ew := utf8.DecodeRuneInString(pattern[i+w:])
			w += ew
		}
		if c.builder.Len() > c.config.MaxStates {
			return nil, &CompileError{Pattern: pattern, Err: ErrTooComplex}
		}
		i += w
	}

	final, err := c.reduce(len(pattern), false)
	if err != nil {
		return nil, err
	}

	for _, id := range final.Exit {
		c.builder.SetTerminal(id)
	}
	link(c.builder, []StateID{start}, final.Entry)

	g, err := c.builder.Build(start, pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	c.builder = nil
	return g, nil
}

// step processes the character r found at byte offset i (width w).
func (c *Compiler) step(r rune, i, w int) error {
	switch r {
	case '\\':
		if i+w >= len(c.pattern) {
			return c.syntaxError(i, ErrTrailingBackslash)
		}
		lit, _ := utf8.DecodeRuneInString(c.pattern[i+w:])
		c.pushFragment(symbolFragment(c.builder, Label(lit)))

	case '.':
		c.pushFragment(symbolFragment(c.builder, LabelAny))

	case '*', '+', '?':
		top, ok := c.popOperand()
		if !ok {
			return c.syntaxError(i, ErrMissingOperand)
		}
		switch r {
		case '*':
			top = top.loopBack(c.builder, true)
		case '+':
			top = top.loopBack(c.builder, false)
		default:
			top = top.optional(c.builder)
		}
		c.pushFragment(top)

	case '(':
		c.stack = append(c.stack, stackItem{kind: itemGroup, offset: i})

	case ')':
		frag, err := c.reduce(i, true)
		if err != nil {
			return err
		}
		c.pushFragment(frag)

	case '|':
		branch, ok := c.collectBranch()
		if !ok {
			return c.syntaxError(i, ErrMissingOperand)
		}
		c.pushFragment(branch)
		c.stack = append(c.stack, stackItem{kind: itemSplit, offset: i})

	default:
		c.pushFragment(symbolFragment(c.builder, Label(r)))
	}
	return nil
}

func (c *Compiler) pushFragment(f Fragment) {
	c.stack = append(c.stack, stackItem{kind: itemFragment, frag: f})
}

// popOperand pops the fragment on top of the stack, if there is one.
func (c *Compiler) popOperand() (Fragment, bool) {
	n := len(c.stack)
	if n == 0 || c.stack[n-1].kind != itemFragment {
		return Fragment{}, false
	}
	f := c.stack[n-1].frag
	c.stack = c.stack[:n-1]
	return f, true
}

// collectBranch pops the fragments above the nearest marker and sequences
// them in pattern order. Reports false if there were none.
func (c *Compiler) collectBranch() (Fragment, bool) {
	n := len(c.stack)
	lo := n
	for lo > 0 && c.stack[lo-1].kind == itemFragment {
		lo--
	}
	if lo == n {
		return Fragment{}, false
	}
	frag := c.stack[lo].frag
	for _, it := range c.stack[lo+1 : n] {
		frag = frag.sequence(c.builder, it.frag)
	}
	c.stack = c.stack[:lo]
	return frag, true
}

// reduce collapses everything down to the nearest group marker (closing is
// true, for ')') or to the bottom of the stack (end of pattern) into one
// fragment. Branches separated by pending alternations are unioned once.
func (c *Compiler) reduce(offset int, closing bool) (Fragment, error) {
	var branches []Fragment
	for {
		branch, ok := c.collectBranch()
		n := len(c.stack)
		if !ok {
			if n > 0 && c.stack[n-1].kind == itemSplit {
				// Nothing after '|'.
				return Fragment{}, c.syntaxError(offset, ErrMissingOperand)
			}
			branch = emptyFragment(c.builder)
		}
		branches = append(branches, branch)

		if n == 0 {
			if closing {
				return Fragment{}, c.syntaxError(offset, ErrUnmatchedRightParen)
			}
			break
		}
		top := c.stack[n-1]
		c.stack = c.stack[:n-1]
		if top.kind == itemSplit {
			continue
		}
		// top is a group marker.
		if !closing {
			return Fragment{}, c.syntaxError(top.offset, ErrUnmatchedLeftParen)
		}
		break
	}

	// Branches were collected right to left.
	for i, j := 0, len(branches)-1; i < j; i, j = i+1, j-1 {
		branches[i], branches[j] = branches[j], branches[i]
	}
	return union(c.builder, branches), nil
}

func (c *Compiler) syntaxError(offset int, err error) error {
	return &SyntaxError{Pattern: c.pattern, Offset: offset, Err: err}
}
