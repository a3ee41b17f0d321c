// Package codegen emits Go source that embeds a compiled automaton graph.
//
// The generated file holds the pattern, its state table as a
// []nfa.StateSpec literal rebuilt with nfa.MustLoad at init time, and a
// constructor for fresh automata. Programs that ship a fixed pattern can
// skip parsing it at startup:
//
//	src, err := codegen.Generate(codegen.Config{
//	    Pattern: `a+|Bdg`,
//	    Package: "matchers",
//	    Name:    "Token",
//	})
//
// produces TokenPattern, TokenGraph and NewToken() *nfa.Automaton.
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"io"

	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/nfa"
	"github.com/dave/jennifer/jen"
)

const nfaPath = "github.com/coregx/thompson/nfa"

// Config holds the configuration for code generation.
type Config struct {
	Pattern    string
	Package    string    // package clause of the generated file
	Name       string    // identifier stem; must be a valid Go identifier
	OutputFile string    // used by Save
	MaxStates  int       // 0 uses the compiler default
	Verbose    bool      // log analysis decisions
	LogOutput  io.Writer // verbose output; nil means stderr
}

// Generator turns one pattern into a Go source file.
type Generator struct {
	config Config
	graph  *nfa.Graph
	file   *jen.File
	logger *Logger
}

// New compiles the pattern and prepares a generator.
// Returns an error if the package or name is not a valid identifier or the
// pattern does not compile.
func New(config Config) (*Generator, error) {
	if !token.IsIdentifier(config.Package) {
		return nil, fmt.Errorf("codegen: invalid package name %q", config.Package)
	}
	if !token.IsIdentifier(config.Name) {
		return nil, fmt.Errorf("codegen: invalid name %q", config.Name)
	}

	graph, err := nfa.NewCompiler(nfa.CompilerConfig{MaxStates: config.MaxStates}).Compile(config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	g := &Generator{
		config: config,
		graph:  graph,
		logger: NewLogger(config.Verbose),
	}
	if config.LogOutput != nil {
		g.logger.SetOutput(config.LogOutput)
	}
	g.analyzeAndLog()
	return g, nil
}

// Generate compiles config.Pattern and returns the formatted Go source.
func Generate(config Config) ([]byte, error) {
	g, err := New(config)
	if err != nil {
		return nil, err
	}
	return g.Bytes()
}

// Graph returns the compiled graph being emitted.
func (g *Generator) Graph() *nfa.Graph {
	return g.graph
}

// analyzeAndLog reports the properties of the graph if verbose mode is
// enabled.
func (g *Generator) analyzeAndLog() {
	if !g.logger.Enabled() {
		return
	}
	g.logger.Section("Pattern Analysis")
	g.logger.Log("Pattern: %s", g.config.Pattern)
	g.logger.Log("States: %d", g.graph.States())
	g.logger.Log("Live states: %d", g.graph.Live().Count())
	g.logger.Log("Matches empty: %v", g.graph.CanMatchEmpty())

	if lit, ok := g.graph.IsLiteral(); ok {
		g.logger.Log("Literal: %q", lit)
	} else if lits, ok := g.graph.Literals(64); ok {
		g.logger.Log("Finite language: %d literals", len(lits))
	}
	if fb := g.graph.FirstBytes(); fb.IsUseful() {
		g.logger.Log("First bytes: %q", fb.Bytes())
	} else {
		g.logger.Log("First bytes: unrestricted")
	}
}

// Bytes renders the generated file.
func (g *Generator) Bytes() ([]byte, error) {
	g.build()
	var buf bytes.Buffer
	if err := g.file.Render(&buf); err != nil {
		return nil, fmt.Errorf("codegen: render: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the generated file to config.OutputFile.
func (g *Generator) Save() error {
	if g.config.OutputFile == "" {
		return fmt.Errorf("codegen: no output file")
	}
	g.build()
	if err := g.file.Save(g.config.OutputFile); err != nil {
		return fmt.Errorf("codegen: failed to save file: %w", err)
	}
	g.logger.Log("Wrote %s", g.config.OutputFile)
	return nil
}

// build fills a fresh jen.File; calling it twice yields the same source.
func (g *Generator) build() {
	name := g.config.Name
	patternName := name + "Pattern"
	graphName := name + "Graph"

	f := jen.NewFile(g.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by thompson codegen for pattern: %q. DO NOT EDIT.", g.config.Pattern))

	f.Comment(fmt.Sprintf("%s is the source pattern of %s.", patternName, graphName))
	f.Const().Id(patternName).Op("=").Lit(g.config.Pattern)
	f.Line()

	specs := g.graph.Export()
	g.logger.Log("Emitting %d state specs", len(specs))

	f.Comment(fmt.Sprintf("%s is the compiled automaton graph for %s.", graphName, patternName))
	f.Var().Id(graphName).Op("=").Qual(nfaPath, "MustLoad").Call(
		jen.Id(patternName),
		jen.Index().Qual(nfaPath, "StateSpec").ValuesFunc(func(grp *jen.Group) {
			for _, spec := range specs {
				grp.Line().Add(stateSpecValue(spec))
			}
			grp.Line()
		}),
	)
	f.Line()

	f.Comment(fmt.Sprintf("New%s returns a fresh automaton over %s.", name, graphName))
	f.Func().Id("New"+name).Params().Op("*").Qual(nfaPath, "Automaton").Block(
		jen.Return(jen.Qual(nfaPath, "NewAutomaton").Call(jen.Id(graphName))),
	)

	g.file = f
}

// stateSpecValue renders one table row as a keyed composite literal.
func stateSpecValue(spec nfa.StateSpec) jen.Code {
	dict := jen.Dict{
		jen.Id("Label"): labelCode(spec.Label),
	}
	if spec.Terminal {
		dict[jen.Id("Terminal")] = jen.True()
	}
	if len(spec.Next) > 0 {
		dict[jen.Id("Next")] = jen.Index().Qual(nfaPath, "StateID").ValuesFunc(func(grp *jen.Group) {
			for _, id := range spec.Next {
				grp.Lit(conv.Uint32ToInt(uint32(id)))
			}
		})
	}
	return jen.Values(dict)
}

// labelCode renders reserved labels by name and symbols as rune literals.
func labelCode(l nfa.Label) jen.Code {
	switch l {
	case nfa.LabelEpsilon:
		return jen.Qual(nfaPath, "LabelEpsilon")
	case nfa.LabelAny:
		return jen.Qual(nfaPath, "LabelAny")
	case nfa.LabelStart:
		return jen.Qual(nfaPath, "LabelStart")
	}
	return jen.LitRune(rune(l))
}
