package codegen

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/coregx/thompson/nfa"
)

func parseGenerated(t *testing.T, src []byte) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	return f
}

// topLevelNames returns the names of all top-level declarations.
func topLevelNames(f *ast.File) map[string]bool {
	names := make(map[string]bool)
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			names[d.Name.Name] = true
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if vs, ok := spec.(*ast.ValueSpec); ok {
					for _, n := range vs.Names {
						names[n.Name] = true
					}
				}
			}
		}
	}
	return names
}

func TestGenerate(t *testing.T) {
	src, err := Generate(Config{Pattern: "a", Package: "matchers", Name: "Token"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	f := parseGenerated(t, src)
	if f.Name.Name != "matchers" {
		t.Errorf("package = %q, want matchers", f.Name.Name)
	}
	if !ast.IsGenerated(f) {
		t.Error("generated file lacks the Code generated header")
	}
	names := topLevelNames(f)
	for _, want := range []string{"TokenPattern", "TokenGraph", "NewToken"} {
		if !names[want] {
			t.Errorf("missing declaration %s", want)
		}
	}

	compact := strings.Join(strings.Fields(string(src)), "")
	for _, want := range []string{
		`"github.com/coregx/thompson/nfa"`,
		`constTokenPattern="a"`,
		`nfa.MustLoad(TokenPattern,[]nfa.StateSpec{`,
		`{Label:nfa.LabelStart,Next:[]nfa.StateID{1},}`,
		`{Label:'a',Terminal:true,}`,
		`funcNewToken()*nfa.Automaton{returnnfa.NewAutomaton(TokenGraph)}`,
	} {
		if !strings.Contains(compact, want) {
			t.Errorf("generated code missing %s\n%s", want, src)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g, err := New(Config{Pattern: "(ab)+t|x?", Package: "p", Name: "M"})
	if err != nil {
		t.Fatal(err)
	}
	first, err := g.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Bytes() is not deterministic")
	}
}

// TestGeneratedTableRoundTrip reads the emitted table back and checks it
// describes the same graph.
func TestGeneratedTableRoundTrip(t *testing.T) {
	patterns := []string{"a", "a+|Bdg", "(ab)+t", `\.\(\)`, "a*", ".é?", "", "日本|語"}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			g, err := New(Config{Pattern: p, Package: "p", Name: "M"})
			if err != nil {
				t.Fatal(err)
			}
			src, err := g.Bytes()
			if err != nil {
				t.Fatal(err)
			}

			specs := extractSpecs(t, parseGenerated(t, src), "MGraph")
			want := g.Graph().Export()
			if !reflect.DeepEqual(specs, want) {
				t.Fatalf("table = %+v\nwant %+v", specs, want)
			}
			if _, err := nfa.Load(p, specs); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		})
	}
}

// extractSpecs evaluates the []nfa.StateSpec literal passed to MustLoad.
func extractSpecs(t *testing.T, f *ast.File, varName string) []nfa.StateSpec {
	t.Helper()
	var table *ast.CompositeLit
	ast.Inspect(f, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok || len(vs.Names) != 1 || vs.Names[0].Name != varName {
			return true
		}
		call := vs.Values[0].(*ast.CallExpr)
		table = call.Args[1].(*ast.CompositeLit)
		return false
	})
	if table == nil {
		t.Fatalf("no %s declaration", varName)
	}

	specs := make([]nfa.StateSpec, 0, len(table.Elts))
	for _, elt := range table.Elts {
		var spec nfa.StateSpec
		for _, kv := range elt.(*ast.CompositeLit).Elts {
			kv := kv.(*ast.KeyValueExpr)
			switch kv.Key.(*ast.Ident).Name {
			case "Label":
				spec.Label = labelValue(t, kv.Value)
			case "Terminal":
				spec.Terminal = kv.Value.(*ast.Ident).Name == "true"
			case "Next":
				for _, e := range kv.Value.(*ast.CompositeLit).Elts {
					n, err := strconv.Atoi(e.(*ast.BasicLit).Value)
					if err != nil {
						t.Fatal(err)
					}
					spec.Next = append(spec.Next, nfa.StateID(n))
				}
			}
		}
		specs = append(specs, spec)
	}
	return specs
}

func labelValue(t *testing.T, e ast.Expr) nfa.Label {
	t.Helper()
	switch v := e.(type) {
	case *ast.SelectorExpr:
		switch v.Sel.Name {
		case "LabelEpsilon":
			return nfa.LabelEpsilon
		case "LabelAny":
			return nfa.LabelAny
		case "LabelStart":
			return nfa.LabelStart
		}
	case *ast.BasicLit:
		s, err := strconv.Unquote(v.Value)
		if err != nil {
			t.Fatal(err)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return nfa.Label(r)
	}
	t.Fatalf("unexpected label expression %T", e)
	return 0
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		target error
	}{
		{"bad package", Config{Pattern: "a", Package: "my-pkg", Name: "M"}, nil},
		{"bad name", Config{Pattern: "a", Package: "p", Name: "1M"}, nil},
		{"syntax error", Config{Pattern: "(a", Package: "p", Name: "M"}, nfa.ErrUnmatchedLeftParen},
		{"too complex", Config{Pattern: "abcdef", Package: "p", Name: "M", MaxStates: 3}, nfa.ErrTooComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.config)
			if err == nil {
				t.Fatal("Generate() succeeded, want error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token_gen.go")
	g, err := New(Config{Pattern: "a+|Bdg", Package: "matchers", Name: "Token", OutputFile: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, err := g.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(src, want) {
		t.Error("saved file differs from Bytes()")
	}

	g.config.OutputFile = ""
	if err := g.Save(); err == nil {
		t.Error("Save() without output file succeeded")
	}
}

func TestVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	_, err := Generate(Config{Pattern: "foo|bar", Package: "p", Name: "M", Verbose: true, LogOutput: &buf})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Pattern Analysis", "Pattern: foo|bar", "Finite language: 2 literals", "Emitting"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if _, err := Generate(Config{Pattern: "foo", Package: "p", Name: "M", LogOutput: &buf}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet generation logged %q", buf.String())
	}
}

func TestLogger(t *testing.T) {
	t.Run("disabled logger produces no output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(false)
		logger.SetOutput(&buf)

		logger.Log("test message")
		logger.Section("test section")

		if buf.Len() != 0 {
			t.Errorf("disabled logger produced output: %s", buf.String())
		}
	})

	t.Run("enabled logger produces output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(true)
		logger.SetOutput(&buf)

		logger.Log("test %d", 42)
		logger.Section("test section")

		output := buf.String()
		if !strings.Contains(output, "[thompson] test 42") {
			t.Errorf("output missing log line: %s", output)
		}
		if !strings.Contains(output, "=== test section ===") {
			t.Errorf("output missing section: %s", output)
		}
	})
}
