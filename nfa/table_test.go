package nfa

import (
	"errors"
	"reflect"
	"testing"
)

func TestLoad_RoundTrip(t *testing.T) {
	patterns := []string{"", "abc", "a+|Bdg", "(ab)+t", "a(b*c*)*", `\.\(\)`, "x.?y"}
	inputs := []string{"", "abc", "Bdgaaa", "ababt", "abcbcc", ".()", "xzy"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			g := MustCompile(p)
			specs := g.Export()
			loaded, err := Load(p, specs)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(loaded.Export(), specs) {
				t.Errorf("Export after Load differs:\n%v\n%v", specs, loaded.Export())
			}
			if loaded.Start() != g.Start() || loaded.Pattern() != p {
				t.Errorf("start/pattern not preserved: %v", loaded)
			}
			a1, a2 := NewAutomaton(g), NewAutomaton(loaded)
			for _, in := range inputs {
				if l1, l2 := longestPrefix(a1, in), longestPrefix(a2, in); l1 != l2 {
					t.Errorf("input %q: compiled %d, loaded %d", in, l1, l2)
				}
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []StateSpec
	}{
		{"empty", nil},
		{"no start", []StateSpec{{Label: 'a', Terminal: true}}},
		{"two starts", []StateSpec{{Label: LabelStart}, {Label: LabelStart}}},
		{"split", []StateSpec{{Label: LabelStart, Next: []StateID{1}}, {Label: LabelSplit}}},
		{"unknown label", []StateSpec{{Label: LabelStart}, {Label: -9}}},
		{"out of bounds", []StateSpec{{Label: LabelStart, Next: []StateID{5}}}},
		{"edge into start", []StateSpec{{Label: LabelStart, Next: []StateID{1}}, {Label: 'a', Next: []StateID{0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load("", tt.specs)
			if err == nil {
				t.Fatalf("Load succeeded: %v", g)
			}
			if !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("error %v should match ErrInvalidSpec", err)
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Errorf("error %T should be a *BuildError", err)
			}
		})
	}
}

func TestMustLoad_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLoad should panic on an invalid table")
		}
	}()
	MustLoad("", nil)
}

func TestBuilder_DeduplicatesEdges(t *testing.T) {
	b := NewBuilder()
	s := b.AddState(LabelStart)
	a := b.AddState('a')
	b.AddEdge(s, a)
	b.AddEdge(s, a)
	b.SetTerminal(a)

	g, err := b.Build(s, "a")
	if err != nil {
		t.Fatal(err)
	}
	if next := g.State(s).Next('a'); len(next) != 1 {
		t.Errorf("duplicate edge stored: %v", next)
	}
}

func TestBuilder_BuildRejectsBadStart(t *testing.T) {
	b := NewBuilder()
	a := b.AddState('a')
	if _, err := b.Build(a, ""); err == nil {
		t.Error("Build should reject a start state not labeled START")
	}
	if _, err := NewBuilder().Build(3, ""); err == nil {
		t.Error("Build should reject an out-of-range start state")
	}
}
