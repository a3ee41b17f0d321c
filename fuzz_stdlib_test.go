// Fuzz tests comparing leftmost-longest matches against stdlib regexp in
// POSIX mode, which uses the same match policy.
//
// Run with:
//
//	go test -fuzz=FuzzMatchFirstStdlib -fuzztime=30s
//	go test -fuzz=FuzzPrefilterEquivalence -fuzztime=30s
package thompson

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

var seedPatterns = []string{
	`hello`,
	`a`,
	`abc+`,
	`a+b`,
	`a|B`,
	`a+|Bdg`,
	`a*`,
	`ba*b`,
	`a?`,
	`(ab)+t`,
	`.`,
	`\.\(\)`,
	`a|ab`,
	`(a|ab)(c|bcd)`,
	`x(y|z)*w`,
	`(a*)*b`,
	`colou?r`,
	`foo|bar|baz`,
	`xyz|y`,
	`abcd|bc`,
	`hello|ell`,
	`ab|abcd`,
	`é+.`,
	``,
}

var seedInputs = []string{
	"",
	"a",
	"hello world",
	"abctewln230Q#MLABCabccsabc",
	"thereaa was aaa!#@time in BdgolognABdg",
	"abt1209 ;asdnl ababt24309laxlababababt",
	"a.()bc.()\n\t sdf",
	"abcd xyzzyw xw colour",
	"café ééx 日本",
	"xyz xabcd hello ell ab",
}

// stdlibPattern rewrites a pattern into the equivalent POSIX stdlib syntax.
// Every character except the operators is quoted, and '.' must also match
// a newline.
func stdlibPattern(pattern string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			sb.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			sb.WriteString("(.|\n)")
		case strings.ContainsRune("*+?|()", r):
			sb.WriteRune(r)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}

// compileBoth compiles pattern with both engines, reporting false when either
// rejects it. The syntaxes differ at the edges (stdlib rejects "a**", this
// package rejects "a|").
func compileBoth(pattern string) (*Regex, *regexp.Regexp, bool) {
	if !utf8.ValidString(pattern) || len(pattern) > 64 {
		return nil, nil, false
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, nil, false
	}
	std, err := regexp.CompilePOSIX(stdlibPattern(pattern))
	if err != nil {
		return nil, nil, false
	}
	return re, std, true
}

func checkAgainstStdlib(t *testing.T, re *Regex, std *regexp.Regexp, input string) {
	t.Helper()
	m, ok := re.MatchFirst(input, 0)
	loc := std.FindStringIndex(input)
	if ok != (loc != nil) {
		t.Fatalf("%q on %q: MatchFirst ok = %v, stdlib loc = %v", re, input, ok, loc)
	}
	if ok && (m.Start != loc[0] || m.End() != loc[1]) {
		t.Fatalf("%q on %q: MatchFirst = [%d:%d], stdlib = %v", re, input, m.Start, m.End(), loc)
	}
}

func TestStdlibAgreement(t *testing.T) {
	for _, p := range seedPatterns {
		re, std, ok := compileBoth(p)
		if !ok {
			t.Fatalf("%q: did not compile with both engines", p)
		}
		for _, in := range seedInputs {
			checkAgainstStdlib(t, re, std, in)
		}
	}
}

func FuzzMatchFirstStdlib(f *testing.F) {
	for _, p := range seedPatterns {
		for _, in := range seedInputs {
			f.Add(p, in)
		}
	}

	f.Fuzz(func(t *testing.T, pattern, input string) {
		re, std, ok := compileBoth(pattern)
		if !ok || !utf8.ValidString(input) {
			return
		}
		checkAgainstStdlib(t, re, std, input)
	})
}

func FuzzPrefilterEquivalence(f *testing.F) {
	for _, p := range seedPatterns {
		for _, in := range seedInputs {
			f.Add(p, in)
		}
	}

	off := DefaultConfig()
	off.EnablePrefilter = false

	f.Fuzz(func(t *testing.T, pattern, input string) {
		if len(pattern) > 64 {
			return
		}
		with, err := Compile(pattern)
		if err != nil {
			return
		}
		without, err := CompileWithConfig(pattern, off)
		if err != nil {
			t.Fatalf("%q compiled only with prefiltering: %v", pattern, err)
		}
		got, want := with.MatchAll(input), without.MatchAll(input)
		if !equalMatches(got, want) {
			t.Fatalf("%q (%s) on %q:\n got %v\nwant %v", pattern, with.Prefilter(), input, got, want)
		}
	})
}
