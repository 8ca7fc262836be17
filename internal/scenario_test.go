package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const animalsScenario = `
pattern = "^c.t$"

[[samples]]
word = "cat"
expect = "match"

[[samples]]
word = "cot"

[[samples]]
line = "a cat "
expect = "no-match"
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing scenario: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, animalsScenario))
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if sc.Pattern != "^c.t$" {
		t.Errorf("Pattern = %q", sc.Pattern)
	}

	samples, expectations := sc.Split()
	wantSamples := []Sample{Word("cat"), Word("cot"), Line("a cat ")}
	if !reflect.DeepEqual(samples, wantSamples) {
		t.Errorf("Samples = %#v; want %#v", samples, wantSamples)
	}
	// expect defaults to match
	wantExpectations := []Expectation{MustMatch, MustMatch, MustNotMatch}
	if !reflect.DeepEqual(expectations, wantExpectations) {
		t.Errorf("Expectations = %v; want %v", expectations, wantExpectations)
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	tests := map[string]string{
		"both kinds":  "[[samples]]\nword = \"a\"\nline = \"b\"\n",
		"no kind":     "[[samples]]\nexpect = \"match\"\n",
		"bad expect":  "[[samples]]\nword = \"a\"\nexpect = \"perhaps\"\n",
		"broken toml": "[[samples]\n",
	}

	for name, content := range tests {
		if _, err := LoadScenario(writeScenario(t, content)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestScenarioCheck(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, animalsScenario))
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	engine := mustEngine(t, EngineRE2, EngineOptions{})

	var buf bytes.Buffer
	passed, err := sc.Check(engine, sc.Pattern, &buf, markStyles)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !passed {
		t.Errorf("Expected %q to pass, output:\n%s", sc.Pattern, buf.String())
	}
	if buf.String() != "[cat]\n[cot]\n\"<a cat >\"\n" {
		t.Errorf("Unexpected rendering %q", buf.String())
	}

	// partial matches do not count
	passed, err = sc.Check(engine, `c.t`, &bytes.Buffer{}, markStyles)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if passed {
		t.Error("Expected unanchored pattern to fail on the line sample")
	}

	if _, err := sc.Check(engine, `(`, &bytes.Buffer{}, markStyles); err == nil {
		t.Error("Expected compile error")
	}
}
