package main

import (
	"bytes"
	"strings"
	"testing"
)

const scenario = `
[[samples]]
word = "cat"
expect = "match"

[[samples]]
word = "dog"
expect = "no-match"
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetArgs(append([]string{"--config", noConfig, "--no-color"}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "jacarex version: "+FullVersion) {
		t.Errorf("Expected version output, got %q", out)
	}
}

func TestCheckCommand(t *testing.T) {
	path := writeConfig(t, scenario)

	out, _, err := execute(t, "check", path, "^c.t$", "^(cat|dog)$")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 patterns failed") {
		t.Fatalf("Expected one failing pattern, got %v", err)
	}
	if strings.Count(out, "PASS") != 1 || strings.Count(out, "FAIL") != 1 {
		t.Errorf("Expected one PASS and one FAIL, got:\n%s", out)
	}
}

func TestCheckCommandCompileError(t *testing.T) {
	path := writeConfig(t, scenario)

	_, errOut, err := execute(t, "check", path, "(")
	if err == nil {
		t.Fatal("Expected failure for invalid pattern")
	}
	if !strings.Contains(errOut, "missing closing )") {
		t.Errorf("Expected compile diagnostic, got %q", errOut)
	}
}

func TestCheckCommandNeedsPattern(t *testing.T) {
	path := writeConfig(t, scenario)
	if _, _, err := execute(t, "check", path); err == nil {
		t.Error("Expected error when no pattern is available")
	}
}

func TestCheckCommandEngineFlag(t *testing.T) {
	path := writeConfig(t, scenario)

	out, _, err := execute(t, "--engine", "regexp2", "check", path, `^c(?=a)at$`)
	if err != nil {
		t.Fatalf("Expected lookahead pattern to pass with regexp2, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "PASS") {
		t.Errorf("Expected PASS, got %q", out)
	}
}
