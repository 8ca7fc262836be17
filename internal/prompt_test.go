package internal

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestPipeReaderLines(t *testing.T) {
	r := NewPipeReader(strings.NewReader("first\r\nkeep trailing  \n\nlast"), "")

	want := []string{"first", "keep trailing  ", "", "last"}
	for _, expected := range want {
		line, err := r.ReadLine(DefaultPrompt)
		if err != nil {
			t.Fatalf("ReadLine() returned error on %q: %v", expected, err)
		}
		if line != expected {
			t.Errorf("ReadLine() = %q; want %q", line, expected)
		}
	}

	if _, err := r.ReadLine(DefaultPrompt); err != io.EOF {
		t.Errorf("ReadLine() after exhaustion: error = %v; want io.EOF", err)
	}
}

func TestPipeReaderPersistAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.txt")

	first := NewPipeReader(strings.NewReader(""), path)
	first.Record("#addword cat")
	first.Record("c.t")
	if err := first.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	second := NewPipeReader(strings.NewReader(""), path)
	second.Record("dog")
	if err := second.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}
	if string(data) != "#addword cat\nc.t\ndog\n" {
		t.Errorf("History = %q", data)
	}
}

func TestPipeReaderPersistNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	r := NewPipeReader(strings.NewReader(""), path)
	if err := r.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no history file to be created, got %v", err)
	}
}

func TestCompleteCommand(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"#h", []string{"#help"}},
		{"#add", []string{"#addline", "#addword"}},
		{"  #re", []string{"#readfile"}},
		{"#", commandNames},
		{"cat", nil},
		{"#addword cat", nil},
	}

	for _, tt := range tests {
		if got := completeCommand(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("completeCommand(%q) = %v; want %v", tt.line, got, tt.want)
		}
	}
}

func TestPromptToleratesCorruptHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	if err := os.WriteFile(path, []byte("c.t\n\xff\xfe\n"), 0o644); err != nil {
		t.Fatalf("writing history: %v", err)
	}

	p := NewPrompt(path)
	t.Cleanup(func() { p.Close() }) // nolint: errcheck

	p.Record("dog")
	if err := p.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}
	// entries before the bad line survive
	if string(data) != "c.t\ndog\n" {
		t.Errorf("History = %q", data)
	}
}

func TestPromptUnreadableHistory(t *testing.T) {
	dir := t.TempDir()

	p := NewPrompt(dir)
	t.Cleanup(func() { p.Close() }) // nolint: errcheck

	p.Record("cat")
	if err := p.Persist(); err == nil {
		t.Error("Expected error persisting history over a directory")
	}
}
