package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

const defaultSize = 4096

var commandNames = []string{cmdHelp, cmdClear, cmdReadFile, cmdAddLine, cmdAddWord}

// InputSource is a LineSource that holds terminal or file resources
type InputSource interface {
	LineSource
	Close() error
}

// OpenInput returns a line editor when stdin is a terminal and a plain
// line reader otherwise.
func OpenInput(historyPath string) InputSource {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewPrompt(historyPath)
	}
	return NewPipeReader(os.Stdin, historyPath)
}

// Prompt is a simple wrapper over a liner.State
type Prompt struct {
	state       *liner.State
	historyPath string
}

// NewPrompt creates a line editor with history loaded in (if it exists)
func NewPrompt(historyPath string) *Prompt {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completeCommand)

	p := &Prompt{state: state, historyPath: historyPath}
	p.loadHistory()
	return p
}

func (p *Prompt) loadHistory() {
	f, err := os.Open(p.historyPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to open history", "path", p.historyPath, "error", err)
		}
		return
	}
	defer f.Close() // nolint: errcheck

	if _, err := p.state.ReadHistory(f); err != nil {
		slog.Warn("Ignoring unreadable history", "path", p.historyPath, "error", err)
	}
}

func (p *Prompt) ReadLine(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	return line, err
}

func (p *Prompt) Record(line string) {
	p.state.AppendHistory(line)
}

// Persist rewrites the history file with everything liner holds, which
// includes the entries loaded at startup.
func (p *Prompt) Persist() error {
	if err := os.MkdirAll(filepath.Dir(p.historyPath), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.Create(p.historyPath)
	if err != nil {
		return fmt.Errorf("creating history file: %w", err)
	}
	if _, err := p.state.WriteHistory(f); err != nil {
		f.Close() // nolint: errcheck
		return fmt.Errorf("writing history: %w", err)
	}
	return f.Close()
}

func (p *Prompt) Close() error {
	return p.state.Close()
}

// completeCommand offers the command names starting with the typed text
func completeCommand(line string) []string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, commandSigil) {
		return nil
	}

	var candidates []string
	for _, name := range commandNames {
		if strings.HasPrefix(name, trimmed) {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

// PipeReader reads lines from a non-interactive stream. Lines it reads are
// appended to the history file on Persist.
type PipeReader struct {
	reader      *bufio.Reader
	historyPath string
	pending     []string
}

// NewPipeReader creates a line reader over r
func NewPipeReader(r io.Reader, historyPath string) *PipeReader {
	return &PipeReader{
		reader:      bufio.NewReaderSize(r, defaultSize),
		historyPath: historyPath,
	}
}

// ReadLine ignores the prompt and returns the next line without its line
// terminator. A final line without a newline is returned before io.EOF.
func (p *PipeReader) ReadLine(_ string) (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (p *PipeReader) Record(line string) {
	p.pending = append(p.pending, line)
}

func (p *PipeReader) Persist() error {
	if len(p.pending) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p.historyPath), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.OpenFile(p.historyPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}

	writer := bufio.NewWriterSize(f, defaultSize)
	for _, line := range p.pending {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			f.Close() // nolint: errcheck
			return fmt.Errorf("writing history: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		f.Close() // nolint: errcheck
		return fmt.Errorf("writing history: %w", err)
	}

	p.pending = nil
	return f.Close()
}

func (p *PipeReader) Close() error {
	return nil
}
