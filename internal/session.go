package internal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/leaanthony/go-ansi-parser"
	"github.com/mattn/go-runewidth"
)

const (
	commandSigil = "#"

	cmdHelp     = "#help"
	cmdClear    = "#clear"
	cmdAddWord  = "#addword"
	cmdAddLine  = "#addline"
	cmdReadFile = "#readfile"

	// the command plus one separating character
	addLineOffset  = len(cmdAddLine) + 1
	readFileOffset = len(cmdReadFile) + 1

	DefaultPrompt = ">> "
)

// ErrInterrupted is returned by a LineSource when the user pressed Ctrl-C
var ErrInterrupted = errors.New("interrupted")

// LineSource supplies interactive input. ReadLine returns ErrInterrupted on
// Ctrl-C and io.EOF at end of input.
type LineSource interface {
	ReadLine(prompt string) (string, error)
	Record(line string)
	Persist() error
}

var commandHelp = []struct {
	name string
	desc string
}{
	{cmdAddWord, "receives a word (or a list of words) and adds it to the set of test targets. Note that this mode trims its words."},
	{cmdAddLine, "adds the entire line after the command as a test target. Trailing whitespace will be kept."},
	{cmdReadFile, "reads the indicated file and saves it as a single test target."},
	{cmdClear, "clears all loaded test strings. If you just want to clean your terminal, Ctrl+L works."},
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithOutput sets the result and diagnostic streams
func WithOutput(out, errOut io.Writer) SessionOption {
	return func(s *Session) {
		s.out = out
		s.errOut = errOut
	}
}

// WithStyles sets the colors used for results and help
func WithStyles(styles Styles) SessionOption {
	return func(s *Session) {
		s.styles = styles
	}
}

// WithPrompt sets the prompt shown before each line
func WithPrompt(prompt string) SessionOption {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithStripANSI removes escape sequences from files loaded with #readfile
func WithStripANSI(enabled bool) SessionOption {
	return func(s *Session) {
		s.stripANSI = enabled
	}
}

// Session owns the sample list and drives the read-evaluate-print cycle
type Session struct {
	engine    Engine
	samples   []Sample
	out       io.Writer
	errOut    io.Writer
	styles    Styles
	prompt    string
	stripANSI bool
}

// NewSession creates a session with an empty sample list
func NewSession(engine Engine, opts ...SessionOption) *Session {
	s := &Session{
		engine: engine,
		out:    os.Stdout,
		errOut: os.Stderr,
		styles: DefaultStyles(),
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Samples returns the current sample list
func (s *Session) Samples() []Sample {
	return s.samples
}

// Intro prints the welcome text
func (s *Session) Intro() {
	fmt.Fprintf(s.out, "Welcome to the %s %s. Type in %s to get additional help.\nType in %s %s to add new words as test targets.\n",
		color.New(color.FgGreen).Sprint("Jacarex"),
		color.New(color.FgGreen, color.Bold).Sprint("Playground"),
		s.styles.Command.FgString(cmdHelp),
		s.styles.Command.FgString(cmdAddWord),
		color.New(color.FgBlue, color.Bold).Sprint("<strings>"),
	)
}

// Run reads lines until the source is interrupted or exhausted, then
// persists the history. Only unexpected input errors are returned.
func (s *Session) Run(src LineSource) error {
	slog.Info("Session started", "engine", s.engine.Name())

	for {
		line, err := src.ReadLine(s.prompt)
		if err != nil {
			err = s.reportInputSignal(err)
			if perr := src.Persist(); perr != nil {
				slog.Warn("Failed to persist history", "error", perr)
				fmt.Fprintf(s.errOut, "Warning: problem saving history: %v\n", perr)
			}
			slog.Info("Session finished", "samples", len(s.samples))
			return err
		}

		if line == "" {
			continue
		}
		src.Record(line)
		s.Handle(line)
	}
}

func (s *Session) reportInputSignal(err error) error {
	switch {
	case errors.Is(err, ErrInterrupted):
		fmt.Fprintln(s.out, "SIGINT received. Exiting.")
		return nil
	case errors.Is(err, io.EOF):
		fmt.Fprintln(s.out, "EOF received. Exiting.")
		return nil
	default:
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return fmt.Errorf("reading input: %w", err)
	}
}

// Handle processes one line of input. Command lines update the sample
// list; every line, command or not, is then evaluated as a pattern.
func (s *Session) Handle(line string) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(trimmed, commandSigil) {
		s.dispatch(trimmed)
	}
	s.evaluate(line)
}

func (s *Session) dispatch(cmd string) {
	switch {
	case strings.HasPrefix(cmd, cmdHelp):
		s.printHelp()
	case strings.HasPrefix(cmd, cmdClear):
		fmt.Fprintln(s.out, "Test strings cleared!")
		slog.Debug("Samples cleared", "count", len(s.samples))
		s.samples = nil
	case strings.HasPrefix(cmd, cmdAddWord):
		fields := strings.Fields(cmd)
		for _, word := range fields[1:] {
			s.samples = append(s.samples, Word(word))
		}
		slog.Debug("Words added", "count", len(fields)-1)
	case strings.HasPrefix(cmd, cmdAddLine):
		if len(cmd) > addLineOffset {
			s.samples = append(s.samples, Line(cmd[addLineOffset:]))
		}
	case strings.HasPrefix(cmd, cmdReadFile):
		if len(cmd) > readFileOffset {
			s.loadFromFile(cmd[readFileOffset:])
		}
	}
}

func (s *Session) printHelp() {
	width := 0
	for _, c := range commandHelp {
		width = max(width, runewidth.StringWidth(c.name))
	}
	for _, c := range commandHelp {
		fmt.Fprintf(s.out, "%s %s\n", s.styles.Command.FgString(runewidth.FillRight(c.name, width)), c.desc)
	}
}

func (s *Session) loadFromFile(path string) {
	contents, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read sample file", "path", path, "error", err)
		fmt.Fprintf(s.errOut, "Problem reading file: %v\n", err)
		return
	}

	text := string(contents)
	if s.stripANSI {
		text = stripEscapes(text)
	}
	s.samples = append(s.samples, Line(text))
}

// stripEscapes drops ANSI styling line by line, keeping the text
func stripEscapes(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		elements, err := ansi.Parse(line)
		if err != nil {
			continue
		}
		var sb strings.Builder
		for _, element := range elements {
			sb.WriteString(element.Label)
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (s *Session) evaluate(pattern string) {
	ev, err := CompileAndMatch(s.engine, pattern, s.samples)
	if err != nil {
		slog.Debug("Pattern rejected", "pattern", pattern, "error", err)
		fmt.Fprintln(s.errOut, err)
		return
	}
	if err := ev.Render(s.out, s.styles); err != nil {
		slog.Warn("Failed to render results", "error", err)
	}
}
