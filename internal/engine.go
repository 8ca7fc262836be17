package internal

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	EngineRE2     = "re2"
	EngineRegexp2 = "regexp2"

	DefaultSizeLimit    = 10000
	DefaultMatchTimeout = time.Second
)

// Span is a byte range [Start, End) inside a sample
type Span struct {
	Start int
	End   int
}

// ErrorKind classifies a PatternError
type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	TooLarge
	OtherError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax"
	case TooLarge:
		return "too-large"
	default:
		return "other"
	}
}

// PatternError is returned when a pattern cannot be compiled or applied
type PatternError struct {
	Kind    ErrorKind
	Message string
	Limit   int // set for TooLarge when the configured bound was exceeded
}

func (e *PatternError) Error() string {
	if e.Kind == TooLarge {
		if e.Limit > 0 {
			return fmt.Sprintf("The compiled program exceeded the set size limit (%d).", e.Limit)
		}
		return "The compiled program is too large: " + e.Message
	}
	return e.Message
}

// Engine compiles patterns
type Engine interface {
	Name() string
	Compile(pattern string) (Pattern, error)
}

// Pattern is a compiled pattern. Apply returns nil spans when the text
// does not match; otherwise the whole match followed by every
// participating group, in group order.
type Pattern interface {
	Apply(text string) ([]Span, error)
}

// EngineOptions holds the knobs shared by all engines
type EngineOptions struct {
	SizeLimit    int
	MatchTimeout time.Duration
}

// NewEngine returns the engine registered under name
func NewEngine(name string, opts EngineOptions) (Engine, error) {
	if opts.SizeLimit <= 0 {
		opts.SizeLimit = DefaultSizeLimit
	}
	if opts.MatchTimeout <= 0 {
		opts.MatchTimeout = DefaultMatchTimeout
	}

	switch strings.ToLower(name) {
	case "", EngineRE2:
		return &re2Engine{sizeLimit: opts.SizeLimit}, nil
	case EngineRegexp2:
		return &regexp2Engine{timeout: opts.MatchTimeout}, nil
	default:
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
}

type re2Engine struct {
	sizeLimit int
}

func (e *re2Engine) Name() string { return EngineRE2 }

func (e *re2Engine) Compile(pattern string) (Pattern, error) {
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, classifySyntaxError(err)
	}

	prog, err := syntax.Compile(parsed.Simplify())
	if err != nil {
		return nil, &PatternError{Kind: OtherError, Message: err.Error()}
	}
	if len(prog.Inst) > e.sizeLimit {
		return nil, &PatternError{Kind: TooLarge, Limit: e.sizeLimit}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, classifySyntaxError(err)
	}
	return &re2Pattern{re: re}, nil
}

func classifySyntaxError(err error) *PatternError {
	var se *syntax.Error
	if errors.As(err, &se) {
		switch se.Code {
		case syntax.ErrLarge, syntax.ErrNestingDepth:
			return &PatternError{Kind: TooLarge, Message: se.Error()}
		}
		return &PatternError{Kind: SyntaxError, Message: se.Error()}
	}
	return &PatternError{Kind: OtherError, Message: err.Error()}
}

type re2Pattern struct {
	re *regexp.Regexp
}

func (p *re2Pattern) Apply(text string) ([]Span, error) {
	indices := p.re.FindStringSubmatchIndex(text)
	if indices == nil {
		return nil, nil
	}

	spans := make([]Span, 0, len(indices)/2)
	for i := 0; i+1 < len(indices); i += 2 {
		if indices[i] < 0 {
			continue
		}
		spans = append(spans, Span{Start: indices[i], End: indices[i+1]})
	}
	return spans, nil
}

type regexp2Engine struct {
	timeout time.Duration
}

func (e *regexp2Engine) Name() string { return EngineRegexp2 }

func (e *regexp2Engine) Compile(pattern string) (Pattern, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, &PatternError{Kind: SyntaxError, Message: err.Error()}
	}
	re.MatchTimeout = e.timeout
	return &regexp2Pattern{re: re}, nil
}

type regexp2Pattern struct {
	re *regexp2.Regexp
}

func (p *regexp2Pattern) Apply(text string) ([]Span, error) {
	m, err := p.re.FindStringMatch(text)
	if err != nil {
		return nil, &PatternError{Kind: OtherError, Message: err.Error()}
	}
	if m == nil {
		return nil, nil
	}

	// regexp2 reports rune indices
	offsets := runeOffsets(text)
	groups := m.Groups()
	spans := make([]Span, 0, len(groups))
	for _, g := range groups {
		if len(g.Captures) == 0 {
			continue
		}
		spans = append(spans, Span{
			Start: offsets[g.Index],
			End:   offsets[g.Index+g.Length],
		})
	}
	return spans, nil
}

// runeOffsets maps rune index -> byte offset, with one trailing entry for len(text)
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
