package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Expectation is the outcome a scenario requires from a sample
type Expectation int

const (
	MustMatch Expectation = iota
	MustNotMatch
)

func (e Expectation) String() string {
	if e == MustNotMatch {
		return "no-match"
	}
	return "match"
}

// UnmarshalText lets scenario files spell expectations as strings
func (e *Expectation) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "match", "must-match":
		*e = MustMatch
	case "no-match", "must-not-match", "skip":
		*e = MustNotMatch
	default:
		return fmt.Errorf("unknown expectation: %q", text)
	}
	return nil
}

// Evaluator holds the result of applying one pattern to every sample
type Evaluator struct {
	samples []Sample
	results [][]Span
}

// CompileAndMatch compiles pattern once and applies it to each sample in order
func CompileAndMatch(engine Engine, pattern string, samples []Sample) (*Evaluator, error) {
	compiled, err := engine.Compile(pattern)
	if err != nil {
		return nil, err
	}

	results := make([][]Span, len(samples))
	for i, s := range samples {
		spans, err := compiled.Apply(s.Text())
		if err != nil {
			var pe *PatternError
			if errors.As(err, &pe) {
				return nil, pe
			}
			return nil, &PatternError{Kind: OtherError, Message: err.Error()}
		}
		results[i] = spans
	}

	return &Evaluator{samples: samples, results: results}, nil
}

// Results returns one entry per sample; nil means no match
func (e *Evaluator) Results() [][]Span {
	return e.results
}

// Render prints every sample, highlighting matched spans with styles.Match
// and printing unmatched samples with styles.Miss.
func (e *Evaluator) Render(w io.Writer, styles Styles) error {
	var sb strings.Builder
	for i, s := range e.samples {
		spans := e.results[i]
		if spans == nil {
			sb.WriteString(quote(s, styles.Miss.FgString(s.Text())))
		} else {
			sb.WriteString(quote(s, Highlight(s.Text(), spans, styles.Match)))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Highlight walks text left to right and emphasizes every span. Spans are
// taken in the order given; a span that starts before the cursor is
// clipped so nested groups are never printed twice.
func Highlight(text string, spans []Span, emphasis Color) string {
	var sb strings.Builder
	cursor := 0

	for _, span := range spans {
		if span.End <= cursor {
			continue
		}
		start := max(span.Start, cursor)
		if cursor < start {
			sb.WriteString(text[cursor:start])
		}
		if start < span.End {
			sb.WriteString(emphasis.FgString(text[start:span.End]))
		}
		cursor = span.End
	}

	sb.WriteString(text[cursor:])
	return sb.String()
}

// PassedAllTests zips samples, results and expectations positionally.
// MustMatch requires every span to cover the whole sample; partial
// matches fail.
func (e *Evaluator) PassedAllTests(expectations []Expectation) bool {
	n := min(len(e.samples), len(expectations))
	for i := 0; i < n; i++ {
		spans := e.results[i]
		switch expectations[i] {
		case MustMatch:
			if !coversWhole(e.samples[i].Text(), spans) {
				return false
			}
		case MustNotMatch:
			if spans != nil {
				return false
			}
		}
	}
	return true
}

func coversWhole(text string, spans []Span) bool {
	if spans == nil {
		return false
	}
	for _, span := range spans {
		if span.Start != 0 || span.End != len(text) {
			return false
		}
	}
	return true
}
