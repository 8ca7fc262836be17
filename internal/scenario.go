package internal

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Scenario is a predefined set of samples, each with the outcome a
// pattern must produce for it.
type Scenario struct {
	Pattern string           `toml:"pattern"`
	Samples []ScenarioSample `toml:"samples"`
}

// ScenarioSample sets exactly one of Word or Line
type ScenarioSample struct {
	Word   *string     `toml:"word"`
	Line   *string     `toml:"line"`
	Expect Expectation `toml:"expect"`
}

// LoadScenario decodes and validates a scenario file
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	for i, s := range sc.Samples {
		if (s.Word == nil) == (s.Line == nil) {
			return nil, fmt.Errorf("sample %d: exactly one of word or line must be set", i+1)
		}
	}
	return &sc, nil
}

// Split returns the samples and the expectations in file order
func (sc *Scenario) Split() ([]Sample, []Expectation) {
	samples := make([]Sample, 0, len(sc.Samples))
	expectations := make([]Expectation, 0, len(sc.Samples))
	for _, s := range sc.Samples {
		if s.Word != nil {
			samples = append(samples, Word(*s.Word))
		} else {
			samples = append(samples, Line(*s.Line))
		}
		expectations = append(expectations, s.Expect)
	}
	return samples, expectations
}

// Check evaluates pattern against the scenario, renders the results to w
// and reports whether every expectation held.
func (sc *Scenario) Check(engine Engine, pattern string, w io.Writer, styles Styles) (bool, error) {
	samples, expectations := sc.Split()

	ev, err := CompileAndMatch(engine, pattern, samples)
	if err != nil {
		return false, err
	}
	if err := ev.Render(w, styles); err != nil {
		return false, err
	}
	return ev.PassedAllTests(expectations), nil
}
