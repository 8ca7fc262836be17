package internal

// Sample is a stored piece of text that patterns are tested against.
// The only implementations are Word and Line.
type Sample interface {
	// Text returns the underlying string regardless of the kind of sample
	Text() string
	// IsLine reports whether the sample should be rendered quoted
	IsLine() bool

	sample()
}

// Word is a single trimmed word added with #addword
type Word string

// Line is a full line of text kept verbatim, including trailing whitespace
type Line string

func (w Word) Text() string { return string(w) }
func (w Word) IsLine() bool { return false }
func (Word) sample() {}

func (l Line) Text() string { return string(l) }
func (l Line) IsLine() bool { return true }
func (Line) sample() {}

// quote wraps text in double quotes for Line samples
func quote(s Sample, text string) string {
	switch s.(type) {
	case Line:
		return `"` + text + `"`
	case Word:
		return text
	default:
		panic("unknown sample kind")
	}
}
