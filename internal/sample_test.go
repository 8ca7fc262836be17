package internal

import "testing"

func TestSampleAccessors(t *testing.T) {
	tests := []struct {
		sample Sample
		text   string
		isLine bool
		quoted string
	}{
		{Word("cat"), "cat", false, "cat"},
		{Line("the cat  "), "the cat  ", true, `"the cat  "`},
		{Line(""), "", true, `""`},
	}

	for _, tt := range tests {
		if got := tt.sample.Text(); got != tt.text {
			t.Errorf("Text() = %q; want %q", got, tt.text)
		}
		if got := tt.sample.IsLine(); got != tt.isLine {
			t.Errorf("IsLine(%q) = %v; want %v", tt.text, got, tt.isLine)
		}
		if got := quote(tt.sample, tt.sample.Text()); got != tt.quoted {
			t.Errorf("quote(%q) = %q; want %q", tt.text, got, tt.quoted)
		}
	}
}
