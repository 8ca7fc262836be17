package internal

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

// forceColor turns colored output on for the duration of a test
func forceColor(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = old })
}

func TestMatchColor(t *testing.T) {
	forceColor(t)
	color1 := GetColor("green").FgString("foo")

	// Create a direct color reference for comparison
	color2 := color.New(color.FgGreen).Sprint("foo")

	if color1 != color2 {
		t.Errorf("Expected %q, got %q", color2, color1)
	}
}

func TestColorNameIsCaseInsensitive(t *testing.T) {
	forceColor(t)
	if GetColor("RED").FgString("x") != GetColor("red").FgString("x") {
		t.Error("Expected RED and red to render identically")
	}
}

func TestParseRGB(t *testing.T) {
	forceColor(t)
	color1 := GetColor("#1b1cbf").FgString("foo")

	if !strings.Contains(color1, "27;28;191") {
		t.Errorf("Expected RGB color with 27;28;191, got %q", color1)
	}
}

func TestRGBHonoursNoColor(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	if got := GetColor("#1b1cbf").FgString("foo"); got != "foo" {
		t.Errorf("Expected plain text with colors disabled, got %q", got)
	}
}

func TestParseColorUnknown(t *testing.T) {
	if _, err := ParseColor("wat"); err == nil {
		t.Error("Expected error for unknown color")
	}
	if _, err := ParseColor("#1b1cbj"); err == nil {
		t.Error("Expected error for invalid RGB")
	}
}

func TestUnknownColorPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for unknown color")
		}
	}()
	_ = GetColor("wat")
}
