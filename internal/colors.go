package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Color interface defines how to colorize text
type Color interface {
	FgString(text string) string
}

// ColorWrapper wraps fatih/color functionality
type ColorWrapper struct {
	color   *color.Color
	isRGB   bool
	r, g, b uint8
}

// FgString returns a string with the color applied
func (c ColorWrapper) FgString(text string) string {
	if c.isRGB {
		if color.NoColor {
			return text
		}
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, text)
	}
	return c.color.Sprint(text)
}

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var (
	colorCache = make(map[string]Color, 8)
	colorMutex sync.RWMutex
)

var predefinedColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"default": color.Reset,
}

// ParseColor parses a color name or a #rrggbb string
func ParseColor(name string) (Color, error) {
	colorMutex.RLock()
	if cached, exists := colorCache[name]; exists {
		colorMutex.RUnlock()
		return cached, nil
	}
	colorMutex.RUnlock()

	var result Color

	if m := rgbRegex.FindStringSubmatch(name); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		result = ColorWrapper{
			isRGB: true,
			r:     uint8(r),
			g:     uint8(g),
			b:     uint8(b),
		}
	} else {
		attr, exists := predefinedColors[strings.ToLower(name)]
		if !exists {
			return nil, fmt.Errorf("unknown color: %s", name)
		}
		result = ColorWrapper{color: color.New(attr)}
	}

	colorMutex.Lock()
	colorCache[name] = result
	colorMutex.Unlock()

	return result, nil
}

// GetColor is like ParseColor but panics on unknown names
func GetColor(name string) Color {
	c, err := ParseColor(name)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Styles groups the colors used when printing results
type Styles struct {
	Match   Color // emphasis for matched spans
	Miss    Color // alert for samples without a match
	Command Color
}

// DefaultStyles returns green matches, red misses and blue commands
func DefaultStyles() Styles {
	return Styles{
		Match:   GetColor("green"),
		Miss:    GetColor("red"),
		Command: GetColor("blue"),
	}
}
