// Copyright © 2025 The Whisker authors

package diagnostic

import "github.com/fatih/color"

// ColorMode controls when ANSI color codes are used.  Color is purely
// presentational: toggling it never changes the textual content of any
// rendering mode.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode maps the conventional flag values "auto", "always", and
// "never" onto a ColorMode.  Unrecognized values fall back to auto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	}
	return ColorAuto
}

// palette holds the styling functions for diagnostic output.
type palette struct {
	severity map[Severity]*color.Color
	bold     *color.Color
	gutter   *color.Color
	caret    *color.Color
	help     *color.Color
}

// newPalette builds a palette for mode.  ColorAuto defers to the color
// package's own terminal and NO_COLOR detection.
func newPalette(mode ColorMode) *palette {
	p := &palette{
		severity: map[Severity]*color.Color{
			SeverityError:   color.New(color.FgRed, color.Bold),
			SeverityWarning: color.New(color.FgYellow, color.Bold),
			SeverityHint:    color.New(color.FgCyan, color.Bold),
		},
		bold:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		help:   color.New(color.FgCyan),
	}
	for _, c := range p.all() {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) all() []*color.Color {
	cs := []*color.Color{p.bold, p.gutter, p.caret, p.help}
	for _, c := range p.severity {
		cs = append(cs, c)
	}
	return cs
}

func (p *palette) sev(s Severity) *color.Color {
	if c, ok := p.severity[s]; ok {
		return c
	}
	return p.bold
}
