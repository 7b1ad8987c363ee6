// Package theme names the colours pigate's terminal output uses: log
// levels through the pterm-backed slog handler (internal/logger), the
// startup routes table, and the splash banner. PI_THEME selects one of
// the three variants below; internal/logger.newTerminalHandler reads
// only Info and Muted from whichever Theme it's given, while StyledLogger
// additionally reaches for Highlight and Accent to pick out a route or a
// count inline in a log message.
package theme

import (
	"github.com/pterm/pterm"
)

// Theme is a named palette of the four styles pigate's logger actually
// reaches for: a base message/level colour, a muted colour for
// de-emphasised text like timestamps, and two accents for picking a value
// out inline in a log line.
type Theme struct {
	Info      *pterm.Style
	Muted     *pterm.Style
	Highlight *pterm.Style
	Accent    *pterm.Style
}

// mutedStyle looks the same across every variant below - a de-emphasised
// timestamp doesn't need to shift with light/dark preference the way
// foreground text does.
var mutedStyle = pterm.NewStyle(pterm.FgGray)

// Default is pigate's standard palette, tuned for a dark terminal.
func Default() *Theme {
	return &Theme{
		Info:      pterm.NewStyle(pterm.FgGreen),
		Muted:     mutedStyle,
		Highlight: pterm.NewStyle(pterm.FgCyan, pterm.Bold),
		Accent:    pterm.NewStyle(pterm.FgMagenta),
	}
}

// Dark leans on the "Light" ANSI colour variants for extra contrast
// against a pure-black background.
func Dark() *Theme {
	return &Theme{
		Info:      pterm.NewStyle(pterm.FgLightGreen),
		Muted:     mutedStyle,
		Highlight: pterm.NewStyle(pterm.FgLightCyan, pterm.Bold),
		Accent:    pterm.NewStyle(pterm.FgLightMagenta),
	}
}

// Light trades the brighter foreground colours for ones that stay
// readable against a white or pale terminal background.
func Light() *Theme {
	return &Theme{
		Info:      pterm.NewStyle(pterm.FgBlack),
		Muted:     mutedStyle,
		Highlight: pterm.NewStyle(pterm.FgBlue, pterm.Bold),
		Accent:    pterm.NewStyle(pterm.FgMagenta),
	}
}

// GetTheme resolves a PI_THEME value to a Theme, falling back to Default
// for an empty or unrecognised name.
func GetTheme(name string) *Theme {
	switch name {
	case "dark":
		return Dark()
	case "light":
		return Light()
	default:
		return Default()
	}
}

// ColourSplash colours the box-drawing frame of the startup splash banner.
func ColourSplash(message ...any) string {
	return pterm.LightGreen(message...)
}

// ColourVersion colours the version string printed inside the splash banner.
func ColourVersion(message ...any) string {
	return pterm.LightYellow(message...)
}

// StyleUrl colours the project URL printed inside the splash banner.
func StyleUrl(message ...any) string {
	return pterm.LightBlue(message...)
}

// Hyperlink wraps text in the OSC 8 terminal hyperlink escape sequence, so
// terminals that support it can make text click through to uri.
func Hyperlink(uri string, text string) string {
	const (
		start = "\x1b]8;;"
		mid   = "\x07"
		reset = "\x1b]8;;\x07\x1b[0m"
	)
	return start + uri + mid + text + reset
}
