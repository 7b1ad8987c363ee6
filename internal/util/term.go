// Package util collects small standalone helpers - terminal detection,
// numeric-safety conversions - that don't belong to any one domain
// component but are cheap enough to not warrant their own package.
package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/thushan/pigate/pkg/container"
)

// references:
//   - https://no-color.org/
//   - https://github.com/sitkevij/no_color

// IsTerminal reports whether stdout is attached to an interactive terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// ShouldUseColors decides whether the terminal log handler should emit
// pterm-styled output. NO_COLOR and FORCE_COLOR are the community-standard
// overrides; PI_FORCE_COLORS is pigate's own explicit switch and takes
// priority over the container heuristic below. Absent any override, a
// containerised process defaults to plain output - its stdout is almost
// always captured by a log collector rather than watched live - and
// otherwise colour follows whether stdout is a real terminal.
func ShouldUseColors() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return os.Getenv("FORCE_COLOR") != "0"
	case os.Getenv("PI_FORCE_COLORS") != "":
		return strings.ToLower(os.Getenv("PI_FORCE_COLORS")) == "true"
	case container.IsContainerised():
		return false
	default:
		return IsTerminal()
	}
}
