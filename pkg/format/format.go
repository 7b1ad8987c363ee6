// Package format renders the couple of numeric shapes the process-stats
// report in main.go needs turned into something a human reads comfortably:
// byte counts and durations. The gateway has one backend and no fleet to
// summarise, so it carries only the units its own log lines use.
package format

import (
	"fmt"
	"time"
)

var byteUnits = [...]string{"KB", "MB", "GB", "TB", "PB"}

// Bytes renders a byte count using binary (1024-based) units, picking the
// largest unit that keeps the mantissa under 1024.
func Bytes(bytes uint64) string {
	const step = 1024
	if bytes < step {
		return fmt.Sprintf("%d B", bytes)
	}

	divisor := uint64(step)
	unit := 0
	for remaining := bytes / step; remaining >= step; remaining /= step {
		divisor *= step
		unit++
	}

	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(divisor), byteUnits[unit])
}

// Duration renders d as h/m/s components, dropping any leading component
// that would be zero (e.g. "45s" rather than "0h0m45s"). Sub-second
// durations fall back to time.Duration's own String, which is precise
// enough at that scale to not need reformatting.
func Duration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
