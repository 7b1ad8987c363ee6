package logger

import "strings"

// stripAnsiCodes removes ANSI CSI escape sequences (colour codes, cursor
// moves, and the like) from s. Styled message strings built for the pterm
// TTY handler still flow through scrubAttr when file output is active, and
// raw escape bytes have no business in a JSON log line.
func stripAnsiCodes(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}

	const (
		text = iota
		csi
	)

	out := make([]byte, 0, len(s))
	state := text

	for i := 0; i < len(s); i++ {
		c := s[i]

		if state == csi {
			if isCsiTerminator(c) {
				state = text
			}
			continue
		}

		if c == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			state = csi
			i++
			continue
		}

		out = append(out, c)
	}

	return string(out)
}

// isCsiTerminator reports whether c ends a CSI sequence, per the ECMA-48
// convention that the final byte of a control sequence is a letter.
func isCsiTerminator(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
