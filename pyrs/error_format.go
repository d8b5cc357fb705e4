package pyrs

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	// Tabs are kept in the caret padding so the caret lines up in terminals.
	var caretPad strings.Builder
	for _, r := range lineRunes[:column-1] {
		if r == '\t' {
			caretPad.WriteRune('\t')
		} else {
			caretPad.WriteRune(' ')
		}
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))

	return fmt.Sprintf(
		" %s | %s\n %s | %s^",
		lineLabel,
		lineText,
		gutterPad,
		caretPad.String(),
	)
}
