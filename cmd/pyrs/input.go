package main

import (
	"sort"
	"strings"

	"github.com/pyrs-lang/pyrs/pyrs"
)

const (
	promptMain = ">>> "
	promptCont = "... "
)

// inputBuffer groups interactive lines into units of evaluation. A line whose
// last token is ':' opens a block; the block is submitted at the first blank
// line that follows.
type inputBuffer struct {
	lines []string
}

// Feed adds one line and reports whether a complete unit is ready.
func (b *inputBuffer) Feed(line string) (string, bool) {
	if len(b.lines) == 0 {
		if strings.TrimSpace(line) == "" {
			return "", false
		}
		if !opensBlock(line) {
			return line, true
		}
		b.lines = append(b.lines, line)
		return "", false
	}

	if strings.TrimSpace(line) == "" {
		unit := strings.Join(b.lines, "\n")
		b.lines = nil
		return unit, true
	}
	b.lines = append(b.lines, line)
	return "", false
}

func (b *inputBuffer) Pending() bool { return len(b.lines) > 0 }

func (b *inputBuffer) Reset() { b.lines = nil }

func (b *inputBuffer) Prompt() string {
	if b.Pending() {
		return promptCont
	}
	return promptMain
}

func opensBlock(line string) bool {
	tokens, err := pyrs.Scan(line)
	if err != nil {
		return false
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].Type {
		case pyrs.TokenEndOfLine, pyrs.TokenEOF, pyrs.TokenDedent:
			continue
		case pyrs.TokenColon:
			return true
		default:
			return false
		}
	}
	return false
}

// echo renders the value of a trailing expression the way an interactive
// prompt shows it. None is not echoed.
func echo(value pyrs.Value) (string, bool) {
	if value.IsNone() {
		return "", false
	}
	return value.Repr(), true
}

// complete splits input before the identifier under the cursor and returns
// the sorted keywords and session names that extend it.
func complete(session *pyrs.Session, input string) (string, []string) {
	start := len(input)
	for start > 0 && isNameByte(input[start-1]) {
		start--
	}
	word := input[start:]
	if word == "" {
		return input, nil
	}

	seen := make(map[string]struct{})
	var matches []string
	for _, name := range append(pyrs.Keywords(), session.Env().Names()...) {
		if _, dup := seen[name]; dup || !strings.HasPrefix(name, word) {
			continue
		}
		seen[name] = struct{}{}
		matches = append(matches, name)
	}
	sort.Strings(matches)
	return input[:start], matches
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
