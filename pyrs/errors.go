package pyrs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a diagnostic the way Python names its exceptions.
type ErrorKind string

const (
	SyntaxError       ErrorKind = "SyntaxError"
	IndentationError  ErrorKind = "IndentationError"
	TypeError         ErrorKind = "TypeError"
	NameError         ErrorKind = "NameError"
	ZeroDivisionError ErrorKind = "ZeroDivisionError"
	IndexError        ErrorKind = "IndexError"
	OverflowError     ErrorKind = "OverflowError"
	RecursionError    ErrorKind = "RecursionError"
	MemoryError       ErrorKind = "MemoryError"
)

// StackFrame names a function activation in a runtime traceback.
type StackFrame struct {
	Function string
	Pos      Position
}

// Error is a positioned diagnostic produced by any pipeline stage.
type Error struct {
	Kind      ErrorKind
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame
}

const (
	errorFrameHead = 8
	errorFrameTail = 8
)

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, "\n    Line %d, Column %d", e.Pos.Line, e.Pos.Column)
	}
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(e.Frames) <= errorFrameHead+errorFrameTail {
		for _, frame := range e.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range e.Frames[:errorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(e.Frames) - (errorFrameHead + errorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range e.Frames[len(e.Frames)-errorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

func newError(kind ErrorKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// ErrorList collects the diagnostics of a lexer or parser pass.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	parts := make([]string, len(l))
	for i, err := range l {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n\n")
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, err := range l {
		out[i] = err
	}
	return out
}

// Err returns nil for an empty list so callers can return it directly.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// withSource attaches caret code frames to every diagnostic.
func (l ErrorList) withSource(source string) ErrorList {
	for _, err := range l {
		if err.CodeFrame == "" {
			err.CodeFrame = formatCodeFrame(source, err.Pos)
		}
	}
	return l
}

// IsKind reports whether err, or any diagnostic it wraps, has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var list ErrorList
	if errors.As(err, &list) {
		for _, item := range list {
			if item.Kind == kind {
				return true
			}
		}
		return false
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
