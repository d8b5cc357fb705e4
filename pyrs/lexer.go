package pyrs

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const tabWidth = 8

type lexer struct {
	input string

	offset int
	width  int
	eof    bool

	line   int
	column int

	ch rune

	indents     []int
	atLineStart bool
	fatal       bool

	tokens []Token
	errors ErrorList
}

// Scan turns source text into tokens. The returned slice always ends with an
// EndOfFile token, even when scanning fails; a non-nil error is an ErrorList
// holding every diagnostic found, and callers must not parse the tokens then.
// Indentation errors stop the scan immediately.
func Scan(source string) ([]Token, error) {
	l := newLexer(source)
	l.run()
	return l.tokens, l.errors.Err()
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, indents: []int{0}, atLineStart: true}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	if l.offset >= len(l.input) {
		l.eof = true
		l.width = 0
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += w
	l.width = w
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) pos() Position {
	return Position{Line: l.line, Column: l.column}
}

func (l *lexer) emit(tt TokenType, literal string, pos Position) {
	l.tokens = append(l.tokens, Token{Type: tt, Literal: literal, Pos: pos})
}

func (l *lexer) errorAt(kind ErrorKind, pos Position, format string, args ...any) {
	l.errors = append(l.errors, newError(kind, pos, format, args...))
}

func (l *lexer) run() {
	for !l.eof && !l.fatal {
		if l.atLineStart {
			l.scanIndentation()
			continue
		}
		l.scanToken()
	}

	if !l.fatal {
		if n := len(l.tokens); n > 0 && l.tokens[n-1].Type != TokenEndOfLine {
			l.emit(TokenEndOfLine, "", l.pos())
		}
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(TokenDedent, "", l.pos())
		}
	}
	l.emit(TokenEOF, "", l.pos())
}

// scanIndentation measures the leading whitespace of a logical line and emits
// the Indent/Dedent tokens it implies. Blank and comment-only lines are
// consumed without producing any token.
func (l *lexer) scanIndentation() {
	width := 0
	for {
		switch l.ch {
		case ' ':
			width++
		case '\t':
			width = (width/tabWidth + 1) * tabWidth
		case '\r':
		default:
			goto measured
		}
		l.readRune()
	}

measured:
	switch {
	case l.eof:
		return
	case l.ch == '\n':
		l.readRune()
		return
	case l.ch == '#':
		l.skipComment()
		l.readRune()
		return
	}

	l.atLineStart = false
	pos := l.pos()
	top := l.indents[len(l.indents)-1]
	switch {
	case width == top:
	case width > top:
		l.indents = append(l.indents, width)
		l.emit(TokenIndent, "", pos)
	default:
		match := -1
		for i := len(l.indents) - 1; i >= 0; i-- {
			if l.indents[i] == width {
				match = i
				break
			}
		}
		if match < 0 {
			l.errorAt(IndentationError, pos, "unindent does not match any outer indentation level")
			l.fatal = true
			return
		}
		for len(l.indents)-1 > match {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(TokenDedent, "", pos)
		}
	}
}

func (l *lexer) scanToken() {
	pos := l.pos()

	switch l.ch {
	case ' ', '\t', '\r':
		l.readRune()
	case '\n':
		l.emit(TokenEndOfLine, "\n", pos)
		l.atLineStart = true
		l.readRune()
	case '#':
		l.skipComment()
	case '+':
		l.single(TokenPlus, pos)
	case '-':
		l.single(TokenMinus, pos)
	case '*':
		l.single(TokenAsterisk, pos)
	case '/':
		l.single(TokenSlash, pos)
	case ':':
		l.single(TokenColon, pos)
	case ',':
		l.single(TokenComma, pos)
	case '(':
		l.single(TokenLParen, pos)
	case '[':
		l.single(TokenLBracket, pos)
	case ')':
		l.single(TokenRParen, pos)
	case ']':
		l.single(TokenRBracket, pos)
	case '!':
		if l.peekRune() == '=' {
			l.double(TokenNotEQ, pos)
			return
		}
		l.errorAt(SyntaxError, pos, "unknown token '!'")
		l.readRune()
	case '=':
		l.oneOrTwo(TokenAssign, TokenEQ, pos)
	case '>':
		l.oneOrTwo(TokenGT, TokenGTE, pos)
	case '<':
		l.oneOrTwo(TokenLT, TokenLTE, pos)
	case '"':
		l.scanString(pos)
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			l.emit(lookupIdent(literal), literal, pos)
		case isDigit(l.ch):
			l.scanNumber(pos)
		default:
			l.errorAt(SyntaxError, pos, "unknown token %s", strconv.QuoteRune(l.ch))
			l.readRune()
		}
	}
}

func (l *lexer) single(tt TokenType, pos Position) {
	l.emit(tt, string(tt), pos)
	l.readRune()
}

func (l *lexer) double(tt TokenType, pos Position) {
	l.readRune()
	l.emit(tt, string(tt), pos)
	l.readRune()
}

// oneOrTwo emits the two-character form when the next rune is '='.
func (l *lexer) oneOrTwo(one, two TokenType, pos Position) {
	if l.peekRune() == '=' {
		l.double(two, pos)
		return
	}
	l.single(one, pos)
}

func (l *lexer) skipComment() {
	for !l.eof && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.offset - l.width
	for isIdentifierRune(l.ch) {
		l.readRune()
	}
	return l.input[start : l.offset-l.width]
}

func (l *lexer) scanString(pos Position) {
	var sb strings.Builder
	l.readRune()
	for {
		if l.eof || l.ch == '\n' {
			l.errorAt(SyntaxError, pos, "unterminated string")
			return
		}
		switch l.ch {
		case '"':
			l.readRune()
			l.tokens = append(l.tokens, Token{Type: TokenString, Literal: sb.String(), Pos: pos})
			return
		case '\\':
			next := l.peekRune()
			switch next {
			case '"', '\\':
				l.readRune()
				sb.WriteRune(next)
			case 'n':
				l.readRune()
				sb.WriteByte('\n')
			case '\n', 0:
				l.readRune()
				continue
			default:
				sb.WriteByte('\\')
			}
		default:
			sb.WriteRune(l.ch)
		}
		l.readRune()
	}
}

func (l *lexer) scanNumber(pos Position) {
	var sb strings.Builder
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}

	if l.ch != '.' {
		literal := sb.String()
		value, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			l.errorAt(SyntaxError, pos, "integer literal too large: %s", literal)
			return
		}
		l.tokens = append(l.tokens, Token{Type: TokenInt, Literal: literal, Int: value, Pos: pos})
		return
	}

	dotPos := l.pos()
	sb.WriteRune('.')
	l.readRune()
	if !isDigit(l.ch) {
		l.errorAt(SyntaxError, dotPos, "invalid number literal: expected digit after '.'")
		return
	}
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}
	if l.ch == '.' {
		l.errorAt(SyntaxError, l.pos(), "invalid number literal: unexpected second '.'")
		for l.ch == '.' || isDigit(l.ch) {
			l.readRune()
		}
		return
	}

	literal := sb.String()
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		l.errorAt(SyntaxError, pos, "invalid number literal: %s", literal)
		return
	}
	l.tokens = append(l.tokens, Token{Type: TokenFloat, Literal: literal, Float: value, Pos: pos})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
