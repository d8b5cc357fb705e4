package pyrs

import "fmt"

func (p *parser) errorExpected(tok Token, expected string) {
	p.addError(tok.Pos, "expected %s, got %s", expected, tokenLabel(tok))
}

func (p *parser) addError(pos Position, format string, args ...any) {
	p.errors = append(p.errors, newError(SyntaxError, pos, format, args...))
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenEndOfLine:
		return "end of line"
	case TokenIndent:
		return "indent"
	case TokenDedent:
		return "dedent"
	case TokenIdent:
		return fmt.Sprintf("identifier '%s'", tok.Literal)
	case TokenInt:
		return "integer"
	case TokenFloat:
		return "float"
	case TokenString:
		return "string"
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
