package pyrs

import (
	"fmt"
	"strconv"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenPlus     TokenType = "+"
	TokenMinus    TokenType = "-"
	TokenAsterisk TokenType = "*"
	TokenSlash    TokenType = "/"
	TokenColon    TokenType = ":"
	TokenLParen   TokenType = "("
	TokenRParen   TokenType = ")"
	TokenLBracket TokenType = "["
	TokenRBracket TokenType = "]"
	TokenComma    TokenType = ","

	TokenAssign TokenType = "="
	TokenEQ     TokenType = "=="
	TokenNotEQ  TokenType = "!="
	TokenGT     TokenType = ">"
	TokenGTE    TokenType = ">="
	TokenLT     TokenType = "<"
	TokenLTE    TokenType = "<="

	TokenTrue   TokenType = "True"
	TokenFalse  TokenType = "False"
	TokenNot    TokenType = "not"
	TokenAnd    TokenType = "and"
	TokenOr     TokenType = "or"
	TokenIf     TokenType = "if"
	TokenElse   TokenType = "else"
	TokenWhile  TokenType = "while"
	TokenDef    TokenType = "def"
	TokenReturn TokenType = "return"
	TokenPrint  TokenType = "print"
	TokenNone   TokenType = "None"

	TokenIdent  TokenType = "IDENT"
	TokenString TokenType = "STRING"
	TokenInt    TokenType = "INT"
	TokenFloat  TokenType = "FLOAT"

	TokenIndent    TokenType = "INDENT"
	TokenDedent    TokenType = "DEDENT"
	TokenEndOfLine TokenType = "EOL"
	TokenEOF       TokenType = "EOF"
)

var keywords = map[string]TokenType{
	"True":   TokenTrue,
	"False":  TokenFalse,
	"not":    TokenNot,
	"and":    TokenAnd,
	"or":     TokenOr,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"def":    TokenDef,
	"return": TokenReturn,
	"print":  TokenPrint,
	"None":   TokenNone,
}

// Keywords lists the reserved words in source order of the keyword table.
func Keywords() []string {
	return []string{"True", "False", "not", "and", "or", "if", "else", "while", "def", "return", "print", "None"}
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdent
}

// Token captures lexical information for the parser. Literal values are
// resolved by the lexer: Int and Float hold parsed numbers and Literal holds
// the decoded string text or identifier name.
type Token struct {
	Type    TokenType
	Literal string
	Int     uint64
	Float   float64
	Pos     Position
}

// Position identifies a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdent:
		return fmt.Sprintf("%s %s", t.Type, t.Literal)
	case TokenString:
		return fmt.Sprintf("%s %s", t.Type, strconv.Quote(t.Literal))
	case TokenInt:
		return fmt.Sprintf("%s %d", t.Type, t.Int)
	case TokenFloat:
		return fmt.Sprintf("%s %s", t.Type, formatFloat(t.Float))
	default:
		return string(t.Type)
	}
}
