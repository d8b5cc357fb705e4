package pyrs

type parser struct {
	tokens  []Token
	current int
	errors  ErrorList
}

// Parse builds a program from a token slice produced by Scan. Diagnostics are
// accumulated across statements; when any are reported the returned program
// is nil and the error is an ErrorList.
func Parse(tokens []Token) (*Program, error) {
	p := newParser(tokens)
	program := p.parseProgram()
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

func newParser(tokens []Token) *parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != TokenEOF {
		var pos Position
		if n > 0 {
			pos = tokens[n-1].Pos
		}
		tokens = append(tokens[:n:n], Token{Type: TokenEOF, Pos: pos})
	}
	return &parser{tokens: tokens}
}

func (p *parser) parseProgram() *Program {
	program := &Program{}
	for !p.check(TokenEOF) {
		if p.match(TokenEndOfLine) {
			continue
		}
		start := p.current
		stmt := p.parseStatement()
		if stmt == nil {
			p.recover(start)
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) peekAt(offset int) Token {
	i := p.current + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

// check reports whether the current token has one of the given types.
func (p *parser) check(types ...TokenType) bool {
	tt := p.peek().Type
	for _, want := range types {
		if tt == want {
			return true
		}
	}
	return false
}

// match consumes the current token when check would succeed.
func (p *parser) match(types ...TokenType) bool {
	if p.check(types...) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type tt or records "expected <what>".
func (p *parser) expect(tt TokenType, what string) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorExpected(p.peek(), what)
	return Token{}, false
}

// recover resynchronises after a failed statement that started at start.
func (p *parser) recover(start int) {
	p.synchronize()
	if p.current == start {
		p.advance()
	}
}

// synchronize skips to the end of the current logical line and then over an
// indented block hanging off it, so a broken block header does not produce a
// second diagnostic for its body.
func (p *parser) synchronize() {
	depth := 0
	for !p.check(TokenEOF) {
		switch p.peek().Type {
		case TokenIndent:
			depth++
		case TokenDedent:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
			if depth == 0 {
				return
			}
			continue
		case TokenEndOfLine:
			if depth == 0 {
				p.advance()
				if !p.check(TokenIndent) {
					return
				}
				continue
			}
		}
		p.advance()
	}
}
