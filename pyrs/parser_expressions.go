package pyrs

func (p *parser) parseExpression() Expression {
	return p.parseOr()
}

// parseBinary folds a left-associative chain of operators of one precedence
// level, with next parsing the level above.
func (p *parser) parseBinary(next func() Expression, ops ...TokenType) Expression {
	left := next()
	if left == nil {
		return nil
	}
	for p.check(ops...) {
		opTok := p.advance()
		right := next()
		if right == nil {
			return nil
		}
		left = &BinaryExpr{Left: left, Operator: Operator{Type: opTok.Type, Pos: opTok.Pos}, Right: right}
	}
	return left
}

func (p *parser) parseOr() Expression {
	return p.parseBinary(p.parseAnd, TokenOr)
}

func (p *parser) parseAnd() Expression {
	return p.parseBinary(p.parseEquality, TokenAnd)
}

func (p *parser) parseEquality() Expression {
	return p.parseBinary(p.parseComparison, TokenEQ, TokenNotEQ)
}

func (p *parser) parseComparison() Expression {
	return p.parseBinary(p.parseTerm, TokenGT, TokenGTE, TokenLT, TokenLTE)
}

func (p *parser) parseTerm() Expression {
	return p.parseBinary(p.parseFactor, TokenPlus, TokenMinus)
}

func (p *parser) parseFactor() Expression {
	return p.parseBinary(p.parseUnary, TokenAsterisk, TokenSlash)
}

func (p *parser) parseUnary() Expression {
	if p.check(TokenMinus, TokenNot) {
		opTok := p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		return &UnaryExpr{Operator: Operator{Type: opTok.Type, Pos: opTok.Pos}, Right: right}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() Expression {
	tok := p.peek()
	switch tok.Type {
	case TokenInt:
		p.advance()
		return &IntegerLiteral{Value: tok.Int, position: tok.Pos}
	case TokenFloat:
		p.advance()
		return &FloatLiteral{Value: tok.Float, position: tok.Pos}
	case TokenString:
		p.advance()
		return &StringLiteral{Value: tok.Literal, position: tok.Pos}
	case TokenTrue, TokenFalse:
		p.advance()
		return &BoolLiteral{Value: tok.Type == TokenTrue, position: tok.Pos}
	case TokenNone:
		p.advance()
		return &NoneLiteral{position: tok.Pos}
	case TokenIdent:
		p.advance()
		switch {
		case p.check(TokenLParen):
			return p.parseCall(tok)
		case p.check(TokenLBracket):
			return p.parseIndex(tok)
		default:
			return &Identifier{Name: tok.Literal, position: tok.Pos}
		}
	case TokenLParen:
		p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if _, ok := p.expect(TokenRParen, "')' after expression"); !ok {
			return nil
		}
		return &GroupingExpr{Inner: inner, position: tok.Pos}
	case TokenLBracket:
		return p.parseListLiteral()
	case TokenIndent:
		p.addError(tok.Pos, "unexpected indent")
		return nil
	case TokenDedent:
		p.addError(tok.Pos, "unexpected dedent")
		return nil
	default:
		p.errorExpected(tok, "expression")
		return nil
	}
}

func (p *parser) parseCall(nameTok Token) Expression {
	p.advance()
	args := []Expression{}
	if !p.check(TokenRParen) {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if _, ok := p.expect(TokenRParen, "')' after arguments"); !ok {
		return nil
	}
	return &CallExpr{Name: nameTok.Literal, Args: args, position: nameTok.Pos}
}

func (p *parser) parseIndex(nameTok Token) Expression {
	p.advance()
	index := p.parseExpression()
	if index == nil {
		return nil
	}
	if _, ok := p.expect(TokenRBracket, "']' after index"); !ok {
		return nil
	}
	return &IndexExpr{Name: nameTok.Literal, Index: index, position: nameTok.Pos}
}

// parseListLiteral accepts an optional trailing comma.
func (p *parser) parseListLiteral() Expression {
	pos := p.advance().Pos
	elements := []Expression{}
	for !p.check(TokenRBracket) {
		el := p.parseExpression()
		if el == nil {
			return nil
		}
		elements = append(elements, el)
		if !p.match(TokenComma) {
			break
		}
	}
	if _, ok := p.expect(TokenRBracket, "']' after list elements"); !ok {
		return nil
	}
	return &ListLiteral{Elements: elements, position: pos}
}
