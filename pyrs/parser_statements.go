package pyrs

func (p *parser) parseStatement() Statement {
	switch p.peek().Type {
	case TokenPrint:
		return p.parsePrintStatement()
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenDef:
		return p.parseFunctionStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenIdent:
		return p.parseAssignOrExpressionStatement()
	case TokenIndent:
		p.addError(p.peek().Pos, "unexpected indent")
		return nil
	case TokenDedent:
		p.addError(p.advance().Pos, "unexpected dedent")
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

// expectEnd requires the newline that terminates a simple statement.
func (p *parser) expectEnd() bool {
	if p.match(TokenEndOfLine) || p.check(TokenEOF) {
		return true
	}
	p.errorExpected(p.peek(), "newline after statement")
	return false
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.advance().Pos
	if _, ok := p.expect(TokenLParen, "'(' after 'print'"); !ok {
		return nil
	}
	var value Expression
	if !p.check(TokenRParen) {
		value = p.parseExpression()
		if value == nil {
			return nil
		}
	}
	if _, ok := p.expect(TokenRParen, "')' after print argument"); !ok {
		return nil
	}
	if !p.expectEnd() {
		return nil
	}
	return &PrintStmt{Value: value, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.advance().Pos
	condition := p.parseExpression()
	if condition == nil {
		return nil
	}
	if _, ok := p.expect(TokenColon, "':' after if condition"); !ok {
		return nil
	}
	consequent := p.parseBlock("'if' statement")
	if consequent == nil {
		return nil
	}

	stmt := &IfStmt{Condition: condition, Consequent: consequent, position: pos}
	if p.match(TokenElse) {
		if _, ok := p.expect(TokenColon, "':' after 'else'"); !ok {
			return nil
		}
		alternate := p.parseBlock("'else'")
		if alternate == nil {
			return nil
		}
		stmt.Alternate = alternate
	}
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.advance().Pos
	condition := p.parseExpression()
	if condition == nil {
		return nil
	}
	if _, ok := p.expect(TokenColon, "':' after while condition"); !ok {
		return nil
	}
	body := p.parseBlock("'while' statement")
	if body == nil {
		return nil
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

func (p *parser) parseFunctionStatement() Statement {
	pos := p.advance().Pos
	nameTok, ok := p.expect(TokenIdent, "function name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(TokenLParen, "'(' after function name"); !ok {
		return nil
	}

	params := []string{}
	seen := make(map[string]struct{})
	if !p.check(TokenRParen) {
		for {
			paramTok, ok := p.expect(TokenIdent, "parameter name")
			if !ok {
				return nil
			}
			if _, dup := seen[paramTok.Literal]; dup {
				p.addError(paramTok.Pos, "duplicate argument '%s' in function definition", paramTok.Literal)
				return nil
			}
			seen[paramTok.Literal] = struct{}{}
			params = append(params, paramTok.Literal)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if _, ok := p.expect(TokenRParen, "')' after parameters"); !ok {
		return nil
	}
	if _, ok := p.expect(TokenColon, "':' after function signature"); !ok {
		return nil
	}
	body := p.parseBlock("function definition")
	if body == nil {
		return nil
	}
	return &FunctionStmt{Name: nameTok.Literal, Params: params, Body: body, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.advance().Pos
	var value Expression
	if !p.check(TokenEndOfLine, TokenEOF) {
		value = p.parseExpression()
		if value == nil {
			return nil
		}
	}
	if !p.expectEnd() {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

// parseAssignOrExpressionStatement commits to an assignment once '=' is seen
// after `name` or `name[index]`, and otherwise rewinds to parse an
// expression statement from the identifier.
func (p *parser) parseAssignOrExpressionStatement() Statement {
	nameTok := p.peek()

	if p.peekAt(1).Type == TokenAssign {
		p.advance()
		p.advance()
		value := p.parseExpression()
		if value == nil || !p.expectEnd() {
			return nil
		}
		return &AssignStmt{Name: nameTok.Literal, Value: value, position: nameTok.Pos}
	}

	if p.peekAt(1).Type == TokenLBracket {
		save, saveErrors := p.current, len(p.errors)
		p.advance()
		p.advance()
		index := p.parseExpression()
		if index != nil && p.match(TokenRBracket) && p.match(TokenAssign) {
			value := p.parseExpression()
			if value == nil || !p.expectEnd() {
				return nil
			}
			return &ListAssignStmt{Name: nameTok.Literal, Index: index, Value: value, position: nameTok.Pos}
		}
		p.current = save
		p.errors = p.errors[:saveErrors]
	}

	return p.parseExpressionStatement()
}

func (p *parser) parseExpressionStatement() Statement {
	pos := p.peek().Pos
	expr := p.parseExpression()
	if expr == nil || !p.expectEnd() {
		return nil
	}
	return &ExprStmt{Expr: expr, position: pos}
}

// parseBlock parses `EOL Indent statement* Dedent`. It returns nil only when
// the block structure itself is missing; diagnostics inside the block are
// recorded and the remaining statements still parsed.
func (p *parser) parseBlock(owner string) []Statement {
	if _, ok := p.expect(TokenEndOfLine, "newline after ':'"); !ok {
		return nil
	}
	if !p.check(TokenIndent) {
		p.addError(p.peek().Pos, "expected an indented block after %s", owner)
		return nil
	}
	p.advance()

	stmts := []Statement{}
	for !p.check(TokenDedent, TokenEOF) {
		if p.match(TokenEndOfLine) {
			continue
		}
		start := p.current
		stmt := p.parseStatement()
		if stmt == nil {
			p.recover(start)
			continue
		}
		stmts = append(stmts, stmt)
	}
	p.match(TokenDedent)
	return stmts
}
