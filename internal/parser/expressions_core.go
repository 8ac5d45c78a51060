package parser

import (
	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/diagnostics"
	"github.com/adornlang/adorn/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		if !p.inRecursionRecovery {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP005,
				p.curToken,
				"expression too complex: recursion depth limit exceeded",
			))
			p.inRecursionRecovery = true
		}
		// Skip the rest of the statement to avoid a cascade of errors.
		p.skipToStatementBoundary()
		p.inRecursionRecovery = false
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(token.NEWLINE) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{Token: p.curToken, Value: p.curToken.Literal.(float64)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	p.skipNewlines()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseGroupedOrArrow disambiguates `(expr)` from `(params) => body`
// by scanning ahead for `=>` after the matching close paren.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if p.parenStartsArrow() {
		return p.parseArrowFunction()
	}

	p.nextToken()
	p.skipNewlines()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	p.skipPeekNewlines()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parenStartsArrow reports whether the '(' under curToken opens an
// arrow-function parameter list. The token after its matching ')' must
// be '=>'.
func (p *Parser) parenStartsArrow() bool {
	// The first unseen token is peekToken; the stream starts after it.
	depth := 1
	if p.peekTokenIs(token.RPAREN) {
		toks := p.stream.Peek(1)
		return len(toks) == 1 && toks[0].Type == token.ARROW
	}
	if p.peekTokenIs(token.LPAREN) {
		depth++
	}

	for n := 1; n <= 256; n += 16 {
		toks := p.stream.Peek(n)
		d := depth
		for i, tok := range toks {
			switch tok.Type {
			case token.LPAREN:
				d++
			case token.RPAREN:
				d--
				if d == 0 {
					if i+1 < len(toks) {
						return toks[i+1].Type == token.ARROW
					}
					more := p.stream.Peek(i + 2)
					return len(more) > i+1 && more[i+1].Type == token.ARROW
				}
			case token.EOF:
				return false
			}
		}
		if len(toks) < n {
			return false
		}
	}
	return false
}

func (p *Parser) parseIfExpression() ast.Expression {
	expression := &ast.IfExpression{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expression.Condition = p.parseExpression(LOWEST)
	if expression.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expression.Consequence = p.parseBlockStatement()
	if expression.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		expression.Alternative = p.parseBlockStatement()
		if expression.Alternative == nil {
			return nil
		}
	}

	return expression
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}
	exp.Arguments = p.parseExpressionList(token.RPAREN)
	if exp.Arguments == nil {
		return nil
	}
	return exp
}

// parseExpressionList parses a comma separated list up to end, starting
// with curToken on the opening delimiter.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	p.skipPeekNewlines()
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	p.skipNewlines()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list = append(list, first)

	for {
		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume ','
		p.nextToken()
		p.skipNewlines()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		list = append(list, elem)
	}

	p.skipPeekNewlines()
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	p.skipNewlines()
	exp.Index = p.parseExpression(LOWEST)
	if exp.Index == nil {
		return nil
	}
	p.skipPeekNewlines()
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return exp
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	exp := &ast.MemberExpression{Token: p.curToken, Object: object}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	exp.Property = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
	return exp
}

func (p *Parser) parseAssignExpression(target ast.Expression) ast.Expression {
	switch target.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001,
			p.curToken,
			"invalid assignment target",
		))
		return nil
	}

	exp := &ast.AssignExpression{Token: p.curToken, Target: target}
	p.nextToken()
	p.skipNewlines()
	// Right-associative: a = b = c
	exp.Value = p.parseExpression(ASSIGN - 1)
	if exp.Value == nil {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	array := &ast.ArrayLiteral{Token: p.curToken}
	array.Elements = p.parseExpressionList(token.RBRACKET)
	if array.Elements == nil {
		return nil
	}
	return array
}
