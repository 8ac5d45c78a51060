package parser

import (
	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/diagnostics"
	"github.com/adornlang/adorn/internal/token"
)

// parseDecoratorList parses one or more @Expr entries in document
// order. On return curToken sits on the first token of the decorated
// construct.
func (p *Parser) parseDecoratorList() []*ast.Decorator {
	var list []*ast.Decorator

	for p.curTokenIs(token.AT) {
		atToken := p.curToken
		p.nextToken()
		expr := p.parseDecoratorExpression()
		if expr == nil {
			return nil
		}
		list = append(list, &ast.Decorator{Token: atToken, Expression: expr})
		p.nextToken()
		p.skipNewlines()
	}

	if len(list) == 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			"expected decorator after '@'",
		))
		return nil
	}
	return list
}

// parseDecoratorExpression restricts the post-'@' grammar to an
// identifier followed by member and call chains (`@dec`, `@ns.dec`,
// `@dec(arg)`). A '[' after the chain is never part of the decorator:
// it opens the decorated element's computed key.
func (p *Parser) parseDecoratorExpression() ast.Expression {
	if !p.curTokenIs(token.IDENT) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			"expected decorator after '@'",
		))
		return nil
	}

	var expr ast.Expression = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
	for p.peekTokenIs(token.DOT) || p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if p.curTokenIs(token.DOT) {
			expr = p.parseMemberExpression(expr)
		} else {
			expr = p.parseCallExpression(expr)
		}
		if expr == nil {
			return nil
		}
	}
	return expr
}

// parseDecoratedExpression handles '@' in expression position:
// a decorator list followed by a function expression or arrow function.
func (p *Parser) parseDecoratedExpression() ast.Expression {
	firstToken := p.curToken
	decorators := p.parseDecoratorList()
	if decorators == nil {
		return nil
	}

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	fl, ok := expr.(*ast.FunctionLiteral)
	if !ok {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003,
			firstToken,
			"decorators may only be applied to functions, arrow functions and object-literal elements",
		))
		return nil
	}
	fl.Decorators = append(decorators, fl.Decorators...)
	fl.Token = firstToken
	return fl
}

// parseFunctionLiteral parses `function [name](params) { body }` in
// expression position.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	fnToken := p.curToken

	name := ""
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		name = p.curToken.Literal.(string)
	}

	fl := p.parseFunctionRest(fnToken)
	if fl == nil {
		return nil
	}
	fl.Name = name
	return fl
}

// parseFunctionRest parses the parameter list and body; curToken is on
// the token right before '('.
func (p *Parser) parseFunctionRest(fnToken token.Token) *ast.FunctionLiteral {
	fl := &ast.FunctionLiteral{Token: fnToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseFunctionParameters()
	if params == nil {
		return nil
	}
	fl.Parameters = params

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fl.Body = p.parseBlockStatement()
	if fl.Body == nil {
		return nil
	}
	return fl
}

// parseFunctionParameters parses identifiers up to ')'; curToken is on
// the '('.
func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	params := []*ast.Identifier{}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.skipPeekNewlines()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)})
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

// parseArrowFunction parses `(params) => body`; curToken is on the '('
// and the lookahead already confirmed the arrow.
func (p *Parser) parseArrowFunction() ast.Expression {
	fl := &ast.FunctionLiteral{Token: p.curToken, IsArrow: true}

	params := p.parseFunctionParameters()
	if params == nil {
		return nil
	}
	fl.Parameters = params

	if !p.expectPeek(token.ARROW) {
		return nil
	}

	body := p.parseArrowBody()
	if body == nil {
		return nil
	}
	fl.Body = body
	return fl
}

// parseIdentArrowFunction handles `x => body`, reached as an infix on
// '=>' with a bare identifier on the left.
func (p *Parser) parseIdentArrowFunction(left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001,
			p.curToken,
			"expected parameter name before '=>'",
		))
		return nil
	}

	fl := &ast.FunctionLiteral{
		Token:      ident.Token,
		IsArrow:    true,
		Parameters: []*ast.Identifier{ident},
	}

	body := p.parseArrowBody()
	if body == nil {
		return nil
	}
	fl.Body = body
	return fl
}

// parseArrowBody parses either a block or a bare expression (which
// becomes an implicit return); curToken is on the '=>'.
func (p *Parser) parseArrowBody() *ast.BlockStatement {
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		return p.parseBlockStatement()
	}

	p.nextToken()
	p.skipNewlines()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.BlockStatement{
		Token: expr.GetToken(),
		Statements: []ast.Statement{
			&ast.ReturnStatement{Token: expr.GetToken(), ReturnValue: expr},
		},
	}
}
