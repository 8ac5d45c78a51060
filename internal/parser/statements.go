package parser

import (
	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/diagnostics"
	"github.com/adornlang/adorn/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET, token.CONST:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.FUNCTION:
		// A declaration only when a name follows; `function() {}` in
		// statement position is an expression statement.
		if p.peekTokenIs(token.IDENT) {
			return p.parseFunctionStatement(nil, p.curToken)
		}
		return p.parseExpressionStatement()
	case token.AT:
		return p.parseDecoratedStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken, Const: p.curTokenIs(token.CONST)}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if fl, ok := stmt.Value.(*ast.FunctionLiteral); ok && fl.Name == "" {
		fl.Name = stmt.Name.Value
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) ||
		p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseFunctionStatement parses `function name(params) { body }` with
// decorators (possibly nil) already consumed. The hoisting decision is
// made here, once: a decorated declaration is never hoisted.
func (p *Parser) parseFunctionStatement(decorators []*ast.Decorator, firstToken token.Token) ast.Statement {
	stmt := &ast.FunctionStatement{
		Token:      firstToken,
		Decorators: decorators,
		Hoisted:    len(decorators) == 0,
	}

	fnToken := p.curToken // the 'function' token

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	fl := p.parseFunctionRest(fnToken)
	if fl == nil {
		return nil
	}
	fl.Name = stmt.Name.Value
	stmt.Function = fl
	return stmt
}

// parseDecoratedStatement handles a statement-position decorator list.
// It may introduce a function declaration or a decorated function
// expression used as an expression statement.
func (p *Parser) parseDecoratedStatement() ast.Statement {
	firstToken := p.curToken
	decorators := p.parseDecoratorList()
	if decorators == nil {
		return nil
	}

	if p.curTokenIs(token.FUNCTION) && p.peekTokenIs(token.IDENT) {
		return p.parseFunctionStatement(decorators, firstToken)
	}

	// Only a function expression or arrow can follow; reporting this
	// before parseExpression keeps `@log let x = 1` from surfacing as
	// a prefix-parse failure on `let`.
	switch p.curToken.Type {
	case token.FUNCTION, token.IDENT, token.LPAREN:
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003,
			firstToken,
			"decorators may only be applied to functions, arrow functions and object-literal elements",
		))
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

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ExpressionStatement{Token: firstToken, Expression: fl}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACE) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001,
			p.curToken,
			"expected '}' to close block, got %s", p.curToken.Type,
		))
		return nil
	}
	return block
}
