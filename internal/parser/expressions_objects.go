package parser

import (
	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/diagnostics"
	"github.com/adornlang/adorn/internal/token"
)

// parseObjectLiteral parses { element, element, ... } with optional
// decorator lists on every element.
func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return obj
	}

	for {
		p.nextToken()
		p.skipNewlines()

		prop := p.parseObjectProperty()
		if prop == nil {
			return nil
		}
		obj.Properties = append(obj.Properties, prop)

		p.skipPeekNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.skipPeekNewlines()
			// Trailing comma
			if p.peekTokenIs(token.RBRACE) {
				p.nextToken()
				return obj
			}
			continue
		}
		break
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return obj
}

func (p *Parser) parseObjectProperty() *ast.ObjectProperty {
	prop := &ast.ObjectProperty{Token: p.curToken}

	if p.curTokenIs(token.AT) {
		prop.Decorators = p.parseDecoratorList()
		if prop.Decorators == nil {
			return nil
		}
	}

	// Contextual get / set / accessor: only when a key follows.
	if p.curTokenIs(token.IDENT) && p.keyFollows() {
		switch p.curToken.Literal.(string) {
		case token.ContextualGet:
			return p.parseGetterProperty(prop)
		case token.ContextualSet:
			return p.parseSetterProperty(prop)
		case token.ContextualAccessor:
			return p.parseAccessorProperty(prop)
		}
	}

	key, computed, ok := p.parsePropertyKey()
	if !ok {
		return nil
	}
	prop.Key = key
	prop.Computed = computed

	switch {
	case p.peekTokenIs(token.LPAREN):
		// Method shorthand: key(params) { body }
		prop.Kind = ast.PropertyMethod
		fl := p.parseFunctionRest(p.curToken)
		if fl == nil {
			return nil
		}
		fl.Name = keyName(key, computed)
		prop.Function = fl

	case p.peekTokenIs(token.COLON):
		prop.Kind = ast.PropertyPlain
		p.nextToken() // ':'
		p.nextToken()
		p.skipNewlines()
		prop.Value = p.parseExpression(LOWEST)
		if prop.Value == nil {
			return nil
		}
		if fl, ok := prop.Value.(*ast.FunctionLiteral); ok && fl.Name == "" {
			fl.Name = keyName(key, computed)
		}

	default:
		// Shorthand: bare identifier key
		if computed {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004,
				p.curToken,
				"computed property key requires a value",
			))
			return nil
		}
		if _, isIdent := key.(*ast.Identifier); !isIdent {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004,
				p.curToken,
				"shorthand property requires an identifier key",
			))
			return nil
		}
		prop.Kind = ast.PropertyPlain
		prop.Shorthand = true
		prop.Value = key
	}

	return prop
}

// keyFollows reports whether peekToken can start a property key, which
// makes the current `get`/`set`/`accessor` identifier contextual.
func (p *Parser) keyFollows() bool {
	switch p.peekToken.Type {
	case token.IDENT, token.STRING, token.LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parsePropertyKey() (ast.Expression, bool, bool) {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}, false, true
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}, false, true
	case token.LBRACKET:
		p.nextToken()
		p.skipNewlines()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil, false, false
		}
		p.skipPeekNewlines()
		if !p.expectPeek(token.RBRACKET) {
			return nil, false, false
		}
		return expr, true, true
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004,
			p.curToken,
			"expected property key, got %s", p.curToken.Type,
		))
		return nil, false, false
	}
}

func (p *Parser) parseGetterProperty(prop *ast.ObjectProperty) *ast.ObjectProperty {
	getToken := p.curToken
	p.nextToken()

	key, computed, ok := p.parsePropertyKey()
	if !ok {
		return nil
	}
	prop.Kind = ast.PropertyGetter
	prop.Key = key
	prop.Computed = computed

	fl := p.parseFunctionRest(getToken)
	if fl == nil {
		return nil
	}
	if len(fl.Parameters) != 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004,
			getToken,
			"getter must not declare parameters",
		))
		return nil
	}
	fl.Name = keyName(key, computed)
	prop.Function = fl
	return prop
}

func (p *Parser) parseSetterProperty(prop *ast.ObjectProperty) *ast.ObjectProperty {
	setToken := p.curToken
	p.nextToken()

	key, computed, ok := p.parsePropertyKey()
	if !ok {
		return nil
	}
	prop.Kind = ast.PropertySetter
	prop.Key = key
	prop.Computed = computed

	fl := p.parseFunctionRest(setToken)
	if fl == nil {
		return nil
	}
	if len(fl.Parameters) != 1 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004,
			setToken,
			"setter must declare exactly one parameter",
		))
		return nil
	}
	fl.Name = keyName(key, computed)
	prop.Function = fl
	return prop
}

func (p *Parser) parseAccessorProperty(prop *ast.ObjectProperty) *ast.ObjectProperty {
	p.nextToken()

	key, computed, ok := p.parsePropertyKey()
	if !ok {
		return nil
	}
	prop.Kind = ast.PropertyAccessor
	prop.Key = key
	prop.Computed = computed

	if p.peekTokenIs(token.COLON) {
		p.nextToken() // ':'
		p.nextToken()
		p.skipNewlines()
		prop.Value = p.parseExpression(LOWEST)
		if prop.Value == nil {
			return nil
		}
	}
	return prop
}

func keyName(key ast.Expression, computed bool) string {
	if computed {
		return ""
	}
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Value
	case *ast.StringLiteral:
		return k.Value
	}
	return ""
}
