package ast

import (
	"strings"

	"github.com/adornlang/adorn/internal/token"
)

// Decorator is one @Expr entry of a decorator list. Expression is any
// unary-call chain the grammar permits after '@' (identifier, member
// access, decorator-factory call).
type Decorator struct {
	Token      token.Token // the '@' token
	Expression Expression
}

func (d *Decorator) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}
func (d *Decorator) String() string { return "@" + d.Expression.String() }

// FunctionLiteral represents function expressions and arrow functions.
// Name is set for named function expressions and declarations; it is
// the name reported through decorator contexts.
type FunctionLiteral struct {
	Token      token.Token // 'function' token, arrow params '(' or first '@'
	Name       string
	Parameters []*Identifier
	Body       *BlockStatement
	Decorators []*Decorator
	IsArrow    bool
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}
func (fl *FunctionLiteral) String() string {
	var out strings.Builder
	for _, d := range fl.Decorators {
		out.WriteString(d.String() + " ")
	}
	if fl.IsArrow {
		out.WriteString(paramList(fl.Parameters) + " => " + fl.Body.String())
		return out.String()
	}
	out.WriteString("function")
	if fl.Name != "" {
		out.WriteString(" " + fl.Name)
	}
	out.WriteString(paramList(fl.Parameters) + " " + fl.Body.String())
	return out.String()
}

// PropertyKind tags the closed set of object-literal element forms.
type PropertyKind int

const (
	PropertyPlain PropertyKind = iota
	PropertyMethod
	PropertyGetter
	PropertySetter
	PropertyAccessor
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyPlain:
		return "property"
	case PropertyMethod:
		return "method"
	case PropertyGetter:
		return "getter"
	case PropertySetter:
		return "setter"
	case PropertyAccessor:
		return "accessor"
	}
	return "unknown"
}

// ObjectProperty is one element of an object literal.
//
// Plain:     k: v          (Value set; Shorthand for bare `k`)
// Method:    m(a) { ... }  (Function set)
// Getter:    get p() {}    (Function set)
// Setter:    set p(v) {}   (Function set)
// Accessor:  accessor p: v (Value optional)
//
// A computed key `[expr]: v` carries the key expression in Key with
// Computed true; it is evaluated exactly once, before any decorator
// of the element runs.
type ObjectProperty struct {
	Token      token.Token
	Kind       PropertyKind
	Decorators []*Decorator
	Key        Expression
	Computed   bool
	Shorthand  bool
	Value      Expression       // plain / accessor initializer
	Function   *FunctionLiteral // method / getter / setter body
}

func (op *ObjectProperty) GetToken() token.Token {
	if op == nil {
		return token.Token{}
	}
	return op.Token
}

func (op *ObjectProperty) String() string {
	var out strings.Builder
	for _, d := range op.Decorators {
		out.WriteString(d.String() + " ")
	}
	key := op.Key.String()
	if op.Computed {
		key = "[" + key + "]"
	}
	switch op.Kind {
	case PropertyMethod:
		out.WriteString(key + paramList(op.Function.Parameters) + " " + op.Function.Body.String())
	case PropertyGetter:
		out.WriteString("get " + key + "() " + op.Function.Body.String())
	case PropertySetter:
		out.WriteString("set " + key + paramList(op.Function.Parameters) + " " + op.Function.Body.String())
	case PropertyAccessor:
		out.WriteString("accessor " + key)
		if op.Value != nil {
			out.WriteString(": " + op.Value.String())
		}
	default:
		if op.Shorthand {
			out.WriteString(key)
		} else {
			out.WriteString(key + ": " + op.Value.String())
		}
	}
	return out.String()
}

// ObjectLiteral represents { ...elements... }.
type ObjectLiteral struct {
	Token      token.Token // the '{' token
	Properties []*ObjectProperty
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Lexeme }
func (ol *ObjectLiteral) GetToken() token.Token {
	if ol == nil {
		return token.Token{}
	}
	return ol.Token
}
func (ol *ObjectLiteral) String() string {
	props := make([]string, len(ol.Properties))
	for i, p := range ol.Properties {
		props[i] = p.String()
	}
	return "{" + strings.Join(props, ", ") + "}"
}
