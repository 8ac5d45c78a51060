package evaluator

import (
	"io"
	"os"

	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/config"
	"github.com/adornlang/adorn/internal/token"
)

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name   string
	Line   int
	Column int
}

type Evaluator struct {
	Out     io.Writer
	Options config.Options

	// CallStack for stack traces on errors
	CallStack []CallFrame
	// CurrentFile being evaluated
	CurrentFile string

	// evalDepth guards against runaway recursion in Eval
	evalDepth int

	builtins map[string]*Builtin
}

func New() *Evaluator {
	return &Evaluator{
		Out:     os.Stdout,
		Options: config.Default(),
	}
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > config.MaxRecursionDepth {
		var tok token.Token
		if tp, ok := node.(ast.TokenProvider); ok {
			tok = tp.GetToken()
		}
		return e.newErrorWithStack(tok.Line, tok.Column,
			"stack overflow: maximum recursion depth exceeded")
	}

	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.LetStatement:
		return e.evalLetStatement(node, env)
	case *ast.FunctionStatement:
		return e.evalFunctionStatement(node, env)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(node, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, NewEnclosedEnvironment(env))

	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.NilLiteral:
		return &Nil{}
	case *ast.ThisExpression:
		return e.evalThisExpression(node, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, env)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, env)
	case *ast.AssignExpression:
		return e.evalAssignExpression(node, env)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(node, env)
	case *ast.FunctionLiteral:
		return e.evalFunctionLiteral(node, env)
	}

	return newError("unhandled AST node %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	e.hoistFunctions(program.Statements, env)

	var result Object = &Nil{}
	for _, statement := range program.Statements {
		result = e.Eval(statement, env)
		switch result := result.(type) {
		case *ReturnValue:
			return result.Value
		case *Error:
			return result
		}
	}
	return result
}

func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	e.hoistFunctions(block.Statements, env)

	var result Object = &Nil{}
	for _, statement := range block.Statements {
		result = e.Eval(statement, env)
		if result != nil {
			rt := result.Type()
			if rt == RETURN_VALUE_OBJ || rt == ERROR_OBJ {
				return result
			}
		}
	}
	return result
}

// hoistFunctions is the binding-side half of the hoisting policy. The
// parser decides the Hoisted flag once; here an undecorated function
// declaration gets its value before the block body runs, while a
// decorated one only gets an uninitialized binding, assigned when
// control reaches its textual position.
func (e *Evaluator) hoistFunctions(stmts []ast.Statement, env *Environment) {
	for _, s := range stmts {
		fs, ok := s.(*ast.FunctionStatement)
		if !ok {
			continue
		}
		if fs.Hoisted {
			env.Set(fs.Name.Value, e.newFunction(fs.Function, env))
		} else {
			env.Declare(fs.Name.Value)
		}
	}
}

func (e *Evaluator) evalLetStatement(node *ast.LetStatement, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	if node.Const {
		env.SetConst(node.Name.Value, val)
	} else {
		env.Set(node.Name.Value, val)
	}
	return &Nil{}
}

// evalFunctionStatement handles the declaration's textual position.
// Hoisted declarations were bound up front and are a no-op here.
// Deferred (decorated) ones run the decorator engine now and only then
// assign the binding; on error the name stays uninitialized.
func (e *Evaluator) evalFunctionStatement(node *ast.FunctionStatement, env *Environment) Object {
	if node.Hoisted {
		return &Nil{}
	}

	fn := e.newFunction(node.Function, env)
	result := e.decorateFunction(fn, node.Decorators, node.Name.Value, env, func(final Object) {
		env.Set(node.Name.Value, final)
	})
	if isError(result) {
		return result
	}
	return &Nil{}
}

func (e *Evaluator) evalReturnStatement(node *ast.ReturnStatement, env *Environment) Object {
	if node.ReturnValue == nil {
		return &ReturnValue{Value: &Nil{}}
	}
	val := e.Eval(node.ReturnValue, env)
	if isError(val) {
		return val
	}
	return &ReturnValue{Value: val}
}

func (e *Evaluator) newFunction(fl *ast.FunctionLiteral, env *Environment) *Function {
	return &Function{
		Name:       fl.Name,
		Parameters: fl.Parameters,
		Body:       fl.Body,
		Env:        env,
		Line:       fl.Token.Line,
		Column:     fl.Token.Column,
	}
}

// evalFunctionLiteral covers function expressions and arrows. A
// decorated one runs the engine immediately; producing the final value
// is its binding.
func (e *Evaluator) evalFunctionLiteral(fl *ast.FunctionLiteral, env *Environment) Object {
	fn := e.newFunction(fl, env)
	if len(fl.Decorators) == 0 {
		return fn
	}
	return e.decorateFunction(fn, fl.Decorators, fl.Name, env, nil)
}
