package evaluator

import (
	"github.com/adornlang/adorn/internal/ast"
)

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		if val.Type() == UNINITIALIZED {
			return newErrorWithLocation(node.Token.Line, node.Token.Column,
				"cannot access '%s' before initialization", node.Value)
		}
		return val
	}
	if builtin, ok := e.lookupBuiltin(node.Value); ok {
		return builtin
	}
	return newErrorWithLocation(node.Token.Line, node.Token.Column,
		"identifier not found: %s", node.Value)
}

func (e *Evaluator) evalThisExpression(node *ast.ThisExpression, env *Environment) Object {
	if val, ok := env.Get("this"); ok {
		return val
	}
	return newErrorWithLocation(node.Token.Line, node.Token.Column,
		"'this' is not bound here")
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *Environment) Object {
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Operator {
	case "!":
		return nativeBoolToBooleanObject(!isTruthy(right))
	case "-":
		switch right := right.(type) {
		case *Integer:
			return &Integer{Value: -right.Value}
		case *Float:
			return &Float{Value: -right.Value}
		}
		return newError("unknown operator: -%s", right.Type())
	}
	return newError("unknown operator: %s%s", node.Operator, right.Type())
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	// && and || short-circuit
	if node.Operator == "&&" || node.Operator == "||" {
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		if node.Operator == "&&" && !isTruthy(left) {
			return FALSE
		}
		if node.Operator == "||" && isTruthy(left) {
			return TRUE
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return nativeBoolToBooleanObject(isTruthy(right))
	}

	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	return e.evalBinaryOp(node.Operator, left, right)
}

func (e *Evaluator) evalBinaryOp(op string, left, right Object) Object {
	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfix(op, left.(*Integer), right.(*Integer))
	case isNumeric(left) && isNumeric(right):
		return evalFloatInfix(op, toFloat(left), toFloat(right))
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringInfix(op, left.(*String), right.(*String))
	case op == "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case op == "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	}
	return newError("type mismatch: %s %s %s", left.Type(), op, right.Type())
}

func evalIntegerInfix(op string, left, right *Integer) Object {
	switch op {
	case "+":
		return &Integer{Value: left.Value + right.Value}
	case "-":
		return &Integer{Value: left.Value - right.Value}
	case "*":
		return &Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: left.Value / right.Value}
	case "%":
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: left.Value % right.Value}
	case "<":
		return nativeBoolToBooleanObject(left.Value < right.Value)
	case ">":
		return nativeBoolToBooleanObject(left.Value > right.Value)
	case "<=":
		return nativeBoolToBooleanObject(left.Value <= right.Value)
	case ">=":
		return nativeBoolToBooleanObject(left.Value >= right.Value)
	case "==":
		return nativeBoolToBooleanObject(left.Value == right.Value)
	case "!=":
		return nativeBoolToBooleanObject(left.Value != right.Value)
	}
	return newError("unknown operator: INTEGER %s INTEGER", op)
}

func evalFloatInfix(op string, left, right float64) Object {
	switch op {
	case "+":
		return &Float{Value: left + right}
	case "-":
		return &Float{Value: left - right}
	case "*":
		return &Float{Value: left * right}
	case "/":
		if right == 0 {
			return newError("division by zero")
		}
		return &Float{Value: left / right}
	case "<":
		return nativeBoolToBooleanObject(left < right)
	case ">":
		return nativeBoolToBooleanObject(left > right)
	case "<=":
		return nativeBoolToBooleanObject(left <= right)
	case ">=":
		return nativeBoolToBooleanObject(left >= right)
	case "==":
		return nativeBoolToBooleanObject(left == right)
	case "!=":
		return nativeBoolToBooleanObject(left != right)
	}
	return newError("unknown operator: FLOAT %s FLOAT", op)
}

func evalStringInfix(op string, left, right *String) Object {
	switch op {
	case "+":
		return &String{Value: left.Value + right.Value}
	case "==":
		return nativeBoolToBooleanObject(left.Value == right.Value)
	case "!=":
		return nativeBoolToBooleanObject(left.Value != right.Value)
	case "<":
		return nativeBoolToBooleanObject(left.Value < right.Value)
	case ">":
		return nativeBoolToBooleanObject(left.Value > right.Value)
	}
	return newError("unknown operator: STRING %s STRING", op)
}

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *Environment) Object {
	condition := e.Eval(node.Condition, env)
	if isError(condition) {
		return condition
	}
	if isTruthy(condition) {
		return e.evalBlockStatement(node.Consequence, NewEnclosedEnvironment(env))
	}
	if node.Alternative != nil {
		return e.evalBlockStatement(node.Alternative, NewEnclosedEnvironment(env))
	}
	return &Nil{}
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	// Member calls bind `this` to the receiver.
	if member, ok := node.Function.(*ast.MemberExpression); ok {
		receiver := e.Eval(member.Object, env)
		if isError(receiver) {
			return receiver
		}
		fn := e.evalPropertyAccess(receiver, member.Property.Value, member.Token)
		if isError(fn) {
			return fn
		}
		args, errObj := e.evalExpressions(node.Arguments, env)
		if errObj != nil {
			return errObj
		}
		return e.applyFunction(fn, args, receiver)
	}

	fn := e.Eval(node.Function, env)
	if isError(fn) {
		return fn
	}
	args, errObj := e.evalExpressions(node.Arguments, env)
	if errObj != nil {
		return errObj
	}
	return e.applyFunction(fn, args, nil)
}

func (e *Evaluator) evalExpressions(exps []ast.Expression, env *Environment) ([]Object, Object) {
	result := make([]Object, 0, len(exps))
	for _, exp := range exps {
		evaluated := e.Eval(exp, env)
		if isError(evaluated) {
			return nil, evaluated
		}
		result = append(result, evaluated)
	}
	return result, nil
}

// applyFunction invokes a callable. this may be nil; when set it is
// bound in the call environment.
func (e *Evaluator) applyFunction(fn Object, args []Object, this Object) Object {
	switch fn := fn.(type) {
	case *Function:
		if len(args) > len(fn.Parameters) {
			args = args[:len(fn.Parameters)]
		}
		extended := NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Parameters {
			if i < len(args) {
				extended.Set(param.Value, args[i])
			} else {
				extended.Set(param.Value, &Nil{})
			}
		}
		if this != nil {
			extended.Set("this", this)
		}

		e.pushCall(fn)
		evaluated := e.evalBlockStatement(fn.Body, extended)
		e.popCall()

		if returnValue, ok := evaluated.(*ReturnValue); ok {
			return returnValue.Value
		}
		if isError(evaluated) {
			return evaluated
		}
		return &Nil{}

	case *Builtin:
		return fn.Fn(args...)
	}
	return newError("not a function: %s", fn.Type())
}

func (e *Evaluator) pushCall(fn *Function) {
	name := fn.Name
	if name == "" {
		name = "<anonymous>"
	}
	e.CallStack = append(e.CallStack, CallFrame{Name: name, Line: fn.Line, Column: fn.Column})
}

func (e *Evaluator) popCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *Environment) Object {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	return e.evalPropertyAccess(obj, node.Property.Value, node.Token)
}

func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	index := e.Eval(node.Index, env)
	if isError(index) {
		return index
	}

	switch left := left.(type) {
	case *Array:
		idx, ok := index.(*Integer)
		if !ok {
			return newError("array index must be INTEGER, got %s", index.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(left.Elements)) {
			return newError("array index out of range: %d", idx.Value)
		}
		return left.Elements[idx.Value]

	case *ObjectInstance:
		key, ok := index.(*String)
		if !ok {
			return newError("object key must be STRING, got %s", index.Type())
		}
		return e.evalPropertyAccess(left, key.Value, node.Token)

	case *Metadata:
		key, ok := index.(*String)
		if !ok {
			return newError("metadata key must be STRING, got %s", index.Type())
		}
		if val, found := left.Get(key.Value); found {
			return val
		}
		return &Nil{}

	case *String:
		idx, ok := index.(*Integer)
		if !ok {
			return newError("string index must be INTEGER, got %s", index.Type())
		}
		runes := []rune(left.Value)
		if idx.Value < 0 || idx.Value >= int64(len(runes)) {
			return newError("string index out of range: %d", idx.Value)
		}
		return &String{Value: string(runes[idx.Value])}
	}
	return newError("index operator not supported on %s", left.Type())
}

func (e *Evaluator) evalAssignExpression(node *ast.AssignExpression, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		found, allowed := env.Update(target.Value, val)
		if !found {
			return newErrorWithLocation(target.Token.Line, target.Token.Column,
				"cannot assign to undeclared identifier: %s", target.Value)
		}
		if !allowed {
			return newErrorWithLocation(target.Token.Line, target.Token.Column,
				"cannot assign to constant: %s", target.Value)
		}
		return val

	case *ast.MemberExpression:
		obj := e.Eval(target.Object, env)
		if isError(obj) {
			return obj
		}
		return e.evalPropertyAssign(obj, target.Property.Value, val, target.Token)

	case *ast.IndexExpression:
		left := e.Eval(target.Left, env)
		if isError(left) {
			return left
		}
		index := e.Eval(target.Index, env)
		if isError(index) {
			return index
		}
		switch container := left.(type) {
		case *Array:
			idx, ok := index.(*Integer)
			if !ok {
				return newError("array index must be INTEGER, got %s", index.Type())
			}
			if idx.Value < 0 || idx.Value >= int64(len(container.Elements)) {
				return newError("array index out of range: %d", idx.Value)
			}
			container.Elements[idx.Value] = val
			return val
		case *ObjectInstance:
			key, ok := index.(*String)
			if !ok {
				return newError("object key must be STRING, got %s", index.Type())
			}
			return e.evalPropertyAssign(container, key.Value, val, target.Token)
		case *Metadata:
			key, ok := index.(*String)
			if !ok {
				return newError("metadata key must be STRING, got %s", index.Type())
			}
			container.Set(key.Value, val)
			return val
		}
		return newError("index assignment not supported on %s", left.Type())
	}
	return newError("invalid assignment target")
}

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *Environment) Object {
	elements, errObj := e.evalExpressions(node.Elements, env)
	if errObj != nil {
		return errObj
	}
	return &Array{Elements: elements}
}
