package evaluator

import (
	"github.com/adornlang/adorn/internal/ast"
)

// The decorator application engine. A decorated declaration runs, in
// order: evaluate the decorator list (document order), build the
// context, fold the values over the initial target in reverse order,
// bind the final target, then flush registered initializers. An error
// at any step abandons the declaration: no partial binding is ever
// observed.

// reduction is the target state threaded through the fold. Each kind
// uses its slice of the fields: function/method/getter/setter thread
// target, accessor threads getter+setter+initChain, property threads
// initChain only.
type reduction struct {
	target    Object
	getter    Object
	setter    Object
	initChain []Object // mutators in application order; run first-to-last
}

// evalDecoratorList evaluates decorator expressions strictly left to
// right in env, the lexical environment enclosing the declaration (not
// the function body's own scope). Each value must be callable. The
// first failure aborts: later decorators are not evaluated.
func (e *Evaluator) evalDecoratorList(list []*ast.Decorator, env *Environment) ([]Object, Object) {
	values := make([]Object, 0, len(list))
	for _, d := range list {
		val := e.Eval(d.Expression, env)
		if isError(val) {
			return nil, val
		}
		if !isCallable(val) {
			tok := d.GetToken()
			return nil, newErrorWithLocation(tok.Line, tok.Column,
				"decorator expression evaluated to %s, expected a function", val.Type())
		}
		values = append(values, val)
	}
	return values, nil
}

// applyDecorators folds values over red in reverse of evaluation
// order: the last-evaluated (bottom-most written) decorator is applied
// first. Seals the initializer registry when the fold finishes, whether
// or not it succeeded.
func (e *Evaluator) applyDecorators(kind decoratorKind, values []Object, red *reduction, dc *decorationContext) Object {
	defer dc.registry.seal()

	for i := len(values) - 1; i >= 0; i-- {
		result := e.applyFunction(values[i], []Object{e.currentTarget(kind, red), dc.record}, nil)
		if isError(result) {
			return result
		}
		if errObj := e.absorbReturn(kind, result, red); errObj != nil {
			return errObj
		}
	}
	return nil
}

// currentTarget builds the first argument for the next decorator call.
func (e *Evaluator) currentTarget(kind decoratorKind, red *reduction) Object {
	switch kind {
	case kindObjectProperty:
		// Property decorators operate purely through the
		// initializer-mutator chain.
		return &Nil{}
	case kindObjectAccessor:
		pair := NewObjectInstance()
		pair.SetSlot("get", &Slot{Value: orNil(red.getter)})
		pair.SetSlot("set", &Slot{Value: orNil(red.setter)})
		return pair
	default:
		return red.target
	}
}

// absorbReturn validates one decorator's return value against the
// kind rules and folds it into red. nil return (the language's
// undefined) always means "leave unchanged".
func (e *Evaluator) absorbReturn(kind decoratorKind, result Object, red *reduction) Object {
	if result.Type() == NIL_OBJ {
		return nil
	}

	switch kind {
	case kindFunction, kindObjectMethod, kindObjectGetter, kindObjectSetter:
		if !isCallable(result) {
			return newError("ValidationError: %s decorator returned %s, expected a function or nil",
				e.kindString(kind), result.Type())
		}
		red.target = result
		return nil

	case kindObjectProperty:
		if !isCallable(result) {
			return newError("ValidationError: %s decorator returned %s, expected a function or nil",
				e.kindString(kind), result.Type())
		}
		red.initChain = append(red.initChain, result)
		return nil

	case kindObjectAccessor:
		rec, ok := result.(*ObjectInstance)
		if !ok {
			return newError("ValidationError: %s decorator returned %s, expected an object with optional get, set, init fields or nil",
				e.kindString(kind), result.Type())
		}
		if g, found := rec.Get("get"); found && g.Type() != NIL_OBJ {
			if !isCallable(g) {
				return newError("ValidationError: accessor decorator 'get' field is %s, expected a function", g.Type())
			}
			red.getter = g
		}
		if s, found := rec.Get("set"); found && s.Type() != NIL_OBJ {
			if !isCallable(s) {
				return newError("ValidationError: accessor decorator 'set' field is %s, expected a function", s.Type())
			}
			red.setter = s
		}
		if init, found := rec.Get("init"); found && init.Type() != NIL_OBJ {
			if !isCallable(init) {
				return newError("ValidationError: accessor decorator 'init' field is %s, expected a function", init.Type())
			}
			red.initChain = append(red.initChain, init)
		}
		return nil
	}

	return newError("ValidationError: unknown declaration kind")
}

// runInitChain resolves a property's or accessor's initial value by
// running the mutator chain in application order, first-applied
// innermost: for decorators @A @B over value v the result is A(B(v)).
func (e *Evaluator) runInitChain(chain []Object, initial Object, this Object) Object {
	value := initial
	for _, mutator := range chain {
		value = e.applyFunction(mutator, []Object{value}, this)
		if isError(value) {
			return value
		}
	}
	return value
}

// decorateFunction runs the full engine for a function declaration,
// function expression or arrow function. bind installs the final
// target into its declaration site before initializers flush; it may
// be nil for plain expressions, whose "binding" is producing the value.
// Returns the final target, or an error that leaves the site unbound.
func (e *Evaluator) decorateFunction(fn Object, decorators []*ast.Decorator, name string, env *Environment, bind func(Object)) Object {
	values, errObj := e.evalDecoratorList(decorators, env)
	if errObj != nil {
		return errObj
	}

	// Function-kind owner: a fresh container attached to the function
	// value on first decoration.
	meta := NewMetadata()
	if f, ok := fn.(*Function); ok {
		f.Metadata = meta
	}

	dc := e.buildContext(kindFunction, name, meta)
	red := &reduction{target: fn}
	if errObj := e.applyDecorators(kindFunction, values, red, dc); errObj != nil {
		return errObj
	}

	// A replacement function inherits the declaration's container so
	// reflection keys on the bound value.
	if f, ok := red.target.(*Function); ok && f.Metadata == nil {
		f.Metadata = meta
	}

	if bind != nil {
		bind(red.target)
	}
	if errObj := e.flushInitializers(dc.registry); errObj != nil {
		return errObj
	}
	return red.target
}

func orNil(obj Object) Object {
	if obj == nil {
		return &Nil{}
	}
	return obj
}
