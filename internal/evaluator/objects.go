package evaluator

import (
	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/token"
)

// evalObjectLiteral constructs an object instance, running the
// decorator engine for every decorated element. All decorated elements
// of one literal share a single metadata container, created lazily and
// installed on the instance once construction completes. Each element
// is one declaration: its decorators evaluate, apply, bind and flush
// before the next element is considered.
func (e *Evaluator) evalObjectLiteral(node *ast.ObjectLiteral, env *Environment) Object {
	obj := NewObjectInstance()
	var shared *Metadata

	for _, prop := range node.Properties {
		key, errObj := e.resolvePropertyKey(prop, env)
		if errObj != nil {
			return errObj
		}

		if len(prop.Decorators) == 0 {
			if errObj := e.bindPlainElement(obj, prop, key, env); errObj != nil {
				return errObj
			}
			continue
		}

		if shared == nil {
			shared = NewMetadata()
		}
		if errObj := e.decorateObjectElement(obj, prop, key, shared, env); errObj != nil {
			return errObj
		}
	}

	obj.Metadata = shared
	return obj
}

// resolvePropertyKey evaluates the element's key exactly once, before
// any of its decorators run. Computed keys must yield a string.
func (e *Evaluator) resolvePropertyKey(prop *ast.ObjectProperty, env *Environment) (string, Object) {
	if !prop.Computed {
		switch key := prop.Key.(type) {
		case *ast.Identifier:
			return key.Value, nil
		case *ast.StringLiteral:
			return key.Value, nil
		}
		return "", newError("unsupported property key %T", prop.Key)
	}

	val := e.Eval(prop.Key, env)
	if isError(val) {
		return "", val
	}
	str, ok := val.(*String)
	if !ok {
		tok := prop.GetToken()
		return "", newErrorWithLocation(tok.Line, tok.Column,
			"computed property key must be STRING, got %s", val.Type())
	}
	return str.Value, nil
}

// bindPlainElement installs an undecorated element.
func (e *Evaluator) bindPlainElement(obj *ObjectInstance, prop *ast.ObjectProperty, key string, env *Environment) Object {
	switch prop.Kind {
	case ast.PropertyPlain:
		val := e.Eval(prop.Value, env)
		if isError(val) {
			return val
		}
		obj.SetSlot(key, &Slot{Kind: SlotValue, Value: val})

	case ast.PropertyMethod:
		obj.SetSlot(key, &Slot{Kind: SlotValue, Value: e.newFunction(prop.Function, env)})

	case ast.PropertyGetter:
		slot := obj.accessorSlot(key)
		slot.Getter = e.newFunction(prop.Function, env)

	case ast.PropertySetter:
		slot := obj.accessorSlot(key)
		slot.Setter = e.newFunction(prop.Function, env)

	case ast.PropertyAccessor:
		initial := Object(&Nil{})
		if prop.Value != nil {
			initial = e.Eval(prop.Value, env)
			if isError(initial) {
				return initial
			}
		}
		getter, setter := newBackedAccessor(key, initial)
		obj.SetSlot(key, &Slot{Kind: SlotAccessor, Getter: getter, Setter: setter})
	}
	return nil
}

// decorateObjectElement runs the engine for one decorated element.
func (e *Evaluator) decorateObjectElement(obj *ObjectInstance, prop *ast.ObjectProperty, key string, shared *Metadata, env *Environment) Object {
	values, errObj := e.evalDecoratorList(prop.Decorators, env)
	if errObj != nil {
		return errObj
	}

	kind := elementKind(prop.Kind)
	dc := e.buildContext(kind, key, shared)

	switch kind {
	case kindObjectMethod:
		fn := e.newFunction(prop.Function, env)
		if dc.functionMeta != nil {
			fn.Metadata = dc.functionMeta
		}
		red := &reduction{target: fn}
		if errObj := e.applyDecorators(kind, values, red, dc); errObj != nil {
			return errObj
		}
		adoptFunctionMetadata(red.target, dc.functionMeta)
		obj.SetSlot(key, &Slot{Kind: SlotValue, Value: red.target})

	case kindObjectGetter:
		fn := e.newFunction(prop.Function, env)
		if dc.functionMeta != nil {
			fn.Metadata = dc.functionMeta
		}
		red := &reduction{target: fn}
		if errObj := e.applyDecorators(kind, values, red, dc); errObj != nil {
			return errObj
		}
		adoptFunctionMetadata(red.target, dc.functionMeta)
		slot := obj.accessorSlot(key)
		slot.Getter = red.target

	case kindObjectSetter:
		fn := e.newFunction(prop.Function, env)
		if dc.functionMeta != nil {
			fn.Metadata = dc.functionMeta
		}
		red := &reduction{target: fn}
		if errObj := e.applyDecorators(kind, values, red, dc); errObj != nil {
			return errObj
		}
		adoptFunctionMetadata(red.target, dc.functionMeta)
		slot := obj.accessorSlot(key)
		slot.Setter = red.target

	case kindObjectProperty:
		red := &reduction{}
		if errObj := e.applyDecorators(kind, values, red, dc); errObj != nil {
			return errObj
		}
		initial := Object(&Nil{})
		if prop.Value != nil {
			initial = e.Eval(prop.Value, env)
			if isError(initial) {
				return initial
			}
		}
		final := e.runInitChain(red.initChain, initial, obj)
		if isError(final) {
			return final
		}
		obj.SetSlot(key, &Slot{Kind: SlotValue, Value: final})

	case kindObjectAccessor:
		// The backing cell is written after the mutator chain resolves
		// the initial value; a replaced setter never sees it.
		cell := &backingCell{value: &Nil{}}
		getter, setter := cell.accessors(key)
		red := &reduction{getter: getter, setter: setter}
		if errObj := e.applyDecorators(kind, values, red, dc); errObj != nil {
			return errObj
		}
		initial := Object(&Nil{})
		if prop.Value != nil {
			initial = e.Eval(prop.Value, env)
			if isError(initial) {
				return initial
			}
		}
		final := e.runInitChain(red.initChain, initial, obj)
		if isError(final) {
			return final
		}
		cell.value = final
		adoptFunctionMetadata(red.getter, dc.accessorMeta.get)
		adoptFunctionMetadata(red.setter, dc.accessorMeta.set)
		obj.SetSlot(key, &Slot{Kind: SlotAccessor, Getter: red.getter, Setter: red.setter})
	}

	return e.flushInitializers(dc.registry)
}

func elementKind(k ast.PropertyKind) decoratorKind {
	switch k {
	case ast.PropertyMethod:
		return kindObjectMethod
	case ast.PropertyGetter:
		return kindObjectGetter
	case ast.PropertySetter:
		return kindObjectSetter
	case ast.PropertyAccessor:
		return kindObjectAccessor
	}
	return kindObjectProperty
}

// adoptFunctionMetadata attaches a per-function container to the final
// bound function when the option is enabled. Builtin replacements have
// nowhere to carry it and are skipped.
func adoptFunctionMetadata(target Object, meta *Metadata) {
	if meta == nil {
		return
	}
	if f, ok := target.(*Function); ok && f.Metadata == nil {
		f.Metadata = meta
	}
}

// accessorSlot returns the existing accessor slot for key, converting
// or creating as needed so `get x` and `set x` elements merge.
func (o *ObjectInstance) accessorSlot(key string) *Slot {
	if slot, ok := o.Slots[key]; ok && slot.Kind == SlotAccessor {
		return slot
	}
	slot := &Slot{Kind: SlotAccessor}
	o.SetSlot(key, slot)
	return slot
}

// backingCell is the private storage behind an auto-accessor.
type backingCell struct {
	value Object
}

func (c *backingCell) accessors(name string) (Object, Object) {
	getter := &Builtin{
		Name: "get " + name,
		Fn: func(args ...Object) Object {
			return c.value
		},
	}
	setter := &Builtin{
		Name: "set " + name,
		Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("setter expects one argument, got %d", len(args))
			}
			c.value = args[0]
			return &Nil{}
		},
	}
	return getter, setter
}

func newBackedAccessor(name string, initial Object) (Object, Object) {
	cell := &backingCell{value: initial}
	return cell.accessors(name)
}

// evalPropertyAccess reads obj.name, invoking getters through the
// receiver. Missing properties read as nil.
func (e *Evaluator) evalPropertyAccess(obj Object, name string, tok token.Token) Object {
	switch obj := obj.(type) {
	case *ObjectInstance:
		slot, ok := obj.Slots[name]
		if !ok {
			return &Nil{}
		}
		if slot.Kind == SlotAccessor {
			if slot.Getter == nil {
				return newErrorWithLocation(tok.Line, tok.Column,
					"property '%s' has no getter", name)
			}
			return e.applyFunction(slot.Getter, nil, obj)
		}
		return slot.Value

	case *Metadata:
		if val, found := obj.Get(name); found {
			return val
		}
		return &Nil{}

	case *Array:
		if name == "length" {
			return &Integer{Value: int64(len(obj.Elements))}
		}
		return newErrorWithLocation(tok.Line, tok.Column,
			"unknown array property: %s", name)

	case *String:
		if name == "length" {
			return &Integer{Value: int64(len([]rune(obj.Value)))}
		}
		return newErrorWithLocation(tok.Line, tok.Column,
			"unknown string property: %s", name)
	}
	return newErrorWithLocation(tok.Line, tok.Column,
		"property access not supported on %s", obj.Type())
}

// evalPropertyAssign writes obj.name, invoking setters through the
// receiver. Assignment to a missing property creates it.
func (e *Evaluator) evalPropertyAssign(obj Object, name string, val Object, tok token.Token) Object {
	switch obj := obj.(type) {
	case *ObjectInstance:
		slot, ok := obj.Slots[name]
		if ok && slot.Kind == SlotAccessor {
			if slot.Setter == nil {
				return newErrorWithLocation(tok.Line, tok.Column,
					"property '%s' has no setter", name)
			}
			result := e.applyFunction(slot.Setter, []Object{val}, obj)
			if isError(result) {
				return result
			}
			return val
		}
		obj.SetSlot(name, &Slot{Kind: SlotValue, Value: val})
		return val

	case *Metadata:
		obj.Set(name, val)
		return val
	}
	return newErrorWithLocation(tok.Line, tok.Column,
		"property assignment not supported on %s", obj.Type())
}
