package evaluator

import (
	"fmt"
	"strings"

	"github.com/adornlang/adorn/internal/config"
)

func (e *Evaluator) lookupBuiltin(name string) (*Builtin, bool) {
	if e.builtins == nil {
		e.builtins = e.makeBuiltins()
	}
	b, ok := e.builtins[name]
	return b, ok
}

func (e *Evaluator) makeBuiltins() map[string]*Builtin {
	m := map[string]*Builtin{}
	register := func(name string, fn BuiltinFunction) {
		m[name] = &Builtin{Name: name, Fn: fn}
	}

	register(config.PrintFuncName, func(args ...Object) Object {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = displayString(arg)
		}
		fmt.Fprintln(e.Out, strings.Join(parts, " "))
		return &Nil{}
	})

	register(config.LenFuncName, func(args ...Object) Object {
		if len(args) != 1 {
			return newError("len expects 1 argument, got %d", len(args))
		}
		switch arg := args[0].(type) {
		case *String:
			return &Integer{Value: int64(len([]rune(arg.Value)))}
		case *Array:
			return &Integer{Value: int64(len(arg.Elements))}
		case *ObjectInstance:
			return &Integer{Value: int64(len(arg.Order))}
		case *Metadata:
			return &Integer{Value: int64(len(arg.Keys()))}
		}
		return newError("len not supported for %s", args[0].Type())
	})

	register(config.PushFuncName, func(args ...Object) Object {
		if len(args) != 2 {
			return newError("push expects 2 arguments, got %d", len(args))
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return newError("push expects ARRAY, got %s", args[0].Type())
		}
		arr.Elements = append(arr.Elements, args[1])
		return arr
	})

	register(config.StrFuncName, func(args ...Object) Object {
		if len(args) != 1 {
			return newError("str expects 1 argument, got %d", len(args))
		}
		return &String{Value: displayString(args[0])}
	})

	register(config.TypeOfFuncName, func(args ...Object) Object {
		if len(args) != 1 {
			return newError("typeOf expects 1 argument, got %d", len(args))
		}
		return &String{Value: strings.ToLower(string(args[0].Type()))}
	})

	register(config.KeysFuncName, func(args ...Object) Object {
		if len(args) != 1 {
			return newError("keys expects 1 argument, got %d", len(args))
		}
		var names []string
		switch arg := args[0].(type) {
		case *ObjectInstance:
			names = arg.Order
		case *Metadata:
			names = arg.Keys()
		default:
			return newError("keys not supported for %s", args[0].Type())
		}
		elems := make([]Object, len(names))
		for i, name := range names {
			elems[i] = &String{Value: name}
		}
		return &Array{Elements: elems}
	})

	register(config.GetMetadataFuncName, func(args ...Object) Object {
		if len(args) != 1 {
			return newError("getMetadata expects 1 argument, got %d", len(args))
		}
		if meta := metadataFor(args[0]); meta != nil {
			return meta
		}
		return &Nil{}
	})

	register(config.PanicFuncName, func(args ...Object) Object {
		if len(args) != 1 {
			return newError("panic expects 1 argument, got %d", len(args))
		}
		return newError("%s", displayString(args[0]))
	})

	return m
}

// displayString is Inspect without quoting for plain strings, the form
// print and str use.
func displayString(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return obj.Inspect()
}
