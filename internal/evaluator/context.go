package evaluator

import "github.com/adornlang/adorn/internal/config"

// decoratorKind is the closed set of declaration forms that can carry
// decorators. The reducer's validation rules switch over this tag.
type decoratorKind int

const (
	kindFunction decoratorKind = iota
	kindObjectMethod
	kindObjectGetter
	kindObjectSetter
	kindObjectProperty
	kindObjectAccessor
)

// kindString maps the tag to its configured context spelling.
func (e *Evaluator) kindString(kind decoratorKind) string {
	kinds := e.Options.Kinds
	switch kind {
	case kindFunction:
		return kinds.Function
	case kindObjectMethod:
		return kinds.ObjectMethod
	case kindObjectGetter:
		return kinds.ObjectGetter
	case kindObjectSetter:
		return kinds.ObjectSetter
	case kindObjectProperty:
		return kinds.ObjectProperty
	case kindObjectAccessor:
		return kinds.ObjectAccessor
	}
	return "unknown"
}

func (k decoratorKind) isObjectElement() bool { return k != kindFunction }

// decorationContext bundles the per-declaration capabilities shared by
// every decorator applied to one declaration: the context record passed
// as second argument, and the initializer registry behind its
// addInitializer field.
type decorationContext struct {
	record   *ObjectInstance
	registry *initializerRegistry
	// Per-function containers, only populated when the functionMetadata
	// option is enabled.
	functionMeta *Metadata
	accessorMeta struct {
		get *Metadata
		set *Metadata
	}
}

// buildContext constructs the context record for one declaration. The
// record is built once and shared read-only across all decorators of
// the declaration; metadata and addInitializer are its shared mutable
// capabilities. Construction cannot fail: a malformed declaration is a
// parser-level precondition.
func (e *Evaluator) buildContext(kind decoratorKind, name string, metadata *Metadata) *decorationContext {
	dc := &decorationContext{
		record:   NewObjectInstance(),
		registry: newInitializerRegistry(),
	}

	rec := dc.record
	rec.SetSlot(config.ContextKindField, &Slot{Value: &String{Value: e.kindString(kind)}})
	if name != "" {
		rec.SetSlot(config.ContextNameField, &Slot{Value: &String{Value: name}})
	} else {
		rec.SetSlot(config.ContextNameField, &Slot{Value: &Nil{}})
	}
	rec.SetSlot(config.ContextMetadataField, &Slot{Value: metadata})

	registry := dc.registry
	rec.SetSlot(config.ContextAddInitializerField, &Slot{Value: &Builtin{
		Name: config.ContextAddInitializerField,
		Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("addInitializer expects one argument, got %d", len(args))
			}
			if !isCallable(args[0]) {
				return newError("addInitializer expects a function, got %s", args[0].Type())
			}
			if !registry.add(args[0]) {
				return newError("UsageError: addInitializer called outside the active decoration window")
			}
			return &Nil{}
		},
	}})

	if kind.isObjectElement() {
		// Object-literal elements can never be private or static in
		// this design; the static report is configurable while the
		// question is unsettled upstream.
		rec.SetSlot(config.ContextPrivateField, &Slot{Value: &Boolean{Value: false}})
		rec.SetSlot(config.ContextStaticField, &Slot{Value: &Boolean{Value: e.Options.StaticReportsTrue}})
	}

	if e.Options.FunctionMetadata {
		switch kind {
		case kindObjectMethod, kindObjectGetter, kindObjectSetter:
			dc.functionMeta = NewMetadata()
			rec.SetSlot(config.ContextFunctionMetaField, &Slot{Value: dc.functionMeta})
		case kindObjectAccessor:
			dc.accessorMeta.get = NewMetadata()
			dc.accessorMeta.set = NewMetadata()
			pair := NewObjectInstance()
			pair.SetSlot("get", &Slot{Value: dc.accessorMeta.get})
			pair.SetSlot("set", &Slot{Value: dc.accessorMeta.set})
			rec.SetSlot(config.ContextAccessorMetaField, &Slot{Value: pair})
		}
	}

	return dc
}
