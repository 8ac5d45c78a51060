package evaluator

import (
	"fmt"
	"strings"

	"github.com/adornlang/adorn/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ      = "INTEGER"
	FLOAT_OBJ        = "FLOAT"
	BOOLEAN_OBJ      = "BOOLEAN"
	STRING_OBJ       = "STRING"
	NIL_OBJ          = "NIL"
	ERROR_OBJ        = "ERROR"
	FUNCTION_OBJ     = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	ARRAY_OBJ        = "ARRAY"
	OBJECT_OBJ       = "OBJECT"
	METADATA_OBJ     = "METADATA"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	UNINITIALIZED    = "UNINITIALIZED"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// uninitializedSentinel marks a declared-but-unassigned binding, the
// deferred state of a decorated function declaration before control
// reaches its textual position.
type uninitializedSentinel struct{}

func (u *uninitializedSentinel) Type() ObjectType { return UNINITIALIZED }
func (u *uninitializedSentinel) Inspect() string  { return "<uninitialized>" }

type StackFrame struct {
	Name   string
	Line   int
	Column int
}

type Error struct {
	Message    string
	Line       int
	Column     int
	StackTrace []StackFrame
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Function (user defined)
type Function struct {
	Name       string // Function name (empty for lambdas and arrows)
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
	Metadata   *Metadata // decorator metadata container, nil until first decoration
	Line       int       // Source location for stack traces
	Column     int
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Value
	}
	return fmt.Sprintf("fn(%s) { ... }", strings.Join(params, ", "))
}

type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function " + b.Name }

// Array is a mutable element sequence.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	elems := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = inspectQuoted(e)
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// SlotKind distinguishes plain value properties from accessor slots.
type SlotKind int

const (
	SlotValue SlotKind = iota
	SlotAccessor
)

// Slot is one property of an ObjectInstance.
type Slot struct {
	Kind   SlotKind
	Value  Object
	Getter Object // callable, nil when write-only
	Setter Object // callable, nil when read-only
}

// ObjectInstance is an evaluated object literal.
type ObjectInstance struct {
	Order    []string // insertion order of keys
	Slots    map[string]*Slot
	Metadata *Metadata // shared container of this literal's element decorators
}

func NewObjectInstance() *ObjectInstance {
	return &ObjectInstance{Slots: make(map[string]*Slot)}
}

func (o *ObjectInstance) Type() ObjectType { return OBJECT_OBJ }
func (o *ObjectInstance) Inspect() string {
	parts := make([]string, 0, len(o.Order))
	for _, key := range o.Order {
		slot := o.Slots[key]
		if slot.Kind == SlotAccessor {
			parts = append(parts, key+": <accessor>")
			continue
		}
		parts = append(parts, key+": "+inspectQuoted(slot.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SetSlot installs or replaces a slot, tracking insertion order.
func (o *ObjectInstance) SetSlot(key string, slot *Slot) {
	if _, exists := o.Slots[key]; !exists {
		o.Order = append(o.Order, key)
	}
	o.Slots[key] = slot
}

// Get returns the named field's plain value. Accessor slots are not
// invoked here; property reads go through the evaluator.
func (o *ObjectInstance) Get(key string) (Object, bool) {
	slot, ok := o.Slots[key]
	if !ok || slot.Kind != SlotValue {
		return nil, false
	}
	return slot.Value, true
}

// inspectQuoted renders nested strings with quotes so container output
// stays readable.
func inspectQuoted(obj Object) string {
	if s, ok := obj.(*String); ok {
		return fmt.Sprintf("%q", s.Value)
	}
	return obj.Inspect()
}

// isCallable reports whether obj can be invoked.
func isCallable(obj Object) bool {
	switch obj.(type) {
	case *Function, *Builtin:
		return true
	}
	return false
}
