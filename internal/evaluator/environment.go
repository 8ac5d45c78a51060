package evaluator

import "sync"

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

type Environment struct {
	mu     sync.RWMutex
	store  map[string]Object
	consts map[string]bool
	outer  *Environment
}

func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

func (e *Environment) Set(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
	return val
}

// SetConst binds name and marks it immutable for Update.
func (e *Environment) SetConst(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = val
	if e.consts == nil {
		e.consts = make(map[string]bool)
	}
	e.consts[name] = true
	e.mu.Unlock()
	return val
}

// Declare creates an uninitialized binding: the name resolves but
// reading it before assignment is a runtime error. Used for deferred
// (decorated) function declarations.
func (e *Environment) Declare(name string) {
	e.mu.Lock()
	e.store[name] = &uninitializedSentinel{}
	e.mu.Unlock()
}

// Update assigns to an existing binding, walking outward. Returns
// (found, allowed): allowed is false for const bindings.
func (e *Environment) Update(name string, val Object) (bool, bool) {
	e.mu.Lock()
	_, ok := e.store[name]
	if ok {
		if e.consts[name] {
			e.mu.Unlock()
			return true, false
		}
		e.store[name] = val
		e.mu.Unlock()
		return true, true
	}
	e.mu.Unlock()
	if e.outer != nil {
		return e.outer.Update(name, val)
	}
	return false, false
}
