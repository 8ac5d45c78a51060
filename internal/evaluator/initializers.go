package evaluator

// initializerRegistry collects the callbacks decorators register via
// addInitializer. It is scoped to a single declaration's application:
// sealed once the reducer finishes, flushed once after the final value
// is bound. Entries run exactly once, in registration order.
type initializerRegistry struct {
	entries []Object
	sealed  bool
}

func newInitializerRegistry() *initializerRegistry {
	return &initializerRegistry{}
}

// add appends fn; after seal() it reports false (UsageError upstream).
func (r *initializerRegistry) add(fn Object) bool {
	if r.sealed {
		return false
	}
	r.entries = append(r.entries, fn)
	return true
}

func (r *initializerRegistry) seal() {
	r.sealed = true
}

// flush invokes every entry with no arguments, in registration order,
// failing fast: once an entry errors, later entries are not invoked.
func (e *Evaluator) flushInitializers(r *initializerRegistry) Object {
	for _, fn := range r.entries {
		result := e.applyFunction(fn, nil, nil)
		if isError(result) {
			return result
		}
	}
	return nil
}
