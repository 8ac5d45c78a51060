package evaluator

import "testing"

func TestDecoratorOrdering(t *testing.T) {
	t.Run("evaluated in document order, applied in reverse", func(t *testing.T) {
		result, _ := run(t, `
let log = []
function dec(tag) {
	push(log, tag + "-evaluated")
	return (target, context) => { push(log, tag + "-applied") }
}

@dec("A")
@dec("B")
function f() { return 1 }
log
`)
		expectStrings(t, result, []string{
			"A-evaluated", "B-evaluated",
			"B-applied", "A-applied",
		})
	})

	t.Run("evaluation failure skips later decorators", func(t *testing.T) {
		result, _ := run(t, `
let log = []
function dec(tag) {
	push(log, tag)
	return (target, context) => nil
}

@dec("A")
@boom
@dec("C")
function f() { return 1 }
`)
		expectError(t, result, "identifier not found: boom")
	})

	t.Run("list evaluated in enclosing scope", func(t *testing.T) {
		// The decorator expression must not see the function's own
		// parameters.
		result, _ := run(t, `
let x = "outer"
function probe(target, context) { return nil }

@probe
function f(x) { return x }
f("inner")
`)
		expectString(t, result, "inner")
	})
}

func TestFunctionDecoration(t *testing.T) {
	t.Run("replacement wraps the target", func(t *testing.T) {
		result, _ := run(t, `
function twice(target, context) {
	return x => target(x) * 2
}

@twice
function inc(x) { return x + 1 }
inc(3)
`)
		expectInteger(t, result, 8)
	})

	t.Run("nil return leaves target unchanged", func(t *testing.T) {
		result, _ := run(t, `
function noop(target, context) { return nil }

@noop
function f() { return 7 }
f()
`)
		expectInteger(t, result, 7)
	})

	t.Run("non-callable return is a validation error", func(t *testing.T) {
		result, _ := run(t, `
function bad(target, context) { return 42 }

@bad
function f() { return 1 }
`)
		expectError(t, result, "ValidationError")
	})

	t.Run("non-callable decorator value", func(t *testing.T) {
		result, _ := run(t, `
let notADecorator = 5

@notADecorator
function f() { return 1 }
`)
		expectError(t, result, "expected a function")
	})

	t.Run("stacked replacements compose", func(t *testing.T) {
		result, _ := run(t, `
function addTag(tag) {
	return (target, context) => {
		return () => target() + tag
	}
}

@addTag("a")
@addTag("b")
function base() { return "x" }
base()
`)
		// b applied first wraps base, then a wraps that.
		expectString(t, result, "xba")
	})
}

func TestDecoratorContext(t *testing.T) {
	t.Run("kind and name for declarations", func(t *testing.T) {
		result, _ := run(t, `
let seen = nil
function probe(target, context) {
	seen = [context.kind, context.name]
}

@probe
function greet() { return 1 }
seen
`)
		expectStrings(t, result, []string{"function", "greet"})
	})

	t.Run("let naming flows into the context", func(t *testing.T) {
		result, _ := run(t, `
let seen = "unset"
function probe(target, context) {
	seen = context.name
}
let f = @probe x => x
seen
`)
		expectString(t, result, "f")
	})

	t.Run("anonymous expression reports nil name", func(t *testing.T) {
		result, _ := run(t, `
let seen = "unset"
function probe(target, context) {
	seen = context.name
}
@probe x => x
seen
`)
		if _, ok := result.(*Nil); !ok {
			t.Errorf("want nil name, got %s", result.Inspect())
		}
	})

	t.Run("same context record for every decorator of a declaration", func(t *testing.T) {
		result, _ := run(t, `
let first = nil
let same = false
function a(target, context) { same = first == context }
function b(target, context) { first = context }

@a
@b
function f() { return 1 }
same
`)
		b, ok := result.(*Boolean)
		if !ok || !b.Value {
			t.Errorf("context record not shared: %s", result.Inspect())
		}
	})

	t.Run("element kinds", func(t *testing.T) {
		result, _ := run(t, `
let kinds = []
function probe(target, context) {
	push(kinds, context.kind)
	return nil
}

let o = {
	@probe m() { return 1 },
	@probe get g() { return 2 },
	@probe set s(v) { v },
	@probe p: 3,
	@probe accessor a: 4,
}
kinds
`)
		expectStrings(t, result, []string{
			"object-method", "object-getter", "object-setter",
			"object-property", "object-accessor",
		})
	})

	t.Run("private and static only on elements", func(t *testing.T) {
		result, _ := run(t, `
let seen = []
function probe(target, context) {
	push(seen, str(context.private))
	push(seen, str(context.static))
	return nil
}

@probe
function f() { return 1 }
let o = { @probe m() { return 1 } }
seen
`)
		// Function declarations have no private/static fields; object
		// elements report both, false by default.
		expectStrings(t, result, []string{"nil", "nil", "false", "false"})
	})
}

func TestDecoratedExpressionForms(t *testing.T) {
	t.Run("decorated arrow runs immediately", func(t *testing.T) {
		result, _ := run(t, `
function twice(target, context) {
	return x => target(x) * 2
}
let f = @twice x => x + 1
f(3)
`)
		expectInteger(t, result, 8)
	})

	t.Run("decorated function expression", func(t *testing.T) {
		result, _ := run(t, `
function replace(target, context) {
	return () => "replaced"
}
let f = @replace function original() { return "original" }
f()
`)
		expectString(t, result, "replaced")
	})

	t.Run("failed decoration poisons the whole expression", func(t *testing.T) {
		result, _ := run(t, `
function bad(target, context) { return 1 }
let f = @bad x => x
`)
		expectError(t, result, "ValidationError")
	})
}
