package evaluator

import "testing"

func TestHoisting(t *testing.T) {
	t.Run("plain declaration is callable before its line", func(t *testing.T) {
		result, _ := run(t, `
let r = f()
function f() { return 7 }
r
`)
		expectInteger(t, result, 7)
	})

	t.Run("plain declaration hoists inside blocks", func(t *testing.T) {
		result, _ := run(t, `
let r = 0
if (true) {
	r = g()
	function g() { return 3 }
}
r
`)
		expectInteger(t, result, 3)
	})

	t.Run("decorated declaration is not hoisted", func(t *testing.T) {
		result, _ := run(t, `
function noop(target, context) { return nil }
let r = f()

@noop
function f() { return 7 }
`)
		expectError(t, result, "cannot access 'f' before initialization")
	})

	t.Run("decorated declaration binds at its line", func(t *testing.T) {
		result, _ := run(t, `
function noop(target, context) { return nil }

@noop
function f() { return 7 }
f()
`)
		expectInteger(t, result, 7)
	})

	t.Run("failed decoration leaves the name uninitialized", func(t *testing.T) {
		result, _ := run(t, `
function bad(target, context) { return 42 }

@bad
function f() { return 7 }
`)
		expectError(t, result, "ValidationError")
	})

	t.Run("decorator may reference a hoisted sibling", func(t *testing.T) {
		// The decorator itself is an undecorated declaration written
		// after its use site.
		result, _ := run(t, `
@wrap
function f() { return 1 }

function wrap(target, context) {
	return () => target() + 10
}
f()
`)
		expectInteger(t, result, 11)
	})
}
