package evaluator

import "testing"

func TestMetadataUnit(t *testing.T) {
	t.Run("distinct container identity", func(t *testing.T) {
		a, b := NewMetadata(), NewMetadata()
		if a.ID == b.ID {
			t.Error("containers share an ID")
		}
	})

	t.Run("last writer wins", func(t *testing.T) {
		m := NewMetadata()
		m.Set("k", &String{Value: "first"})
		m.Set("k", &String{Value: "second"})
		val, _ := m.Get("k")
		expectString(t, val, "second")
		if got := m.Keys(); len(got) != 1 {
			t.Errorf("keys = %v", got)
		}
	})

	t.Run("keys keep first-write order", func(t *testing.T) {
		m := NewMetadata()
		m.Set("b", TRUE)
		m.Set("a", TRUE)
		m.Set("b", FALSE)
		keys := m.Keys()
		if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
			t.Errorf("keys = %v", keys)
		}
	})
}

func TestMetadataThroughDecorators(t *testing.T) {
	t.Run("function declaration owns one container", func(t *testing.T) {
		result, _ := run(t, `
function a(target, context) { context.metadata["k"] = "a" }
function b(target, context) { context.metadata["k"] = "b" }

@a
@b
function f() { return 1 }
getMetadata(f)["k"]
`)
		// b applies first; a overwrites, so a is the last writer.
		expectString(t, result, "a")
	})

	t.Run("replacement function keeps the container", func(t *testing.T) {
		result, _ := run(t, `
function mark(target, context) {
	context.metadata["marked"] = true
	return () => 99
}

@mark
function f() { return 1 }
getMetadata(f)["marked"]
`)
		b, ok := result.(*Boolean)
		if !ok || !b.Value {
			t.Errorf("metadata lost on replacement: %s", result.Inspect())
		}
	})

	t.Run("object literal shares one container across elements", func(t *testing.T) {
		result, _ := run(t, `
function tag(target, context) {
	context.metadata[context.name] = true
	return nil
}

let o = {
	@tag m() { return 1 },
	@tag p: 2,
	plainNotTagged: 3,
}
keys(getMetadata(o))
`)
		expectStrings(t, result, []string{"m", "p"})
	})

	t.Run("undecorated values carry no metadata", func(t *testing.T) {
		result, _ := run(t, `
function f() { return 1 }
let o = { a: 1 }
[str(getMetadata(f)), str(getMetadata(o))]
`)
		expectStrings(t, result, []string{"nil", "nil"})
	})

	t.Run("separate declarations get separate containers", func(t *testing.T) {
		result, _ := run(t, `
function mark(target, context) { context.metadata["k"] = context.name }

@mark
function f() { return 1 }

@mark
function g() { return 2 }

[getMetadata(f)["k"], getMetadata(g)["k"]]
`)
		expectStrings(t, result, []string{"f", "g"})
	})
}
