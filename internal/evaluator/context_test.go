package evaluator

import "testing"

func TestConfigurableKindStrings(t *testing.T) {
	result, _ := runWith(t, `
let seen = nil
function probe(target, context) { seen = context.kind }

let o = { @probe m() { return 1 } }
seen
`, func(e *Evaluator) {
		e.Options.Kinds.ObjectMethod = "method"
	})
	expectString(t, result, "method")
}

func TestStaticReportsTrue(t *testing.T) {
	result, _ := runWith(t, `
let seen = nil
function probe(target, context) { seen = context.static }

let o = { @probe p: 1 }
seen
`, func(e *Evaluator) {
		e.Options.StaticReportsTrue = true
	})
	b, ok := result.(*Boolean)
	if !ok || !b.Value {
		t.Errorf("static = %s", result.Inspect())
	}
}

func TestFunctionMetadataOption(t *testing.T) {
	t.Run("off by default", func(t *testing.T) {
		result, _ := run(t, `
let seen = "unset"
function probe(target, context) { seen = context.functionMetadata }

let o = { @probe m() { return 1 } }
seen
`)
		if _, ok := result.(*Nil); !ok {
			t.Errorf("functionMetadata = %s", result.Inspect())
		}
	})

	t.Run("method container lands on the bound function", func(t *testing.T) {
		result, _ := runWith(t, `
function mark(target, context) {
	context.functionMetadata["m"] = true
	return nil
}

let o = { @mark m() { return 1 } }
getMetadata(o.m)["m"]
`, func(e *Evaluator) {
			e.Options.FunctionMetadata = true
		})
		b, ok := result.(*Boolean)
		if !ok || !b.Value {
			t.Errorf("per-function metadata missing: %s", result.Inspect())
		}
	})

	t.Run("accessor gets a get/set pair", func(t *testing.T) {
		result, _ := runWith(t, `
let shape = []
function probe(target, context) {
	push(shape, typeOf(context.accessorMetadata.get))
	push(shape, typeOf(context.accessorMetadata.set))
	return nil
}

let o = { @probe accessor x: 1 }
shape
`, func(e *Evaluator) {
			e.Options.FunctionMetadata = true
		})
		expectStrings(t, result, []string{"metadata", "metadata"})
	})
}
