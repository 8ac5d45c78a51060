package parser_test

import (
	"strings"
	"testing"

	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/lexer"
	"github.com/adornlang/adorn/internal/parser"
	"github.com/adornlang/adorn/internal/pipeline"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	(&lexer.LexerProcessor{}).Process(ctx)
	(&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		var msgs []string
		for _, err := range ctx.Errors {
			msgs = append(msgs, err.Error())
		}
		t.Fatalf("parsing failed with errors:\n%s", strings.Join(msgs, "\n"))
	}
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		t.Fatalf("AST root is %T, want *ast.Program", ctx.AstRoot)
	}
	return prog
}

func parseErrors(t *testing.T, input string) []string {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	(&lexer.LexerProcessor{}).Process(ctx)
	(&parser.ParserProcessor{}).Process(ctx)
	var msgs []string
	for _, err := range ctx.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func firstStatement[T ast.Statement](t *testing.T, prog *ast.Program) T {
	t.Helper()
	if len(prog.Statements) == 0 {
		t.Fatal("program has no statements")
	}
	s, ok := prog.Statements[0].(T)
	if !ok {
		t.Fatalf("statement is %T", prog.Statements[0])
	}
	return s
}

func TestFunctionDeclaration(t *testing.T) {
	t.Run("plain is hoisted", func(t *testing.T) {
		prog := parse(t, "function greet(who) { return who }")
		fs := firstStatement[*ast.FunctionStatement](t, prog)
		if fs.Name.Value != "greet" {
			t.Errorf("name = %q", fs.Name.Value)
		}
		if !fs.Hoisted {
			t.Error("undecorated declaration must be hoisted")
		}
		if len(fs.Function.Parameters) != 1 || fs.Function.Parameters[0].Value != "who" {
			t.Errorf("parameters = %v", fs.Function.Parameters)
		}
	})

	t.Run("decorated is not hoisted", func(t *testing.T) {
		prog := parse(t, "@log\nfunction greet() { return 1 }")
		fs := firstStatement[*ast.FunctionStatement](t, prog)
		if fs.Hoisted {
			t.Error("decorated declaration must not be hoisted")
		}
		if len(fs.Decorators) != 1 {
			t.Fatalf("decorators = %d", len(fs.Decorators))
		}
	})

	t.Run("decorators keep document order", func(t *testing.T) {
		prog := parse(t, "@a\n@b.c\n@d(1)\nfunction f() { return 1 }")
		fs := firstStatement[*ast.FunctionStatement](t, prog)
		if len(fs.Decorators) != 3 {
			t.Fatalf("decorators = %d", len(fs.Decorators))
		}
		if _, ok := fs.Decorators[0].Expression.(*ast.Identifier); !ok {
			t.Errorf("decorator 0 is %T", fs.Decorators[0].Expression)
		}
		if _, ok := fs.Decorators[1].Expression.(*ast.MemberExpression); !ok {
			t.Errorf("decorator 1 is %T", fs.Decorators[1].Expression)
		}
		if _, ok := fs.Decorators[2].Expression.(*ast.CallExpression); !ok {
			t.Errorf("decorator 2 is %T", fs.Decorators[2].Expression)
		}
	})

	t.Run("decorators on the same line", func(t *testing.T) {
		prog := parse(t, "@a @b function f() { return 1 }")
		fs := firstStatement[*ast.FunctionStatement](t, prog)
		if len(fs.Decorators) != 2 {
			t.Fatalf("decorators = %d", len(fs.Decorators))
		}
	})
}

func TestDecoratedExpressions(t *testing.T) {
	t.Run("function expression", func(t *testing.T) {
		prog := parse(t, "let f = @memo function(x) { return x }")
		ls := firstStatement[*ast.LetStatement](t, prog)
		fl, ok := ls.Value.(*ast.FunctionLiteral)
		if !ok {
			t.Fatalf("value is %T", ls.Value)
		}
		if len(fl.Decorators) != 1 {
			t.Errorf("decorators = %d", len(fl.Decorators))
		}
	})

	t.Run("arrow function", func(t *testing.T) {
		// A parenthesized parameter list would bind to the decorator as
		// a factory call, so a decorated arrow takes the bare form.
		prog := parse(t, "let f = @memo x => x * 2")
		ls := firstStatement[*ast.LetStatement](t, prog)
		fl, ok := ls.Value.(*ast.FunctionLiteral)
		if !ok {
			t.Fatalf("value is %T", ls.Value)
		}
		if !fl.IsArrow || len(fl.Decorators) != 1 {
			t.Errorf("IsArrow=%v decorators=%d", fl.IsArrow, len(fl.Decorators))
		}
	})

	t.Run("single-parameter arrow", func(t *testing.T) {
		prog := parse(t, "let f = x => x + 1")
		ls := firstStatement[*ast.LetStatement](t, prog)
		fl, ok := ls.Value.(*ast.FunctionLiteral)
		if !ok {
			t.Fatalf("value is %T", ls.Value)
		}
		if !fl.IsArrow || len(fl.Parameters) != 1 {
			t.Errorf("IsArrow=%v params=%d", fl.IsArrow, len(fl.Parameters))
		}
	})

	t.Run("call expression bound before decorator applies", func(t *testing.T) {
		// @f(x) decorates with the result of f(x), not with f.
		prog := parse(t, "@f(1)\nfunction g() { return 1 }")
		fs := firstStatement[*ast.FunctionStatement](t, prog)
		call, ok := fs.Decorators[0].Expression.(*ast.CallExpression)
		if !ok {
			t.Fatalf("decorator is %T", fs.Decorators[0].Expression)
		}
		if len(call.Arguments) != 1 {
			t.Errorf("arguments = %d", len(call.Arguments))
		}
	})
}

func TestObjectLiterals(t *testing.T) {
	propKinds := func(t *testing.T, input string) []*ast.ObjectProperty {
		t.Helper()
		prog := parse(t, input)
		ls := firstStatement[*ast.LetStatement](t, prog)
		ol, ok := ls.Value.(*ast.ObjectLiteral)
		if !ok {
			t.Fatalf("value is %T", ls.Value)
		}
		return ol.Properties
	}

	t.Run("element kinds", func(t *testing.T) {
		props := propKinds(t, `let o = {
	plain: 1,
	method() { return 2 },
	get g() { return 3 },
	set g(v) { this.backing = v },
	accessor a: 4,
}`)
		want := []ast.PropertyKind{
			ast.PropertyPlain,
			ast.PropertyMethod,
			ast.PropertyGetter,
			ast.PropertySetter,
			ast.PropertyAccessor,
		}
		if len(props) != len(want) {
			t.Fatalf("properties = %d", len(props))
		}
		for i, k := range want {
			if props[i].Kind != k {
				t.Errorf("property %d kind = %s, want %s", i, props[i].Kind, k)
			}
		}
	})

	t.Run("decorated elements", func(t *testing.T) {
		props := propKinds(t, `let o = {
	@a @b m() { return 1 },
	@c p: 2,
	@d accessor x: 3,
}`)
		if len(props[0].Decorators) != 2 {
			t.Errorf("method decorators = %d", len(props[0].Decorators))
		}
		if len(props[1].Decorators) != 1 {
			t.Errorf("property decorators = %d", len(props[1].Decorators))
		}
		if len(props[2].Decorators) != 1 {
			t.Errorf("accessor decorators = %d", len(props[2].Decorators))
		}
	})

	t.Run("contextual keywords stay identifiers", func(t *testing.T) {
		props := propKinds(t, "let o = { get: 1, set: 2, accessor: 3 }")
		for i, prop := range props {
			if prop.Kind != ast.PropertyPlain {
				t.Errorf("property %d kind = %s, want plain", i, prop.Kind)
			}
		}
	})

	t.Run("computed key", func(t *testing.T) {
		props := propKinds(t, `let o = { ["k" + "ey"]: 1 }`)
		if !props[0].Computed {
			t.Error("computed flag not set")
		}
	})

	t.Run("decorated computed key", func(t *testing.T) {
		// The bracket after a decorator opens the element's computed
		// key; it is never an index into the decorator expression.
		props := propKinds(t, `let o = { @probe ["k"]: 1 }`)
		if !props[0].Computed {
			t.Error("computed flag not set")
		}
		if len(props[0].Decorators) != 1 {
			t.Errorf("decorators = %d", len(props[0].Decorators))
		}
		if _, ok := props[0].Decorators[0].Expression.(*ast.Identifier); !ok {
			t.Errorf("decorator is %T", props[0].Decorators[0].Expression)
		}
	})

	t.Run("factory call with computed key", func(t *testing.T) {
		props := propKinds(t, `let o = { @probe(1) ["k"]: 2 }`)
		if !props[0].Computed {
			t.Error("computed flag not set")
		}
		if _, ok := props[0].Decorators[0].Expression.(*ast.CallExpression); !ok {
			t.Errorf("decorator is %T", props[0].Decorators[0].Expression)
		}
	})

	t.Run("shorthand", func(t *testing.T) {
		props := propKinds(t, "let o = { x, y: 2 }")
		if !props[0].Shorthand {
			t.Error("shorthand flag not set")
		}
	})
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantSub string
	}{
		{"decorator before let", "@log\nlet x = 1", "[P003]"},
		{"decorator before literal", "let f = @log 5", "[P003]"},
		{"unterminated object", "let o = { a: 1", "[P001]"},
		{"missing paren", "function f( { return 1 }", "[P001]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msgs := parseErrors(t, tc.input)
			if len(msgs) == 0 {
				t.Fatal("expected parse errors, got none")
			}
			found := false
			for _, msg := range msgs {
				if strings.Contains(msg, tc.wantSub) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error containing %q in:\n%s", tc.wantSub, strings.Join(msgs, "\n"))
			}
		})
	}
}

func TestNewlineHandling(t *testing.T) {
	t.Run("newlines between statements", func(t *testing.T) {
		prog := parse(t, "let a = 1\n\n\nlet b = 2\n")
		if len(prog.Statements) != 2 {
			t.Fatalf("statements = %d", len(prog.Statements))
		}
	})

	t.Run("newline terminates an expression", func(t *testing.T) {
		prog := parse(t, "1 + 2\n3")
		if len(prog.Statements) != 2 {
			t.Fatalf("statements = %d", len(prog.Statements))
		}
	})
}
