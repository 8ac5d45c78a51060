package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/lexer"
	"github.com/adornlang/adorn/internal/parser"
	"github.com/adornlang/adorn/internal/pipeline"
)

// run parses and evaluates src, returning the last statement's value
// and everything print wrote. Parse errors fail the test; runtime
// errors come back as *Error for the caller to inspect.
func run(t *testing.T, src string) (Object, string) {
	t.Helper()
	return runWith(t, src, nil)
}

func runWith(t *testing.T, src string, configure func(*Evaluator)) (Object, string) {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	(&lexer.LexerProcessor{}).Process(ctx)
	(&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		var msgs []string
		for _, err := range ctx.Errors {
			msgs = append(msgs, err.Error())
		}
		t.Fatalf("parsing failed:\n%s", strings.Join(msgs, "\n"))
	}
	prog := ctx.AstRoot.(*ast.Program)

	var out bytes.Buffer
	eval := New()
	eval.Out = &out
	if configure != nil {
		configure(eval)
	}
	result := eval.Eval(prog, NewEnvironment())
	return result, out.String()
}

func expectInteger(t *testing.T, obj Object, want int64) {
	t.Helper()
	got, ok := obj.(*Integer)
	if !ok {
		t.Fatalf("want INTEGER %d, got %s (%s)", want, obj.Type(), obj.Inspect())
	}
	if got.Value != want {
		t.Errorf("want %d, got %d", want, got.Value)
	}
}

func expectString(t *testing.T, obj Object, want string) {
	t.Helper()
	got, ok := obj.(*String)
	if !ok {
		t.Fatalf("want STRING %q, got %s (%s)", want, obj.Type(), obj.Inspect())
	}
	if got.Value != want {
		t.Errorf("want %q, got %q", want, got.Value)
	}
}

func expectStrings(t *testing.T, obj Object, want []string) {
	t.Helper()
	arr, ok := obj.(*Array)
	if !ok {
		t.Fatalf("want ARRAY, got %s (%s)", obj.Type(), obj.Inspect())
	}
	if len(arr.Elements) != len(want) {
		t.Fatalf("want %d elements, got %s", len(want), arr.Inspect())
	}
	for i, w := range want {
		expectString(t, arr.Elements[i], w)
	}
}

func expectError(t *testing.T, obj Object, wantSub string) {
	t.Helper()
	err, ok := obj.(*Error)
	if !ok {
		t.Fatalf("want error containing %q, got %s (%s)", wantSub, obj.Type(), obj.Inspect())
	}
	if !strings.Contains(err.Message, wantSub) {
		t.Errorf("want error containing %q, got %q", wantSub, err.Message)
	}
}

func TestLanguageBasics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int64
	}{
		{"arithmetic", "2 + 3 * 4", 14},
		{"grouping", "(2 + 3) * 4", 20},
		{"unary minus", "-5 + 10", 5},
		{"modulo", "17 % 5", 2},
		{"let binding", "let x = 4\nx * x", 16},
		{"assignment", "let x = 1\nx = x + 1\nx", 2},
		{"if", "if (2 > 1) { 10 } else { 20 }", 10},
		{"else", "if (2 < 1) { 10 } else { 20 }", 20},
		{"closure", "function adder(n) { return x => x + n }\nadder(3)(4)", 7},
		{"recursion", "function fib(n) { if (n < 2) { return n }\nreturn fib(n-1) + fib(n-2) }\nfib(10)", 55},
		{"array index", "let a = [1, 2, 3]\na[1]", 2},
		{"array assign", "let a = [1, 2, 3]\na[0] = 9\na[0]", 9},
		{"len builtin", `len("hello")`, 5},
		{"array len", "len([1, 2, 3])", 3},
		{"logical and", "if (true && 1 < 2) { 1 } else { 0 }", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, _ := run(t, tc.src)
			expectInteger(t, result, tc.want)
		})
	}
}

func TestStrings(t *testing.T) {
	result, _ := run(t, `"foo" + "bar"`)
	expectString(t, result, "foobar")

	result, _ = run(t, `str(42)`)
	expectString(t, result, "42")
}

func TestPrint(t *testing.T) {
	_, out := run(t, `print("a", 1, true)`)
	if out != "a 1 true\n" {
		t.Errorf("print output = %q", out)
	}
}

func TestConst(t *testing.T) {
	result, _ := run(t, "const x = 1\nx = 2")
	expectError(t, result, "cannot assign to constant")
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantSub string
	}{
		{"unknown identifier", "nope", "identifier not found"},
		{"call non-function", "let x = 1\nx()", "not a function"},
		{"type mismatch", `1 + "a"`, "type mismatch"},
		{"division by zero", "1 / 0", "division by zero"},
		{"index out of range", "[1][5]", "out of range"},
		{"undeclared assignment", "y = 1", "undeclared identifier"},
		{"runaway recursion", "function f() { return f() }\nf()", "stack overflow"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, _ := run(t, tc.src)
			expectError(t, result, tc.wantSub)
		})
	}
}

func TestPanicBuiltin(t *testing.T) {
	result, _ := run(t, `panic("boom")`)
	expectError(t, result, "boom")
}
