package lexer_test

import (
	"testing"

	"github.com/adornlang/adorn/internal/lexer"
	"github.com/adornlang/adorn/internal/pipeline"
	"github.com/adornlang/adorn/internal/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	(&lexer.LexerProcessor{}).Process(ctx)
	if ctx.TokenStream == nil {
		t.Fatal("lexer produced no token stream")
	}
	var toks []token.Token
	for {
		tok := ctx.TokenStream.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `let five = 5
const name = "adorn"
@log
function greet(who) {
	return "hi, " + who
}
x => x * 2
obj.field
arr[0]
3.14
`

	expected := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.LET, "let"},
		{token.IDENT, "five"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.NEWLINE, "\n"},
		{token.CONST, "const"},
		{token.IDENT, "name"},
		{token.ASSIGN, "="},
		{token.STRING, `"adorn"`},
		{token.NEWLINE, "\n"},
		{token.AT, "@"},
		{token.IDENT, "log"},
		{token.NEWLINE, "\n"},
		{token.FUNCTION, "function"},
		{token.IDENT, "greet"},
		{token.LPAREN, "("},
		{token.IDENT, "who"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.NEWLINE, "\n"},
		{token.RETURN, "return"},
		{token.STRING, `"hi, "`},
		{token.PLUS, "+"},
		{token.IDENT, "who"},
		{token.NEWLINE, "\n"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "x"},
		{token.ARROW, "=>"},
		{token.IDENT, "x"},
		{token.ASTERISK, "*"},
		{token.INT, "2"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "obj"},
		{token.DOT, "."},
		{token.IDENT, "field"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "arr"},
		{token.LBRACKET, "["},
		{token.INT, "0"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, "\n"},
		{token.FLOAT, "3.14"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	toks := tokenize(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("token count mismatch: want %d, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want.typ {
			t.Errorf("token %d: want type %s, got %s (%q)", i, want.typ, toks[i].Type, toks[i].Lexeme)
		}
		if toks[i].Lexeme != want.lexeme {
			t.Errorf("token %d: want lexeme %q, got %q", i, want.lexeme, toks[i].Lexeme)
		}
	}
}

func TestComments(t *testing.T) {
	t.Run("line comment", func(t *testing.T) {
		toks := tokenize(t, "1 // comment\n2")
		types := []token.TokenType{token.INT, token.NEWLINE, token.INT, token.EOF}
		if len(toks) != len(types) {
			t.Fatalf("token count mismatch: want %d, got %d", len(types), len(toks))
		}
		for i, want := range types {
			if toks[i].Type != want {
				t.Errorf("token %d: want %s, got %s", i, want, toks[i].Type)
			}
		}
	})

	t.Run("block comment", func(t *testing.T) {
		toks := tokenize(t, "1 /* a\nb */ 2")
		if toks[0].Type != token.INT || toks[1].Type != token.INT {
			t.Errorf("block comment not skipped: %v %v", toks[0], toks[1])
		}
		// Lines inside block comments still advance positions.
		if toks[1].Line != 2 {
			t.Errorf("want line 2 after multiline comment, got %d", toks[1].Line)
		}
	})
}

func TestStringEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\t\"c\""`)
	got, ok := toks[0].Literal.(string)
	if !ok {
		t.Fatalf("string literal value missing: %#v", toks[0])
	}
	if got != "a\nb\t\"c\"" {
		t.Errorf("escape handling wrong: %q", got)
	}
}

func TestPositions(t *testing.T) {
	toks := tokenize(t, "let x\nlet y")
	// second `let`
	if toks[3].Line != 2 || toks[3].Column != 1 {
		t.Errorf("want 2:1 for second let, got %d:%d", toks[3].Line, toks[3].Column)
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := tokenize(t, "let x = #")
	found := false
	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			found = true
		}
	}
	if !found {
		t.Error("expected an ILLEGAL token for '#'")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	ctx := pipeline.NewPipelineContext("a b c")
	(&lexer.LexerProcessor{}).Process(ctx)
	stream := ctx.TokenStream

	ahead := stream.Peek(2)
	if len(ahead) != 2 || ahead[0].Lexeme != "a" || ahead[1].Lexeme != "b" {
		t.Fatalf("peek returned %v", ahead)
	}
	if next := stream.Next(); next.Lexeme != "a" {
		t.Errorf("peek consumed input: next is %q", next.Lexeme)
	}
}
