package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // Raw source text of the token
	Literal interface{} // Parsed value (string, int64, float64)
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Identifiers and literals
	IDENT  = "IDENT"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	BANG     = "!"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LTE    = "<="
	GTE    = ">="
	AND    = "&&"
	OR     = "||"

	ARROW = "=>"
	AT    = "@"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOT       = "."

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	FUNCTION = "FUNCTION"
	LET      = "LET"
	CONST    = "CONST"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	NIL      = "NIL"
	IF       = "IF"
	ELSE     = "ELSE"
	RETURN   = "RETURN"
	THIS     = "THIS"
)

var keywords = map[string]TokenType{
	"function": FUNCTION,
	"let":      LET,
	"const":    CONST,
	"true":     TRUE,
	"false":    FALSE,
	"nil":      NIL,
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"this":     THIS,
}

// Contextual keywords. These lex as IDENT and are recognized by the parser
// only in object-literal element position, so they stay usable as ordinary
// identifiers everywhere else ("let get = 1" is legal).
const (
	ContextualGet      = "get"
	ContextualSet      = "set"
	ContextualAccessor = "accessor"
)

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
