package lexer

import "github.com/adornlang/adorn/internal/token"

// TokenStream buffers lexer output so the parser can look ahead
// an arbitrary (bounded) number of tokens.
type TokenStream struct {
	lexer  *Lexer
	buffer []token.Token
	done   bool
}

func NewTokenStream(l *Lexer) *TokenStream {
	return &TokenStream{lexer: l}
}

func (s *TokenStream) fill(n int) {
	for len(s.buffer) < n && !s.done {
		tok := s.lexer.NextToken()
		s.buffer = append(s.buffer, tok)
		if tok.Type == token.EOF {
			s.done = true
		}
	}
}

// Next consumes and returns the next token. Past EOF it keeps
// returning the EOF token.
func (s *TokenStream) Next() token.Token {
	s.fill(1)
	if len(s.buffer) == 0 {
		return token.Token{Type: token.EOF}
	}
	tok := s.buffer[0]
	if tok.Type != token.EOF {
		s.buffer = s.buffer[1:]
	}
	return tok
}

// Peek returns up to n upcoming tokens without consuming them.
func (s *TokenStream) Peek(n int) []token.Token {
	s.fill(n)
	if len(s.buffer) < n {
		n = len(s.buffer)
	}
	out := make([]token.Token, n)
	copy(out, s.buffer[:n])
	return out
}
