package diagnostics

import (
	"fmt"

	"github.com/adornlang/adorn/internal/token"
)

// ErrorCode identifies a diagnostic class: L = lexer, P = parser, R = runtime.
type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // illegal token
	ErrL002 ErrorCode = "L002" // unterminated string

	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // malformed decorator list
	ErrP004 ErrorCode = "P004" // malformed object-literal element
	ErrP005 ErrorCode = "P005" // expression too complex
	ErrP006 ErrorCode = "P006" // invalid literal

	ErrR001 ErrorCode = "R001" // runtime error
)

type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Line    int
	Column  int
	Message string
}

func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
}
