package evaluator

import (
	"path/filepath"
	"strconv"

	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/diagnostics"
	"github.com/adornlang/adorn/internal/pipeline"
	"github.com/adornlang/adorn/internal/token"
)

type EvaluatorProcessor struct{}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	eval := New()
	eval.Options = ctx.Options
	if ctx.FilePath != "" {
		eval.CurrentFile = filepath.Base(ctx.FilePath)
	} else {
		eval.CurrentFile = "<stdin>"
	}

	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrR001,
			token.Token{},
			"AST root is not a Program",
		))
		return ctx
	}

	env := NewEnvironment()
	result := eval.Eval(prog, env)
	if result == nil || result.Type() != ERROR_OBJ {
		return ctx
	}

	// Convert the runtime error to a diagnostic with location and
	// stack trace.
	err, ok := result.(*Error)
	if !ok {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrR001,
			token.Token{},
			"%s", result.Inspect(),
		))
		return ctx
	}

	tok := token.Token{Line: err.Line, Column: err.Column}
	errMsg := err.Message
	if len(err.StackTrace) > 0 {
		errMsg += "\nStack trace:"
		for _, frame := range err.StackTrace {
			errMsg += "\n  at " + ctx.FilePath + ":" + strconv.Itoa(frame.Line) +
				" (called " + frame.Name + ")"
		}
	}

	ctx.Errors = append(ctx.Errors, diagnostics.NewError(
		diagnostics.ErrR001,
		tok,
		"%s", errMsg,
	))
	return ctx
}
