package lexer

import (
	"github.com/adornlang/adorn/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = NewTokenStream(New(ctx.Source))
	return ctx
}
