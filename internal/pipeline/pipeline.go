package pipeline

import (
	"github.com/adornlang/adorn/internal/config"
	"github.com/adornlang/adorn/internal/diagnostics"
	"github.com/adornlang/adorn/internal/token"
)

// TokenStream is the lexer's output consumed by the parser.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
}

// PipelineContext carries state between processing stages.
type PipelineContext struct {
	Source      string
	FilePath    string
	TokenStream TokenStream
	AstRoot     interface{} // *ast.Program once parsing succeeds
	Options     config.Options
	Errors      []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		Source:  source,
		Options: config.Default(),
	}
}

// Processor is a single stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so later stages that can still run
		// contribute their diagnostics too.
	}
	return ctx
}
