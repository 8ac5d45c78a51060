package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"github.com/adornlang/adorn/internal/ast"
	"github.com/adornlang/adorn/internal/config"
	"github.com/adornlang/adorn/internal/evaluator"
	"github.com/adornlang/adorn/internal/lexer"
	"github.com/adornlang/adorn/internal/parser"
	"github.com/adornlang/adorn/internal/pipeline"
	"github.com/adornlang/adorn/internal/token"
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func errorColor() (string, string) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return "\x1b[31m", "\x1b[0m"
	}
	return "", ""
}

func printErrors(errs []*pipelineError) {
	red, reset := errorColor()
	fmt.Fprintln(os.Stderr, "Processing failed with errors:")
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "- %s%s%s\n", red, err.msg, reset)
	}
}

type pipelineError struct{ msg string }

// dumpTokens runs only the lexer and prints the token stream.
func dumpTokens(sourceCode, filePath string, opts config.Options) {
	ctx := pipeline.NewPipelineContext(sourceCode)
	ctx.FilePath = filePath
	ctx.Options = opts
	(&lexer.LexerProcessor{}).Process(ctx)
	for {
		tok := ctx.TokenStream.Next()
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
		if tok.Type == token.EOF {
			break
		}
	}
}

// dumpAST runs lexer and parser and pretty-prints the tree.
func dumpAST(sourceCode, filePath string, opts config.Options) {
	ctx := pipeline.NewPipelineContext(sourceCode)
	ctx.FilePath = filePath
	ctx.Options = opts
	pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	).Run(ctx)
	if len(ctx.Errors) > 0 {
		reportDiagnostics(ctx)
		os.Exit(1)
	}
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		fmt.Fprintln(os.Stderr, "Internal error: AST root is not a Program")
		os.Exit(1)
	}
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Dump(prog)
}

func reportDiagnostics(ctx *pipeline.PipelineContext) {
	errs := make([]*pipelineError, 0, len(ctx.Errors))
	for _, err := range ctx.Errors {
		errs = append(errs, &pipelineError{msg: err.Error()})
	}
	printErrors(errs)
}

func runPipeline(sourceCode, filePath string, opts config.Options) {
	ctx := pipeline.NewPipelineContext(sourceCode)
	ctx.FilePath = filePath
	ctx.Options = opts

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{},
	)

	finalContext := processingPipeline.Run(ctx)
	if len(finalContext.Errors) > 0 {
		reportDiagnostics(finalContext)
		os.Exit(1)
	}
}

// loadOptions reads adorn.yaml from the script's directory when it
// exists; stdin runs use the working directory.
func loadOptions(filePath string) config.Options {
	dir := "."
	if filePath != "" {
		dir = filepath.Dir(filePath)
	}
	opts, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}
	return opts
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	var mode string
	var fileArg string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-dump-tokens", "--dump-tokens":
			mode = "tokens"
		case "-dump-ast", "--dump-ast":
			mode = "ast"
		default:
			if fileArg == "" && !strings.HasPrefix(arg, "-") {
				fileArg = arg
			}
		}
	}

	sourceCode, filePath, err := readInput(fileArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if sourceCode == "" {
		return // Nothing to do
	}

	opts := loadOptions(filePath)

	switch mode {
	case "tokens":
		dumpTokens(sourceCode, filePath, opts)
	case "ast":
		dumpAST(sourceCode, filePath, opts)
	default:
		runPipeline(sourceCode, filePath, opts)
	}
}

func readInput(fileArg string) (string, string, error) {
	if fileArg == "" {
		// Read from stdin
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", "", fmt.Errorf("Usage: %s <file> or pipe from stdin", os.Args[0])
		}
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("Error reading input: %w", err)
		}
		return string(input), "", nil
	}

	if !isSourceFile(fileArg) {
		fmt.Fprintf(os.Stderr, "Warning: %s does not have a recognized extension (%s)\n",
			fileArg, strings.Join(config.SourceFileExtensions, ", "))
	}
	input, err := os.ReadFile(fileArg)
	if err != nil {
		return "", "", fmt.Errorf("Error reading input: %w", err)
	}
	absPath, err := filepath.Abs(fileArg)
	if err != nil {
		absPath = fileArg
	}
	return string(input), absPath, nil
}
