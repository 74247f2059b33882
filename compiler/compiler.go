// Package compiler wires every pipeline stage together into the single
// orchestration entry point the CLI and HTTP server both call: lex,
// parse, analyze, lower to IR, optimize, generate bytecode, run the
// peephole passes, then execute on the VM — accumulating a stage log and
// a diagnostic list the whole way, never stopping early on an error.
package compiler

import (
	"fmt"

	"github.com/rkumar-dev/minic/ast"
	"github.com/rkumar-dev/minic/bytecode"
	"github.com/rkumar-dev/minic/config"
	"github.com/rkumar-dev/minic/ir"
	"github.com/rkumar-dev/minic/lexer"
	"github.com/rkumar-dev/minic/optimize"
	"github.com/rkumar-dev/minic/parser"
	"github.com/rkumar-dev/minic/peephole"
	"github.com/rkumar-dev/minic/semantics"
	"github.com/rkumar-dev/minic/token"
	"github.com/rkumar-dev/minic/vm"
)

// Result is the full output bundle one Compile call produces: everything
// an external caller (the CLI, the HTTP server, a persisted run) needs to
// inspect every stage of one compilation.
type Result struct {
	StageLogs          []string           `json:"stage_logs"`
	Errors             []token.Diagnostic `json:"errors"`
	Tokens             []token.Token      `json:"tokens"`
	AST                map[string]any     `json:"ast"`
	TypedAST           map[string]any     `json:"typed_ast"`
	SymbolTable        map[string]any     `json:"symbol_table"`
	IR                 []string           `json:"ir"`
	IROptimized        []string           `json:"ir_optimized"`
	Bytecode           []string           `json:"bytecode"`
	BytecodeOptimized  []string           `json:"bytecode_optimized"`
	Output             string             `json:"output"`
	StepLimitExceeded  bool               `json:"step_limit_exceeded,omitempty"`
}

// Compile runs the full pipeline over src and returns the aggregated
// Result. It never aborts early: a failing lex/parse/semantic stage still
// lets every later stage run against whatever partial tree or code it
// produced, the same best-effort posture the Python reference service
// takes.
func Compile(src string, opts config.Options) Result {
	var logs []string
	emit := func(msg string) { logs = append(logs, msg) }

	emit("01. Lexical analysis started")
	tokens := lexer.Tokenize(src)
	emit(fmt.Sprintf("01. Lexical analysis done with %d token(s)", len(tokens)))

	emit("02. Syntax analysis (parser) started")
	root, parseErrors := parser.Parse(tokens)
	astJSON := ast.ToDict(root)
	emit(fmt.Sprintf("02. Syntax analysis done with %d error(s)", len(parseErrors)))

	emit("03. Semantic analysis started")
	sem := semantics.Analyze(root)
	typedJSON := ast.TypedToDict(sem.Typed)
	emit(fmt.Sprintf("03. Semantic analysis done with %d error(s)", len(sem.Errors)))

	emit("04. IR generation started")
	irCode := ir.Build(sem.Typed)
	emit("04. IR generation done")

	emit("05. IR optimization started")
	irOpt := optimize.Optimize(irCode)
	emit("05. IR optimization done")

	emit("06. Code generation started")
	bc := bytecode.Gen(irOpt)
	emit("06. Code generation done")

	emit("07. Machine-dependent peephole started")
	bcOpt := peephole.Run(bc)
	emit("07. Peephole done")

	emit("08. VM execution started")
	vmResult := vm.Run(bcOpt, opts.MaxSteps)
	emit("08. VM execution done")

	allErrors := make([]token.Diagnostic, 0, len(parseErrors)+len(sem.Errors))
	allErrors = append(allErrors, parseErrors...)
	allErrors = append(allErrors, sem.Errors...)

	return Result{
		StageLogs:         logs,
		Errors:            allErrors,
		Tokens:            tokens,
		AST:               astJSON,
		TypedAST:          typedJSON,
		SymbolTable:       sem.Table.Snapshot(),
		IR:                ir.Render(irCode),
		IROptimized:       ir.Render(irOpt),
		Bytecode:          bytecode.Render(bc),
		BytecodeOptimized: bytecode.Render(bcOpt),
		Output:            vmResult.Output,
		StepLimitExceeded: vmResult.StepLimitExceeded,
	}
}
