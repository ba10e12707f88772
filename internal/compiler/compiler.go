// Package compiler implements the Compile Facade of SPEC_FULL §4.9: the
// single entry point that runs Normalize -> Lower -> [Registry transforms]
// -> Validate -> Emit in order, short-circuiting on the first stage that
// reports fatal errors, matching the host compiler's compileScript control
// flow in cmd/dwscript/cmd/compile.go (lex -> parse -> semantic -> compile
// -> serialize, each gated on the previous stage's error list).
package compiler

import (
	"fmt"
	"time"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/emit"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/jsonvalue"
	"github.com/cwbudde/go-jsl/internal/lower"
	"github.com/cwbudde/go-jsl/internal/normalize"
	"github.com/cwbudde/go-jsl/internal/registry"
	"github.com/cwbudde/go-jsl/internal/span"
	"github.com/cwbudde/go-jsl/internal/validate"
)

// Options is the §6.4 options record: a typed, enumerated set of recognized
// keys rather than a silently-defaulted bag (§9's "Configuration objects
// with silent defaults" design note).
type Options struct {
	// Path names the source file for diagnostics; optional.
	Path string

	// AST, when set, is an already-canonical AST supplied directly by an
	// external caller, bypassing Normalize entirely.
	AST *ast.Program

	// RawAST, when set (and AST is nil), is the external parser's raw tree,
	// run through Normalize before lowering.
	RawAST *jsonvalue.Value

	// Permissive gates the Normalizer's best-effort fallback recognizer
	// (§4.3) when RawAST's body is unusable.
	Permissive bool

	// Transforms are the Extension Registry transforms to run between
	// Lower and Validate, in the order registry.Run applies them.
	Transforms []registry.Transform

	Validate          bool
	EmitDebugInfo     bool
	Indent            string
	CompatibilityMode bool
	StrictMode        bool
}

// DefaultOptions returns §6.4's documented defaults.
func DefaultOptions() Options {
	return Options{
		Validate:          true,
		EmitDebugInfo:     false,
		Indent:            "  ",
		CompatibilityMode: true,
		StrictMode:        false,
	}
}

// MetaPerf is the per-compile timing/size metadata §4.9 attaches to
// module.metadata.perf, consumed by the CLI's --verbose flag and by the
// golden harness's non-functional assertions.
type MetaPerf struct {
	NormalizeNs int64 `json:"normalizeNs"`
	LowerNs     int64 `json:"lowerNs"`
	ValidateNs  int64 `json:"validateNs"`
	EmitNs      int64 `json:"emitNs"`
	NodeCount   int   `json:"nodeCount"`
	CFGCount    int   `json:"cfgCount"`
}

// Result is the structured outcome of one Compile call, matching §7's
// "{success, code, ast?, ir?, errors, warnings}" propagation contract.
type Result struct {
	Success  bool
	Code     string
	AST      *ast.Program
	IR       *ir.Module
	Errors   []*diag.Diagnostic
	Warnings []*diag.Diagnostic
	MetaPerf MetaPerf
}

func fail(errs ...*diag.Diagnostic) *Result {
	return &Result{Success: false, Errors: errs}
}

// Compile runs one compilation end to end. Every stage constructs its own
// fresh state (a new Normalizer, a new Lowerer owning its own Builder and
// ID generator, a new Emitter) so concurrent Compile calls never share
// state (§5).
func Compile(source string, opts Options) *Result {
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	prog, normalizeNs, err := obtainAST(source, opts)
	if err != nil {
		return fail(diag.New(diag.StageNormalize, diag.CodeInvalidInput, err.Error(), span0(), source, opts.Path))
	}

	lowerStart := time.Now()
	mod, err := lower.New().Lower(prog, opts.Path)
	lowerNs := time.Since(lowerStart).Nanoseconds()
	if err != nil {
		return fail(diag.New(diag.StageLower, diag.CodeUnsupportedConstruct, err.Error(), span0(), source, opts.Path))
	}

	var warnings []*diag.Diagnostic
	if len(opts.Transforms) > 0 {
		mode := registry.Compatibility
		if opts.StrictMode {
			mode = registry.Strict
		}
		ds := registry.Run(mod, opts.Transforms, mode)
		for _, d := range ds {
			if opts.StrictMode {
				return &Result{Success: false, Errors: append([]*diag.Diagnostic{d}, warnings...), IR: mod}
			}
			warnings = append(warnings, d)
		}
	}

	var validateNs int64
	if opts.Validate {
		validateStart := time.Now()
		vres := validate.Validate(mod)
		validateNs = time.Since(validateStart).Nanoseconds()
		warnings = append(warnings, vres.Warnings...)
		if !vres.OK {
			return &Result{Success: false, AST: prog, IR: mod, Errors: vres.Errors, Warnings: warnings}
		}
	}

	perf := MetaPerf{
		NormalizeNs: normalizeNs,
		LowerNs:     lowerNs,
		ValidateNs:  validateNs,
		NodeCount:   len(mod.Nodes),
		CFGCount:    len(mod.ControlFlowGraphs),
	}
	attachPerf(mod, perf)

	emitStart := time.Now()
	code, errDiag := emit.Emit(mod, emit.Options{Indent: opts.Indent, EmitDebugInfo: opts.EmitDebugInfo})
	perf.EmitNs = time.Since(emitStart).Nanoseconds()
	attachPerf(mod, perf)
	if errDiag != nil {
		return &Result{Success: false, AST: prog, IR: mod, Errors: []*diag.Diagnostic{errDiag}, Warnings: warnings, MetaPerf: perf}
	}

	return &Result{
		Success:  true,
		Code:     code,
		AST:      prog,
		IR:       mod,
		Warnings: warnings,
		MetaPerf: perf,
	}
}

// obtainAST resolves opts.AST / opts.RawAST / the embedded fixture
// recognizer (in that priority order) into a canonical *ast.Program,
// reporting the wall-clock cost of whichever Normalize step ran (zero when
// an already-canonical AST was supplied directly).
func obtainAST(source string, opts Options) (*ast.Program, int64, error) {
	if opts.AST != nil {
		return opts.AST, 0, nil
	}

	raw := opts.RawAST
	if raw == nil {
		recognized, ok := recognizeFixture(source)
		if !ok {
			return nil, 0, errNoParser(source)
		}
		raw = recognized
	}

	start := time.Now()
	prog, err := normalize.Normalize(raw, opts.Permissive)
	return prog, time.Since(start).Nanoseconds(), err
}

// span0 is the zero-valued span used for diagnostics raised before any
// source position is known (e.g. a recognizer failure before a single
// token has been located).
func span0() span.Span { return span.Span{} }

// errNoParser reports that Compile was given neither an AST nor a RawAST
// and the embedded fixture recognizer (§4.9 point 1) could not make sense
// of source either - the real parser is an external collaborator (§1) and
// this facade never attempts general JavaScript parsing itself.
func errNoParser(source string) error {
	n := len(source)
	if n > 40 {
		n = 40
	}
	return fmt.Errorf("compiler: InvalidInput: no AST supplied and the embedded fixture recognizer did not match %q", source[:n])
}

func attachPerf(mod *ir.Module, perf MetaPerf) {
	if mod.Header.Metadata == nil {
		mod.Header.Metadata = map[string]interface{}{}
	}
	mod.Header.Metadata["perf"] = map[string]interface{}{
		"normalizeNs": perf.NormalizeNs,
		"lowerNs":     perf.LowerNs,
		"validateNs":  perf.ValidateNs,
		"emitNs":      perf.EmitNs,
		"nodeCount":   perf.NodeCount,
		"cfgCount":    perf.CFGCount,
	}
}
