// Package validate implements the two complementary validators described in
// §4.6: a structural/semantic pass that dispatches on node kind to check
// required fields and arity, and a module-level pass that checks schema
// version, id shape, referential integrity, acyclicity, and CFG linkage.
// Both must pass before the Emitter runs.
package validate

import (
	"regexp"

	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

// idShape matches the "PREFIX_DIGITS" form named in §3.1, DIGITS drawn from
// the balanced-ternary alphabet {T,0,1}.
var idShape = regexp.MustCompile(`^[A-Za-z]+_[T01]+$`)

// Result is the outcome of Validate: OK is false whenever Errors is
// non-empty. Warnings never flip OK - they are advisory (e.g. an
// unreferenced CFG) and never block emission.
type Result struct {
	OK       bool
	Errors   []*diag.Diagnostic
	Warnings []*diag.Diagnostic
}

// Validate runs both validators over mod and returns their combined result.
// It never panics on malformed input - every check degrades to a recorded
// diagnostic, matching §7's "explicit result type, never throw" discipline.
func Validate(mod *ir.Module) *Result {
	bag := &diag.Bag{}

	checkSchemaVersion(mod, bag)
	checkIDShapes(mod, bag)
	checkReferentialIntegrity(mod, bag)
	checkAcyclicity(mod, bag)
	checkModuleBody(mod, bag)
	checkVarKindAgreement(mod, bag)
	checkCFGLinkage(mod, bag)

	for id, n := range mod.Nodes {
		checkNodeShape(id, n, mod, bag)
	}

	return &Result{OK: bag.OK(), Errors: bag.Errors(), Warnings: bag.Warnings()}
}

func checkSchemaVersion(mod *ir.Module, bag *diag.Bag) {
	if mod.SchemaVersion == "" {
		bag.Errorf(diag.StageValidate, diag.CodeValidationError, span.Span{}, "module is missing a schemaVersion")
	}
}

// checkIDShapes enforces §3.3 invariant 3 over every node id, plus the
// module header, CFG, and block ids that share the same namespace.
func checkIDShapes(mod *ir.Module, bag *diag.Bag) {
	check := func(id string) {
		if id == "" {
			return
		}
		if !idShape.MatchString(id) {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, span.Span{}, "id %q does not match the PREFIX_DIGITS balanced-ternary shape", id)
		}
	}

	check(mod.Header.ID)
	for id := range mod.Nodes {
		check(id)
	}
	for cfgID, cfg := range mod.ControlFlowGraphs {
		check(cfgID)
		for _, blk := range cfg.Blocks {
			check(blk.ID)
		}
	}
}

// checkReferentialIntegrity enforces §3.3 invariant 1: every id a node's
// Children() reports must exist in the node table.
func checkReferentialIntegrity(mod *ir.Module, bag *diag.Bag) {
	for id, n := range mod.Nodes {
		for _, childID := range n.Children() {
			if childID == "" {
				continue
			}
			if _, ok := mod.Get(childID); !ok {
				bag.Errorf(diag.StageValidate, diag.CodeBrokenReference, spanOf(n), "node %q (%s) references missing child %q", id, n.NodeKind(), childID)
			}
		}
		if !ir.AllKinds[n.NodeKind()] {
			bag.Errorf(diag.StageValidate, diag.CodeUnsupportedKind, spanOf(n), "node %q has kind %q outside the closed kind vocabulary", id, n.NodeKind())
		}
	}
}

// checkAcyclicity enforces §3.3 invariant 2 via a per-node DFS over
// Children() edges (CFG successor/predecessor edges live outside the node
// graph and are exempt by construction). A gray/black coloring detects any
// back edge.
func checkAcyclicity(mod *ir.Module, bag *diag.Bag) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(mod.Nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		switch color[id] {
		case black:
			return true
		case gray:
			return false
		}
		color[id] = gray
		n, ok := mod.Get(id)
		if ok {
			for _, childID := range n.Children() {
				if childID == "" {
					continue
				}
				if _, exists := mod.Get(childID); !exists {
					continue // already reported by checkReferentialIntegrity
				}
				if !visit(childID) {
					return false
				}
			}
		}
		color[id] = black
		return true
	}

	for id := range mod.Nodes {
		if color[id] == white && !visit(id) {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, span.Span{}, "node %q participates in a reference cycle", id)
		}
	}
}

// checkModuleBody enforces §3.3 invariant 6: module.body references only
// ids present in the node table.
func checkModuleBody(mod *ir.Module, bag *diag.Bag) {
	for _, id := range mod.Header.Body {
		if _, ok := mod.Get(id); !ok {
			bag.Errorf(diag.StageValidate, diag.CodeBrokenReference, span.Span{}, "module.body references missing top-level node %q", id)
		}
	}
}

// checkVarKindAgreement enforces §3.3 invariant 4.
func checkVarKindAgreement(mod *ir.Module, bag *diag.Bag) {
	for id, n := range mod.Nodes {
		decl, ok := n.(*ir.VariableDeclaration)
		if !ok {
			continue
		}
		for _, declID := range decl.Declarations {
			d, ok := mod.Get(declID)
			if !ok {
				continue // reported by checkReferentialIntegrity
			}
			declarator, ok := d.(*ir.VariableDeclarator)
			if !ok {
				bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "VariableDeclaration %q references %q which is not a VariableDeclarator", id, declID)
				continue
			}
			if declarator.VarKind != decl.DeclarationKind {
				bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "VariableDeclaration %q declares %q but declarator %q has varKind %q", id, decl.DeclarationKind, declID, declarator.VarKind)
			}
		}
	}
}

// checkCFGLinkage enforces §3.3 invariant 5: a FunctionDeclaration's
// meta.cfg, when present, must name a CFG that exists, whose entry/exit
// block ids are members of its own Blocks, and whose entry block's
// statements are a subset of the function body's statement ids.
func checkCFGLinkage(mod *ir.Module, bag *diag.Bag) {
	for id, n := range mod.Nodes {
		fn, ok := n.(*ir.FunctionDeclaration)
		if !ok {
			continue
		}
		meta := n.NodeMeta()
		if meta == nil {
			continue
		}
		raw, ok := meta["cfg"]
		if !ok {
			continue
		}
		cfgMeta, ok := raw.(map[string]interface{})
		if !ok {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "FunctionDeclaration %q has a malformed meta.cfg", id)
			continue
		}
		cfgID, _ := cfgMeta["id"].(string)
		entryID, _ := cfgMeta["entry"].(string)
		exitID, _ := cfgMeta["exit"].(string)

		cfg, ok := mod.ControlFlowGraphs[cfgID]
		if !ok {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "FunctionDeclaration %q's meta.cfg references missing CFG %q", id, cfgID)
			continue
		}

		blockIDs := map[string]*ir.Block{}
		for _, blk := range cfg.Blocks {
			blockIDs[blk.ID] = blk
		}
		if _, ok := blockIDs[entryID]; !ok {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "CFG %q's entry block %q is not among its own blocks", cfgID, entryID)
			continue
		}
		if _, ok := blockIDs[exitID]; !ok {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "CFG %q's exit block %q is not among its own blocks", cfgID, exitID)
			continue
		}

		bodyID := fn.Body
		bodyStmts := map[string]bool{}
		if bodyNode, ok := mod.Get(bodyID); ok {
			if blk, ok := bodyNode.(*ir.BlockStatement); ok {
				for _, sid := range blk.Body {
					bodyStmts[sid] = true
				}
			}
		}
		for _, sid := range blockIDs[entryID].Statements {
			if !bodyStmts[sid] {
				bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "CFG %q's entry block references statement %q not in function %q's body", cfgID, sid, id)
			}
		}

		for blkID := range blockIDs {
			if _, ok := cfg.Successors[blkID]; !ok {
				bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "CFG %q's block %q has no successors entry", cfgID, blkID)
			}
			if _, ok := cfg.Predecessors[blkID]; !ok {
				bag.Errorf(diag.StageValidate, diag.CodeValidationError, spanOf(n), "CFG %q's block %q has no predecessors entry", cfgID, blkID)
			}
		}
	}
}

func spanOf(n ir.Node) span.Span {
	if sp := n.NodeSpan(); sp != nil {
		return *sp
	}
	return span.Span{}
}
