package validate

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

func TestValidateAcceptsWellFormedModule(t *testing.T) {
	b := ir.NewBuilder()
	lit := b.Literal(ir.LiteralNumber, 1.0, "1", span.Span{})
	name := b.Identifier("x", span.Span{})
	dtor := b.VariableDeclarator(name, lit, ir.VarKindConst, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindConst, []string{dtor}, span.Span{})
	b.SetModuleHeader([]string{decl}, ir.SourceInfo{Path: "t.js"}, nil)

	res := Validate(b.Module())
	if !res.OK {
		t.Fatalf("expected a well-formed module to validate, got errors: %v", res.Errors)
	}
}

func TestValidateCatchesBrokenReference(t *testing.T) {
	b := ir.NewBuilder()
	decl := b.VariableDeclaration(ir.VarKindConst, []string{"vdtor_999"}, span.Span{})
	b.SetModuleHeader([]string{decl}, ir.SourceInfo{}, nil)

	res := Validate(b.Module())
	if res.OK {
		t.Fatal("expected a dangling declarator reference to fail validation")
	}
	if !hasCode(res.Errors, "BrokenReference") {
		t.Errorf("errors = %v, want a BrokenReference", res.Errors)
	}
}

func TestValidateCatchesNonTernaryID(t *testing.T) {
	mod := ir.NewModule()
	mod.Nodes["node_2"] = &ir.Identifier{Base: ir.Base{ID: "node_2", KindTag: ir.KindIdentifier}, Name: "x"}
	mod.Header.Body = []string{"node_2"}

	res := Validate(mod)
	if res.OK {
		t.Fatal("expected a decimal-digit id to fail the balanced-ternary shape check")
	}
}

func TestValidateCatchesVarKindDisagreement(t *testing.T) {
	b := ir.NewBuilder()
	lit := b.Literal(ir.LiteralNumber, 1.0, "1", span.Span{})
	name := b.Identifier("x", span.Span{})
	dtor := b.VariableDeclarator(name, lit, ir.VarKindLet, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindConst, []string{dtor}, span.Span{})
	b.SetModuleHeader([]string{decl}, ir.SourceInfo{}, nil)

	res := Validate(b.Module())
	if res.OK {
		t.Fatal("expected a declarator/declaration varKind mismatch to fail validation")
	}
}

func TestValidateCatchesCFGEntryOutsideFunctionBody(t *testing.T) {
	b := ir.NewBuilder()
	retID := b.ReturnStatement("", span.Span{})
	bodyID := b.BlockStatement([]string{retID}, span.Span{})
	fnID := b.FunctionDeclaration("", nil, bodyID, span.Span{})

	b.AddCFG("cfg_0", &ir.CFG{
		ID: "cfg_0",
		Blocks: []*ir.Block{
			{ID: "bb_0", BlockKind: "entry", Statements: []string{"ret_missing"}},
			{ID: "bb_1", BlockKind: "exit"},
		},
		Successors:   map[string][]string{"bb_0": {"bb_1"}, "bb_1": {}},
		Predecessors: map[string][]string{"bb_0": {}, "bb_1": {"bb_0"}},
	})
	node, _ := b.Module().Get(fnID)
	node.SetMeta("cfg", map[string]interface{}{"id": "cfg_0", "entry": "bb_0", "exit": "bb_1"})
	b.SetModuleHeader([]string{fnID}, ir.SourceInfo{}, nil)

	res := Validate(b.Module())
	if res.OK {
		t.Fatal("expected a CFG entry block referencing a statement outside the function body to fail validation")
	}
}

func TestValidateCatchesAcyclicityViolation(t *testing.T) {
	mod := ir.NewModule()
	mod.Nodes["expst_0"] = &ir.ExpressionStatement{Base: ir.Base{ID: "expst_0", KindTag: ir.KindExpressionStatement}, Expr: "expst_0"}
	mod.Header.Body = []string{"expst_0"}

	res := Validate(mod)
	if res.OK {
		t.Fatal("expected a self-referencing node to fail the acyclicity check")
	}
}

func hasCode(ds []*diag.Diagnostic, code string) bool {
	for _, d := range ds {
		if strings.Contains(d.Error(), code) {
			return true
		}
	}
	return false
}
