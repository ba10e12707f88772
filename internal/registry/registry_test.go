package registry

import (
	"testing"

	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

// renameTransform renames every Identifier named From to To. It is used
// purely to exercise the registry's commit/rollback machinery.
type renameTransform struct {
	from, to string
	rejected bool
}

func (r *renameTransform) Name() string      { return "rename-identifier" }
func (r *renameTransform) Version() string   { return "1.0.0" }
func (r *renameTransform) Priority() int     { return 10 }
func (r *renameTransform) Tags() []string    { return []string{"test"} }
func (r *renameTransform) Enabled() bool     { return true }
func (r *renameTransform) Describe() string  { return "renames an identifier for testing" }

func (r *renameTransform) CanProcess(n ir.Node) bool {
	id, ok := n.(*ir.Identifier)
	return ok && id.Name == r.from
}

func (r *renameTransform) Transform(n ir.Node, ctx *Context) (ir.Node, error) {
	id := n.(*ir.Identifier)
	out := *id
	out.Name = r.to
	return &out, nil
}

func (r *renameTransform) Validate(original, transformed ir.Node) (bool, []string) {
	if r.rejected {
		return false, []string{"rejected by test"}
	}
	return true, nil
}

func buildModuleWithIdentifier(name string) (*ir.Module, string) {
	b := ir.NewBuilder()
	idID := b.Identifier(name, span.Span{})
	exprID := b.ExpressionStatement(idID, span.Span{})
	b.SetModuleHeader([]string{exprID}, ir.SourceInfo{}, nil)
	return b.Module(), idID
}

func TestRegistryRegisterRejectsDuplicateName(t *testing.T) {
	r := New()
	if err := r.Register(&renameTransform{from: "a", to: "b"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(&renameTransform{from: "a", to: "b"}); err == nil {
		t.Fatal("expected ConflictingName on duplicate registration")
	}
}

func TestRunCommitsAcceptedTransform(t *testing.T) {
	mod, idID := buildModuleWithIdentifier("oldName")
	tr := &renameTransform{from: "oldName", to: "newName"}

	diags := Run(mod, []Transform{tr}, Compatibility)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	n, _ := mod.Get(idID)
	if n.(*ir.Identifier).Name != "newName" {
		t.Errorf("identifier name = %q, want newName", n.(*ir.Identifier).Name)
	}
}

func TestRunRollsBackRejectedTransformInCompatibilityMode(t *testing.T) {
	mod, idID := buildModuleWithIdentifier("oldName")
	tr := &renameTransform{from: "oldName", to: "newName", rejected: true}

	diags := Run(mod, []Transform{tr}, Compatibility)
	if len(diags) == 0 {
		t.Fatal("expected a warning diagnostic for the rejected transform")
	}
	n, _ := mod.Get(idID)
	if n.(*ir.Identifier).Name != "oldName" {
		t.Errorf("identifier name = %q, want rollback to oldName", n.(*ir.Identifier).Name)
	}
}

func TestRunAbortsOnRejectedTransformInStrictMode(t *testing.T) {
	mod, _ := buildModuleWithIdentifier("oldName")
	tr := &renameTransform{from: "oldName", to: "newName", rejected: true}

	diags := Run(mod, []Transform{tr}, Strict)
	if len(diags) == 0 {
		t.Fatal("expected a fatal diagnostic in strict mode")
	}
}
