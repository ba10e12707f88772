package ir

import (
	"testing"

	"github.com/cwbudde/go-jsl/internal/span"
)

func TestBuilderInternAssignsIncreasingIDs(t *testing.T) {
	b := NewBuilder()
	a := b.Identifier("a", span.Span{})
	c := b.Identifier("b", span.Span{})
	if a == c {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if a != "id_0" {
		t.Errorf("first id = %q, want id_0", a)
	}
	if c != "id_1" {
		t.Errorf("second id = %q, want id_1", c)
	}
}

func TestBinaryExpressionChildrenReferencesOperands(t *testing.T) {
	b := NewBuilder()
	left := b.Identifier("a", span.Span{})
	right := b.Identifier("b", span.Span{})
	binID := b.BinaryExpression("+", left, right, span.Span{})

	node, ok := b.Module().Get(binID)
	if !ok {
		t.Fatalf("node %q not found", binID)
	}
	children := node.Children()
	if len(children) != 2 || children[0] != left || children[1] != right {
		t.Errorf("Children() = %v, want [%s %s]", children, left, right)
	}
}

func TestArrayExpressionChildrenSkipsElisions(t *testing.T) {
	b := NewBuilder()
	one := b.Literal(LiteralNumber, 1.0, "1", span.Span{})
	arrID := b.ArrayExpression([]string{one, "", one}, span.Span{})
	node, _ := b.Module().Get(arrID)
	children := node.Children()
	if len(children) != 2 {
		t.Fatalf("Children() = %v, want 2 entries (elision skipped)", children)
	}
}

func TestFunctionDeclarationChildrenIncludesParamsAndBody(t *testing.T) {
	b := NewBuilder()
	p1 := b.Parameter(b.Identifier("x", span.Span{}), "", false, span.Span{})
	body := b.BlockStatement(nil, span.Span{})
	fnID := b.FunctionDeclaration("f", []string{p1}, body, span.Span{})

	node, _ := b.Module().Get(fnID)
	children := node.Children()
	foundParam, foundBody := false, false
	for _, c := range children {
		if c == p1 {
			foundParam = true
		}
		if c == body {
			foundBody = true
		}
	}
	if !foundParam || !foundBody {
		t.Errorf("Children() = %v, want to include param %q and body %q", children, p1, body)
	}
}

func TestModuleRoundTripsThroughJSON(t *testing.T) {
	b := NewBuilder()
	left := b.Identifier("a", span.Span{})
	right := b.Literal(LiteralNumber, 2.0, "2", span.Span{})
	binID := b.BinaryExpression("+", left, right, span.Span{})
	exprStmt := b.ExpressionStatement(binID, span.Span{})
	b.SetModuleHeader([]string{exprStmt}, SourceInfo{Path: "in.js"}, nil)

	data, err := b.Module().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	restored := NewModule()
	if err := restored.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if restored.Header.Source.Path != "in.js" {
		t.Errorf("restored source path = %q, want in.js", restored.Header.Source.Path)
	}
	node, ok := restored.Get(binID)
	if !ok {
		t.Fatalf("restored module missing node %q", binID)
	}
	bin, ok := node.(*BinaryExpression)
	if !ok {
		t.Fatalf("restored node is %T, want *BinaryExpression", node)
	}
	if bin.Operator != "+" || bin.Left != left || bin.Right != right {
		t.Errorf("restored BinaryExpression = %+v, want operator + over %s/%s", bin, left, right)
	}
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	m := NewModule()
	err := m.UnmarshalJSON([]byte(`{"schemaVersion":"1.0","module":{"id":"mod_0","body":[]},"nodes":{"x_0":{"id":"x_0","kind":"NotAKind","fields":{}}}}`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized kind, got nil")
	}
}

func TestAllKindsHavePrefixes(t *testing.T) {
	for k := range AllKinds {
		if _, ok := prefixFor[k]; !ok {
			t.Errorf("kind %q has no entry in prefixFor", k)
		}
	}
}
