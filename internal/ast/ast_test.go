package ast

import (
	"testing"

	"github.com/cwbudde/go-jsl/internal/span"
)

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func TestBinaryExpressionString(t *testing.T) {
	bin := &BinaryExpression{Operator: "+", Left: ident("a"), Right: ident("b")}
	if got, want := bin.String(), "(a + b)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if bin.Kind() != KindBinaryExpression {
		t.Errorf("Kind() = %q, want %q", bin.Kind(), KindBinaryExpression)
	}
}

func TestIfStatementStringWithAndWithoutElse(t *testing.T) {
	withoutElse := &IfStatement{
		Test:       ident("cond"),
		Consequent: &ExpressionStatement{Expr: ident("a")},
	}
	if got, want := withoutElse.String(), "if (cond) a;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	withElse := &IfStatement{
		Test:       ident("cond"),
		Consequent: &ExpressionStatement{Expr: ident("a")},
		Alternate:  &ExpressionStatement{Expr: ident("b")},
	}
	if got, want := withElse.String(), "if (cond) a; else b;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestArrayPatternWithElisionAndRest(t *testing.T) {
	pattern := &ArrayPattern{
		Elements: []Pattern{ident("a"), nil, ident("c")},
		Rest:     &RestElement{Argument: ident("rest")},
	}
	if got, want := pattern.String(), "[a, , c, ...rest]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAssignmentPatternDefaultValue(t *testing.T) {
	pattern := &AssignmentPattern{
		Left:  ident("a"),
		Right: &Literal{LitKind: LiteralNumber, Value: 1.0, Raw: "1"},
	}
	if got, want := pattern.String(), "a = 1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestClassDeclarationWithSuperclass(t *testing.T) {
	cls := &ClassDeclaration{
		Name:       ident("Dog"),
		SuperClass: ident("Animal"),
		Body:       &ClassBody{},
	}
	got := cls.String()
	want := "class Dog extends Animal {\n}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLiteralEscapesQuotesInStrings(t *testing.T) {
	lit := &Literal{LitKind: LiteralString, Value: `say "hi"`}
	got := lit.String()
	want := `"say \"hi\""`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestOptionalMemberAndCallExpressionString(t *testing.T) {
	member := &MemberExpression{Object: ident("a"), Property: ident("b"), Optional: true}
	if got, want := member.String(), "a?.b"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	call := &CallExpression{Callee: ident("f"), Optional: true}
	if got, want := call.String(), "f?.()"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSpanAccessorsRoundTrip(t *testing.T) {
	sp := span.Span{Start: span.Position{Line: 1, Column: 1}, End: span.Position{Line: 1, Column: 5}}
	id := &Identifier{Name: "x", Span: sp}
	if id.Pos() != sp.Start || id.End() != sp.End {
		t.Errorf("Pos/End = %v/%v, want %v/%v", id.Pos(), id.End(), sp.Start, sp.End)
	}
}
