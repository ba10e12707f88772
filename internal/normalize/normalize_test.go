package normalize

import (
	"testing"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/jsonvalue"
)

func program(body ...*jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.Node("Program", jsonvalue.F("body", jsonvalue.Arr(body...)))
}

func TestNormalizeRejectsNonProgramRoot(t *testing.T) {
	_, err := Normalize(jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("x"))), false)
	if err == nil {
		t.Fatal("expected an InvalidInput error for a non-Program root, got nil")
	}
}

func TestNormalizeIdentifierAndLiteralRoundTrip(t *testing.T) {
	raw := program(
		jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression",
			jsonvalue.Node("BinaryExpression",
				jsonvalue.F("operator", jsonvalue.Str("+")),
				jsonvalue.F("left", jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("a")))),
				jsonvalue.F("right", jsonvalue.Node("Literal", jsonvalue.F("value", jsonvalue.Num(1)))),
			),
		)),
	)

	prog, err := Normalize(raw, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("len(prog.Body) = %d, want 1", len(prog.Body))
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("prog.Body[0] = %T, want *ast.ExpressionStatement", prog.Body[0])
	}
	bin, ok := stmt.Expr.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("stmt.Expr = %T, want *ast.BinaryExpression", stmt.Expr)
	}
	if bin.Operator != "+" {
		t.Errorf("bin.Operator = %q, want +", bin.Operator)
	}
	id, ok := bin.Left.(*ast.Identifier)
	if !ok || id.Name != "a" {
		t.Errorf("bin.Left = %+v, want Identifier(a)", bin.Left)
	}
	lit, ok := bin.Right.(*ast.Literal)
	if !ok || lit.Value.(float64) != 1 {
		t.Errorf("bin.Right = %+v, want Literal(1)", bin.Right)
	}
}

func TestNormalizeArrowFunctionRewrapsExpressionBody(t *testing.T) {
	raw := program(
		jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression",
			jsonvalue.Node("ArrowFunctionExpression",
				jsonvalue.F("params", jsonvalue.Arr(jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("x"))))),
				jsonvalue.F("body", jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("x")))),
			),
		)),
	)

	prog, err := Normalize(raw, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	arrow, ok := stmt.Expr.(*ast.ArrowFunctionExpression)
	if !ok {
		t.Fatalf("stmt.Expr = %T, want *ast.ArrowFunctionExpression", stmt.Expr)
	}
	if len(arrow.Body.Body) != 1 {
		t.Fatalf("len(arrow.Body.Body) = %d, want 1 (rewrapped return)", len(arrow.Body.Body))
	}
	ret, ok := arrow.Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("arrow.Body.Body[0] = %T, want *ast.ReturnStatement", arrow.Body.Body[0])
	}
	if id, ok := ret.Argument.(*ast.Identifier); !ok || id.Name != "x" {
		t.Errorf("ret.Argument = %+v, want Identifier(x)", ret.Argument)
	}
}

func TestNormalizeNestedDestructuringPattern(t *testing.T) {
	raw := program(
		jsonvalue.Node("VariableDeclaration",
			jsonvalue.F("kind", jsonvalue.Str("const")),
			jsonvalue.F("declarations", jsonvalue.Arr(
				jsonvalue.Node("VariableDeclarator",
					jsonvalue.F("id", jsonvalue.Node("ObjectPattern",
						jsonvalue.F("properties", jsonvalue.Arr(
							jsonvalue.Node("Property",
								jsonvalue.F("key", jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("a")))),
								jsonvalue.F("value", jsonvalue.Node("ArrayPattern",
									jsonvalue.F("elements", jsonvalue.Arr(
										jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("x"))),
										jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("y"))),
									)),
								)),
							),
						)),
					)),
					jsonvalue.F("init", jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("obj")))),
				),
			)),
		),
	)

	prog, err := Normalize(raw, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	decl := prog.Body[0].(*ast.VariableDeclaration)
	objPat, ok := decl.Declarations[0].NamePattern.(*ast.ObjectPattern)
	if !ok {
		t.Fatalf("NamePattern = %T, want *ast.ObjectPattern", decl.Declarations[0].NamePattern)
	}
	nested, ok := objPat.Properties[0].Value.(*ast.ArrayPattern)
	if !ok {
		t.Fatalf("Properties[0].Value = %T, want *ast.ArrayPattern", objPat.Properties[0].Value)
	}
	if len(nested.Elements) != 2 {
		t.Errorf("len(nested.Elements) = %d, want 2", len(nested.Elements))
	}
}

func TestNormalizeArrayElisionPreserved(t *testing.T) {
	raw := program(
		jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression",
			jsonvalue.Node("ArrayExpression", jsonvalue.F("elements", jsonvalue.Arr(
				jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("a"))),
				jsonvalue.NewNull(),
				jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("c"))),
			))),
		)),
	)

	prog, err := Normalize(raw, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	arr := prog.Body[0].(*ast.ExpressionStatement).Expr.(*ast.ArrayExpression)
	if len(arr.Elements) != 3 {
		t.Fatalf("len(arr.Elements) = %d, want 3", len(arr.Elements))
	}
	if arr.Elements[1] != nil {
		t.Errorf("arr.Elements[1] = %v, want nil (elision)", arr.Elements[1])
	}
}

func TestNormalizeUnsupportedConstructFailsHard(t *testing.T) {
	raw := program(
		jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression",
			jsonvalue.Node("SomeExoticNodeKind"),
		)),
	)
	_, err := Normalize(raw, false)
	if err == nil {
		t.Fatal("expected an UnsupportedConstruct error, got nil")
	}
}

func TestNormalizeStatementListFlattensNestedArrays(t *testing.T) {
	inner := jsonvalue.Arr(
		jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression", jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("a"))))),
		jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression", jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str("b"))))),
	)
	raw := program(inner)

	prog, err := Normalize(raw, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(prog.Body) != 2 {
		t.Fatalf("len(prog.Body) = %d, want 2 (flattened)", len(prog.Body))
	}
}

func TestFallbackRecognizeSalvagesSimpleDeclaration(t *testing.T) {
	raw := program(
		jsonvalue.Node("Error", jsonvalue.F("source", jsonvalue.Str("let total = 42;"))),
	)
	prog, err := Normalize(raw, true)
	if err != nil {
		t.Fatalf("Normalize with permissive=true: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("len(prog.Body) = %d, want 1", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("prog.Body[0] = %T, want *ast.VariableDeclaration", prog.Body[0])
	}
	if decl.DeclarationKind != ast.VarKindLet {
		t.Errorf("decl.DeclarationKind = %q, want let", decl.DeclarationKind)
	}
	if decl.Declarations[0].NamePattern.(*ast.Identifier).Name != "total" {
		t.Errorf("declared name = %q, want total", decl.Declarations[0].NamePattern.(*ast.Identifier).Name)
	}
}

func TestNormalizeStrictModeFailsOnErrorSentinelWithoutPermissive(t *testing.T) {
	raw := program(
		jsonvalue.Node("Error", jsonvalue.F("source", jsonvalue.Str("let total = 42;"))),
	)
	_, err := Normalize(raw, false)
	if err == nil {
		t.Fatal("expected a hard error with permissive=false, got nil")
	}
}
