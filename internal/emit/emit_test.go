package emit

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

// These tests build IR directly through ir.Builder, the same bottom-up
// style internal/lower and internal/validate's own test files use, so the
// Emitter is exercised in isolation from Normalize/Lower.

func mustEmit(t *testing.T, b *ir.Builder, body []string) string {
	t.Helper()
	b.SetModuleHeader(body, ir.SourceInfo{Path: "t.js"}, nil)
	code, d := Emit(b.Module(), DefaultOptions())
	if d != nil {
		t.Fatalf("Emit: %v", d)
	}
	return code
}

func TestEmitBinaryExpressionParenthesizesAtStatementLevel(t *testing.T) {
	b := ir.NewBuilder()
	x := b.Identifier("x", span.Span{})
	five := b.Literal(ir.LiteralNumber, 5.0, "5", span.Span{})
	bin := b.BinaryExpression(">", x, five, span.Span{})
	ifStmt := b.IfStatement(bin, b.BlockStatement(nil, span.Span{}), "", span.Span{})

	code := mustEmit(t, b, []string{ifStmt})
	if !strings.Contains(code, "if (x > 5) then") {
		t.Errorf("code = %q, want substring %q", code, "if (x > 5) then")
	}
}

func TestEmitStringConcatInference(t *testing.T) {
	b := ir.NewBuilder()
	str := b.Literal(ir.LiteralString, "x", `"x"`, span.Span{})
	y := b.Identifier("y", span.Span{})
	plus := b.BinaryExpression("+", str, y, span.Span{})
	dtor := b.VariableDeclarator(b.Identifier("s", span.Span{}), plus, ir.VarKindConst, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindConst, []string{dtor}, span.Span{})

	code := mustEmit(t, b, []string{decl})
	want := "local s = (\"x\" .. y)\n"
	if code != want {
		t.Errorf("code = %q, want %q", code, want)
	}
}

func TestEmitNumericAdditionStaysArithmetic(t *testing.T) {
	b := ir.NewBuilder()
	one := b.Literal(ir.LiteralNumber, 1.0, "1", span.Span{})
	two := b.Literal(ir.LiteralNumber, 2.0, "2", span.Span{})
	plus := b.BinaryExpression("+", one, two, span.Span{})
	dtor := b.VariableDeclarator(b.Identifier("s", span.Span{}), plus, ir.VarKindConst, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindConst, []string{dtor}, span.Span{})

	code := mustEmit(t, b, []string{decl})
	if !strings.Contains(code, "(1 + 2)") {
		t.Errorf("code = %q, want substring %q", code, "(1 + 2)")
	}
	if strings.Contains(code, "..") {
		t.Errorf("code = %q, should not infer string concat for two numeric literals", code)
	}
}

func TestEmitBinaryOperandPrecedence(t *testing.T) {
	// (a + b) * c must keep the parens around its lower-precedence left operand.
	b := ir.NewBuilder()
	a := b.Identifier("a", span.Span{})
	bb := b.Identifier("b", span.Span{})
	c := b.Identifier("c", span.Span{})
	sum := b.BinaryExpression("+", a, bb, span.Span{})
	mul := b.BinaryExpression("*", sum, c, span.Span{})
	dtor := b.VariableDeclarator(b.Identifier("r", span.Span{}), mul, ir.VarKindConst, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindConst, []string{dtor}, span.Span{})

	code := mustEmit(t, b, []string{decl})
	if !strings.Contains(code, "(a + b) * c") {
		t.Errorf("code = %q, want substring %q", code, "(a + b) * c")
	}
}

func TestEmitFunctionDeclaration(t *testing.T) {
	b := ir.NewBuilder()
	a := b.Identifier("a", span.Span{})
	bIdent := b.Identifier("b", span.Span{})
	paramA := b.Parameter(a, "", false, span.Span{})
	paramB := b.Parameter(bIdent, "", false, span.Span{})
	sum := b.BinaryExpression("+", a, bIdent, span.Span{})
	ret := b.ReturnStatement(sum, span.Span{})
	body := b.BlockStatement([]string{ret}, span.Span{})
	fn := b.FunctionDeclaration(b.Identifier("add", span.Span{}), []string{paramA, paramB}, body, span.Span{})

	code := mustEmit(t, b, []string{fn})
	want := "local function add(a, b)\n  return (a + b)\nend\n"
	if code != want {
		t.Errorf("code = %q, want %q", code, want)
	}
}

func TestEmitIfElseChain(t *testing.T) {
	b := ir.NewBuilder()
	x := b.Identifier("x", span.Span{})
	five := b.Literal(ir.LiteralNumber, 5.0, "5", span.Span{})
	test := b.BinaryExpression(">", x, five, span.Span{})

	one := b.Literal(ir.LiteralNumber, 1.0, "1", span.Span{})
	plus := b.BinaryExpression("+", x, one, span.Span{})
	assignThen := b.AssignmentExpression("=", b.Identifier("x", span.Span{}), plus, span.Span{})
	thenBlock := b.BlockStatement([]string{b.ExpressionStatement(assignThen, span.Span{})}, span.Span{})

	minus := b.BinaryExpression("-", x, one, span.Span{})
	assignElse := b.AssignmentExpression("=", b.Identifier("x", span.Span{}), minus, span.Span{})
	elseBlock := b.BlockStatement([]string{b.ExpressionStatement(assignElse, span.Span{})}, span.Span{})

	ifStmt := b.IfStatement(test, thenBlock, elseBlock, span.Span{})

	code := mustEmit(t, b, []string{ifStmt})
	for _, want := range []string{"if (x > 5) then", "x = (x + 1)", "else", "x = (x - 1)", "end"} {
		if !strings.Contains(code, want) {
			t.Errorf("code = %q, want substring %q", code, want)
		}
	}
}

func TestEmitTryCatchFinallyOrder(t *testing.T) {
	b := ir.NewBuilder()
	f := b.CallExpression(b.Identifier("f", span.Span{}), nil, false, span.Span{})
	block := b.BlockStatement([]string{b.ExpressionStatement(f, span.Span{})}, span.Span{})

	e := b.Identifier("e", span.Span{})
	g := b.CallExpression(b.Identifier("g", span.Span{}), []string{b.Identifier("e", span.Span{})}, false, span.Span{})
	handlerBody := b.BlockStatement([]string{b.ExpressionStatement(g, span.Span{})}, span.Span{})
	handler := b.CatchClause(e, handlerBody, span.Span{})

	h := b.CallExpression(b.Identifier("h", span.Span{}), nil, false, span.Span{})
	finalizer := b.BlockStatement([]string{b.ExpressionStatement(h, span.Span{})}, span.Span{})

	tryStmt := b.TryStatement(block, handler, finalizer, span.Span{})

	code := mustEmit(t, b, []string{tryStmt})
	fIdx := strings.Index(code, "f()")
	xpcallIdx := strings.Index(code, "xpcall(")
	notOkIdx := strings.Index(code, "if not __ok then")
	gIdx := strings.Index(code, "g(e)")
	hIdx := strings.Index(code, "h()")
	if fIdx < 0 || xpcallIdx < 0 || notOkIdx < 0 || gIdx < 0 || hIdx < 0 {
		t.Fatalf("code missing expected fragments: %q", code)
	}
	if !(fIdx < xpcallIdx && xpcallIdx < notOkIdx && notOkIdx < gIdx && gIdx < hIdx) {
		t.Errorf("code fragments out of order: %q", code)
	}
}

func TestEmitArrayDestructureWithHoleAndRest(t *testing.T) {
	b := ir.NewBuilder()
	arr := b.Identifier("arr", span.Span{})
	a := b.Identifier("a", span.Span{})
	c := b.Identifier("c", span.Span{})
	rest := b.RestElement(b.Identifier("rest", span.Span{}), span.Span{})
	pattern := b.ArrayPattern([]string{a, "", c}, rest, span.Span{})
	dtor := b.VariableDeclarator(pattern, arr, ir.VarKindConst, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindConst, []string{dtor}, span.Span{})

	code := mustEmit(t, b, []string{decl})
	for _, want := range []string{
		"local __tmp1 = arr",
		"local a = __tmp1[1]",
		"local c = __tmp1[3]",
		"local rest = {}",
		"for __tmp2 = 4, #__tmp1 do",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code = %q, want substring %q", code, want)
		}
	}
}

func TestEmitAsyncFunctionUsesCoroutine(t *testing.T) {
	b := ir.NewBuilder()
	g := b.CallExpression(b.Identifier("g", span.Span{}), nil, false, span.Span{})
	await := b.AwaitExpression(g, span.Span{})
	body := b.BlockStatement([]string{b.ExpressionStatement(await, span.Span{})}, span.Span{})
	fn := b.AsyncFunctionDeclaration(b.Identifier("f", span.Span{}), nil, body, span.Span{})

	code := mustEmit(t, b, []string{fn})
	for _, want := range []string{"local function f()", "coroutine.create(function()", "coroutine.yield(g())", "end)", "end"} {
		if !strings.Contains(code, want) {
			t.Errorf("code = %q, want substring %q", code, want)
		}
	}
}

func TestEmitFailsOnDanglingReference(t *testing.T) {
	b := ir.NewBuilder()
	decl := b.VariableDeclaration(ir.VarKindConst, []string{"vdtor_missing"}, span.Span{})
	b.SetModuleHeader([]string{decl}, ir.SourceInfo{}, nil)

	code, d := Emit(b.Module(), DefaultOptions())
	if d == nil {
		t.Fatal("expected a BrokenReference diagnostic for a dangling declarator id")
	}
	if code != "" {
		t.Errorf("code = %q, want empty string on emit failure", code)
	}
}

func TestEmitVariableDeclarationWithoutInit(t *testing.T) {
	b := ir.NewBuilder()
	dtor := b.VariableDeclarator(b.Identifier("x", span.Span{}), "", ir.VarKindLet, span.Span{})
	decl := b.VariableDeclaration(ir.VarKindLet, []string{dtor}, span.Span{})

	code := mustEmit(t, b, []string{decl})
	if !strings.Contains(code, "local x") {
		t.Errorf("code = %q, want substring %q", code, "local x")
	}
}
