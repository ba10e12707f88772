package lower

import (
	"testing"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func numLit(v float64) *ast.Literal {
	return &ast.Literal{LitKind: ast.LiteralNumber, Value: v}
}

func TestLowerVariableDeclaration(t *testing.T) {
	prog := &ast.Program{Body: []ast.Statement{
		&ast.VariableDeclaration{
			DeclarationKind: ast.VarKindConst,
			Declarations: []*ast.VariableDeclarator{
				{NamePattern: ident("x"), Init: numLit(1), VarKind: ast.VarKindConst},
			},
		},
	}}

	mod, err := New().Lower(prog, "t.js")
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(mod.Header.Body) != 1 {
		t.Fatalf("len(mod.Header.Body) = %d, want 1", len(mod.Header.Body))
	}
	n, ok := mod.Get(mod.Header.Body[0])
	if !ok {
		t.Fatal("top-level declaration missing from node table")
	}
	decl, ok := n.(*ir.VariableDeclaration)
	if !ok {
		t.Fatalf("top-level node = %T, want *ir.VariableDeclaration", n)
	}
	if decl.DeclarationKind != ir.VarKindConst {
		t.Errorf("DeclarationKind = %q, want const", decl.DeclarationKind)
	}
	if len(decl.Declarations) != 1 {
		t.Fatalf("len(decl.Declarations) = %d, want 1", len(decl.Declarations))
	}
	dtor, ok := mod.Get(decl.Declarations[0])
	if !ok {
		t.Fatal("declarator missing from node table")
	}
	vd := dtor.(*ir.VariableDeclarator)
	if vd.VarKind != ir.VarKindConst {
		t.Errorf("declarator VarKind = %q, want const", vd.VarKind)
	}
}

func TestLowerVariableDeclarationRejectsKindMismatch(t *testing.T) {
	prog := &ast.Program{Body: []ast.Statement{
		&ast.VariableDeclaration{
			DeclarationKind: ast.VarKindConst,
			Declarations: []*ast.VariableDeclarator{
				{NamePattern: ident("x"), Init: numLit(1), VarKind: ast.VarKindLet},
			},
		},
	}}

	if _, err := New().Lower(prog, "t.js"); err == nil {
		t.Fatal("expected an InternalError for mismatched varKind/declarationKind, got nil")
	}
}

func TestLowerSwitchDesugarsToIfElseChainWithDefaultLast(t *testing.T) {
	sw := &ast.SwitchStatement{
		Discriminant: ident("x"),
		Cases: []*ast.SwitchCase{
			{Test: nil, Consequent: []ast.Statement{&ast.ExpressionStatement{Expr: ident("defaultCase")}}},
			{Test: numLit(1), Consequent: []ast.Statement{&ast.ExpressionStatement{Expr: ident("caseOne")}}},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{sw}}

	mod, err := New().Lower(prog, "t.js")
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(mod.Header.Body) != 2 {
		t.Fatalf("len(mod.Header.Body) = %d, want 2 (temp decl + if-chain)", len(mod.Header.Body))
	}
	n, ok := mod.Get(mod.Header.Body[1])
	if !ok {
		t.Fatal("if-chain root missing from node table")
	}
	ifStmt, ok := n.(*ir.IfStatement)
	if !ok {
		t.Fatalf("second top-level node = %T, want *ir.IfStatement", n)
	}
	test, ok := mod.Get(ifStmt.Test)
	if !ok || test.NodeKind() != ir.KindBinaryExpression {
		t.Errorf("if-chain test = %v, want a BinaryExpression comparing against case 1", test)
	}
	if ifStmt.Alternate == "" {
		t.Fatal("if-chain has no alternate; expected the default case to form it")
	}
	altNode, ok := mod.Get(ifStmt.Alternate)
	if !ok || altNode.NodeKind() != ir.KindBlockStatement {
		t.Errorf("if-chain alternate = %v, want the default case's block", altNode)
	}
}

func TestLowerFunctionDeclarationAttachesCFG(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Name: ident("f"),
		Params: []*ast.Parameter{
			{Pattern: ident("a")},
		},
		Body: &ast.BlockStatement{Body: []ast.Statement{
			&ast.ReturnStatement{Argument: ident("a")},
		}},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	mod, err := New().Lower(prog, "t.js")
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	n, ok := mod.Get(mod.Header.Body[0])
	if !ok {
		t.Fatal("function declaration missing from node table")
	}
	fnNode := n.(*ir.FunctionDeclaration)
	meta := fnNode.NodeMeta()
	if meta == nil || meta["cfg"] == nil {
		t.Fatal("expected meta.cfg to be stamped on the lowered function")
	}
	cfgMeta := meta["cfg"].(map[string]interface{})
	cfg, ok := mod.ControlFlowGraphs[cfgMeta["id"].(string)]
	if !ok {
		t.Fatal("CFG referenced by meta.cfg.id not registered on the module")
	}
	if len(cfg.Blocks) != 2 {
		t.Fatalf("len(cfg.Blocks) = %d, want 2 (entry, exit)", len(cfg.Blocks))
	}
}

func TestLowerClassDeclarationProducesConstructorAndMemberAssignment(t *testing.T) {
	cls := &ast.ClassDeclaration{
		Name: ident("C"),
		Body: &ast.ClassBody{
			Methods: []*ast.MethodDefinition{
				{
					Key:      ident("greet"),
					MethodOf: ast.MethodKindMethod,
					Value: &ast.FunctionExpression{
						Body: &ast.BlockStatement{},
					},
				},
			},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{cls}}

	mod, err := New().Lower(prog, "t.js")
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(mod.Header.Body) != 2 {
		t.Fatalf("len(mod.Header.Body) = %d, want 2 (constructor + one member assignment)", len(mod.Header.Body))
	}
	ctorNode, _ := mod.Get(mod.Header.Body[0])
	ctor, ok := ctorNode.(*ir.FunctionDeclaration)
	if !ok {
		t.Fatalf("first top-level node = %T, want *ir.FunctionDeclaration", ctorNode)
	}
	if classLike, _ := ctor.NodeMeta()["classLike"].(bool); !classLike {
		t.Error("constructor's meta.classLike was not set")
	}

	assignNode, _ := mod.Get(mod.Header.Body[1])
	assignStmt, ok := assignNode.(*ir.ExpressionStatement)
	if !ok {
		t.Fatalf("second top-level node = %T, want *ir.ExpressionStatement", assignNode)
	}
	exprNode, _ := mod.Get(assignStmt.Expr)
	asn, ok := exprNode.(*ir.AssignmentExpression)
	if !ok {
		t.Fatalf("member statement's expression = %T, want *ir.AssignmentExpression", exprNode)
	}
	target, _ := mod.Get(asn.Target)
	member, ok := target.(*ir.MemberExpression)
	if !ok {
		t.Fatalf("assignment target = %T, want *ir.MemberExpression", target)
	}
	propNode, _ := mod.Get(member.Property)
	if propNode.(*ir.Identifier).Name != "greet" {
		t.Errorf("member property = %q, want greet", propNode.(*ir.Identifier).Name)
	}
}

func TestLowerTryCatchSharesOneScopeForParamAndBody(t *testing.T) {
	tryStmt := &ast.TryStatement{
		Block: &ast.BlockStatement{},
		Handler: &ast.CatchClause{
			Param: ident("e"),
			Body: &ast.BlockStatement{Body: []ast.Statement{
				&ast.ExpressionStatement{Expr: ident("e")},
			}},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{tryStmt}}

	mod, err := New().Lower(prog, "t.js")
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	n, _ := mod.Get(mod.Header.Body[0])
	ts, ok := n.(*ir.TryStatement)
	if !ok {
		t.Fatalf("top-level node = %T, want *ir.TryStatement", n)
	}
	if ts.Handler == "" {
		t.Fatal("expected a CatchClause on the lowered try statement")
	}
}

func TestNodeSpanHelper(t *testing.T) {
	lit := &ast.Literal{Span: span.Span{}}
	sp := nodeSpan(lit)
	if !sp.IsZero() {
		t.Errorf("nodeSpan of a zero-span node = %+v, want zero", sp)
	}
}
