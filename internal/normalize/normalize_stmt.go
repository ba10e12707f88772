package normalize

import (
	"fmt"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/jsonvalue"
	"github.com/cwbudde/go-jsl/internal/span"
)

// normalizeStatement dispatches a raw node to its canonical Statement shape.
func (n *Normalizer) normalizeStatement(raw *jsonvalue.Value) (ast.Statement, error) {
	if raw == nil {
		return nil, fmt.Errorf("normalize: InvalidInput: nil statement node")
	}
	sp := spanOf(raw)

	switch raw.TypeTag() {
	case "ExpressionStatement":
		expr, err := n.normalizeExpression(fieldAny(raw, "expression"))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: expr, Span: sp}, nil

	case "BlockStatement":
		body, err := n.normalizeStatementList(raw.FieldArray("body"))
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Body: body, Span: sp}, nil

	case "VariableDeclaration":
		return n.normalizeVariableDeclaration(raw, sp)

	case "FunctionDeclaration":
		return n.normalizeFunctionDeclaration(raw, sp)

	case "ReturnStatement":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Argument: arg, Span: sp}, nil

	case "IfStatement":
		test, err := n.normalizeExpression(fieldAny(raw, "test", "condition"))
		if err != nil {
			return nil, err
		}
		cons, err := n.normalizeStatement(fieldAny(raw, "consequent", "then"))
		if err != nil {
			return nil, err
		}
		var alt ast.Statement
		if altRaw := fieldAny(raw, "alternate", "else"); altRaw != nil && altRaw.Kind() != jsonvalue.KindUndefined && altRaw.Kind() != jsonvalue.KindNull {
			alt, err = n.normalizeStatement(altRaw)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStatement{Test: test, Consequent: cons, Alternate: alt, Span: sp}, nil

	case "SwitchStatement":
		return n.normalizeSwitchStatement(raw, sp)

	case "ForStatement":
		return n.normalizeForStatement(raw, sp)

	case "ForOfStatement":
		return n.normalizeForOfStatement(raw, sp)

	case "ForInStatement":
		return n.normalizeForInStatement(raw, sp)

	case "WhileStatement":
		test, err := n.normalizeExpression(fieldAny(raw, "test"))
		if err != nil {
			return nil, err
		}
		body, err := n.normalizeStatement(fieldAny(raw, "body"))
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Test: test, Body: body, Span: sp}, nil

	case "DoWhileStatement":
		body, err := n.normalizeStatement(fieldAny(raw, "body"))
		if err != nil {
			return nil, err
		}
		test, err := n.normalizeExpression(fieldAny(raw, "test"))
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStatement{Body: body, Test: test, Span: sp}, nil

	case "BreakStatement":
		return &ast.BreakStatement{Span: sp}, nil

	case "ContinueStatement":
		return &ast.ContinueStatement{Span: sp}, nil

	case "ThrowStatement":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Argument: arg, Span: sp}, nil

	case "TryStatement":
		return n.normalizeTryStatement(raw, sp)

	case "ClassDeclaration":
		return n.normalizeClassDeclaration(raw, sp)

	default:
		return nil, fmt.Errorf("normalize: UnsupportedConstruct(%s): unrecognized statement node type", raw.TypeTag())
	}
}

func (n *Normalizer) normalizeVariableDeclaration(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	kind := ast.VarKind(stringField(raw, "kind"))
	declRaw := raw.FieldArray("declarations")
	decls := make([]*ast.VariableDeclarator, 0, len(declRaw))
	for _, d := range declRaw {
		pat, err := n.normalizePattern(fieldAny(d, "id"))
		if err != nil {
			return nil, err
		}
		init, err := n.normalizeExpression(fieldAny(d, "init"))
		if err != nil {
			return nil, err
		}
		decls = append(decls, &ast.VariableDeclarator{NamePattern: pat, Init: init, VarKind: kind, Span: spanOf(d)})
	}
	return &ast.VariableDeclaration{DeclarationKind: kind, Declarations: decls, Span: sp}, nil
}

// normalizeFunctionDeclaration maps the raw shape (a single "FunctionDeclaration"
// tag carrying "async"/"generator" boolean flags) onto the three distinct
// canonical kinds the AST uses to keep async/generator-ness part of the
// node's type rather than a flag the Lowerer has to remember to check
// (§4.4: "preserve the source's async/generator flags on the node kind").
func (n *Normalizer) normalizeFunctionDeclaration(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	name, params, body, err := n.normalizeFunctionShape(raw)
	if err != nil {
		return nil, err
	}
	async := boolField(raw, "async")
	generator := boolField(raw, "generator")

	switch {
	case generator:
		return &ast.GeneratorDeclaration{Name: name, Params: params, Body: body, AsyncGenerator: async, Span: sp}, nil
	case async:
		return &ast.AsyncFunctionDeclaration{Name: name, Params: params, Body: body, Span: sp}, nil
	default:
		return &ast.FunctionDeclaration{Name: name, Params: params, Body: body, Span: sp}, nil
	}
}

func (n *Normalizer) normalizeFunctionExpression(raw *jsonvalue.Value, sp span.Span) (ast.Expression, error) {
	name, params, body, err := n.normalizeFunctionShape(raw)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpression{
		Name: name, Params: params, Body: body,
		Async: boolField(raw, "async"), Generator: boolField(raw, "generator"), Span: sp,
	}, nil
}

// normalizeFunctionShape reads the fields common to every function-like raw
// node: an optional name identifier, the parameter list, and a body that is
// always normalized down to a BlockStatement.
func (n *Normalizer) normalizeFunctionShape(raw *jsonvalue.Value) (*ast.Identifier, []*ast.Parameter, *ast.BlockStatement, error) {
	var name *ast.Identifier
	if idRaw := fieldAny(raw, "id", "name"); idRaw != nil && idRaw.TypeTag() == "Identifier" {
		name = &ast.Identifier{Name: stringField(idRaw, "name"), Span: spanOf(idRaw)}
	}

	params, err := n.normalizeParams(raw.FieldArray("params"))
	if err != nil {
		return nil, nil, nil, err
	}

	body, err := n.normalizeBlock(fieldAny(raw, "body"))
	if err != nil {
		return nil, nil, nil, err
	}
	return name, params, body, nil
}

// normalizeBlock normalizes a function/arrow body that is expected to be a
// BlockStatement, erroring if it isn't - callers that permit an expression
// body (arrow functions) handle the rewrap themselves before reaching here.
func (n *Normalizer) normalizeBlock(raw *jsonvalue.Value) (*ast.BlockStatement, error) {
	if raw == nil || raw.TypeTag() != "BlockStatement" {
		return nil, fmt.Errorf("normalize: InvalidInput: expected a BlockStatement body, got %q", typeTagOrEmpty(raw))
	}
	stmt, err := n.normalizeStatement(raw)
	if err != nil {
		return nil, err
	}
	return stmt.(*ast.BlockStatement), nil
}

// normalizeArrowFunction rewraps a concise (expression-bodied) arrow
// function into a block containing a single ReturnStatement, so every
// downstream pass only ever sees ArrowFunctionExpression.Body as a
// *BlockStatement (§4.3).
func (n *Normalizer) normalizeArrowFunction(raw *jsonvalue.Value, sp span.Span) (ast.Expression, error) {
	params, err := n.normalizeParams(raw.FieldArray("params"))
	if err != nil {
		return nil, err
	}

	bodyRaw := fieldAny(raw, "body")
	var body *ast.BlockStatement
	if bodyRaw != nil && bodyRaw.TypeTag() == "BlockStatement" {
		body, err = n.normalizeBlock(bodyRaw)
		if err != nil {
			return nil, err
		}
	} else {
		expr, err := n.normalizeExpression(bodyRaw)
		if err != nil {
			return nil, err
		}
		body = &ast.BlockStatement{
			Body: []ast.Statement{&ast.ReturnStatement{Argument: expr, Span: span.Span{Start: expr.Pos(), End: expr.End()}}},
			Span: spanOf(bodyRaw),
		}
	}

	return &ast.ArrowFunctionExpression{Params: params, Body: body, Async: boolField(raw, "async"), Span: sp}, nil
}

func (n *Normalizer) normalizeSwitchStatement(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	disc, err := n.normalizeExpression(fieldAny(raw, "discriminant"))
	if err != nil {
		return nil, err
	}
	casesRaw := raw.FieldArray("cases")
	cases := make([]*ast.SwitchCase, 0, len(casesRaw))
	for _, c := range casesRaw {
		test, err := n.normalizeExpression(fieldAny(c, "test"))
		if err != nil {
			return nil, err
		}
		consequent, err := n.normalizeStatementList(c.FieldArray("consequent"))
		if err != nil {
			return nil, err
		}
		cases = append(cases, &ast.SwitchCase{Test: test, Consequent: consequent, Span: spanOf(c)})
	}
	return &ast.SwitchStatement{Discriminant: disc, Cases: cases, Span: sp}, nil
}

func (n *Normalizer) normalizeForStatement(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	var init ast.Node
	if initRaw := fieldAny(raw, "init"); initRaw != nil && initRaw.Kind() != jsonvalue.KindUndefined && initRaw.Kind() != jsonvalue.KindNull {
		if initRaw.TypeTag() == "VariableDeclaration" {
			stmt, err := n.normalizeVariableDeclaration(initRaw, spanOf(initRaw))
			if err != nil {
				return nil, err
			}
			init = stmt.(*ast.VariableDeclaration)
		} else {
			expr, err := n.normalizeExpression(initRaw)
			if err != nil {
				return nil, err
			}
			init = expr
		}
	}
	test, err := n.normalizeExpression(fieldAny(raw, "test"))
	if err != nil {
		return nil, err
	}
	update, err := n.normalizeExpression(fieldAny(raw, "update"))
	if err != nil {
		return nil, err
	}
	body, err := n.normalizeStatement(fieldAny(raw, "body"))
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Init: init, Test: test, Update: update, Body: body, Span: sp}, nil
}

func (n *Normalizer) normalizeForOfLeft(raw *jsonvalue.Value) (ast.Node, error) {
	if raw.TypeTag() == "VariableDeclaration" {
		stmt, err := n.normalizeVariableDeclaration(raw, spanOf(raw))
		if err != nil {
			return nil, err
		}
		return stmt.(*ast.VariableDeclaration), nil
	}
	return n.normalizePattern(raw)
}

func (n *Normalizer) normalizeForOfStatement(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	left, err := n.normalizeForOfLeft(fieldAny(raw, "left"))
	if err != nil {
		return nil, err
	}
	right, err := n.normalizeExpression(fieldAny(raw, "right"))
	if err != nil {
		return nil, err
	}
	body, err := n.normalizeStatement(fieldAny(raw, "body"))
	if err != nil {
		return nil, err
	}
	return &ast.ForOfStatement{Left: left, Right: right, Body: body, Await: boolField(raw, "await"), Span: sp}, nil
}

func (n *Normalizer) normalizeForInStatement(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	left, err := n.normalizeForOfLeft(fieldAny(raw, "left"))
	if err != nil {
		return nil, err
	}
	right, err := n.normalizeExpression(fieldAny(raw, "right"))
	if err != nil {
		return nil, err
	}
	body, err := n.normalizeStatement(fieldAny(raw, "body"))
	if err != nil {
		return nil, err
	}
	return &ast.ForInStatement{Left: left, Right: right, Body: body, Span: sp}, nil
}

func (n *Normalizer) normalizeTryStatement(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	blockRaw := fieldAny(raw, "block")
	block, err := n.normalizeBlock(blockRaw)
	if err != nil {
		return nil, err
	}

	var handler *ast.CatchClause
	if h := fieldAny(raw, "handler"); h != nil && h.Kind() != jsonvalue.KindUndefined && h.Kind() != jsonvalue.KindNull {
		var param ast.Pattern
		if p := fieldAny(h, "param"); p != nil && p.Kind() != jsonvalue.KindUndefined && p.Kind() != jsonvalue.KindNull {
			param, err = n.normalizePattern(p)
			if err != nil {
				return nil, err
			}
		}
		hBody, err := n.normalizeBlock(fieldAny(h, "body"))
		if err != nil {
			return nil, err
		}
		handler = &ast.CatchClause{Param: param, Body: hBody, Span: spanOf(h)}
	}

	var finalizer *ast.BlockStatement
	if f := fieldAny(raw, "finalizer"); f != nil && f.Kind() != jsonvalue.KindUndefined && f.Kind() != jsonvalue.KindNull {
		finalizer, err = n.normalizeBlock(f)
		if err != nil {
			return nil, err
		}
	}

	return &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer, Span: sp}, nil
}

func (n *Normalizer) normalizeClassDeclaration(raw *jsonvalue.Value, sp span.Span) (ast.Statement, error) {
	name, super, body, err := n.normalizeClassShape(raw)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDeclaration{Name: name, SuperClass: super, Body: body, Span: sp}, nil
}

func (n *Normalizer) normalizeClassExpression(raw *jsonvalue.Value, sp span.Span) (ast.Expression, error) {
	name, super, body, err := n.normalizeClassShape(raw)
	if err != nil {
		return nil, err
	}
	return &ast.ClassExpression{Name: name, SuperClass: super, Body: body, Span: sp}, nil
}

func (n *Normalizer) normalizeClassShape(raw *jsonvalue.Value) (*ast.Identifier, *ast.Identifier, *ast.ClassBody, error) {
	var name *ast.Identifier
	if idRaw := fieldAny(raw, "id"); idRaw != nil && idRaw.TypeTag() == "Identifier" {
		name = &ast.Identifier{Name: stringField(idRaw, "name"), Span: spanOf(idRaw)}
	}

	var super *ast.Identifier
	if supRaw := fieldAny(raw, "superClass"); supRaw != nil && supRaw.TypeTag() == "Identifier" {
		super = &ast.Identifier{Name: stringField(supRaw, "name"), Span: spanOf(supRaw)}
	}

	bodyRaw := fieldAny(raw, "body")
	methodsRaw := bodyRaw.FieldArray("body")
	methods := make([]*ast.MethodDefinition, 0, len(methodsRaw))
	for _, m := range methodsRaw {
		method, err := n.normalizeMethodDefinition(m)
		if err != nil {
			return nil, nil, nil, err
		}
		methods = append(methods, method)
	}

	return name, super, &ast.ClassBody{Methods: methods, Span: spanOf(bodyRaw)}, nil
}

func (n *Normalizer) normalizeMethodDefinition(raw *jsonvalue.Value) (*ast.MethodDefinition, error) {
	keyRaw := fieldAny(raw, "key")
	var key *ast.Identifier
	if keyRaw != nil && keyRaw.TypeTag() == "Identifier" {
		key = &ast.Identifier{Name: stringField(keyRaw, "name"), Span: spanOf(keyRaw)}
	}

	valueRaw := fieldAny(raw, "value")
	value, err := n.normalizeFunctionExpression(valueRaw, spanOf(valueRaw))
	if err != nil {
		return nil, err
	}

	kind := ast.MethodKind(stringField(raw, "kind"))
	if kind == "" {
		kind = ast.MethodKindMethod
	}

	return &ast.MethodDefinition{
		Key: key, Value: value.(*ast.FunctionExpression), MethodOf: kind,
		Static: boolField(raw, "static"), Span: spanOf(raw),
	}, nil
}
