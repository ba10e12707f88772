package lower

import (
	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/span"
)

// classMembers splits a class body into its constructor (nil when absent)
// and its remaining methods/getters/setters in source order.
func classMembers(body *ast.ClassBody) (*ast.MethodDefinition, []*ast.MethodDefinition) {
	var ctor *ast.MethodDefinition
	members := make([]*ast.MethodDefinition, 0, len(body.Methods))
	for _, m := range body.Methods {
		if m.MethodOf == ast.MethodKindConstructor {
			ctor = m
			continue
		}
		members = append(members, m)
	}
	return ctor, members
}

// lowerClassMembers lowers every non-constructor member of a class into an
// assignment statement: `C.prototype.m = function...` for instance members,
// `C.m = function...` for static ones (§4.4 "Classes"). className names the
// class; a fresh Identifier referencing it is minted per use site since the
// IR has no shared-reference concept for identifiers.
func (l *Lowerer) lowerClassMembers(className string, members []*ast.MethodDefinition) ([]string, error) {
	out := make([]string, 0, len(members))
	for _, m := range members {
		sp := nodeSpan(m)
		classRef := l.b.Identifier(className, sp)

		var targetObj string
		if m.Static {
			targetObj = classRef
		} else {
			protoKey := l.b.Identifier("prototype", sp)
			targetObj = l.b.MemberExpression(classRef, protoKey, false, false, sp)
		}
		keyID := l.b.Identifier(m.Key.Name, nodeSpan(m.Key))
		memberTarget := l.b.MemberExpression(targetObj, keyID, false, false, sp)

		fnID, err := l.lowerFunctionExpression(m.Value, nodeSpan(m.Value))
		if err != nil {
			return nil, err
		}
		l.setMeta(fnID, "methodKind", string(m.MethodOf))

		asnID := l.b.AssignmentExpression("=", memberTarget, fnID, sp)
		out = append(out, l.b.ExpressionStatement(asnID, sp))
	}
	return out, nil
}

// lowerClassDeclaration desugars `class C [extends Super] { ... }` into a
// constructor FunctionDeclaration (flagged meta.classLike) followed by one
// assignment statement per member (§4.4). A class with no explicit
// constructor gets a synthesized empty one, so the Emitter always has a
// `C:new(...)` to build from.
func (l *Lowerer) lowerClassDeclaration(c *ast.ClassDeclaration, sp span.Span) ([]string, error) {
	l.declare(c.Name.Name)
	ctor, members := classMembers(c.Body)

	var params []*ast.Parameter
	var body *ast.BlockStatement
	if ctor != nil {
		params = ctor.Value.Params
		body = ctor.Value.Body
	} else {
		body = &ast.BlockStatement{Span: c.Span}
	}

	paramIDs, bodyID, err := l.lowerFunctionBody(params, body)
	if err != nil {
		return nil, err
	}
	nameID := l.b.Identifier(c.Name.Name, nodeSpan(c.Name))
	ctorID := l.b.FunctionDeclaration(nameID, paramIDs, bodyID, sp)
	l.setMeta(ctorID, "classLike", true)
	if c.SuperClass != nil {
		l.setMeta(ctorID, "superClass", c.SuperClass.Name)
	}
	l.attachCFG(ctorID, bodyID, sp)

	memberIDs, err := l.lowerClassMembers(c.Name.Name, members)
	if err != nil {
		return nil, err
	}

	return append([]string{ctorID}, memberIDs...), nil
}

// lowerClassExpression lowers a class used in expression position. There is
// no statement slot to hang the member-assignment statements off of, so
// they are folded into the constructor's body as leading statements,
// preserving the same `C.prototype.m = ...`/`C.m = ...` shape the
// declaration form produces (§4.4). The constructor function's own id is
// the value of the expression, matching `const C = class { ... }`.
func (l *Lowerer) lowerClassExpression(c *ast.ClassExpression, sp span.Span) (string, error) {
	name := "$anon_class"
	if c.Name != nil {
		name = c.Name.Name
		l.declare(name)
	}
	ctor, members := classMembers(c.Body)

	var params []*ast.Parameter
	var body *ast.BlockStatement
	if ctor != nil {
		params = ctor.Value.Params
		body = ctor.Value.Body
	} else {
		body = &ast.BlockStatement{Span: c.Span}
	}

	// Member assignments reference the class by name, not by anything
	// scoped to the constructor's parameters, so they can be lowered
	// before the constructor's own scope is pushed.
	memberIDs, err := l.lowerClassMembers(name, members)
	if err != nil {
		return "", err
	}

	l.pushScope()
	paramIDs, err := l.lowerParams(params)
	if err != nil {
		l.popScope()
		return "", err
	}
	ctorBodyIDs := make([]string, 0, len(body.Body))
	for _, stmt := range body.Body {
		ids, err := l.lowerStatement(stmt)
		if err != nil {
			l.popScope()
			return "", err
		}
		ctorBodyIDs = append(ctorBodyIDs, ids...)
	}
	if err := l.popScope(); err != nil {
		return "", err
	}

	// The member assignments run at the start of every constructor call,
	// ahead of whatever the constructor itself does (§4.4).
	fullBody := append(append([]string{}, memberIDs...), ctorBodyIDs...)
	bodyID := l.b.BlockStatement(fullBody, nodeSpan(body))

	nameID := ""
	if c.Name != nil {
		nameID = l.b.Identifier(c.Name.Name, nodeSpan(c.Name))
	}
	ctorID := l.b.FunctionExpression(nameID, paramIDs, bodyID, false, false, sp)
	l.setMeta(ctorID, "classLike", true)
	if c.SuperClass != nil {
		l.setMeta(ctorID, "superClass", c.SuperClass.Name)
	}
	l.attachCFG(ctorID, bodyID, sp)
	return ctorID, nil
}
