package ast

import (
	"bytes"

	"github.com/cwbudde/go-jsl/internal/span"
)

// MethodKind distinguishes a MethodDefinition's role within a class body.
type MethodKind string

const (
	MethodKindMethod      MethodKind = "method"
	MethodKindConstructor MethodKind = "constructor"
	MethodKindGetter      MethodKind = "get"
	MethodKindSetter      MethodKind = "set"
)

// MethodDefinition is one member of a ClassBody: a method, getter, setter,
// or the constructor. Static marks a `static` member (lowered to `C.m`
// rather than `C.prototype.m`, §4.4).
type MethodDefinition struct {
	Key      *Identifier
	Value    *FunctionExpression
	MethodOf MethodKind
	Static   bool
	Span     span.Span
}

func (m *MethodDefinition) Kind() Kind         { return KindMethodDefinition }
func (m *MethodDefinition) Pos() span.Position { return m.Span.Start }
func (m *MethodDefinition) End() span.Position { return m.Span.End }
func (m *MethodDefinition) statementNode()     {}
func (m *MethodDefinition) String() string {
	prefix := ""
	if m.Static {
		prefix = "static "
	}
	return prefix + m.Key.Name + m.Value.String()
}

// ClassBody groups a class's MethodDefinitions in source order.
type ClassBody struct {
	Methods []*MethodDefinition
	Span    span.Span
}

func (c *ClassBody) Kind() Kind         { return KindClassBody }
func (c *ClassBody) Pos() span.Position { return c.Span.Start }
func (c *ClassBody) End() span.Position { return c.Span.End }
func (c *ClassBody) statementNode()     {}
func (c *ClassBody) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, m := range c.Methods {
		out.WriteString("  ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ClassDeclaration is `class C [extends Super] { ... }` used as a
// statement. The Lowerer lowers this to a constructor FunctionDeclaration
// plus a sequence of prototype/static assignment statements (§4.4).
type ClassDeclaration struct {
	Name       *Identifier
	SuperClass *Identifier // nil when there is no `extends` clause
	Body       *ClassBody
	Span       span.Span
}

func (c *ClassDeclaration) Kind() Kind         { return KindClassDeclaration }
func (c *ClassDeclaration) Pos() span.Position { return c.Span.Start }
func (c *ClassDeclaration) End() span.Position { return c.Span.End }
func (c *ClassDeclaration) statementNode()     {}
func (c *ClassDeclaration) String() string {
	s := "class " + c.Name.Name
	if c.SuperClass != nil {
		s += " extends " + c.SuperClass.Name
	}
	return s + " " + c.Body.String()
}

// ClassExpression is a class used in expression position, e.g.
// `const C = class extends Base { ... }`.
type ClassExpression struct {
	Name       *Identifier // nil for an anonymous class expression
	SuperClass *Identifier
	Body       *ClassBody
	Span       span.Span
}

func (c *ClassExpression) Kind() Kind         { return KindClassExpression }
func (c *ClassExpression) Pos() span.Position { return c.Span.Start }
func (c *ClassExpression) End() span.Position { return c.Span.End }
func (c *ClassExpression) expressionNode()    {}
func (c *ClassExpression) String() string {
	s := "class"
	if c.Name != nil {
		s += " " + c.Name.Name
	}
	if c.SuperClass != nil {
		s += " extends " + c.SuperClass.Name
	}
	return s + " " + c.Body.String()
}
