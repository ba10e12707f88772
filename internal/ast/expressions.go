package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-jsl/internal/span"
)

// BinaryExpression is a two-operand arithmetic, comparison, or bitwise
// expression. Operator is carried verbatim from the source text (===, !==,
// **, etc) - the Emitter maps it to Lua, the Lowerer does not interpret it
// (§4.4 "Operator/expression trees").
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
	Span     span.Span
}

func (b *BinaryExpression) Kind() Kind         { return KindBinaryExpression }
func (b *BinaryExpression) Pos() span.Position { return b.Span.Start }
func (b *BinaryExpression) End() span.Position { return b.Span.End }
func (b *BinaryExpression) expressionNode()    {}
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// LogicalExpression is `&&`, `||`, or `??`. Kept distinct from
// BinaryExpression because short-circuit evaluation matters to the Emitter's
// precedence table (§4.5: or=1, and=2).
type LogicalExpression struct {
	Operator string
	Left     Expression
	Right    Expression
	Span     span.Span
}

func (l *LogicalExpression) Kind() Kind         { return KindLogicalExpression }
func (l *LogicalExpression) Pos() span.Position { return l.Span.Start }
func (l *LogicalExpression) End() span.Position { return l.Span.End }
func (l *LogicalExpression) expressionNode()    {}
func (l *LogicalExpression) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

// AssignmentExpression is `=`, `+=`, `-=`, etc. Left may be an Identifier or
// MemberExpression; the Validator rejects any other left-hand side (§4.6).
type AssignmentExpression struct {
	Operator string
	Left     Expression
	Right    Expression
	Span     span.Span
}

func (a *AssignmentExpression) Kind() Kind         { return KindAssignmentExpression }
func (a *AssignmentExpression) Pos() span.Position { return a.Span.Start }
func (a *AssignmentExpression) End() span.Position { return a.Span.End }
func (a *AssignmentExpression) expressionNode()    {}
func (a *AssignmentExpression) String() string {
	return a.Left.String() + " " + a.Operator + " " + a.Right.String()
}

// UpdateExpression is `++`/`--`, prefix or postfix.
type UpdateExpression struct {
	Operator string
	Argument Expression
	Prefix   bool
	Span     span.Span
}

func (u *UpdateExpression) Kind() Kind         { return KindUpdateExpression }
func (u *UpdateExpression) Pos() span.Position { return u.Span.Start }
func (u *UpdateExpression) End() span.Position { return u.Span.End }
func (u *UpdateExpression) expressionNode()    {}
func (u *UpdateExpression) String() string {
	if u.Prefix {
		return u.Operator + u.Argument.String()
	}
	return u.Argument.String() + u.Operator
}

// ConditionalExpression is the ternary `test ? consequent : alternate`.
type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Span       span.Span
}

func (c *ConditionalExpression) Kind() Kind         { return KindConditionalExpression }
func (c *ConditionalExpression) Pos() span.Position { return c.Span.Start }
func (c *ConditionalExpression) End() span.Position { return c.Span.End }
func (c *ConditionalExpression) expressionNode()    {}
func (c *ConditionalExpression) String() string {
	return "(" + c.Test.String() + " ? " + c.Consequent.String() + " : " + c.Alternate.String() + ")"
}

// UnaryExpression is a single-operand prefix operator: `!`, `-`, `+`,
// `typeof`, `void`.
type UnaryExpression struct {
	Operator string
	Argument Expression
	Span     span.Span
}

func (u *UnaryExpression) Kind() Kind         { return KindUnaryExpression }
func (u *UnaryExpression) Pos() span.Position { return u.Span.Start }
func (u *UnaryExpression) End() span.Position { return u.Span.End }
func (u *UnaryExpression) expressionNode()    {}
func (u *UnaryExpression) String() string {
	return u.Operator + u.Argument.String()
}

// CallExpression invokes Callee with Arguments. Optional carries `?.()`
// optional-call chaining (§4.4 "Optional chaining").
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
	Optional  bool
	Span      span.Span
}

func (c *CallExpression) Kind() Kind         { return KindCallExpression }
func (c *CallExpression) Pos() span.Position { return c.Span.Start }
func (c *CallExpression) End() span.Position { return c.Span.End }
func (c *CallExpression) expressionNode()    {}
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	sep := "("
	if c.Optional {
		sep = "?.("
	}
	return c.Callee.String() + sep + strings.Join(args, ", ") + ")"
}

// NewExpression is `new Callee(Arguments)`.
type NewExpression struct {
	Callee    Expression
	Arguments []Expression
	Span      span.Span
}

func (n *NewExpression) Kind() Kind         { return KindNewExpression }
func (n *NewExpression) Pos() span.Position { return n.Span.Start }
func (n *NewExpression) End() span.Position { return n.Span.End }
func (n *NewExpression) expressionNode()    {}
func (n *NewExpression) String() string {
	args := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = a.String()
	}
	return "new " + n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression is `object.property` or `object[property]`. Computed
// distinguishes the two; Optional carries `?.` (§4.4).
type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
	Optional bool
	Span     span.Span
}

func (m *MemberExpression) Kind() Kind         { return KindMemberExpression }
func (m *MemberExpression) Pos() span.Position { return m.Span.Start }
func (m *MemberExpression) End() span.Position { return m.Span.End }
func (m *MemberExpression) expressionNode()    {}
func (m *MemberExpression) String() string {
	op := "."
	if m.Optional {
		op = "?."
	}
	if m.Computed {
		return m.Object.String() + op + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + op + m.Property.String()
}

// ArrayExpression is an array literal; elements may include SpreadElement.
type ArrayExpression struct {
	Elements []Expression // a nil entry represents an elided slot, e.g. `[a, , c]`
	Span     span.Span
}

func (a *ArrayExpression) Kind() Kind         { return KindArrayExpression }
func (a *ArrayExpression) Pos() span.Position { return a.Span.Start }
func (a *ArrayExpression) End() span.Position { return a.Span.End }
func (a *ArrayExpression) expressionNode()    {}
func (a *ArrayExpression) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectExpression is an object literal of Properties (and possibly
// SpreadElement entries, represented via Property.Shorthand==false with a
// nil Key and Value == *SpreadElement).
type ObjectExpression struct {
	Properties []*Property
	Span       span.Span
}

func (o *ObjectExpression) Kind() Kind         { return KindObjectExpression }
func (o *ObjectExpression) Pos() span.Position { return o.Span.Start }
func (o *ObjectExpression) End() span.Position { return o.Span.End }
func (o *ObjectExpression) expressionNode()    {}
func (o *ObjectExpression) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, p := range o.Properties {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString("}")
	return out.String()
}

// Property is a single `key: value` entry of an ObjectExpression, or an
// ObjectPattern entry when used for destructuring.
type Property struct {
	Key       Expression
	Value     Expression
	Computed  bool
	Shorthand bool
	Span      span.Span
}

func (p *Property) Kind() Kind         { return KindProperty }
func (p *Property) Pos() span.Position { return p.Span.Start }
func (p *Property) End() span.Position { return p.Span.End }
func (p *Property) expressionNode()    {}
func (p *Property) String() string {
	if p.Shorthand {
		return p.Key.String()
	}
	key := p.Key.String()
	if p.Computed {
		key = "[" + key + "]"
	}
	return key + ": " + p.Value.String()
}

// TemplateLiteral alternates Quasis (TemplateElement) and Expressions:
// Quasis always has one more element than Expressions.
type TemplateLiteral struct {
	Quasis      []*TemplateElement
	Expressions []Expression
	Span        span.Span
}

func (t *TemplateLiteral) Kind() Kind         { return KindTemplateLiteral }
func (t *TemplateLiteral) Pos() span.Position { return t.Span.Start }
func (t *TemplateLiteral) End() span.Position { return t.Span.End }
func (t *TemplateLiteral) expressionNode()    {}
func (t *TemplateLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("`")
	for i, q := range t.Quasis {
		out.WriteString(q.Raw)
		if i < len(t.Expressions) {
			out.WriteString("${")
			out.WriteString(t.Expressions[i].String())
			out.WriteString("}")
		}
	}
	out.WriteString("`")
	return out.String()
}

// TemplateElement is one literal run between `${...}` interpolations.
type TemplateElement struct {
	Raw    string
	Cooked string
	Tail   bool
	Span   span.Span
}

func (t *TemplateElement) Kind() Kind         { return KindTemplateElement }
func (t *TemplateElement) Pos() span.Position { return t.Span.Start }
func (t *TemplateElement) End() span.Position { return t.Span.End }
func (t *TemplateElement) expressionNode()    {}
func (t *TemplateElement) String() string     { return t.Raw }

// SpreadElement is `...expr`, valid in array/object literals, call
// arguments, and (as RestElement) in patterns.
type SpreadElement struct {
	Argument Expression
	Span     span.Span
}

func (s *SpreadElement) Kind() Kind         { return KindSpreadElement }
func (s *SpreadElement) Pos() span.Position { return s.Span.Start }
func (s *SpreadElement) End() span.Position { return s.Span.End }
func (s *SpreadElement) expressionNode()    {}
func (s *SpreadElement) String() string     { return "..." + s.Argument.String() }

// AwaitExpression suspends an async function until Argument resolves.
type AwaitExpression struct {
	Argument Expression
	Span     span.Span
}

func (a *AwaitExpression) Kind() Kind         { return KindAwaitExpression }
func (a *AwaitExpression) Pos() span.Position { return a.Span.Start }
func (a *AwaitExpression) End() span.Position { return a.Span.End }
func (a *AwaitExpression) expressionNode()    {}
func (a *AwaitExpression) String() string     { return "await " + a.Argument.String() }

// YieldExpression suspends a generator, optionally delegating (`yield*`).
type YieldExpression struct {
	Argument Expression // nil for a bare `yield`
	Delegate bool
	Span     span.Span
}

func (y *YieldExpression) Kind() Kind         { return KindYieldExpression }
func (y *YieldExpression) Pos() span.Position { return y.Span.Start }
func (y *YieldExpression) End() span.Position { return y.Span.End }
func (y *YieldExpression) expressionNode()    {}
func (y *YieldExpression) String() string {
	star := ""
	if y.Delegate {
		star = "*"
	}
	if y.Argument == nil {
		return "yield" + star
	}
	return "yield" + star + " " + y.Argument.String()
}
