package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-jsl/internal/span"
)

// VarKind is the declaration keyword: `var`, `let`, or `const`. The Emitter
// discards this at code-generation time - every declaration becomes a Lua
// `local` regardless of source kind (§4.5) - but it is retained on the AST
// and IR because the Validator cross-checks it against each declarator
// (§3.3 invariant 4).
type VarKind string

const (
	VarKindVar   VarKind = "var"
	VarKindLet   VarKind = "let"
	VarKindConst VarKind = "const"
)

// VariableDeclarator is one `name = init` (or `pattern = init`) binding
// within a VariableDeclaration.
type VariableDeclarator struct {
	NamePattern Pattern // Identifier, ObjectPattern, or ArrayPattern
	Init        Expression // nil when uninitialized (`let x;`)
	VarKind     VarKind
	Span        span.Span
}

func (v *VariableDeclarator) Kind() Kind         { return KindVariableDeclarator }
func (v *VariableDeclarator) Pos() span.Position { return v.Span.Start }
func (v *VariableDeclarator) End() span.Position { return v.Span.End }
func (v *VariableDeclarator) statementNode()     {}
func (v *VariableDeclarator) String() string {
	if v.Init == nil {
		return v.NamePattern.String()
	}
	return v.NamePattern.String() + " = " + v.Init.String()
}

// VariableDeclaration groups one or more VariableDeclarators sharing a
// DeclarationKind: `let a = 1, b = 2;`.
type VariableDeclaration struct {
	DeclarationKind VarKind
	Declarations    []*VariableDeclarator
	Span            span.Span
}

func (v *VariableDeclaration) Kind() Kind         { return KindVariableDeclaration }
func (v *VariableDeclaration) Pos() span.Position { return v.Span.Start }
func (v *VariableDeclaration) End() span.Position { return v.Span.End }
func (v *VariableDeclaration) statementNode()     {}
func (v *VariableDeclaration) String() string {
	parts := make([]string, len(v.Declarations))
	for i, d := range v.Declarations {
		parts[i] = d.String()
	}
	return string(v.DeclarationKind) + " " + strings.Join(parts, ", ") + ";"
}

// BlockStatement is a `{ ... }` sequence of statements introducing a new
// lexical scope.
type BlockStatement struct {
	Body []Statement
	Span span.Span
}

func (b *BlockStatement) Kind() Kind         { return KindBlockStatement }
func (b *BlockStatement) Pos() span.Position { return b.Span.Start }
func (b *BlockStatement) End() span.Position { return b.Span.End }
func (b *BlockStatement) statementNode()     {}
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Body {
		out.WriteString("  ")
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement wraps an expression used as a standalone statement,
// e.g. a bare call `f();`. §4.3 preserves this wrapper even where the raw
// parser's shape might have let it slip, since the Emitter needs to know an
// expression appears at statement position to indent and terminate it with a
// newline (§4.5).
type ExpressionStatement struct {
	Expr Expression
	Span span.Span
}

func (e *ExpressionStatement) Kind() Kind         { return KindExpressionStatement }
func (e *ExpressionStatement) Pos() span.Position { return e.Span.Start }
func (e *ExpressionStatement) End() span.Position { return e.Span.End }
func (e *ExpressionStatement) statementNode()     {}
func (e *ExpressionStatement) String() string     { return e.Expr.String() + ";" }

// ReturnStatement is `return expr;` or a bare `return;`.
type ReturnStatement struct {
	Argument Expression // nil for a bare return
	Span     span.Span
}

func (r *ReturnStatement) Kind() Kind         { return KindReturnStatement }
func (r *ReturnStatement) Pos() span.Position { return r.Span.Start }
func (r *ReturnStatement) End() span.Position { return r.Span.End }
func (r *ReturnStatement) statementNode()     {}
func (r *ReturnStatement) String() string {
	if r.Argument == nil {
		return "return;"
	}
	return "return " + r.Argument.String() + ";"
}
