// Package ast defines the canonical, ESTree-shaped abstract syntax tree that
// the Normalizer produces and the Lowerer consumes (§4.3).
//
// Unlike the loosely-typed raw tree the external parser hands the
// Normalizer, every node here is one of a fixed, closed set of Go types.
// Child slots hold real node references (not ids) - the AST is a tree, not
// yet the content-addressed graph the IR becomes after lowering - so true
// cycles are impossible by construction once the Normalizer has run; shared
// sub-trees are still possible and are handled by the Normalizer's seen-map
// (§4.3), not by anything in this package.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-jsl/internal/span"
	"github.com/cwbudde/go-jsl/internal/typemodel"
)

// Kind names a node's syntactic form. The set is closed and mirrors the IR
// kind vocabulary in §6.1 exactly, so a Lowerer switch over ast.Kind and a
// Validator switch over ir.Kind read the same way.
type Kind string

const (
	KindIdentifier              Kind = "Identifier"
	KindLiteral                 Kind = "Literal"
	KindBinaryExpression        Kind = "BinaryExpression"
	KindLogicalExpression       Kind = "LogicalExpression"
	KindAssignmentExpression    Kind = "AssignmentExpression"
	KindUpdateExpression        Kind = "UpdateExpression"
	KindConditionalExpression   Kind = "ConditionalExpression"
	KindUnaryExpression         Kind = "UnaryExpression"
	KindCallExpression          Kind = "CallExpression"
	KindNewExpression           Kind = "NewExpression"
	KindMemberExpression        Kind = "MemberExpression"
	KindArrayExpression         Kind = "ArrayExpression"
	KindObjectExpression        Kind = "ObjectExpression"
	KindProperty                Kind = "Property"
	KindTemplateLiteral         Kind = "TemplateLiteral"
	KindTemplateElement         Kind = "TemplateElement"
	KindSpreadElement           Kind = "SpreadElement"
	KindArrowFunctionExpression Kind = "ArrowFunctionExpression"
	KindFunctionExpression      Kind = "FunctionExpression"
	KindFunctionDeclaration     Kind = "FunctionDeclaration"
	KindAsyncFunctionDeclaration Kind = "AsyncFunctionDeclaration"
	KindGeneratorDeclaration    Kind = "GeneratorDeclaration"
	KindVariableDeclaration     Kind = "VariableDeclaration"
	KindVariableDeclarator      Kind = "VariableDeclarator"
	KindBlockStatement          Kind = "BlockStatement"
	KindExpressionStatement     Kind = "ExpressionStatement"
	KindReturnStatement         Kind = "ReturnStatement"
	KindIfStatement             Kind = "IfStatement"
	KindSwitchStatement         Kind = "SwitchStatement"
	KindSwitchCase              Kind = "SwitchCase"
	KindForStatement            Kind = "ForStatement"
	KindForOfStatement          Kind = "ForOfStatement"
	KindForInStatement          Kind = "ForInStatement"
	KindWhileStatement          Kind = "WhileStatement"
	KindDoWhileStatement        Kind = "DoWhileStatement"
	KindBreakStatement          Kind = "BreakStatement"
	KindContinueStatement       Kind = "ContinueStatement"
	KindThrowStatement          Kind = "ThrowStatement"
	KindTryStatement            Kind = "TryStatement"
	KindCatchClause             Kind = "CatchClause"
	KindClassDeclaration        Kind = "ClassDeclaration"
	KindClassExpression         Kind = "ClassExpression"
	KindClassBody               Kind = "ClassBody"
	KindMethodDefinition        Kind = "MethodDefinition"
	KindObjectPattern           Kind = "ObjectPattern"
	KindArrayPattern            Kind = "ArrayPattern"
	KindRestElement             Kind = "RestElement"
	KindAssignmentPattern       Kind = "AssignmentPattern"
	KindThisExpression          Kind = "ThisExpression"
	KindSuper                   Kind = "Super"
	KindAwaitExpression         Kind = "AwaitExpression"
	KindYieldExpression         Kind = "YieldExpression"
	KindParameter                Kind = "Parameter"
)

// Node is the base interface every AST node implements.
type Node interface {
	// Kind reports the node's closed syntactic tag.
	Kind() Kind
	// Pos returns the node's starting source position.
	Pos() span.Position
	// End returns the node's ending source position.
	End() span.Position
	// String returns a debug-oriented rendering, not valid source of any
	// language - useful for test failure messages and shape dumps.
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Pattern is any node that can appear on the left of a binding: an
// Identifier, ObjectPattern, ArrayPattern, or AssignmentPattern.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root of a canonical AST.
type Program struct {
	Body []Statement
	Span span.Span
}

func (p *Program) Kind() Kind        { return "Program" }
func (p *Program) Pos() span.Position { return p.Span.Start }
func (p *Program) End() span.Position { return p.Span.End }
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Body {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier names a variable, function, parameter, class, or property.
type Identifier struct {
	Name string
	Type *typemodel.Type
	Span span.Span
}

func (i *Identifier) Kind() Kind         { return KindIdentifier }
func (i *Identifier) Pos() span.Position { return i.Span.Start }
func (i *Identifier) End() span.Position { return i.Span.End }
func (i *Identifier) String() string     { return i.Name }
func (i *Identifier) expressionNode()    {}
func (i *Identifier) patternNode()       {}

// LiteralKind distinguishes the value domains a Literal can hold.
type LiteralKind string

const (
	LiteralString  LiteralKind = "string"
	LiteralNumber  LiteralKind = "number"
	LiteralBoolean LiteralKind = "boolean"
	LiteralNull    LiteralKind = "null"
)

// Literal is a string, number, boolean, or null constant.
type Literal struct {
	LitKind LiteralKind
	Value   interface{} // string, float64, or bool; nil when LitKind == LiteralNull
	Raw     string       // original source text, when available
	Span    span.Span
}

func (l *Literal) Kind() Kind         { return KindLiteral }
func (l *Literal) Pos() span.Position { return l.Span.Start }
func (l *Literal) End() span.Position { return l.Span.End }
func (l *Literal) expressionNode()    {}
func (l *Literal) String() string {
	switch l.LitKind {
	case LiteralString:
		return "\"" + strings.ReplaceAll(l.Value.(string), "\"", "\\\"") + "\""
	case LiteralNull:
		return "null"
	default:
		if l.Raw != "" {
			return l.Raw
		}
		return l.LitKind.String()
	}
}

func (k LiteralKind) String() string { return string(k) }

// ThisExpression is the `this` keyword.
type ThisExpression struct{ Span span.Span }

func (t *ThisExpression) Kind() Kind         { return KindThisExpression }
func (t *ThisExpression) Pos() span.Position { return t.Span.Start }
func (t *ThisExpression) End() span.Position { return t.Span.End }
func (t *ThisExpression) String() string     { return "this" }
func (t *ThisExpression) expressionNode()    {}

// Super is the `super` keyword, used in `super(...)` calls and
// `super.method(...)` member access within a derived class.
type Super struct{ Span span.Span }

func (s *Super) Kind() Kind         { return KindSuper }
func (s *Super) Pos() span.Position { return s.Span.Start }
func (s *Super) End() span.Position { return s.Span.End }
func (s *Super) String() string     { return "super" }
func (s *Super) expressionNode()    {}
