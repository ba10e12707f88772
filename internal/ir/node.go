// Package ir defines the canonical intermediate representation: a
// content-addressed graph of nodes keyed by balanced-ternary ids (§3).
// Every node type here mirrors one entry of the closed kind vocabulary in
// §6.1; child slots hold node ids rather than embedded pointers, which is
// what makes the graph cheap to clone, serialize, and rewrite (§9, "Cyclic/
// shared graphs").
package ir

import "github.com/cwbudde/go-jsl/internal/span"

// Kind names an IR node's closed syntactic tag. It intentionally uses the
// same string vocabulary as ast.Kind so a Lowerer switch over one and a
// Validator/Emitter switch over the other read identically, without making
// the ir package depend on the ast package.
type Kind string

const (
	KindIdentifier               Kind = "Identifier"
	KindLiteral                  Kind = "Literal"
	KindBinaryExpression         Kind = "BinaryExpression"
	KindLogicalExpression        Kind = "LogicalExpression"
	KindAssignmentExpression     Kind = "AssignmentExpression"
	KindUpdateExpression         Kind = "UpdateExpression"
	KindConditionalExpression    Kind = "ConditionalExpression"
	KindUnaryExpression          Kind = "UnaryExpression"
	KindCallExpression           Kind = "CallExpression"
	KindNewExpression            Kind = "NewExpression"
	KindMemberExpression         Kind = "MemberExpression"
	KindArrayExpression          Kind = "ArrayExpression"
	KindObjectExpression         Kind = "ObjectExpression"
	KindProperty                 Kind = "Property"
	KindTemplateLiteral          Kind = "TemplateLiteral"
	KindTemplateElement          Kind = "TemplateElement"
	KindSpreadElement            Kind = "SpreadElement"
	KindArrowFunctionExpression  Kind = "ArrowFunctionExpression"
	KindFunctionExpression       Kind = "FunctionExpression"
	KindFunctionDeclaration      Kind = "FunctionDeclaration"
	KindAsyncFunctionDeclaration Kind = "AsyncFunctionDeclaration"
	KindGeneratorDeclaration     Kind = "GeneratorDeclaration"
	KindVariableDeclaration      Kind = "VariableDeclaration"
	KindVariableDeclarator       Kind = "VariableDeclarator"
	KindBlockStatement           Kind = "BlockStatement"
	KindExpressionStatement      Kind = "ExpressionStatement"
	KindReturnStatement          Kind = "ReturnStatement"
	KindIfStatement              Kind = "IfStatement"
	KindSwitchStatement          Kind = "SwitchStatement"
	KindSwitchCase               Kind = "SwitchCase"
	KindForStatement             Kind = "ForStatement"
	KindForOfStatement           Kind = "ForOfStatement"
	KindForInStatement           Kind = "ForInStatement"
	KindWhileStatement           Kind = "WhileStatement"
	KindDoWhileStatement         Kind = "DoWhileStatement"
	KindBreakStatement           Kind = "BreakStatement"
	KindContinueStatement        Kind = "ContinueStatement"
	KindThrowStatement           Kind = "ThrowStatement"
	KindTryStatement             Kind = "TryStatement"
	KindCatchClause              Kind = "CatchClause"
	KindClassDeclaration         Kind = "ClassDeclaration"
	KindClassExpression          Kind = "ClassExpression"
	KindClassBody                Kind = "ClassBody"
	KindMethodDefinition         Kind = "MethodDefinition"
	KindObjectPattern            Kind = "ObjectPattern"
	KindArrayPattern             Kind = "ArrayPattern"
	KindRestElement              Kind = "RestElement"
	KindAssignmentPattern        Kind = "AssignmentPattern"
	KindThisExpression           Kind = "ThisExpression"
	KindSuper                    Kind = "Super"
	KindAwaitExpression          Kind = "AwaitExpression"
	KindYieldExpression          Kind = "YieldExpression"
	KindParameter                Kind = "Parameter"
)

// AllKinds is the closed kind set named in §6.1, used by the Validator to
// reject anything else.
var AllKinds = map[Kind]bool{
	KindIdentifier: true, KindLiteral: true, KindBinaryExpression: true,
	KindLogicalExpression: true, KindAssignmentExpression: true, KindUpdateExpression: true,
	KindConditionalExpression: true, KindUnaryExpression: true, KindCallExpression: true,
	KindNewExpression: true, KindMemberExpression: true, KindArrayExpression: true,
	KindObjectExpression: true, KindProperty: true, KindTemplateLiteral: true,
	KindTemplateElement: true, KindSpreadElement: true, KindArrowFunctionExpression: true,
	KindFunctionExpression: true, KindFunctionDeclaration: true, KindAsyncFunctionDeclaration: true,
	KindGeneratorDeclaration: true, KindVariableDeclaration: true, KindVariableDeclarator: true,
	KindBlockStatement: true, KindExpressionStatement: true, KindReturnStatement: true,
	KindIfStatement: true, KindSwitchStatement: true, KindSwitchCase: true,
	KindForStatement: true, KindForOfStatement: true, KindForInStatement: true,
	KindWhileStatement: true, KindDoWhileStatement: true, KindBreakStatement: true,
	KindContinueStatement: true, KindThrowStatement: true, KindTryStatement: true,
	KindCatchClause: true, KindClassDeclaration: true, KindClassExpression: true,
	KindClassBody: true, KindMethodDefinition: true, KindObjectPattern: true,
	KindArrayPattern: true, KindRestElement: true, KindAssignmentPattern: true,
	KindThisExpression: true, KindSuper: true, KindAwaitExpression: true,
	KindYieldExpression: true, KindParameter: true,
}

// VarKind mirrors ast.VarKind for VariableDeclaration/VariableDeclarator
// nodes (§3.3 invariant 4).
type VarKind string

const (
	VarKindVar   VarKind = "var"
	VarKindLet   VarKind = "let"
	VarKindConst VarKind = "const"
)

// Doc carries the comments attached to a node, preserved through lowering so
// the Emitter (or a future pretty-printer) can reproduce them.
type Doc struct {
	LeadingComments  []string `json:"leadingComments,omitempty"`
	TrailingComments []string `json:"trailingComments,omitempty"`
}

// Node is the interface every IR node implements. Child references are
// always ids (strings), never other Nodes - see the package doc.
type Node interface {
	NodeID() string
	NodeKind() Kind
	NodeSpan() *span.Span
	NodeFlags() []string
	NodeDoc() Doc
	NodeMeta() map[string]interface{}
	// SetMeta stamps a key onto the node's metadata bag, lazily allocating
	// it. Used by the Lowerer to attach post-hoc markers (e.g. a desugared
	// class's meta.classLike, a function's meta.cfg) to an already-interned
	// node without needing a mutable builder round-trip (§3.4: nodes are
	// interned once; metadata stamping is the one narrow exception).
	SetMeta(key string, value interface{})
	// Children returns every node-id this node references as a child,
	// skipping empty-string placeholders for absent optional children. Used
	// by the Validator for referential-integrity and acyclicity checks, and
	// by transforms that need to walk the graph generically.
	Children() []string
	// Fields returns the kind-specific payload as a plain map, used by the
	// JSON serializer (§6.1) and by golden-shape summaries.
	Fields() map[string]interface{}

	base() *Base
}

// Base holds the fields common to every IR node (§3.3). Concrete node types
// embed Base and get the Node interface's common methods for free through
// Go's method promotion.
type Base struct {
	ID      string
	KindTag Kind
	Span    *span.Span
	Flags   []string
	Doc     Doc
	Meta    map[string]interface{}
}

func (b *Base) NodeID() string                    { return b.ID }
func (b *Base) NodeKind() Kind                     { return b.KindTag }
func (b *Base) NodeSpan() *span.Span               { return b.Span }
func (b *Base) NodeFlags() []string                { return b.Flags }
func (b *Base) NodeDoc() Doc                        { return b.Doc }
func (b *Base) NodeMeta() map[string]interface{}    { return b.Meta }
func (b *Base) SetMeta(key string, value interface{}) {
	if b.Meta == nil {
		b.Meta = map[string]interface{}{}
	}
	b.Meta[key] = value
}
func (b *Base) base() *Base                         { return b }

// ids filters out empty-string placeholders, so callers can build a
// Children() slice with optional child ids inline without a branch per slot.
func ids(candidates ...string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// idLists flattens one or more []string slices (e.g. a statement list and a
// parameter list) into a single Children() result.
func idLists(lists ...[]string) []string {
	out := []string{}
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
