package ir

import (
	"github.com/cwbudde/go-jsl/internal/idgen"
	"github.com/cwbudde/go-jsl/internal/span"
)

// prefixFor maps a Kind to the short id prefix used when interning a node of
// that kind, so a node id like "call_1T" is recognizable at a glance without
// decoding its counter. Kinds that never appear standalone in practice still
// get a prefix for completeness with AllKinds.
var prefixFor = map[Kind]string{
	KindIdentifier:               "id",
	KindLiteral:                  "lit",
	KindBinaryExpression:         "bin",
	KindLogicalExpression:        "log",
	KindAssignmentExpression:     "asn",
	KindUpdateExpression:         "upd",
	KindConditionalExpression:    "cond",
	KindUnaryExpression:          "un",
	KindCallExpression:           "call",
	KindNewExpression:            "new",
	KindMemberExpression:         "mem",
	KindArrayExpression:          "arr",
	KindObjectExpression:         "obj",
	KindProperty:                 "prop",
	KindTemplateLiteral:          "tmpl",
	KindTemplateElement:          "quasi",
	KindSpreadElement:            "spread",
	KindArrowFunctionExpression:  "arrow",
	KindFunctionExpression:       "fnexpr",
	KindFunctionDeclaration:      "fn",
	KindAsyncFunctionDeclaration: "afn",
	KindGeneratorDeclaration:     "gfn",
	KindVariableDeclaration:      "vdecl",
	KindVariableDeclarator:       "vdtor",
	KindBlockStatement:           "blk",
	KindExpressionStatement:      "expst",
	KindReturnStatement:          "ret",
	KindIfStatement:              "if",
	KindSwitchStatement:          "sw",
	KindSwitchCase:               "case",
	KindForStatement:             "for",
	KindForOfStatement:           "forof",
	KindForInStatement:           "forin",
	KindWhileStatement:           "while",
	KindDoWhileStatement:         "dowhile",
	KindBreakStatement:           "brk",
	KindContinueStatement:        "cont",
	KindThrowStatement:           "throw",
	KindTryStatement:             "try",
	KindCatchClause:              "catch",
	KindClassDeclaration:         "cls",
	KindClassExpression:          "clsexpr",
	KindClassBody:                "clsbody",
	KindMethodDefinition:         "meth",
	KindObjectPattern:            "opat",
	KindArrayPattern:             "apat",
	KindRestElement:              "rest",
	KindAssignmentPattern:        "apatn",
	KindThisExpression:           "this",
	KindSuper:                    "super",
	KindAwaitExpression:          "await",
	KindYieldExpression:          "yield",
	KindParameter:                "param",
}

// Builder constructs IR nodes and interns them into a Module, handing out
// fresh balanced-ternary ids as it goes. A Builder owns exactly one Module
// and one idgen.Generator; construct a new Builder per compile (§5).
type Builder struct {
	module *Module
	gen    *idgen.Generator
}

// NewBuilder returns a Builder writing into a fresh, empty Module.
func NewBuilder() *Builder {
	return &Builder{module: NewModule(), gen: idgen.New()}
}

// Module returns the Module the Builder has been writing into.
func (b *Builder) Module() *Module { return b.module }

// NextID mints a fresh id under prefix from the Builder's id generator
// without interning a node. Used by the Lowerer for ids that don't name an
// IR node - CFG and basic-block ids (§3.1 names "cfg" and "bb" as their own
// namespaces alongside "node"/"decl").
func (b *Builder) NextID(prefix string) string {
	return b.gen.Next(prefix)
}

// intern assigns n an id and kind, stores it in the Module's node table, and
// returns the id for callers that only need the reference.
func (b *Builder) intern(kind Kind, n Node) string {
	base := n.base()
	base.KindTag = kind
	base.ID = b.gen.Next(prefixFor[kind])
	b.module.Nodes[base.ID] = n
	return base.ID
}

func (b *Builder) Identifier(name string, sp span.Span) string {
	return b.intern(KindIdentifier, &Identifier{Base: Base{Span: &sp}, Name: name})
}

func (b *Builder) Literal(litKind LiteralKind, value interface{}, raw string, sp span.Span) string {
	return b.intern(KindLiteral, &Literal{Base: Base{Span: &sp}, LitKind: litKind, Value: value, Raw: raw})
}

func (b *Builder) ThisExpression(sp span.Span) string {
	return b.intern(KindThisExpression, &ThisExpression{Base: Base{Span: &sp}})
}

func (b *Builder) Super(sp span.Span) string {
	return b.intern(KindSuper, &Super{Base: Base{Span: &sp}})
}

func (b *Builder) BinaryExpression(operator, left, right string, sp span.Span) string {
	return b.intern(KindBinaryExpression, &BinaryExpression{Base: Base{Span: &sp}, Operator: operator, Left: left, Right: right})
}

func (b *Builder) LogicalExpression(operator, left, right string, sp span.Span) string {
	return b.intern(KindLogicalExpression, &LogicalExpression{Base: Base{Span: &sp}, Operator: operator, Left: left, Right: right})
}

func (b *Builder) AssignmentExpression(operator, target, value string, sp span.Span) string {
	return b.intern(KindAssignmentExpression, &AssignmentExpression{Base: Base{Span: &sp}, Operator: operator, Target: target, Value: value})
}

func (b *Builder) UpdateExpression(operator, argument string, prefix bool, sp span.Span) string {
	return b.intern(KindUpdateExpression, &UpdateExpression{Base: Base{Span: &sp}, Operator: operator, Argument: argument, Prefix: prefix})
}

func (b *Builder) ConditionalExpression(test, consequent, alternate string, sp span.Span) string {
	return b.intern(KindConditionalExpression, &ConditionalExpression{Base: Base{Span: &sp}, Test: test, Consequent: consequent, Alternate: alternate})
}

func (b *Builder) UnaryExpression(operator, argument string, sp span.Span) string {
	return b.intern(KindUnaryExpression, &UnaryExpression{Base: Base{Span: &sp}, Operator: operator, Argument: argument})
}

func (b *Builder) CallExpression(callee string, args []string, optional bool, sp span.Span) string {
	return b.intern(KindCallExpression, &CallExpression{Base: Base{Span: &sp}, Callee: callee, Arguments: args, Optional: optional})
}

func (b *Builder) NewExpression(callee string, args []string, sp span.Span) string {
	return b.intern(KindNewExpression, &NewExpression{Base: Base{Span: &sp}, Callee: callee, Arguments: args})
}

func (b *Builder) MemberExpression(object, property string, computed, optional bool, sp span.Span) string {
	return b.intern(KindMemberExpression, &MemberExpression{Base: Base{Span: &sp}, Object: object, Property: property, Computed: computed, Optional: optional})
}

func (b *Builder) ArrayExpression(elements []string, sp span.Span) string {
	return b.intern(KindArrayExpression, &ArrayExpression{Base: Base{Span: &sp}, Elements: elements})
}

func (b *Builder) ObjectExpression(properties []string, sp span.Span) string {
	return b.intern(KindObjectExpression, &ObjectExpression{Base: Base{Span: &sp}, Properties: properties})
}

func (b *Builder) Property(key, value string, computed, shorthand bool, sp span.Span) string {
	return b.intern(KindProperty, &Property{Base: Base{Span: &sp}, Key: key, Value: value, Computed: computed, Shorthand: shorthand})
}

func (b *Builder) TemplateElement(raw, cooked string, tail bool, sp span.Span) string {
	return b.intern(KindTemplateElement, &TemplateElement{Base: Base{Span: &sp}, Raw: raw, Cooked: cooked, Tail: tail})
}

func (b *Builder) TemplateLiteral(quasis, expressions []string, sp span.Span) string {
	return b.intern(KindTemplateLiteral, &TemplateLiteral{Base: Base{Span: &sp}, Quasis: quasis, Expressions: expressions})
}

func (b *Builder) SpreadElement(argument string, sp span.Span) string {
	return b.intern(KindSpreadElement, &SpreadElement{Base: Base{Span: &sp}, Argument: argument})
}

func (b *Builder) AwaitExpression(argument string, sp span.Span) string {
	return b.intern(KindAwaitExpression, &AwaitExpression{Base: Base{Span: &sp}, Argument: argument})
}

func (b *Builder) YieldExpression(argument string, delegate bool, sp span.Span) string {
	return b.intern(KindYieldExpression, &YieldExpression{Base: Base{Span: &sp}, Argument: argument, Delegate: delegate})
}

func (b *Builder) Parameter(pattern, def string, rest bool, sp span.Span) string {
	return b.intern(KindParameter, &Parameter{Base: Base{Span: &sp}, Pattern: pattern, Default: def, Rest: rest})
}

func (b *Builder) FunctionDeclaration(name string, params []string, body string, sp span.Span) string {
	return b.intern(KindFunctionDeclaration, &FunctionDeclaration{Base: Base{Span: &sp}, Name: name, Params: params, Body: body})
}

func (b *Builder) AsyncFunctionDeclaration(name string, params []string, body string, sp span.Span) string {
	return b.intern(KindAsyncFunctionDeclaration, &AsyncFunctionDeclaration{Base: Base{Span: &sp}, Name: name, Params: params, Body: body})
}

func (b *Builder) GeneratorDeclaration(name string, params []string, body string, asyncGenerator bool, sp span.Span) string {
	return b.intern(KindGeneratorDeclaration, &GeneratorDeclaration{Base: Base{Span: &sp}, Name: name, Params: params, Body: body, AsyncGenerator: asyncGenerator})
}

func (b *Builder) FunctionExpression(name string, params []string, body string, async, generator bool, sp span.Span) string {
	return b.intern(KindFunctionExpression, &FunctionExpression{Base: Base{Span: &sp}, Name: name, Params: params, Body: body, Async: async, Generator: generator})
}

func (b *Builder) ArrowFunctionExpression(params []string, body string, async bool, sp span.Span) string {
	return b.intern(KindArrowFunctionExpression, &ArrowFunctionExpression{Base: Base{Span: &sp}, Params: params, Body: body, Async: async})
}

func (b *Builder) VariableDeclarator(namePattern, init string, varKind VarKind, sp span.Span) string {
	return b.intern(KindVariableDeclarator, &VariableDeclarator{Base: Base{Span: &sp}, NamePattern: namePattern, Init: init, VarKind: varKind})
}

func (b *Builder) VariableDeclaration(declarationKind VarKind, declarations []string, sp span.Span) string {
	return b.intern(KindVariableDeclaration, &VariableDeclaration{Base: Base{Span: &sp}, DeclarationKind: declarationKind, Declarations: declarations})
}

func (b *Builder) BlockStatement(body []string, sp span.Span) string {
	return b.intern(KindBlockStatement, &BlockStatement{Base: Base{Span: &sp}, Body: body})
}

func (b *Builder) ExpressionStatement(expr string, sp span.Span) string {
	return b.intern(KindExpressionStatement, &ExpressionStatement{Base: Base{Span: &sp}, Expr: expr})
}

func (b *Builder) ReturnStatement(argument string, sp span.Span) string {
	return b.intern(KindReturnStatement, &ReturnStatement{Base: Base{Span: &sp}, Argument: argument})
}

func (b *Builder) IfStatement(test, consequent, alternate string, sp span.Span) string {
	return b.intern(KindIfStatement, &IfStatement{Base: Base{Span: &sp}, Test: test, Consequent: consequent, Alternate: alternate})
}

func (b *Builder) SwitchCase(test string, consequent []string, sp span.Span) string {
	return b.intern(KindSwitchCase, &SwitchCase{Base: Base{Span: &sp}, Test: test, Consequent: consequent})
}

func (b *Builder) SwitchStatement(discriminant string, cases []string, sp span.Span) string {
	return b.intern(KindSwitchStatement, &SwitchStatement{Base: Base{Span: &sp}, Discriminant: discriminant, Cases: cases})
}

func (b *Builder) ForStatement(init, test, update, body string, sp span.Span) string {
	return b.intern(KindForStatement, &ForStatement{Base: Base{Span: &sp}, Init: init, Test: test, Update: update, Body: body})
}

func (b *Builder) ForOfStatement(left, right, body string, await bool, sp span.Span) string {
	return b.intern(KindForOfStatement, &ForOfStatement{Base: Base{Span: &sp}, Left: left, Right: right, Body: body, Await: await})
}

func (b *Builder) ForInStatement(left, right, body string, sp span.Span) string {
	return b.intern(KindForInStatement, &ForInStatement{Base: Base{Span: &sp}, Left: left, Right: right, Body: body})
}

func (b *Builder) WhileStatement(test, body string, sp span.Span) string {
	return b.intern(KindWhileStatement, &WhileStatement{Base: Base{Span: &sp}, Test: test, Body: body})
}

func (b *Builder) DoWhileStatement(body, test string, sp span.Span) string {
	return b.intern(KindDoWhileStatement, &DoWhileStatement{Base: Base{Span: &sp}, Body: body, Test: test})
}

func (b *Builder) BreakStatement(sp span.Span) string {
	return b.intern(KindBreakStatement, &BreakStatement{Base: Base{Span: &sp}})
}

func (b *Builder) ContinueStatement(sp span.Span) string {
	return b.intern(KindContinueStatement, &ContinueStatement{Base: Base{Span: &sp}})
}

func (b *Builder) ThrowStatement(argument string, sp span.Span) string {
	return b.intern(KindThrowStatement, &ThrowStatement{Base: Base{Span: &sp}, Argument: argument})
}

func (b *Builder) CatchClause(param, body string, sp span.Span) string {
	return b.intern(KindCatchClause, &CatchClause{Base: Base{Span: &sp}, Param: param, Body: body})
}

func (b *Builder) TryStatement(block, handler, finalizer string, sp span.Span) string {
	return b.intern(KindTryStatement, &TryStatement{Base: Base{Span: &sp}, Block: block, Handler: handler, Finalizer: finalizer})
}

func (b *Builder) ClassDeclaration(name, superClass, body string, sp span.Span) string {
	return b.intern(KindClassDeclaration, &ClassDeclaration{Base: Base{Span: &sp}, Name: name, SuperClass: superClass, Body: body})
}

func (b *Builder) ClassExpression(name, superClass, body string, sp span.Span) string {
	return b.intern(KindClassExpression, &ClassExpression{Base: Base{Span: &sp}, Name: name, SuperClass: superClass, Body: body})
}

func (b *Builder) ClassBody(methods []string, sp span.Span) string {
	return b.intern(KindClassBody, &ClassBody{Base: Base{Span: &sp}, Methods: methods})
}

func (b *Builder) MethodDefinition(key, value string, methodOf MethodKind, static bool, sp span.Span) string {
	return b.intern(KindMethodDefinition, &MethodDefinition{Base: Base{Span: &sp}, Key: key, Value: value, MethodOf: methodOf, Static: static})
}

func (b *Builder) ObjectPattern(properties []string, rest string, sp span.Span) string {
	return b.intern(KindObjectPattern, &ObjectPattern{Base: Base{Span: &sp}, Properties: properties, Rest: rest})
}

func (b *Builder) ArrayPattern(elements []string, rest string, sp span.Span) string {
	return b.intern(KindArrayPattern, &ArrayPattern{Base: Base{Span: &sp}, Elements: elements, Rest: rest})
}

func (b *Builder) RestElement(argument string, sp span.Span) string {
	return b.intern(KindRestElement, &RestElement{Base: Base{Span: &sp}, Argument: argument})
}

func (b *Builder) AssignmentPattern(left, right string, sp span.Span) string {
	return b.intern(KindAssignmentPattern, &AssignmentPattern{Base: Base{Span: &sp}, Left: left, Right: right})
}

// SetModuleHeader finalizes the Module's top-level header once every
// top-level statement has been built.
func (b *Builder) SetModuleHeader(body []string, source SourceInfo, directives []string) {
	b.module.Header = ModuleHeader{
		ID:         b.gen.Next("mod"),
		Body:       body,
		Source:     source,
		Directives: directives,
	}
}

// AddCFG registers a function's control-flow graph in the module's
// controlFlowGraphs map under cfgID; the Lowerer passes the CFG's own id.
func (b *Builder) AddCFG(cfgID string, cfg *CFG) {
	b.module.ControlFlowGraphs[cfgID] = cfg
}
