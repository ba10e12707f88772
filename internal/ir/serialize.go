package ir

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/go-jsl/internal/span"
)

// nodeEnvelope is the wire shape every node serializes to: the common Base
// fields plus whatever Fields() contributes for its kind (§6.1).
type nodeEnvelope struct {
	ID     string                 `json:"id"`
	Kind   Kind                   `json:"kind"`
	Span   *span.Span             `json:"span,omitempty"`
	Flags  []string               `json:"flags,omitempty"`
	Doc    Doc                    `json:"doc,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
	Fields map[string]interface{} `json:"fields"`
}

func envelopeOf(n Node) nodeEnvelope {
	return nodeEnvelope{
		ID:     n.NodeID(),
		Kind:   n.NodeKind(),
		Span:   n.NodeSpan(),
		Flags:  n.NodeFlags(),
		Doc:    n.NodeDoc(),
		Meta:   n.NodeMeta(),
		Fields: n.Fields(),
	}
}

// MarshalJSON renders the Module per the §6.1 wire schema: a schema
// version, the header, and a flat node table where each entry is an
// envelope combining the common fields with the node's kind-specific
// payload.
func (m *Module) MarshalJSON() ([]byte, error) {
	nodes := make(map[string]nodeEnvelope, len(m.Nodes))
	for id, n := range m.Nodes {
		nodes[id] = envelopeOf(n)
	}
	out := struct {
		SchemaVersion     string                  `json:"schemaVersion"`
		Header            ModuleHeader            `json:"module"`
		Nodes             map[string]nodeEnvelope `json:"nodes"`
		ControlFlowGraphs map[string]*CFG         `json:"controlFlowGraphs,omitempty"`
	}{
		SchemaVersion:     m.SchemaVersion,
		Header:            m.Header,
		Nodes:             nodes,
		ControlFlowGraphs: m.ControlFlowGraphs,
	}
	return json.Marshal(out)
}

// UnmarshalJSON reconstructs a Module from its §6.1 wire form, dispatching
// each node envelope to a concrete type by its "kind" tag. An unrecognized
// kind is a deserialization error rather than a silently-dropped node,
// since a node the Module can't reconstruct would otherwise vanish from
// every downstream Children() walk.
func (m *Module) UnmarshalJSON(data []byte) error {
	var raw struct {
		SchemaVersion     string                  `json:"schemaVersion"`
		Header            ModuleHeader            `json:"module"`
		Nodes             map[string]nodeEnvelope `json:"nodes"`
		ControlFlowGraphs map[string]*CFG         `json:"controlFlowGraphs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.SchemaVersion = raw.SchemaVersion
	m.Header = raw.Header
	m.ControlFlowGraphs = raw.ControlFlowGraphs
	if m.ControlFlowGraphs == nil {
		m.ControlFlowGraphs = map[string]*CFG{}
	}
	m.Nodes = make(map[string]Node, len(raw.Nodes))
	for id, env := range raw.Nodes {
		n, err := fromEnvelope(env)
		if err != nil {
			return fmt.Errorf("ir: node %q: %w", id, err)
		}
		m.Nodes[id] = n
	}
	return nil
}

func strField(f map[string]interface{}, key string) string {
	v, _ := f[key].(string)
	return v
}

func boolField(f map[string]interface{}, key string) bool {
	v, _ := f[key].(bool)
	return v
}

func strSliceField(f map[string]interface{}, key string) []string {
	raw, ok := f[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i], _ = v.(string)
	}
	return out
}

// fromEnvelope rebuilds a concrete Node from its serialized envelope. The
// switch covers every member of AllKinds; an addition to the kind
// vocabulary must extend both.
func fromEnvelope(env nodeEnvelope) (Node, error) {
	base := Base{ID: env.ID, KindTag: env.Kind, Span: env.Span, Flags: env.Flags, Doc: env.Doc, Meta: env.Meta}
	f := env.Fields

	switch env.Kind {
	case KindIdentifier:
		return &Identifier{Base: base, Name: strField(f, "name")}, nil
	case KindLiteral:
		return &Literal{Base: base, LitKind: LiteralKind(strField(f, "litKind")), Value: f["value"], Raw: strField(f, "raw")}, nil
	case KindThisExpression:
		return &ThisExpression{Base: base}, nil
	case KindSuper:
		return &Super{Base: base}, nil
	case KindBinaryExpression:
		return &BinaryExpression{Base: base, Operator: strField(f, "operator"), Left: strField(f, "left"), Right: strField(f, "right")}, nil
	case KindLogicalExpression:
		return &LogicalExpression{Base: base, Operator: strField(f, "operator"), Left: strField(f, "left"), Right: strField(f, "right")}, nil
	case KindAssignmentExpression:
		return &AssignmentExpression{Base: base, Operator: strField(f, "operator"), Target: strField(f, "target"), Value: strField(f, "value")}, nil
	case KindUpdateExpression:
		return &UpdateExpression{Base: base, Operator: strField(f, "operator"), Argument: strField(f, "argument"), Prefix: boolField(f, "prefix")}, nil
	case KindConditionalExpression:
		return &ConditionalExpression{Base: base, Test: strField(f, "test"), Consequent: strField(f, "consequent"), Alternate: strField(f, "alternate")}, nil
	case KindUnaryExpression:
		return &UnaryExpression{Base: base, Operator: strField(f, "operator"), Argument: strField(f, "argument")}, nil
	case KindCallExpression:
		return &CallExpression{Base: base, Callee: strField(f, "callee"), Arguments: strSliceField(f, "arguments"), Optional: boolField(f, "optional")}, nil
	case KindNewExpression:
		return &NewExpression{Base: base, Callee: strField(f, "callee"), Arguments: strSliceField(f, "arguments")}, nil
	case KindMemberExpression:
		return &MemberExpression{Base: base, Object: strField(f, "object"), Property: strField(f, "property"), Computed: boolField(f, "computed"), Optional: boolField(f, "optional")}, nil
	case KindArrayExpression:
		return &ArrayExpression{Base: base, Elements: strSliceField(f, "elements")}, nil
	case KindObjectExpression:
		return &ObjectExpression{Base: base, Properties: strSliceField(f, "properties")}, nil
	case KindProperty:
		return &Property{Base: base, Key: strField(f, "key"), Value: strField(f, "value"), Computed: boolField(f, "computed"), Shorthand: boolField(f, "shorthand")}, nil
	case KindTemplateElement:
		return &TemplateElement{Base: base, Raw: strField(f, "raw"), Cooked: strField(f, "cooked"), Tail: boolField(f, "tail")}, nil
	case KindTemplateLiteral:
		return &TemplateLiteral{Base: base, Quasis: strSliceField(f, "quasis"), Expressions: strSliceField(f, "expressions")}, nil
	case KindSpreadElement:
		return &SpreadElement{Base: base, Argument: strField(f, "argument")}, nil
	case KindAwaitExpression:
		return &AwaitExpression{Base: base, Argument: strField(f, "argument")}, nil
	case KindYieldExpression:
		return &YieldExpression{Base: base, Argument: strField(f, "argument"), Delegate: boolField(f, "delegate")}, nil
	case KindParameter:
		return &Parameter{Base: base, Pattern: strField(f, "pattern"), Default: strField(f, "default"), Rest: boolField(f, "rest")}, nil
	case KindFunctionDeclaration:
		return &FunctionDeclaration{Base: base, Name: strField(f, "name"), Params: strSliceField(f, "params"), Body: strField(f, "body")}, nil
	case KindAsyncFunctionDeclaration:
		return &AsyncFunctionDeclaration{Base: base, Name: strField(f, "name"), Params: strSliceField(f, "params"), Body: strField(f, "body")}, nil
	case KindGeneratorDeclaration:
		return &GeneratorDeclaration{Base: base, Name: strField(f, "name"), Params: strSliceField(f, "params"), Body: strField(f, "body"), AsyncGenerator: boolField(f, "asyncGenerator")}, nil
	case KindFunctionExpression:
		return &FunctionExpression{Base: base, Name: strField(f, "name"), Params: strSliceField(f, "params"), Body: strField(f, "body"), Async: boolField(f, "async"), Generator: boolField(f, "generator")}, nil
	case KindArrowFunctionExpression:
		return &ArrowFunctionExpression{Base: base, Params: strSliceField(f, "params"), Body: strField(f, "body"), Async: boolField(f, "async")}, nil
	case KindVariableDeclarator:
		return &VariableDeclarator{Base: base, NamePattern: strField(f, "namePattern"), Init: strField(f, "init"), VarKind: VarKind(strField(f, "varKind"))}, nil
	case KindVariableDeclaration:
		return &VariableDeclaration{Base: base, DeclarationKind: VarKind(strField(f, "declarationKind")), Declarations: strSliceField(f, "declarations")}, nil
	case KindBlockStatement:
		return &BlockStatement{Base: base, Body: strSliceField(f, "body")}, nil
	case KindExpressionStatement:
		return &ExpressionStatement{Base: base, Expr: strField(f, "expr")}, nil
	case KindReturnStatement:
		return &ReturnStatement{Base: base, Argument: strField(f, "argument")}, nil
	case KindIfStatement:
		return &IfStatement{Base: base, Test: strField(f, "test"), Consequent: strField(f, "consequent"), Alternate: strField(f, "alternate")}, nil
	case KindSwitchCase:
		return &SwitchCase{Base: base, Test: strField(f, "test"), Consequent: strSliceField(f, "consequent")}, nil
	case KindSwitchStatement:
		return &SwitchStatement{Base: base, Discriminant: strField(f, "discriminant"), Cases: strSliceField(f, "cases")}, nil
	case KindForStatement:
		return &ForStatement{Base: base, Init: strField(f, "init"), Test: strField(f, "test"), Update: strField(f, "update"), Body: strField(f, "body")}, nil
	case KindForOfStatement:
		return &ForOfStatement{Base: base, Left: strField(f, "left"), Right: strField(f, "right"), Body: strField(f, "body"), Await: boolField(f, "await")}, nil
	case KindForInStatement:
		return &ForInStatement{Base: base, Left: strField(f, "left"), Right: strField(f, "right"), Body: strField(f, "body")}, nil
	case KindWhileStatement:
		return &WhileStatement{Base: base, Test: strField(f, "test"), Body: strField(f, "body")}, nil
	case KindDoWhileStatement:
		return &DoWhileStatement{Base: base, Body: strField(f, "body"), Test: strField(f, "test")}, nil
	case KindBreakStatement:
		return &BreakStatement{Base: base}, nil
	case KindContinueStatement:
		return &ContinueStatement{Base: base}, nil
	case KindThrowStatement:
		return &ThrowStatement{Base: base, Argument: strField(f, "argument")}, nil
	case KindCatchClause:
		return &CatchClause{Base: base, Param: strField(f, "param"), Body: strField(f, "body")}, nil
	case KindTryStatement:
		return &TryStatement{Base: base, Block: strField(f, "block"), Handler: strField(f, "handler"), Finalizer: strField(f, "finalizer")}, nil
	case KindClassDeclaration:
		return &ClassDeclaration{Base: base, Name: strField(f, "name"), SuperClass: strField(f, "superClass"), Body: strField(f, "body")}, nil
	case KindClassExpression:
		return &ClassExpression{Base: base, Name: strField(f, "name"), SuperClass: strField(f, "superClass"), Body: strField(f, "body")}, nil
	case KindClassBody:
		return &ClassBody{Base: base, Methods: strSliceField(f, "methods")}, nil
	case KindMethodDefinition:
		return &MethodDefinition{Base: base, Key: strField(f, "key"), Value: strField(f, "value"), MethodOf: MethodKind(strField(f, "methodOf")), Static: boolField(f, "static")}, nil
	case KindObjectPattern:
		return &ObjectPattern{Base: base, Properties: strSliceField(f, "properties"), Rest: strField(f, "rest")}, nil
	case KindArrayPattern:
		return &ArrayPattern{Base: base, Elements: strSliceField(f, "elements"), Rest: strField(f, "rest")}, nil
	case KindRestElement:
		return &RestElement{Base: base, Argument: strField(f, "argument")}, nil
	case KindAssignmentPattern:
		return &AssignmentPattern{Base: base, Left: strField(f, "left"), Right: strField(f, "right")}, nil
	default:
		return nil, fmt.Errorf("unsupported kind %q", env.Kind)
	}
}
