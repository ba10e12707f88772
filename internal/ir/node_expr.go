package ir

// Identifier references a binding by name. Lowering never renames
// identifiers (§4.4) - the name an Emitter sees is the name the user wrote.
type Identifier struct {
	Base
	Name string
}

func (n *Identifier) Children() []string { return nil }
func (n *Identifier) Fields() map[string]interface{} {
	return map[string]interface{}{"name": n.Name}
}

// LiteralKind tags the runtime type a Literal denotes.
type LiteralKind string

const (
	LiteralNumber  LiteralKind = "number"
	LiteralString  LiteralKind = "string"
	LiteralBoolean LiteralKind = "boolean"
	LiteralNull    LiteralKind = "null"
)

// Literal is a constant value: number, string, boolean, or null.
type Literal struct {
	Base
	LitKind LiteralKind
	Value   interface{}
	Raw     string
}

func (n *Literal) Children() []string { return nil }
func (n *Literal) Fields() map[string]interface{} {
	return map[string]interface{}{"litKind": string(n.LitKind), "value": n.Value, "raw": n.Raw}
}

// ThisExpression is the `this` keyword.
type ThisExpression struct{ Base }

func (n *ThisExpression) Children() []string             { return nil }
func (n *ThisExpression) Fields() map[string]interface{}  { return map[string]interface{}{} }

// Super is the `super` keyword, valid only inside a derived class's
// constructor or methods.
type Super struct{ Base }

func (n *Super) Children() []string            { return nil }
func (n *Super) Fields() map[string]interface{} { return map[string]interface{}{} }

// BinaryExpression is a two-operand arithmetic, comparison, or bitwise
// operator application. The Emitter infers `+` as Lua string concat `..`
// when either operand looks string-like (§4.5).
type BinaryExpression struct {
	Base
	Operator string
	Left     string
	Right    string
}

func (n *BinaryExpression) Children() []string { return ids(n.Left, n.Right) }
func (n *BinaryExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"operator": n.Operator, "left": n.Left, "right": n.Right}
}

// LogicalExpression is `&&`, `||`, or `??`.
type LogicalExpression struct {
	Base
	Operator string
	Left     string
	Right    string
}

func (n *LogicalExpression) Children() []string { return ids(n.Left, n.Right) }
func (n *LogicalExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"operator": n.Operator, "left": n.Left, "right": n.Right}
}

// AssignmentExpression is `target op= value`.
type AssignmentExpression struct {
	Base
	Operator string
	Target   string
	Value    string
}

func (n *AssignmentExpression) Children() []string { return ids(n.Target, n.Value) }
func (n *AssignmentExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"operator": n.Operator, "target": n.Target, "value": n.Value}
}

// UpdateExpression is `++`/`--`, prefix or postfix.
type UpdateExpression struct {
	Base
	Operator string
	Argument string
	Prefix   bool
}

func (n *UpdateExpression) Children() []string { return ids(n.Argument) }
func (n *UpdateExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"operator": n.Operator, "argument": n.Argument, "prefix": n.Prefix}
}

// ConditionalExpression is the ternary `test ? consequent : alternate`.
type ConditionalExpression struct {
	Base
	Test       string
	Consequent string
	Alternate  string
}

func (n *ConditionalExpression) Children() []string {
	return ids(n.Test, n.Consequent, n.Alternate)
}
func (n *ConditionalExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"test": n.Test, "consequent": n.Consequent, "alternate": n.Alternate}
}

// UnaryExpression is a single-operand operator: `!`, `-`, `+`, `typeof`, `~`.
type UnaryExpression struct {
	Base
	Operator string
	Argument string
}

func (n *UnaryExpression) Children() []string { return ids(n.Argument) }
func (n *UnaryExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"operator": n.Operator, "argument": n.Argument}
}

// CallExpression invokes Callee with Arguments. Optional marks `?.()`
// optional-call syntax (§4.5 emits a guarded call for these).
type CallExpression struct {
	Base
	Callee    string
	Arguments []string
	Optional  bool
}

func (n *CallExpression) Children() []string { return idLists([]string{n.Callee}, n.Arguments) }
func (n *CallExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"callee": n.Callee, "arguments": n.Arguments, "optional": n.Optional}
}

// NewExpression is `new Callee(Arguments)`, lowered by the Emitter to
// `Callee:new(Arguments)` for classes produced from ClassDeclaration (§4.5).
type NewExpression struct {
	Base
	Callee    string
	Arguments []string
}

func (n *NewExpression) Children() []string { return idLists([]string{n.Callee}, n.Arguments) }
func (n *NewExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"callee": n.Callee, "arguments": n.Arguments}
}

// MemberExpression is `object.property` or `object[property]` (Computed),
// optionally guarded with `?.` (Optional).
type MemberExpression struct {
	Base
	Object   string
	Property string
	Computed bool
	Optional bool
}

func (n *MemberExpression) Children() []string { return ids(n.Object, n.Property) }
func (n *MemberExpression) Fields() map[string]interface{} {
	return map[string]interface{}{
		"object": n.Object, "property": n.Property, "computed": n.Computed, "optional": n.Optional,
	}
}

// ArrayExpression is an array literal. An empty-string entry in Elements denotes an
// elision (`[1, , 3]`); the Emitter must account for this in 1-based Lua
// table construction (§4.5).
type ArrayExpression struct {
	Base
	Elements []string // "" marks an elision
}

func (n *ArrayExpression) Children() []string { return ids(n.Elements...) }
func (n *ArrayExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"elements": n.Elements}
}

// ObjectExpression is an object literal, a sequence of Properties.
type ObjectExpression struct {
	Base
	Properties []string
}

func (n *ObjectExpression) Children() []string { return ids(n.Properties...) }
func (n *ObjectExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"properties": n.Properties}
}

// Property is one `key: value` (or shorthand `key`) entry of an
// ObjectExpression.
type Property struct {
	Base
	Key       string
	Value     string
	Computed  bool
	Shorthand bool
}

func (n *Property) Children() []string { return ids(n.Key, n.Value) }
func (n *Property) Fields() map[string]interface{} {
	return map[string]interface{}{
		"key": n.Key, "value": n.Value, "computed": n.Computed, "shorthand": n.Shorthand,
	}
}

// TemplateElement is one literal chunk of a TemplateLiteral's Quasis.
type TemplateElement struct {
	Base
	Raw    string
	Cooked string
	Tail   bool
}

func (n *TemplateElement) Children() []string { return nil }
func (n *TemplateElement) Fields() map[string]interface{} {
	return map[string]interface{}{"raw": n.Raw, "cooked": n.Cooked, "tail": n.Tail}
}

// TemplateLiteral interleaves Quasis (literal chunks) with Expressions;
// Quasis always has exactly one more element than Expressions.
type TemplateLiteral struct {
	Base
	Quasis      []string
	Expressions []string
}

func (n *TemplateLiteral) Children() []string {
	return idLists(n.Quasis, n.Expressions)
}
func (n *TemplateLiteral) Fields() map[string]interface{} {
	return map[string]interface{}{"quasis": n.Quasis, "expressions": n.Expressions}
}

// SpreadElement is `...expr` inside an array literal, object literal, or
// call argument list.
type SpreadElement struct {
	Base
	Argument string
}

func (n *SpreadElement) Children() []string { return ids(n.Argument) }
func (n *SpreadElement) Fields() map[string]interface{} {
	return map[string]interface{}{"argument": n.Argument}
}

// AwaitExpression suspends an async function until Argument settles. The
// Emitter realizes this with the `__await_value` coroutine helper (§4.5).
type AwaitExpression struct {
	Base
	Argument string
}

func (n *AwaitExpression) Children() []string { return ids(n.Argument) }
func (n *AwaitExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"argument": n.Argument}
}

// YieldExpression suspends a generator. Delegate marks `yield*`, which
// forwards to a nested iterable; Argument is "" for a bare `yield`.
type YieldExpression struct {
	Base
	Argument string
	Delegate bool
}

func (n *YieldExpression) Children() []string { return ids(n.Argument) }
func (n *YieldExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"argument": n.Argument, "delegate": n.Delegate}
}
