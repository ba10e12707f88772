package ir

// Parameter is one formal parameter of a function. Pattern may be a plain
// Identifier or a destructuring pattern; Default is "" when absent; Rest
// marks `...args`, which must be the last parameter (checked by the
// Validator, §4.6).
type Parameter struct {
	Base
	Pattern string
	Default string
	Rest    bool
}

func (n *Parameter) Children() []string { return ids(n.Pattern, n.Default) }
func (n *Parameter) Fields() map[string]interface{} {
	return map[string]interface{}{"pattern": n.Pattern, "default": n.Default, "rest": n.Rest}
}

// FunctionDeclaration is a named function statement. Name is the id of an
// Identifier node, or "" when the raw declaration carried no identifier.
type FunctionDeclaration struct {
	Base
	Name   string
	Params []string
	Body   string
}

func (n *FunctionDeclaration) Children() []string {
	return idLists(ids(n.Name), n.Params, ids(n.Body))
}
func (n *FunctionDeclaration) Fields() map[string]interface{} {
	return map[string]interface{}{"name": n.Name, "params": n.Params, "body": n.Body}
}

// AsyncFunctionDeclaration is `async function f(...) { ... }`. The Emitter
// wraps its body in a coroutine (§4.5).
type AsyncFunctionDeclaration struct {
	Base
	Name   string
	Params []string
	Body   string
}

func (n *AsyncFunctionDeclaration) Children() []string {
	return idLists(ids(n.Name), n.Params, ids(n.Body))
}
func (n *AsyncFunctionDeclaration) Fields() map[string]interface{} {
	return map[string]interface{}{"name": n.Name, "params": n.Params, "body": n.Body}
}

// GeneratorDeclaration is `function* f(...) { ... }`, or an async generator
// when AsyncGenerator is set. The Emitter builds an iterator table exposing
// next/return/throw (§4.5).
type GeneratorDeclaration struct {
	Base
	Name           string
	Params         []string
	Body           string
	AsyncGenerator bool
}

func (n *GeneratorDeclaration) Children() []string {
	return idLists(ids(n.Name), n.Params, ids(n.Body))
}
func (n *GeneratorDeclaration) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name": n.Name, "params": n.Params, "body": n.Body, "asyncGenerator": n.AsyncGenerator,
	}
}

// FunctionExpression is a function used in expression position - the value
// side of a MethodDefinition, or an assigned/returned anonymous function.
type FunctionExpression struct {
	Base
	Name      string // "" for anonymous
	Params    []string
	Body      string
	Async     bool
	Generator bool
}

func (n *FunctionExpression) Children() []string {
	return idLists(ids(n.Name), n.Params, ids(n.Body))
}
func (n *FunctionExpression) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name": n.Name, "params": n.Params, "body": n.Body, "async": n.Async, "generator": n.Generator,
	}
}

// ArrowFunctionExpression always carries a block Body post-normalization -
// a concise-body arrow `x => x + 1` is rewrapped into `x => { return x + 1; }`
// by the Normalizer (§4.3), so the Lowerer and Emitter only ever see one
// shape.
type ArrowFunctionExpression struct {
	Base
	Params []string
	Body   string
	Async  bool
}

func (n *ArrowFunctionExpression) Children() []string {
	return idLists(n.Params, ids(n.Body))
}
func (n *ArrowFunctionExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"params": n.Params, "body": n.Body, "async": n.Async}
}

// VariableDeclarator is one `name = init` binding. Init is "" when
// uninitialized.
type VariableDeclarator struct {
	Base
	NamePattern string
	Init        string
	VarKind     VarKind
}

func (n *VariableDeclarator) Children() []string { return ids(n.NamePattern, n.Init) }
func (n *VariableDeclarator) Fields() map[string]interface{} {
	return map[string]interface{}{
		"namePattern": n.NamePattern, "init": n.Init, "varKind": string(n.VarKind),
	}
}

// VariableDeclaration groups one or more VariableDeclarators sharing a
// DeclarationKind. §3.3 invariant 4: DeclarationKind must agree with every
// declarator's VarKind.
type VariableDeclaration struct {
	Base
	DeclarationKind VarKind
	Declarations    []string
}

func (n *VariableDeclaration) Children() []string { return ids(n.Declarations...) }
func (n *VariableDeclaration) Fields() map[string]interface{} {
	return map[string]interface{}{
		"declarationKind": string(n.DeclarationKind), "declarations": n.Declarations,
	}
}

// MethodKind distinguishes a MethodDefinition's role within a class body.
type MethodKind string

const (
	MethodKindMethod      MethodKind = "method"
	MethodKindConstructor MethodKind = "constructor"
	MethodKindGetter      MethodKind = "get"
	MethodKindSetter      MethodKind = "set"
)

// MethodDefinition is one member of a ClassBody. Static marks a `static`
// member, lowered to `C.m` rather than an instance method (§4.4).
type MethodDefinition struct {
	Base
	Key      string
	Value    string
	MethodOf MethodKind
	Static   bool
}

func (n *MethodDefinition) Children() []string { return ids(n.Key, n.Value) }
func (n *MethodDefinition) Fields() map[string]interface{} {
	return map[string]interface{}{
		"key": n.Key, "value": n.Value, "methodOf": string(n.MethodOf), "static": n.Static,
	}
}

// ClassBody groups a class's MethodDefinitions in source order.
type ClassBody struct {
	Base
	Methods []string
}

func (n *ClassBody) Children() []string { return ids(n.Methods...) }
func (n *ClassBody) Fields() map[string]interface{} {
	return map[string]interface{}{"methods": n.Methods}
}

// ClassDeclaration is lowered by the Lowerer into a constructor
// FunctionDeclaration plus a sequence of prototype/static assignment
// statements, flagged with `meta.classLike` so the Emitter recognizes the
// shape without re-deriving it from the original class structure (§4.4).
// SuperClass is "" when there is no `extends` clause.
type ClassDeclaration struct {
	Base
	Name       string
	SuperClass string
	Body       string
}

func (n *ClassDeclaration) Children() []string { return ids(n.Name, n.SuperClass, n.Body) }
func (n *ClassDeclaration) Fields() map[string]interface{} {
	return map[string]interface{}{"name": n.Name, "superClass": n.SuperClass, "body": n.Body}
}

// ClassExpression is a class used in expression position. Name is "" for an
// anonymous class expression.
type ClassExpression struct {
	Base
	Name       string
	SuperClass string
	Body       string
}

func (n *ClassExpression) Children() []string { return ids(n.Name, n.SuperClass, n.Body) }
func (n *ClassExpression) Fields() map[string]interface{} {
	return map[string]interface{}{"name": n.Name, "superClass": n.SuperClass, "body": n.Body}
}
