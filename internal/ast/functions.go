package ast

import (
	"strings"

	"github.com/cwbudde/go-jsl/internal/span"
	"github.com/cwbudde/go-jsl/internal/typemodel"
)

// Parameter is a single function parameter. Pattern holds the binding target
// (an Identifier for a plain parameter, or an ObjectPattern/ArrayPattern for
// a destructured one); Default holds an initializer for `(x = 1) => ...`;
// Rest marks the final `...args` parameter.
type Parameter struct {
	Pattern Pattern
	Default Expression // nil when there is no default
	Rest    bool
	Type    *typemodel.Type
	Span    span.Span
}

func (p *Parameter) Kind() Kind         { return KindParameter }
func (p *Parameter) Pos() span.Position { return p.Span.Start }
func (p *Parameter) End() span.Position { return p.Span.End }
func (p *Parameter) String() string {
	s := p.Pattern.String()
	if p.Rest {
		s = "..." + s
	}
	if p.Default != nil {
		s += " = " + p.Default.String()
	}
	return s
}

// FunctionDeclaration is a named `function f(...) { ... }` statement. Async
// and generator functions are represented by the distinct
// AsyncFunctionDeclaration and GeneratorDeclaration kinds (§4.4: "preserve
// the source's async/generator flags on the node kind... do not desugar
// here").
type FunctionDeclaration struct {
	Name   *Identifier // nil for an anonymous function expression reused as a declaration site
	Params []*Parameter
	Body   *BlockStatement
	Return *typemodel.Type
	Span   span.Span
}

func (f *FunctionDeclaration) Kind() Kind         { return KindFunctionDeclaration }
func (f *FunctionDeclaration) Pos() span.Position { return f.Span.Start }
func (f *FunctionDeclaration) End() span.Position { return f.Span.End }
func (f *FunctionDeclaration) statementNode()     {}
func (f *FunctionDeclaration) String() string {
	return "function " + f.name() + "(" + joinParams(f.Params) + ") " + f.Body.String()
}
func (f *FunctionDeclaration) name() string {
	if f.Name == nil {
		return ""
	}
	return f.Name.Name
}

// AsyncFunctionDeclaration is `async function f(...) { ... }`.
type AsyncFunctionDeclaration struct {
	Name   *Identifier
	Params []*Parameter
	Body   *BlockStatement
	Return *typemodel.Type
	Span   span.Span
}

func (f *AsyncFunctionDeclaration) Kind() Kind         { return KindAsyncFunctionDeclaration }
func (f *AsyncFunctionDeclaration) Pos() span.Position { return f.Span.Start }
func (f *AsyncFunctionDeclaration) End() span.Position { return f.Span.End }
func (f *AsyncFunctionDeclaration) statementNode()     {}
func (f *AsyncFunctionDeclaration) String() string {
	name := ""
	if f.Name != nil {
		name = f.Name.Name
	}
	return "async function " + name + "(" + joinParams(f.Params) + ") " + f.Body.String()
}

// GeneratorDeclaration is `function* f(...) { ... }`, optionally also async
// (`async function* f`) via the AsyncGenerator flag.
type GeneratorDeclaration struct {
	Name          *Identifier
	Params        []*Parameter
	Body          *BlockStatement
	Return        *typemodel.Type
	AsyncGenerator bool
	Span          span.Span
}

func (f *GeneratorDeclaration) Kind() Kind         { return KindGeneratorDeclaration }
func (f *GeneratorDeclaration) Pos() span.Position { return f.Span.Start }
func (f *GeneratorDeclaration) End() span.Position { return f.Span.End }
func (f *GeneratorDeclaration) statementNode()     {}
func (f *GeneratorDeclaration) String() string {
	name := ""
	if f.Name != nil {
		name = f.Name.Name
	}
	prefix := "function*"
	if f.AsyncGenerator {
		prefix = "async function*"
	}
	return prefix + " " + name + "(" + joinParams(f.Params) + ") " + f.Body.String()
}

// FunctionExpression is a function used in expression position, e.g. an
// object-literal method value or a `const f = function() {}` initializer.
type FunctionExpression struct {
	Name      *Identifier // nil for anonymous
	Params    []*Parameter
	Body      *BlockStatement
	Async     bool
	Generator bool
	Return    *typemodel.Type
	Span      span.Span
}

func (f *FunctionExpression) Kind() Kind         { return KindFunctionExpression }
func (f *FunctionExpression) Pos() span.Position { return f.Span.Start }
func (f *FunctionExpression) End() span.Position { return f.Span.End }
func (f *FunctionExpression) expressionNode()    {}
func (f *FunctionExpression) String() string {
	name := ""
	if f.Name != nil {
		name = f.Name.Name
	}
	prefix := "function"
	if f.Async {
		prefix = "async " + prefix
	}
	if f.Generator {
		prefix += "*"
	}
	return prefix + " " + name + "(" + joinParams(f.Params) + ") " + f.Body.String()
}

// ArrowFunctionExpression is `(...) => expr` or `(...) => { ... }`. By the
// time the Normalizer is done, Body is always a *BlockStatement: an
// expression body is rewrapped as a single-statement block containing a
// ReturnStatement (§4.3).
type ArrowFunctionExpression struct {
	Params []*Parameter
	Body   *BlockStatement
	Async  bool
	Span   span.Span
}

func (a *ArrowFunctionExpression) Kind() Kind         { return KindArrowFunctionExpression }
func (a *ArrowFunctionExpression) Pos() span.Position { return a.Span.Start }
func (a *ArrowFunctionExpression) End() span.Position { return a.Span.End }
func (a *ArrowFunctionExpression) expressionNode()    {}
func (a *ArrowFunctionExpression) String() string {
	prefix := ""
	if a.Async {
		prefix = "async "
	}
	return prefix + "(" + joinParams(a.Params) + ") => " + a.Body.String()
}

func joinParams(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
