package emit

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
)

// captureBlock renders fn's output into a scratch buffer instead of e's main
// builder, returning the captured text - used to render a function literal's
// body as a self-contained chunk of text for embedding in an expression
// position (e.g. `local f = function(a) ... end`).
func (e *Emitter) captureBlock(fn func()) string {
	saved := e.w
	e.w = strings.Builder{}
	fn()
	text := e.w.String()
	e.w = saved
	return text
}

func (e *Emitter) indentStr() string {
	return strings.Repeat(e.opts.Indent, e.depth)
}

// paramList renders a Parameter id list as a comma-joined Lua parameter
// list. A Rest parameter becomes Lua's `...`; its own destructuring (if the
// rest pattern is itself a binding name) happens via a leading body
// statement that packs `{...}` into it, added by paramPrelude.
func (e *Emitter) paramList(paramIDs []string, leadingSelf bool) string {
	names := make([]string, 0, len(paramIDs)+1)
	if leadingSelf {
		names = append(names, "self")
	}
	for _, pID := range paramIDs {
		n, ok := e.get(pID)
		if !ok {
			continue
		}
		p, ok := n.(*ir.Parameter)
		if !ok {
			e.fail(diag.CodeUnsupportedKind, "emit: function parameter %q is not a Parameter", pID)
			continue
		}
		if p.Rest {
			names = append(names, "...")
			continue
		}
		names = append(names, e.paramBindingName(p))
	}
	return joinArgs(names)
}

// paramBindingName returns the Lua name a Parameter binds directly: a plain
// identifier's own name, or a synthesized temp for a destructuring/defaulted
// pattern (expanded by paramPrelude immediately inside the function body).
func (e *Emitter) paramBindingName(p *ir.Parameter) string {
	n, ok := e.get(p.Pattern)
	if !ok {
		return "_"
	}
	if ident, ok := n.(*ir.Identifier); ok && p.Default == "" {
		return ident.Name
	}
	return e.newTemp()
}

// paramPrelude emits, as the first statements of a function body, the
// default-value and destructuring expansion a non-trivial Parameter needs.
// It must be called with the same Parameter/temp pairing paramList produced.
func (e *Emitter) paramPrelude(paramIDs []string) {
	for _, pID := range paramIDs {
		n, ok := e.get(pID)
		if !ok {
			continue
		}
		p, ok := n.(*ir.Parameter)
		if !ok || p.Rest {
			continue
		}
		patNode, ok := e.get(p.Pattern)
		if !ok {
			continue
		}
		ident, isIdent := patNode.(*ir.Identifier)
		if isIdent && p.Default == "" {
			continue
		}
		temp := e.lastTempName()
		if isIdent {
			if p.Default != "" {
				e.line("local %s = %s", ident.Name, e.withDefault(temp, p.Default))
			}
			continue
		}
		source := temp
		if p.Default != "" {
			source = e.withDefault(temp, p.Default)
			innerTemp := e.newTemp()
			e.line("local %s = %s", innerTemp, source)
			e.destructurePattern(p.Pattern, innerTemp)
			continue
		}
		e.destructurePattern(p.Pattern, source)
	}
}

func (e *Emitter) withDefault(valueText, defaultID string) string {
	return "(" + valueText + " ~= nil and " + valueText + " or " + e.exprValue(defaultID) + ")"
}

// lastTempName returns the most recently allocated temp name - paramList and
// paramPrelude walk the same parameter list in lockstep, so the temp
// allocated for a given non-trivial Parameter in paramList is always the
// most recent one by the time paramPrelude revisits it.
func (e *Emitter) lastTempName() string {
	return fmt.Sprintf("__tmp%d", e.tmp)
}

// functionBody renders a function-shaped node's body at depth+1, prefixed
// with any parameter-expansion prelude.
func (e *Emitter) functionBody(paramIDs []string, bodyID string) {
	e.depth++
	e.paramPrelude(paramIDs)
	e.emitLoopBody(bodyID)
	e.depth--
}

func (e *Emitter) functionDeclaration(v *ir.FunctionDeclaration) {
	if classLike, _ := v.NodeMeta()["classLike"].(bool); classLike {
		e.classConstructor(v)
		return
	}
	name := e.declName(v.Name)
	params := e.paramList(v.Params, false)
	e.line("local function %s(%s)", name, params)
	e.functionBody(v.Params, v.Body)
	e.line("end")
}

func (e *Emitter) asyncFunctionDeclaration(v *ir.AsyncFunctionDeclaration) {
	name := e.declName(v.Name)
	params := e.paramList(v.Params, false)
	e.line("local function %s(%s)", name, params)
	e.depth++
	e.line("return coroutine.create(function()")
	e.functionBody(v.Params, v.Body)
	e.line("end)")
	e.depth--
	e.line("end")
}

func (e *Emitter) generatorDeclaration(v *ir.GeneratorDeclaration) {
	name := e.declName(v.Name)
	params := e.paramList(v.Params, false)
	wasAsyncGen := e.inAsyncGenerator
	if v.AsyncGenerator {
		e.inAsyncGenerator = true
	}
	e.line("local function %s(%s)", name, params)
	e.depth++
	e.line("local __co = coroutine.create(function()")
	e.functionBody(v.Params, v.Body)
	e.line("end)")
	e.line("return {")
	e.depth++
	e.line("next = function(...)")
	e.depth++
	e.line("local __ok, __value = coroutine.resume(__co, ...)")
	e.line("return { value = __value, done = coroutine.status(__co) == \"dead\" }")
	e.depth--
	e.line("end,")
	e.line("[\"return\"] = function(v) return { value = v, done = true } end,")
	e.line("[\"throw\"] = function(e) error(e) end,")
	e.depth--
	e.line("}")
	e.depth--
	e.line("end")
	e.inAsyncGenerator = wasAsyncGen
}

func (e *Emitter) declName(id string) string {
	if id == "" {
		return "_anon"
	}
	n, ok := e.get(id)
	if !ok {
		return "_anon"
	}
	ident, ok := n.(*ir.Identifier)
	if !ok {
		return "_anon"
	}
	return ident.Name
}

// functionExprText renders a FunctionExpression used in expression position
// (a callback argument, an object-literal method value) as inline
// `function(...) ... end` text.
func (e *Emitter) functionExprText(v *ir.FunctionExpression, _ string) string {
	params := e.paramList(v.Params, false)
	header := "function(" + params + ")"
	body := e.captureBlock(func() { e.functionBody(v.Params, v.Body) })
	return header + "\n" + strings.TrimRight(body, "\n") + "\n" + e.indentStr() + "end"
}

func (e *Emitter) arrowExprText(v *ir.ArrowFunctionExpression) string {
	params := e.paramList(v.Params, false)
	header := "function(" + params + ")"
	body := e.captureBlock(func() { e.functionBody(v.Params, v.Body) })
	return header + "\n" + strings.TrimRight(body, "\n") + "\n" + e.indentStr() + "end"
}

// classConstructor renders a classLike FunctionDeclaration (the Lowerer's
// desugared form of `class C [extends Super] { ... }`, §4.4) the way §4.5
// describes: `local C = {}; C.__index = SuperOrSelf`, a colon-form
// `function C:new(...) ... end` constructor.
func (e *Emitter) classConstructor(v *ir.FunctionDeclaration) {
	name := e.declName(v.Name)
	meta := v.NodeMeta()
	super, _ := meta["superClass"].(string)

	e.line("local %s = {}", name)
	if super != "" {
		e.line("%s.__index = %s", name, super)
		e.line("setmetatable(%s, { __index = %s })", name, super)
	} else {
		e.line("%s.__index = %s", name, name)
	}
	e.line("%s.prototype = %s", name, name)

	params := e.paramList(v.Params, false)
	e.line("function %s:new(%s)", name, params)
	e.depth++
	e.line("self = setmetatable({}, self)")
	if super != "" {
		e.line("local super = %s", super)
	}
	e.paramPrelude(v.Params)
	e.emitLoopBody(v.Body)
	e.line("return self")
	e.depth--
	e.line("end")
}

// classMemberAssignment special-cases the Lowerer's desugared member
// statement `C.prototype.m = function...` / `C.m = function...` (§4.4),
// rendering it as the colon/dot method-definition syntax §4.5 asks for
// instead of as a generic assignment expression.
func (e *Emitter) classMemberAssignment(asn *ir.AssignmentExpression) (bool, string) {
	targetNode, ok := e.get(asn.Target)
	if !ok {
		return false, ""
	}
	member, ok := targetNode.(*ir.MemberExpression)
	if !ok || member.Computed {
		return false, ""
	}
	valueNode, ok := e.get(asn.Value)
	if !ok {
		return false, ""
	}
	fn, ok := valueNode.(*ir.FunctionExpression)
	if !ok {
		return false, ""
	}
	if _, hasKind := fn.NodeMeta()["methodKind"]; !hasKind {
		return false, ""
	}

	objNode, ok := e.get(member.Object)
	if !ok {
		return false, ""
	}
	_, static := objNode.(*ir.Identifier)
	target := e.exprValue(member.Object)
	name := e.propertyName(member.Property)

	var out strings.Builder
	params := e.paramList(fn.Params, false)
	if static {
		out.WriteString("function " + target + "." + name + "(" + params + ")\n")
	} else {
		out.WriteString("function " + target + ":" + name + "(" + params + ")\n")
	}
	body := e.captureBlock(func() { e.functionBody(fn.Params, fn.Body) })
	out.WriteString(strings.TrimRight(body, "\n"))
	out.WriteString("\n" + e.indentStr() + "end")
	return true, out.String()
}
