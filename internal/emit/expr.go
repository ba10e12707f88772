package emit

import (
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
)

// binaryOpMap translates a JS binary/logical operator token to its Lua
// equivalent (§4.5). Operators absent from this table pass through
// unchanged (arithmetic and relational operators other than equality share
// the same spelling in both languages).
var binaryOpMap = map[string]string{
	"===": "==",
	"==":  "==",
	"!==": "~=",
	"!=":  "~=",
	"&&":  "and",
	"||":  "or",
	"??":  "or",
	"**":  "^",
	"^":   "~", // JS bitwise XOR -> Lua 5.3 bitwise xor
}

// luaPrecedence is §4.5's precedence table, higher binds tighter.
var luaPrecedence = map[string]int{
	"or": 1, "and": 2,
	"<": 3, ">": 3, "<=": 3, ">=": 3, "~=": 3, "==": 3,
	"|": 4, "~": 5, "&": 6,
	"<<": 7, ">>": 7,
	"..": 8,
	"+":  9, "-": 9,
	"*": 10, "/": 10, "//": 10, "%": 10,
	"^": 12,
}

const unaryPrecedence = 11

// rightAssoc names the operators that associate right-to-left.
var rightAssoc = map[string]bool{"^": true, "..": true}

// exprValue renders id in "value position" - a return argument, an
// assignment's RHS, a variable initializer, a call argument, an array
// element, or a property value. Binary/logical/conditional expressions are
// always wrapped in their own parentheses here, matching §8's literal
// scenarios (`return (a + b)`, `local s = ("x" .. y)`).
func (e *Emitter) exprValue(id string) string {
	if id == "" {
		return "nil"
	}
	n, ok := e.get(id)
	if !ok {
		return ""
	}
	text := e.exprBare(id)
	switch n.(type) {
	case *ir.BinaryExpression, *ir.LogicalExpression, *ir.ConditionalExpression:
		return "(" + text + ")"
	default:
		return text
	}
}

// operand renders id as one side of a binary/logical expression whose
// mapped Lua operator is parentOp, applying §4.5's parent-aware grouping
// predicate: a child binary/logical expression is parenthesized iff its
// precedence is strictly lower than the parent's, or the precedences tie
// and the child sits on the associativity-sensitive side.
func (e *Emitter) operand(id string, parentOp string, isRightSide bool) string {
	if id == "" {
		return "nil"
	}
	n, ok := e.get(id)
	if !ok {
		return ""
	}
	text := e.exprBare(id)

	var childOp string
	switch c := n.(type) {
	case *ir.BinaryExpression:
		childOp = e.mapBinaryOp(c.Operator, c.Left, c.Right)
	case *ir.LogicalExpression:
		childOp = binaryOpMap[c.Operator]
		if childOp == "" {
			childOp = c.Operator
		}
	case *ir.ConditionalExpression:
		return "(" + text + ")"
	default:
		return text
	}

	parentPrec := luaPrecedence[parentOp]
	childPrec := luaPrecedence[childOp]
	needsParens := childPrec < parentPrec
	if !needsParens && childPrec == parentPrec {
		if rightAssoc[parentOp] {
			needsParens = !isRightSide
		} else {
			needsParens = isRightSide
		}
	}
	if needsParens {
		return "(" + text + ")"
	}
	return text
}

// mapBinaryOp resolves a BinaryExpression's emitted operator, applying
// §4.5's string-concatenation inference to `+`.
func (e *Emitter) mapBinaryOp(op, left, right string) string {
	if op == "+" && (e.stringLike(left, 10) || e.stringLike(right, 10)) {
		return ".."
	}
	if mapped, ok := binaryOpMap[op]; ok {
		return mapped
	}
	return op
}

// stringLike is the depth-limited recursive "string-like" predicate named
// in §4.5, deciding whether `+` should be emitted as Lua's `..`.
func (e *Emitter) stringLike(id string, depth int) bool {
	if depth <= 0 || id == "" {
		return false
	}
	n, ok := e.mod.Get(id)
	if !ok {
		return false
	}
	switch v := n.(type) {
	case *ir.Literal:
		return v.LitKind == ir.LiteralString
	case *ir.TemplateLiteral:
		return true
	case *ir.BinaryExpression:
		if v.Operator != "+" {
			return false
		}
		return e.stringLike(v.Left, depth-1) || e.stringLike(v.Right, depth-1)
	case *ir.CallExpression:
		return e.callLooksStringLike(v.Callee)
	case *ir.MemberExpression:
		return e.stringLike(v.Object, depth-1)
	default:
		return false
	}
}

func (e *Emitter) callLooksStringLike(calleeID string) bool {
	n, ok := e.mod.Get(calleeID)
	if !ok {
		return false
	}
	switch v := n.(type) {
	case *ir.Identifier:
		return v.Name == "String"
	case *ir.MemberExpression:
		prop, ok := e.mod.Get(v.Property)
		if !ok {
			return false
		}
		id, ok := prop.(*ir.Identifier)
		return ok && (id.Name == "toString" || id.Name == "concat")
	default:
		return false
	}
}

// exprBare dispatches id to its textual rendering with no self-imposed
// outer parentheses; exprValue/operand layer parens on top as their
// contexts require.
func (e *Emitter) exprBare(id string) string {
	n, ok := e.get(id)
	if !ok {
		return ""
	}
	switch v := n.(type) {
	case *ir.Identifier:
		return v.Name
	case *ir.Literal:
		return e.literal(v)
	case *ir.ThisExpression:
		return "self"
	case *ir.Super:
		return "super"
	case *ir.BinaryExpression:
		op := e.mapBinaryOp(v.Operator, v.Left, v.Right)
		return e.operand(v.Left, op, false) + " " + op + " " + e.operand(v.Right, op, true)
	case *ir.LogicalExpression:
		op := binaryOpMap[v.Operator]
		if op == "" {
			op = v.Operator
		}
		return e.operand(v.Left, op, false) + " " + op + " " + e.operand(v.Right, op, true)
	case *ir.UnaryExpression:
		return e.unaryExpr(v)
	case *ir.UpdateExpression:
		return e.updateExpr(v)
	case *ir.AssignmentExpression:
		return e.assignmentExpr(v)
	case *ir.ConditionalExpression:
		if cn, ok := e.get(v.Consequent); ok {
			if lit, ok := cn.(*ir.Literal); ok && lit.Value == false {
				return "(" + e.exprValue(v.Test) + " and {" + e.ternaryBranch(v.Consequent) + "} or {" + e.ternaryBranch(v.Alternate) + "})[1]"
			}
		}
		return e.exprValue(v.Test) + " and " + e.ternaryBranch(v.Consequent) + " or " + e.ternaryBranch(v.Alternate)
	case *ir.CallExpression:
		return e.callExpr(v)
	case *ir.NewExpression:
		return e.newExpr(v)
	case *ir.MemberExpression:
		return e.memberExpr(v)
	case *ir.ArrayExpression:
		return e.arrayExpr(v)
	case *ir.ObjectExpression:
		return e.objectExpr(v)
	case *ir.TemplateLiteral:
		return e.templateLiteral(v)
	case *ir.SpreadElement:
		return e.exprValue(v.Argument)
	case *ir.FunctionExpression:
		return e.functionExprText(v, "")
	case *ir.ArrowFunctionExpression:
		return e.arrowExprText(v)
	case *ir.AwaitExpression:
		return e.awaitExpr(v)
	case *ir.YieldExpression:
		return e.yieldExpr(v)
	default:
		e.fail(diag.CodeUnsupportedKind, "emit: UnsupportedKind(%s)", n.NodeKind())
		return ""
	}
}

// ternaryBranch renders one conditional-expression branch. Lua's
// `a and b or c` idiom silently miscompiles when b is `false`/`nil`, so
// exprBare wraps both branches in single-element tables and unwraps the
// result inline when the consequent is a literal `false`. JS
// source producing boolean-valued ternary branches is rare enough in
// practice that the plain form is used whenever the branch is not itself a
// literal `false`.
func (e *Emitter) ternaryBranch(id string) string {
	return e.exprValue(id)
}

func (e *Emitter) unaryExpr(v *ir.UnaryExpression) string {
	arg := e.unaryOperand(v.Argument)
	switch v.Operator {
	case "!":
		return "not " + arg
	case "typeof":
		return "type(" + e.exprValue(v.Argument) + ")"
	case "+":
		return "(" + e.exprValue(v.Argument) + " + 0)"
	case "-":
		return "-" + arg
	case "~":
		return "~" + arg
	default:
		return v.Operator + arg
	}
}

// unaryOperand parenthesizes a binary/logical/conditional argument of a
// unary operator, since unary binds tighter than any binary Lua operator.
func (e *Emitter) unaryOperand(id string) string {
	n, ok := e.get(id)
	if !ok {
		return ""
	}
	switch n.(type) {
	case *ir.BinaryExpression, *ir.LogicalExpression, *ir.ConditionalExpression:
		return "(" + e.exprBare(id) + ")"
	default:
		return e.exprBare(id)
	}
}

func (e *Emitter) updateExpr(v *ir.UpdateExpression) string {
	op := "+"
	if v.Operator == "--" {
		op = "-"
	}
	target := e.exprValue(v.Argument)
	return target + " = " + target + " " + op + " 1"
}

func (e *Emitter) assignmentExpr(v *ir.AssignmentExpression) string {
	target := e.exprValue(v.Target)
	if v.Operator == "=" {
		return target + " = " + e.exprValue(v.Value)
	}
	op := trimAssignOp(v.Operator)
	rhsOp := e.mapBinaryOp(op, v.Target, v.Value)
	return target + " = " + target + " " + rhsOp + " " + e.exprValue(v.Value)
}

// trimAssignOp strips the trailing `=` off a compound assignment operator
// like `+=`, recovering the underlying binary operator.
func trimAssignOp(op string) string {
	if len(op) > 1 && op[len(op)-1] == '=' {
		return op[:len(op)-1]
	}
	return op
}

func (e *Emitter) callExpr(v *ir.CallExpression) string {
	args := make([]string, len(v.Arguments))
	for i, a := range v.Arguments {
		args[i] = e.exprValue(a)
	}
	callee := e.exprValue(v.Callee)
	joined := joinArgs(args)
	if !v.Optional {
		return callee + "(" + joined + ")"
	}
	return "(type(" + callee + ") == \"function\" and " + callee + "(" + joined + ") or nil)"
}

func (e *Emitter) newExpr(v *ir.NewExpression) string {
	args := make([]string, len(v.Arguments))
	for i, a := range v.Arguments {
		args[i] = e.exprValue(a)
	}
	return e.exprValue(v.Callee) + ":new(" + joinArgs(args) + ")"
}

func (e *Emitter) memberExpr(v *ir.MemberExpression) string {
	obj := e.exprValue(v.Object)
	if v.Optional {
		var access string
		if v.Computed {
			access = obj + "[" + e.exprValue(v.Property) + "]"
		} else {
			access = obj + "." + e.propertyName(v.Property)
		}
		return "(" + obj + " ~= nil and " + access + " or nil)"
	}
	if v.Computed {
		return obj + "[" + e.exprValue(v.Property) + "]"
	}
	return obj + "." + e.propertyName(v.Property)
}

// propertyName renders a non-computed MemberExpression property, which is
// always an Identifier carrying the field name.
func (e *Emitter) propertyName(id string) string {
	n, ok := e.get(id)
	if !ok {
		return ""
	}
	ident, ok := n.(*ir.Identifier)
	if !ok {
		e.fail(diag.CodeUnsupportedKind, "emit: non-computed member property %q is not an Identifier", id)
		return ""
	}
	return ident.Name
}

func (e *Emitter) arrayExpr(v *ir.ArrayExpression) string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		if el == "" {
			parts[i] = "nil"
			continue
		}
		n, _ := e.get(el)
		if spread, ok := n.(*ir.SpreadElement); ok {
			parts[i] = "table.unpack(" + e.exprValue(spread.Argument) + ")"
			continue
		}
		parts[i] = e.exprValue(el)
	}
	return "{ " + joinArgs(parts) + " }"
}

func (e *Emitter) objectExpr(v *ir.ObjectExpression) string {
	parts := make([]string, 0, len(v.Properties))
	for _, propID := range v.Properties {
		n, ok := e.get(propID)
		if !ok {
			continue
		}
		prop, ok := n.(*ir.Property)
		if !ok {
			e.fail(diag.CodeUnsupportedKind, "emit: ObjectExpression entry %q is not a Property", propID)
			continue
		}
		if spreadNode, ok := e.nodeIfSpread(prop.Value); ok {
			parts = append(parts, "table.unpack("+e.exprValue(spreadNode)+")")
			continue
		}
		value := e.exprValue(prop.Value)
		if prop.Computed {
			parts = append(parts, "["+e.exprValue(prop.Key)+"] = "+value)
			continue
		}
		parts = append(parts, "["+e.quoteKey(prop.Key)+"] = "+value)
	}
	return "{ " + joinArgs(parts) + " }"
}

func (e *Emitter) nodeIfSpread(id string) (string, bool) {
	n, ok := e.mod.Get(id)
	if !ok {
		return "", false
	}
	sp, ok := n.(*ir.SpreadElement)
	if !ok {
		return "", false
	}
	return sp.Argument, true
}

// quoteKey renders a property key as a quoted Lua table-constructor key,
// regardless of whether the source used an identifier or string key - Lua
// table constructors accept `["name"] = v` uniformly.
func (e *Emitter) quoteKey(id string) string {
	n, ok := e.get(id)
	if !ok {
		return `""`
	}
	switch v := n.(type) {
	case *ir.Identifier:
		return quoteLuaString(v.Name)
	case *ir.Literal:
		return quoteLuaString(toKeyText(v))
	default:
		return e.exprValue(id)
	}
}

func (e *Emitter) templateLiteral(v *ir.TemplateLiteral) string {
	parts := make([]string, 0, len(v.Quasis)+len(v.Expressions))
	for i, qID := range v.Quasis {
		n, ok := e.get(qID)
		if ok {
			if tmpl, ok := n.(*ir.TemplateElement); ok && tmpl.Cooked != "" {
				parts = append(parts, quoteLuaString(tmpl.Cooked))
			} else if ok {
				parts = append(parts, quoteLuaString(""))
			}
		}
		if i < len(v.Expressions) {
			parts = append(parts, "tostring("+e.exprValue(v.Expressions[i])+")")
		}
	}
	if len(parts) == 0 {
		return quoteLuaString("")
	}
	joined := parts[0]
	for _, p := range parts[1:] {
		joined += " .. " + p
	}
	return joined
}

func (e *Emitter) awaitExpr(v *ir.AwaitExpression) string {
	arg := e.exprValue(v.Argument)
	if e.inAsyncGenerator {
		e.needsAsyncGenHelper = true
		e.needsAwaitHelper = true
		return "__await_value(" + arg + ")"
	}
	e.needsAwaitHelper = true
	return "coroutine.yield(" + arg + ")"
}

func (e *Emitter) yieldExpr(v *ir.YieldExpression) string {
	if v.Delegate {
		return "__yield_delegate(" + e.exprValue(v.Argument) + ")"
	}
	if v.Argument == "" {
		return "coroutine.yield()"
	}
	return "coroutine.yield(" + e.exprValue(v.Argument) + ")"
}

func joinArgs(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
