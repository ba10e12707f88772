package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsl/internal/jsonvalue"
)

// recognizeFixture is the "trivial embedded recognizer for the literal test
// fixtures used in this repository's own golden tests" named in §4.9 point
// 1 - the real production parser is an external collaborator (§1) this
// core never reimplements. It recognizes exactly the handful of literal
// source shapes named in §8's end-to-end scenarios and nothing else,
// mirroring the Normalizer's own narrow, best-effort regex fallback (§4.3,
// §9: "keep, but gate behind an explicit feature flag and cap input size").
// Every match path builds a raw jsonvalue tree and hands it to the real
// Normalize stage rather than skipping normalization.
func recognizeFixture(source string) (*jsonvalue.Value, bool) {
	if len(source) > 4096 {
		return nil, false
	}
	src := strings.TrimSpace(source)

	for _, rec := range []func(string) (*jsonvalue.Value, bool){
		recognizeFunctionAddReturn,
		recognizeStringConcatDecl,
		recognizeIfElseIncrementDecrement,
		recognizeTryCatchFinally,
		recognizeArrayDestructureRest,
		recognizeAsyncAwait,
	} {
		if prog, ok := rec(src); ok {
			return prog, true
		}
	}
	return nil, false
}

func program(body ...*jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.Node("Program", jsonvalue.F("body", jsonvalue.Arr(body...)))
}

func ident(name string) *jsonvalue.Value {
	return jsonvalue.Node("Identifier", jsonvalue.F("name", jsonvalue.Str(name)))
}

func numLit(raw string) *jsonvalue.Value {
	n, _ := strconv.ParseFloat(raw, 64)
	return jsonvalue.Node("Literal", jsonvalue.F("value", jsonvalue.Num(n)), jsonvalue.F("raw", jsonvalue.Str(raw)))
}

func strLit(s string) *jsonvalue.Value {
	return jsonvalue.Node("Literal", jsonvalue.F("value", jsonvalue.Str(s)), jsonvalue.F("raw", jsonvalue.Str(s)))
}

// numberOrIdent recognizes a bare identifier or a decimal number literal -
// the only two atomic operands the literal scenarios ever need.
func numberOrIdent(tok string) *jsonvalue.Value {
	tok = strings.TrimSpace(tok)
	if m := regexp.MustCompile(`^-?\d+(\.\d+)?$`).MatchString(tok); m {
		return numLit(tok)
	}
	return ident(tok)
}

func binary(op string, left, right *jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.Node("BinaryExpression",
		jsonvalue.F("operator", jsonvalue.Str(op)),
		jsonvalue.F("left", left),
		jsonvalue.F("right", right))
}

func exprStmt(expr *jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.Node("ExpressionStatement", jsonvalue.F("expression", expr))
}

func blockStmt(stmts ...*jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.Node("BlockStatement", jsonvalue.F("body", jsonvalue.Arr(stmts...)))
}

// recognizeFunctionAddReturn matches §8 scenario 1:
// "function add(a,b){ return a+b; }"
var functionAddReturnRe = regexp.MustCompile(
	`^function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*,\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)\s*\{\s*return\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\+\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*;?\s*\}\s*$`)

func recognizeFunctionAddReturn(src string) (*jsonvalue.Value, bool) {
	m := functionAddReturnRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	name, p1, p2, l, r := m[1], m[2], m[3], m[4], m[5]
	body := blockStmt(jsonvalue.Node("ReturnStatement",
		jsonvalue.F("argument", binary("+", ident(l), ident(r)))))
	fn := jsonvalue.Node("FunctionDeclaration",
		jsonvalue.F("id", ident(name)),
		jsonvalue.F("params", jsonvalue.Arr(ident(p1), ident(p2))),
		jsonvalue.F("body", body))
	return program(fn), true
}

// recognizeStringConcatDecl matches §8 scenario 2: `const s = "x" + y;`
var stringConcatDeclRe = regexp.MustCompile(
	`^(var|let|const)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*"([^"]*)"\s*\+\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*;?\s*$`)

func recognizeStringConcatDecl(src string) (*jsonvalue.Value, bool) {
	m := stringConcatDeclRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	kind, name, strVal, rhs := m[1], m[2], m[3], m[4]
	decl := jsonvalue.Node("VariableDeclaration",
		jsonvalue.F("kind", jsonvalue.Str(kind)),
		jsonvalue.F("declarations", jsonvalue.Arr(
			jsonvalue.Node("VariableDeclarator",
				jsonvalue.F("id", ident(name)),
				jsonvalue.F("init", binary("+", strLit(strVal), ident(rhs)))),
		)))
	return program(decl), true
}

// recognizeIfElseIncrementDecrement matches §8 scenario 3:
// "if (x > 5) { x = x+1; } else { x = x-1; }"
var ifElseRe = regexp.MustCompile(
	`^if\s*\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*([<>]=?|[=!]==?)\s*(-?\d+(?:\.\d+)?)\s*\)\s*\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\+\s*(\d+)\s*;?\s*\}\s*else\s*\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*-\s*(\d+)\s*;?\s*\}\s*$`)

func recognizeIfElseIncrementDecrement(src string) (*jsonvalue.Value, bool) {
	m := ifElseRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	testVar, op, bound := m[1], m[2], m[3]
	thenTarget, thenBase, thenDelta := m[4], m[5], m[6]
	elseTarget, elseBase, elseDelta := m[7], m[8], m[9]

	test := binary(op, ident(testVar), numLit(bound))
	thenAssign := jsonvalue.Node("AssignmentExpression",
		jsonvalue.F("operator", jsonvalue.Str("=")),
		jsonvalue.F("left", ident(thenTarget)),
		jsonvalue.F("right", binary("+", ident(thenBase), numLit(thenDelta))))
	elseAssign := jsonvalue.Node("AssignmentExpression",
		jsonvalue.F("operator", jsonvalue.Str("=")),
		jsonvalue.F("left", ident(elseTarget)),
		jsonvalue.F("right", binary("-", ident(elseBase), numLit(elseDelta))))

	ifStmt := jsonvalue.Node("IfStatement",
		jsonvalue.F("test", test),
		jsonvalue.F("consequent", blockStmt(exprStmt(thenAssign))),
		jsonvalue.F("alternate", blockStmt(exprStmt(elseAssign))))
	return program(ifStmt), true
}

// recognizeTryCatchFinally matches §8 scenario 4:
// "try { f(); } catch (e) { g(e); } finally { h(); }"
var tryCatchFinallyRe = regexp.MustCompile(
	`^try\s*\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\(\s*\)\s*;?\s*\}\s*catch\s*\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)\s*\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)\s*;?\s*\}\s*finally\s*\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\(\s*\)\s*;?\s*\}\s*$`)

func recognizeTryCatchFinally(src string) (*jsonvalue.Value, bool) {
	m := tryCatchFinallyRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	tryCallee, catchParam, catchCallee, catchArg, finallyCallee := m[1], m[2], m[3], m[4], m[5]

	call := func(callee string, args ...*jsonvalue.Value) *jsonvalue.Value {
		return jsonvalue.Node("CallExpression",
			jsonvalue.F("callee", ident(callee)),
			jsonvalue.F("arguments", jsonvalue.Arr(args...)))
	}

	tryBlock := blockStmt(exprStmt(call(tryCallee)))
	handler := jsonvalue.Node("CatchClause",
		jsonvalue.F("param", ident(catchParam)),
		jsonvalue.F("body", blockStmt(exprStmt(call(catchCallee, ident(catchArg))))))
	finalizer := blockStmt(exprStmt(call(finallyCallee)))

	tryStmt := jsonvalue.Node("TryStatement",
		jsonvalue.F("block", tryBlock),
		jsonvalue.F("handler", handler),
		jsonvalue.F("finalizer", finalizer))
	return program(tryStmt), true
}

// recognizeArrayDestructureRest matches §8 scenario 5:
// "const [a, , c, ...rest] = arr;"
var arrayDestructureRe = regexp.MustCompile(
	`^(var|let|const)\s*\[\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*,\s*,\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*,\s*\.\.\.([A-Za-z_$][A-Za-z0-9_$]*)\s*\]\s*=\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*;?\s*$`)

func recognizeArrayDestructureRest(src string) (*jsonvalue.Value, bool) {
	m := arrayDestructureRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	kind, a, c, rest, arr := m[1], m[2], m[3], m[4], m[5]

	pattern := jsonvalue.Node("ArrayPattern", jsonvalue.F("elements", jsonvalue.Arr(
		ident(a),
		jsonvalue.NewNull(),
		ident(c),
		jsonvalue.Node("RestElement", jsonvalue.F("argument", ident(rest))),
	)))
	decl := jsonvalue.Node("VariableDeclaration",
		jsonvalue.F("kind", jsonvalue.Str(kind)),
		jsonvalue.F("declarations", jsonvalue.Arr(
			jsonvalue.Node("VariableDeclarator",
				jsonvalue.F("id", pattern),
				jsonvalue.F("init", ident(arr))),
		)))
	return program(decl), true
}

// recognizeAsyncAwait matches §8 scenario 6: "async function f(){ await g(); }"
var asyncAwaitRe = regexp.MustCompile(
	`^async\s+function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(\s*\)\s*\{\s*await\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(\s*\)\s*;?\s*\}\s*$`)

func recognizeAsyncAwait(src string) (*jsonvalue.Value, bool) {
	m := asyncAwaitRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}
	name, callee := m[1], m[2]
	call := jsonvalue.Node("CallExpression",
		jsonvalue.F("callee", ident(callee)),
		jsonvalue.F("arguments", jsonvalue.Arr()))
	await := jsonvalue.Node("AwaitExpression", jsonvalue.F("argument", call))
	body := blockStmt(exprStmt(await))
	fn := jsonvalue.Node("FunctionDeclaration",
		jsonvalue.F("id", ident(name)),
		jsonvalue.F("params", jsonvalue.Arr()),
		jsonvalue.F("body", body),
		jsonvalue.F("async", jsonvalue.Bool(true)))
	return program(fn), true
}
