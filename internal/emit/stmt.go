package emit

import (
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
)

// stmt dispatches id to its statement rendering (§4.5's statement
// dispatch-by-kind). A node kind with no statement meaning here (any pure
// expression kind) is rendered as a bare expression statement.
func (e *Emitter) stmt(id string) {
	if e.err != nil || id == "" {
		return
	}
	n, ok := e.get(id)
	if !ok {
		return
	}
	switch v := n.(type) {
	case *ir.VariableDeclaration:
		e.variableDeclaration(v)
	case *ir.ExpressionStatement:
		e.line("%s", e.exprValue(v.Expr))
	case *ir.ReturnStatement:
		if v.Argument == "" {
			e.line("return")
		} else {
			e.line("return %s", e.exprValue(v.Argument))
		}
	case *ir.IfStatement:
		e.ifStatement(v)
	case *ir.SwitchStatement:
		e.switchStatement(v)
	case *ir.ForStatement:
		e.forStatement(v)
	case *ir.ForOfStatement:
		e.forOfStatement(v)
	case *ir.ForInStatement:
		e.forInStatement(v)
	case *ir.WhileStatement:
		e.whileStatement(v)
	case *ir.DoWhileStatement:
		e.doWhileStatement(v)
	case *ir.BreakStatement:
		e.line("break")
	case *ir.ContinueStatement:
		e.line("goto %s", e.currentLoopLabel())
	case *ir.ThrowStatement:
		e.line("error(%s)", e.exprValue(v.Argument))
	case *ir.TryStatement:
		e.tryStatement(v)
	case *ir.BlockStatement:
		e.emitBlockInline(v)
	case *ir.FunctionDeclaration:
		e.functionDeclaration(v)
	case *ir.AsyncFunctionDeclaration:
		e.asyncFunctionDeclaration(v)
	case *ir.GeneratorDeclaration:
		e.generatorDeclaration(v)
	default:
		e.fail(diag.CodeUnsupportedKind, "emit: UnsupportedKind(%s)", n.NodeKind())
	}
}

// emitBlockInline renders a nested BlockStatement's own statements without
// introducing a `do ... end` wrapper beyond what the caller already opened
// (used when a block shows up directly at statement position, e.g. as a
// catch body rendered through the generic dispatcher).
func (e *Emitter) emitBlockInline(v *ir.BlockStatement) {
	for _, id := range v.Body {
		e.stmt(id)
		if e.err != nil {
			return
		}
	}
}

// variableDeclaration emits one `local` statement per declarator,
// regardless of the source's let/const/var (§4.5).
func (e *Emitter) variableDeclaration(v *ir.VariableDeclaration) {
	for _, dID := range v.Declarations {
		n, ok := e.get(dID)
		if !ok {
			return
		}
		dtor, ok := n.(*ir.VariableDeclarator)
		if !ok {
			e.fail(diag.CodeUnsupportedKind, "emit: VariableDeclaration entry %q is not a VariableDeclarator", dID)
			return
		}
		e.declarator(dtor)
		if e.err != nil {
			return
		}
	}
}

// declarator renders one binding. A plain-identifier pattern becomes a
// single `local name = init`; a destructuring pattern is expanded by
// destructurePattern against a temp holding the initializer.
func (e *Emitter) declarator(v *ir.VariableDeclarator) {
	patNode, ok := e.get(v.NamePattern)
	if !ok {
		return
	}
	if ident, ok := patNode.(*ir.Identifier); ok {
		if v.Init == "" {
			e.line("local %s", ident.Name)
		} else {
			e.line("local %s = %s", ident.Name, e.exprValue(v.Init))
		}
		return
	}

	initText := e.exprValue(v.Init)
	temp := e.newTemp()
	e.line("local %s = %s", temp, initText)
	e.destructurePattern(v.NamePattern, temp)
}

func (e *Emitter) ifStatement(v *ir.IfStatement) {
	e.line("if %s then", e.exprValue(v.Test))
	e.openBlock(v.Consequent)
	if v.Alternate != "" {
		e.elseTail(v.Alternate)
	}
	e.line("end")
}

// elseTail renders the else-branch of a desugared if/else-if chain that
// isn't itself another IfStatement.
func (e *Emitter) elseTail(id string) {
	altNode, ok := e.get(id)
	if !ok {
		return
	}
	if nestedIf, ok := altNode.(*ir.IfStatement); ok {
		e.line("else")
		e.depth++
		e.line("if %s then", e.exprValue(nestedIf.Test))
		e.openBlock(nestedIf.Consequent)
		if nestedIf.Alternate != "" {
			e.elseTail(nestedIf.Alternate)
		}
		e.line("end")
		e.depth--
		return
	}
	e.line("else")
	e.openBlock(id)
}

// switchStatement covers the rare case an Extension Registry transform
// reintroduces a SwitchStatement after the Lowerer's own if/else-if
// desugaring (§4.4, §9) - rendered the same way the Lowerer would have
// desugared it, fallthrough intentionally unsupported (§9 open question).
func (e *Emitter) switchStatement(v *ir.SwitchStatement) {
	discr := e.exprValue(v.Discriminant)
	first := true
	var defaultCase *ir.SwitchCase
	for _, caseID := range v.Cases {
		n, ok := e.get(caseID)
		if !ok {
			return
		}
		c, ok := n.(*ir.SwitchCase)
		if !ok {
			e.fail(diag.CodeUnsupportedKind, "emit: SwitchStatement entry %q is not a SwitchCase", caseID)
			return
		}
		if c.Test == "" {
			defaultCase = c
			continue
		}
		kw := "if"
		if !first {
			kw = "elseif"
		}
		first = false
		e.line("%s %s == %s then", kw, discr, e.exprValue(c.Test))
		e.openBlockStmts(c.Consequent)
	}
	if defaultCase != nil {
		e.line("else")
		e.openBlockStmts(defaultCase.Consequent)
	}
	e.line("end")
}

func (e *Emitter) forStatement(v *ir.ForStatement) {
	if v.Init != "" {
		e.stmt(v.Init)
	}
	test := "true"
	if v.Test != "" {
		test = e.exprValue(v.Test)
	}
	e.line("while %s do", test)
	e.depth++
	label := e.pushLoop()
	e.emitLoopBody(v.Body)
	if v.Update != "" {
		e.line("%s", e.exprValue(v.Update))
	}
	e.emitContinueLabel(label)
	e.popLoop()
	e.depth--
	e.line("end")
}

func (e *Emitter) whileStatement(v *ir.WhileStatement) {
	e.line("while %s do", e.exprValue(v.Test))
	e.depth++
	label := e.pushLoop()
	e.emitLoopBody(v.Body)
	e.emitContinueLabel(label)
	e.popLoop()
	e.depth--
	e.line("end")
}

func (e *Emitter) doWhileStatement(v *ir.DoWhileStatement) {
	e.line("repeat")
	e.depth++
	label := e.pushLoop()
	e.emitLoopBody(v.Body)
	e.emitContinueLabel(label)
	e.popLoop()
	e.depth--
	e.line("until not (%s)", e.exprValue(v.Test))
}

// emitLoopBody renders a loop body's statements directly (without its own
// `do ... end`, since the caller already opened one via while/for/repeat).
func (e *Emitter) emitLoopBody(bodyID string) {
	n, ok := e.get(bodyID)
	if !ok {
		return
	}
	if blk, ok := n.(*ir.BlockStatement); ok {
		for _, s := range blk.Body {
			e.stmt(s)
			if e.err != nil {
				return
			}
		}
		return
	}
	e.stmt(bodyID)
}

// forOfStatement realizes `for (left of right) body` with the runtime
// dispatch §4.5 describes: drive an iterator-protocol object via
// `iter:next()`/`.done`, falling back to `ipairs` for plain tables.
func (e *Emitter) forOfStatement(v *ir.ForOfStatement) {
	iterable := e.exprValue(v.Right)
	bindName := e.forBindingName(v.Left)
	iterVar := e.newTemp()
	entryVar := e.newTemp()

	e.line("local %s = %s", iterVar, iterable)
	e.line("if type(%s) == \"table\" and %s.next ~= nil then", iterVar, iterVar)
	e.depth++
	e.line("while true do")
	e.depth++
	e.line("local %s = %s:next()", entryVar, iterVar)
	e.line("if %s.done then break end", entryVar)
	e.line("local %s = %s.value", bindName, entryVar)
	if v.Await {
		e.needsAwaitHelper = true
		e.line("%s = __await_value(%s)", bindName, bindName)
	}
	label := e.pushLoop()
	e.emitLoopBody(v.Body)
	e.emitContinueLabel(label)
	e.popLoop()
	e.depth--
	e.line("end")
	e.depth--
	e.line("else")
	e.depth++
	idxVar := e.newTemp()
	e.line("for %s, %s in ipairs(%s) do", idxVar, bindName, iterVar)
	e.depth++
	label2 := e.pushLoop()
	e.emitLoopBody(v.Body)
	e.emitContinueLabel(label2)
	e.popLoop()
	e.depth--
	e.line("end")
	e.depth--
	e.line("end")
}

func (e *Emitter) forInStatement(v *ir.ForInStatement) {
	bindName := e.forBindingName(v.Left)
	e.line("for %s in pairs(%s) do", bindName, e.exprValue(v.Right))
	e.depth++
	label := e.pushLoop()
	e.emitLoopBody(v.Body)
	e.emitContinueLabel(label)
	e.popLoop()
	e.depth--
	e.line("end")
}

// forBindingName resolves a for-of/for-in left-hand side to a plain Lua
// name: either the identifier bound directly, or a declarator's pattern
// when the left side is a fresh `const x` binding.
func (e *Emitter) forBindingName(id string) string {
	n, ok := e.get(id)
	if !ok {
		return "_"
	}
	switch v := n.(type) {
	case *ir.Identifier:
		return v.Name
	case *ir.VariableDeclaration:
		if len(v.Declarations) == 0 {
			return "_"
		}
		dn, ok := e.get(v.Declarations[0])
		if !ok {
			return "_"
		}
		dtor, ok := dn.(*ir.VariableDeclarator)
		if !ok {
			return "_"
		}
		if ident, ok := e.get(dtor.NamePattern); ok {
			if id, ok := ident.(*ir.Identifier); ok {
				return id.Name
			}
		}
	}
	return "_"
}

func (e *Emitter) tryStatement(v *ir.TryStatement) {
	fnName := "__try_" + e.newTemp()
	e.line("local function %s()", fnName)
	e.depth++
	e.stmt(v.Block)
	e.depth--
	e.line("end")

	okVar, errVar := "__ok", "__err"
	e.line("local %s, %s = xpcall(%s, function(e) return e end)", okVar, errVar, fnName)

	if v.Handler != "" {
		n, ok := e.get(v.Handler)
		if !ok {
			return
		}
		handler, ok := n.(*ir.CatchClause)
		if !ok {
			e.fail(diag.CodeUnsupportedKind, "emit: TryStatement handler %q is not a CatchClause", v.Handler)
			return
		}
		e.line("if not %s then", okVar)
		e.depth++
		if handler.Param != "" {
			paramName := e.forBindingName(handler.Param)
			e.line("local %s = %s", paramName, errVar)
		}
		e.stmt(handler.Body)
		e.depth--
		e.line("end")
	}

	if v.Finalizer != "" {
		e.stmt(v.Finalizer)
	}
}

func (e *Emitter) pushLoop() string {
	label := e.newLoopLabel()
	e.loopLabels = append(e.loopLabels, label)
	return label
}

func (e *Emitter) currentLoopLabel() string {
	if len(e.loopLabels) == 0 {
		return "continue_loop"
	}
	return e.loopLabels[len(e.loopLabels)-1]
}

func (e *Emitter) emitContinueLabel(label string) {
	e.line("::%s::", label)
}

func (e *Emitter) popLoop() {
	if len(e.loopLabels) > 0 {
		e.loopLabels = e.loopLabels[:len(e.loopLabels)-1]
	}
}

// openBlock renders a statement used at a consequent/body slot, wrapped in
// an indent step. A non-block statement (the normalizer always produces a
// BlockStatement for these slots, but defensively handled here) renders as
// a single indented statement.
func (e *Emitter) openBlock(id string) {
	n, ok := e.get(id)
	if !ok {
		return
	}
	if blk, ok := n.(*ir.BlockStatement); ok {
		e.openBlockStmts(blk.Body)
		return
	}
	e.depth++
	e.stmt(id)
	e.depth--
}

func (e *Emitter) openBlockStmts(ids []string) {
	e.depth++
	for _, id := range ids {
		e.stmt(id)
		if e.err != nil {
			e.depth--
			return
		}
	}
	e.depth--
}
