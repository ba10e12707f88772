package ast

import (
	"bytes"

	"github.com/cwbudde/go-jsl/internal/span"
)

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil when there is no else branch
	Span       span.Span
}

func (i *IfStatement) Kind() Kind         { return KindIfStatement }
func (i *IfStatement) Pos() span.Position { return i.Span.Start }
func (i *IfStatement) End() span.Position { return i.Span.End }
func (i *IfStatement) statementNode()     {}
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Test.String())
	out.WriteString(") ")
	out.WriteString(i.Consequent.String())
	if i.Alternate != nil {
		out.WriteString(" else ")
		out.WriteString(i.Alternate.String())
	}
	return out.String()
}

// SwitchCase is one `case test:` (or `default:` when Test is nil) arm of a
// SwitchStatement.
type SwitchCase struct {
	Test       Expression // nil for the default case
	Consequent []Statement
	Span       span.Span
}

func (s *SwitchCase) Kind() Kind         { return KindSwitchCase }
func (s *SwitchCase) Pos() span.Position { return s.Span.Start }
func (s *SwitchCase) End() span.Position { return s.Span.End }
func (s *SwitchCase) statementNode()     {}
func (s *SwitchCase) String() string {
	var out bytes.Buffer
	if s.Test == nil {
		out.WriteString("default:")
	} else {
		out.WriteString("case ")
		out.WriteString(s.Test.String())
		out.WriteString(":")
	}
	for _, stmt := range s.Consequent {
		out.WriteString(" ")
		out.WriteString(stmt.String())
	}
	return out.String()
}

// SwitchStatement is `switch (discriminant) { case ...; default: ... }`.
// The Lowerer desugars this into a nested if/else-if/else chain over strict
// equality - fallthrough between cases is not supported, a deliberate
// semantic narrowing recorded in §9.
type SwitchStatement struct {
	Discriminant Expression
	Cases        []*SwitchCase
	Span         span.Span
}

func (s *SwitchStatement) Kind() Kind         { return KindSwitchStatement }
func (s *SwitchStatement) Pos() span.Position { return s.Span.Start }
func (s *SwitchStatement) End() span.Position { return s.Span.End }
func (s *SwitchStatement) statementNode()     {}
func (s *SwitchStatement) String() string {
	var out bytes.Buffer
	out.WriteString("switch (")
	out.WriteString(s.Discriminant.String())
	out.WriteString(") {\n")
	for _, c := range s.Cases {
		out.WriteString("  ")
		out.WriteString(c.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ForStatement is a classic C-style `for (init; test; update) body`. Any of
// Init/Test/Update may be nil.
type ForStatement struct {
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
	Span   span.Span
}

func (f *ForStatement) Kind() Kind         { return KindForStatement }
func (f *ForStatement) Pos() span.Position { return f.Span.Start }
func (f *ForStatement) End() span.Position { return f.Span.End }
func (f *ForStatement) statementNode()     {}
func (f *ForStatement) String() string {
	init, test, update := "", "", ""
	if f.Init != nil {
		init = f.Init.String()
	}
	if f.Test != nil {
		test = f.Test.String()
	}
	if f.Update != nil {
		update = f.Update.String()
	}
	return "for (" + init + "; " + test + "; " + update + ") " + f.Body.String()
}

// ForOfStatement is `for (const x of iterable) body`, or `for await (...)`
// when Await is set.
type ForOfStatement struct {
	Left  Node // *VariableDeclaration or Pattern
	Right Expression
	Body  Statement
	Await bool
	Span  span.Span
}

func (f *ForOfStatement) Kind() Kind         { return KindForOfStatement }
func (f *ForOfStatement) Pos() span.Position { return f.Span.Start }
func (f *ForOfStatement) End() span.Position { return f.Span.End }
func (f *ForOfStatement) statementNode()     {}
func (f *ForOfStatement) String() string {
	prefix := "for ("
	if f.Await {
		prefix = "for await ("
	}
	return prefix + f.Left.String() + " of " + f.Right.String() + ") " + f.Body.String()
}

// ForInStatement is `for (const k in obj) body`.
type ForInStatement struct {
	Left  Node
	Right Expression
	Body  Statement
	Span  span.Span
}

func (f *ForInStatement) Kind() Kind         { return KindForInStatement }
func (f *ForInStatement) Pos() span.Position { return f.Span.Start }
func (f *ForInStatement) End() span.Position { return f.Span.End }
func (f *ForInStatement) statementNode()     {}
func (f *ForInStatement) String() string {
	return "for (" + f.Left.String() + " in " + f.Right.String() + ") " + f.Body.String()
}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Test Expression
	Body Statement
	Span span.Span
}

func (w *WhileStatement) Kind() Kind         { return KindWhileStatement }
func (w *WhileStatement) Pos() span.Position { return w.Span.Start }
func (w *WhileStatement) End() span.Position { return w.Span.End }
func (w *WhileStatement) statementNode()     {}
func (w *WhileStatement) String() string {
	return "while (" + w.Test.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (test);` - the body runs at least once.
type DoWhileStatement struct {
	Body Statement
	Test Expression
	Span span.Span
}

func (d *DoWhileStatement) Kind() Kind         { return KindDoWhileStatement }
func (d *DoWhileStatement) Pos() span.Position { return d.Span.Start }
func (d *DoWhileStatement) End() span.Position { return d.Span.End }
func (d *DoWhileStatement) statementNode()     {}
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// BreakStatement exits the nearest enclosing loop or switch.
type BreakStatement struct{ Span span.Span }

func (b *BreakStatement) Kind() Kind         { return KindBreakStatement }
func (b *BreakStatement) Pos() span.Position { return b.Span.Start }
func (b *BreakStatement) End() span.Position { return b.Span.End }
func (b *BreakStatement) statementNode()     {}
func (b *BreakStatement) String() string     { return "break;" }

// ContinueStatement skips to the next iteration of the nearest enclosing
// loop. The Emitter realizes this with a `goto continue_loop` label pattern
// (§4.5, §9).
type ContinueStatement struct{ Span span.Span }

func (c *ContinueStatement) Kind() Kind         { return KindContinueStatement }
func (c *ContinueStatement) Pos() span.Position { return c.Span.Start }
func (c *ContinueStatement) End() span.Position { return c.Span.End }
func (c *ContinueStatement) statementNode()     {}
func (c *ContinueStatement) String() string     { return "continue;" }

// ThrowStatement raises Argument as an exception; the Emitter lowers this to
// a Lua `error(expr)` call (§4.5).
type ThrowStatement struct {
	Argument Expression
	Span     span.Span
}

func (t *ThrowStatement) Kind() Kind         { return KindThrowStatement }
func (t *ThrowStatement) Pos() span.Position { return t.Span.Start }
func (t *ThrowStatement) End() span.Position { return t.Span.End }
func (t *ThrowStatement) statementNode()     {}
func (t *ThrowStatement) String() string     { return "throw " + t.Argument.String() + ";" }

// CatchClause is the `catch (param) { body }` arm of a TryStatement. Param
// is nil for a parameterless `catch { ... }`.
type CatchClause struct {
	Param Pattern
	Body  *BlockStatement
	Span  span.Span
}

func (c *CatchClause) Kind() Kind         { return KindCatchClause }
func (c *CatchClause) Pos() span.Position { return c.Span.Start }
func (c *CatchClause) End() span.Position { return c.Span.End }
func (c *CatchClause) statementNode()     {}
func (c *CatchClause) String() string {
	if c.Param == nil {
		return "catch " + c.Body.String()
	}
	return "catch (" + c.Param.String() + ") " + c.Body.String()
}

// TryStatement is `try { } [catch (e) { }] [finally { }]`. At least one of
// Handler/Finalizer must be present; preserved structurally through lowering
// and realized with pcall/xpcall by the Emitter (§4.4, §4.5).
type TryStatement struct {
	Block     *BlockStatement
	Handler   *CatchClause // nil when there is no catch
	Finalizer *BlockStatement // nil when there is no finally
	Span      span.Span
}

func (t *TryStatement) Kind() Kind         { return KindTryStatement }
func (t *TryStatement) Pos() span.Position { return t.Span.Start }
func (t *TryStatement) End() span.Position { return t.Span.End }
func (t *TryStatement) statementNode()     {}
func (t *TryStatement) String() string {
	var out bytes.Buffer
	out.WriteString("try ")
	out.WriteString(t.Block.String())
	if t.Handler != nil {
		out.WriteString(" ")
		out.WriteString(t.Handler.String())
	}
	if t.Finalizer != nil {
		out.WriteString(" finally ")
		out.WriteString(t.Finalizer.String())
	}
	return out.String()
}
