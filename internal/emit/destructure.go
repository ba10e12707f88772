package emit

import (
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
)

// destructurePattern expands a destructuring pattern against sourceText (a
// Lua expression already bound to a temp or otherwise safe to re-evaluate),
// emitting one `local` per bound name (§4.5 "Destructuring"). It recurses
// through nested patterns via fresh temps.
func (e *Emitter) destructurePattern(patternID, sourceText string) {
	n, ok := e.get(patternID)
	if !ok {
		return
	}
	switch p := n.(type) {
	case *ir.Identifier:
		e.line("local %s = %s", p.Name, sourceText)
	case *ir.AssignmentPattern:
		temp := e.newTemp()
		e.line("local %s = %s", temp, e.withDefault(sourceText, p.Right))
		e.destructurePattern(p.Left, temp)
	case *ir.ArrayPattern:
		e.destructureArrayPattern(p, sourceText)
	case *ir.ObjectPattern:
		e.destructureObjectPattern(p, sourceText)
	default:
		e.fail(diag.CodeUnsupportedKind, "emit: UnsupportedKind(%s) in destructuring position", n.NodeKind())
	}
}

// destructureArrayPattern binds positional 1-based indices into generated
// temps, collecting a trailing Rest element with a tail loop (§4.5,
// matching §8 scenario 5: `const [a, , c, ...rest] = arr;`).
func (e *Emitter) destructureArrayPattern(p *ir.ArrayPattern, sourceText string) {
	for i, elID := range p.Elements {
		if elID == "" {
			continue
		}
		idx := i + 1
		elemText := indexExpr(sourceText, idx)
		e.destructurePattern(elID, elemText)
	}
	if p.Rest == "" {
		return
	}
	restIdent, ok := e.restIdentifierName(p.Rest)
	if !ok {
		return
	}
	startIdx := len(p.Elements) + 1
	e.line("local %s = {}", restIdent)
	idxVar := e.newTemp()
	e.line("for %s = %d, #%s do", idxVar, startIdx, sourceText)
	e.depth++
	e.line("%s[#%s + 1] = %s", restIdent, restIdent, indexExpr(sourceText, -1)+"["+idxVar+"]")
	e.depth--
	e.line("end")
}

// restIdentifierName resolves a RestElement's argument to a plain bound
// name for the tail-collecting loop. Nested destructuring on the rest
// itself is out of scope for the array-pattern tail (§4.5 does not describe
// it); only a plain identifier rest target is supported.
func (e *Emitter) restIdentifierName(restID string) (string, bool) {
	n, ok := e.get(restID)
	if !ok {
		return "", false
	}
	rest, ok := n.(*ir.RestElement)
	if !ok {
		e.fail(diag.CodeUnsupportedKind, "emit: array pattern rest %q is not a RestElement", restID)
		return "", false
	}
	argNode, ok := e.get(rest.Argument)
	if !ok {
		return "", false
	}
	ident, ok := argNode.(*ir.Identifier)
	if !ok {
		e.fail(diag.CodeUnsupportedConstruct, "emit: nested destructuring in a rest-element target is not supported")
		return "", false
	}
	return ident.Name, true
}

// indexExpr builds a 1-based Lua index expression, or, when idx is negative,
// returns sourceText unchanged (used when the caller already applied the
// indexing and just needs the base table back for the rest-loop body).
func indexExpr(sourceText string, idx int) string {
	if idx < 0 {
		return sourceText
	}
	return sourceText + "[" + itoaIndex(idx) + "]"
}

func itoaIndex(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// destructureObjectPattern reads each bound property by name - dot access
// for a plain identifier key, bracket access with the key's own rendering
// for a computed one - recursing through nested patterns via temps, and
// collects any remaining Rest keys into a fresh table otherwise (§4.5).
func (e *Emitter) destructureObjectPattern(p *ir.ObjectPattern, sourceText string) {
	bound := map[string]bool{}
	for _, propID := range p.Properties {
		n, ok := e.get(propID)
		if !ok {
			continue
		}
		prop, ok := n.(*ir.Property)
		if !ok {
			e.fail(diag.CodeUnsupportedKind, "emit: object pattern entry %q is not a Property", propID)
			continue
		}
		var access string
		if prop.Computed {
			access = sourceText + "[" + e.exprValue(prop.Key) + "]"
		} else {
			keyName := e.propertyName(prop.Key)
			bound[keyName] = true
			access = sourceText + "." + keyName
		}
		e.destructurePattern(prop.Value, access)
	}
	if p.Rest == "" {
		return
	}
	restIdent, ok := e.restIdentifierName(p.Rest)
	if !ok {
		return
	}
	e.line("local %s = {}", restIdent)
	kVar, vVar := e.newTemp(), e.newTemp()
	e.line("for %s, %s in pairs(%s) do", kVar, vVar, sourceText)
	e.depth++
	if cond := excludeBoundKeys(bound, kVar); cond != "" {
		e.line("if %s then", cond)
		e.depth++
		e.line("%s[%s] = %s", restIdent, kVar, vVar)
		e.depth--
		e.line("end")
	} else {
		e.line("%s[%s] = %s", restIdent, kVar, vVar)
	}
	e.depth--
	e.line("end")
}

// excludeBoundKeys builds a boolean expression true for every key not
// already destructured by name, so an object pattern's rest collection
// doesn't re-copy keys the pattern already bound.
func excludeBoundKeys(bound map[string]bool, keyVar string) string {
	if len(bound) == 0 {
		return ""
	}
	cond := ""
	for k := range bound {
		if cond != "" {
			cond += " and "
		}
		cond += keyVar + " ~= " + quoteLuaString(k)
	}
	return cond
}
