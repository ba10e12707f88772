package lower

import (
	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
	"github.com/cwbudde/go-jsl/internal/typemodel"
)

// lowerParams lowers a parameter list, declaring each bound name in the
// current (already-pushed) scope.
func (l *Lowerer) lowerParams(params []*ast.Parameter) ([]string, error) {
	out := make([]string, len(params))
	for i, p := range params {
		patID, err := l.lowerPattern(p.Pattern)
		if err != nil {
			return nil, err
		}
		defID, err := l.lowerExpression(p.Default)
		if err != nil {
			return nil, err
		}
		paramID := l.b.Parameter(patID, defID, p.Rest, nodeSpan(p))
		if tm := typeMeta(p.Type); tm != nil {
			l.setMeta(paramID, "type", tm)
		}
		out[i] = paramID
	}
	return out, nil
}

// attachReturnType stamps a function-shaped node's declared return type
// annotation onto its meta bag, when one was present in source (§4.2).
func (l *Lowerer) attachReturnType(fnID string, ret *typemodel.Type) {
	if tm := typeMeta(ret); tm != nil {
		l.setMeta(fnID, "returnType", tm)
	}
}

// attachCFG builds the minimal CFG §4.4 describes for a function body: one
// entry block holding the body's top-level statement ids, one exit block,
// and a single entry->exit successor edge. It is stamped onto fnID's
// meta.cfg and registered in the Builder's Module under its own CFG id, the
// id meta.cfg.id names (§3.3 invariant 5).
func (l *Lowerer) attachCFG(fnID, bodyID string, sp span.Span) {
	bodyNode, ok := l.b.Module().Get(bodyID)
	stmtIDs := []string{}
	if ok {
		if blk, ok := bodyNode.(*ir.BlockStatement); ok {
			stmtIDs = blk.Body
		}
	}

	entryID := l.b.NextID("bb")
	exitID := l.b.NextID("bb")
	cfgID := l.b.NextID("cfg")

	cfg := &ir.CFG{
		ID: cfgID,
		Blocks: []*ir.Block{
			{ID: entryID, BlockKind: "entry", Statements: stmtIDs},
			{ID: exitID, BlockKind: "exit", Statements: nil},
		},
		Successors: map[string][]string{
			entryID: {exitID},
			exitID:  {},
		},
		Predecessors: map[string][]string{
			entryID: {},
			exitID:  {entryID},
		},
	}
	l.b.AddCFG(cfgID, cfg)
	l.setMeta(fnID, "cfg", map[string]interface{}{"id": cfgID, "entry": entryID, "exit": exitID})
}

// lowerFunctionBody pushes a scope, lowers params and body, pops the scope,
// and returns their ids. Shared by every function-shaped construct
// (declarations, expressions, arrows, methods).
func (l *Lowerer) lowerFunctionBody(params []*ast.Parameter, body *ast.BlockStatement) ([]string, string, error) {
	l.pushScope()
	paramIDs, err := l.lowerParams(params)
	if err != nil {
		l.popScope()
		return nil, "", err
	}
	bodyID, err := l.lowerBlockStmts(body)
	if popErr := l.popScope(); err == nil {
		err = popErr
	}
	if err != nil {
		return nil, "", err
	}
	return paramIDs, bodyID, nil
}

func (l *Lowerer) lowerPlainFunctionDeclaration(f *ast.FunctionDeclaration, sp span.Span) (string, error) {
	nameID := ""
	if f.Name != nil {
		l.declare(f.Name.Name)
		nameID = l.b.Identifier(f.Name.Name, nodeSpan(f.Name))
	}
	paramIDs, bodyID, err := l.lowerFunctionBody(f.Params, f.Body)
	if err != nil {
		return "", err
	}
	fnID := l.b.FunctionDeclaration(nameID, paramIDs, bodyID, sp)
	l.attachReturnType(fnID, f.Return)
	l.attachCFG(fnID, bodyID, sp)
	return fnID, nil
}

func (l *Lowerer) lowerAsyncFunctionDeclaration(f *ast.AsyncFunctionDeclaration, sp span.Span) (string, error) {
	nameID := ""
	if f.Name != nil {
		l.declare(f.Name.Name)
		nameID = l.b.Identifier(f.Name.Name, nodeSpan(f.Name))
	}
	paramIDs, bodyID, err := l.lowerFunctionBody(f.Params, f.Body)
	if err != nil {
		return "", err
	}
	fnID := l.b.AsyncFunctionDeclaration(nameID, paramIDs, bodyID, sp)
	l.attachReturnType(fnID, f.Return)
	l.attachCFG(fnID, bodyID, sp)
	return fnID, nil
}

func (l *Lowerer) lowerGeneratorDeclaration(f *ast.GeneratorDeclaration, sp span.Span) (string, error) {
	nameID := ""
	if f.Name != nil {
		l.declare(f.Name.Name)
		nameID = l.b.Identifier(f.Name.Name, nodeSpan(f.Name))
	}
	paramIDs, bodyID, err := l.lowerFunctionBody(f.Params, f.Body)
	if err != nil {
		return "", err
	}
	fnID := l.b.GeneratorDeclaration(nameID, paramIDs, bodyID, f.AsyncGenerator, sp)
	l.attachReturnType(fnID, f.Return)
	l.attachCFG(fnID, bodyID, sp)
	return fnID, nil
}

// lowerFunctionExpression lowers a function used in expression position:
// an object-literal method value, a class method/getter/setter value, or a
// `const f = function() {}` initializer. Like the declaration forms, every
// function expression gets its own CFG attached here, including a bare
// expression value (e.g. a callback argument).
func (l *Lowerer) lowerFunctionExpression(f *ast.FunctionExpression, sp span.Span) (string, error) {
	nameID := ""
	if f.Name != nil {
		l.declare(f.Name.Name)
		nameID = l.b.Identifier(f.Name.Name, nodeSpan(f.Name))
	}
	paramIDs, bodyID, err := l.lowerFunctionBody(f.Params, f.Body)
	if err != nil {
		return "", err
	}
	fnID := l.b.FunctionExpression(nameID, paramIDs, bodyID, f.Async, f.Generator, sp)
	l.attachReturnType(fnID, f.Return)
	l.attachCFG(fnID, bodyID, sp)
	return fnID, nil
}

// lowerArrowFunction lowers `(...) => { ... }`. By the time the Normalizer
// is done every arrow's Body is a *BlockStatement (§4.3), so there is no
// expression-body case left to handle here.
func (l *Lowerer) lowerArrowFunction(f *ast.ArrowFunctionExpression, sp span.Span) (string, error) {
	paramIDs, bodyID, err := l.lowerFunctionBody(f.Params, f.Body)
	if err != nil {
		return "", err
	}
	fnID := l.b.ArrowFunctionExpression(paramIDs, bodyID, f.Async, sp)
	l.attachCFG(fnID, bodyID, sp)
	return fnID, nil
}
