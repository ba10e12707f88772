package lower

import (
	"fmt"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

// lowerStatement lowers one ast.Statement, returning the top-level IR node
// ids it expands to. Most constructs expand to exactly one id; a class
// declaration expands to a constructor plus one assignment per member
// (§4.4 "Classes"), and a switch expands to a discriminant binding plus its
// desugared if/else-if chain (§4.4 "Switch").
func (l *Lowerer) lowerStatement(stmt ast.Statement) ([]string, error) {
	if stmt == nil {
		return nil, nil
	}
	sp := nodeSpan(stmt)

	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		id, err := l.lowerVariableDeclaration(s)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.BlockStatement:
		id, err := l.lowerBlock(s)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.ExpressionStatement:
		exprID, err := l.lowerExpression(s.Expr)
		if err != nil {
			return nil, err
		}
		return one(l.b.ExpressionStatement(exprID, sp)), nil

	case *ast.ReturnStatement:
		argID, err := l.lowerExpression(s.Argument)
		if err != nil {
			return nil, err
		}
		return one(l.b.ReturnStatement(argID, sp)), nil

	case *ast.IfStatement:
		testID, err := l.lowerExpression(s.Test)
		if err != nil {
			return nil, err
		}
		consID, err := l.lowerSingleStatement(s.Consequent)
		if err != nil {
			return nil, err
		}
		altID, err := l.lowerSingleStatement(s.Alternate)
		if err != nil {
			return nil, err
		}
		return one(l.b.IfStatement(testID, consID, altID, sp)), nil

	case *ast.SwitchStatement:
		ids, err := l.lowerSwitch(s, sp)
		if err != nil {
			return nil, err
		}
		return ids, nil

	case *ast.ForStatement:
		id, err := l.lowerFor(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.ForOfStatement:
		id, err := l.lowerForOf(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.ForInStatement:
		id, err := l.lowerForIn(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.WhileStatement:
		testID, err := l.lowerExpression(s.Test)
		if err != nil {
			return nil, err
		}
		bodyID, err := l.lowerSingleStatement(s.Body)
		if err != nil {
			return nil, err
		}
		return one(l.b.WhileStatement(testID, bodyID, sp)), nil

	case *ast.DoWhileStatement:
		bodyID, err := l.lowerSingleStatement(s.Body)
		if err != nil {
			return nil, err
		}
		testID, err := l.lowerExpression(s.Test)
		if err != nil {
			return nil, err
		}
		return one(l.b.DoWhileStatement(bodyID, testID, sp)), nil

	case *ast.BreakStatement:
		return one(l.b.BreakStatement(sp)), nil

	case *ast.ContinueStatement:
		return one(l.b.ContinueStatement(sp)), nil

	case *ast.ThrowStatement:
		argID, err := l.lowerExpression(s.Argument)
		if err != nil {
			return nil, err
		}
		return one(l.b.ThrowStatement(argID, sp)), nil

	case *ast.TryStatement:
		id, err := l.lowerTry(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.FunctionDeclaration:
		id, err := l.lowerPlainFunctionDeclaration(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.AsyncFunctionDeclaration:
		id, err := l.lowerAsyncFunctionDeclaration(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.GeneratorDeclaration:
		id, err := l.lowerGeneratorDeclaration(s, sp)
		if err != nil {
			return nil, err
		}
		return one(id), nil

	case *ast.ClassDeclaration:
		return l.lowerClassDeclaration(s, sp)

	default:
		return nil, fmt.Errorf("lower: UnsupportedConstruct(%T): unrecognized statement node", stmt)
	}
}

// lowerSingleStatement lowers a single Statement slot (an if/while/for/
// do-while body or branch) to exactly one id. A construct that naturally
// expands to several ids (only a ClassDeclaration does; the grammar never
// allows one at a loop/if body position in valid source) is folded into a
// synthetic BlockStatement so the one-id contract holds unconditionally.
func (l *Lowerer) lowerSingleStatement(stmt ast.Statement) (string, error) {
	if stmt == nil {
		return "", nil
	}
	ids, err := l.lowerStatement(stmt)
	if err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", nil
	case 1:
		return ids[0], nil
	default:
		return l.b.BlockStatement(ids, nodeSpan(stmt)), nil
	}
}

// lowerBlock pushes a new lexical scope, lowers every statement of blk, and
// pops the scope before returning the resulting BlockStatement's id.
func (l *Lowerer) lowerBlock(blk *ast.BlockStatement) (string, error) {
	l.pushScope()
	id, err := l.lowerBlockStmts(blk)
	if popErr := l.popScope(); err == nil && popErr != nil {
		err = popErr
	}
	return id, err
}

// lowerBlockStmts lowers blk's statements into a BlockStatement node using
// whatever scope is already current, without pushing one of its own. Used
// where a caller needs a binding (e.g. a catch parameter) to stay visible
// across both the binding and the body (§4.4 try/catch).
func (l *Lowerer) lowerBlockStmts(blk *ast.BlockStatement) (string, error) {
	bodyIDs := make([]string, 0, len(blk.Body))
	for _, stmt := range blk.Body {
		ids, err := l.lowerStatement(stmt)
		if err != nil {
			return "", err
		}
		bodyIDs = append(bodyIDs, ids...)
	}
	return l.b.BlockStatement(bodyIDs, nodeSpan(blk)), nil
}

// lowerStatementList lowers a flat statement list (a SwitchCase's
// consequent) into a single BlockStatement id under a fresh scope.
func (l *Lowerer) lowerStatementList(stmts []ast.Statement, sp span.Span) (string, error) {
	l.pushScope()
	bodyIDs := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		ids, err := l.lowerStatement(stmt)
		if err != nil {
			l.popScope()
			return "", err
		}
		bodyIDs = append(bodyIDs, ids...)
	}
	if err := l.popScope(); err != nil {
		return "", err
	}
	return l.b.BlockStatement(bodyIDs, sp), nil
}

// lowerVariableDeclaration lowers a `let/const/var` declaration, declaring
// each declarator's bound names in the current scope and cross-checking
// that every declarator's VarKind matches the parent's DeclarationKind
// (§3.3 invariant 4 - enforced here as well as by the Validator so a
// Lowerer bug surfaces immediately rather than only at validation time).
func (l *Lowerer) lowerVariableDeclaration(decl *ast.VariableDeclaration) (string, error) {
	kind := varKind(decl.DeclarationKind)
	declIDs := make([]string, 0, len(decl.Declarations))
	for _, d := range decl.Declarations {
		if d.VarKind != decl.DeclarationKind {
			return "", fmt.Errorf("lower: InternalError: declarator varKind %q disagrees with declaration kind %q", d.VarKind, decl.DeclarationKind)
		}
		initID, err := l.lowerExpression(d.Init)
		if err != nil {
			return "", err
		}
		patID, err := l.lowerPattern(d.NamePattern)
		if err != nil {
			return "", err
		}
		declIDs = append(declIDs, l.b.VariableDeclarator(patID, initID, kind, nodeSpan(d)))
	}
	return l.b.VariableDeclaration(kind, declIDs, nodeSpan(decl)), nil
}

func varKind(k ast.VarKind) ir.VarKind {
	switch k {
	case ast.VarKindConst:
		return ir.VarKindConst
	case ast.VarKindLet:
		return ir.VarKindLet
	default:
		return ir.VarKindVar
	}
}

// lowerSwitch desugars a switch statement into a discriminant binding
// followed by a nested if/else-if/else chain over strict equality, with the
// default case (wherever it appears in source) forming the final else
// (§4.4 "Switch", §9). The discriminant is evaluated exactly once into a
// temp so side effects in Discriminant don't repeat per case comparison.
func (l *Lowerer) lowerSwitch(s *ast.SwitchStatement, sp span.Span) ([]string, error) {
	discID, err := l.lowerExpression(s.Discriminant)
	if err != nil {
		return nil, err
	}

	tempName := l.nextTemp()
	l.declare(tempName)
	tempPat := l.b.Identifier(tempName, sp)
	declaratorID := l.b.VariableDeclarator(tempPat, discID, ir.VarKindLet, sp)
	tempDeclID := l.b.VariableDeclaration(ir.VarKindLet, []string{declaratorID}, sp)

	var defaultBody string
	var nonDefault []*ast.SwitchCase
	sawDefault := false
	for _, c := range s.Cases {
		if c.Test == nil {
			if sawDefault {
				return nil, fmt.Errorf("lower: InternalError: switch has more than one default case")
			}
			sawDefault = true
			body, err := l.lowerStatementList(c.Consequent, nodeSpan(c))
			if err != nil {
				return nil, err
			}
			defaultBody = body
			continue
		}
		nonDefault = append(nonDefault, c)
	}

	alt := defaultBody
	for i := len(nonDefault) - 1; i >= 0; i-- {
		c := nonDefault[i]
		testID, err := l.lowerExpression(c.Test)
		if err != nil {
			return nil, err
		}
		tempRef := l.b.Identifier(tempName, nodeSpan(c))
		cmpID := l.b.BinaryExpression("===", tempRef, testID, nodeSpan(c))
		body, err := l.lowerStatementList(c.Consequent, nodeSpan(c))
		if err != nil {
			return nil, err
		}
		alt = l.b.IfStatement(cmpID, body, alt, nodeSpan(c))
	}

	if alt == "" {
		// No cases at all: keep the discriminant's evaluation for its side
		// effects, drop the (empty) chain.
		return []string{tempDeclID}, nil
	}
	return []string{tempDeclID, alt}, nil
}

// forInit lowers a C-style for loop's Init slot, which is either a
// *ast.VariableDeclaration or a bare Expression (or nil).
func (l *Lowerer) forInit(init ast.Node) (string, error) {
	if init == nil {
		return "", nil
	}
	switch n := init.(type) {
	case *ast.VariableDeclaration:
		return l.lowerVariableDeclaration(n)
	case ast.Expression:
		return l.lowerExpression(n)
	default:
		return "", fmt.Errorf("lower: UnsupportedConstruct(%T): unrecognized for-init node", init)
	}
}

// forOfInLeft lowers a for-of/for-in loop's Left slot: either a declaration
// introducing a fresh binding per iteration, or a bare assignment target
// pattern.
func (l *Lowerer) forOfInLeft(left ast.Node) (string, error) {
	switch n := left.(type) {
	case *ast.VariableDeclaration:
		return l.lowerVariableDeclaration(n)
	case ast.Pattern:
		return l.lowerPattern(n)
	default:
		return "", fmt.Errorf("lower: UnsupportedConstruct(%T): unrecognized for-of/for-in left node", left)
	}
}

func (l *Lowerer) lowerFor(s *ast.ForStatement, sp span.Span) (string, error) {
	l.pushScope()
	initID, err := l.forInit(s.Init)
	if err != nil {
		l.popScope()
		return "", err
	}
	testID, err := l.lowerExpression(s.Test)
	if err != nil {
		l.popScope()
		return "", err
	}
	updateID, err := l.lowerExpression(s.Update)
	if err != nil {
		l.popScope()
		return "", err
	}
	bodyID, err := l.lowerSingleStatement(s.Body)
	if err != nil {
		l.popScope()
		return "", err
	}
	if err := l.popScope(); err != nil {
		return "", err
	}
	return l.b.ForStatement(initID, testID, updateID, bodyID, sp), nil
}

func (l *Lowerer) lowerForOf(s *ast.ForOfStatement, sp span.Span) (string, error) {
	l.pushScope()
	leftID, err := l.forOfInLeft(s.Left)
	if err != nil {
		l.popScope()
		return "", err
	}
	rightID, err := l.lowerExpression(s.Right)
	if err != nil {
		l.popScope()
		return "", err
	}
	bodyID, err := l.lowerSingleStatement(s.Body)
	if err != nil {
		l.popScope()
		return "", err
	}
	if err := l.popScope(); err != nil {
		return "", err
	}
	return l.b.ForOfStatement(leftID, rightID, bodyID, s.Await, sp), nil
}

func (l *Lowerer) lowerForIn(s *ast.ForInStatement, sp span.Span) (string, error) {
	l.pushScope()
	leftID, err := l.forOfInLeft(s.Left)
	if err != nil {
		l.popScope()
		return "", err
	}
	rightID, err := l.lowerExpression(s.Right)
	if err != nil {
		l.popScope()
		return "", err
	}
	bodyID, err := l.lowerSingleStatement(s.Body)
	if err != nil {
		l.popScope()
		return "", err
	}
	if err := l.popScope(); err != nil {
		return "", err
	}
	return l.b.ForInStatement(leftID, rightID, bodyID, sp), nil
}

// lowerTry preserves try/catch/finally structurally; the Emitter realizes
// it with pcall/xpcall (§4.4, §4.5). The catch parameter and its body share
// one scope so the bound name is visible throughout the handler.
func (l *Lowerer) lowerTry(s *ast.TryStatement, sp span.Span) (string, error) {
	blockID, err := l.lowerBlock(s.Block)
	if err != nil {
		return "", err
	}

	handlerID := ""
	if s.Handler != nil {
		l.pushScope()
		paramID := ""
		if s.Handler.Param != nil {
			paramID, err = l.lowerPattern(s.Handler.Param)
			if err != nil {
				l.popScope()
				return "", err
			}
		}
		bodyID, err := l.lowerBlockStmts(s.Handler.Body)
		if popErr := l.popScope(); err == nil {
			err = popErr
		}
		if err != nil {
			return "", err
		}
		handlerID = l.b.CatchClause(paramID, bodyID, nodeSpan(s.Handler))
	}

	finalizerID := ""
	if s.Finalizer != nil {
		finalizerID, err = l.lowerBlock(s.Finalizer)
		if err != nil {
			return "", err
		}
	}

	return l.b.TryStatement(blockID, handlerID, finalizerID, sp), nil
}
