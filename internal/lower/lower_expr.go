package lower

import (
	"fmt"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/ir"
)

// lowerExpression lowers one ast.Expression into the IR, returning the new
// node's id. A nil expr (an absent optional slot, e.g. a bare `return;`'s
// argument) lowers to "".
func (l *Lowerer) lowerExpression(expr ast.Expression) (string, error) {
	if expr == nil {
		return "", nil
	}
	sp := nodeSpan(expr)

	switch e := expr.(type) {
	case *ast.Identifier:
		return l.b.Identifier(e.Name, sp), nil

	case *ast.Literal:
		return l.b.Literal(litKind(e.LitKind), e.Value, e.Raw, sp), nil

	case *ast.ThisExpression:
		return l.b.ThisExpression(sp), nil

	case *ast.Super:
		return l.b.Super(sp), nil

	case *ast.BinaryExpression:
		left, err := l.lowerExpression(e.Left)
		if err != nil {
			return "", err
		}
		right, err := l.lowerExpression(e.Right)
		if err != nil {
			return "", err
		}
		return l.b.BinaryExpression(e.Operator, left, right, sp), nil

	case *ast.LogicalExpression:
		left, err := l.lowerExpression(e.Left)
		if err != nil {
			return "", err
		}
		right, err := l.lowerExpression(e.Right)
		if err != nil {
			return "", err
		}
		return l.b.LogicalExpression(e.Operator, left, right, sp), nil

	case *ast.AssignmentExpression:
		target, err := l.lowerExpression(e.Left)
		if err != nil {
			return "", err
		}
		value, err := l.lowerExpression(e.Right)
		if err != nil {
			return "", err
		}
		return l.b.AssignmentExpression(e.Operator, target, value, sp), nil

	case *ast.UpdateExpression:
		arg, err := l.lowerExpression(e.Argument)
		if err != nil {
			return "", err
		}
		return l.b.UpdateExpression(e.Operator, arg, e.Prefix, sp), nil

	case *ast.ConditionalExpression:
		test, err := l.lowerExpression(e.Test)
		if err != nil {
			return "", err
		}
		cons, err := l.lowerExpression(e.Consequent)
		if err != nil {
			return "", err
		}
		alt, err := l.lowerExpression(e.Alternate)
		if err != nil {
			return "", err
		}
		return l.b.ConditionalExpression(test, cons, alt, sp), nil

	case *ast.UnaryExpression:
		arg, err := l.lowerExpression(e.Argument)
		if err != nil {
			return "", err
		}
		return l.b.UnaryExpression(e.Operator, arg, sp), nil

	case *ast.CallExpression:
		callee, err := l.lowerExpression(e.Callee)
		if err != nil {
			return "", err
		}
		args, err := l.lowerExpressionList(e.Arguments)
		if err != nil {
			return "", err
		}
		return l.b.CallExpression(callee, args, e.Optional, sp), nil

	case *ast.NewExpression:
		callee, err := l.lowerExpression(e.Callee)
		if err != nil {
			return "", err
		}
		args, err := l.lowerExpressionList(e.Arguments)
		if err != nil {
			return "", err
		}
		return l.b.NewExpression(callee, args, sp), nil

	case *ast.MemberExpression:
		obj, err := l.lowerExpression(e.Object)
		if err != nil {
			return "", err
		}
		prop, err := l.lowerExpression(e.Property)
		if err != nil {
			return "", err
		}
		return l.b.MemberExpression(obj, prop, e.Computed, e.Optional, sp), nil

	case *ast.ArrayExpression:
		elems, err := l.lowerExpressionList(e.Elements)
		if err != nil {
			return "", err
		}
		return l.b.ArrayExpression(elems, sp), nil

	case *ast.ObjectExpression:
		props := make([]string, 0, len(e.Properties))
		for _, p := range e.Properties {
			id, err := l.lowerProperty(p)
			if err != nil {
				return "", err
			}
			props = append(props, id)
		}
		return l.b.ObjectExpression(props, sp), nil

	case *ast.TemplateLiteral:
		quasis := make([]string, len(e.Quasis))
		for i, q := range e.Quasis {
			quasis[i] = l.b.TemplateElement(q.Raw, q.Cooked, q.Tail, nodeSpan(q))
		}
		exprs, err := l.lowerExpressionList(e.Expressions)
		if err != nil {
			return "", err
		}
		return l.b.TemplateLiteral(quasis, exprs, sp), nil

	case *ast.SpreadElement:
		arg, err := l.lowerExpression(e.Argument)
		if err != nil {
			return "", err
		}
		return l.b.SpreadElement(arg, sp), nil

	case *ast.AwaitExpression:
		arg, err := l.lowerExpression(e.Argument)
		if err != nil {
			return "", err
		}
		return l.b.AwaitExpression(arg, sp), nil

	case *ast.YieldExpression:
		arg, err := l.lowerExpression(e.Argument)
		if err != nil {
			return "", err
		}
		return l.b.YieldExpression(arg, e.Delegate, sp), nil

	case *ast.ArrowFunctionExpression:
		return l.lowerArrowFunction(e, sp)

	case *ast.FunctionExpression:
		return l.lowerFunctionExpression(e, sp)

	case *ast.ClassExpression:
		return l.lowerClassExpression(e, sp)

	case *ast.ObjectPattern, *ast.ArrayPattern, *ast.RestElement, *ast.AssignmentPattern:
		return l.lowerPattern(expr.(ast.Pattern))

	default:
		return "", fmt.Errorf("lower: UnsupportedConstruct(%T): unrecognized expression node", expr)
	}
}

func (l *Lowerer) lowerExpressionList(exprs []ast.Expression) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		id, err := l.lowerExpression(e) // "" preserved for elisions
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func (l *Lowerer) lowerProperty(p *ast.Property) (string, error) {
	if spread, ok := p.Value.(*ast.SpreadElement); ok && p.Key == nil {
		arg, err := l.lowerExpression(spread.Argument)
		if err != nil {
			return "", err
		}
		spreadID := l.b.SpreadElement(arg, nodeSpan(spread))
		return l.b.Property("", spreadID, false, false, nodeSpan(p)), nil
	}
	key, err := l.lowerExpression(p.Key)
	if err != nil {
		return "", err
	}
	value, err := l.lowerExpression(p.Value)
	if err != nil {
		return "", err
	}
	return l.b.Property(key, value, p.Computed, p.Shorthand, nodeSpan(p)), nil
}

// lowerPattern lowers a destructuring pattern or plain identifier binding
// target into the IR, returning its id.
func (l *Lowerer) lowerPattern(pat ast.Pattern) (string, error) {
	if pat == nil {
		return "", nil
	}
	sp := nodeSpan(pat)

	switch p := pat.(type) {
	case *ast.Identifier:
		l.declare(p.Name)
		return l.b.Identifier(p.Name, sp), nil

	case *ast.ObjectPattern:
		props := make([]string, 0, len(p.Properties))
		for _, prop := range p.Properties {
			key, err := l.lowerExpression(prop.Key)
			if err != nil {
				return "", err
			}
			value, err := l.lowerPattern(prop.Value.(ast.Pattern))
			if err != nil {
				return "", err
			}
			props = append(props, l.b.Property(key, value, prop.Computed, prop.Shorthand, nodeSpan(prop)))
		}
		rest := ""
		if p.Rest != nil {
			restID, err := l.lowerPattern(p.Rest.Argument)
			if err != nil {
				return "", err
			}
			rest = l.b.RestElement(restID, nodeSpan(p.Rest))
		}
		return l.b.ObjectPattern(props, rest, sp), nil

	case *ast.ArrayPattern:
		elems := make([]string, len(p.Elements))
		for i, e := range p.Elements {
			if e == nil {
				continue
			}
			id, err := l.lowerPattern(e)
			if err != nil {
				return "", err
			}
			elems[i] = id
		}
		rest := ""
		if p.Rest != nil {
			restID, err := l.lowerPattern(p.Rest.Argument)
			if err != nil {
				return "", err
			}
			rest = l.b.RestElement(restID, nodeSpan(p.Rest))
		}
		return l.b.ArrayPattern(elems, rest, sp), nil

	case *ast.RestElement:
		arg, err := l.lowerPattern(p.Argument)
		if err != nil {
			return "", err
		}
		return l.b.RestElement(arg, sp), nil

	case *ast.AssignmentPattern:
		left, err := l.lowerPattern(p.Left)
		if err != nil {
			return "", err
		}
		right, err := l.lowerExpression(p.Right)
		if err != nil {
			return "", err
		}
		return l.b.AssignmentPattern(left, right, sp), nil

	default:
		return "", fmt.Errorf("lower: UnsupportedConstruct(%T): unrecognized pattern node", pat)
	}
}

func (l *Lowerer) declare(name string) {
	if l.cur != nil {
		l.cur.declare(name)
	}
}

func litKind(k ast.LiteralKind) ir.LiteralKind {
	switch k {
	case ast.LiteralString:
		return ir.LiteralString
	case ast.LiteralNumber:
		return ir.LiteralNumber
	case ast.LiteralBoolean:
		return ir.LiteralBoolean
	default:
		return ir.LiteralNull
	}
}
