package normalize

import (
	"fmt"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/jsonvalue"
	"github.com/cwbudde/go-jsl/internal/span"
)

// normalizeExpression dispatches a raw node to its canonical Expression
// shape. Unknown type tags are reported as UnsupportedConstruct rather than
// silently passed through: the canonical AST's closed Go type set has no
// generic "unrecognized node" shape to shallow-clone into, so an
// unrecognized tag here is necessarily a hard failure rather than the
// best-effort passthrough a duck-typed host language could offer (see
// DESIGN.md's Open Question on this divergence from the distilled
// wording).
func (n *Normalizer) normalizeExpression(raw *jsonvalue.Value) (ast.Expression, error) {
	if raw == nil || raw.Kind() == jsonvalue.KindUndefined || raw.Kind() == jsonvalue.KindNull {
		return nil, nil
	}
	if cached, ok := n.seen[raw]; ok {
		if expr, ok := cached.(ast.Expression); ok {
			return expr, nil
		}
	}

	sp := spanOf(raw)
	switch raw.TypeTag() {
	case "Identifier":
		return &ast.Identifier{Name: stringField(raw, "name"), Span: sp}, nil

	case "Literal":
		return n.normalizeLiteral(raw, sp)

	case "ThisExpression":
		return &ast.ThisExpression{Span: sp}, nil

	case "Super":
		return &ast.Super{Span: sp}, nil

	case "BinaryExpression":
		left, err := n.normalizeExpression(fieldAny(raw, "left"))
		if err != nil {
			return nil, err
		}
		right, err := n.normalizeExpression(fieldAny(raw, "right"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Operator: stringField(raw, "operator"), Left: left, Right: right, Span: sp}, nil

	case "LogicalExpression":
		left, err := n.normalizeExpression(fieldAny(raw, "left"))
		if err != nil {
			return nil, err
		}
		right, err := n.normalizeExpression(fieldAny(raw, "right"))
		if err != nil {
			return nil, err
		}
		return &ast.LogicalExpression{Operator: stringField(raw, "operator"), Left: left, Right: right, Span: sp}, nil

	case "AssignmentExpression":
		left, err := n.normalizeExpression(fieldAny(raw, "left", "target"))
		if err != nil {
			return nil, err
		}
		right, err := n.normalizeExpression(fieldAny(raw, "right", "value"))
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Operator: stringField(raw, "operator"), Left: left, Right: right, Span: sp}, nil

	case "UpdateExpression":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.UpdateExpression{Operator: stringField(raw, "operator"), Argument: arg, Prefix: boolField(raw, "prefix"), Span: sp}, nil

	case "ConditionalExpression":
		test, err := n.normalizeExpression(fieldAny(raw, "test"))
		if err != nil {
			return nil, err
		}
		cons, err := n.normalizeExpression(fieldAny(raw, "consequent"))
		if err != nil {
			return nil, err
		}
		alt, err := n.normalizeExpression(fieldAny(raw, "alternate"))
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt, Span: sp}, nil

	case "UnaryExpression":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: stringField(raw, "operator"), Argument: arg, Span: sp}, nil

	case "CallExpression":
		callee, err := n.normalizeExpression(fieldAny(raw, "callee"))
		if err != nil {
			return nil, err
		}
		args, err := n.normalizeExpressionList(raw.FieldArray("arguments"))
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Callee: callee, Arguments: args, Optional: boolField(raw, "optional"), Span: sp}, nil

	case "NewExpression":
		callee, err := n.normalizeExpression(fieldAny(raw, "callee"))
		if err != nil {
			return nil, err
		}
		args, err := n.normalizeExpressionList(raw.FieldArray("arguments"))
		if err != nil {
			return nil, err
		}
		return &ast.NewExpression{Callee: callee, Arguments: args, Span: sp}, nil

	case "MemberExpression":
		obj, err := n.normalizeExpression(fieldAny(raw, "object"))
		if err != nil {
			return nil, err
		}
		prop, err := n.normalizeExpression(fieldAny(raw, "property"))
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{
			Object: obj, Property: prop,
			Computed: boolField(raw, "computed"), Optional: boolField(raw, "optional"), Span: sp,
		}, nil

	case "ArrayExpression":
		elems, err := n.normalizeExpressionList(raw.FieldArray("elements"))
		if err != nil {
			return nil, err
		}
		return &ast.ArrayExpression{Elements: elems, Span: sp}, nil

	case "ObjectExpression":
		props, err := n.normalizeProperties(raw.FieldArray("properties"))
		if err != nil {
			return nil, err
		}
		return &ast.ObjectExpression{Properties: props, Span: sp}, nil

	case "TemplateLiteral":
		quasis := make([]*ast.TemplateElement, 0)
		for _, q := range raw.FieldArray("quasis") {
			quasis = append(quasis, &ast.TemplateElement{
				Raw: stringField(q, "raw"), Cooked: stringField(q, "cooked"), Tail: boolField(q, "tail"),
				Span: spanOf(q),
			})
		}
		exprs, err := n.normalizeExpressionList(raw.FieldArray("expressions"))
		if err != nil {
			return nil, err
		}
		return &ast.TemplateLiteral{Quasis: quasis, Expressions: exprs, Span: sp}, nil

	case "SpreadElement":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.SpreadElement{Argument: arg, Span: sp}, nil

	case "AwaitExpression":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpression{Argument: arg, Span: sp}, nil

	case "YieldExpression":
		arg, err := n.normalizeExpression(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.YieldExpression{Argument: arg, Delegate: boolField(raw, "delegate"), Span: sp}, nil

	case "ArrowFunctionExpression":
		return n.normalizeArrowFunction(raw, sp)

	case "FunctionExpression":
		return n.normalizeFunctionExpression(raw, sp)

	case "ClassExpression":
		return n.normalizeClassExpression(raw, sp)

	case "ObjectPattern", "ArrayPattern", "RestElement", "AssignmentPattern":
		pat, err := n.normalizePattern(raw)
		if err != nil {
			return nil, err
		}
		return pat.(ast.Expression), nil

	default:
		return nil, fmt.Errorf("normalize: UnsupportedConstruct(%s): unrecognized expression node type", raw.TypeTag())
	}
}

func (n *Normalizer) normalizeLiteral(raw *jsonvalue.Value, sp span.Span) (ast.Expression, error) {
	val := raw.Field("value")
	switch val.Kind() {
	case jsonvalue.KindString:
		return &ast.Literal{LitKind: ast.LiteralString, Value: val.StringValue(), Raw: stringField(raw, "raw"), Span: sp}, nil
	case jsonvalue.KindNumber:
		return &ast.Literal{LitKind: ast.LiteralNumber, Value: val.NumberValue(), Raw: stringField(raw, "raw"), Span: sp}, nil
	case jsonvalue.KindInt64:
		return &ast.Literal{LitKind: ast.LiteralNumber, Value: float64(val.Int64Value()), Raw: stringField(raw, "raw"), Span: sp}, nil
	case jsonvalue.KindBoolean:
		return &ast.Literal{LitKind: ast.LiteralBoolean, Value: val.BoolValue(), Raw: stringField(raw, "raw"), Span: sp}, nil
	case jsonvalue.KindNull, jsonvalue.KindUndefined:
		return &ast.Literal{LitKind: ast.LiteralNull, Value: nil, Raw: "null", Span: sp}, nil
	default:
		return nil, fmt.Errorf("normalize: InvalidInput: Literal node has unsupported value kind %s", val.Kind())
	}
}

func (n *Normalizer) normalizeExpressionList(elems []*jsonvalue.Value) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(elems))
	for i, e := range elems {
		expr, err := n.normalizeExpression(e)
		if err != nil {
			return nil, err
		}
		out[i] = expr // nil preserved for elisions
	}
	return out, nil
}

func (n *Normalizer) normalizeProperties(elems []*jsonvalue.Value) ([]*ast.Property, error) {
	out := make([]*ast.Property, 0, len(elems))
	for _, e := range elems {
		if e.TypeTag() == "SpreadElement" {
			arg, err := n.normalizeExpression(fieldAny(e, "argument"))
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Property{Value: &ast.SpreadElement{Argument: arg, Span: spanOf(e)}, Span: spanOf(e)})
			continue
		}
		key, err := n.normalizeExpression(fieldAny(e, "key"))
		if err != nil {
			return nil, err
		}
		value, err := n.normalizeExpression(fieldAny(e, "value"))
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Property{
			Key: key, Value: value,
			Computed: boolField(e, "computed"), Shorthand: boolField(e, "shorthand"), Span: spanOf(e),
		})
	}
	return out, nil
}

// normalizePattern dispatches a raw node to its canonical Pattern shape.
func (n *Normalizer) normalizePattern(raw *jsonvalue.Value) (ast.Pattern, error) {
	if raw == nil || raw.Kind() == jsonvalue.KindUndefined || raw.Kind() == jsonvalue.KindNull {
		return nil, nil
	}
	sp := spanOf(raw)
	switch raw.TypeTag() {
	case "Identifier":
		return &ast.Identifier{Name: stringField(raw, "name"), Span: sp}, nil

	case "ObjectPattern":
		props, rest, err := n.normalizePatternProperties(raw.FieldArray("properties"))
		if err != nil {
			return nil, err
		}
		return &ast.ObjectPattern{Properties: props, Rest: rest, Span: sp}, nil

	case "ArrayPattern":
		rawElements := raw.FieldArray("elements")
		elements := make([]ast.Pattern, 0, len(rawElements))
		var rest *ast.RestElement
		for _, e := range rawElements {
			if e == nil || e.Kind() == jsonvalue.KindUndefined || e.Kind() == jsonvalue.KindNull {
				elements = append(elements, nil)
				continue
			}
			if e.TypeTag() == "RestElement" {
				r, err := n.normalizePattern(fieldAny(e, "argument"))
				if err != nil {
					return nil, err
				}
				rest = &ast.RestElement{Argument: r, Span: spanOf(e)}
				continue
			}
			p, err := n.normalizePattern(e)
			if err != nil {
				return nil, err
			}
			elements = append(elements, p)
		}
		return &ast.ArrayPattern{Elements: elements, Rest: rest, Span: sp}, nil

	case "RestElement":
		arg, err := n.normalizePattern(fieldAny(raw, "argument"))
		if err != nil {
			return nil, err
		}
		return &ast.RestElement{Argument: arg, Span: sp}, nil

	case "AssignmentPattern":
		left, err := n.normalizePattern(fieldAny(raw, "left"))
		if err != nil {
			return nil, err
		}
		right, err := n.normalizeExpression(fieldAny(raw, "right"))
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentPattern{Left: left, Right: right, Span: sp}, nil

	default:
		return nil, fmt.Errorf("normalize: UnsupportedConstruct(%s): unrecognized pattern node type", raw.TypeTag())
	}
}

func (n *Normalizer) normalizePatternProperties(elems []*jsonvalue.Value) ([]*ast.Property, *ast.RestElement, error) {
	props := make([]*ast.Property, 0, len(elems))
	var rest *ast.RestElement
	for _, e := range elems {
		if e.TypeTag() == "RestElement" {
			arg, err := n.normalizePattern(fieldAny(e, "argument"))
			if err != nil {
				return nil, nil, err
			}
			rest = &ast.RestElement{Argument: arg, Span: spanOf(e)}
			continue
		}
		key, err := n.normalizeExpression(fieldAny(e, "key"))
		if err != nil {
			return nil, nil, err
		}
		value, err := n.normalizePattern(fieldAny(e, "value"))
		if err != nil {
			return nil, nil, err
		}
		props = append(props, &ast.Property{
			Key: key, Value: value.(ast.Expression),
			Computed: boolField(e, "computed"), Shorthand: boolField(e, "shorthand"), Span: spanOf(e),
		})
	}
	return props, rest, nil
}

// normalizeParams converts a raw parameter list into canonical *ast.Parameter
// values, unwrapping AssignmentPattern (default values) and RestElement
// (the final `...args` parameter) into Parameter's Default/Rest fields
// rather than leaving them as separate pattern kinds (§4.4 tie-break:
// "destructuring default values as AssignmentPattern" - here normalized one
// level further since the Lowerer expects Parameter.Default directly).
func (n *Normalizer) normalizeParams(elems []*jsonvalue.Value) ([]*ast.Parameter, error) {
	out := make([]*ast.Parameter, 0, len(elems))
	for _, e := range elems {
		sp := spanOf(e)
		switch e.TypeTag() {
		case "RestElement":
			pat, err := n.normalizePattern(fieldAny(e, "argument"))
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Parameter{Pattern: pat, Rest: true, Span: sp})
		case "AssignmentPattern":
			pat, err := n.normalizePattern(fieldAny(e, "left"))
			if err != nil {
				return nil, err
			}
			def, err := n.normalizeExpression(fieldAny(e, "right"))
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Parameter{Pattern: pat, Default: def, Span: sp})
		default:
			pat, err := n.normalizePattern(e)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Parameter{Pattern: pat, Span: sp})
		}
	}
	return out, nil
}
