package validate

import (
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
)

// checkNodeShape dispatches on kind to check the constraints §4.6 calls out
// by name: non-empty identifiers, addressable assignment targets, a rest
// parameter sitting last, and similar per-kind arity rules that referential
// integrity alone can't catch.
func checkNodeShape(id string, n ir.Node, mod *ir.Module, bag *diag.Bag) {
	sp := spanOf(n)

	switch v := n.(type) {
	case *ir.Identifier:
		if v.Name == "" {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "Identifier %q has an empty name", id)
		}

	case *ir.CallExpression:
		if v.Callee == "" {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "CallExpression %q has no callee", id)
		}

	case *ir.NewExpression:
		if v.Callee == "" {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "NewExpression %q has no callee", id)
		}

	case *ir.AssignmentExpression:
		if v.Target == "" {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "AssignmentExpression %q has no target", id)
		}

	case *ir.UpdateExpression:
		if v.Argument == "" {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "UpdateExpression %q has no argument", id)
		}

	case *ir.ArrayPattern:
		if v.Rest != "" {
			for _, el := range v.Elements {
				if el == v.Rest {
					bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "ArrayPattern %q's rest element also appears in its elements list", id)
				}
			}
		}

	case *ir.FunctionDeclaration:
		checkRestLast(id, "FunctionDeclaration", v.Params, mod, bag, sp)
	case *ir.AsyncFunctionDeclaration:
		checkRestLast(id, "AsyncFunctionDeclaration", v.Params, mod, bag, sp)
	case *ir.GeneratorDeclaration:
		checkRestLast(id, "GeneratorDeclaration", v.Params, mod, bag, sp)
	case *ir.FunctionExpression:
		checkRestLast(id, "FunctionExpression", v.Params, mod, bag, sp)
	case *ir.ArrowFunctionExpression:
		checkRestLast(id, "ArrowFunctionExpression", v.Params, mod, bag, sp)

	case *ir.TemplateLiteral:
		if len(v.Quasis) != len(v.Expressions)+1 {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "TemplateLiteral %q has %d quasis and %d expressions, expected quasis = expressions+1", id, len(v.Quasis), len(v.Expressions))
		}

	case *ir.VariableDeclaration:
		if len(v.Declarations) == 0 {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "VariableDeclaration %q declares nothing", id)
		}

	case *ir.ClassDeclaration:
		if v.Name == "" {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "ClassDeclaration %q has no name", id)
		}
	}
}

// checkRestLast requires that, among a parameter list, only the final
// Parameter may be flagged Rest (§4.2 "A RestElement may appear only as the
// final element of a pattern", extended here to parameter lists).
func checkRestLast(fnID, kindName string, params []string, mod *ir.Module, bag *diag.Bag, sp span.Span) {
	for i, paramID := range params {
		n, ok := mod.Get(paramID)
		if !ok {
			continue // reported by checkReferentialIntegrity
		}
		p, ok := n.(*ir.Parameter)
		if !ok {
			continue
		}
		if p.Rest && i != len(params)-1 {
			bag.Errorf(diag.StageValidate, diag.CodeValidationError, sp, "%s %q has a rest parameter %q that is not last", kindName, fnID, paramID)
		}
	}
}
