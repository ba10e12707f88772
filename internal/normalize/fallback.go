package normalize

import (
	"regexp"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/jsonvalue"
	"github.com/cwbudde/go-jsl/internal/span"
)

// simpleDeclRe recognizes the narrow `let NAME = EXPR;` / `const NAME = EXPR;`
// shape that fallbackRecognize can salvage from a source fragment the parser
// attached to an error sentinel, as a last resort before giving up entirely.
var simpleDeclRe = regexp.MustCompile(`^\s*(var|let|const)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(.+?);?\s*$`)

// fallbackRecognize attempts a best-effort recovery when the raw tree is
// unusable: the external parser is expected, under permissive mode, to
// sometimes emit error sentinels carrying the offending source text in a
// "source" or "text" field rather than a structured node (§4.3). Real
// recovery (re-invoking an alternative parser) is outside this module's
// reach, so the fallback is intentionally narrow: it only salvages the single
// `var|let|const NAME = EXPR;` declaration shape and drops every other body
// entry. When nothing is salvaged it reports false, and the caller keeps its
// original error.
func fallbackRecognize(raw *jsonvalue.Value) (*ast.Program, bool) {
	body := raw.FieldArray("body")
	stmts := make([]ast.Statement, 0, len(body))
	recoveredAny := false

	for _, node := range body {
		tag := node.TypeTag()
		if tag != "Error" && tag != "ErrorNode" {
			continue
		}
		text := stringField(node, "source", "text", "raw")
		if text == "" {
			continue
		}
		m := simpleDeclRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		kind, name := ast.VarKind(m[1]), m[2]
		stmts = append(stmts, &ast.VariableDeclaration{
			DeclarationKind: kind,
			Declarations: []*ast.VariableDeclarator{{
				NamePattern: &ast.Identifier{Name: name, Span: spanOf(node)},
				Init:        &ast.Literal{LitKind: ast.LiteralString, Value: m[3], Raw: m[3], Span: spanOf(node)},
				VarKind:     kind,
				Span:        spanOf(node),
			}},
			Span: spanOf(node),
		})
		recoveredAny = true
	}

	if !recoveredAny {
		return nil, false
	}
	return &ast.Program{Body: stmts, Span: span.Span{}}, true
}
